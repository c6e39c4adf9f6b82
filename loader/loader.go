// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/rayview"
)

// ErrClosed is the Failed error of a loader that has been closed.
var ErrClosed = errors.New("loader: closed")

var (
	errNilSource = errors.New("loader: nil source")
	errNoModule  = errors.New("loader: source returned no module")
)

// closer is implemented by modules that hold resources.
type closer interface {
	Close(ctx context.Context) error
}

// Loader owns the lifecycle of one compute module handle.
//
// The state machine is:
//
//	Unloaded --Initialize--> Loading --success--> Ready
//	                                 --failure--> Failed
//
// Ready and Failed are terminal; there is no retry path. Close moves any
// state to Failed with ErrClosed. A Loader is safe
// for concurrent use, but the module it guards is not: frame requests must
// not overlap.
type Loader struct {
	src  Source
	opts options

	mu      sync.Mutex
	state   State
	pending *Pending
	closed  bool
}

// New creates a Loader in the Unloaded state. It does not start loading.
func New(src Source, opts ...Option) *Loader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader{
		src:   src,
		opts:  o,
		state: Unloaded{},
	}
}

// State returns the current lifecycle state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Ready reports whether the module finished loading successfully.
func (l *Loader) Ready() bool {
	return l.State().Kind() == KindReady
}

// Initialize starts loading the module on a new goroutine and returns
// without waiting for it. The caller may await the returned Pending or
// poll State.
//
// The load is detached from ctx cancellation: once started it runs to
// completion, and a stalled Source leaves the loader in Loading. ctx
// values are preserved.
//
// Only the first call transitions Unloaded to Loading. Later calls return
// the same Pending and do not restart the load.
func (l *Loader) Initialize(ctx context.Context) *Pending {
	l.mu.Lock()
	if l.pending != nil {
		p := l.pending
		l.mu.Unlock()
		return p
	}
	p := newPending()
	l.pending = p
	if l.closed {
		l.mu.Unlock()
		p.resolve(ErrClosed)
		return p
	}
	l.state = Loading{}
	l.mu.Unlock()

	go l.load(context.WithoutCancel(ctx), p)
	return p
}

// load runs the acquire and setup stages and records the terminal state.
func (l *Loader) load(ctx context.Context, p *Pending) {
	log := l.logger()
	clock := l.opts.clock

	log.Debug("importing compute binary")
	start := clock.Now()

	mod, err := l.acquire(ctx)
	imported := clock.Now()
	timing := rayview.LoadTiming{Acquire: imported.Sub(start)}
	if err != nil {
		l.fail(log, p, timing, &rayview.InitializationError{Stage: rayview.StageAcquire, Err: err})
		return
	}
	log.Debug("imported compute binary")

	err = l.setup(ctx, mod)
	initialized := clock.Now()
	timing.Setup = initialized.Sub(imported)
	if err != nil {
		l.fail(log, p, timing, &rayview.InitializationError{Stage: rayview.StageSetup, Err: err})
		return
	}
	log.Debug("initialized debug hooks")

	l.mu.Lock()
	if l.closed {
		l.state = Failed{Err: ErrClosed}
		l.mu.Unlock()
		closeModule(ctx, mod)
		l.opts.observer.LoadFinished(timing, ErrClosed)
		p.resolve(ErrClosed)
		return
	}
	l.state = Ready{module: mod}
	l.mu.Unlock()

	log.Info("compute binary loaded",
		slog.Group("timing",
			slog.Int64("overall_ms", timing.Total().Milliseconds()),
			slog.Int64("download_ms", timing.Acquire.Milliseconds()),
			slog.Int64("init_ms", timing.Setup.Milliseconds()),
		),
	)
	l.opts.observer.LoadFinished(timing, nil)
	p.resolve(nil)
}

func (l *Loader) fail(log *slog.Logger, p *Pending, timing rayview.LoadTiming, err *rayview.InitializationError) {
	l.mu.Lock()
	l.state = Failed{Err: err}
	l.mu.Unlock()

	log.Error("an exception occurred during module initialization",
		"stage", string(err.Stage), "error", err.Err)
	l.opts.observer.LoadFinished(timing, err)
	p.resolve(err)
}

// acquire calls the Source, converting a panic into an error.
func (l *Loader) acquire(ctx context.Context) (mod Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			mod, err = nil, fmt.Errorf("loader: source panicked: %v", r)
		}
	}()
	if l.src == nil {
		return nil, errNilSource
	}
	mod, err = l.src.Load(ctx)
	if err == nil && mod == nil {
		err = errNoModule
	}
	return mod, err
}

// setup runs the one-time post-load step, converting a panic into an error.
func (l *Loader) setup(ctx context.Context, mod Module) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader: post-load setup panicked: %v", r)
		}
	}()
	return mod.PostLoadSetup(ctx)
}

// RequestFrame asks the module for one frame and returns its bytes
// unchanged. It fails with rayview.ErrNotInitialized unless the loader is
// Ready. The readiness check happens synchronously at call time.
func (l *Loader) RequestFrame(ctx context.Context) ([]byte, error) {
	l.mu.Lock()
	st := l.state
	l.mu.Unlock()

	ready, ok := st.(Ready)
	if !ok {
		return nil, fmt.Errorf("%w (state %s)", rayview.ErrNotInitialized, st.Kind())
	}

	log := l.logger()
	log.Info("rendering scene")
	start := l.opts.clock.Now()
	frame, err := ready.module.ProduceFrame(ctx)
	took := l.opts.clock.Now().Sub(start)
	l.opts.observer.FrameRendered(took, len(frame), err)
	if err != nil {
		log.Error("rendering failed", "error", err, "took", took)
		return nil, err
	}
	log.Info("rendering complete", "took_ms", took.Milliseconds(), "bytes", len(frame))
	return frame, nil
}

// Close releases the module if it is loaded and fails every later frame
// request. A load still in flight releases its module when it finishes.
// Close is idempotent.
func (l *Loader) Close(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	ready, isReady := l.state.(Ready)
	if _, loading := l.state.(Loading); !loading {
		l.state = Failed{Err: ErrClosed}
	}
	l.mu.Unlock()

	if !isReady {
		return nil
	}
	if c, ok := ready.module.(closer); ok {
		return c.Close(ctx)
	}
	return nil
}

// closeModule releases a module that arrived after Close.
func closeModule(ctx context.Context, mod Module) {
	if c, ok := mod.(closer); ok {
		_ = c.Close(ctx)
	}
}

func (l *Loader) logger() *slog.Logger {
	if l.opts.logger != nil {
		return l.opts.logger
	}
	return rayview.Logger()
}
