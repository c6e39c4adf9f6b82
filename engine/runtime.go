// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/loader"
)

// HostModuleName is the import namespace the runtime provides to guests.
const HostModuleName = "env"

// Exports names the functions and memory a compute module must export.
type Exports struct {
	// Memory is the linear memory holding rendered frames.
	Memory string

	// Setup is the post-load setup function: [] -> [].
	Setup string

	// Frame is the frame-production function: [] -> [i32 ptr, i32 len].
	Frame string
}

// DefaultExports returns the export names of the ray tracer core.
func DefaultExports() Exports {
	return Exports{
		Memory: "memory",
		Setup:  "init_debug_hooks",
		Frame:  "draw_scene",
	}
}

// Option configures a Runtime.
type Option func(*runtimeOptions)

type runtimeOptions struct {
	exports     Exports
	interpreter bool
	memoryPages uint32
	logger      *slog.Logger
}

// WithExports overrides the export names modules are bound by.
func WithExports(e Exports) Option {
	return func(o *runtimeOptions) {
		o.exports = e
	}
}

// WithInterpreter selects the wazero interpreter instead of the compiler.
// The interpreter starts faster and runs on every platform.
func WithInterpreter() Option {
	return func(o *runtimeOptions) {
		o.interpreter = true
	}
}

// WithMemoryLimitPages caps guest linear memory, in 64KiB pages.
func WithMemoryLimitPages(pages uint32) Option {
	return func(o *runtimeOptions) {
		o.memoryPages = pages
	}
}

// WithLogger sets the logger guest log lines and engine events go to.
// When unset, rayview.Logger() is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *runtimeOptions) {
		o.logger = l
	}
}

// Runtime hosts compute modules on a wazero runtime.
//
// A Runtime may load any number of modules; each Source it returns
// instantiates a fresh module. Close releases every module it created.
type Runtime struct {
	rt   wazero.Runtime
	opts runtimeOptions
	seq  atomic.Uint64
}

// NewRuntime creates a wazero runtime and registers the host module
// guests may import logging from.
func NewRuntime(ctx context.Context, opts ...Option) (*Runtime, error) {
	o := runtimeOptions{exports: DefaultExports()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := wazero.NewRuntimeConfig()
	if o.interpreter {
		cfg = wazero.NewRuntimeConfigInterpreter()
	}
	if o.memoryPages > 0 {
		cfg = cfg.WithMemoryLimitPages(o.memoryPages)
	}

	r := &Runtime{
		rt:   wazero.NewRuntimeWithConfig(ctx, cfg),
		opts: o,
	}

	_, err := r.rt.NewHostModuleBuilder(HostModuleName).
		NewFunctionBuilder().WithFunc(r.hostLog).Export("host_log").
		Instantiate(ctx)
	if err != nil {
		_ = r.rt.Close(ctx)
		return nil, fmt.Errorf("engine: instantiating host module: %w", err)
	}
	return r, nil
}

// Close releases the runtime and every module instantiated on it.
func (r *Runtime) Close(ctx context.Context) error {
	return r.rt.Close(ctx)
}

// Source returns a loader.Source that fetches bin, compiles it and
// instantiates it on this runtime.
func (r *Runtime) Source(bin Binary) loader.Source {
	return loader.SourceFunc(func(ctx context.Context) (loader.Module, error) {
		return r.Load(ctx, bin)
	})
}

// Load fetches, compiles and instantiates bin, then binds its exports.
func (r *Runtime) Load(ctx context.Context, bin Binary) (*Instance, error) {
	log := r.logger()

	body, err := bin.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched module binary", "name", bin.Name(), "bytes", len(body))

	compiled, err := r.rt.CompileModule(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("engine: compiling %s: %w", bin.Name(), err)
	}

	name := fmt.Sprintf("%s#%d", bin.Name(), r.seq.Add(1))
	mod, err := r.rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, fmt.Errorf("engine: instantiating %s: %w", bin.Name(), err)
	}

	inst, err := bind(mod, compiled, r.opts.exports)
	if err != nil {
		_ = mod.Close(ctx)
		_ = compiled.Close(ctx)
		return nil, err
	}
	return inst, nil
}

// hostLog is exported to guests as env.host_log(level, ptr, len).
func (r *Runtime) hostLog(ctx context.Context, m api.Module, level, ptr, size uint32) {
	log := r.logger()
	mem := m.Memory()
	if mem == nil {
		log.Warn("guest log without memory", "module", m.Name())
		return
	}
	msg, ok := mem.Read(ptr, size)
	if !ok {
		log.Warn("guest log out of bounds", "module", m.Name(), "ptr", ptr, "len", size)
		return
	}
	log.Log(ctx, guestLevel(level), string(msg), "module", m.Name())
}

// guestLevel maps the guest's 0..3 level scale to slog levels.
func guestLevel(level uint32) slog.Level {
	switch level {
	case 0:
		return slog.LevelDebug
	case 1:
		return slog.LevelInfo
	case 2:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func (r *Runtime) logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return rayview.Logger()
}
