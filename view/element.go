// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/loader"
	"github.com/gogpu/rayview/surface"
)

var (
	errNilLoader  = errors.New("view: nil loader")
	errNilSurface = errors.New("view: nil surface")
)

// State is the element lifecycle as seen by the host page.
type State int

const (
	// StateUnmounted means Attach has not been called, or Detach has.
	StateUnmounted State = iota

	// StateAttaching means the element is attached and its module is loading.
	StateAttaching

	// StateReady means the element is attached and can render.
	StateReady

	// StateFailed means the module failed to load. The element stays
	// failed for its lifetime.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateAttaching:
		return "attaching"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Element ties a Loader to a RenderSurface and exposes one render trigger.
//
// Attach creates the surface and starts loading the module without waiting
// for it; RenderAndPaint renders one frame and paints it at the origin.
//
// An Element is NOT safe for concurrent RenderAndPaint calls. Hosts that
// render from several goroutines must serialize them.
type Element struct {
	loader  *loader.Loader
	surface *surface.RenderSurface
	opts    options

	attached bool
}

// New creates an unmounted Element. It fails with
// rayview.ErrInvalidDimensions for degenerate dimensions.
func New(l *loader.Loader, s *surface.RenderSurface, opts ...Option) (*Element, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if l == nil {
		return nil, errNilLoader
	}
	if s == nil {
		return nil, errNilSurface
	}
	if err := o.dim.Validate(); err != nil {
		return nil, err
	}
	if o.logger != nil {
		s.SetLogger(o.logger)
	}
	return &Element{loader: l, surface: s, opts: o}, nil
}

// Dimensions returns the configured canvas size.
func (e *Element) Dimensions() rayview.Dimensions {
	return e.opts.dim
}

// Loader returns the element's loader.
func (e *Element) Loader() *loader.Loader {
	return e.loader
}

// Surface returns the element's surface.
func (e *Element) Surface() *surface.RenderSurface {
	return e.surface
}

// State derives the element state from the attachment and the loader.
func (e *Element) State() State {
	if !e.attached {
		return StateUnmounted
	}
	switch e.loader.State().Kind() {
	case loader.KindReady:
		return StateReady
	case loader.KindFailed:
		return StateFailed
	default:
		return StateAttaching
	}
}

// Attach mounts the element: it creates the surface synchronously and
// starts module initialization without awaiting it.
//
// The returned Pending resolves when loading ends. Load failures are
// reported through it and through the loader state, never through the
// error. The error is non-nil only when the surface could not be created
// (rayview.ErrNoContextAvailable); the load is started regardless.
func (e *Element) Attach(ctx context.Context) (*loader.Pending, error) {
	e.attached = true
	_, err := e.surface.Create(e.opts.dim.Width, e.opts.dim.Height)
	p := e.loader.Initialize(ctx)
	return p, err
}

// RenderAndPaint renders one frame and paints it at the surface origin.
//
// It fails with rayview.ErrNotReady, before touching the surface, unless
// the module has finished loading. Errors from rendering or drawing are
// returned unchanged.
func (e *Element) RenderAndPaint(ctx context.Context) error {
	err := e.renderAndPaint(ctx)
	e.opts.observer.FramePainted(err)
	return err
}

func (e *Element) renderAndPaint(ctx context.Context) error {
	if !e.loader.Ready() {
		return rayview.ErrNotReady
	}
	frame, err := e.loader.RequestFrame(ctx)
	if err != nil {
		return err
	}
	if err := e.surface.Draw(frame); err != nil {
		e.log().Error("drawing frame failed", "error", err)
		return err
	}
	return nil
}

// Detach unmounts the element and releases its surface. The loader and
// its module are kept; a later Attach reuses them.
func (e *Element) Detach() error {
	e.attached = false
	return e.surface.Destroy()
}

func (e *Element) log() *slog.Logger {
	if e.opts.logger != nil {
		return e.opts.logger
	}
	return rayview.Logger()
}
