// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/rayview"
)

// RenderSurface owns one canvas and its 2D drawing context.
//
// A RenderSurface is NOT thread-safe. It is owned by a single view element
// and nothing else writes to its context.
//
// Example:
//
//	s := surface.New(surface.NewImageHost())
//	if _, err := s.Create(720, 405); err != nil {
//	    return err
//	}
//	err := s.Draw(frame) // len(frame) must be 720*405*4
type RenderSurface struct {
	host   Host
	logger *slog.Logger

	canvas Canvas
	ctx    Context2D
	dim    rayview.Dimensions
}

// New creates a RenderSurface that allocates canvases on host.
// No canvas exists until Create is called.
func New(host Host) *RenderSurface {
	return &RenderSurface{host: host}
}

// SetLogger sets the logger. When unset, rayview.Logger() is used.
func (s *RenderSurface) SetLogger(l *slog.Logger) {
	s.logger = l
}

// Create allocates a canvas of the given size and acquires its 2D context.
//
// It fails with rayview.ErrNoContextAvailable when either side is not
// positive or when the host cannot provide a context. Calling Create again
// replaces the previous canvas, which is released once the new one has a
// context. A failed Create leaves the current canvas in place.
func (s *RenderSurface) Create(width, height int) (Context2D, error) {
	dim := rayview.Dim(width, height)
	if dim.Empty() {
		return nil, fmt.Errorf("%w: degenerate canvas %s", rayview.ErrNoContextAvailable, dim)
	}
	if s.host == nil {
		return nil, fmt.Errorf("%w: no host", rayview.ErrNoContextAvailable)
	}

	canvas, err := s.host.CreateCanvas(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rayview.ErrNoContextAvailable, err)
	}
	ctx := canvas.Context2D()
	if ctx == nil {
		_ = canvas.Release()
		s.log().Warn("failed to acquire rendering context to canvas", "size", dim.String())
		return nil, fmt.Errorf("%w: host refused a 2d context for %s", rayview.ErrNoContextAvailable, dim)
	}

	s.drop()
	s.canvas = canvas
	s.ctx = ctx
	s.dim = dim
	return ctx, nil
}

// Draw writes buffer to the whole surface at the origin.
//
// It fails with rayview.ErrNoSurface when no context exists, and with a
// *rayview.ShapeError when len(buffer) != width*height*4. On failure the
// surface is left unchanged.
func (s *RenderSurface) Draw(buffer []byte) error {
	if s.ctx == nil {
		return rayview.ErrNoSurface
	}
	img, err := NewImageData(buffer, s.dim)
	if err != nil {
		return err
	}
	return s.ctx.PutImageData(img, 0, 0)
}

// Destroy drops the context and releases the canvas. Subsequent draws
// fail with rayview.ErrNoSurface until Create is called again.
func (s *RenderSurface) Destroy() error {
	canvas := s.canvas
	s.canvas, s.ctx, s.dim = nil, nil, rayview.Dimensions{}
	if canvas == nil {
		return nil
	}
	return canvas.Release()
}

// drop releases the current canvas, if any, ignoring release errors.
func (s *RenderSurface) drop() {
	_ = s.Destroy()
}

// Canvas returns the current canvas, or nil before Create.
func (s *RenderSurface) Canvas() Canvas {
	return s.canvas
}

// Context returns the current 2D context, or nil before Create.
func (s *RenderSurface) Context() Context2D {
	return s.ctx
}

// Dimensions returns the size of the current canvas.
func (s *RenderSurface) Dimensions() rayview.Dimensions {
	return s.dim
}

func (s *RenderSurface) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return rayview.Logger()
}

// NewImageData wraps buffer as an RGBA image of size dim without copying.
// It fails with a *rayview.ShapeError when len(buffer) != dim.BufferLen();
// buffers are never truncated or padded.
func NewImageData(buffer []byte, dim rayview.Dimensions) (*image.RGBA, error) {
	want := dim.BufferLen()
	if want == 0 || len(buffer) != want {
		return nil, &rayview.ShapeError{Got: len(buffer), Want: want, Dim: dim}
	}
	return &image.RGBA{
		Pix:    buffer,
		Stride: dim.Stride(),
		Rect:   dim.Rect(),
	}, nil
}
