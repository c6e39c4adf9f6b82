// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"
)

// ImageHost creates in-memory canvases backed by *image.RGBA.
//
// It is the default host for software rendering, the CLI and tests.
//
// Example:
//
//	host := surface.NewImageHost(surface.WithMaxSize(4096, 4096))
//	s := surface.New(host)
type ImageHost struct {
	maxWidth  int
	maxHeight int
}

// ImageHostOption configures an ImageHost.
type ImageHostOption func(*ImageHost)

// WithMaxSize bounds the canvas size the host provides a 2D context for.
// Larger canvases are created without a context, the way browsers refuse
// oversized canvases. Zero means unlimited.
func WithMaxSize(width, height int) ImageHostOption {
	return func(h *ImageHost) {
		h.maxWidth = width
		h.maxHeight = height
	}
}

// NewImageHost creates an ImageHost.
func NewImageHost(opts ...ImageHostOption) *ImageHost {
	h := &ImageHost{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateCanvas implements Host.
func (h *ImageHost) CreateCanvas(width, height int) (Canvas, error) {
	supported := width > 0 && height > 0 &&
		(h.maxWidth == 0 || width <= h.maxWidth) &&
		(h.maxHeight == 0 || height <= h.maxHeight)

	c := &ImageCanvas{width: width, height: height, supported: supported}
	if supported {
		c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	return c, nil
}

// ImageCanvas is a CPU canvas rendering to an *image.RGBA.
// It is its own Context2D.
type ImageCanvas struct {
	width     int
	height    int
	img       *image.RGBA
	supported bool
	released  bool
	puts      int
}

// Width returns the canvas width.
func (c *ImageCanvas) Width() int {
	return c.width
}

// Height returns the canvas height.
func (c *ImageCanvas) Height() int {
	return c.height
}

// Context2D implements Canvas. It returns nil for canvases the host could
// not back with pixels, and after Release.
func (c *ImageCanvas) Context2D() Context2D {
	if !c.supported || c.released {
		return nil
	}
	return c
}

// PutImageData implements Context2D. Source pixels outside the canvas are
// clipped.
func (c *ImageCanvas) PutImageData(img *image.RGBA, dx, dy int) error {
	if c.released {
		return ErrCanvasReleased
	}
	b := img.Bounds()
	dst := image.Rect(dx, dy, dx+b.Dx(), dy+b.Dy())
	draw.Draw(c.img, dst, img, b.Min, draw.Src)
	c.puts++
	return nil
}

// Clear fills the canvas with c.
func (c *ImageCanvas) Clear(col color.Color) {
	if c.img == nil || c.released {
		return
	}
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
}

// Puts returns how many images were written with PutImageData.
func (c *ImageCanvas) Puts() int {
	return c.puts
}

// Snapshot returns a copy of the current canvas contents, or nil if the
// canvas has no pixels.
func (c *ImageCanvas) Snapshot() *image.RGBA {
	if c.img == nil || c.released {
		return nil
	}
	result := image.NewRGBA(c.img.Rect)
	copy(result.Pix, c.img.Pix)
	return result
}

// Release implements Canvas.
func (c *ImageCanvas) Release() error {
	if c.released {
		return nil
	}
	c.released = true
	c.img = nil
	return nil
}
