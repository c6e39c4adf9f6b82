// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
)

// ErrCanvasReleased is returned when drawing to a canvas after Release.
var ErrCanvasReleased = errors.New("surface: canvas released")

// Host is the environment drawables are created in: a browser document, a
// GPU presentation context, or plain memory.
type Host interface {
	// CreateCanvas allocates a drawable of the given pixel size.
	CreateCanvas(width, height int) (Canvas, error)
}

// Canvas is a fixed-size drawable.
//
// Canvases are NOT thread-safe. Each canvas is owned by one RenderSurface.
type Canvas interface {
	// Width returns the canvas width in pixels.
	Width() int

	// Height returns the canvas height in pixels.
	Height() int

	// Context2D returns the 2D drawing context, or nil if the host cannot
	// provide one for this canvas.
	Context2D() Context2D

	// Release detaches the canvas from its host and frees its resources.
	// After Release, the canvas must not be used.
	// Release is idempotent; multiple calls are safe.
	Release() error
}

// Context2D is the 2D drawing context of a Canvas.
type Context2D interface {
	// PutImageData writes img verbatim with its top-left corner at
	// (dx, dy). Pixels replace the destination; there is no blending.
	PutImageData(img *image.RGBA, dx, dy int) error
}

// Snapshotter is an optional interface for canvases whose contents can be
// read back.
type Snapshotter interface {
	// Snapshot returns a copy of the canvas contents.
	Snapshot() *image.RGBA
}
