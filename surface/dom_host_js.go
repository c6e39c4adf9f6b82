// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build js && wasm

package surface

import (
	"errors"
	"image"
	"syscall/js"
)

// ErrNoDocument is returned when no browser document is reachable.
var ErrNoDocument = errors.New("surface: no document available")

// DOMHost creates <canvas> elements in a browser document and appends them
// to a parent node.
type DOMHost struct {
	document js.Value
	parent   js.Value
}

// NewDOMHost creates a host that appends canvases to parent. An undefined
// parent means document.body.
func NewDOMHost(parent js.Value) (*DOMHost, error) {
	document := js.Global().Get("document")
	if !document.Truthy() {
		return nil, ErrNoDocument
	}
	if !parent.Truthy() {
		parent = document.Get("body")
	}
	return &DOMHost{document: document, parent: parent}, nil
}

// CreateCanvas implements Host.
func (h *DOMHost) CreateCanvas(width, height int) (Canvas, error) {
	el := h.document.Call("createElement", "canvas")
	el.Set("width", width)
	el.Set("height", height)
	h.parent.Call("appendChild", el)

	c := &DOMCanvas{el: el, width: width, height: height}
	if ctx := el.Call("getContext", "2d"); ctx.Truthy() {
		c.ctx = ctx
	}
	return c, nil
}

// DOMCanvas wraps a <canvas> element and its CanvasRenderingContext2D.
type DOMCanvas struct {
	el       js.Value
	ctx      js.Value
	width    int
	height   int
	released bool
}

// Width returns the canvas width.
func (c *DOMCanvas) Width() int { return c.width }

// Height returns the canvas height.
func (c *DOMCanvas) Height() int { return c.height }

// Element returns the underlying <canvas> element.
func (c *DOMCanvas) Element() js.Value { return c.el }

// Context2D implements Canvas.
func (c *DOMCanvas) Context2D() Context2D {
	if c.released || !c.ctx.Truthy() {
		return nil
	}
	return c
}

// PutImageData implements Context2D by copying img into a Uint8ClampedArray
// and calling putImageData.
func (c *DOMCanvas) PutImageData(img *image.RGBA, dx, dy int) error {
	if c.released {
		return ErrCanvasReleased
	}
	b := img.Bounds()
	pix := img.Pix
	if b.Min != (image.Point{}) || img.Stride != b.Dx()*4 {
		pix = packRGBA(img)
	}
	arr := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(arr, pix)
	data := js.Global().Get("ImageData").New(arr, b.Dx(), b.Dy())
	c.ctx.Call("putImageData", data, dx, dy)
	return nil
}

// Release removes the element from the document.
func (c *DOMCanvas) Release() error {
	if c.released {
		return nil
	}
	c.released = true
	c.el.Call("remove")
	c.ctx = js.Undefined()
	return nil
}

func registerPlatform(r *Registry) {
	r.Register("dom", 50, func(Options) (Host, error) {
		h, err := NewDOMHost(js.Undefined())
		if err != nil {
			return nil, err
		}
		return h, nil
	}, func() bool {
		return js.Global().Get("document").Truthy()
	})
}
