// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ErrNoDrawer is returned by NewTextureHost for a nil drawer.
var ErrNoDrawer = errors.New("surface: texture host requires a gpucontext.TextureDrawer")

// textureDestroyer matches the Destroy method of GPU textures.
type textureDestroyer interface {
	Destroy()
}

// TextureHost presents canvases as GPU textures through a
// gpucontext.TextureDrawer, typically obtained from a gogpu window
// context with AsTextureDrawer().
//
// The texture is created lazily on the first put and updated in place
// afterwards. Textures without gpucontext.TextureUpdater are recreated on
// every put.
type TextureHost struct {
	drawer gpucontext.TextureDrawer
}

// NewTextureHost creates a host that draws through drawer.
func NewTextureHost(drawer gpucontext.TextureDrawer) (*TextureHost, error) {
	if drawer == nil {
		return nil, ErrNoDrawer
	}
	return &TextureHost{drawer: drawer}, nil
}

// Format returns the texel format frames are uploaded in.
func (h *TextureHost) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// CreateCanvas implements Host.
func (h *TextureHost) CreateCanvas(width, height int) (Canvas, error) {
	return &TextureCanvas{drawer: h.drawer, width: width, height: height}, nil
}

// TextureCanvas is a canvas whose pixels live in a GPU texture.
// It is its own Context2D.
type TextureCanvas struct {
	drawer   gpucontext.TextureDrawer
	width    int
	height   int
	texture  gpucontext.Texture
	released bool
}

// Width returns the canvas width.
func (c *TextureCanvas) Width() int {
	return c.width
}

// Height returns the canvas height.
func (c *TextureCanvas) Height() int {
	return c.height
}

// Context2D implements Canvas. It returns nil when the drawer cannot create
// textures.
func (c *TextureCanvas) Context2D() Context2D {
	if c.released || c.drawer.TextureCreator() == nil {
		return nil
	}
	return c
}

// Texture returns the backing texture, or nil before the first put.
func (c *TextureCanvas) Texture() gpucontext.Texture {
	return c.texture
}

// PutImageData implements Context2D. The image must cover the whole canvas;
// textures are uploaded in full.
func (c *TextureCanvas) PutImageData(img *image.RGBA, dx, dy int) error {
	if c.released {
		return ErrCanvasReleased
	}
	b := img.Bounds()
	if b.Dx() != c.width || b.Dy() != c.height {
		return fmt.Errorf("surface: texture upload of %dx%d into %dx%d canvas", b.Dx(), b.Dy(), c.width, c.height)
	}
	data := img.Pix
	if b.Min != (image.Point{}) || img.Stride != b.Dx()*4 {
		data = packRGBA(img)
	}

	if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return fmt.Errorf("surface: texture update failed: %w", err)
		}
	} else if err := c.upload(data); err != nil {
		return err
	}

	return c.drawer.DrawTexture(c.texture, float32(dx), float32(dy))
}

// upload replaces the backing texture with a new one holding data. It is
// used for the first put and for textures that cannot be updated in place.
func (c *TextureCanvas) upload(data []byte) error {
	creator := c.drawer.TextureCreator()
	if creator == nil {
		return ErrNoDrawer
	}
	tex, err := creator.NewTextureFromRGBA(c.width, c.height, data)
	if err != nil {
		return fmt.Errorf("surface: NewTextureFromRGBA failed: %w", err)
	}
	// Frames carry straight alpha.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(false)
	}
	if d, ok := c.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	c.texture = tex
	return nil
}

// Release implements Canvas. It destroys the backing texture.
func (c *TextureCanvas) Release() error {
	if c.released {
		return nil
	}
	c.released = true
	if d, ok := c.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	c.texture = nil
	return nil
}

// packRGBA copies img into a tightly packed buffer.
func packRGBA(img *image.RGBA) []byte {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	out := make([]byte, rowLen*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out[y*rowLen:], img.Pix[start:start+rowLen])
	}
	return out
}
