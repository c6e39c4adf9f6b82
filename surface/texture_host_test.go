// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

type mockTexture struct {
	gpucontext.Texture

	data          []byte
	premultiplied bool
	updates       int
	destroyed     int
}

func (t *mockTexture) UpdateData(data []byte) error {
	t.data = append(t.data[:0], data...)
	t.updates++
	return nil
}

func (t *mockTexture) SetPremultiplied(v bool) { t.premultiplied = v }

func (t *mockTexture) Destroy() { t.destroyed++ }

// fixedTexture cannot be updated in place.
type fixedTexture struct {
	gpucontext.Texture

	data      []byte
	destroyed int
}

func (t *fixedTexture) Destroy() { t.destroyed++ }

type mockCreator struct {
	gpucontext.TextureCreator

	created  []*mockTexture
	fixed    []*fixedTexture
	noUpdate bool
	err      error
}

func (c *mockCreator) NewTextureFromRGBA(w, h int, data []byte) (gpucontext.Texture, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.noUpdate {
		tex := &fixedTexture{data: append([]byte(nil), data...)}
		c.fixed = append(c.fixed, tex)
		return tex, nil
	}
	tex := &mockTexture{data: append([]byte(nil), data...), premultiplied: true}
	c.created = append(c.created, tex)
	return tex, nil
}

type drawCall struct {
	tex  gpucontext.Texture
	x, y float32
}

type mockDrawer struct {
	gpucontext.TextureDrawer

	creator *mockCreator
	draws   []drawCall
}

func (d *mockDrawer) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	d.draws = append(d.draws, drawCall{tex: tex, x: x, y: y})
	return nil
}

func (d *mockDrawer) TextureCreator() gpucontext.TextureCreator {
	if d.creator == nil {
		return nil
	}
	return d.creator
}

func TestNewTextureHostRequiresDrawer(t *testing.T) {
	if _, err := NewTextureHost(nil); !errors.Is(err, ErrNoDrawer) {
		t.Errorf("NewTextureHost(nil) = %v, want ErrNoDrawer", err)
	}
}

func TestTextureHostFormat(t *testing.T) {
	h, err := NewTextureHost(&mockDrawer{creator: &mockCreator{}})
	if err != nil {
		t.Fatal(err)
	}
	if h.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v", h.Format())
	}
}

func TestTextureCanvasUploadsThenUpdates(t *testing.T) {
	creator := &mockCreator{}
	drawer := &mockDrawer{creator: creator}
	host, _ := NewTextureHost(drawer)

	s := New(host)
	if _, err := s.Create(2, 1); err != nil {
		t.Fatalf("Create() = %v", err)
	}

	first := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := s.Draw(first); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if len(creator.created) != 1 {
		t.Fatalf("textures created = %d, want 1", len(creator.created))
	}
	tex := creator.created[0]
	if tex.premultiplied {
		t.Error("texture left premultiplied; frames carry straight alpha")
	}

	second := []byte{8, 7, 6, 5, 4, 3, 2, 1}
	if err := s.Draw(second); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if len(creator.created) != 1 || tex.updates != 1 {
		t.Errorf("created = %d updates = %d, want 1 and 1", len(creator.created), tex.updates)
	}
	if string(tex.data) != string(second) {
		t.Errorf("texture data = %v, want %v", tex.data, second)
	}

	if len(drawer.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(drawer.draws))
	}
	for _, d := range drawer.draws {
		if d.x != 0 || d.y != 0 || d.tex != gpucontext.Texture(tex) {
			t.Errorf("draw = %+v, want texture at origin", d)
		}
	}

	if err := s.Destroy(); err != nil {
		t.Fatal(err)
	}
	if tex.destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", tex.destroyed)
	}
}

func TestTextureCanvasRecreatesFixedTextures(t *testing.T) {
	creator := &mockCreator{noUpdate: true}
	drawer := &mockDrawer{creator: creator}
	host, _ := NewTextureHost(drawer)

	s := New(host)
	if _, err := s.Create(1, 1); err != nil {
		t.Fatalf("Create() = %v", err)
	}
	frames := [][]byte{{1, 1, 1, 1}, {9, 9, 9, 9}}
	for _, f := range frames {
		if err := s.Draw(f); err != nil {
			t.Fatalf("Draw(%v) = %v", f, err)
		}
	}

	if len(creator.fixed) != 2 {
		t.Fatalf("textures created = %d, want 2", len(creator.fixed))
	}
	if creator.fixed[0].destroyed != 1 {
		t.Errorf("replaced texture destroyed = %d, want 1", creator.fixed[0].destroyed)
	}
	if len(drawer.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(drawer.draws))
	}
	for i, d := range drawer.draws {
		got := d.tex.(*fixedTexture).data
		if string(got) != string(frames[i]) {
			t.Errorf("draw %d shows %v, want %v", i, got, frames[i])
		}
	}
}

func TestTextureCanvasNoCreator(t *testing.T) {
	host, _ := NewTextureHost(&mockDrawer{})
	c, err := host.CreateCanvas(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if c.Context2D() != nil {
		t.Error("Context2D() without a texture creator should be nil")
	}
}

func TestTextureCanvasErrors(t *testing.T) {
	want := errors.New("device lost")
	host, _ := NewTextureHost(&mockDrawer{creator: &mockCreator{err: want}})
	c, _ := host.CreateCanvas(1, 1)
	tc := c.(*TextureCanvas)

	if err := tc.PutImageData(image.NewRGBA(image.Rect(0, 0, 1, 1)), 0, 0); !errors.Is(err, want) {
		t.Errorf("PutImageData() = %v, want %v", err, want)
	}
	if err := tc.PutImageData(image.NewRGBA(image.Rect(0, 0, 2, 1)), 0, 0); err == nil {
		t.Error("PutImageData() accepted a partial upload")
	}
	_ = tc.Release()
	if err := tc.PutImageData(image.NewRGBA(image.Rect(0, 0, 1, 1)), 0, 0); !errors.Is(err, ErrCanvasReleased) {
		t.Errorf("PutImageData() after Release = %v, want ErrCanvasReleased", err)
	}
}

func TestPackRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = byte(i)
	}
	sub := src.SubImage(image.Rect(1, 0, 3, 2)).(*image.RGBA)
	got := packRGBA(sub)
	want := []byte{4, 5, 6, 7, 8, 9, 10, 11, 16, 17, 18, 19, 20, 21, 22, 23}
	if string(got) != string(want) {
		t.Errorf("packRGBA() = %v, want %v", got, want)
	}
}
