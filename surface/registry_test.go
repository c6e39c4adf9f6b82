// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"
)

func imageFactory(opts Options) (Host, error) {
	return NewImageHost(), nil
}

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, imageFactory, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}

	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, imageFactory, nil)

	if _, ok := r.Get("temp"); !ok {
		t.Fatal("backend should exist before unregister")
	}

	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryList tests priority ordering.
func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, imageFactory, nil)
	r.Register("high", 100, imageFactory, nil)
	r.Register("mid", 50, imageFactory, nil)
	r.Register("off", 200, imageFactory, func() bool { return false })

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"List", r.List(), []string{"off", "high", "mid", "low"}},
		{"Available", r.Available(), []string{"high", "mid", "low"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.got) != len(tt.want) {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
			for i := range tt.want {
				if tt.got[i] != tt.want[i] {
					t.Errorf("[%d] = %s, want %s", i, tt.got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRegistryNewHostByName(t *testing.T) {
	r := NewRegistry()
	r.Register("off", 10, imageFactory, func() bool { return false })

	var nf *BackendNotFoundError
	if _, err := r.NewHostByName("missing", Options{}); !errors.As(err, &nf) || nf.Name != "missing" {
		t.Errorf("NewHostByName(missing) = %v, want BackendNotFoundError", err)
	}
	var ua *BackendUnavailableError
	if _, err := r.NewHostByName("off", Options{}); !errors.As(err, &ua) {
		t.Errorf("NewHostByName(off) = %v, want BackendUnavailableError", err)
	}
}

func TestRegistryNewHostEmpty(t *testing.T) {
	if _, err := NewRegistry().NewHost(Options{}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("NewHost() = %v, want ErrNoBackendAvailable", err)
	}
}

// TestRegisterBuiltinsFallback checks that texture is preferred but falls
// back to image when no drawer is supplied.
func TestRegisterBuiltinsFallback(t *testing.T) {
	r := NewRegistry()
	RegisterBuiltins(r)

	if _, ok := r.Get("image"); !ok {
		t.Fatal("image backend not registered")
	}
	if _, ok := r.Get("texture"); !ok {
		t.Fatal("texture backend not registered")
	}

	h, err := r.NewHost(Options{MaxWidth: 100, MaxHeight: 100})
	if err != nil {
		t.Fatalf("NewHost() = %v", err)
	}
	if _, ok := h.(*ImageHost); !ok {
		t.Errorf("NewHost() = %T, want *ImageHost", h)
	}

	h, err = r.NewHost(Options{Drawer: &mockDrawer{creator: &mockCreator{}}})
	if err != nil {
		t.Fatalf("NewHost() = %v", err)
	}
	if _, ok := h.(*TextureHost); !ok {
		t.Errorf("NewHost() = %T, want *TextureHost", h)
	}

	if _, err := r.NewHostByName("texture", Options{}); !errors.Is(err, ErrNoDrawer) {
		t.Errorf("NewHostByName(texture) = %v, want ErrNoDrawer", err)
	}
}
