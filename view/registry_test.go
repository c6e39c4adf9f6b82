// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/rayview/loader"
	"github.com/gogpu/rayview/surface"
)

func elementFactory() (*Element, error) {
	return New(loader.New(moduleSource(&frameModule{})), surface.New(&recordingHost{}))
}

func TestValidateTag(t *testing.T) {
	tests := []struct {
		tag string
		ok  bool
	}{
		{DefaultTag, true},
		{"my-element", true},
		{"x-1", true},
		{"a-b.c_d", true},
		{"", false},
		{"raytracer", false},
		{"Ray-tracer", false},
		{"ray-Tracer", false},
		{"1-ray", false},
		{"-ray", false},
		{"ray tracer-x", false},
		{"font-face", false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			err := ValidateTag(tt.tag)
			if tt.ok && err != nil {
				t.Errorf("ValidateTag(%q) = %v", tt.tag, err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidTag) {
				t.Errorf("ValidateTag(%q) = %v, want ErrInvalidTag", tt.tag, err)
			}
		})
	}
}

func TestRegistryDefineCreate(t *testing.T) {
	r := NewRegistry()
	if err := r.Define(DefaultTag, elementFactory); err != nil {
		t.Fatalf("Define() = %v", err)
	}
	if err := r.Define(DefaultTag, elementFactory); !errors.Is(err, ErrAlreadyDefined) {
		t.Errorf("second Define() = %v, want ErrAlreadyDefined", err)
	}
	if err := r.Define("not valid", elementFactory); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("Define(invalid) = %v, want ErrInvalidTag", err)
	}
	if err := r.Define("nil-factory", nil); err == nil {
		t.Error("Define(nil factory) succeeded")
	}

	if _, ok := r.Lookup(DefaultTag); !ok {
		t.Error("Lookup() did not find the defined tag")
	}
	if _, ok := r.Lookup("other-tag"); ok {
		t.Error("Lookup() found an undefined tag")
	}

	a, err := r.Create(DefaultTag)
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	b, err := r.Create(DefaultTag)
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if a == b {
		t.Error("Create() returned the same element twice")
	}
	if a.State() != StateUnmounted {
		t.Errorf("created element state = %v, want unmounted", a.State())
	}

	if _, err := r.Create("other-tag"); !errors.Is(err, ErrUndefinedTag) {
		t.Errorf("Create(undefined) = %v, want ErrUndefinedTag", err)
	}
}

func TestRegistryTags(t *testing.T) {
	r := NewRegistry()
	for _, tag := range []string{"zz-top", DefaultTag, "aa-first"} {
		if err := r.Define(tag, elementFactory); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"aa-first", DefaultTag, "zz-top"}
	if got := r.Tags(); !slices.Equal(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
}
