// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(js && wasm)

package config

import (
	"errors"
	"strings"
	"testing"
)

func TestDOMBackendNeedsBrowser(t *testing.T) {
	_, err := Parse([]byte(`backend = "dom"`), "rayview.hcl")
	if !errors.Is(err, ErrInvalid) || !strings.Contains(err.Error(), `"dom"`) {
		t.Errorf("Parse(dom) = %v, want ErrInvalid naming the backend", err)
	}
}
