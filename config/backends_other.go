// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(js && wasm)

package config

// Backends accepted by the backend attribute. The dom backend exists only
// in js/wasm builds.
var Backends = []string{"image", "texture"}
