// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loader

import "context"

// Module is the initialized compute engine.
//
// A Module is owned by exactly one Loader and is never shared. Calls are
// not serialized by the loader; callers must not produce frames
// concurrently.
type Module interface {
	// PostLoadSetup runs the one-time setup step after loading.
	// It is invoked exactly once, before any frame is requested.
	PostLoadSetup(ctx context.Context) error

	// ProduceFrame renders one RGBA8 frame and returns its bytes.
	// The returned slice is owned by the caller.
	ProduceFrame(ctx context.Context) ([]byte, error)
}

// Source acquires a Module. Load may block for as long as fetching,
// compiling and instantiating the binary takes.
type Source interface {
	Load(ctx context.Context) (Module, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Module, error)

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context) (Module, error) {
	return f(ctx)
}
