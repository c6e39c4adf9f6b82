// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// ErrFrameOutOfBounds is returned when the frame function reports a
// region outside guest memory.
var ErrFrameOutOfBounds = errors.New("engine: frame outside module memory")

// ExportError reports a missing or mistyped module export.
type ExportError struct {
	Name   string
	Reason string
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("engine: export %q %s", e.Name, e.Reason)
}

// Instance is an instantiated compute module. It implements loader.Module.
//
// Instance is NOT safe for concurrent use: guest functions share one
// linear memory and must not run concurrently.
type Instance struct {
	mod      api.Module
	compiled wazero.CompiledModule
	mem      api.Memory
	setup    api.Function
	frame    api.Function
	names    Exports
}

// bind resolves the exports an Instance calls and checks their signatures.
func bind(mod api.Module, compiled wazero.CompiledModule, names Exports) (*Instance, error) {
	mem := mod.ExportedMemory(names.Memory)
	if mem == nil {
		return nil, &ExportError{Name: names.Memory, Reason: "is not an exported memory"}
	}

	setup := mod.ExportedFunction(names.Setup)
	if setup == nil {
		return nil, &ExportError{Name: names.Setup, Reason: "is not an exported function"}
	}
	def := setup.Definition()
	if len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 0 {
		return nil, &ExportError{Name: names.Setup, Reason: "must have type [] -> []"}
	}

	frame := mod.ExportedFunction(names.Frame)
	if frame == nil {
		return nil, &ExportError{Name: names.Frame, Reason: "is not an exported function"}
	}
	def = frame.Definition()
	results := def.ResultTypes()
	if len(def.ParamTypes()) != 0 || len(results) != 2 ||
		results[0] != api.ValueTypeI32 || results[1] != api.ValueTypeI32 {
		return nil, &ExportError{Name: names.Frame, Reason: "must have type [] -> [i32 i32]"}
	}

	return &Instance{
		mod:      mod,
		compiled: compiled,
		mem:      mem,
		setup:    setup,
		frame:    frame,
		names:    names,
	}, nil
}

// Name returns the instantiated module name.
func (i *Instance) Name() string {
	return i.mod.Name()
}

// PostLoadSetup calls the setup export once.
func (i *Instance) PostLoadSetup(ctx context.Context) error {
	if _, err := i.setup.Call(ctx); err != nil {
		return fmt.Errorf("engine: %s: %w", i.names.Setup, err)
	}
	return nil
}

// ProduceFrame calls the frame export and copies the reported region out
// of guest memory, so the returned buffer stays valid across later guest
// calls.
func (i *Instance) ProduceFrame(ctx context.Context) ([]byte, error) {
	res, err := i.frame.Call(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: %s: %w", i.names.Frame, err)
	}
	ptr, size := api.DecodeU32(res[0]), api.DecodeU32(res[1])

	view, ok := i.mem.Read(ptr, size)
	if !ok {
		return nil, fmt.Errorf("%w: ptr=%d len=%d memory=%d", ErrFrameOutOfBounds, ptr, size, i.mem.Size())
	}
	out := make([]byte, len(view))
	copy(out, view)
	return out, nil
}

// Close releases the module instance and its compiled code.
func (i *Instance) Close(ctx context.Context) error {
	return errors.Join(i.mod.Close(ctx), i.compiled.Close(ctx))
}
