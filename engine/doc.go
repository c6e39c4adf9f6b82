// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package engine hosts the precompiled ray tracer on wazero and exposes it
// as a loader.Module.
//
// # Module ABI
//
// A compute module exports:
//
//	memory            linear memory holding rendered frames
//	init_debug_hooks  [] -> []               post-load setup, called once
//	draw_scene        [] -> [i32 ptr, i32 len]  one RGBA8 frame at memory[ptr:ptr+len]
//
// and may import:
//
//	env.host_log  [i32 level, i32 ptr, i32 len] -> []
//
// which forwards a UTF-8 message to the host logger. Levels 0..3 map to
// debug, info, warn and error. Export names can be changed with
// WithExports.
//
// # Usage
//
//	rt, err := engine.NewRuntime(ctx)
//	if err != nil {
//	    return err
//	}
//	defer rt.Close(ctx)
//
//	l := loader.New(rt.Source(engine.Open("raytracer_core_bg.wasm")))
//	pending := l.Initialize(ctx)
//
// Binaries come from a file (FromFile), an HTTP(S) URL (FromURL) or memory
// (FromBytes). Frames are copied out of guest memory; their length is not
// checked here, that is the surface's job.
package engine
