// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface presents raw RGBA frames on a drawable.
//
// A RenderSurface owns one Canvas and its Context2D. The canvas comes from a
// Host, which decouples presentation from the environment:
//
//   - ImageHost: in-memory *image.RGBA canvases (CLI, server, tests)
//   - TextureHost: GPU textures through gpucontext.TextureDrawer
//   - DOMHost: <canvas> elements in a browser document (js/wasm only)
//
// # Frame format
//
// Frames are tightly packed, row-major, non-premultiplied RGBA with 8 bits
// per channel and no padding. A frame for a W x H surface is exactly
// W*H*4 bytes. Frames are written verbatim at the origin; there is no
// scaling, blending or color conversion.
//
// # Usage
//
//	s := surface.New(surface.NewImageHost())
//	if _, err := s.Create(720, 405); err != nil {
//	    return err
//	}
//	if err := s.Draw(frame); err != nil {
//	    return err
//	}
//	defer s.Destroy()
//
// # Registry
//
// Hosts can be selected by name or priority through a Registry:
//
//	r := surface.NewRegistry()
//	surface.RegisterBuiltins(r)
//	host, err := r.NewHost(surface.Options{Drawer: dc.AsTextureDrawer()})
//
// # Thread Safety
//
// RenderSurface and canvases are not safe for concurrent use. Registry is
// safe for concurrent use.
package surface
