// Package rayview presents frames produced by a precompiled WebAssembly
// ray tracer inside a host page through a reusable view element.
//
// # Overview
//
// The compute module is an opaque engine reached through two operations:
// a one-time post-load setup and a frame-production call returning a raw
// RGBA8 buffer. rayview loads that module asynchronously, exposes a
// paintable surface, and on demand pulls a frame and blits it verbatim onto
// the surface. Render requests issued before the module is ready are
// rejected.
//
// # Architecture
//
// The library is organized into:
//   - rayview: Dimensions, the error taxonomy, Clock, Observer, logging
//   - loader: the module lifecycle state machine (Unloaded, Loading, Ready, Failed)
//   - engine: the wazero-backed compute module and its binary sources
//   - surface: RenderSurface and host backends (image, GPU texture, DOM canvas)
//   - view: the Element orchestrator and its explicit tag registry
//   - metrics: a Prometheus Observer
//   - config: HCL configuration files
//
// # Quick Start
//
//	rt, _ := engine.NewRuntime(ctx)
//	defer rt.Close(ctx)
//
//	host := surface.NewImageHost()
//	el, _ := view.New(
//	    loader.New(rt.Source(engine.FromFile("raytracer.wasm"))),
//	    surface.New(host),
//	)
//
//	pending, _ := el.Attach(ctx)
//	if err := pending.Wait(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := el.RenderAndPaint(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordinate System
//
// Pixel buffers are row-major with the origin (0,0) at the top-left.
// Frames are always drawn at the origin at the configured Dimensions.
package rayview
