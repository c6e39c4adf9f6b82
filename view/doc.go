// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package view provides the ray tracer view element.
//
// An Element owns a loader.Loader and a surface.RenderSurface. Attach
// creates the canvas and starts loading the compute module in the
// background; RenderAndPaint asks the module for one frame and paints it.
//
//	el, err := view.New(loader.New(src), surface.New(host))
//	if err != nil {
//	    return err
//	}
//	pending, err := el.Attach(ctx)
//	if err != nil {
//	    return err // no 2D context
//	}
//	if err := pending.Wait(ctx); err != nil {
//	    return err // module failed to load
//	}
//	err = el.RenderAndPaint(ctx)
//
// Elements are created by tag through a Registry, the counterpart of the
// browser's custom element registry. The default tag is "ray-tracer".
package view
