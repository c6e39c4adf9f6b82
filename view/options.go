// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"log/slog"

	"github.com/gogpu/rayview"
)

// Option configures an Element during creation.
//
// Example:
//
//	el, err := view.New(l, s,
//	    view.WithDimensions(rayview.Dim(1280, 720)),
//	    view.WithLogger(logger),
//	)
type Option func(*options)

type options struct {
	dim      rayview.Dimensions
	logger   *slog.Logger
	observer rayview.Observer
}

func defaultOptions() options {
	return options{
		dim:      rayview.DefaultDimensions,
		observer: rayview.NopObserver{},
	}
}

// WithDimensions sets the canvas size. The default is
// rayview.DefaultDimensions. Degenerate sizes make New fail.
func WithDimensions(d rayview.Dimensions) Option {
	return func(o *options) {
		o.dim = d
	}
}

// WithLogger sets the logger for the element and its surface.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver sets the receiver of paint outcomes.
// Nil keeps the no-op observer.
func WithObserver(obs rayview.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
