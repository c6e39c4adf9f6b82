// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loader

import (
	"log/slog"

	"github.com/gogpu/rayview"
)

// Option configures a Loader during creation.
//
// Example:
//
//	l := loader.New(src,
//	    loader.WithLogger(logger),
//	    loader.WithObserver(collector),
//	)
type Option func(*options)

type options struct {
	clock    rayview.Clock
	logger   *slog.Logger
	observer rayview.Observer
}

func defaultOptions() options {
	return options{
		clock:    rayview.SystemClock{},
		observer: rayview.NopObserver{},
	}
}

// WithClock sets the clock used for load and render timings.
// Nil keeps the system clock.
func WithClock(c rayview.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger. When unset, the loader logs through
// rayview.Logger() at the time of each call.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver sets the receiver of load and render measurements.
// Nil keeps the no-op observer.
func WithObserver(obs rayview.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
