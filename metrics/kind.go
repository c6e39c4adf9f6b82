// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package metrics

import (
	"context"
	"errors"

	"github.com/gogpu/rayview"
)

// Kind maps err to a bounded label value.
func Kind(err error) string {
	var ie *rayview.InitializationError
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &ie):
		return "init_" + string(ie.Stage)
	case errors.Is(err, rayview.ErrNotReady), errors.Is(err, rayview.ErrNotInitialized):
		return "not_ready"
	case errors.Is(err, rayview.ErrNoSurface), errors.Is(err, rayview.ErrNoContextAvailable):
		return "no_surface"
	case errors.Is(err, rayview.ErrShape):
		return "shape"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
