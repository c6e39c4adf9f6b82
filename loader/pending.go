// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loader

import "context"

// Pending is the awaitable result of Initialize.
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// resolve records the outcome. Called exactly once by the load goroutine.
func (p *Pending) resolve(err error) {
	p.err = err
	close(p.done)
}

// Done is closed when initialization has finished, successfully or not.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until initialization finishes or ctx is done.
// It returns the *rayview.InitializationError on failure, or ctx.Err()
// if ctx ends first. Giving up on Wait does not cancel the load.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the initialization error once Done is closed, and nil
// before that or on success.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}
