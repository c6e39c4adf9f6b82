// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loader

// Kind identifies a State variant.
type Kind uint8

const (
	// KindUnloaded is the initial state.
	KindUnloaded Kind = iota

	// KindLoading means Initialize has started and not yet finished.
	KindLoading

	// KindReady means the module is loaded and set up. Terminal.
	KindReady

	// KindFailed means loading or setup failed. Terminal.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindUnloaded:
		return "unloaded"
	case KindLoading:
		return "loading"
	case KindReady:
		return "ready"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the loader lifecycle value. It is one of Unloaded, Loading,
// Ready or Failed. The module handle is only carried by Ready.
type State interface {
	Kind() Kind
	String() string

	state()
}

// Unloaded is the state before Initialize is called.
type Unloaded struct{}

// Loading is the state while the module is being acquired and set up.
type Loading struct{}

// Ready holds the initialized module handle.
type Ready struct {
	module Module
}

// Failed holds the initialization error.
type Failed struct {
	Err error
}

func (Unloaded) Kind() Kind { return KindUnloaded }
func (Loading) Kind() Kind  { return KindLoading }
func (Ready) Kind() Kind    { return KindReady }
func (Failed) Kind() Kind   { return KindFailed }

func (Unloaded) String() string { return KindUnloaded.String() }
func (Loading) String() string  { return KindLoading.String() }
func (Ready) String() string    { return KindReady.String() }
func (f Failed) String() string { return KindFailed.String() + ": " + f.Err.Error() }

func (Unloaded) state() {}
func (Loading) state()  {}
func (Ready) state()    {}
func (Failed) state()   {}
