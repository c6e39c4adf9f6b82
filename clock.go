package rayview

import "time"

// Clock supplies timestamps for load and render timings.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// LoadTiming breaks down one module initialization.
type LoadTiming struct {
	// Acquire is the time spent fetching, compiling and instantiating the binary.
	Acquire time.Duration

	// Setup is the time spent in the post-load setup call.
	Setup time.Duration
}

// Total returns Acquire + Setup.
func (t LoadTiming) Total() time.Duration {
	return t.Acquire + t.Setup
}

// Observer receives lifecycle measurements from the loader and the view.
// Implementations must be safe for use from the load goroutine.
type Observer interface {
	// LoadFinished is called once per loader when initialization ends.
	// err is nil on success.
	LoadFinished(timing LoadTiming, err error)

	// FrameRendered is called after every frame request that reached the
	// compute module.
	FrameRendered(took time.Duration, size int, err error)

	// FramePainted is called after every render trigger with its outcome.
	FramePainted(err error)
}

// NopObserver discards all measurements.
type NopObserver struct{}

func (NopObserver) LoadFinished(LoadTiming, error)          {}
func (NopObserver) FrameRendered(time.Duration, int, error) {}
func (NopObserver) FramePainted(error)                      {}
