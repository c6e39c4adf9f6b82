package rayview

import (
	"errors"
	"fmt"
)

// Errors shared by the loader, surface and view packages.
var (
	// ErrNotInitialized is returned by the loader when a frame is requested
	// before the compute module reached the ready state.
	ErrNotInitialized = errors.New("rayview: compute module not initialized")

	// ErrNotReady is returned by the view element when a render is triggered
	// before the compute module finished loading.
	ErrNotReady = errors.New("rayview: binary not yet initialized, cannot render")

	// ErrNoContextAvailable is returned when the host cannot provide a 2D
	// drawing context for a new surface.
	ErrNoContextAvailable = errors.New("rayview: no drawing context available")

	// ErrNoSurface is returned when a draw is attempted before a surface
	// and its context exist.
	ErrNoSurface = errors.New("rayview: no rendering context has been set up")

	// ErrShape matches every *ShapeError via errors.Is.
	ErrShape = errors.New("rayview: pixel buffer shape mismatch")

	// ErrInvalidDimensions is returned for degenerate frame sizes at
	// configuration time.
	ErrInvalidDimensions = errors.New("rayview: invalid dimensions")
)

// ShapeError reports a pixel buffer whose length is not width*height*4.
type ShapeError struct {
	Got  int
	Want int
	Dim  Dimensions
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("rayview: pixel buffer is %d bytes, want %d for %s RGBA", e.Got, e.Want, e.Dim)
}

// Is makes errors.Is(err, ErrShape) match.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// LoadStage names the step of module initialization that failed.
type LoadStage string

const (
	// StageAcquire covers fetching, compiling and instantiating the binary.
	StageAcquire LoadStage = "acquire"

	// StageSetup covers the one-time post-load setup call.
	StageSetup LoadStage = "setup"
)

// InitializationError reports a compute module that failed to load or
// whose post-load setup failed.
type InitializationError struct {
	Stage LoadStage
	Err   error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("rayview: module initialization failed during %s: %v", e.Stage, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}
