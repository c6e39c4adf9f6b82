package rayview

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestDefaultDimensionsBufferLen(t *testing.T) {
	if got := DefaultDimensions.BufferLen(); got != 1_166_400 {
		t.Errorf("DefaultDimensions.BufferLen() = %d, want 1166400", got)
	}
	if got := DefaultDimensions.Stride(); got != 2880 {
		t.Errorf("Stride() = %d, want 2880", got)
	}
	if got := DefaultDimensions.Rect(); got != image.Rect(0, 0, 720, 405) {
		t.Errorf("Rect() = %v", got)
	}
	if got := DefaultDimensions.String(); got != "720x405" {
		t.Errorf("String() = %q", got)
	}
}

func TestDimensionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		dim     Dimensions
		wantErr bool
	}{
		{"default", DefaultDimensions, false},
		{"one pixel", Dim(1, 1), false},
		{"zero", Dim(0, 0), true},
		{"zero width", Dim(0, 405), true},
		{"negative height", Dim(720, -1), true},
		{"overflow", Dim(math.MaxInt32, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dim.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimensions) {
					t.Errorf("Validate() = %v, want ErrInvalidDimensions", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestEmptyDimensionsBufferLen(t *testing.T) {
	if got := Dim(-3, 5).BufferLen(); got != 0 {
		t.Errorf("BufferLen() = %d, want 0", got)
	}
}

func TestShapeErrorIs(t *testing.T) {
	err := error(&ShapeError{Got: 12, Want: 16, Dim: Dim(2, 2)})
	if !errors.Is(err, ErrShape) {
		t.Error("ShapeError should match ErrShape")
	}
	var se *ShapeError
	if !errors.As(err, &se) || se.Got != 12 || se.Want != 16 {
		t.Errorf("errors.As(ShapeError) = %+v", se)
	}
}

func TestInitializationErrorUnwrap(t *testing.T) {
	cause := errors.New("trap")
	err := error(&InitializationError{Stage: StageSetup, Err: cause})
	if !errors.Is(err, cause) {
		t.Error("InitializationError should unwrap to its cause")
	}
	if got := err.Error(); got != "rayview: module initialization failed during setup: trap" {
		t.Errorf("Error() = %q", got)
	}
}
