package rayview

import (
	"fmt"
	"image"
	"math"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// Dimensions is the fixed frame size shared by the compute module's output
// contract and the surface's buffer-shape check.
type Dimensions struct {
	Width  int
	Height int
}

// DefaultDimensions is the frame size the ray tracer view renders at.
var DefaultDimensions = Dimensions{Width: 720, Height: 405}

// Dim creates Dimensions from width and height.
func Dim(width, height int) Dimensions {
	return Dimensions{Width: width, Height: height}
}

// Validate reports ErrInvalidDimensions for non-positive sizes and for
// sizes whose RGBA buffer length would overflow an int.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, d.Width, d.Height)
	}
	if d.Width > math.MaxInt32/BytesPerPixel/d.Height {
		return fmt.Errorf("%w: %dx%d exceeds the addressable buffer size", ErrInvalidDimensions, d.Width, d.Height)
	}
	return nil
}

// Empty reports whether either side is non-positive.
func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// BufferLen returns the byte length of one RGBA8 frame: width*height*4.
// It returns 0 for empty dimensions.
func (d Dimensions) BufferLen() int {
	if d.Empty() {
		return 0
	}
	return d.Width * d.Height * BytesPerPixel
}

// Stride returns the byte length of one row.
func (d Dimensions) Stride() int {
	return d.Width * BytesPerPixel
}

// Rect returns the frame bounds anchored at the top-left origin.
func (d Dimensions) Rect() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

// String returns "WxH".
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}
