// Package tensor provides the batched RGB image representation shared by the
// transform packages: a flat float32 buffer with [Batch, Height, Width,
// Channels] layout and values conventionally in the [0,1] range.
package tensor

import (
	"errors"
	"fmt"
)

// ErrNilBatch is returned when an operation receives a nil or empty batch
// where an image batch was expected.
var ErrNilBatch = errors.New("expected an image batch, got nil")

// ShapeError reports a batch whose dimensions violate an operation's
// structural requirements.
type ShapeError struct {
	Shape  [4]int
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid batch shape [%d %d %d %d]: %s",
		e.Shape[0], e.Shape[1], e.Shape[2], e.Shape[3], e.Reason)
}

// Batch is a four-dimensional image batch with shape (B, H, W, C) stored
// row-major in a single contiguous slice, innermost dimension C. A Batch
// owns its Data; transforms return a new Batch and never alias caller data
// unless documented (the identity shortcut in offset returns the input).
type Batch struct {
	B, H, W, C int
	Data       []float32
}

// New creates a zero-filled batch of the given shape.
func New(b, h, w, c int) *Batch {
	return &Batch{B: b, H: h, W: w, C: c, Data: make([]float32, b*h*w*c)}
}

// NewFilled creates a batch with every pixel set to the given RGB color.
// The channel count must be 3.
func NewFilled(b, h, w int, r, g, bl float32) *Batch {
	out := New(b, h, w, 3)
	for i := 0; i < len(out.Data); i += 3 {
		out.Data[i+0] = r
		out.Data[i+1] = g
		out.Data[i+2] = bl
	}
	return out
}

// Validate checks structural consistency: positive dimensions and a data
// slice matching the declared shape.
func (t *Batch) Validate() error {
	if t == nil || t.Data == nil {
		return ErrNilBatch
	}
	if t.B <= 0 || t.H <= 0 || t.W <= 0 || t.C <= 0 {
		return &ShapeError{Shape: t.Shape(), Reason: "all dimensions must be positive"}
	}
	if len(t.Data) != t.B*t.H*t.W*t.C {
		return &ShapeError{
			Shape:  t.Shape(),
			Reason: fmt.Sprintf("data length %d does not match shape", len(t.Data)),
		}
	}
	return nil
}

// Shape returns the (B, H, W, C) dimensions as an array.
func (t *Batch) Shape() [4]int {
	if t == nil {
		return [4]int{}
	}
	return [4]int{t.B, t.H, t.W, t.C}
}

// At returns the sample at (frame b, row y, column x, channel c).
func (t *Batch) At(b, y, x, c int) float32 {
	return t.Data[((b*t.H+y)*t.W+x)*t.C+c]
}

// Set writes the sample at (frame b, row y, column x, channel c).
func (t *Batch) Set(b, y, x, c int, v float32) {
	t.Data[((b*t.H+y)*t.W+x)*t.C+c] = v
}

// Row returns the contiguous slice backing row y of frame b, length W*C.
// The slice aliases the batch's Data.
func (t *Batch) Row(b, y int) []float32 {
	off := (b*t.H + y) * t.W * t.C
	return t.Data[off : off+t.W*t.C]
}

// Pixel returns the contiguous slice for one pixel, length C.
func (t *Batch) Pixel(b, y, x int) []float32 {
	off := ((b*t.H+y)*t.W + x) * t.C
	return t.Data[off : off+t.C]
}

// Clone returns an independent deep copy of the batch.
func (t *Batch) Clone() *Batch {
	out := &Batch{B: t.B, H: t.H, W: t.W, C: t.C, Data: make([]float32, len(t.Data))}
	copy(out.Data, t.Data)
	return out
}

// Clamp01 clamps every sample into [0,1] in place and returns the receiver.
func (t *Batch) Clamp01() *Batch {
	for i, v := range t.Data {
		if v < 0 {
			t.Data[i] = 0
		} else if v > 1 {
			t.Data[i] = 1
		}
	}
	return t
}

// Clamped returns a clamped copy, leaving the receiver untouched.
func (t *Batch) Clamped() *Batch {
	return t.Clone().Clamp01()
}
