// Package offset shifts batched RGB images along either axis, GIMP-style:
// content can wrap around the opposite edge or slide over a solid fill.
// Offsets are given in pixels or as a percentage of the dimension, with a
// half-dimension convenience mode for recentering equirectangular panoramas.
package offset

import (
	"math"

	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/tensor"
)

// Units selects how the numeric X/Y offsets are interpreted.
type Units string

const (
	UnitsPixels  Units = "pixels"
	UnitsPercent Units = "percent"
)

// EdgeMode selects what happens to regions the shift exposes.
type EdgeMode string

const (
	// EdgeWrap rotates content cyclically; nothing is lost.
	EdgeWrap EdgeMode = "wrap"
	// EdgeFillColor fills exposed regions with Options.Fill.
	EdgeFillColor EdgeMode = "fill_color"
	// EdgeBlack fills exposed regions with black.
	EdgeBlack EdgeMode = "black"
)

// Options holds the parameters for one offset operation.
type Options struct {
	Units          Units
	X, Y           float64
	AutoHalfWidth  bool
	AutoHalfHeight bool
	EdgeMode       EdgeMode
	Fill           [3]float32
}

// DefaultOptions returns a no-op wrap configuration.
func DefaultOptions() Options {
	return Options{Units: UnitsPixels, EdgeMode: EdgeWrap}
}

// Apply shifts the batch by the resolved per-axis offsets. The input must be
// a valid 3-channel batch; it is never modified. When both resolved offsets
// are zero the input batch itself is returned.
func Apply(img *tensor.Batch, opts Options) (*tensor.Batch, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if img.C != 3 {
		return nil, &tensor.ShapeError{Shape: img.Shape(), Reason: "expected 3-channel image"}
	}

	xPx := resolvePixels(opts.X, img.W, opts.Units, opts.AutoHalfWidth)
	yPx := resolvePixels(opts.Y, img.H, opts.Units, opts.AutoHalfHeight)
	xPx = normalize(xPx, img.W)
	yPx = normalize(yPx, img.H)

	if xPx == 0 && yPx == 0 {
		return img, nil
	}

	if opts.EdgeMode == EdgeWrap {
		return roll(img, yPx, xPx), nil
	}
	return shiftFill(img, yPx, xPx, opts), nil
}

// resolvePixels turns a raw offset value into whole pixels. The auto flag
// overrides the numeric value entirely with half the dimension.
func resolvePixels(v float64, dim int, units Units, autoHalf bool) int {
	if autoHalf {
		return dim / 2
	}
	if units == UnitsPercent {
		return int(math.Round(v / 100.0 * float64(dim)))
	}
	return int(math.Round(v))
}

// normalize reduces an offset modulo the dimension, then folds values above
// dim/2 negative so the shift magnitude never exceeds half the dimension.
// An offset of exactly dim/2 stays positive (strict comparison); the
// half-dimension convenience shift therefore always moves content right/down.
func normalize(px, dim int) int {
	if dim == 0 {
		return px
	}
	px %= dim
	if px < 0 {
		px += dim
	}
	if px > dim/2 {
		px -= dim
	}
	return px
}

// roll applies a joint cyclic rotation along both spatial axes. Positive
// shifts move content toward higher indices; pixels leaving one edge
// re-enter at the opposite edge.
func roll(img *tensor.Batch, yPx, xPx int) *tensor.Batch {
	out := tensor.New(img.B, img.H, img.W, img.C)
	// Column rotation expressed in samples within a row.
	xShift := ((xPx % img.W) + img.W) % img.W
	headLen := (img.W - xShift) * img.C

	for b := 0; b < img.B; b++ {
		for y := 0; y < img.H; y++ {
			dstY := ((y+yPx)%img.H + img.H) % img.H
			src := img.Row(b, y)
			dst := out.Row(b, dstY)
			// src[0 : W-xShift] lands at dst[xShift:], the tail wraps to dst[0:].
			copy(dst[xShift*img.C:], src[:headLen])
			copy(dst, src[headLen:])
		}
	}
	return out
}

// shiftFill pastes the source at a shifted position onto a filled canvas.
func shiftFill(img *tensor.Batch, yPx, xPx int, opts Options) *tensor.Batch {
	var out *tensor.Batch
	if opts.EdgeMode == EdgeFillColor {
		out = tensor.NewFilled(img.B, img.H, img.W, opts.Fill[0], opts.Fill[1], opts.Fill[2])
	} else {
		out = tensor.New(img.B, img.H, img.W, img.C)
	}

	srcX, dstX, copyW := pasteSpan(xPx, img.W)
	srcY, dstY, copyH := pasteSpan(yPx, img.H)
	if copyW <= 0 || copyH <= 0 {
		return out
	}

	for b := 0; b < img.B; b++ {
		for y := 0; y < copyH; y++ {
			src := img.Row(b, srcY+y)
			dst := out.Row(b, dstY+y)
			copy(dst[dstX*img.C:(dstX+copyW)*img.C], src[srcX*img.C:(srcX+copyW)*img.C])
		}
	}
	return out
}

// pasteSpan computes the source start, destination start and copy length for
// one axis. A positive shift copies from index 0 into index px; a negative
// shift copies from index -px into index 0.
func pasteSpan(px, dim int) (src, dst, length int) {
	if px >= 0 {
		return 0, px, dim - px
	}
	return -px, 0, dim + px
}
