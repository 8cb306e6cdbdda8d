// Package stereo splits and rebuilds side-by-side (SBS) stereo frames for
// VR180 workflows: extract one eye from an SBS pair, copy one eye across
// both halves, duplicate a mono frame into an SBS pair, or just enforce an
// even frame width. Stereo outputs can be feathered across the center seam.
package stereo

import (
	"fmt"

	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/tensor"
)

// Mode selects the geometric operation to run.
type Mode string

const (
	// ModeExtractHalf returns one eye's half of an SBS pair (SBS -> mono).
	ModeExtractHalf Mode = "sbs_extract_half"
	// ModeCopyHalfToStereo copies the selected half over both halves
	// (SBS -> SBS).
	ModeCopyHalfToStereo Mode = "sbs_copy_half_to_stereo"
	// ModeMonoToStereo duplicates a mono frame into both halves
	// (mono -> SBS).
	ModeMonoToStereo Mode = "mono_to_stereo_copy"
	// ModeEvenCropOnly only enforces an even width.
	ModeEvenCropOnly Mode = "even_crop_only"
)

// Half names one eye's side of an SBS frame.
type Half string

const (
	Left  Half = "left"
	Right Half = "right"
)

// Layout names the stereo viewing convention of an SBS output. Both layouts
// currently produce the same concatenation order, since duplicating a single
// source yields identical left and right content either way.
type Layout string

const (
	CrossEyed Layout = "cross_eyed"
	Parallel  Layout = "parallel"
)

// EvenWidthHandling controls what happens to odd-width input.
type EvenWidthHandling string

const (
	// AutoCropIfOdd drops the last column when the width is odd.
	AutoCropIfOdd EvenWidthHandling = "auto_crop_if_odd"
	// SkipEvenCheck leaves the width alone; splitting modes will fail on
	// odd widths.
	SkipEvenCheck EvenWidthHandling = "skip"
)

// OddWidthError reports that a mode requiring an even width received an odd
// width while even-width handling was set to skip.
type OddWidthError struct {
	Width int
}

func (e *OddWidthError) Error() string {
	return fmt.Sprintf("width %d is odd and even_width_handling=%q: cannot split evenly", e.Width, SkipEvenCheck)
}

// UnknownModeError reports an unrecognized mode value.
type UnknownModeError struct {
	Mode Mode
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown stereo mode: %q", e.Mode)
}

// Options holds the parameters for one stereo operation.
type Options struct {
	Mode       Mode
	SourceHalf Half
	Layout     Layout
	EvenWidth  EvenWidthHandling
	// SeamFeather is the blend band width in columns on each side of the
	// seam, 0 disables feathering. It is clamped to the half width.
	SeamFeather int
}

// DefaultOptions matches the most common VR180 cleanup: copy the left eye
// over both halves, cropping odd widths.
func DefaultOptions() Options {
	return Options{
		Mode:       ModeCopyHalfToStereo,
		SourceHalf: Left,
		Layout:     CrossEyed,
		EvenWidth:  AutoCropIfOdd,
	}
}

// Apply runs the selected stereo operation on the batch. The input is never
// modified; every output has its samples clamped to [0,1].
func Apply(images *tensor.Batch, opts Options) (*tensor.Batch, error) {
	if err := images.Validate(); err != nil {
		return nil, err
	}

	images = ensureEvenWidth(images, opts.EvenWidth)

	switch opts.Mode {
	case ModeEvenCropOnly:
		return images.Clamped(), nil

	case ModeExtractHalf:
		if images.W%2 != 0 {
			return nil, &OddWidthError{Width: images.W}
		}
		half := images.W / 2
		if opts.SourceHalf == Right {
			return sliceWidth(images, half, images.W).Clamp01(), nil
		}
		return sliceWidth(images, 0, half).Clamp01(), nil

	case ModeCopyHalfToStereo:
		if images.W%2 != 0 {
			return nil, &OddWidthError{Width: images.W}
		}
		half := images.W / 2
		var src *tensor.Batch
		if opts.SourceHalf == Right {
			src = sliceWidth(images, half, images.W)
		} else {
			src = sliceWidth(images, 0, half)
		}
		// Concatenate [source, duplicate] for both layouts. concatWidth
		// copies, so feathering the output never touches the source half.
		out := concatWidth(src, src)
		seamFeather(out, opts.SeamFeather, half)
		return out.Clamp01(), nil

	case ModeMonoToStereo:
		// The whole input is one eye's frame.
		out := concatWidth(images, images)
		seamFeather(out, opts.SeamFeather, images.W)
		return out.Clamp01(), nil

	default:
		return nil, &UnknownModeError{Mode: opts.Mode}
	}
}

// ensureEvenWidth drops the last column of odd-width batches when handling
// is AutoCropIfOdd. Even widths and skip mode return the input unchanged.
func ensureEvenWidth(images *tensor.Batch, handling EvenWidthHandling) *tensor.Batch {
	if handling == SkipEvenCheck || images.W%2 == 0 {
		return images
	}
	return sliceWidth(images, 0, images.W-1)
}

// sliceWidth copies columns [x0,x1) of every row into a new batch.
func sliceWidth(images *tensor.Batch, x0, x1 int) *tensor.Batch {
	out := tensor.New(images.B, images.H, x1-x0, images.C)
	for b := 0; b < images.B; b++ {
		for y := 0; y < images.H; y++ {
			copy(out.Row(b, y), images.Row(b, y)[x0*images.C:x1*images.C])
		}
	}
	return out
}

// concatWidth joins two batches of identical B, H and C along the width axis.
func concatWidth(left, right *tensor.Batch) *tensor.Batch {
	out := tensor.New(left.B, left.H, left.W+right.W, left.C)
	for b := 0; b < left.B; b++ {
		for y := 0; y < left.H; y++ {
			dst := out.Row(b, y)
			n := copy(dst, left.Row(b, y))
			copy(dst[n:], right.Row(b, y))
		}
	}
	return out
}

// seamFeather blends the band of feather columns on each side of the center
// seam with a linear ramp, then writes the same blend to both bands. The two
// bands end up as identical copies of the blend; the seam itself becomes
// continuous at the cost of a mirrored strip. In-place on out.
func seamFeather(out *tensor.Batch, feather, halfWidth int) {
	if feather <= 0 {
		return
	}
	f := feather
	if f > halfWidth {
		f = halfWidth
	}

	ramp := make([]float32, f)
	for i := range ramp {
		if f > 1 {
			ramp[i] = float32(i) / float32(f-1)
		}
	}

	leftStart := halfWidth - f
	rightStart := halfWidth
	for b := 0; b < out.B; b++ {
		for y := 0; y < out.H; y++ {
			row := out.Row(b, y)
			for i := 0; i < f; i++ {
				w := ramp[i]
				for c := 0; c < out.C; c++ {
					l := row[(leftStart+i)*out.C+c]
					r := row[(rightStart+i)*out.C+c]
					blend := l*(1-w) + r*w
					row[(leftStart+i)*out.C+c] = blend
					row[(rightStart+i)*out.C+c] = blend
				}
			}
		}
	}
}
