// Package muffinsvrfixes provides fix-up transforms for VR and panorama
// image batches: a GIMP-style offset with wrap-around or fill edges, and a
// side-by-side (SBS) stereo splitter/rebuilder with optional seam feathering.
//
// Both transforms are pure functions over in-memory [B,H,W,C] float batches
// with RGB samples in [0,1]. There is no shared state between calls.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		vrfixes "github.com/Ragamuffin20/MuffinsVRFixes"
//		"github.com/Ragamuffin20/MuffinsVRFixes/pkg/offset"
//		"github.com/Ragamuffin20/MuffinsVRFixes/pkg/stereo"
//	)
//
//	func main() {
//		toolkit := vrfixes.New()
//
//		// Load a panorama frame into a batch
//		batch, err := toolkit.LoadBatch([]string{"pano.jpg"})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Recenter the panorama by half its width
//		shifted, err := toolkit.OffsetWith(batch, offset.Options{
//			Units:         offset.UnitsPixels,
//			AutoHalfWidth: true,
//			EdgeMode:      offset.EdgeWrap,
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Rebuild an SBS pair from the mono frame with a feathered seam
//		sbs, err := toolkit.StereoWith(shifted, stereo.Options{
//			Mode:        stereo.ModeMonoToStereo,
//			EvenWidth:   stereo.AutoCropIfOdd,
//			SeamFeather: 16,
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		if _, err := toolkit.SaveBatch(sbs, "out", "sbs_", "png", 90, false); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of three main components:
//
// 1. Offset (pkg/offset): cyclic or fill-edged spatial shift of a batch
// 2. Stereo (pkg/stereo): SBS extract/rebuild/duplicate with seam feathering
// 3. Processing (pkg/processing): image file/URL I/O to and from batches
//
// The underlying batch representation lives in pkg/tensor.
package muffinsvrfixes

import (
	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/offset"
	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/processing"
	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/stereo"
	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/tensor"
)

// Version of the library
const Version = "1.0.0"

// Toolkit provides a high-level interface for the VR fix-up transforms
type Toolkit struct {
	processor *processing.Processor
	offset    offset.Options
	stereo    stereo.Options
}

// New creates a new Toolkit with default transform options
func New() *Toolkit {
	return &Toolkit{
		processor: processing.NewProcessor(),
		offset:    offset.DefaultOptions(),
		stereo:    stereo.DefaultOptions(),
	}
}

// NewWithOptions creates a new Toolkit with custom default transform options
func NewWithOptions(offsetOpts offset.Options, stereoOpts stereo.Options) *Toolkit {
	return &Toolkit{
		processor: processing.NewProcessor(),
		offset:    offsetOpts,
		stereo:    stereoOpts,
	}
}

// Offset applies the toolkit's default offset options to a batch
func (t *Toolkit) Offset(batch *tensor.Batch) (*tensor.Batch, error) {
	return offset.Apply(batch, t.offset)
}

// OffsetWith applies an offset with explicit options
func (t *Toolkit) OffsetWith(batch *tensor.Batch, opts offset.Options) (*tensor.Batch, error) {
	return offset.Apply(batch, opts)
}

// Stereo applies the toolkit's default stereo options to a batch
func (t *Toolkit) Stereo(batch *tensor.Batch) (*tensor.Batch, error) {
	return stereo.Apply(batch, t.stereo)
}

// StereoWith applies a stereo operation with explicit options
func (t *Toolkit) StereoWith(batch *tensor.Batch, opts stereo.Options) (*tensor.Batch, error) {
	return stereo.Apply(batch, opts)
}

// LoadBatch loads image files or URLs into one batch
func (t *Toolkit) LoadBatch(sources []string) (*tensor.Batch, error) {
	return t.processor.LoadBatch(sources)
}

// SaveBatch writes every frame of a batch as numbered image files
func (t *Toolkit) SaveBatch(batch *tensor.Batch, dir, prefix, format string, quality int, lossless bool) ([]string, error) {
	return t.processor.SaveBatch(batch, dir, prefix, format, quality, lossless)
}

// Processor exposes the underlying image I/O processor
func (t *Toolkit) Processor() *processing.Processor {
	return t.processor
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
