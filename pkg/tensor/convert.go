package tensor

import (
	"image"
)

// FromImage converts a single image into a 1-frame RGB batch. Samples are
// scaled from 8-bit to [0,1]; any alpha channel is discarded.
func FromImage(img image.Image) *Batch {
	out, _ := FromImages([]image.Image{img})
	return out
}

// FromImages stacks images of identical dimensions into one RGB batch.
// Returns a ShapeError if dimensions differ between frames.
func FromImages(imgs []image.Image) (*Batch, error) {
	if len(imgs) == 0 {
		return nil, ErrNilBatch
	}
	bounds := imgs[0].Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := New(len(imgs), h, w, 3)

	for b, img := range imgs {
		fb := img.Bounds()
		if fb.Dx() != w || fb.Dy() != h {
			return nil, &ShapeError{
				Shape:  [4]int{len(imgs), fb.Dy(), fb.Dx(), 3},
				Reason: "all frames in a batch must share dimensions",
			}
		}
		// Fast path for NRGBA, the format imaging produces.
		if n, ok := img.(*image.NRGBA); ok {
			for y := 0; y < h; y++ {
				src := n.Pix[y*n.Stride : y*n.Stride+w*4]
				dst := out.Row(b, y)
				for x := 0; x < w; x++ {
					dst[x*3+0] = float32(src[x*4+0]) / 255
					dst[x*3+1] = float32(src[x*4+1]) / 255
					dst[x*3+2] = float32(src[x*4+2]) / 255
				}
			}
			continue
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, _ := img.At(fb.Min.X+x, fb.Min.Y+y).RGBA()
				px := out.Pixel(b, y, x)
				px[0] = float32(r) / 65535
				px[1] = float32(g) / 65535
				px[2] = float32(bl) / 65535
			}
		}
	}
	return out, nil
}

// Image renders frame b of the batch as an opaque NRGBA image. Samples are
// clamped to [0,1] during quantization; the batch is not modified.
func (t *Batch) Image(b int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.W, t.H))
	for y := 0; y < t.H; y++ {
		src := t.Row(b, y)
		dst := img.Pix[y*img.Stride : y*img.Stride+t.W*4]
		for x := 0; x < t.W; x++ {
			dst[x*4+0] = quantize(src[x*t.C+0])
			if t.C >= 3 {
				dst[x*4+1] = quantize(src[x*t.C+1])
				dst[x*4+2] = quantize(src[x*t.C+2])
			} else {
				dst[x*4+1] = dst[x*4+0]
				dst[x*4+2] = dst[x*4+0]
			}
			dst[x*4+3] = 255
		}
	}
	return img
}

// Images renders every frame of the batch.
func (t *Batch) Images() []*image.NRGBA {
	out := make([]*image.NRGBA, t.B)
	for b := 0; b < t.B; b++ {
		out[b] = t.Image(b)
	}
	return out
}

// quantize maps a [0,1] sample to an 8-bit value with rounding.
func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
