package stereo

import (
	"errors"
	"strings"
	"testing"

	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/tensor"
)

// createTestBatch creates a batch with a deterministic per-pixel pattern
func createTestBatch(b, h, w int) *tensor.Batch {
	batch := tensor.New(b, h, w, 3)
	for i := 0; i < b; i++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				base := float32((i*29+y*13+x*5)%241) / 241
				batch.Set(i, y, x, 0, base)
				batch.Set(i, y, x, 1, 1-base)
				batch.Set(i, y, x, 2, base/3)
			}
		}
	}
	return batch
}

func TestExtractLeftHalf(t *testing.T) {
	batch := createTestBatch(2, 6, 12)

	out, err := Apply(batch, Options{
		Mode:       ModeExtractHalf,
		SourceHalf: Left,
		EvenWidth:  AutoCropIfOdd,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out.W != 6 {
		t.Fatalf("Expected width 6, got %d", out.W)
	}
	for b := 0; b < 2; b++ {
		for y := 0; y < 6; y++ {
			for x := 0; x < 6; x++ {
				for c := 0; c < 3; c++ {
					if out.At(b, y, x, c) != batch.At(b, y, x, c) {
						t.Fatalf("Left half pixel (%d,%d,%d,%d) differs from source", b, y, x, c)
					}
				}
			}
		}
	}
}

func TestExtractRightHalf(t *testing.T) {
	batch := createTestBatch(1, 4, 10)

	out, err := Apply(batch, Options{
		Mode:       ModeExtractHalf,
		SourceHalf: Right,
		EvenWidth:  AutoCropIfOdd,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out.W != 5 {
		t.Fatalf("Expected width 5, got %d", out.W)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if out.At(0, y, x, 0) != batch.At(0, y, x+5, 0) {
				t.Fatalf("Right half pixel (%d,%d) differs from source", y, x)
			}
		}
	}
}

func TestCopyHalfToStereo(t *testing.T) {
	batch := createTestBatch(1, 4, 12)

	out, err := Apply(batch, Options{
		Mode:       ModeCopyHalfToStereo,
		SourceHalf: Right,
		Layout:     CrossEyed,
		EvenWidth:  AutoCropIfOdd,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out.W != batch.W {
		t.Fatalf("Expected output width %d, got %d", batch.W, out.W)
	}

	// With no feathering both halves carry the source half
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			for c := 0; c < 3; c++ {
				src := batch.At(0, y, x+6, c)
				if out.At(0, y, x, c) != src {
					t.Fatalf("Left half pixel (%d,%d,%d) differs from source half", y, x, c)
				}
				if out.At(0, y, x+6, c) != src {
					t.Fatalf("Right half pixel (%d,%d,%d) differs from source half", y, x, c)
				}
			}
		}
	}
}

func TestMonoToStereoDoublesWidth(t *testing.T) {
	batch := createTestBatch(2, 3, 7)

	out, err := Apply(batch, Options{
		Mode:      ModeMonoToStereo,
		EvenWidth: SkipEvenCheck,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out.W != 14 {
		t.Fatalf("Expected width 14, got %d", out.W)
	}
	for b := 0; b < 2; b++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 7; x++ {
				want := batch.At(b, y, x, 1)
				if out.At(b, y, x, 1) != want {
					t.Fatalf("Left half pixel (%d,%d,%d) differs from mono input", b, y, x)
				}
				if out.At(b, y, x+7, 1) != want {
					t.Fatalf("Right half pixel (%d,%d,%d) differs from mono input", b, y, x)
				}
			}
		}
	}
}

func TestEvenCropOnly(t *testing.T) {
	batch := createTestBatch(1, 4, 9)

	cropped, err := Apply(batch, Options{Mode: ModeEvenCropOnly, EvenWidth: AutoCropIfOdd})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cropped.W != 8 {
		t.Errorf("Expected width 8 after crop, got %d", cropped.W)
	}

	kept, err := Apply(batch, Options{Mode: ModeEvenCropOnly, EvenWidth: SkipEvenCheck})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if kept.W != 9 {
		t.Errorf("Expected width 9 with skip handling, got %d", kept.W)
	}
}

func TestOddWidthSkipFails(t *testing.T) {
	batch := createTestBatch(1, 4, 9)

	for _, mode := range []Mode{ModeExtractHalf, ModeCopyHalfToStereo} {
		_, err := Apply(batch, Options{Mode: mode, SourceHalf: Left, EvenWidth: SkipEvenCheck})
		var oddErr *OddWidthError
		if !errors.As(err, &oddErr) {
			t.Fatalf("Mode %s: expected OddWidthError, got %v", mode, err)
		}
		if !strings.Contains(err.Error(), "skip") {
			t.Errorf("Mode %s: error should name the skip setting, got %q", mode, err)
		}
	}
}

func TestUnknownMode(t *testing.T) {
	batch := createTestBatch(1, 2, 4)

	_, err := Apply(batch, Options{Mode: "mirror_half"})
	var modeErr *UnknownModeError
	if !errors.As(err, &modeErr) {
		t.Fatalf("Expected UnknownModeError, got %v", err)
	}
	if !strings.Contains(err.Error(), "mirror_half") {
		t.Errorf("Error should name the unknown mode, got %q", err)
	}
}

func TestSeamFeatherBandsMirror(t *testing.T) {
	batch := createTestBatch(1, 5, 16)

	out, err := Apply(batch, Options{
		Mode:        ModeCopyHalfToStereo,
		SourceHalf:  Left,
		EvenWidth:   AutoCropIfOdd,
		SeamFeather: 4,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// The 4 columns on each side of the seam are pairwise identical
	half := out.W / 2
	for y := 0; y < 5; y++ {
		for i := 0; i < 4; i++ {
			for c := 0; c < 3; c++ {
				l := out.At(0, y, half-4+i, c)
				r := out.At(0, y, half+i, c)
				if l != r {
					t.Fatalf("Feather bands differ at (%d,%d,%d): %f vs %f", y, i, c, l, r)
				}
			}
		}
	}

	// Columns outside the bands are untouched copies of the source half
	for y := 0; y < 5; y++ {
		if out.At(0, y, 0, 0) != batch.At(0, y, 0, 0) {
			t.Error("Column 0 should be outside the feather band")
		}
	}
}

func TestSeamFeatherRamp(t *testing.T) {
	// Hand-built SBS frame with a black left half and a white right half,
	// so the ramp is directly observable.
	batch := tensor.New(1, 1, 8, 3)
	for x := 4; x < 8; x++ {
		for c := 0; c < 3; c++ {
			batch.Set(0, 0, x, c, 1)
		}
	}

	seamFeather(batch, 2, 4)

	// Ramp over 2 columns is [0, 1]; the blend is written to both bands.
	wantCols := map[int]float32{2: 0, 3: 1, 4: 0, 5: 1}
	for x, want := range wantCols {
		if got := batch.At(0, 0, x, 0); got != want {
			t.Errorf("Column %d = %f, expected %f", x, got, want)
		}
	}

	// Columns outside the bands keep their original values
	if batch.At(0, 0, 0, 0) != 0 || batch.At(0, 0, 7, 0) != 1 {
		t.Error("Columns outside the feather bands must be untouched")
	}
}

func TestSeamFeatherSingleColumn(t *testing.T) {
	// A 1-column band uses ramp value 0: both seam columns take the left value
	batch := tensor.New(1, 1, 4, 3)
	batch.Set(0, 0, 2, 0, 1)
	batch.Set(0, 0, 3, 0, 1)

	seamFeather(batch, 1, 2)

	if got := batch.At(0, 0, 1, 0); got != 0 {
		t.Errorf("Left seam column = %f, expected 0", got)
	}
	if got := batch.At(0, 0, 2, 0); got != 0 {
		t.Errorf("Right seam column = %f, expected 0 (left value at ramp 0)", got)
	}
}

func TestSeamFeatherClampedToHalfWidth(t *testing.T) {
	batch := createTestBatch(1, 2, 6)

	// Feather 256 clamps to the half width of 6
	out, err := Apply(batch, Options{
		Mode:        ModeMonoToStereo,
		EvenWidth:   SkipEvenCheck,
		SeamFeather: 256,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for y := 0; y < 2; y++ {
		for i := 0; i < 6; i++ {
			if out.At(0, y, i, 0) != out.At(0, y, 6+i, 0) {
				t.Fatalf("Expected fully mirrored halves at (%d,%d)", y, i)
			}
		}
	}
}

func TestOutputsClamped(t *testing.T) {
	batch := createTestBatch(1, 3, 8)
	batch.Set(0, 0, 0, 0, 1.7)
	batch.Set(0, 1, 3, 2, -0.4)

	for _, opts := range []Options{
		{Mode: ModeEvenCropOnly, EvenWidth: AutoCropIfOdd},
		{Mode: ModeExtractHalf, SourceHalf: Left, EvenWidth: AutoCropIfOdd},
		{Mode: ModeCopyHalfToStereo, SourceHalf: Left, EvenWidth: AutoCropIfOdd},
		{Mode: ModeMonoToStereo, EvenWidth: AutoCropIfOdd},
	} {
		out, err := Apply(batch, opts)
		if err != nil {
			t.Fatalf("Mode %s: Apply failed: %v", opts.Mode, err)
		}
		for i, v := range out.Data {
			if v < 0 || v > 1 {
				t.Fatalf("Mode %s: sample %d out of range: %f", opts.Mode, i, v)
			}
		}
	}
}

func TestLayoutHasNoEffectOnOrder(t *testing.T) {
	batch := createTestBatch(1, 3, 8)

	crossed, err := Apply(batch, Options{
		Mode: ModeCopyHalfToStereo, SourceHalf: Right, Layout: CrossEyed, EvenWidth: AutoCropIfOdd,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	parallel, err := Apply(batch, Options{
		Mode: ModeCopyHalfToStereo, SourceHalf: Right, Layout: Parallel, EvenWidth: AutoCropIfOdd,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for i := range crossed.Data {
		if crossed.Data[i] != parallel.Data[i] {
			t.Fatal("Both layouts must produce the same concatenation when duplicating one source")
		}
	}
}

func TestInputNeverModified(t *testing.T) {
	batch := createTestBatch(1, 4, 9)
	before := batch.Clone()

	if _, err := Apply(batch, Options{Mode: ModeCopyHalfToStereo, SourceHalf: Left, EvenWidth: AutoCropIfOdd, SeamFeather: 8}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for i := range batch.Data {
		if batch.Data[i] != before.Data[i] {
			t.Fatal("Apply must not modify its input")
		}
	}
}

func TestRejectsNilBatch(t *testing.T) {
	_, err := Apply(nil, DefaultOptions())
	if !errors.Is(err, tensor.ErrNilBatch) {
		t.Errorf("Expected ErrNilBatch, got %v", err)
	}
}
