// Package processing bridges image files and URLs to the float tensor
// batches the transform packages operate on. It handles JPEG, PNG and WebP
// in both directions.
package processing

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/tensor"
)

// Processor handles image loading, saving and batch conversion.
type Processor struct{}

// NewProcessor creates a new image processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// LoadImageFromURL downloads and loads an image from a URL.
func (p *Processor) LoadImageFromURL(imageURL string) (image.Image, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s (only http and https are supported)", parsedURL.Scheme)
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequest("GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", "MuffinsVRFixes/1.0 (+https://github.com/Ragamuffin20/MuffinsVRFixes)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("URL does not point to an image (Content-Type: %s)", contentType)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %v", err)
	}

	return p.decodeImageFromBytes(imageData)
}

// LoadImage loads an image from a file path with WebP support.
func (p *Processor) LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	low := strings.ToLower(path)
	if strings.HasSuffix(low, ".webp") || strings.Contains(low, ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	} else {
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// LoadImageSmart loads an image from either a file path or URL.
func (p *Processor) LoadImageSmart(source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return p.LoadImageFromURL(source)
	}
	return p.LoadImage(source)
}

// decodeImageFromBytes decodes an image from byte data with WebP support.
func (p *Processor) decodeImageFromBytes(data []byte) (image.Image, error) {
	reader := bytes.NewReader(data)
	if img, _, err := image.Decode(reader); err == nil {
		return img, nil
	}

	reader = bytes.NewReader(data)
	if img, err := webp.Decode(reader); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// LoadBatch loads every source (file path or URL) into one RGB batch. All
// frames must share the same dimensions.
func (p *Processor) LoadBatch(sources []string) (*tensor.Batch, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no input images given")
	}
	imgs := make([]image.Image, 0, len(sources))
	for _, src := range sources {
		img, err := p.LoadImageSmart(src)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", src, err)
		}
		imgs = append(imgs, img)
	}
	batch, err := tensor.FromImages(imgs)
	if err != nil {
		return nil, fmt.Errorf("failed to stack batch: %w", err)
	}
	return batch, nil
}

// SaveImage saves an image to a file with the specified format and quality.
func (p *Processor) SaveImage(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		return webp.Encode(f, img, opts)
	case "png":
		return imaging.Save(img, path)
	default: // jpg/jpeg
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	}
}

// SaveBatch writes every frame of a batch as numbered image files and
// returns the written paths.
func (p *Processor) SaveBatch(batch *tensor.Batch, dir, prefix, format string, quality int, lossless bool) ([]string, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	paths := make([]string, 0, batch.B)
	for b := 0; b < batch.B; b++ {
		path := filepath.Join(dir, fmt.Sprintf("%s%03d.%s", prefix, b, strings.ToLower(format)))
		if err := p.SaveImage(batch.Image(b), path, format, quality, lossless); err != nil {
			return paths, fmt.Errorf("failed to save frame %d: %w", b, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ResizeFrame scales an image so its long side is at most maxDim pixels,
// preserving aspect ratio. maxDim <= 0 returns the image unchanged.
func (p *Processor) ResizeFrame(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	if w >= h {
		return imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxDim, imaging.Lanczos)
}
