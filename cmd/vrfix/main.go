package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	vrfixes "github.com/Ragamuffin20/MuffinsVRFixes"
	"github.com/Ragamuffin20/MuffinsVRFixes/internal/config"
	"github.com/Ragamuffin20/MuffinsVRFixes/internal/utils"
	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/offset"
	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/stereo"
	"github.com/Ragamuffin20/MuffinsVRFixes/pkg/tensor"
)

func main() {
	var in, outDir, prefix, ext, configPath string
	var ops string
	var quality, scale int
	var lossless bool

	// Offset parameters
	var units, edgeMode string
	var xOffset, yOffset float64
	var autoHalfW, autoHalfH bool
	var fillR, fillG, fillB float64

	// Stereo parameters
	var mode, half, layout, evenWidth string
	var feather int

	flag.StringVar(&in, "in", "", "input image path, URL or directory (jpg/png/webp)")
	flag.StringVar(&outDir, "out", "", "output directory (default from config)")
	flag.StringVar(&prefix, "prefix", "", "output filename prefix (default from config)")
	flag.StringVar(&ext, "ext", "", "output format: jpg|png|webp (default from config)")
	flag.IntVar(&quality, "quality", 0, "JPEG/WebP output quality 1-100 (default from config)")
	flag.BoolVar(&lossless, "lossless", false, "WebP lossless mode")
	flag.IntVar(&scale, "scale", 0, "max long side of saved frames (px), 0=original")
	flag.StringVar(&configPath, "config", "", "JSON config file with transform defaults")
	flag.StringVar(&ops, "op", "offset", "operations to apply in order: offset|stereo|offset,stereo")

	flag.StringVar(&units, "units", "", "offset units: pixels|percent")
	flag.Float64Var(&xOffset, "x", 0, "x offset (-100000..100000)")
	flag.Float64Var(&yOffset, "y", 0, "y offset (-100000..100000)")
	flag.BoolVar(&autoHalfW, "halfw", false, "offset x by half the width (panorama recenter)")
	flag.BoolVar(&autoHalfH, "halfh", false, "offset y by half the height")
	flag.StringVar(&edgeMode, "edge", "", "edge mode: wrap|fill_color|black")
	flag.Float64Var(&fillR, "fillr", 0, "fill red 0..1 (edge=fill_color)")
	flag.Float64Var(&fillG, "fillg", 0, "fill green 0..1 (edge=fill_color)")
	flag.Float64Var(&fillB, "fillb", 0, "fill blue 0..1 (edge=fill_color)")

	flag.StringVar(&mode, "mode", "", "stereo mode: sbs_extract_half|sbs_copy_half_to_stereo|mono_to_stereo_copy|even_crop_only")
	flag.StringVar(&half, "half", "", "source half: left|right")
	flag.StringVar(&layout, "layout", "", "output layout: cross_eyed|parallel")
	flag.StringVar(&evenWidth, "evenwidth", "", "odd width handling: auto_crop_if_odd|skip")
	flag.IntVar(&feather, "feather", 0, "seam feather band width 0..256")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in input.jpg|URL|dir [-op offset|stereo] [-config cfg.json] [-out outdir] [-ext jpg|png|webp]", filepath.Base(os.Args[0]))
	}

	// Start from defaults, layer the config file, then explicit flags.
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	applyFlagOverrides(map[string]func(){
		"units":     func() { cfg.Offset.Units = units },
		"x":         func() { cfg.Offset.XOffset = xOffset },
		"y":         func() { cfg.Offset.YOffset = yOffset },
		"halfw":     func() { cfg.Offset.AutoHalfWidth = autoHalfW },
		"halfh":     func() { cfg.Offset.AutoHalfHeight = autoHalfH },
		"edge":      func() { cfg.Offset.EdgeMode = edgeMode },
		"fillr":     func() { cfg.Offset.FillColor[0] = fillR },
		"fillg":     func() { cfg.Offset.FillColor[1] = fillG },
		"fillb":     func() { cfg.Offset.FillColor[2] = fillB },
		"mode":      func() { cfg.Stereo.Mode = mode },
		"half":      func() { cfg.Stereo.SourceHalf = half },
		"layout":    func() { cfg.Stereo.OutputLayout = layout },
		"evenwidth": func() { cfg.Stereo.EvenWidthHandling = evenWidth },
		"feather":   func() { cfg.Stereo.SeamFeather = feather },
		"out":       func() { cfg.Output.OutputDir = outDir },
		"prefix":    func() { cfg.Output.Prefix = prefix },
		"ext":       func() { cfg.Output.DefaultFormat = ext },
		"quality":   func() { cfg.Output.Quality = quality },
		"lossless":  func() { cfg.Output.Lossless = lossless },
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
		log.Fatal(err)
	}

	toolkit := vrfixes.New()

	// Resolve input sources
	sources := []string{in}
	if info, err := os.Stat(in); err == nil && info.IsDir() {
		files, err := utils.ListImageFiles(in)
		if err != nil {
			log.Fatal(err)
		}
		if len(files) == 0 {
			log.Fatalf("no image files found in %s", in)
		}
		sources = files
	}

	batch, err := toolkit.LoadBatch(sources)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d frame(s) %dx%d", batch.B, batch.W, batch.H)

	for _, op := range strings.Split(ops, ",") {
		switch strings.TrimSpace(op) {
		case "offset":
			batch, err = toolkit.OffsetWith(batch, offsetOptions(cfg))
		case "stereo":
			batch, err = toolkit.StereoWith(batch, stereoOptions(cfg))
		default:
			log.Fatalf("unknown op: %q (use offset, stereo)", op)
		}
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("applied %s -> %dx%d", op, batch.W, batch.H)
	}

	paths, err := saveBatch(toolkit, batch, cfg, scale)
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range paths {
		log.Printf("wrote %s", p)
	}
}

// applyFlagOverrides runs the override for every flag explicitly set on the
// command line, so flags win over the config file.
func applyFlagOverrides(overrides map[string]func()) {
	flag.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})
}

func offsetOptions(cfg *config.Config) offset.Options {
	return offset.Options{
		Units:          offset.Units(cfg.Offset.Units),
		X:              cfg.Offset.XOffset,
		Y:              cfg.Offset.YOffset,
		AutoHalfWidth:  cfg.Offset.AutoHalfWidth,
		AutoHalfHeight: cfg.Offset.AutoHalfHeight,
		EdgeMode:       offset.EdgeMode(cfg.Offset.EdgeMode),
		Fill: [3]float32{
			float32(cfg.Offset.FillColor[0]),
			float32(cfg.Offset.FillColor[1]),
			float32(cfg.Offset.FillColor[2]),
		},
	}
}

func stereoOptions(cfg *config.Config) stereo.Options {
	return stereo.Options{
		Mode:        stereo.Mode(cfg.Stereo.Mode),
		SourceHalf:  stereo.Half(cfg.Stereo.SourceHalf),
		Layout:      stereo.Layout(cfg.Stereo.OutputLayout),
		EvenWidth:   stereo.EvenWidthHandling(cfg.Stereo.EvenWidthHandling),
		SeamFeather: cfg.Stereo.SeamFeather,
	}
}

// saveBatch writes the result frames, optionally downscaling the long side.
func saveBatch(toolkit *vrfixes.Toolkit, batch *tensor.Batch, cfg *config.Config, scale int) ([]string, error) {
	out := cfg.Output
	if scale <= 0 {
		return toolkit.SaveBatch(batch, out.OutputDir, out.Prefix, out.DefaultFormat, out.Quality, out.Lossless)
	}

	processor := toolkit.Processor()
	paths := make([]string, 0, batch.B)
	for b := 0; b < batch.B; b++ {
		img := processor.ResizeFrame(batch.Image(b), scale)
		path := utils.GenerateOutputFilename(
			fmt.Sprintf("%03d", b), out.OutputDir, out.Prefix, "", out.DefaultFormat)
		if err := processor.SaveImage(img, path, out.DefaultFormat, out.Quality, out.Lossless); err != nil {
			return paths, fmt.Errorf("failed to save frame %d: %w", b, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
