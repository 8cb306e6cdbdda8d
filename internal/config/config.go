package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Offset OffsetConfig `json:"offset"`
	Stereo StereoConfig `json:"stereo"`
	Output OutputConfig `json:"output"`
}

// OffsetConfig holds defaults for the offset transform
type OffsetConfig struct {
	Units          string     `json:"units"`
	XOffset        float64    `json:"x_offset"`
	YOffset        float64    `json:"y_offset"`
	AutoHalfWidth  bool       `json:"auto_half_width"`
	AutoHalfHeight bool       `json:"auto_half_height"`
	EdgeMode       string     `json:"edge_mode"`
	FillColor      [3]float64 `json:"fill_color"`
}

// StereoConfig holds defaults for the stereo split/rebuild transform
type StereoConfig struct {
	Mode              string `json:"mode"`
	SourceHalf        string `json:"source_half"`
	OutputLayout      string `json:"output_layout"`
	EvenWidthHandling string `json:"even_width_handling"`
	SeamFeather       int    `json:"seam_feather"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	DefaultFormat string `json:"default_format"`
	OutputDir     string `json:"output_dir"`
	Prefix        string `json:"prefix"`
	Quality       int    `json:"quality"`
	Lossless      bool   `json:"lossless"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Offset: OffsetConfig{
			Units:    "pixels",
			EdgeMode: "wrap",
		},
		Stereo: StereoConfig{
			Mode:              "sbs_copy_half_to_stereo",
			SourceHalf:        "left",
			OutputLayout:      "cross_eyed",
			EvenWidthHandling: "auto_crop_if_odd",
			SeamFeather:       0,
		},
		Output: OutputConfig{
			DefaultFormat: "png",
			OutputDir:     "./out",
			Prefix:        "frame_",
			Quality:       90,
			Lossless:      false,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Offset.Units {
	case "pixels", "percent":
	default:
		return fmt.Errorf("offset.units must be \"pixels\" or \"percent\"")
	}

	switch c.Offset.EdgeMode {
	case "wrap", "fill_color", "black":
	default:
		return fmt.Errorf("offset.edge_mode must be one of \"wrap\", \"fill_color\", \"black\"")
	}

	if c.Offset.XOffset < -100000 || c.Offset.XOffset > 100000 {
		return fmt.Errorf("offset.x_offset must be between -100000 and 100000")
	}

	if c.Offset.YOffset < -100000 || c.Offset.YOffset > 100000 {
		return fmt.Errorf("offset.y_offset must be between -100000 and 100000")
	}

	for i, v := range c.Offset.FillColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("offset.fill_color[%d] must be between 0 and 1", i)
		}
	}

	switch c.Stereo.Mode {
	case "sbs_extract_half", "sbs_copy_half_to_stereo", "mono_to_stereo_copy", "even_crop_only":
	default:
		return fmt.Errorf("stereo.mode %q is not a known mode", c.Stereo.Mode)
	}

	switch c.Stereo.SourceHalf {
	case "left", "right":
	default:
		return fmt.Errorf("stereo.source_half must be \"left\" or \"right\"")
	}

	switch c.Stereo.OutputLayout {
	case "cross_eyed", "parallel":
	default:
		return fmt.Errorf("stereo.output_layout must be \"cross_eyed\" or \"parallel\"")
	}

	switch c.Stereo.EvenWidthHandling {
	case "auto_crop_if_odd", "skip":
	default:
		return fmt.Errorf("stereo.even_width_handling must be \"auto_crop_if_odd\" or \"skip\"")
	}

	if c.Stereo.SeamFeather < 0 || c.Stereo.SeamFeather > 256 {
		return fmt.Errorf("stereo.seam_feather must be between 0 and 256")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "muffins-vr-fixes", "config.json")
}
