package config

import (
	"strings"

	"github.com/pkg/errors"
)

// Supported resampling engines
const (
	EngineImaging = "imaging"
	EngineNfnt    = "nfnt"
)

// PNG compression presets accepted by PNGCompression
var pngCompressionLevels = []string{"default", "none", "fast", "best"}

// Config holds the application configuration
type Config struct {
	Codec    CodecConfig    `json:"codec"`
	Resample ResampleConfig `json:"resample"`
	Output   OutputConfig   `json:"output"`
}

// CodecConfig holds configuration for decoding and encoding
type CodecConfig struct {
	Quality        int    `json:"quality"`
	Lossless       bool   `json:"lossless"`
	PNGCompression string `json:"png_compression"`
	AutoOrient     bool   `json:"auto_orient"`
}

// ResampleConfig selects the resampling engine and filter
type ResampleConfig struct {
	Engine string `json:"engine"`
	Filter string `json:"filter"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	CreateDirs bool `json:"create_dirs"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		Codec: CodecConfig{
			Quality:        90,
			Lossless:       false,
			PNGCompression: "default",
			AutoOrient:     false,
		},
		Resample: ResampleConfig{
			Engine: EngineImaging,
			Filter: "linear",
		},
		Output: OutputConfig{
			CreateDirs: false,
		},
	}
}

// Validate checks if the configuration is valid. Filter names are checked
// by the resample package since each engine owns its filter table.
func (c Config) Validate() error {
	if c.Codec.Quality < 1 || c.Codec.Quality > 100 {
		return errors.Errorf("codec.quality must be between 1 and 100, got %d", c.Codec.Quality)
	}

	if !contains(pngCompressionLevels, c.Codec.PNGCompression) {
		return errors.Errorf("codec.png_compression must be one of %s, got %q",
			strings.Join(pngCompressionLevels, "|"), c.Codec.PNGCompression)
	}

	switch c.Resample.Engine {
	case EngineImaging, EngineNfnt:
	default:
		return errors.Errorf("resample.engine must be %s or %s, got %q", EngineImaging, EngineNfnt, c.Resample.Engine)
	}

	if c.Resample.Filter == "" {
		return errors.New("resample.filter cannot be empty")
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
