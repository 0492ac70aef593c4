package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/kozaktomas/imagehash/internal/constants"
	"github.com/kozaktomas/imagehash/internal/imghash"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

type Config struct {
	Server  ServerConfig
	Hash    HashConfig
	Presets PresetsConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type HashConfig struct {
	Alg       string // default algorithm name
	Size      int    // default hash width and height
	BitOrder  string // "lsb" or "msb"
	Threshold int    // default near-duplicate distance threshold
}

type PresetsConfig struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Preset is a named, ready-made hash configuration from presets.yaml.
type Preset struct {
	Alg           string  `yaml:"alg"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	GaussianSigma float64 `yaml:"gaussian_sigma"`
	DCT           bool    `yaml:"dct"`
}

// HasherConfig resolves the preset into a hasher configuration.
func (p Preset) HasherConfig(order imghash.BitOrder) (imghash.HasherConfig, error) {
	alg, err := imghash.ParseAlg(p.Alg)
	if err != nil {
		return imghash.HasherConfig{}, err
	}
	return imghash.HasherConfig{
		Width:         p.Width,
		Height:        p.Height,
		Alg:           alg,
		BitOrder:      order,
		GaussianSigma: p.GaussianSigma,
		DCT:           p.DCT,
	}, nil
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var presets PresetsConfig
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded presets.yaml: " + err.Error())
	}

	return &Config{
		Server: ServerConfig{
			Host: envString("IMAGEHASH_HOST", constants.DefaultHost),
			Port: envInt("IMAGEHASH_PORT", constants.DefaultPort),
		},
		Hash: HashConfig{
			Alg:       envString("IMAGEHASH_ALG", imghash.Gradient.String()),
			Size:      envInt("IMAGEHASH_SIZE", constants.DefaultHashSize),
			BitOrder:  envString("IMAGEHASH_BIT_ORDER", imghash.LSBFirst.String()),
			Threshold: envInt("IMAGEHASH_THRESHOLD", constants.DefaultDistanceThreshold),
		},
		Presets: presets,
	}
}

// Preset looks up a named preset.
func (c *Config) Preset(name string) (Preset, error) {
	preset, ok := c.Presets.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (available: %v)", name, c.PresetNames())
	}
	return preset, nil
}

// PresetNames returns all preset names in alphabetical order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets.Presets))
	for name := range c.Presets.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
