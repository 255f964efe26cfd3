package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the small set of knobs a host program may tune before handing
// a tree to the renderer. Everything here has a sane zero-config default;
// LoadConfiguration only needs to be called when a host wants to override
// one of them from a file.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`

	// Resources controls the shared resource caches new GlobalContexts are
	// built with.
	Resources ResourcesConfig `yaml:"resources"`

	// Debug draws a red outline around every node's content box and a green
	// outline around its full layout box, matching the overlay used while
	// developing layouts.
	Debug bool `yaml:"debug"`
}

// ResourcesConfig sizes the caches and worker pool a GlobalContext owns.
type ResourcesConfig struct {
	// FetchCacheCapacity bounds the number of distinct remote image URLs
	// kept resident in the LRU fetch cache.
	FetchCacheCapacity int `yaml:"fetch_cache_capacity" validate:"min=1"`
	// HydrationWorkers is a configured worker count for image hydration.
	// render.Render does not read it and always hydrates sequentially.
	HydrationWorkers int `yaml:"hydration_workers" validate:"gte=0"`
	// DefaultFontSize is used for the root viewport when a node tree
	// doesn't otherwise establish one.
	DefaultFontSize float64 `yaml:"default_font_size" validate:"gt=0"`
	// JPEGQuality is the default quality used when encoding to image/jpeg.
	JPEGQuality int `yaml:"jpeg_quality" validate:"min=1,max=100"`
}

// Default returns the configuration used when a host does not supply one.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Console: LoggerConfig{Level: "normal"}},
		Resources: ResourcesConfig{
			FetchCacheCapacity: 256,
			HydrationWorkers:   8,
			DefaultFontSize:    16,
			JPEGQuality:        90,
		},
	}
}

// LoadConfiguration overlays YAML-encoded overrides from data onto the
// default configuration. Unknown fields are rejected so typos in a config
// file surface immediately instead of being silently ignored.
func LoadConfiguration(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return cfg, nil
}

// Dump marshals cfg back to YAML, mainly useful for --dump-config style
// diagnostics in a host program.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return data, nil
}
