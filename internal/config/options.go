package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options is the pystatic.yaml configuration.
type Options struct {
	// FailFast stops the pipeline after the first diagnostic instead of
	// batching all diagnostics for the unit.
	FailFast bool `yaml:"fail_fast,omitempty"`

	// Color controls diagnostic coloring: "auto" (default), "always", "never".
	Color string `yaml:"color,omitempty"`

	// CacheDir is where the module export cache database lives.
	// Empty disables the cache.
	CacheDir string `yaml:"cache_dir,omitempty"`

	// ModulePaths are extra roots searched when resolving absolute imports.
	ModulePaths []string `yaml:"module_paths,omitempty"`
}

// DefaultOptions returns the options used when no pystatic.yaml exists.
func DefaultOptions() *Options {
	return &Options{Color: "auto"}
}

// LoadOptions reads and validates a pystatic.yaml file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return opts, nil
}

// Validate checks enum-valued fields.
func (o *Options) Validate() error {
	switch o.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", o.Color)
	}
	return nil
}
