package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownWorkload   = errors.New("unknown workload")
	ErrUnsupportedConfig = errors.New("unsupported config format")
	ErrBadIterations     = errors.New("iterations must be positive")
)

// Config selects what boxprof runs.
type Config struct {
	Iterations  int      `yaml:"iterations" toml:"iterations"`
	Workloads   []string `yaml:"workloads" toml:"workloads"`
	HeapProfile string   `yaml:"heap_profile" toml:"heap_profile"`
	PprofAddr   string   `yaml:"pprof_addr" toml:"pprof_addr"`
}

func DefaultConfig() Config {
	return Config{
		Iterations: 100000,
		Workloads:  Names(),
	}
}

// LoadConfig reads a YAML or TOML workload file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnsupportedConfig, ext)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: %d", ErrBadIterations, c.Iterations)
	}
	for _, w := range c.Workloads {
		if _, ok := workloads[w]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownWorkload, w)
		}
	}
	return nil
}
