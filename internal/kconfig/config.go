// Package kconfig loads the kernel's runtime tunables from a layered
// configuration: defaults, an optional kernel.yaml file, then environment
// variable overrides — mirroring the teacher's internal/config package.
// There is no further layer for overrides passed in by the hosting
// application; Load takes only the directory to read.
package kconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the kernel's runtime tunables.
type Config struct {
	Workers            int  `yaml:"workers"`
	MainThreadIndex    int  `yaml:"main-thread-index"`
	FrameBudgetMS      int  `yaml:"frame-budget-ms"`
	EnableEventValidator bool `yaml:"enable-event-validator"`
}

// Defaults returns the documented fallback configuration.
func Defaults() Config {
	return Config{
		Workers:         4,
		MainThreadIndex: 0,
		FrameBudgetMS:   16,
	}
}

// Load reads kernel.yaml from dir if present, layers it over Defaults()
// with viper, applies SYX_WORKERS / SYX_FRAME_BUDGET_MS environment
// overrides, and returns the resulting Config.
func Load(dir string) (*Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigName("kernel")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("main-thread-index", cfg.MainThreadIndex)
	v.SetDefault("frame-budget-ms", cfg.FrameBudgetMS)
	v.SetDefault("enable-event-validator", cfg.EnableEventValidator)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("kconfig: reading kernel.yaml in %s: %w", dir, err)
		}
	}

	cfg.Workers = v.GetInt("workers")
	cfg.MainThreadIndex = v.GetInt("main-thread-index")
	cfg.FrameBudgetMS = v.GetInt("frame-budget-ms")
	cfg.EnableEventValidator = v.GetBool("enable-event-validator")

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// applyEnvOverrides layers SYX_* environment variables on top of whatever
// Load already resolved, matching the teacher's BEADS_* override pattern.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SYX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("SYX_FRAME_BUDGET_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FrameBudgetMS = n
		}
	}
}

// LoadLocal reads kernel.yaml directly from dir without viper's singleton
// machinery, for call sites that run before a package-level config is
// initialized. It returns Defaults() (not an error) if the file is absent
// or unparsable, matching the teacher's LoadLocalConfig escape hatch.
func LoadLocal(dir string) *Config {
	cfg := Defaults()
	data, err := os.ReadFile(filepath.Join(dir, "kernel.yaml"))
	if err != nil {
		return &cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fallback := Defaults()
		return &fallback
	}
	applyEnvOverrides(&cfg)
	return &cfg
}
