// Package config loads rating configuration from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/pable/go-team-rank/internal/rating"
)

// Environment variables that override the file.
const (
	EnvFinishDecay  = "TEAMRANK_FINISH_DECAY"
	EnvAgeDecay     = "TEAMRANK_AGE_DECAY"
	EnvRecordLength = "TEAMRANK_RECORD_LENGTH"
)

// File mirrors the YAML layout. Absent keys keep their defaults.
//
//	finish_decay: 1.1
//	age_decay: 1.1
//	record_length: 10
//	tiers:
//	  small: 50
//	  championship: 250
type File struct {
	FinishDecay  *float64           `yaml:"finish_decay"`
	AgeDecay     *float64           `yaml:"age_decay"`
	RecordLength *int               `yaml:"record_length"`
	Tiers        map[string]float64 `yaml:"tiers"`
}

// Load reads the config at path, applies environment overrides and
// validates the result. An empty path yields the defaults plus overrides.
func Load(path string) (rating.Config, error) {
	cfg := rating.DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return rating.Config{}, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return rating.Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return rating.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return rating.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the default configuration.
func Parse(data []byte) (rating.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return rating.Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg := rating.DefaultConfig()
	if f.FinishDecay != nil {
		cfg.FinishDecay = *f.FinishDecay
	}
	if f.AgeDecay != nil {
		cfg.AgeDecay = *f.AgeDecay
	}
	if f.RecordLength != nil {
		cfg.RecordLength = *f.RecordLength
	}
	for name, base := range f.Tiers {
		tier, err := rating.ParseTier(name)
		if err != nil {
			return rating.Config{}, fmt.Errorf("config tiers: %w", err)
		}
		cfg = cfg.WithPointBase(tier, base)
	}
	return cfg, nil
}

func applyEnv(cfg *rating.Config) error {
	if v := os.Getenv(EnvFinishDecay); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFinishDecay, err)
		}
		cfg.FinishDecay = f
	}
	if v := os.Getenv(EnvAgeDecay); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAgeDecay, err)
		}
		cfg.AgeDecay = f
	}
	if v := os.Getenv(EnvRecordLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRecordLength, err)
		}
		cfg.RecordLength = n
	}
	return nil
}
