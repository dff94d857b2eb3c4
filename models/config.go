// Package models defines data structures for configuration and parsing.
package models

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIngredientThreshold  = 0.9
	DefaultInstructionThreshold = 0.68
	DefaultWorkerCount          = 4
)

// Config holds runtime configuration. Values come from an optional YAML
// file and are then overridden by CLI flags.
type Config struct {
	URLs        []string         `yaml:"urls"`
	WorkerCount int              `yaml:"worker_count"`
	Classifier  ClassifierConfig `yaml:"classifier"`
	Thresholds  ThresholdConfig  `yaml:"thresholds"`
	Fetch       FetchConfig      `yaml:"fetch"`
	DBPath      string           `yaml:"db_path"`
}

type ClassifierConfig struct {
	Kind        string `yaml:"kind"` // lexicon, openai, static
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	WeightsFile string `yaml:"weights_file"`
}

type ThresholdConfig struct {
	Ingredient  float64 `yaml:"ingredient"`
	Instruction float64 `yaml:"instruction"`
}

type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	Retries     int           `yaml:"retries"`
	RatePerHost float64       `yaml:"rate_per_host"` // requests per second, 0 = unlimited
	UserAgent   string        `yaml:"user_agent"`
	CacheDir    string        `yaml:"cache_dir"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		WorkerCount: DefaultWorkerCount,
		Classifier: ClassifierConfig{
			Kind:      "lexicon",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Thresholds: ThresholdConfig{
			Ingredient:  DefaultIngredientThreshold,
			Instruction: DefaultInstructionThreshold,
		},
		Fetch: FetchConfig{
			Timeout:   30 * time.Second,
			Retries:   2,
			UserAgent: "recipe-web-parser/1.0",
			CacheTTL:  24 * time.Hour,
		},
		DBPath: "recipe-web-parser.db",
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"ingredient":  c.Thresholds.Ingredient,
		"instruction": c.Thresholds.Instruction,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s threshold %v out of range [0,1]", name, v)
		}
	}
	if c.WorkerCount < 0 {
		return fmt.Errorf("worker_count must not be negative, got %d", c.WorkerCount)
	}
	switch c.Classifier.Kind {
	case "", "lexicon", "openai", "static":
	default:
		return fmt.Errorf("unknown classifier kind %q", c.Classifier.Kind)
	}
	return nil
}
