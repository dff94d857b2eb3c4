package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	}
}

func TestLoadConfig_OverlaysFile(t *testing.T) {
	path := writeConfig(t, `
urls:
  - https://example.com/bread
worker_count: 8
classifier:
  kind: openai
  model: gpt-4o
thresholds:
  instruction: 0.5
fetch:
  timeout: 5s
  rate_per_host: 1.5
  cache_dir: /tmp/pages
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/bread"}, cfg.URLs)
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, "openai", cfg.Classifier.Kind)
	assert.Equal(t, "gpt-4o", cfg.Classifier.Model)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Classifier.APIKeyEnv)
	assert.Equal(t, DefaultIngredientThreshold, cfg.Thresholds.Ingredient)
	assert.Equal(t, 0.5, cfg.Thresholds.Instruction)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 1.5, cfg.Fetch.RatePerHost)
	assert.Equal(t, "/tmp/pages", cfg.Fetch.CacheDir)
	assert.Equal(t, 2, cfg.Fetch.Retries)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":          "worker_count: [",
		"threshold too big": "thresholds:\n  ingredient: 1.5\n",
		"negative workers":  "worker_count: -1\n",
		"unknown kind":      "classifier:\n  kind: magic\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
