package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-team-rank/internal/rating"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teamrank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, rating.DefaultConfig(), cfg)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
finish_decay: 1.1
age_decay: 1.1
record_length: 10
tiers:
  small: 50
  medium: 125
  major: 200
  championship: 250
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.1, cfg.FinishDecay)
	assert.Equal(t, 1.1, cfg.AgeDecay)
	assert.Equal(t, 10, cfg.RecordLength)
	assert.Equal(t, 50.0, cfg.PointBase[rating.TierSmall])
	assert.Equal(t, 125.0, cfg.PointBase[rating.TierMedium])
	assert.Equal(t, 200.0, cfg.PointBase[rating.TierMajor])
	assert.Equal(t, 250.0, cfg.PointBase[rating.TierChampionship])
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "record_length: 5\ntiers:\n  major: 300\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RecordLength)
	assert.Equal(t, rating.DefaultFinishDecay, cfg.FinishDecay)
	assert.Equal(t, 300.0, cfg.PointBase[rating.TierMajor])
	assert.Equal(t, 50.0, cfg.PointBase[rating.TierSmall])
}

func TestLoadRejectsUnknownTier(t *testing.T) {
	path := writeConfig(t, "tiers:\n  regional: 80\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "regional")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "age_decay: 0\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvFinishDecay, "1.2")
	t.Setenv(EnvRecordLength, "3")
	path := writeConfig(t, "finish_decay: 1.05\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.2, cfg.FinishDecay)
	assert.Equal(t, 3, cfg.RecordLength)
	assert.Equal(t, rating.DefaultAgeDecay, cfg.AgeDecay)

	t.Setenv(EnvAgeDecay, "fast")
	_, err = Load(path)
	assert.ErrorContains(t, err, EnvAgeDecay)
}
