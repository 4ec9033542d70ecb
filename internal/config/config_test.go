package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Bank")
	cfg.Interest.AnnualRate = 0.2499
	cfg.Export.OutputDir = "out"

	path := filepath.Join(t.TempDir(), "cardledger.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business.Name, got.Business.Name)
	assert.InDelta(t, cfg.Interest.AnnualRate, got.Interest.AnnualRate, 0.00001)
	assert.InDelta(t, cfg.Statement.MinimumPaymentRate, got.Statement.MinimumPaymentRate, 0.00001)
	assert.InDelta(t, cfg.Statement.MinimumPaymentFloor, got.Statement.MinimumPaymentFloor, 0.00001)
	assert.Equal(t, cfg.Statement.DueGraceDays, got.Statement.DueGraceDays)
	assert.Equal(t, "out", got.Export.OutputDir)
	assert.Equal(t, cfg.Logging.Level, got.Logging.Level)
}

func TestDefaults(t *testing.T) {
	cfg := Default("First Card Co")

	assert.Equal(t, "First Card Co", cfg.Business.Name)
	assert.InDelta(t, 0.1999, cfg.Interest.AnnualRate, 0.00001)
	assert.InDelta(t, 0.02, cfg.Statement.MinimumPaymentRate, 0.00001)
	assert.InDelta(t, 25, cfg.Statement.MinimumPaymentFloor, 0.00001)
	assert.Equal(t, 25, cfg.Statement.DueGraceDays)
	assert.Equal(t, "exports", cfg.Export.OutputDir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Bank")
	path := filepath.Join(t.TempDir(), "cardledger.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Bank")
	assert.Contains(t, contents, "annual_rate: 0.1999")
	assert.Contains(t, contents, "due_grace_days: 25")
	assert.Contains(t, contents, "output_dir: exports")
}
