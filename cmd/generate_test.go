package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rana718/salesgen/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReporter struct {
	tables, scripts int
}

func (r *countingReporter) TableWritten(path string, rows int) { r.tables++ }
func (r *countingReporter) ScriptWritten(path string) { r.scripts++ }

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	v := viper.New()
	require.NoError(t, config.Init(v, ""))
	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)

	root := t.TempDir()
	cfg.OutDir = filepath.Join(root, "data_sample")
	cfg.SQLDir = filepath.Join(root, "sql")
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunGenerate(t *testing.T) {
	cfg := testConfig(t)
	reporter := &countingReporter{}

	require.NoError(t, runGenerate(context.Background(), cfg, reporter))

	assert.Equal(t, 8, reporter.tables)
	assert.Equal(t, 9, reporter.scripts)
	assert.FileExists(t, filepath.Join(cfg.OutDir, "orders.csv"))
	assert.FileExists(t, filepath.Join(cfg.SQLDir, "create_tables.sql"))
}

func TestRunGenerateWithSnapshot(t *testing.T) {
	cfg := testConfig(t)
	cfg.SQLitePath = filepath.Join(t.TempDir(), "sales.db")

	require.NoError(t, runGenerate(context.Background(), cfg, &countingReporter{}))

	info, err := os.Stat(cfg.SQLitePath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSeedConfigFrom(t *testing.T) {
	cfg := testConfig(t)

	seedConfig, err := seedConfigFrom(cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(42), seedConfig.Seed)
	assert.Equal(t, 400, seedConfig.Orders)
	assert.Equal(t, "2025-01-01", seedConfig.Window.Start.Format(config.DateLayout))
	assert.Equal(t, "2025-10-01", seedConfig.Window.End.Format(config.DateLayout))

	cfg.Window.Start = "2025-13-01"
	_, err = seedConfigFrom(cfg)
	assert.Error(t, err)
}
