package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestConfig(t *testing.T, cfgFile string) *Config {
	t.Helper()

	v := viper.New()
	require.NoError(t, Init(v, cfgFile))

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := loadTestConfig(t, "")

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "sales_dashboard", cfg.Database)
	assert.Equal(t, "data_sample", cfg.OutDir)
	assert.Equal(t, "sql", cfg.SQLDir)
	assert.Empty(t, cfg.SQLitePath)
	assert.Equal(t, Counts{Products: 30, Clients: 40, Managers: 6, Orders: 400, MaxLinesPerOrder: 4}, cfg.Counts)
	assert.Equal(t, "2025-01-01", cfg.Window.Start)
	assert.Equal(t, "2025-10-01", cfg.Window.End)
	require.NoError(t, cfg.Validate())
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	content := `{"seed": 7, "counts": {"orders": 12}, "window": {"end": "2025-03-15"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := loadTestConfig(t, path)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 12, cfg.Counts.Orders)
	assert.Equal(t, 30, cfg.Counts.Products)
	assert.Equal(t, "2025-03-15", cfg.Window.End)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	err := Init(viper.New(), filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("SALESGEN_SEED", "99")
	t.Setenv("SALESGEN_COUNTS_MANAGERS", "3")
	t.Setenv("SALESGEN_SQLITE_PATH", "sales.db")

	cfg := loadTestConfig(t, "")

	assert.Equal(t, "sales.db", cfg.SQLitePath)

	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 3, cfg.Counts.Managers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero products", func(c *Config) { c.Counts.Products = 0 }},
		{"negative orders", func(c *Config) { c.Counts.Orders = -1 }},
		{"zero max lines", func(c *Config) { c.Counts.MaxLinesPerOrder = 0 }},
		{"empty out dir", func(c *Config) { c.OutDir = "" }},
		{"empty sql dir", func(c *Config) { c.SQLDir = "" }},
		{"same dirs", func(c *Config) { c.SQLDir = c.OutDir }},
		{"same dirs spelled differently", func(c *Config) { c.OutDir, c.SQLDir = "./out", "out" }},
		{"data dir inside sql dir", func(c *Config) { c.OutDir, c.SQLDir = "sql/data", "sql" }},
		{"sql dir inside data dir", func(c *Config) { c.OutDir, c.SQLDir = "out", "out/sql/" }},
		{"empty database", func(c *Config) { c.Database = "" }},
		{"bad start", func(c *Config) { c.Window.Start = "2025/01/01" }},
		{"end before start", func(c *Config) { c.Window.End = "2024-12-31" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t, "")
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestCollapsedWindowIsValid(t *testing.T) {
	cfg := loadTestConfig(t, "")
	cfg.Window.End = cfg.Window.Start

	require.NoError(t, cfg.Validate())
}

func TestSeedDefaultMatchesFieldType(t *testing.T) {
	v := viper.New()
	require.NoError(t, Init(v, ""))

	assert.IsType(t, int64(0), v.Get("seed"))
}
