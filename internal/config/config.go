package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/salesgen/internal/export"
	"github.com/spf13/viper"
)

const (
	DateLayout = "2006-01-02"
	EnvPrefix  = "SALESGEN"
	FileName   = "salesgen.config"
)

type Config struct {
	Seed       int64  `json:"seed" mapstructure:"seed"`
	Database   string `json:"database" mapstructure:"database"`
	OutDir     string `json:"out_dir" mapstructure:"out_dir"`
	SQLDir     string `json:"sql_dir" mapstructure:"sql_dir"`
	SQLitePath string `json:"sqlite_path" mapstructure:"sqlite_path"`
	LogLevel   string `json:"log_level" mapstructure:"log_level"`
	Counts     Counts `json:"counts" mapstructure:"counts"`
	Window     Window `json:"window" mapstructure:"window"`
}

type Counts struct {
	Products         int `json:"products" mapstructure:"products"`
	Clients          int `json:"clients" mapstructure:"clients"`
	Managers         int `json:"managers" mapstructure:"managers"`
	Orders           int `json:"orders" mapstructure:"orders"`
	MaxLinesPerOrder int `json:"max_lines_per_order" mapstructure:"max_lines_per_order"`
}

// Window holds the order date range as YYYY-MM-DD strings
type Window struct {
	Start string `json:"start" mapstructure:"start"`
	End   string `json:"end" mapstructure:"end"`
}

var defaults = map[string]interface{}{
	"seed":                       int64(42),
	"database":                   "sales_dashboard",
	"out_dir":                    "data_sample",
	"sql_dir":                    "sql",
	"log_level":                  "info",
	"sqlite_path":                "",
	"counts.products":            30,
	"counts.clients":             40,
	"counts.managers":            6,
	"counts.orders":              400,
	"counts.max_lines_per_order": 4,
	"window.start":               "2025-01-01",
	"window.end":                 "2025-10-01",
}

// Init registers defaults and environment bindings on v and reads the
// config file when one is present. A missing default config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("json")
		v.SetConfigName(FileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"counts.products", c.Counts.Products},
		{"counts.clients", c.Counts.Clients},
		{"counts.managers", c.Counts.Managers},
		{"counts.orders", c.Counts.Orders},
		{"counts.max_lines_per_order", c.Counts.MaxLinesPerOrder},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}

	if c.OutDir == "" {
		return fmt.Errorf("out_dir cannot be empty")
	}
	if c.SQLDir == "" {
		return fmt.Errorf("sql_dir cannot be empty")
	}
	if err := export.ValidateDirs(c.OutDir, c.SQLDir); err != nil {
		return fmt.Errorf("out_dir and sql_dir: %w", err)
	}
	if c.Database == "" {
		return fmt.Errorf("database cannot be empty")
	}

	start, err := c.StartDate()
	if err != nil {
		return err
	}
	end, err := c.EndDate()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("window.end %s is before window.start %s", c.Window.End, c.Window.Start)
	}

	return nil
}

func (c *Config) StartDate() (time.Time, error) {
	return parseDate("window.start", c.Window.Start)
}

func (c *Config) EndDate() (time.Time, error) {
	return parseDate("window.end", c.Window.End)
}

func parseDate(key, value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return date, nil
}
