package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Rana718/salesgen/internal/config"
	"github.com/Rana718/salesgen/internal/database"
	"github.com/Rana718/salesgen/internal/export"
	"github.com/Rana718/salesgen/internal/schema"
	"github.com/Rana718/salesgen/internal/seeder"
	"github.com/Rana718/salesgen/internal/types"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

func seedConfigFrom(cfg *config.Config) (seeder.SeedConfig, error) {
	start, err := cfg.StartDate()
	if err != nil {
		return seeder.SeedConfig{}, err
	}
	end, err := cfg.EndDate()
	if err != nil {
		return seeder.SeedConfig{}, err
	}

	return seeder.SeedConfig{
		Seed:             cfg.Seed,
		Products:         cfg.Counts.Products,
		Clients:          cfg.Counts.Clients,
		Managers:         cfg.Counts.Managers,
		Orders:           cfg.Counts.Orders,
		MaxLinesPerOrder: cfg.Counts.MaxLinesPerOrder,
		Window:           seeder.DateWindow{Start: start, End: end},
	}, nil
}

func runGenerate(ctx context.Context, cfg *config.Config, reporter export.Reporter) error {
	seedConfig, err := seedConfigFrom(cfg)
	if err != nil {
		return err
	}

	s := seeder.New(seedConfig, logrus.StandardLogger())

	order, err := s.Order()
	if err != nil {
		return err
	}
	color.Cyan("🌱 Generating dataset (seed %d)", cfg.Seed)
	color.Cyan("📋 Generation order: %s", strings.Join(order, " → "))

	dataset, err := s.Generate()
	if err != nil {
		return err
	}

	opts := export.Options{
		DataDir:  cfg.OutDir,
		SQLDir:   cfg.SQLDir,
		Database: cfg.Database,
	}
	tables := schema.Tables()
	if err := export.PerformExport(dataset, tables, opts, reporter); err != nil {
		return err
	}

	if cfg.SQLitePath != "" {
		if err := writeSnapshot(ctx, cfg.SQLitePath, dataset, tables); err != nil {
			return err
		}
	}

	showCompletion(cfg)
	return nil
}

func writeSnapshot(ctx context.Context, path string, dataset *seeder.Dataset, tables []types.SchemaTable) error {
	data, err := export.Render(dataset, tables)
	if err != nil {
		return err
	}

	logrus.WithField("path", path).Debug("Loading dataset into SQLite")
	if err := database.WriteSnapshot(ctx, path, tables, data); err != nil {
		return fmt.Errorf("failed to write SQLite snapshot: %w", err)
	}

	fmt.Printf("🗄️  Saved SQLite snapshot %s\n", color.YellowString(path))
	return nil
}

type consoleReporter struct {
	path *color.Color
}

func newConsoleReporter() *consoleReporter {
	return &consoleReporter{path: color.New(color.FgYellow)}
}

func (r *consoleReporter) TableWritten(path string, rows int) {
	fmt.Printf("✅ Saved %s (%d rows)\n", r.path.Sprint(path), rows)
}

func (r *consoleReporter) ScriptWritten(path string) {
	fmt.Printf("📝 Saved SQL script %s\n", r.path.Sprint(path))
}

func showCompletion(cfg *config.Config) {
	rule := strings.Repeat("=", 60)
	combined := filepath.Join(cfg.SQLDir, schema.CombinedScriptName)

	fmt.Println()
	fmt.Println(rule)
	color.New(color.FgGreen, color.Bold).Printf("Generation complete! Files are in %s/ and %s/.\n", cfg.OutDir, cfg.SQLDir)
	fmt.Println()
	color.Cyan("Importing with DBeaver:")
	fmt.Printf("1. Open %s in DBeaver\n", combined)
	fmt.Println("2. Select the WHOLE script text")
	fmt.Println("3. Run it with SQL Editor -> Execute SQL Script (Alt+X)")
	fmt.Println("   (Russian UI: Редактор SQL -> Выполнить SQL-скрипт)")
	fmt.Printf("4. Import the CSV files from %s/ into the created tables\n", cfg.OutDir)
	fmt.Println(rule)
}
