package cmd

import (
	"fmt"
	"os"

	"github.com/Rana718/salesgen/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.0.0"
)

var rootCmd = &cobra.Command{
	Use:   "salesgen",
	Short: "Generate a synthetic sales dataset with matching SQL scripts",
	Long: `
salesgen builds a small relational sales dataset (products, teams, clients,
orders, order lines, sales, returns and plans) and writes it as CSV files
together with CREATE TABLE scripts for importing into a BI database.

Output is fully determined by the configuration: the same seed and counts
always produce byte-identical files. Previous output directories are removed
before every run.

Configuration is read from ./salesgen.config.json when present and from
SALESGEN_* environment variables, for example:
  SALESGEN_SEED=7
  SALESGEN_COUNTS_ORDERS=1000
  SALESGEN_WINDOW_END=2025-12-01
  SALESGEN_SQLITE_PATH=sales.db   (also load the dataset into SQLite)`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: initConfig,

	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("salesgen version %s\n", Version)
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if err := configureLogging(cfg.LogLevel); err != nil {
			return err
		}

		return runGenerate(cmd.Context(), cfg, newConsoleReporter())
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./salesgen.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	return config.Init(viper.GetViper(), cfgFile)
}

func configureLogging(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log_level %q: %w", level, err)
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(parsed)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	return nil
}
