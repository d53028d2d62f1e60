// Package cmd implements the CLI commands for vinted-scanner.
package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cam71101/vinted-scanner/internal/config"
	"github.com/cam71101/vinted-scanner/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "vinted-scanner",
		Short: "Report new Vinted listings for saved searches",
		Long: "vinted-scanner runs each configured catalog search once, notifies\n" +
			"listings it has not reported before, and remembers them for the next run.\n" +
			"Without a subcommand it runs a scan.",
		SilenceUsage: true,
		RunE:         runScan,
	}
)

// Root returns the root cobra command.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "search and log novel listings without notifying or saving")

	cobra.CheckErr(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format")))
	cobra.CheckErr(viper.BindPFlag("dry_run", rootCmd.PersistentFlags().Lookup("dry-run")))
}

func initConfig() {
	viper.SetEnvPrefix("VSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file and applies flag and VSCAN_* overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if v := viper.GetString("log_level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("log_format"); v != "" {
		cfg.Logging.Format = v
	}
	if viper.GetBool("dry_run") {
		cfg.Scan.DryRun = true
	}

	return cfg, nil
}

// bootstrapLogger is used until the config has been read.
func bootstrapLogger() *slog.Logger {
	return logger.New(viper.GetString("log_level"), viper.GetString("log_format"))
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}
