package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cam71101/vinted-scanner/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply Postgres seen-set migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	if cfg.Store.Postgres.DSN == "" {
		return errors.New("migrate requires store.postgres.dsn or DATABASE_URL")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	s, err := store.NewPostgresStore(ctx, cfg.Store.Postgres.DSN, cfg.Store.Key)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	log.Info("running migrations")

	if err := s.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Info("migrations complete")
	return nil
}
