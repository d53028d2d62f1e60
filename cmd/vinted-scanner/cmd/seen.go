package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cam71101/vinted-scanner/internal/store"
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

var errNoBackend = errors.New("no seen-set backend configured")

var seenJSON bool

var seenCmd = &cobra.Command{
	Use:   "seen",
	Short: "Inspect the persisted seen-set",
}

var seenListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every persisted listing ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ids, err := loadSeenSet(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if seenJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(ids.IDs())
		}
		for _, id := range ids.IDs() {
			if _, err := fmt.Fprintln(out, id); err != nil {
				return err
			}
		}
		return nil
	},
}

var seenCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of persisted listing IDs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ids, err := loadSeenSet(cmd.Context())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), ids.Len())
		return err
	},
}

func init() {
	seenListCmd.Flags().BoolVar(&seenJSON, "json", false, "print as a JSON array")
	seenCmd.AddCommand(seenListCmd, seenCountCmd)
	rootCmd.AddCommand(seenCmd)
}

func loadSeenSet(ctx context.Context) (domain.SeenSet, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	ctx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	defer cancel()

	s, err := store.New(ctx, &cfg.Store, log)
	if err != nil {
		return nil, fmt.Errorf("opening seen-set store: %w", err)
	}
	defer func() { _ = s.Close() }()

	if _, ok := s.(*store.DisabledStore); ok {
		return nil, errNoBackend
	}

	ids, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading seen-set from %s: %w", s.Name(), err)
	}
	return ids, nil
}
