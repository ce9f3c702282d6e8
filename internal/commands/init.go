package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/auditsim/internal/accounts"
	"github.com/cleared-dev/auditsim/internal/config"
)

func newInitCommand(a *app) *cobra.Command {
	var companyID, name, entityType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an auditsim workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, companyID, name, entityType); err != nil {
				return err
			}
			a.log.Info().Str("dir", absDir).Msg("workspace initialized")
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized auditsim workspace at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "company", "company identifier")
	cmd.Flags().StringVar(&name, "name", "", "company display name")
	cmd.Flags().StringVar(&entityType, "entity-type", "service_company", "entity type of the default chart of accounts")

	return cmd
}

func runInit(dir, companyID, name, entityType string) error {
	for _, d := range []string{"accounts", "ledger", "reports", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(companyID, entityType)
	cfg.Company.Name = name
	if err := config.Save(filepath.Join(dir, config.DefaultFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := accounts.NewService(accounts.DefaultChart(entityType)).Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
