package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/auditsim/internal/trialbalance"
)

func newTrialBalanceCommand(a *app) *cobra.Command {
	var lf ledgerFlags
	var out string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Derive a trial balance from a general ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gl, chart, err := lf.load(a)
			if err != nil {
				return err
			}

			tb := trialbalance.NewGenerator(a.cfg.TrialBalance.Tolerance).
				Derive(gl.CompanyID, gl, chart, gl.Period())

			w, closeFn, err := createOutput(cmd, out)
			if err != nil {
				return err
			}
			if err := trialbalance.WriteCSV(w, tb); err != nil {
				_ = closeFn()
				return fmt.Errorf("writing trial balance: %w", err)
			}
			if err := closeFn(); err != nil {
				return fmt.Errorf("writing trial balance: %w", err)
			}

			ev := a.log.Info()
			if !tb.IsBalanced {
				ev = a.log.Warn()
			}
			ev.Str("total_debits", tb.TotalDebits.StringFixed(2)).
				Str("total_credits", tb.TotalCredits.StringFixed(2)).
				Bool("balanced", tb.IsBalanced).
				Msg("trial balance derived")
			return nil
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&out, "out", stdio, "output CSV path, or - for stdout")

	return cmd
}
