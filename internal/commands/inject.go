package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/auditsim/internal/inject"
	"github.com/cleared-dev/auditsim/internal/issuelog"
	"github.com/cleared-dev/auditsim/internal/journal"
	"github.com/cleared-dev/auditsim/internal/logger"
	"github.com/cleared-dev/auditsim/internal/model"
)

// injectFlags are shared by inject and run.
type injectFlags struct {
	count int
	basis string
	seed  int64
}

func (f *injectFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.count, "count", 0, "number of issues to plant (default: from config)")
	cmd.Flags().StringVar(&f.basis, "basis", "", "accounting basis, accrual or cash (default: from config)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed for reproducible runs (default: from config, else the clock)")
}

// resolve merges explicitly set flags over the config.
func (f *injectFlags) resolve(cmd *cobra.Command, a *app) (int, model.AccountingBasis, *int64, error) {
	count := a.cfg.Injection.IssueCount
	if cmd.Flags().Changed("count") {
		count = f.count
	}
	if count < 0 {
		return 0, "", nil, fmt.Errorf("--count must not be negative")
	}
	if count > inject.MaxIssueCount {
		return 0, "", nil, fmt.Errorf("--count must not exceed %d", inject.MaxIssueCount)
	}

	basis := a.cfg.Injection.Basis
	if f.basis != "" {
		basis = model.AccountingBasis(f.basis)
	}
	if basis != model.BasisAccrual && basis != model.BasisCash {
		return 0, "", nil, fmt.Errorf("unknown accounting basis %q", basis)
	}

	seed := a.cfg.Injection.Seed
	if cmd.Flags().Changed("seed") {
		seed = &f.seed
	}
	return count, basis, seed, nil
}

func newInjectCommand(a *app) *cobra.Command {
	var lf ledgerFlags
	var inf injectFlags
	var out, issuesOut, logRoot string

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Plant accounting issues into a clean general ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, basis, seed, err := inf.resolve(cmd, a)
			if err != nil {
				return err
			}
			gl, chart, err := lf.load(a)
			if err != nil {
				return err
			}

			inj := inject.New(inject.Options{Seed: seed, Logger: logger.WithComponent("inject")})
			mutated, issues := inj.Inject(gl, chart, count, basis)

			if err := journal.SaveLedger(out, mutated); err != nil {
				return err
			}
			if issues == nil {
				issues = []model.InjectedIssue{}
			}
			if issuesOut != "" {
				if err := writeJSON(cmd, issuesOut, issues); err != nil {
					return err
				}
			}
			auditID := uuid.NewString()
			if logRoot != "" {
				if err := issuelog.Append(logRoot, issuelog.NewRecords(auditID, time.Now().UTC(), issues)); err != nil {
					return err
				}
			}

			a.log.Info().
				Str("audit_id", auditID).
				Int("requested", count).
				Int("injected", len(issues)).
				Str("out", out).
				Msg("issues injected")
			return nil
		},
	}

	lf.register(cmd)
	inf.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "mutated ledger CSV path (required)")
	_ = cmd.MarkFlagRequired("out")
	cmd.Flags().StringVar(&issuesOut, "issues", "", "ground-truth issues JSON path, or - for stdout")
	cmd.Flags().StringVar(&logRoot, "log-root", "", "append ground truth to <dir>/logs/injected-issues.csv")

	return cmd
}
