package commands

import (
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/auditsim/internal/audit"
	"github.com/cleared-dev/auditsim/internal/detect"
	"github.com/cleared-dev/auditsim/internal/inject"
	"github.com/cleared-dev/auditsim/internal/issuelog"
	"github.com/cleared-dev/auditsim/internal/journal"
	"github.com/cleared-dev/auditsim/internal/logger"
	"github.com/cleared-dev/auditsim/internal/metrics"
	"github.com/cleared-dev/auditsim/internal/model"
	"github.com/cleared-dev/auditsim/internal/trialbalance"
)

// Artifact names written by run under --out-dir.
const (
	runLedgerFile       = "ledger.csv"
	runTrialBalanceFile = "trial-balance.csv"
	runIssuesFile       = "injected-issues.json"
	runFindingsFile     = "findings.json"
	runReportFile       = "audit.json"
)

func newRunCommand(a *app) *cobra.Command {
	var lf ledgerFlags
	var inf injectFlags
	var outDir, metricsFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Inject issues, derive the trial balance, detect anomalies and score the detector",
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

			reg := prometheus.NewRegistry()
			runner := audit.NewRunner(audit.Options{
				Injector:  inject.New(inject.Options{Seed: seed, Logger: logger.WithComponent("inject")}),
				Generator: trialbalance.NewGenerator(a.cfg.TrialBalance.Tolerance),
				Detector:  detect.New(a.cfg.Detection, logger.WithComponent("detect")),
				Metrics:   metrics.New(reg),
				Logger:    logger.WithComponent("audit"),
			})
			res := runner.Run(gl, chart, audit.Params{IssueCount: count, Basis: basis})

			if err := writeRunArtifacts(cmd, outDir, res); err != nil {
				return err
			}
			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
			}

			logged, err := issuelog.Read(outDir)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Audit %s: %d issues injected, %d findings, %d detected, recall %.1f%%\n",
				res.AuditID, len(res.Issues), len(res.Findings), len(res.Evaluation.Detected), res.Evaluation.Recall*100)
			fmt.Fprintf(w, "Ground truth log %s: %d issues from this run, %d runs total\n",
				issuelog.Path(outDir), len(issuelog.ByAudit(logged, res.AuditID)), len(issuelog.AuditIDs(logged)))
			return nil
		},
	}

	lf.register(cmd)
	inf.register(cmd)
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for run artifacts (required)")
	_ = cmd.MarkFlagRequired("out-dir")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format")

	return cmd
}

func writeRunArtifacts(cmd *cobra.Command, dir string, res audit.Result) error {
	if err := journal.SaveLedger(filepath.Join(dir, runLedgerFile), res.Ledger); err != nil {
		return err
	}

	w, closeFn, err := createOutput(cmd, filepath.Join(dir, runTrialBalanceFile))
	if err != nil {
		return err
	}
	if err := trialbalance.WriteCSV(w, res.TrialBalance); err != nil {
		_ = closeFn()
		return fmt.Errorf("writing trial balance: %w", err)
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("writing trial balance: %w", err)
	}

	if res.Issues == nil {
		res.Issues = []model.InjectedIssue{}
	}
	if res.Findings == nil {
		res.Findings = []model.AuditFinding{}
	}
	if err := writeJSON(cmd, filepath.Join(dir, runIssuesFile), res.Issues); err != nil {
		return err
	}
	if err := writeJSON(cmd, filepath.Join(dir, runFindingsFile), res.Findings); err != nil {
		return err
	}
	if err := writeJSON(cmd, filepath.Join(dir, runReportFile), res); err != nil {
		return err
	}
	return issuelog.Append(dir, issuelog.NewRecords(res.AuditID, res.StartedAt.UTC(), res.Issues))
}
