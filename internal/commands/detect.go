package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/auditsim/internal/detect"
	"github.com/cleared-dev/auditsim/internal/journal"
	"github.com/cleared-dev/auditsim/internal/logger"
	"github.com/cleared-dev/auditsim/internal/model"
)

func newDetectCommand(a *app) *cobra.Command {
	var ledgerPath, company, out string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Scan a general ledger for statistical anomalies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if company == "" {
				company = a.cfg.Company.ID
			}
			gl, err := journal.LoadLedger(ledgerPath, company, model.Period{})
			if err != nil {
				return err
			}

			findings := detect.New(a.cfg.Detection, logger.WithComponent("detect")).Detect(gl)
			if findings == nil {
				findings = []model.AuditFinding{}
			}
			return writeJSON(cmd, out, findings)
		},
	}

	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "general ledger CSV (required)")
	_ = cmd.MarkFlagRequired("ledger")
	cmd.Flags().StringVar(&company, "company", "", "company identifier (default: from config)")
	cmd.Flags().StringVar(&out, "out", stdio, "findings JSON path, or - for stdout")

	return cmd
}
