package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/auditsim/internal/accounts"
	"github.com/cleared-dev/auditsim/internal/journal"
	"github.com/cleared-dev/auditsim/internal/model"
)

// stdio is the --out value that means the command's standard output.
const stdio = "-"

// ledgerFlags are shared by every command that reads a general ledger.
type ledgerFlags struct {
	ledger      string
	chart       string
	company     string
	periodStart string
	periodEnd   string
}

func (f *ledgerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ledger, "ledger", "", "general ledger CSV (required)")
	_ = cmd.MarkFlagRequired("ledger")
	cmd.Flags().StringVar(&f.chart, "chart", "", "chart of accounts CSV (default: built-in chart for the configured entity type)")
	cmd.Flags().StringVar(&f.company, "company", "", "company identifier (default: from config)")
	cmd.Flags().StringVar(&f.periodStart, "period-start", "", "period start date, YYYY-MM-DD (default: inferred from the ledger)")
	cmd.Flags().StringVar(&f.periodEnd, "period-end", "", "period end date, YYYY-MM-DD")
}

// load reads the ledger and chart named by the flags.
func (f *ledgerFlags) load(a *app) (model.GeneralLedger, model.ChartOfAccounts, error) {
	companyID := f.company
	if companyID == "" {
		companyID = a.cfg.Company.ID
	}

	period, err := parsePeriod(f.periodStart, f.periodEnd)
	if err != nil {
		return model.GeneralLedger{}, model.ChartOfAccounts{}, err
	}

	gl, err := journal.LoadLedger(f.ledger, companyID, period)
	if err != nil {
		return model.GeneralLedger{}, model.ChartOfAccounts{}, err
	}

	svc := accounts.NewService(accounts.DefaultChart(a.cfg.Company.EntityType))
	if f.chart != "" {
		svc, err = accounts.LoadFile(f.chart)
		if err != nil {
			return model.GeneralLedger{}, model.ChartOfAccounts{}, err
		}
	}

	a.log.Debug().
		Str("ledger", f.ledger).
		Int("rows", len(gl.Entries)).
		Int("accounts", len(svc.All())).
		Str("period", gl.Period().String()).
		Msg("ledger loaded")
	return gl, svc.Chart(companyID), nil
}

// parsePeriod parses an optional start/end pair. Both or neither must be set.
func parsePeriod(start, end string) (model.Period, error) {
	if start == "" && end == "" {
		return model.Period{}, nil
	}
	if start == "" || end == "" {
		return model.Period{}, fmt.Errorf("--period-start and --period-end must be given together")
	}
	s, err := time.Parse(model.DateFormat, start)
	if err != nil {
		return model.Period{}, fmt.Errorf("parsing --period-start %q: %w", start, err)
	}
	e, err := time.Parse(model.DateFormat, end)
	if err != nil {
		return model.Period{}, fmt.Errorf("parsing --period-end %q: %w", end, err)
	}
	if e.Before(s) {
		return model.Period{}, fmt.Errorf("period end %s is before start %s", end, start)
	}
	return model.Period{Start: s, End: e}, nil
}

// createOutput opens path for writing, or returns the command's stdout for "-".
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == stdio {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

func writeJSON(cmd *cobra.Command, path string, v any) error {
	w, closeFn, err := createOutput(cmd, path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = closeFn()
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return closeFn()
}
