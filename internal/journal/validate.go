package journal

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/auditsim/internal/model"
)

// Rule names the invariant a ValidationError reports.
type Rule string

const (
	RuleRequired    Rule = "required"
	RuleNonNegative Rule = "non_negative"
	RuleBalance     Rule = "balance"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Rule        Rule
	Row         int // 1-based position in the entry slice, 0 for transaction-level errors
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s [row %d, %s]: %s", e.Rule, e.Row, e.EntryID, e.Description)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.EntryID, e.Description)
}

// Fatal reports whether the violation makes the ledger unusable. Unbalanced
// transactions are tolerated: planted issues break balance on purpose.
func (e ValidationError) Fatal() bool {
	return e.Rule != RuleBalance
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks rows against the ledger invariants: required identifiers,
// non-negative amounts, and balanced debits/credits per entry ID.
func Validate(entries []model.JournalEntry) []ValidationError {
	var errs []ValidationError

	for i, e := range entries {
		err := validate.Struct(e)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			errs = append(errs, ValidationError{Rule: RuleRequired, Row: i + 1, EntryID: e.EntryID, Description: err.Error()})
			continue
		}
		for _, fe := range fieldErrs {
			rule := RuleRequired
			desc := fmt.Sprintf("%s is required", fe.Field())
			if fe.Tag() == "gte" {
				rule = RuleNonNegative
				desc = fmt.Sprintf("%s must not be negative", fe.Field())
			}
			errs = append(errs, ValidationError{Rule: rule, Row: i + 1, EntryID: e.EntryID, Description: desc})
		}
	}

	// Group rows by entry.
	totals := make(map[string][2]decimal.Decimal)
	var order []string
	for _, e := range entries {
		t, seen := totals[e.EntryID]
		if !seen {
			order = append(order, e.EntryID)
		}
		t[0] = t[0].Add(e.Debit)
		t[1] = t[1].Add(e.Credit)
		totals[e.EntryID] = t
	}
	for _, entryID := range order {
		t := totals[entryID]
		if !t[0].Equal(t[1]) {
			errs = append(errs, ValidationError{
				Rule:        RuleBalance,
				EntryID:     entryID,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", t[0].StringFixed(2), t[1].StringFixed(2)),
			})
		}
	}

	return errs
}

// FatalErrors filters errs down to the violations that make a ledger unusable.
func FatalErrors(errs []ValidationError) []ValidationError {
	var out []ValidationError
	for _, e := range errs {
		if e.Fatal() {
			out = append(out, e)
		}
	}
	return out
}
