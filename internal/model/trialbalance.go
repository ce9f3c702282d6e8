package model

import "github.com/shopspring/decimal"

// TrialBalanceRow holds period totals for one account.
type TrialBalanceRow struct {
	AccountCode      string          `json:"account_code"`
	AccountName      string          `json:"account_name"`
	AccountType      AccountType     `json:"account_type,omitempty"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
}

// TrialBalance summarizes a general ledger per account.
type TrialBalance struct {
	CompanyID    string            `json:"company_id"`
	Period       Period            `json:"period"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"total_debits"`
	TotalCredits decimal.Decimal   `json:"total_credits"`
	IsBalanced   bool              `json:"is_balanced"`
}
