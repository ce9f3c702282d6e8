package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// NormalBalance is the side on which an account's balance normally sits.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "debit"
	NormalCredit NormalBalance = "credit"
)

// NormalBalance returns the conventional normal balance for the account type.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return NormalDebit
	default:
		return NormalCredit
	}
}

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	Type          AccountType   `json:"type"`
	NormalBalance NormalBalance `json:"normal_balance"`
	Subtype       string        `json:"subtype,omitempty"`
	Description   string        `json:"description,omitempty"`
}

// ChartOfAccounts is the ordered account list for one company.
type ChartOfAccounts struct {
	CompanyID string    `json:"company_id"`
	Accounts  []Account `json:"accounts"`
}
