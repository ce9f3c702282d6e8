package accounts

import "github.com/cleared-dev/auditsim/internal/model"

// DefaultChart returns the default chart of accounts for an entity type.
func DefaultChart(entityType string) []model.Account {
	switch entityType {
	case "service_company":
		return serviceCompanyChart()
	default:
		return serviceCompanyChart()
	}
}

func acct(code, name string, t model.AccountType, subtype, desc string) model.Account {
	return model.Account{Code: code, Name: name, Type: t, NormalBalance: t.NormalBalance(), Subtype: subtype, Description: desc}
}

func serviceCompanyChart() []model.Account {
	return []model.Account{
		acct("1000", "Cash - Operating", model.AccountTypeAsset, "current_asset", "Primary operating bank account"),
		acct("1010", "Cash - Payroll", model.AccountTypeAsset, "current_asset", "Payroll bank account"),
		acct("1100", "Accounts Receivable", model.AccountTypeAsset, "current_asset", "Amounts owed by customers"),
		acct("1200", "Prepaid Expenses", model.AccountTypeAsset, "current_asset", ""),
		acct("1500", "Equipment", model.AccountTypeAsset, "fixed_asset", "Computers and office equipment"),
		acct("2000", "Accounts Payable", model.AccountTypeLiability, "current_liability", "Amounts owed to vendors"),
		acct("2100", "Accrued Liabilities", model.AccountTypeLiability, "current_liability", ""),
		acct("2200", "Credit Card Payable", model.AccountTypeLiability, "current_liability", "Corporate card balance"),
		acct("3000", "Owner's Equity", model.AccountTypeEquity, "", ""),
		acct("3100", "Retained Earnings", model.AccountTypeEquity, "", ""),
		acct("4000", "Service Revenue", model.AccountTypeRevenue, "operating_revenue", "Consulting and project fees"),
		acct("4100", "Subscription Revenue", model.AccountTypeRevenue, "operating_revenue", ""),
		acct("5000", "Salaries & Wages", model.AccountTypeExpense, "operating_expense", ""),
		acct("5100", "Rent", model.AccountTypeExpense, "operating_expense", "Office lease"),
		acct("5200", "Software & SaaS", model.AccountTypeExpense, "operating_expense", "Software subscriptions"),
		acct("5300", "Travel", model.AccountTypeExpense, "operating_expense", ""),
		acct("5310", "Meals & Entertainment", model.AccountTypeExpense, "operating_expense", ""),
		acct("5400", "Office Supplies", model.AccountTypeExpense, "operating_expense", ""),
		acct("5500", "Professional Services", model.AccountTypeExpense, "operating_expense", "Legal, accounting, consulting"),
		acct("5600", "Utilities", model.AccountTypeExpense, "operating_expense", ""),
	}
}
