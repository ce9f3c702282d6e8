package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/auditsim/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{Code: "1000", Name: "Cash - Operating", Type: model.AccountTypeAsset, NormalBalance: model.NormalDebit, Description: "Primary checking account"},
		{Code: "5200", Name: "Software & SaaS", Type: model.AccountTypeExpense, NormalBalance: model.NormalDebit, Subtype: "operating_expense"},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, accounts, got)
}

func TestUnmarshalAccount_FillsNormalBalance(t *testing.T) {
	acct, err := UnmarshalAccount([]string{"2000", "Accounts Payable", "liability", "", "", ""})
	require.NoError(t, err)
	assert.Equal(t, model.NormalCredit, acct.NormalBalance)
}

func TestUnmarshalAccount_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
	}{
		{"short row", []string{"1000", "Cash"}},
		{"missing code", []string{"", "Cash", "asset", "debit", "", ""}},
		{"bad type", []string{"1000", "Cash", "cash", "debit", "", ""}},
		{"bad normal balance", []string{"1000", "Cash", "asset", "left", "", ""}},
	}
	for _, tt := range tests {
		_, err := UnmarshalAccount(tt.record)
		assert.Error(t, err, tt.name)
	}
}

func TestReadAccounts_RowNumberInError(t *testing.T) {
	data := "code,name,type,normal_balance,subtype,description\n" +
		"1000,Cash,asset,debit,,\n" +
		"2000,AP,bogus,,,\n"
	_, err := ReadAccounts(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart("service_company")
	require.NotEmpty(t, chart)

	codes := make(map[string]bool)
	types := make(map[model.AccountType]bool)
	for _, acct := range chart {
		assert.False(t, codes[acct.Code], "duplicate code %s", acct.Code)
		codes[acct.Code] = true
		types[acct.Type] = true
		assert.NotEmpty(t, acct.Name, "account %s missing name", acct.Code)
		assert.Equal(t, acct.Type.NormalBalance(), acct.NormalBalance, "account %s", acct.Code)
	}
	assert.True(t, codes["1000"], "expected operating cash (1000)")
	assert.Len(t, types, 5, "default chart spans all account types")
}

func TestDefaultChart_UnknownEntityType(t *testing.T) {
	chart := DefaultChart("unknown_type")
	assert.NotEmpty(t, chart)
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart("service_company")

	var buf bytes.Buffer
	err := WriteAccounts(&buf, chart)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}
