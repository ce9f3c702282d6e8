package accounts

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/auditsim/internal/model"
)

func TestNewService(t *testing.T) {
	chart := DefaultChart("service_company")
	svc := NewService(chart)

	assert.Len(t, svc.All(), len(chart))
}

func TestNewService_DropsDuplicateCodes(t *testing.T) {
	svc := NewService([]model.Account{
		{Code: "1000", Name: "First", Type: model.AccountTypeAsset},
		{Code: "1000", Name: "Second", Type: model.AccountTypeAsset},
	})
	require.Len(t, svc.All(), 1)
	acct, _ := svc.Get("1000")
	assert.Equal(t, "First", acct.Name)
}

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultChart("service_company"))

	acct, ok := svc.Get("1000")
	assert.True(t, ok)
	assert.Equal(t, "Cash - Operating", acct.Name)

	_, ok = svc.Get("9999")
	assert.False(t, ok)

	assert.True(t, svc.Exists("1000"))
	assert.False(t, svc.Exists("9999"))
}

func TestByType(t *testing.T) {
	svc := NewService(DefaultChart("service_company"))

	assets := svc.ByType(model.AccountTypeAsset)
	assert.Len(t, assets, 5)
	for _, a := range assets {
		assert.Equal(t, model.AccountTypeAsset, a.Type)
	}

	expenses := svc.ByType(model.AccountTypeExpense)
	assert.Len(t, expenses, 8)
}

func TestFindByName(t *testing.T) {
	svc := NewService(DefaultChart("service_company"))

	acct, ok := svc.FindByName(model.AccountTypeExpense, "meals", "travel")
	require.True(t, ok)
	assert.Equal(t, "5300", acct.Code, "first matching expense in chart order")

	_, ok = svc.FindByName(model.AccountTypeRevenue, "rent")
	assert.False(t, ok)
}

func TestChart_IsCopy(t *testing.T) {
	svc := NewService(DefaultChart("service_company"))
	chart := svc.Chart("acme")
	chart.Accounts[0].Name = "changed"

	acct, _ := svc.Get(chart.Accounts[0].Code)
	assert.NotEqual(t, "changed", acct.Name)
	assert.Equal(t, "acme", chart.CompanyID)
}

func TestSaveRoundTrip(t *testing.T) {
	chart := DefaultChart("service_company")
	svc := NewService(chart)

	dir := t.TempDir()
	err := svc.Save(dir)
	require.NoError(t, err)

	_, err = os.Stat(Path(dir))
	require.NoError(t, err)

	svc2, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, svc2.All(), len(chart))

	for _, orig := range chart {
		got, ok := svc2.Get(orig.Code)
		require.True(t, ok, "account %s should exist", orig.Code)
		assert.Equal(t, orig.Name, got.Name)
		assert.Equal(t, orig.Type, got.Type)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
