package inject

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/auditsim/internal/accounts"
	"github.com/cleared-dev/auditsim/internal/id"
	"github.com/cleared-dev/auditsim/internal/model"
)

var (
	q1Start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	q1End   = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
)

func testChart() model.ChartOfAccounts {
	return accounts.NewService(accounts.DefaultChart("service_company")).Chart("acme")
}

// cleanLedger builds n balanced expense payments spread across Q1 2025.
func cleanLedger(n int) model.GeneralLedger {
	rng := rand.New(rand.NewPCG(1, 2))
	svc := accounts.NewService(accounts.DefaultChart("service_company"))
	expenses := svc.ByType(model.AccountTypeExpense)
	cash, _ := svc.Get("1000")
	vendors := []string{"Acme Supply", "Globex", "Initech", ""}

	gl := model.GeneralLedger{CompanyID: "acme", PeriodStart: q1Start, PeriodEnd: q1End}
	seq := map[time.Month]int{}
	for range n {
		date := q1Start.AddDate(0, 0, rng.IntN(90))
		seq[date.Month()]++
		entryID := id.FormatEntryID(date.Year(), int(date.Month()), seq[date.Month()])
		exp := expenses[rng.IntN(len(expenses))]
		amount := decimal.New(int64(1000+rng.IntN(300000)), -2)
		vendor := vendors[rng.IntN(len(vendors))]
		gl.Entries = append(gl.Entries,
			model.JournalEntry{EntryID: entryID, Date: date, AccountCode: exp.Code, AccountName: exp.Name, Debit: amount, Description: "Payment", VendorOrCustomer: vendor},
			model.JournalEntry{EntryID: entryID, Date: date, AccountCode: cash.Code, AccountName: cash.Name, Credit: amount, Description: "Payment", VendorOrCustomer: vendor},
		)
	}
	return gl
}

func seed(v int64) *int64 {
	return &v
}

func newContext(gl model.GeneralLedger, s uint64) *MutationContext {
	existing := make([]string, len(gl.Entries))
	for i, e := range gl.Entries {
		existing[i] = e.EntryID
	}
	return &MutationContext{
		Rand:   rand.New(rand.NewPCG(s, s+1)),
		Chart:  accounts.FromChart(testChart()),
		Period: gl.Period(),
		IDs:    id.NewAllocator(existing),
		Basis:  model.BasisAccrual,
	}
}

func entryIDs(entries []model.JournalEntry) map[string]bool {
	out := make(map[string]bool)
	for _, e := range entries {
		out[e.EntryID] = true
	}
	return out
}
