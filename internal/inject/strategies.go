package inject

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/auditsim/internal/model"
)

// RoundAmounts are the amounts the round-number strategy draws from.
var RoundAmounts = []int64{1000, 2500, 5000, 10000, 25000}

// ReportingThreshold is the amount structured payments stay under.
var ReportingThreshold = decimal.NewFromInt(10000)

var personalVendors = []string{
	"Nordstrom",
	"Whole Foods Market",
	"Vail Resorts",
	"Apple Store",
	"Tiffany & Co",
	"Airbnb - Family Trip",
}

var roundVendors = []string{
	"Summit Advisory Group",
	"J. Morgan Consulting",
	"Northwind Holdings",
	"Redwood Partners LLC",
}

const day = 24 * time.Hour

// WrongAccount re-points one row of an existing transaction to another
// account, preferring an account of the same type.
func WrongAccount(mc *MutationContext, entries []model.JournalEntry) (Mutation, bool) {
	if mc.Chart == nil || len(mc.Chart.All()) < 2 {
		return Mutation{}, false
	}

	var candidates []int
	for i, e := range entries {
		if _, ok := mc.Chart.Get(e.AccountCode); ok {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return Mutation{}, false
	}

	idx := candidates[mc.Rand.IntN(len(candidates))]
	current, _ := mc.Chart.Get(entries[idx].AccountCode)

	var targets []model.Account
	for _, a := range mc.Chart.ByType(current.Type) {
		if a.Code != current.Code {
			targets = append(targets, a)
		}
	}
	if len(targets) == 0 {
		for _, a := range mc.Chart.All() {
			if a.Code != current.Code {
				targets = append(targets, a)
			}
		}
	}
	target := targets[mc.Rand.IntN(len(targets))]

	out := clone(entries)
	out[idx].AccountCode = target.Code
	out[idx].AccountName = target.Name

	return Mutation{
		Entries:  out,
		Affected: []string{out[idx].EntryID},
		Detail: fmt.Sprintf("entry %s moved from %s (%s) to %s (%s)",
			out[idx].EntryID, current.Code, current.Name, target.Code, target.Name),
	}, true
}

// Cutoff moves every row of one transaction across the nearer period boundary.
func Cutoff(mc *MutationContext, entries []model.JournalEntry) (Mutation, bool) {
	if len(entries) == 0 || mc.Period.IsZero() {
		return Mutation{}, false
	}

	order, rows := groupRows(entries)
	entryID := order[mc.Rand.IntN(len(order))]
	orig := entries[rows[entryID][0]].Date

	mid := mc.Period.Start.Add(mc.Period.End.Sub(mc.Period.Start) / 2)
	shift := time.Duration(1+mc.Rand.IntN(5)) * day
	var moved time.Time
	direction := "after period end"
	if orig.After(mid) {
		moved = mc.Period.End.Add(shift)
	} else {
		moved = mc.Period.Start.Add(-shift)
		direction = "before period start"
	}

	out := clone(entries)
	for _, i := range rows[entryID] {
		out[i].Date = moved
	}

	return Mutation{
		Entries:  out,
		Affected: []string{entryID},
		Detail: fmt.Sprintf("entry %s redated from %s to %s (%s, %s basis)",
			entryID, orig.Format(model.DateFormat), moved.Format(model.DateFormat), direction, mc.Basis),
	}, true
}

// PersonalExpense appends a business-paid personal purchase.
func PersonalExpense(mc *MutationContext, entries []model.JournalEntry) (Mutation, bool) {
	expense, cash, ok := expenseAndCash(mc, "meals", "travel", "entertainment", "office")
	if !ok || mc.Period.IsZero() {
		return Mutation{}, false
	}

	amount := decimal.New(int64(7500+mc.Rand.IntN(142500)), -2)
	vendor := personalVendors[mc.Rand.IntN(len(personalVendors))]
	date := randomDate(mc)
	entryID := mc.IDs.Next(date)
	desc := fmt.Sprintf("%s purchase", vendor)

	out := append(clone(entries), debitCredit(entryID, date, expense, cash, amount, desc, vendor)...)
	return Mutation{
		Entries:  out,
		Affected: []string{entryID},
		Detail:   fmt.Sprintf("entry %s charges %s at %s to %s", entryID, amount.StringFixed(2), vendor, expense.Name),
	}, true
}

// DuplicatePayment appends a copy of an existing transaction under a new ID,
// preferring transactions with a named vendor.
func DuplicatePayment(mc *MutationContext, entries []model.JournalEntry) (Mutation, bool) {
	if len(entries) == 0 {
		return Mutation{}, false
	}

	order, rows := groupRows(entries)
	var withVendor []string
	for _, entryID := range order {
		for _, i := range rows[entryID] {
			if entries[i].VendorOrCustomer != "" {
				withVendor = append(withVendor, entryID)
				break
			}
		}
	}
	pool := order
	if len(withVendor) > 0 {
		pool = withVendor
	}
	origID := pool[mc.Rand.IntN(len(pool))]

	date := entries[rows[origID][0]].Date.Add(time.Duration(mc.Rand.IntN(8)) * day)
	if !mc.Period.IsZero() && date.After(mc.Period.End) {
		date = mc.Period.End
	}
	dupID := mc.IDs.Next(date)

	out := clone(entries)
	var amount decimal.Decimal
	for _, i := range rows[origID] {
		row := entries[i]
		row.EntryID = dupID
		row.Date = date
		out = append(out, row)
		amount = amount.Add(row.Debit)
	}

	return Mutation{
		Entries:  out,
		Affected: []string{origID, dupID},
		Detail:   fmt.Sprintf("entry %s duplicates %s (%s) on %s", dupID, origID, amount.StringFixed(2), date.Format(model.DateFormat)),
	}, true
}

// RoundNumber appends a disbursement for one of RoundAmounts.
func RoundNumber(mc *MutationContext, entries []model.JournalEntry) (Mutation, bool) {
	expense, cash, ok := expenseAndCash(mc, "professional", "consult")
	if !ok || mc.Period.IsZero() {
		return Mutation{}, false
	}

	amount := decimal.NewFromInt(RoundAmounts[mc.Rand.IntN(len(RoundAmounts))])
	vendor := roundVendors[mc.Rand.IntN(len(roundVendors))]
	date := randomDate(mc)
	entryID := mc.IDs.Next(date)

	out := append(clone(entries), debitCredit(entryID, date, expense, cash, amount, "Advisory services", vendor)...)
	return Mutation{
		Entries:  out,
		Affected: []string{entryID},
		Detail:   fmt.Sprintf("entry %s pays %s to %s", entryID, amount.StringFixed(2), vendor),
	}, true
}

// Structuring appends three to five payments to one vendor on consecutive
// days, each just under ReportingThreshold and together well above it.
func Structuring(mc *MutationContext, entries []model.JournalEntry) (Mutation, bool) {
	expense, cash, ok := expenseAndCash(mc, "professional", "consult")
	if !ok || mc.Period.IsZero() {
		return Mutation{}, false
	}

	n := 3 + mc.Rand.IntN(3)
	vendor := roundVendors[mc.Rand.IntN(len(roundVendors))]
	start := randomDate(mc)
	if latest := mc.Period.End.Add(-time.Duration(n-1) * day); start.After(latest) && !latest.Before(mc.Period.Start) {
		start = latest
	}

	// Amounts fall in [0.90, 0.999) of the threshold.
	floor := ReportingThreshold.Mul(decimal.New(90, -2))
	span := ReportingThreshold.Mul(decimal.New(99, -3)).IntPart() * 100

	out := clone(entries)
	var affected []string
	total := decimal.Zero
	for i := range n {
		date := start.Add(time.Duration(i) * day)
		amount := floor.Add(decimal.New(mc.Rand.Int64N(span), -2))
		entryID := mc.IDs.Next(date)
		desc := fmt.Sprintf("Transfer %d of %d", i+1, n)
		out = append(out, debitCredit(entryID, date, expense, cash, amount, desc, vendor)...)
		affected = append(affected, entryID)
		total = total.Add(amount)
	}

	return Mutation{
		Entries:  out,
		Affected: affected,
		Detail: fmt.Sprintf("%d payments to %s totalling %s, each below %s",
			n, vendor, total.StringFixed(2), ReportingThreshold.StringFixed(2)),
	}, true
}

func clone(entries []model.JournalEntry) []model.JournalEntry {
	out := make([]model.JournalEntry, len(entries))
	copy(out, entries)
	return out
}

// groupRows returns entry IDs in first-seen order and the row indexes per ID.
func groupRows(entries []model.JournalEntry) ([]string, map[string][]int) {
	rows := make(map[string][]int)
	var order []string
	for i, e := range entries {
		if _, seen := rows[e.EntryID]; !seen {
			order = append(order, e.EntryID)
		}
		rows[e.EntryID] = append(rows[e.EntryID], i)
	}
	return order, rows
}

func expenseAndCash(mc *MutationContext, keywords ...string) (model.Account, model.Account, bool) {
	if mc.Chart == nil {
		return model.Account{}, model.Account{}, false
	}
	expense, ok := mc.Chart.FindByName(model.AccountTypeExpense, keywords...)
	if !ok {
		all := mc.Chart.ByType(model.AccountTypeExpense)
		if len(all) == 0 {
			return model.Account{}, model.Account{}, false
		}
		expense = all[mc.Rand.IntN(len(all))]
	}
	cash, ok := mc.Chart.FindByName(model.AccountTypeAsset, "cash", "checking", "bank")
	if !ok {
		all := mc.Chart.ByType(model.AccountTypeAsset)
		if len(all) == 0 {
			return model.Account{}, model.Account{}, false
		}
		cash = all[0]
	}
	return expense, cash, true
}

func randomDate(mc *MutationContext) time.Time {
	days := int(mc.Period.End.Sub(mc.Period.Start) / day)
	if days <= 0 {
		return mc.Period.Start
	}
	return mc.Period.Start.Add(time.Duration(mc.Rand.IntN(days+1)) * day)
}

func debitCredit(entryID string, date time.Time, debit, credit model.Account, amount decimal.Decimal, desc, party string) []model.JournalEntry {
	return []model.JournalEntry{
		{EntryID: entryID, Date: date, AccountCode: debit.Code, AccountName: debit.Name, Debit: amount, Description: desc, VendorOrCustomer: party},
		{EntryID: entryID, Date: date, AccountCode: credit.Code, AccountName: credit.Name, Credit: amount, Description: desc, VendorOrCustomer: party},
	}
}
