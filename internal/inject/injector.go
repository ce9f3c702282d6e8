// Package inject plants realistic accounting issues into a clean general ledger
// and records what it changed, as ground truth for the anomaly detector.
package inject

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/auditsim/internal/accounts"
	"github.com/cleared-dev/auditsim/internal/id"
	"github.com/cleared-dev/auditsim/internal/journal"
	"github.com/cleared-dev/auditsim/internal/model"
)

// MaxIssueCount bounds the issues planted by a single Inject call. Each applied
// strategy rewrites the working entry slice, so cost grows with the count.
const MaxIssueCount = 500

// Options configures an Injector.
type Options struct {
	// Seed fixes the random source. Nil seeds from the clock.
	Seed *int64
	// Catalog overrides the built-in issue catalog.
	Catalog []model.IssueType
	// Registry overrides the built-in strategies.
	Registry *Registry
	Logger   zerolog.Logger
}

// Injector selects issues from a catalog and applies their strategies.
// It is safe for concurrent use; each Inject call draws its own random
// source from the injector's master source.
type Injector struct {
	catalog  []model.IssueType
	registry *Registry
	log      zerolog.Logger

	mu     sync.Mutex
	master *rand.Rand
}

// New creates an Injector.
func New(opts Options) *Injector {
	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	cat := opts.Catalog
	if cat == nil {
		cat = Catalog()
	}
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Injector{
		catalog:  cat,
		registry: reg,
		log:      opts.Logger,
		master:   rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

func (inj *Injector) newRand() *rand.Rand {
	inj.mu.Lock()
	defer inj.mu.Unlock()
	return rand.New(rand.NewPCG(inj.master.Uint64(), inj.master.Uint64()))
}

// Inject returns a mutated copy of ledger with up to issueCount planted issues
// and one record per issue actually applied. The input ledger is not modified.
func (inj *Injector) Inject(ledger model.GeneralLedger, chart model.ChartOfAccounts, issueCount int, basis model.AccountingBasis) (model.GeneralLedger, []model.InjectedIssue) {
	out := ledger.Clone()
	if issueCount <= 0 {
		return out, nil
	}
	if issueCount > MaxIssueCount {
		inj.log.Warn().Int("requested", issueCount).Int("max", MaxIssueCount).Msg("issue count capped")
		issueCount = MaxIssueCount
	}

	rng := inj.newRand()
	basis = basis.Normalize()
	selected := Select(forBasis(inj.catalog, basis), issueCount, rng)

	period := ledger.Period()
	if period.IsZero() {
		period = journal.InferPeriod(ledger.Entries)
	}

	existing := make([]string, len(ledger.Entries))
	for i, e := range ledger.Entries {
		existing[i] = e.EntryID
	}

	mc := &MutationContext{
		Rand:   rng,
		Chart:  accounts.FromChart(chart),
		Period: period,
		IDs:    id.NewAllocator(existing),
		Basis:  basis,
	}

	entries := out.Entries
	records := make([]model.InjectedIssue, 0, len(selected))
	for _, it := range selected {
		strategy, ok := inj.registry.Get(it.Kind)
		if !ok {
			inj.log.Warn().Str("issue", it.Name).Str("kind", string(it.Kind)).Msg("no strategy registered")
			continue
		}
		m, ok := strategy(mc, entries)
		if !ok {
			inj.log.Debug().Str("issue", it.Name).Msg("strategy not applicable, skipped")
			continue
		}
		entries = m.Entries
		records = append(records, model.InjectedIssue{
			IssueType:       it.Name,
			Category:        it.Category,
			Severity:        it.Severity,
			Description:     it.Description + ": " + m.Detail,
			AffectedEntries: m.Affected,
		})
		inj.log.Debug().
			Str("issue", it.Name).
			Str("category", string(it.Category)).
			Strs("affected", m.Affected).
			Msg("issue injected")
	}

	out.Entries = entries
	return out, records
}
