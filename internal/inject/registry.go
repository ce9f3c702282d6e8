package inject

import (
	"math/rand/v2"

	"github.com/cleared-dev/auditsim/internal/accounts"
	"github.com/cleared-dev/auditsim/internal/id"
	"github.com/cleared-dev/auditsim/internal/model"
)

// Mutation is the outcome of applying one strategy.
type Mutation struct {
	Entries  []model.JournalEntry // the full entry list after the change
	Affected []string             // entry IDs touched or created, in order
	Detail   string               // what was changed, for the issue record
}

// Strategy plants one issue. It must not modify entries in place; it returns
// false when the ledger offers nothing it can work with.
type Strategy func(mc *MutationContext, entries []model.JournalEntry) (Mutation, bool)

// MutationContext carries what strategies need besides the entry list.
type MutationContext struct {
	Rand   *rand.Rand
	Chart  *accounts.Service
	Period model.Period
	IDs    *id.Allocator
	Basis  model.AccountingBasis
}

// Registry maps issue kinds to strategies.
type Registry struct {
	strategies map[model.IssueKind]Strategy
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[model.IssueKind]Strategy)}
}

// Register adds a strategy. Panics on duplicate kind.
func (r *Registry) Register(kind model.IssueKind, s Strategy) {
	if _, ok := r.strategies[kind]; ok {
		panic("duplicate strategy kind: " + string(kind))
	}
	r.strategies[kind] = s
}

// Get returns the strategy for kind.
func (r *Registry) Get(kind model.IssueKind) (Strategy, bool) {
	s, ok := r.strategies[kind]
	return s, ok
}

// DefaultRegistry returns a registry with all built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(model.KindWrongAccount, WrongAccount)
	r.Register(model.KindCutoff, Cutoff)
	r.Register(model.KindPersonalExpense, PersonalExpense)
	r.Register(model.KindDuplicatePayment, DuplicatePayment)
	r.Register(model.KindRoundNumber, RoundNumber)
	r.Register(model.KindStructuring, Structuring)
	return r
}
