package inject

import (
	"math/rand/v2"

	"github.com/cleared-dev/auditsim/internal/model"
)

// Select chooses up to count issue types from issues.
//
// Phase one walks the categories in a probability-weighted order (category
// weight is the sum of its members' probabilities, drawn without replacement)
// and takes one member per category, drawn by member probability. Phase two
// fills the remaining slots by probability-weighted draws over the issues not
// yet chosen; once every issue has been chosen, draws repeat over the full set.
func Select(issues []model.IssueType, count int, rng *rand.Rand) []model.IssueType {
	if count <= 0 || len(issues) == 0 {
		return nil
	}

	members := make(map[model.IssueCategory][]int)
	categories := Categories(issues)
	for i, it := range issues {
		members[it.Category] = append(members[it.Category], i)
	}

	used := make([]bool, len(issues))
	var selected []model.IssueType

	remaining := categories
	for len(remaining) > 0 && len(selected) < count {
		weights := make([]float64, len(remaining))
		for i, c := range remaining {
			for _, idx := range members[c] {
				weights[i] += issues[idx].Probability
			}
		}
		ci := weightedIndex(weights, rng)
		cat := remaining[ci]
		remaining = append(remaining[:ci:ci], remaining[ci+1:]...)

		idxs := members[cat]
		mw := make([]float64, len(idxs))
		for i, idx := range idxs {
			mw[i] = issues[idx].Probability
		}
		pick := idxs[weightedIndex(mw, rng)]
		used[pick] = true
		selected = append(selected, issues[pick])
	}

	for len(selected) < count {
		var pool []int
		for i := range issues {
			if !used[i] {
				pool = append(pool, i)
			}
		}
		if len(pool) == 0 {
			pool = make([]int, len(issues))
			for i := range issues {
				pool[i] = i
			}
		}
		weights := make([]float64, len(pool))
		for i, idx := range pool {
			weights[i] = issues[idx].Probability
		}
		pick := pool[weightedIndex(weights, rng)]
		used[pick] = true
		selected = append(selected, issues[pick])
	}

	return selected
}

// weightedIndex draws an index with probability proportional to its weight.
// Non-positive weights are never drawn unless every weight is non-positive.
func weightedIndex(weights []float64, rng *rand.Rand) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return rng.IntN(len(weights))
	}
	r := rng.Float64() * total
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if r < w {
			return i
		}
		r -= w
	}
	return last
}
