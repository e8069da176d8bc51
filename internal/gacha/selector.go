package gacha

import (
	"sort"

	"github.com/osmunda/cardbot/internal/domain"
)

// Select draws one item from candidates with probability proportional to each
// item's table weight. rnd must return a value in [0, 1). Returns
// domain.ErrNoCandidates when the pool is empty or carries no weight.
func Select(candidates []domain.ItemDefinition, table Table, rnd func() float64) (*domain.ItemDefinition, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}

	// Cumulative weights over the weight-carrying subset, then binary search
	// for the rolled point. Zero-weight candidates are dropped up front: kept,
	// they produce equal adjacent cumulative values, and an exact boundary hit
	// would land on an item that must never be drawn.
	weighted := make([]domain.ItemDefinition, 0, len(candidates))
	cumulative := make([]float64, 0, len(candidates))
	total := 0.0
	for _, c := range candidates {
		w := table.WeightFor(c)
		if w <= 0 {
			continue
		}
		total += w
		weighted = append(weighted, c)
		cumulative = append(cumulative, total)
	}
	if total <= 0 {
		return nil, domain.ErrNoCandidates
	}

	point := rnd() * total
	idx := sort.SearchFloat64s(cumulative, point)
	if idx >= len(weighted) {
		// rnd returned a value at or past 1.0; fall back to the last item.
		idx = len(weighted) - 1
	}
	// SearchFloat64s finds the first cumulative >= point; an exact boundary
	// hit belongs to the next bucket. All weights here are positive, so
	// advancing a single index is enough.
	if cumulative[idx] == point && idx+1 < len(weighted) {
		idx++
	}
	item := weighted[idx]
	return &item, nil
}

// SelectGuaranteedTier draws from the subset of candidates at the highest
// rarity present, preserving relative weights inside that tier.
func SelectGuaranteedTier(candidates []domain.ItemDefinition, table Table, rnd func() float64) (*domain.ItemDefinition, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}

	topTier := 0
	for _, c := range candidates {
		if c.Rarity > topTier {
			topTier = c.Rarity
		}
	}

	subset := make([]domain.ItemDefinition, 0, len(candidates))
	for _, c := range candidates {
		if c.Rarity == topTier {
			subset = append(subset, c)
		}
	}
	return Select(subset, table, rnd)
}
