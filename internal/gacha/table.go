package gacha

import "github.com/osmunda/cardbot/internal/domain"

// Table defines how an item's selection weight is derived: the rarity's base
// weight times every matching tag multiplier times an optional per-item
// multiplier, clamped into [MinWeight, MaxWeight].
type Table struct {
	BaseWeights     map[int]float64
	TagMultipliers  map[string]float64
	CodeMultipliers map[string]float64
	MinWeight       float64
	MaxWeight       float64
}

// NewTable returns a table with the default base weights and clamp bounds.
func NewTable() Table {
	base := make(map[int]float64, len(defaultBaseWeights))
	for rarity, w := range defaultBaseWeights {
		base[rarity] = w
	}
	return Table{
		BaseWeights: base,
		MinWeight:   DefaultMinWeight,
		MaxWeight:   DefaultMaxWeight,
	}
}

// WeightFor computes the effective selection weight for an item.
func (t Table) WeightFor(def domain.ItemDefinition) float64 {
	w, ok := t.BaseWeights[def.Rarity]
	if !ok {
		return 0
	}

	for _, tag := range def.Tags() {
		if m, ok := t.TagMultipliers[tag]; ok {
			w *= m
		}
	}
	if m, ok := t.CodeMultipliers[def.Code]; ok {
		w *= m
	}

	if w < t.MinWeight {
		return t.MinWeight
	}
	if w > t.MaxWeight {
		return t.MaxWeight
	}
	return w
}
