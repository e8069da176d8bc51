package domain

// Rarity tiers for catalog items. Tier drives reward weighting and the
// marketplace price cap.
const (
	RarityCommon    = 1
	RarityUncommon  = 2
	RarityRare      = 3
	RarityEpic      = 4
	RarityLegendary = 5
)

// ItemDefinition describes one catalog item ("card"). Owned by the catalog;
// read-only from the economy core's perspective.
type ItemDefinition struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Rarity   int    `json:"rarity"`
	Category string `json:"category"`
	Group    string `json:"group,omitempty"`
	Era      string `json:"era,omitempty"`
	Pullable bool   `json:"pullable"`
}

// Tags returns the grouping tags used for weight multipliers.
func (d ItemDefinition) Tags() []string {
	tags := make([]string, 0, 3)
	if d.Category != "" {
		tags = append(tags, d.Category)
	}
	if d.Group != "" {
		tags = append(tags, d.Group)
	}
	if d.Era != "" {
		tags = append(tags, d.Era)
	}
	return tags
}
