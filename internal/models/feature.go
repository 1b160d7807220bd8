package models

import "slices"

type Feature struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     FeatureCategory `json:"category"`
	Enabled      bool            `json:"enabled"`
	Cost         *float64        `json:"cost,omitempty"`
	Requirements []string        `json:"requirements,omitempty"`
}

func (f Feature) Clone() Feature {
	if f.Cost != nil {
		cost := *f.Cost
		f.Cost = &cost
	}
	f.Requirements = slices.Clone(f.Requirements)
	return f
}

// QuickAction is a canned prompt offered on the empty chat screen.
type QuickAction struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Prompt      string      `json:"prompt"`
	Category    ProjectType `json:"category"`
}
