// Package catalog exposes the static data the app ships with: the default
// feature set, quick actions, default settings and the default profile.
package catalog

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"macontroller/internal/assets"
	"macontroller/internal/models"
)

const (
	DefaultProfileID    = "default_profile"
	DefaultProfileName  = "Default User"
	DefaultProfileEmail = "user@macoscontroller.com"
	DefaultAssistant    = "MacController"
)

type rawFeatureFile struct {
	Features []models.Feature `json:"features"`
}

type rawQuickActionFile struct {
	QuickActions []models.QuickAction `json:"quickActions"`
}

var loadFeatures = sync.OnceValues(func() ([]models.Feature, error) {
	var parsed rawFeatureFile
	if err := json.Unmarshal(assets.FeaturesData, &parsed); err != nil {
		return nil, fmt.Errorf("parse features asset: %w", err)
	}
	seen := make(map[string]bool, len(parsed.Features))
	for _, f := range parsed.Features {
		if f.ID == "" || seen[f.ID] {
			return nil, fmt.Errorf("features asset: missing or duplicate id %q", f.ID)
		}
		if !f.Category.Valid() {
			return nil, fmt.Errorf("features asset: feature %s has unknown category %q", f.ID, f.Category)
		}
		seen[f.ID] = true
	}
	return parsed.Features, nil
})

var loadQuickActions = sync.OnceValues(func() ([]models.QuickAction, error) {
	var parsed rawQuickActionFile
	if err := json.Unmarshal(assets.QuickActionsData, &parsed); err != nil {
		return nil, fmt.Errorf("parse quick actions asset: %w", err)
	}
	return parsed.QuickActions, nil
})

// DefaultFeatures returns a fresh copy of the seeded feature catalog.
func DefaultFeatures() ([]models.Feature, error) {
	features, err := loadFeatures()
	if err != nil {
		return nil, err
	}
	out := make([]models.Feature, len(features))
	for i, f := range features {
		out[i] = f.Clone()
	}
	return out, nil
}

func QuickActions() ([]models.QuickAction, error) {
	actions, err := loadQuickActions()
	if err != nil {
		return nil, err
	}
	out := make([]models.QuickAction, len(actions))
	copy(out, actions)
	return out, nil
}

func DefaultSettings() models.UserSettings {
	return models.UserSettings{
		AssistantName:           DefaultAssistant,
		AssistantPersonality:    "Professional and efficient AI operator",
		AutoSelectModel:         true,
		SelectedModel:           "gpt-4",
		DailyBudgetLimit:        50,
		MonthlyBudgetLimit:      1000,
		MaxConcurrentProcesses:  4,
		CloudSyncEnabled:        true,
		AntiTheftEnabled:        true,
		CostOptimizationEnabled: true,
		PreferLocalModels:       false,
		APIKeys:                 map[string]string{},
	}
}

// DefaultProfile is the profile synthesized when nothing has been persisted yet.
func DefaultProfile(now time.Time) models.Profile {
	return models.Profile{
		ID:        DefaultProfileID,
		Name:      DefaultProfileName,
		Email:     DefaultProfileEmail,
		CreatedAt: now,
		Settings:  DefaultSettings(),
	}
}
