package models

import "maps"

// UserSettings holds the operator preferences edited on the settings screen.
// Numeric limits are not validated; whatever the UI sends is kept.
type UserSettings struct {
	AssistantName           string            `json:"assistantName"`
	AssistantPersonality    string            `json:"assistantPersonality"`
	AutoSelectModel         bool              `json:"autoSelectModel"`
	SelectedModel           string            `json:"selectedModel"`
	DailyBudgetLimit        float64           `json:"dailyBudgetLimit"`
	MonthlyBudgetLimit      float64           `json:"monthlyBudgetLimit"`
	MaxConcurrentProcesses  int               `json:"maxConcurrentProcesses"`
	CloudSyncEnabled        bool              `json:"cloudSyncEnabled"`
	AntiTheftEnabled        bool              `json:"antiTheftEnabled"`
	CostOptimizationEnabled bool              `json:"costOptimizationEnabled"`
	PreferLocalModels       bool              `json:"preferLocalModels"`
	APIKeys                 map[string]string `json:"apiKeys"`
}

type SettingsPatch struct {
	AssistantName           *string           `json:"assistantName,omitempty"`
	AssistantPersonality    *string           `json:"assistantPersonality,omitempty"`
	AutoSelectModel         *bool             `json:"autoSelectModel,omitempty"`
	SelectedModel           *string           `json:"selectedModel,omitempty"`
	DailyBudgetLimit        *float64          `json:"dailyBudgetLimit,omitempty"`
	MonthlyBudgetLimit      *float64          `json:"monthlyBudgetLimit,omitempty"`
	MaxConcurrentProcesses  *int              `json:"maxConcurrentProcesses,omitempty"`
	CloudSyncEnabled        *bool             `json:"cloudSyncEnabled,omitempty"`
	AntiTheftEnabled        *bool             `json:"antiTheftEnabled,omitempty"`
	CostOptimizationEnabled *bool             `json:"costOptimizationEnabled,omitempty"`
	PreferLocalModels       *bool             `json:"preferLocalModels,omitempty"`
	APIKeys                 map[string]string `json:"apiKeys,omitempty"`
}

// Apply shallow-merges the patch. APIKeys replaces the whole map, like any
// other top-level field.
func (p SettingsPatch) Apply(dst *UserSettings) {
	if p.AssistantName != nil {
		dst.AssistantName = *p.AssistantName
	}
	if p.AssistantPersonality != nil {
		dst.AssistantPersonality = *p.AssistantPersonality
	}
	if p.AutoSelectModel != nil {
		dst.AutoSelectModel = *p.AutoSelectModel
	}
	if p.SelectedModel != nil {
		dst.SelectedModel = *p.SelectedModel
	}
	if p.DailyBudgetLimit != nil {
		dst.DailyBudgetLimit = *p.DailyBudgetLimit
	}
	if p.MonthlyBudgetLimit != nil {
		dst.MonthlyBudgetLimit = *p.MonthlyBudgetLimit
	}
	if p.MaxConcurrentProcesses != nil {
		dst.MaxConcurrentProcesses = *p.MaxConcurrentProcesses
	}
	if p.CloudSyncEnabled != nil {
		dst.CloudSyncEnabled = *p.CloudSyncEnabled
	}
	if p.AntiTheftEnabled != nil {
		dst.AntiTheftEnabled = *p.AntiTheftEnabled
	}
	if p.CostOptimizationEnabled != nil {
		dst.CostOptimizationEnabled = *p.CostOptimizationEnabled
	}
	if p.PreferLocalModels != nil {
		dst.PreferLocalModels = *p.PreferLocalModels
	}
	if p.APIKeys != nil {
		dst.APIKeys = maps.Clone(p.APIKeys)
	}
}

func (s UserSettings) Clone() UserSettings {
	s.APIKeys = maps.Clone(s.APIKeys)
	return s
}
