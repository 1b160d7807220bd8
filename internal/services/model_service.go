package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"macontroller/internal/assets"
	"macontroller/internal/models"
	"macontroller/internal/repositories"
)

// DefaultModelKey is used when the settings ask for automatic selection.
const DefaultModelKey = "openai|gpt-4o-mini"

var ErrNoEnabledModel = errors.New("no enabled model available")

type ModelConfigService interface {
	Startup(ctx context.Context) error
	ListModelGroups() ([]models.AIModelGroup, error)
	SetModelEnabled(modelKey string, enabled bool) (*models.AIModel, error)
	SetProviderEnabled(provider string, enabled bool) ([]models.AIModel, error)
	GetModel(modelKey string) (*models.AIModel, error)
	ResolveModel(settings models.UserSettings) (*models.AIModel, error)
}

type modelConfigService struct {
	repo       repositories.ModelSettingRepository
	defaultKey string
	ctx        context.Context

	mu            sync.RWMutex
	providerOrder []string
	providerNames map[string]string
	models        map[string]*catalogModel
	settings      map[string]bool
}

type catalogModel struct {
	Key          string
	ProviderID   string
	Provider     string
	DisplayName  string
	APIName      string
	Type         string
	CostPerToken float64
	MaxTokens    int
	Capabilities []string
	Local        bool
}

type rawModelFile struct {
	Providers []rawProvider `json:"providers"`
}

type rawProvider struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Models      []rawModel `json:"models"`
}

type rawModel struct {
	DisplayName  string   `json:"displayName"`
	APIName      string   `json:"apiName"`
	Type         string   `json:"type"`
	CostPerToken float64  `json:"costPerToken"`
	MaxTokens    int      `json:"maxTokens"`
	Capabilities []string `json:"capabilities"`
	Local        bool     `json:"local"`
}

// NewModelConfigService builds the catalog service. An empty defaultKey
// means DefaultModelKey.
func NewModelConfigService(repo repositories.ModelSettingRepository, defaultKey string) ModelConfigService {
	if strings.TrimSpace(defaultKey) == "" {
		defaultKey = DefaultModelKey
	}
	return &modelConfigService{
		repo:          repo,
		defaultKey:    defaultKey,
		models:        make(map[string]*catalogModel),
		settings:      make(map[string]bool),
		providerNames: make(map[string]string),
	}
}

func (s *modelConfigService) Startup(ctx context.Context) error {
	s.ctx = ctx

	var parsed rawModelFile
	if err := json.Unmarshal(assets.ModelsData, &parsed); err != nil {
		return fmt.Errorf("parse models asset: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.providerOrder = make([]string, 0, len(parsed.Providers))
	for _, provider := range parsed.Providers {
		providerID := strings.TrimSpace(provider.ID)
		if providerID == "" {
			continue
		}
		providerName := strings.TrimSpace(provider.DisplayName)
		s.providerNames[providerID] = providerName
		s.providerOrder = append(s.providerOrder, providerID)
		for _, mdl := range provider.Models {
			key := computeModelKey(providerID, mdl.APIName)
			s.models[key] = &catalogModel{
				Key:          key,
				ProviderID:   providerID,
				Provider:     providerName,
				DisplayName:  strings.TrimSpace(mdl.DisplayName),
				APIName:      strings.TrimSpace(mdl.APIName),
				Type:         mdl.Type,
				CostPerToken: mdl.CostPerToken,
				MaxTokens:    mdl.MaxTokens,
				Capabilities: mdl.Capabilities,
				Local:        mdl.Local,
			}
		}
	}

	// Load stored toggles and seed the rest as enabled.
	existing, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load model settings: %w", err)
	}
	for _, setting := range existing {
		s.settings[setting.ModelKey] = setting.Enabled
	}
	for key, def := range s.models {
		if _, ok := s.settings[key]; !ok {
			if _, err := s.repo.Upsert(ctx, key, def.ProviderID, true); err != nil {
				return fmt.Errorf("seed model setting for %s: %w", key, err)
			}
			s.settings[key] = true
		}
	}

	return nil
}

func (s *modelConfigService) baseContext() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}

func (s *modelConfigService) ListModelGroups() ([]models.AIModelGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.AIModelGroup, 0, len(s.providerOrder))
	for _, providerID := range s.providerOrder {
		group := models.AIModelGroup{
			ProviderID:   providerID,
			ProviderName: s.providerName(providerID),
		}
		var modelsForProvider []models.AIModel
		for _, mdl := range s.models {
			if mdl.ProviderID != providerID {
				continue
			}
			modelsForProvider = append(modelsForProvider, s.toAIModel(mdl))
		}
		sortByDisplayName(modelsForProvider)
		group.Models = modelsForProvider
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *modelConfigService) SetModelEnabled(modelKey string, enabled bool) (*models.AIModel, error) {
	modelKey = strings.TrimSpace(modelKey)
	if modelKey == "" {
		return nil, fmt.Errorf("model key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mdl, ok := s.models[modelKey]
	if !ok {
		return nil, fmt.Errorf("model %s not found", modelKey)
	}

	if _, err := s.repo.Upsert(s.baseContext(), modelKey, mdl.ProviderID, enabled); err != nil {
		return nil, err
	}
	s.settings[modelKey] = enabled
	out := s.toAIModel(mdl)
	return &out, nil
}

func (s *modelConfigService) SetProviderEnabled(provider string, enabled bool) ([]models.AIModel, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SetProviderEnabled(s.baseContext(), provider, enabled); err != nil {
		return nil, err
	}

	updated := make([]models.AIModel, 0)
	for _, mdl := range s.models {
		if mdl.ProviderID != provider {
			continue
		}
		s.settings[mdl.Key] = enabled
		updated = append(updated, s.toAIModel(mdl))
	}
	sortByDisplayName(updated)
	return updated, nil
}

func (s *modelConfigService) GetModel(modelKey string) (*models.AIModel, error) {
	modelKey = strings.TrimSpace(modelKey)
	if modelKey == "" {
		return nil, fmt.Errorf("model key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	mdl, ok := s.models[modelKey]
	if !ok {
		return nil, fmt.Errorf("model %s not found", modelKey)
	}
	out := s.toAIModel(mdl)
	return &out, nil
}

// ResolveModel picks the model a chat turn should use. Automatic selection
// uses the default model; otherwise the selected model is looked up by key
// or API name. A missing or disabled choice falls back to the default, then
// to the first enabled model in catalog order.
func (s *modelConfigService) ResolveModel(settings models.UserSettings) (*models.AIModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !settings.AutoSelectModel {
		if mdl := s.lookup(settings.SelectedModel); mdl != nil && s.settings[mdl.Key] {
			out := s.toAIModel(mdl)
			return &out, nil
		}
	}
	if mdl, ok := s.models[s.defaultKey]; ok && s.settings[mdl.Key] {
		out := s.toAIModel(mdl)
		return &out, nil
	}
	for _, providerID := range s.providerOrder {
		var candidates []models.AIModel
		for _, mdl := range s.models {
			if mdl.ProviderID == providerID && s.settings[mdl.Key] {
				candidates = append(candidates, s.toAIModel(mdl))
			}
		}
		if len(candidates) > 0 {
			sortByDisplayName(candidates)
			return &candidates[0], nil
		}
	}
	return nil, ErrNoEnabledModel
}

func (s *modelConfigService) lookup(name string) *catalogModel {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if mdl, ok := s.models[name]; ok {
		return mdl
	}
	var match *catalogModel
	for _, mdl := range s.models {
		if !strings.EqualFold(mdl.APIName, name) {
			continue
		}
		if match == nil || mdl.Key < match.Key {
			match = mdl
		}
	}
	return match
}

func (s *modelConfigService) providerName(providerID string) string {
	if name, ok := s.providerNames[providerID]; ok && strings.TrimSpace(name) != "" {
		return name
	}
	return providerID
}

func (s *modelConfigService) toAIModel(mdl *catalogModel) models.AIModel {
	return models.AIModel{
		Key:          mdl.Key,
		DisplayName:  mdl.DisplayName,
		APIName:      mdl.APIName,
		ProviderID:   mdl.ProviderID,
		ProviderName: mdl.Provider,
		Type:         mdl.Type,
		CostPerToken: mdl.CostPerToken,
		MaxTokens:    mdl.MaxTokens,
		Capabilities: append([]string(nil), mdl.Capabilities...),
		Local:        mdl.Local,
		Enabled:      s.settings[mdl.Key],
	}
}

func sortByDisplayName(list []models.AIModel) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].DisplayName) < strings.ToLower(list[j].DisplayName)
	})
}

func computeModelKey(providerID, apiName string) string {
	return strings.TrimSpace(providerID) + "|" + strings.TrimSpace(apiName)
}
