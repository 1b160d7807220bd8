package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"macontroller/internal/assistant"
	"macontroller/internal/llm/client"
	"macontroller/internal/models"
)

var ErrMissingAPIKey = errors.New("no API key configured")

// EnvKeySource returns provider keys taken from the environment.
// config.AIConfig satisfies it.
type EnvKeySource interface {
	APIKey(provider string) string
}

type clientFactory func(ctx context.Context, provider, apiKey, modelName string, maxTokens int) (*client.LLMClient, error)

type cachedClient struct {
	apiKey string
	client *client.LLMClient
}

// ClientService turns the current settings into a ready LLM client.
type ClientService struct {
	context        context.Context
	keyringService *KeyringService
	modelConfigs   ModelConfigService
	envKeys        EnvKeySource
	maxTokens      int
	logger         *zap.Logger
	newClient      clientFactory

	mu      sync.Mutex
	clients map[string]cachedClient // model key -> client
}

func NewClientService(keyringService *KeyringService, modelConfigs ModelConfigService, envKeys EnvKeySource, maxTokens int, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		keyringService: keyringService,
		modelConfigs:   modelConfigs,
		envKeys:        envKeys,
		maxTokens:      maxTokens,
		logger:         logger.Named("client"),
		newClient:      newProviderClient,
		clients:        make(map[string]cachedClient),
	}
}

func (s *ClientService) Startup(ctx context.Context) error {
	s.context = ctx
	if s.modelConfigs == nil {
		return fmt.Errorf("model configuration service not configured")
	}
	return nil
}

func (s *ClientService) baseContext() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

// TextGenerator returns a client for the model the settings resolve to.
// ErrMissingAPIKey means no key exists for that model's provider.
func (s *ClientService) TextGenerator(settings models.UserSettings) (*client.LLMClient, *models.AIModel, error) {
	if s.modelConfigs == nil {
		return nil, nil, fmt.Errorf("model configuration service not configured")
	}
	model, err := s.modelConfigs.ResolveModel(settings)
	if err != nil {
		return nil, nil, err
	}

	providerID := strings.TrimSpace(model.ProviderID)
	if providerID == "" {
		return nil, model, fmt.Errorf("model %s is missing provider information", model.DisplayName)
	}

	apiKey, err := s.apiKey(providerID, settings)
	if err != nil {
		return nil, model, err
	}
	if apiKey == "" {
		return nil, model, fmt.Errorf("%w for %s", ErrMissingAPIKey, providerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.clients[model.Key]; ok && cached.apiKey == apiKey {
		return cached.client, model, nil
	}

	llmClient, err := s.newClient(s.baseContext(), providerID, apiKey, model.APIName, s.maxTokens)
	if err != nil {
		return nil, model, fmt.Errorf("failed to create %s client: %w", providerID, err)
	}
	s.clients[model.Key] = cachedClient{apiKey: apiKey, client: llmClient}
	s.logger.Info("llm client ready", zap.String("provider", providerID), zap.String("model", model.APIName))
	return llmClient, model, nil
}

// apiKey looks in the keyring, then the environment, then the settings.
func (s *ClientService) apiKey(provider string, settings models.UserSettings) (string, error) {
	if s.keyringService != nil {
		key, err := s.keyringService.GetApiKey(provider)
		if err != nil {
			s.logger.Warn("keyring lookup failed", zap.String("provider", provider), zap.Error(err))
		} else if key != "" {
			return key, nil
		}
	}
	if s.envKeys != nil {
		if key := strings.TrimSpace(s.envKeys.APIKey(provider)); key != "" {
			return key, nil
		}
	}
	return strings.TrimSpace(settings.APIKeys[provider]), nil
}

func newProviderClient(ctx context.Context, provider, apiKey, modelName string, maxTokens int) (*client.LLMClient, error) {
	switch provider {
	case "anthropic":
		return client.NewClaudeClient(ctx, apiKey, client.ClaudeModelOptions{Model: modelName, MaxTokens: maxTokens})
	case "openai":
		return client.NewOpenAIClient(ctx, apiKey, client.OpenAIModelOptions{Model: modelName, MaxTokens: maxTokens})
	case "gemini":
		return client.NewGeminiClient(ctx, apiKey, client.GeminiModelOptions{Model: modelName, MaxTokens: maxTokens})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// Remote implements RemoteSource.
func (s *ClientService) Remote(settings models.UserSettings) (assistant.TextGenerator, error) {
	c, _, err := s.TextGenerator(settings)
	if err != nil {
		return nil, err
	}
	return c, nil
}
