package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

const (
	DefaultMaxTokens   = 1000
	DefaultOpenAIModel = "gpt-4o-mini"
)

// ErrEmptyCompletion is returned when the provider answers with no text.
var ErrEmptyCompletion = errors.New("llm returned an empty completion")

type OpenAIModelOptions struct {
	Model     string
	MaxTokens int
}

type ClaudeModelOptions struct {
	Model     string
	MaxTokens int
}

type GeminiModelOptions struct {
	Model     string
	MaxTokens int
}

// LLMClient sends single-prompt completions to one chat model.
type LLMClient struct {
	chatModel model.BaseChatModel
	provider  string
	modelName string
}

func NewLLMClient(chatModel model.BaseChatModel, provider, modelName string) (*LLMClient, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	return &LLMClient{chatModel: chatModel, provider: provider, modelName: modelName}, nil
}

func NewOpenAIClient(ctx context.Context, key string, opts OpenAIModelOptions) (*LLMClient, error) {
	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}
	maxTokens := maxTokensOrDefault(opts.MaxTokens)
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:    key,
		Model:     modelName,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("creating openai chat model: %w", err)
	}
	return NewLLMClient(chatModel, "openai", modelName)
}

func NewClaudeClient(ctx context.Context, key string, opts ClaudeModelOptions) (*LLMClient, error) {
	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		return nil, errors.New("claude model name is required")
	}
	chatModel, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:    key,
		Model:     modelName,
		MaxTokens: maxTokensOrDefault(opts.MaxTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("creating claude chat model: %w", err)
	}
	return NewLLMClient(chatModel, "anthropic", modelName)
}

func NewGeminiClient(ctx context.Context, key string, opts GeminiModelOptions) (*LLMClient, error) {
	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		return nil, errors.New("gemini model name is required")
	}
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	maxTokens := maxTokensOrDefault(opts.MaxTokens)
	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:    genaiClient,
		Model:     modelName,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini chat model: %w", err)
	}
	return NewLLMClient(chatModel, "gemini", modelName)
}

func (c *LLMClient) Provider() string { return c.provider }

func (c *LLMClient) Model() string { return c.modelName }

// Generate sends prompt as a single user message and returns the reply text.
func (c *LLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	reply, err := c.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", fmt.Errorf("%s generate: %w", c.provider, err)
	}
	if reply == nil || strings.TrimSpace(reply.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return reply.Content, nil
}

func maxTokensOrDefault(n int) int {
	if n <= 0 {
		return DefaultMaxTokens
	}
	return n
}
