package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"macontroller/internal/database"
	"macontroller/internal/utils"
)

// DefaultFile is read when Load is given no explicit path and the file exists.
const DefaultFile = "macontroller.yaml"

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	AI       AIConfig       `yaml:"ai"`
}

type AppConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AIConfig selects the remote text-generation provider. Keys only come from
// the environment so they never end up in a committed YAML file.
type AIConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`

	OpenAIKey    string `yaml:"-"`
	AnthropicKey string `yaml:"-"`
	GeminiKey    string `yaml:"-"`
}

var knownProviders = map[string]bool{"openai": true, "anthropic": true, "gemini": true}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
			LogLevel:    "info",
		},
		Database: DatabaseConfig{
			Path: database.GetDefaultDBPath(),
		},
		AI: AIConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			MaxTokens: 1000,
		},
	}
}

// Load builds the config from defaults, then the YAML file, then .env and the
// process environment. Later sources win.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := utils.LoadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.App.Environment = getEnv("APP_ENV", c.App.Environment)
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.AI.Provider = strings.ToLower(getEnv("AI_PROVIDER", c.AI.Provider))
	c.AI.Model = getEnv("AI_MODEL", c.AI.Model)
	c.AI.MaxTokens = getEnvAsInt("AI_MAX_TOKENS", c.AI.MaxTokens)
	c.AI.OpenAIKey = getEnv("OPENAI_API_KEY", c.AI.OpenAIKey)
	c.AI.AnthropicKey = getEnv("ANTHROPIC_API_KEY", c.AI.AnthropicKey)
	c.AI.GeminiKey = getEnv("GEMINI_API_KEY", c.AI.GeminiKey)
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if !knownProviders[c.AI.Provider] {
		return fmt.Errorf("unsupported AI provider: %s", c.AI.Provider)
	}
	if strings.TrimSpace(c.AI.Model) == "" {
		return fmt.Errorf("AI model is required")
	}
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("AI max tokens must be positive, got %d", c.AI.MaxTokens)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment != "production"
}

// APIKey returns the key configured in the environment for provider.
func (c *AIConfig) APIKey(provider string) string {
	switch provider {
	case "openai":
		return c.OpenAIKey
	case "anthropic":
		return c.AnthropicKey
	case "gemini":
		return c.GeminiKey
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
