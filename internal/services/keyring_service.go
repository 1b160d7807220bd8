package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/99designs/keyring"
)

const serviceName = "macontroller"

func GetOS() string {
	return runtime.GOOS
}

// APIKeyInfo describes a stored provider key without exposing it.
type APIKeyInfo struct {
	Provider    string `json:"provider"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type KeyringService struct {
	ring keyring.Keyring
}

// NewKeyringService wraps an already opened keyring. Tests pass
// keyring.NewArrayKeyring.
func NewKeyringService(ring keyring.Keyring) *KeyringService {
	return &KeyringService{ring: ring}
}

// OpenKeyringService opens the OS keyring, falling back to an encrypted file
// under the user config dir when no native backend is available.
func OpenKeyringService() (*KeyringService, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName:                    serviceName,
		KeychainTrustApplication:       true,
		KeychainSynchronizable:         false,
		LibSecretCollectionName:        serviceName,
		KWalletAppID:                   serviceName,
		KWalletFolder:                  serviceName,
		WinCredPrefix:                  serviceName,
		FileDir:                        filepath.Join(configDir, serviceName, "keys"),
		FilePasswordFunc:               keyring.FixedStringPrompt(serviceName),
		AllowedBackends:                nil,
		KeychainAccessibleWhenUnlocked: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewKeyringService(ring), nil
}

func (s *KeyringService) StoreApiKey(provider string, apiKey []byte) error {
	if len(apiKey) == 0 {
		return errors.New("API key is empty")
	}
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return errors.New("provider is required")
	}

	return s.ring.Set(keyring.Item{
		Key:         provider,
		Data:        apiKey,
		Label:       provider + " API key",
		Description: "API key for " + provider + " used by MacController",
	})
}

// GetApiKey returns the stored key, or "" when none is stored.
func (s *KeyringService) GetApiKey(provider string) (string, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return "", errors.New("provider is required")
	}
	item, err := s.ring.Get(provider)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(item.Data), nil
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return errors.New("provider is required")
	}
	err := s.ring.Remove(provider)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (s *KeyringService) ListApiKeys() ([]APIKeyInfo, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, err
	}
	slices.Sort(keys)

	results := make([]APIKeyInfo, 0, len(keys))
	for _, provider := range keys {
		results = append(results, APIKeyInfo{
			Provider:    provider,
			Label:       provider + " API key",
			Description: "API key for " + provider + " used by MacController",
		})
	}
	return results, nil
}
