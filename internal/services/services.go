package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"macontroller/internal/repositories"
)

// Options carries what the service container needs beyond the database.
type Options struct {
	Store           AppStore
	Keyring         *KeyringService
	EnvKeys         EnvKeySource
	DefaultModelKey string
	MaxTokens       int
	Logger          *zap.Logger
}

// Services aggregates the services bound to the frontend.
type Services struct {
	Workspace WorkspaceService
	Chat      *ChatService
	Clients   *ClientService
	Models    ModelConfigService
	Keyring   *KeyringService
}

// NewServices constructs the service container using repositories backed by db.
func NewServices(db *gorm.DB, opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	modelConfigs := NewModelConfigService(repositories.NewModelSettingRepository(db), opts.DefaultModelKey)
	clients := NewClientService(opts.Keyring, modelConfigs, opts.EnvKeys, opts.MaxTokens, logger)

	return &Services{
		Workspace: NewWorkspaceService(opts.Store),
		Chat:      NewChatService(opts.Store, clients, logger),
		Clients:   clients,
		Models:    modelConfigs,
		Keyring:   opts.Keyring,
	}
}
