package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"go.uber.org/zap"

	"macontroller/internal/config"
	"macontroller/internal/database"
	"macontroller/internal/events"
	"macontroller/internal/logging"
	"macontroller/internal/repositories"
	"macontroller/internal/services"
	"macontroller/internal/store"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.App.LogLevel, cfg.IsDevelopment())
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Init(database.Config{
		Path:   cfg.Database.Path,
		Logger: log,
	})
	if err != nil {
		log.Error("failed to open database", zap.Error(err))
		return
	}

	app := NewApp(log)
	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	// Rehydrate and repair before anything can read the store.
	initCtx := context.Background()
	appStore, err := store.Open(initCtx, store.Options{
		Persister: repositories.NewStateRepository(db, store.Namespace),
		Logger:    log,
	})
	if err != nil {
		log.Error("failed to open store", zap.Error(err))
		return
	}

	keyringService, err := services.OpenKeyringService()
	if err != nil {
		log.Warn("keyring unavailable, API keys will come from the environment or settings", zap.Error(err))
	}

	svc := services.NewServices(db, services.Options{
		Store:           appStore,
		Keyring:         keyringService,
		EnvKeys:         &cfg.AI,
		DefaultModelKey: cfg.AI.Provider + "|" + cfg.AI.Model,
		MaxTokens:       cfg.AI.MaxTokens,
		Logger:          log,
	})
	if err := svc.Models.Startup(initCtx); err != nil {
		log.Error("failed to load model catalog", zap.Error(err))
		return
	}

	bind := []interface{}{
		app,
		appStore,
		svc.Workspace,
		svc.Chat,
		svc.Models,
	}
	if keyringService != nil {
		bind = append(bind, keyringService)
	}

	err = wails.Run(&options.App{
		Title:  "MacController",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "MacController",
		},
		Logger:           logging.NewWailsLogger(log),
		LogLevel:         logging.WailsLevel(cfg.App.LogLevel),
		BackgroundColour: &options.RGBA{R: 15, G: 23, B: 42, A: 1},
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
			events.EnableRuntimeEmitter()
			appStore.Startup(ctx)
			svc.Chat.Startup(ctx)
			if err := svc.Clients.Startup(ctx); err != nil {
				log.Error("failed to start client service", zap.Error(err))
			}
		},
		OnShutdown: app.shutdown,
		Bind:       bind,
	})

	if err != nil {
		log.Error("wails run failed", zap.Error(err))
	}
}
