package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/ai"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/auth"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/config"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/prompts"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/routers"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/storage"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	log.Logger = logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	store, err := stores.NewStore(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

	ctx := context.Background()
	generator, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create model client")
	}

	avatars, err := storage.NewAvatarStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create avatar storage")
	}

	router := routers.New(routers.Deps{
		Config:  cfg,
		Store:   store,
		Auth:    auth.NewManager(cfg.JWTSecret, cfg.JWTExpiry, store),
		Engine:  ai.NewEngine(generator, logger),
		Prompts: prompts.NewManager("prompts"),
		Avatars: avatars,
		Logger:  logger,
	})

	logger.Info().Str("port", cfg.Port).Str("model", cfg.GeminiModel).Msg("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
