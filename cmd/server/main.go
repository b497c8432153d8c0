package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"classcode/internal/classcode"
	"classcode/internal/config"
	"classcode/internal/domain"
	"classcode/internal/logger"
	"classcode/internal/repository"
	"classcode/internal/server"
	"classcode/internal/service"
	"classcode/internal/wordlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("invalid log level", logger.Error(err))
		os.Exit(1)
	}
	log := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(slog.String("service", "classcode")),
	)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	words, err := loadWords(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info("forbidden words loaded", slog.Int("count", len(words)))

	generator, err := classcode.New(words, classcode.WithLogger(log))
	if err != nil {
		return err
	}

	repo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := service.NewSessionService(repo, generator, domain.RealClock{},
		service.WithDefaultTTL(cfg.SessionTTL),
		service.WithLogger(log),
	)

	srv := server.New(server.Config{
		Port:            cfg.Port,
		ShutdownTimeout: cfg.ShutdownTimeout,
		BaseURL:         cfg.BaseURL,
		CleanupInterval: cfg.CleanupInterval,
	},
		server.WithSessionService(svc),
		server.WithCleaner(svc),
		server.WithLogger(log),
	)

	return srv.Run(ctx)
}

// loadWords reads the forbidden word list, preferring a local file.
func loadWords(ctx context.Context, cfg *config.Config) ([]string, error) {
	switch {
	case cfg.WordListFile != "":
		return wordlist.Load(cfg.WordListFile)
	case cfg.WordListURL != "":
		return wordlist.Fetch(ctx, cfg.WordListURL, wordlist.WithRetries(cfg.WordListRetries))
	default:
		return nil, nil
	}
}

func newRepository(ctx context.Context, cfg *config.Config) (repository.Repository, func(), error) {
	if cfg.Storage != config.StorageRedis {
		return repository.NewMemoryRepository(), func() {}, nil
	}

	client, err := repository.ConnectRedis(ctx, cfg.RedisURL, 5, time.Second)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewRedisRepository(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
}
