package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/bootstrap"
	"uasz.sn/utilisateursapi/internal/config"
	"uasz.sn/utilisateursapi/internal/server"
	"uasz.sn/utilisateursapi/pkg/database"
	"uasz.sn/utilisateursapi/pkg/logger"
	"uasz.sn/utilisateursapi/pkg/storage"
	"uasz.sn/utilisateursapi/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("service failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogLevel, cfg.AppEnv)
	validator.Setup()

	log.Info().Str("environment", cfg.AppEnv).Str("port", cfg.Port).Msg("starting utilisateurs api")

	db, err := database.Connect(cfg.Database())
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn().Err(err).Msg("failed to close database connection")
		}
	}()

	if err := initData(db, cfg.SeedData); err != nil {
		return err
	}

	redisClient := setupRedis(cfg)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis connection")
			}
		}()
	}

	srv := server.NewServer(cfg, server.Dependencies{
		DB:     db,
		Redis:  redisClient,
		Meili:  setupMeili(cfg),
		Photos: setupPhotos(cfg),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("server shutdown complete")
	return nil
}

func initData(db *gorm.DB, seed bool) error {
	if err := bootstrap.Migrate(db); err != nil {
		return err
	}
	if !seed {
		return nil
	}
	return bootstrap.SeedRoles(db)
}

// setupRedis connects to Redis. Without it write rate limiting is off.
func setupRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		log.Info().Msg("REDIS_URL not set, rate limiting disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to connect to redis, rate limiting disabled")
		_ = client.Close()
		return nil
	}

	log.Info().Str("addr", opts.Addr).Msg("redis connection established")
	return client
}

// setupMeili returns nil when no host is configured, which turns the directory off.
func setupMeili(cfg *config.Config) meilisearch.ServiceManager {
	host := cfg.MeiliSearchHost
	if host == "" {
		log.Info().Msg("MEILISEARCH_HOST not set, annuaire disabled")
		return nil
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host
	}

	return meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
}

func setupPhotos(cfg *config.Config) storage.ImageStorage {
	if cfg.CloudinaryURL == "" {
		log.Info().Msg("CLOUDINARY_URL not set, student photos disabled")
		return nil
	}

	photos, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize cloudinary, student photos disabled")
		return nil
	}
	return photos
}
