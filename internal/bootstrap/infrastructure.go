package bootstrap

import (
	"context"
	"log/slog"

	"github.com/eleven-am/soda-stream/internal/transcript"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// ProvideRedisClient returns nil when REDIS_ADDR is unset.
func ProvideRedisClient(lc fx.Lifecycle, cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client
}

// ProvideDatabase returns nil when TRANSCRIPT_DSN is unset.
func ProvideDatabase(lc fx.Lifecycle, cfg *Config, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.TranscriptDSN == "" {
		return nil, nil
	}
	db, err := transcript.Open(cfg.TranscriptDSN)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	logger.Info("transcript database connected")
	return db, nil
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideRedisClient,
		ProvideDatabase,
	),
)
