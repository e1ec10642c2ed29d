package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/eleven-am/soda-stream/internal/notify"
	"github.com/eleven-am/soda-stream/internal/transcript"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProvideSink always prints to stdout and logs. Redis and the transcript
// store join the fan-out when they are configured.
func ProvideSink(cfg *Config, logger *slog.Logger, client *redis.Client, db *gorm.DB) (notify.Sink, error) {
	sinks := notify.Fanout{
		notify.NewPrinter(os.Stdout),
		notify.NewLogSink(logger),
	}

	if client != nil {
		sinks = append(sinks, notify.NewPublisher(client, cfg.RedisChannel))
		logger.Info("publishing notifications", "channel", cfg.RedisChannel)
	}

	if db != nil {
		store := transcript.NewStore(db)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate transcripts: %w", err)
		}
		sinks = append(sinks, store)
	}

	return sinks, nil
}
