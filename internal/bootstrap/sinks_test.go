package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/eleven-am/soda-stream/internal/notify"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestProvideSink(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &Config{RedisChannel: notify.DefaultChannel}

	sink, err := ProvideSink(cfg, log, nil, nil)
	if err != nil {
		t.Fatalf("ProvideSink() error = %v", err)
	}
	if got := len(sink.(notify.Fanout)); got != 2 {
		t.Errorf("sinks = %d, want 2", got)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sink, err = ProvideSink(cfg, log, client, db)
	if err != nil {
		t.Fatalf("ProvideSink() error = %v", err)
	}
	if got := len(sink.(notify.Fanout)); got != 4 {
		t.Errorf("sinks = %d, want 4", got)
	}
}
