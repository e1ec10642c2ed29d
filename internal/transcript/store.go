// Package transcript persists final recognition results.
package transcript

import (
	"context"
	"sync"

	"github.com/eleven-am/soda-stream/internal/notify"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB

	mu  sync.Mutex
	seq map[string]int64
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, seq: make(map[string]int64)}
}

// Open connects to postgres with gorm's own logging silenced.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Record{})
}

// Notify stores final results and ignores every other notification kind.
func (s *Store) Notify(ctx context.Context, n notify.Notification) error {
	if n.Kind != notify.KindFinal {
		return nil
	}

	s.mu.Lock()
	s.seq[n.SessionID]++
	seq := s.seq[n.SessionID]
	s.mu.Unlock()

	rec := &Record{
		ID:         uuid.New().String(),
		SessionID:  n.SessionID,
		Sequence:   seq,
		Text:       n.Text,
		RecordedAt: n.At,
	}
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *Store) List(ctx context.Context, sessionID string) ([]*Record, error) {
	var records []*Record
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("sequence ASC").
		Find(&records).Error
	return records, err
}
