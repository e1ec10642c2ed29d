package transcript

import "time"

// Record is one final transcript line of a recognition session.
type Record struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	SessionID  string    `gorm:"not null;index" json:"session_id"`
	Sequence   int64     `gorm:"not null" json:"sequence"`
	Text       string    `gorm:"not null" json:"text"`
	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}
