package kafka

import (
	"time"

	"gorm.io/datatypes"
)

// OutboxRecord hanya dipakai untuk migrasi tabel outbox_events; baca tulis
// event tetap lewat OutboxRepository.
type OutboxRecord struct {
	ID            string         `gorm:"type:uuid;primaryKey"`
	RequestID     string         `gorm:"size:100"`
	AggregateType string         `gorm:"size:50;not null"`
	AggregateID   string         `gorm:"type:uuid;not null;index"`
	EventType     string         `gorm:"size:100;not null"`
	Topic         string         `gorm:"size:200;not null"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null"`
	Status        string         `gorm:"size:20;not null;default:pending;index:idx_outbox_status_created,priority:1"`
	RetryCount    int            `gorm:"not null;default:0"`
	NextRetryAt   *time.Time
	ErrorMessage  *string `gorm:"size:500"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"index:idx_outbox_status_created,priority:2"`
	UpdatedAt     time.Time
}

func (OutboxRecord) TableName() string {
	return "outbox_events"
}
