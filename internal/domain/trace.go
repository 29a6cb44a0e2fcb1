package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TraceEvent is a persisted observability event. Payload holds JSON.
type TraceEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	RunID     uuid.UUID `gorm:"type:uuid;index"`
	SessionID uuid.UUID `gorm:"type:uuid;index"`
	Project   string
	Name      string `gorm:"type:text"`
	Status    string `gorm:"type:text"`
	Payload   string
	Error     string
	CreatedAt time.Time `gorm:"index"`
}

func (e *TraceEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
