package shared

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseEntity contains the fields every persisted entity shares.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns an ID when one was not set explicitly.
func (e *BaseEntity) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}
