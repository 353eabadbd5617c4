package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feeling is a journal entry tying one user to one stamp with an optional
// comment. Deleting either the stamp or the author deletes the entry.
type Feeling struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StampID     uuid.UUID `gorm:"type:uuid;not null;index" json:"stamp_id"`
	Stamp       *Stamp    `gorm:"foreignKey:StampID" json:"stamp,omitempty"`
	Comment     string    `gorm:"size:500" json:"comment"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one has not been set.
func (f *Feeling) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
