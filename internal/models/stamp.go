package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stamp is an administrator-defined mood category with a weight score.
type Stamp struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Score     int       `gorm:"default:0" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Feelings  []Feeling `gorm:"foreignKey:StampID;constraint:OnDelete:CASCADE" json:"feelings,omitempty"`
}

// BeforeCreate assigns a UUID primary key when one has not been set.
func (s *Stamp) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
