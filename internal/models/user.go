// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the Heartbeat application.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Nickname    string    `gorm:"size:30;uniqueIndex;not null" json:"nickname"`
	Password    string    `gorm:"not null" json:"-"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsStaff     bool      `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"default:false" json:"is_superuser"`
	DateJoined  time.Time `gorm:"autoCreateTime" json:"date_joined"`
	Feelings    []Feeling `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"feelings,omitempty"`
}

// BeforeCreate assigns a UUID primary key when one has not been set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicUser is the outward representation of a user. The password hash is
// never part of it.
type PublicUser struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Nickname   string    `json:"nickname"`
	DateJoined string    `json:"date_joined"`
}

// Public returns the serializable view of the user with date_joined
// rendered as "YYYY-MM-DD HH:MM:SS".
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Nickname:   u.Nickname,
		DateJoined: u.DateJoined.Format("2006-01-02 15:04:05"),
	}
}
