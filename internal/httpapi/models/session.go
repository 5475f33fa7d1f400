package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid"`
	Code              string    `json:"code" gorm:"size:12;uniqueIndex;not null"`
	Name              string    `json:"name" gorm:"not null"`
	BeerCount         int       `json:"beer_count" gorm:"not null;check:beer_count >= 1 AND beer_count <= 99"`
	AdminPasswordHash string    `json:"-" gorm:"column:admin_password_hash;not null"` // bcrypt hash, never the plaintext
	IsActive          bool      `json:"is_active" gorm:"default:true;not null"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Players []Player     `json:"players,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;"`
	Ratings []Rating     `json:"ratings,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;"`
	Reveals []BeerReveal `json:"reveals,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;"`
}

func (Session) TableName() string {
	return "sessions"
}

// BeforeCreate hook to set UUID before creating a Session
func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
