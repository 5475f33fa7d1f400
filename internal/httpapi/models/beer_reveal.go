package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BeerReveal maps an anonymous beer number to its real identity. Set by the
// host, at most one row per (session, beer number).
type BeerReveal struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	SessionID  string    `json:"session_id" gorm:"type:uuid;not null;uniqueIndex:idx_reveals_session_beer"`
	BeerNumber int       `json:"beer_number" gorm:"not null;uniqueIndex:idx_reveals_session_beer"`
	BeerName   string    `json:"beer_name" gorm:"size:200;not null"`
	Brewery    *string   `json:"brewery" gorm:"size:200"`
	Style      *string   `json:"style" gorm:"size:100"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (BeerReveal) TableName() string {
	return "beer_reveals"
}

func (b *BeerReveal) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
