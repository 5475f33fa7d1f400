package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is one player's blind scores for one numbered beer. A player has at
// most one row per beer; resubmitting overwrites it.
type Rating struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	SessionID    string    `json:"session_id" gorm:"type:uuid;not null;index"`
	PlayerID     string    `json:"player_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_player_beer"`
	BeerNumber   int       `json:"beer_number" gorm:"not null;uniqueIndex:idx_ratings_player_beer"`
	Crushability *int      `json:"crushability" gorm:"check:crushability >= 1 AND crushability <= 10"`
	Taste        *int      `json:"taste" gorm:"check:taste >= 1 AND taste <= 10"`
	Guess        *string   `json:"guess" gorm:"size:200"`
	Notes        *string   `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
