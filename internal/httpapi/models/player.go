package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating order directions a player can pick when joining.
const (
	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

type Player struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid"`
	SessionID      string    `json:"session_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"size:64;not null"`
	OrderDirection string    `json:"order_direction" gorm:"size:16;not null;default:'ascending'"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE;"`
}

func (Player) TableName() string {
	return "players"
}

func (p *Player) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
