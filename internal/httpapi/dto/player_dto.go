package dto

import (
	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

// JoinSessionDTO for joining (or resuming) a session as a player
type JoinSessionDTO struct {
	Name           string `json:"name" binding:"required,max=64"`
	OrderDirection string `json:"order_direction" binding:"omitempty,oneof=ascending descending"`
}

// PlayerResponse for returning player information. Resumed tells the client
// whether an existing player with the same name was picked up.
type PlayerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OrderDirection string `json:"order_direction"`
	Resumed        bool   `json:"resumed,omitempty"`
}

// FromModelToPlayerResponse converts a Player model to PlayerResponse DTO
func FromModelToPlayerResponse(player *models.Player) *PlayerResponse {
	return &PlayerResponse{
		ID:             player.ID,
		Name:           player.Name,
		OrderDirection: player.OrderDirection,
	}
}

// PlayerProgress is the admin's per-player progress row
type PlayerProgress struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	OrderDirection   string `json:"order_direction"`
	RatingsSubmitted int    `json:"ratings_submitted"`
}
