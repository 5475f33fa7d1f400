package dto

import (
	"time"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

// CreateSessionDTO for creating a tasting session. The admin password is
// required; it gates reveals and full results later.
type CreateSessionDTO struct {
	Name          string `json:"name" binding:"omitempty,max=100"`
	BeerCount     int    `json:"beer_count" binding:"required,min=1,max=99"`
	AdminPassword string `json:"admin_password" binding:"required,min=4,max=72"`
}

// AdminAuthDTO for exchanging the admin password for an admin token
type AdminAuthDTO struct {
	Password string `json:"password" binding:"required"`
}

// SessionResponse is the public view of a session (no password material)
type SessionResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	BeerCount int       `json:"beer_count"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToSessionResponse converts a Session model to SessionResponse DTO
func FromModelToSessionResponse(session *models.Session) *SessionResponse {
	return &SessionResponse{
		Code:      session.Code,
		Name:      session.Name,
		BeerCount: session.BeerCount,
		IsActive:  session.IsActive,
		CreatedAt: session.CreatedAt,
	}
}

// CreateSessionResponse additionally carries the join code the host shares
type CreateSessionResponse struct {
	Session SessionResponse `json:"session"`
	Token   string          `json:"token"`
}
