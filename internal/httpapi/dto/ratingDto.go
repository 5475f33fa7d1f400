package dto

import (
	"time"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

// SubmitRatingDTO for creating or updating a rating. All fields are optional:
// a player may jot a guess before scoring, or score without guessing.
type SubmitRatingDTO struct {
	Crushability *int    `json:"crushability" binding:"omitempty,min=1,max=10"`
	Taste        *int    `json:"taste" binding:"omitempty,min=1,max=10"`
	Guess        *string `json:"guess" binding:"omitempty,max=200"`
	Notes        *string `json:"notes" binding:"omitempty,max=2000"`
}

// RatingResponse for returning a player's rating of one beer
type RatingResponse struct {
	BeerNumber   int       `json:"beer_number"`
	BeerName     *string   `json:"beer_name,omitempty"`
	Crushability *int      `json:"crushability"`
	Taste        *int      `json:"taste"`
	Guess        *string   `json:"guess"`
	Notes        *string   `json:"notes"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		BeerNumber:   rating.BeerNumber,
		Crushability: rating.Crushability,
		Taste:        rating.Taste,
		Guess:        rating.Guess,
		Notes:        rating.Notes,
		UpdatedAt:    rating.UpdatedAt,
	}
}
