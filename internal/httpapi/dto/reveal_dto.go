package dto

import (
	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

// UpsertRevealDTO for the host mapping a beer number to its real identity
type UpsertRevealDTO struct {
	BeerNumber int     `json:"beer_number" binding:"required,min=1,max=99"`
	BeerName   string  `json:"beer_name" binding:"required,max=200"`
	Brewery    *string `json:"brewery" binding:"omitempty,max=200"`
	Style      *string `json:"style" binding:"omitempty,max=100"`
}

// RevealResponse for returning a beer reveal
type RevealResponse struct {
	BeerNumber int     `json:"beer_number"`
	BeerName   string  `json:"beer_name"`
	Brewery    *string `json:"brewery"`
	Style      *string `json:"style"`
}

// FromModelToRevealResponse converts a BeerReveal model to RevealResponse DTO
func FromModelToRevealResponse(reveal *models.BeerReveal) *RevealResponse {
	return &RevealResponse{
		BeerNumber: reveal.BeerNumber,
		BeerName:   reveal.BeerName,
		Brewery:    reveal.Brewery,
		Style:      reveal.Style,
	}
}
