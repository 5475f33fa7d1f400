package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

type RevealRepository interface {
	Upsert(reveal *models.BeerReveal) error
	ListBySession(sessionID string) ([]models.BeerReveal, error)
	Delete(sessionID string, beerNumber int) error
}

type revealRepository struct {
	db *gorm.DB
}

func NewRevealRepository(db *gorm.DB) RevealRepository {
	return &revealRepository{db: db}
}

// Upsert creates or overwrites the reveal for a beer number. Conflict key is
// (session_id, beer_number); the host can correct an entry at any time.
func (r *revealRepository) Upsert(reveal *models.BeerReveal) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "beer_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"beer_name", "brewery", "style",
		}),
	}).Create(reveal).Error
}

// ListBySession retrieves all reveals of a session ordered by beer number
func (r *revealRepository) ListBySession(sessionID string) ([]models.BeerReveal, error) {
	var reveals []models.BeerReveal
	err := r.db.Where("session_id = ?", sessionID).
		Order("beer_number ASC").
		Find(&reveals).Error
	if err != nil {
		return nil, err
	}
	return reveals, nil
}

// Delete removes the reveal for a beer number
func (r *revealRepository) Delete(sessionID string, beerNumber int) error {
	result := r.db.Where("session_id = ? AND beer_number = ?", sessionID, beerNumber).
		Delete(&models.BeerReveal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
