package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

type RatingRepository interface {
	Upsert(rating *models.Rating) error
	ListBySession(sessionID string) ([]models.Rating, error)
	ListByPlayer(playerID string) ([]models.Rating, error)
	CountByPlayer(playerID string) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert creates or overwrites the player's rating for a beer. Conflict key
// is (player_id, beer_number): resubmission is last-write-wins, never a
// duplicate row.
func (r *ratingRepository) Upsert(rating *models.Rating) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}, {Name: "beer_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"crushability", "taste", "guess", "notes", "updated_at",
		}),
	}).Create(rating).Error
}

// ListBySession retrieves all ratings in a session (the engine's snapshot)
func (r *ratingRepository) ListBySession(sessionID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("session_id = ?", sessionID).
		Order("beer_number ASC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListByPlayer retrieves one player's ratings ordered by beer number
func (r *ratingRepository) ListByPlayer(playerID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("player_id = ?", playerID).
		Order("beer_number ASC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// CountByPlayer counts how many beers the player has submitted anything for
func (r *ratingRepository) CountByPlayer(playerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).Where("player_id = ?", playerID).Count(&count).Error
	return count, err
}
