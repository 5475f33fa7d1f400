package repository

import (
	"gorm.io/gorm"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

type PlayerRepository interface {
	Create(player *models.Player) error
	FindByID(id string) (*models.Player, error)
	FindBySessionAndName(sessionID, name string) (*models.Player, error)
	ListBySession(sessionID string) ([]models.Player, error)
}

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Create(player *models.Player) error {
	return r.db.Create(player).Error
}

func (r *playerRepository) FindByID(id string) (*models.Player, error) {
	var player models.Player
	err := r.db.Where("id = ?", id).First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// FindBySessionAndName does a case-insensitive name lookup within a session,
// so a returning player resumes instead of creating a duplicate.
func (r *playerRepository) FindBySessionAndName(sessionID, name string) (*models.Player, error) {
	var player models.Player
	err := r.db.Where("session_id = ? AND LOWER(name) = LOWER(?)", sessionID, name).
		Order("created_at ASC").
		First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// ListBySession retrieves all players of a session in join order
func (r *playerRepository) ListBySession(sessionID string) ([]models.Player, error) {
	var players []models.Player
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}
