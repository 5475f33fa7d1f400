package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/natealva/blind-beer-tasting/internal/cache"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/repository"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerService interface {
	JoinOrResume(code, name, orderDirection string) (*models.Player, bool, error)
	GetByID(playerID string) (*models.Player, error)
}

type playerService struct {
	playerRepo   repository.PlayerRepository
	sessionSvc   SessionService
	resultsCache *cache.ResultsCache
}

func NewPlayerService(playerRepo repository.PlayerRepository, sessionSvc SessionService, resultsCache *cache.ResultsCache) PlayerService {
	return &playerService{
		playerRepo:   playerRepo,
		sessionSvc:   sessionSvc,
		resultsCache: resultsCache,
	}
}

// JoinOrResume adds a player to a session. A case-insensitive name match
// within the session resumes the existing player instead of creating a
// duplicate; the bool result reports which happened.
func (s *playerService) JoinOrResume(code, name, orderDirection string) (*models.Player, bool, error) {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return nil, false, err
	}
	if !session.IsActive {
		return nil, false, ErrSessionClosed
	}

	name = strings.TrimSpace(name)

	existing, err := s.playerRepo.FindBySessionAndName(session.ID, name)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if orderDirection != models.OrderDescending {
		orderDirection = models.OrderAscending
	}
	player := &models.Player{
		SessionID:      session.ID,
		Name:           name,
		OrderDirection: orderDirection,
	}
	if err := s.playerRepo.Create(player); err != nil {
		return nil, false, err
	}

	// New player changes the snapshot the cached views were built from.
	s.resultsCache.Invalidate(context.Background(), session.ID)

	return player, false, nil
}

// GetByID loads a player (used to resolve the player cookie)
func (s *playerService) GetByID(playerID string) (*models.Player, error) {
	player, err := s.playerRepo.FindByID(playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}
