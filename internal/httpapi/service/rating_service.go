package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/natealva/blind-beer-tasting/internal/cache"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/dto"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/repository"
)

var ErrBeerNumberOutOfRange = errors.New("beer number out of range")

type RatingService interface {
	Submit(code, playerID string, beerNumber int, req dto.SubmitRatingDTO) (*models.Rating, error)
	ListForPlayer(code, playerID string) ([]models.Rating, *models.Session, error)
}

type ratingService struct {
	ratingRepo   repository.RatingRepository
	playerRepo   repository.PlayerRepository
	sessionSvc   SessionService
	resultsCache *cache.ResultsCache
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	playerRepo repository.PlayerRepository,
	sessionSvc SessionService,
	resultsCache *cache.ResultsCache,
) RatingService {
	return &ratingService{
		ratingRepo:   ratingRepo,
		playerRepo:   playerRepo,
		sessionSvc:   sessionSvc,
		resultsCache: resultsCache,
	}
}

// Submit validates and upserts a player's rating for one beer. Score bounds
// are enforced by binding tags before this point; the beer number can only be
// checked here, against the session's beer count. Resubmission overwrites.
func (s *ratingService) Submit(code, playerID string, beerNumber int, req dto.SubmitRatingDTO) (*models.Rating, error) {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return nil, err
	}

	player, err := s.playerRepo.FindByID(playerID)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	if player.SessionID != session.ID {
		return nil, ErrPlayerNotFound
	}

	if beerNumber < 1 || beerNumber > session.BeerCount {
		return nil, fmt.Errorf("%w: %d (session has %d beers)", ErrBeerNumberOutOfRange, beerNumber, session.BeerCount)
	}

	rating := &models.Rating{
		SessionID:    session.ID,
		PlayerID:     player.ID,
		BeerNumber:   beerNumber,
		Crushability: req.Crushability,
		Taste:        req.Taste,
		Guess:        trimmedOrNil(req.Guess),
		Notes:        trimmedOrNil(req.Notes),
	}
	if err := s.ratingRepo.Upsert(rating); err != nil {
		return nil, err
	}

	s.resultsCache.Invalidate(context.Background(), session.ID)

	return rating, nil
}

// ListForPlayer returns the player's ratings plus the session (for beer count
// and name), verifying the player belongs to the session.
func (s *ratingService) ListForPlayer(code, playerID string) ([]models.Rating, *models.Session, error) {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return nil, nil, err
	}
	player, err := s.playerRepo.FindByID(playerID)
	if err != nil || player.SessionID != session.ID {
		return nil, nil, ErrPlayerNotFound
	}
	ratings, err := s.ratingRepo.ListByPlayer(player.ID)
	if err != nil {
		return nil, nil, err
	}
	return ratings, session, nil
}

// trimmedOrNil trims whitespace and turns empty strings into nil so they
// never count as a submitted guess or note.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
