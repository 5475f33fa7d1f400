package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/natealva/blind-beer-tasting/internal/cache"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/dto"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/repository"
)

type RevealService interface {
	Upsert(code string, req dto.UpsertRevealDTO) (*models.BeerReveal, error)
	Delete(code string, beerNumber int) error
	List(code string) ([]models.BeerReveal, error)
}

type revealService struct {
	revealRepo   repository.RevealRepository
	sessionSvc   SessionService
	resultsCache *cache.ResultsCache
}

func NewRevealService(revealRepo repository.RevealRepository, sessionSvc SessionService, resultsCache *cache.ResultsCache) RevealService {
	return &revealService{
		revealRepo:   revealRepo,
		sessionSvc:   sessionSvc,
		resultsCache: resultsCache,
	}
}

// Upsert creates or corrects the reveal for a beer number. The host may do
// this at any point, including after players have rated.
func (s *revealService) Upsert(code string, req dto.UpsertRevealDTO) (*models.BeerReveal, error) {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if req.BeerNumber < 1 || req.BeerNumber > session.BeerCount {
		return nil, fmt.Errorf("%w: %d (session has %d beers)", ErrBeerNumberOutOfRange, req.BeerNumber, session.BeerCount)
	}

	reveal := &models.BeerReveal{
		SessionID:  session.ID,
		BeerNumber: req.BeerNumber,
		BeerName:   strings.TrimSpace(req.BeerName),
		Brewery:    trimmedOrNil(req.Brewery),
		Style:      trimmedOrNil(req.Style),
	}
	if err := s.revealRepo.Upsert(reveal); err != nil {
		return nil, err
	}

	s.resultsCache.Invalidate(context.Background(), session.ID)

	return reveal, nil
}

// Delete removes the reveal for a beer number
func (s *revealService) Delete(code string, beerNumber int) error {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return err
	}
	if err := s.revealRepo.Delete(session.ID, beerNumber); err != nil {
		return err
	}
	s.resultsCache.Invalidate(context.Background(), session.ID)
	return nil
}

// List returns the session's reveals ordered by beer number
func (s *revealService) List(code string) ([]models.BeerReveal, error) {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return nil, err
	}
	return s.revealRepo.ListBySession(session.ID)
}
