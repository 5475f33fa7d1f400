package service

import (
	"context"

	"github.com/natealva/blind-beer-tasting/internal/cache"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/dto"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/repository"
	"github.com/natealva/blind-beer-tasting/internal/stats"
)

// Cached view names
const (
	viewAdminResults = "admin"
	viewScorecards   = "scorecards"
	viewLeaderboard  = "leaderboard"
)

// ResultsService is the read side: it fetches a point-in-time snapshot, runs
// the aggregation engine over it and assembles each view. Caching happens
// here, keyed by session and view, invalidated by the write services — the
// engine itself stays pure.
type ResultsService interface {
	AdminResults(ctx context.Context, code string) (*dto.AdminResultsResponse, error)
	PlayerSummary(ctx context.Context, code, playerID string) (*dto.PlayerSummaryResponse, error)
	Scorecards(ctx context.Context, code string) (*dto.ScorecardsResponse, error)
	Leaderboard(ctx context.Context, code string) (*dto.LeaderboardResponse, error)
}

type resultsService struct {
	ratingRepo   repository.RatingRepository
	revealRepo   repository.RevealRepository
	playerRepo   repository.PlayerRepository
	sessionSvc   SessionService
	resultsCache *cache.ResultsCache
}

func NewResultsService(
	ratingRepo repository.RatingRepository,
	revealRepo repository.RevealRepository,
	playerRepo repository.PlayerRepository,
	sessionSvc SessionService,
	resultsCache *cache.ResultsCache,
) ResultsService {
	return &resultsService{
		ratingRepo:   ratingRepo,
		revealRepo:   revealRepo,
		playerRepo:   playerRepo,
		sessionSvc:   sessionSvc,
		resultsCache: resultsCache,
	}
}

// snapshot is one consistent read of everything the engine consumes.
type snapshot struct {
	session *models.Session
	ratings []models.Rating
	reveals []models.BeerReveal
	players []models.Player
}

func (s *resultsService) loadSnapshot(code string) (*snapshot, error) {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.ListBySession(session.ID)
	if err != nil {
		return nil, err
	}
	reveals, err := s.revealRepo.ListBySession(session.ID)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListBySession(session.ID)
	if err != nil {
		return nil, err
	}
	return &snapshot{session: session, ratings: ratings, reveals: reveals, players: players}, nil
}

// AdminResults assembles the host dashboard
func (s *resultsService) AdminResults(ctx context.Context, code string) (*dto.AdminResultsResponse, error) {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return nil, err
	}

	var cached dto.AdminResultsResponse
	if hit, _ := s.resultsCache.Get(ctx, session.ID, viewAdminResults, &cached); hit {
		return &cached, nil
	}

	snap, err := s.loadSnapshot(code)
	if err != nil {
		return nil, err
	}

	beerStats := stats.ComputeBeerStats(snap.session.BeerCount, snap.ratings, snap.reveals)

	players := make([]dto.PlayerProgress, 0, len(snap.players))
	for _, p := range snap.players {
		submitted := 0
		for _, r := range snap.ratings {
			if r.PlayerID == p.ID {
				submitted++
			}
		}
		players = append(players, dto.PlayerProgress{
			ID:               p.ID,
			Name:             p.Name,
			OrderDirection:   p.OrderDirection,
			RatingsSubmitted: submitted,
		})
	}

	reveals := make([]dto.RevealResponse, 0, len(snap.reveals))
	for i := range snap.reveals {
		reveals = append(reveals, *dto.FromModelToRevealResponse(&snap.reveals[i]))
	}

	resp := &dto.AdminResultsResponse{
		BeerCount:   snap.session.BeerCount,
		BeerStats:   beerStats,
		TopOverall:  stats.RankBeers(beerStats, stats.RankByCombined),
		TopTaste:    stats.RankBeers(beerStats, stats.RankByTaste),
		TopCrush:    stats.RankBeers(beerStats, stats.RankByCrush),
		Leaderboard: stats.ComputeGuessAccuracy(snap.players, snap.ratings, snap.reveals),
		Players:     players,
		Reveals:     reveals,
	}

	s.resultsCache.Set(ctx, session.ID, viewAdminResults, resp)
	return resp, nil
}

// PlayerSummary assembles one player's reveal/summary view. Not cached: it is
// per player and each player fetches it a handful of times.
func (s *resultsService) PlayerSummary(ctx context.Context, code, playerID string) (*dto.PlayerSummaryResponse, error) {
	snap, err := s.loadSnapshot(code)
	if err != nil {
		return nil, err
	}

	var player *models.Player
	for i := range snap.players {
		if snap.players[i].ID == playerID {
			player = &snap.players[i]
			break
		}
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	revealNames := make(map[int]string, len(snap.reveals))
	for _, rev := range snap.reveals {
		revealNames[rev.BeerNumber] = rev.BeerName
	}

	var ratings []dto.RatingResponse
	for i := range snap.ratings {
		r := snap.ratings[i]
		if r.PlayerID != player.ID {
			continue
		}
		resp := dto.FromModelToRatingResponse(&r)
		if name, ok := revealNames[r.BeerNumber]; ok {
			resp.BeerName = &name
		}
		ratings = append(ratings, *resp)
	}

	return &dto.PlayerSummaryResponse{
		BeerCount:     snap.session.BeerCount,
		Ratings:       ratings,
		Scorecard:     stats.BuildPlayerScorecard(*player, snap.ratings, snap.reveals),
		GroupAverages: stats.GroupAverages(snap.ratings),
	}, nil
}

// Scorecards assembles every player's scorecard for the printable view
func (s *resultsService) Scorecards(ctx context.Context, code string) (*dto.ScorecardsResponse, error) {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return nil, err
	}

	var cached dto.ScorecardsResponse
	if hit, _ := s.resultsCache.Get(ctx, session.ID, viewScorecards, &cached); hit {
		return &cached, nil
	}

	snap, err := s.loadSnapshot(code)
	if err != nil {
		return nil, err
	}

	cards := make([]stats.Scorecard, 0, len(snap.players))
	for _, p := range snap.players {
		cards = append(cards, stats.BuildPlayerScorecard(p, snap.ratings, snap.reveals))
	}

	resp := &dto.ScorecardsResponse{
		SessionName: snap.session.Name,
		Scorecards:  cards,
	}
	s.resultsCache.Set(ctx, session.ID, viewScorecards, resp)
	return resp, nil
}

// Leaderboard assembles the guess-accuracy leaderboard
func (s *resultsService) Leaderboard(ctx context.Context, code string) (*dto.LeaderboardResponse, error) {
	session, err := s.sessionSvc.GetByCode(code)
	if err != nil {
		return nil, err
	}

	var cached dto.LeaderboardResponse
	if hit, _ := s.resultsCache.Get(ctx, session.ID, viewLeaderboard, &cached); hit {
		return &cached, nil
	}

	snap, err := s.loadSnapshot(code)
	if err != nil {
		return nil, err
	}

	resp := &dto.LeaderboardResponse{
		Leaderboard: stats.ComputeGuessAccuracy(snap.players, snap.ratings, snap.reveals),
	}
	s.resultsCache.Set(ctx, session.ID, viewLeaderboard, resp)
	return resp, nil
}
