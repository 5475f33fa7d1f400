package dto

import (
	"github.com/natealva/blind-beer-tasting/internal/stats"
)

// AdminResultsResponse is the host dashboard: per-beer aggregates, the three
// rankings, the guess leaderboard and per-player progress. All numbers come
// from one engine invocation over one snapshot.
type AdminResultsResponse struct {
	BeerCount   int                      `json:"beer_count"`
	BeerStats   []stats.BeerStat         `json:"beer_stats"`
	TopOverall  []stats.BeerStat         `json:"top_overall"`
	TopTaste    []stats.BeerStat         `json:"top_taste"`
	TopCrush    []stats.BeerStat         `json:"top_crush"`
	Leaderboard []stats.GuessAccuracyRow `json:"leaderboard"`
	Players     []PlayerProgress         `json:"players"`
	Reveals     []RevealResponse         `json:"reveals"`
}

// PlayerSummaryResponse is the player-facing reveal/summary view: their own
// ratings with resolved names, their scorecard, and the group averages to
// compare against.
type PlayerSummaryResponse struct {
	BeerCount     int                        `json:"beer_count"`
	Ratings       []RatingResponse           `json:"ratings"`
	Scorecard     stats.Scorecard            `json:"scorecard"`
	GroupAverages map[int]stats.GroupAverage `json:"group_averages"`
}

// ScorecardsResponse bundles every player's scorecard for the printable view
type ScorecardsResponse struct {
	SessionName string            `json:"session_name"`
	Scorecards  []stats.Scorecard `json:"scorecards"`
}

// LeaderboardResponse is the standalone guess-accuracy leaderboard
type LeaderboardResponse struct {
	Leaderboard []stats.GuessAccuracyRow `json:"leaderboard"`
}
