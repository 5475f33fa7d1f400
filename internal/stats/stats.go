// Package stats is the aggregation engine for tasting sessions. Every view
// (admin results, player summary, reveal, scorecards) derives its numbers from
// the functions here, always from a point-in-time snapshot of ratings, reveals
// and players. The functions are pure: no I/O, no stored state, identical
// output for identical input.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

// BeerStat is the aggregate for one beer number. AvgCrush/AvgTaste/Combined
// are 0 when ScoredCount is 0; consumers must check ScoredCount to tell "no
// ratings" apart from a genuinely low score and render a dash instead of 0.0.
type BeerStat struct {
	BeerNumber  int     `json:"beer_number"`
	Name        *string `json:"name"`
	AvgCrush    float64 `json:"avg_crush"`
	AvgTaste    float64 `json:"avg_taste"`
	Combined    float64 `json:"combined"`
	RatingCount int     `json:"rating_count"`
	ScoredCount int     `json:"scored_count"`
}

// RankBy selects the field RankBeers sorts on.
type RankBy string

const (
	RankByCombined RankBy = "combined"
	RankByTaste    RankBy = "taste"
	RankByCrush    RankBy = "crush"
)

// GuessAccuracyRow is one player's standing on the guess leaderboard.
type GuessAccuracyRow struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
}

// Outcome of a single guess on a scorecard.
const (
	GuessCorrect   = "correct"
	GuessIncorrect = "incorrect"
	GuessNone      = "none"
)

// RankedBeer pairs a beer with the score it was ranked by. Name falls back to
// "Beer #N" when the beer has not been revealed.
type RankedBeer struct {
	BeerNumber int     `json:"beer_number"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
}

// GuessResult is one row of a scorecard's guess breakdown, ordered by beer
// number.
type GuessResult struct {
	BeerNumber int    `json:"beer_number"`
	BeerName   string `json:"beer_name"`
	Guess      string `json:"guess"`
	Result     string `json:"result"`
}

// Scorecard is the per-player summary bundle.
type Scorecard struct {
	PlayerID       string        `json:"player_id"`
	PlayerName     string        `json:"player_name"`
	OverallRanked  []RankedBeer  `json:"overall_ranked"`
	TasteRanked    []RankedBeer  `json:"taste_ranked"`
	CrushRanked    []RankedBeer  `json:"crush_ranked"`
	GuessResults   []GuessResult `json:"guess_results"`
	AvgTaste       float64       `json:"avg_taste"`
	AvgCrush       float64       `json:"avg_crush"`
	CorrectGuesses int           `json:"correct_guesses"`
	TotalGuesses   int           `json:"total_guesses"`
}

// GroupAverage holds per-beer means over every player's scored ratings.
type GroupAverage struct {
	Taste float64 `json:"taste"`
	Crush float64 `json:"crush"`
	Count int     `json:"count"`
}

// scoreValid reports whether a submitted score can contribute to a mean. The
// write path rejects out-of-range values, but a malformed row that slips
// through is excluded here rather than corrupting the aggregate.
func scoreValid(score *int) bool {
	return score != nil && *score >= 1 && *score <= 10
}

// scored reports whether a rating carries both scores and so belongs to the
// score-bearing subset.
func scored(r models.Rating) bool {
	return scoreValid(r.Crushability) && scoreValid(r.Taste)
}

// ComputeBeerStats aggregates ratings per beer number 1..beerCount. Every beer
// number gets an entry, rated or not, and the result is ordered by beer number
// ascending.
func ComputeBeerStats(beerCount int, ratings []models.Rating, reveals []models.BeerReveal) []BeerStat {
	revealByNumber := revealIndex(reveals)

	out := make([]BeerStat, 0, beerCount)
	for n := 1; n <= beerCount; n++ {
		stat := BeerStat{BeerNumber: n}
		var sumCrush, sumTaste int
		for _, r := range ratings {
			if r.BeerNumber != n {
				continue
			}
			stat.RatingCount++
			if scored(r) {
				stat.ScoredCount++
				sumCrush += *r.Crushability
				sumTaste += *r.Taste
			}
		}
		if stat.ScoredCount > 0 {
			stat.AvgCrush = float64(sumCrush) / float64(stat.ScoredCount)
			stat.AvgTaste = float64(sumTaste) / float64(stat.ScoredCount)
			stat.Combined = (stat.AvgCrush + stat.AvgTaste) / 2
		}
		if rev, ok := revealByNumber[n]; ok {
			name := rev.BeerName
			stat.Name = &name
		}
		out = append(out, stat)
	}
	return out
}

// RankBeers returns a copy of stats sorted descending by the selected field.
// The sort is stable: beers with equal scores keep their beer-number order.
func RankBeers(stats []BeerStat, by RankBy) []BeerStat {
	ranked := make([]BeerStat, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankField(ranked[i], by) > rankField(ranked[j], by)
	})
	return ranked
}

func rankField(s BeerStat, by RankBy) float64 {
	switch by {
	case RankByTaste:
		return s.AvgTaste
	case RankByCrush:
		return s.AvgCrush
	default:
		return s.Combined
	}
}

// ComputeGuessAccuracy builds the guess leaderboard. Only trimmed non-empty
// guesses count; a guess is correct iff the beer was revealed and the names
// match case-insensitively after trimming. Players without any guess are left
// out entirely.
func ComputeGuessAccuracy(players []models.Player, ratings []models.Rating, reveals []models.BeerReveal) []GuessAccuracyRow {
	revealByNumber := revealIndex(reveals)

	rows := make([]GuessAccuracyRow, 0, len(players))
	for _, p := range players {
		row := GuessAccuracyRow{PlayerID: p.ID, PlayerName: p.Name}
		for _, r := range ratings {
			if r.PlayerID != p.ID {
				continue
			}
			guess := trimmedGuess(r)
			if guess == "" {
				continue
			}
			row.Total++
			if guessMatches(guess, r.BeerNumber, revealByNumber) {
				row.Correct++
			}
		}
		if row.Total == 0 {
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		// Compare correct/total ratios without division.
		ra, rb := a.Correct*b.Total, b.Correct*a.Total
		if ra != rb {
			return ra > rb
		}
		if a.Correct != b.Correct {
			return a.Correct > b.Correct
		}
		if a.PlayerName != b.PlayerName {
			return a.PlayerName < b.PlayerName
		}
		return a.PlayerID < b.PlayerID
	})
	return rows
}

// BuildPlayerScorecard assembles one player's summary from the snapshot.
func BuildPlayerScorecard(player models.Player, ratings []models.Rating, reveals []models.BeerReveal) Scorecard {
	revealByNumber := revealIndex(reveals)

	playerRatings := make([]models.Rating, 0, len(ratings))
	for _, r := range ratings {
		if r.PlayerID == player.ID {
			playerRatings = append(playerRatings, r)
		}
	}
	sort.SliceStable(playerRatings, func(i, j int) bool {
		return playerRatings[i].BeerNumber < playerRatings[j].BeerNumber
	})

	card := Scorecard{PlayerID: player.ID, PlayerName: player.Name}

	var sumCrush, sumTaste, scoredCount int
	for _, r := range playerRatings {
		if !scored(r) {
			continue
		}
		scoredCount++
		sumCrush += *r.Crushability
		sumTaste += *r.Taste
		name := beerDisplayName(r.BeerNumber, revealByNumber)
		card.OverallRanked = append(card.OverallRanked, RankedBeer{
			BeerNumber: r.BeerNumber,
			Name:       name,
			Score:      float64(*r.Crushability+*r.Taste) / 2,
		})
		card.TasteRanked = append(card.TasteRanked, RankedBeer{
			BeerNumber: r.BeerNumber,
			Name:       name,
			Score:      float64(*r.Taste),
		})
		card.CrushRanked = append(card.CrushRanked, RankedBeer{
			BeerNumber: r.BeerNumber,
			Name:       name,
			Score:      float64(*r.Crushability),
		})
	}
	sortRankedDesc(card.OverallRanked)
	sortRankedDesc(card.TasteRanked)
	sortRankedDesc(card.CrushRanked)

	if scoredCount > 0 {
		card.AvgCrush = float64(sumCrush) / float64(scoredCount)
		card.AvgTaste = float64(sumTaste) / float64(scoredCount)
	}

	for _, r := range playerRatings {
		result := GuessResult{
			BeerNumber: r.BeerNumber,
			BeerName:   beerDisplayName(r.BeerNumber, revealByNumber),
			Guess:      trimmedGuess(r),
			Result:     GuessNone,
		}
		if result.Guess != "" {
			card.TotalGuesses++
			if guessMatches(result.Guess, r.BeerNumber, revealByNumber) {
				result.Result = GuessCorrect
				card.CorrectGuesses++
			} else {
				result.Result = GuessIncorrect
			}
		}
		card.GuessResults = append(card.GuessResults, result)
	}

	return card
}

// GroupAverages computes per-beer means over every player's scored ratings,
// for the "you vs group" comparison on the reveal view.
func GroupAverages(ratings []models.Rating) map[int]GroupAverage {
	type sums struct {
		taste, crush, count int
	}
	byBeer := map[int]sums{}
	for _, r := range ratings {
		if !scored(r) {
			continue
		}
		s := byBeer[r.BeerNumber]
		s.taste += *r.Taste
		s.crush += *r.Crushability
		s.count++
		byBeer[r.BeerNumber] = s
	}

	out := make(map[int]GroupAverage, len(byBeer))
	for n, s := range byBeer {
		out[n] = GroupAverage{
			Taste: float64(s.taste) / float64(s.count),
			Crush: float64(s.crush) / float64(s.count),
			Count: s.count,
		}
	}
	return out
}

func revealIndex(reveals []models.BeerReveal) map[int]models.BeerReveal {
	byNumber := make(map[int]models.BeerReveal, len(reveals))
	for _, rev := range reveals {
		byNumber[rev.BeerNumber] = rev
	}
	return byNumber
}

func beerDisplayName(beerNumber int, revealByNumber map[int]models.BeerReveal) string {
	if rev, ok := revealByNumber[beerNumber]; ok && strings.TrimSpace(rev.BeerName) != "" {
		return rev.BeerName
	}
	return fmt.Sprintf("Beer #%d", beerNumber)
}

func trimmedGuess(r models.Rating) string {
	if r.Guess == nil {
		return ""
	}
	return strings.TrimSpace(*r.Guess)
}

// guessMatches requires an existing reveal with a non-empty name; a guess
// against an unrevealed beer is wrong, not skipped.
func guessMatches(guess string, beerNumber int, revealByNumber map[int]models.BeerReveal) bool {
	rev, ok := revealByNumber[beerNumber]
	if !ok {
		return false
	}
	actual := strings.TrimSpace(rev.BeerName)
	if actual == "" {
		return false
	}
	return strings.EqualFold(guess, actual)
}

func sortRankedDesc(beers []RankedBeer) {
	sort.SliceStable(beers, func(i, j int) bool {
		return beers[i].Score > beers[j].Score
	})
}
