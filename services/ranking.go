package services

import (
	"sort"

	"github.com/GabrielDani/futebol-palpites-backend/models"
)

// BuildRanking aggregates guess scores per user and returns the sorted
// ranking with 1-based positions. Only guesses on FINISHED matches with
// both scores present count; everything else is skipped defensively.
// guessesByUser maps user ID to that user's guesses (each carrying its
// Match). Users missing from the map still appear with zeroed stats.
func BuildRanking(users []*models.User, guessesByUser map[int][]*models.Guess) []models.RankingEntry {
	ranking := make([]models.RankingEntry, 0, len(users))

	for _, user := range users {
		if user == nil {
			continue
		}
		entry := models.RankingEntry{
			User: models.RankingUser{ID: user.ID, Nickname: user.Nickname},
		}
		for _, guess := range guessesByUser[user.ID] {
			if !countsForScoring(guess) {
				continue
			}
			entry.TotalGuesses++
			score := EvaluateGuess(*guess.Match.ScoreHome, *guess.Match.ScoreAway, guess.ScoreHome, guess.ScoreAway)
			entry.Points += score.Points
			if score.ExactHit {
				entry.ExactHits++
			}
			if score.CorrectPrediction {
				entry.CorrectPredictions++
			}
		}
		ranking = append(ranking, entry)
	}

	// Points descending, nickname ascending on ties. Positions are strictly
	// sequential even when points tie.
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Points != ranking[j].Points {
			return ranking[i].Points > ranking[j].Points
		}
		return ranking[i].User.Nickname < ranking[j].User.Nickname
	})
	for i := range ranking {
		ranking[i].Position = i + 1
	}

	return ranking
}

// countsForScoring gates a guess into the aggregation: the match must be
// FINISHED and carry both scores. A finished match missing a score would
// violate the data invariant, so it is skipped rather than scored.
func countsForScoring(guess *models.Guess) bool {
	return guess != nil &&
		guess.Match != nil &&
		guess.Match.Status == models.MatchStatusFinished &&
		guess.Match.HasScore()
}

// groupGuessesByUser indexes a flat guess list by owning user.
func groupGuessesByUser(guesses []*models.Guess) map[int][]*models.Guess {
	byUser := make(map[int][]*models.Guess)
	for _, g := range guesses {
		if g == nil {
			continue
		}
		byUser[g.UserID] = append(byUser[g.UserID], g)
	}
	return byUser
}
