package models

import "time"

// RankingUser is the identity slice of a user that ranking results expose.
type RankingUser struct {
	ID       int    `json:"id"`
	Nickname string `json:"nickname"`
}

// RankingEntry is derived per request, never persisted. Position is the
// 1-based index after sorting by points desc, nickname asc.
type RankingEntry struct {
	User               RankingUser `json:"user"`
	Points             int         `json:"points"`
	ExactHits          int         `json:"exact_hits"`
	CorrectPredictions int         `json:"correct_predictions"`
	TotalGuesses       int         `json:"total_guesses"`
	Position           int         `json:"position"`
}

// PredictionSummary is one row of a group's recent predictions feed.
type PredictionSummary struct {
	MatchID      int       `json:"match_id"`
	MatchDate    time.Time `json:"match_date"`
	HomeTeamName string    `json:"home_team_name"`
	AwayTeamName string    `json:"away_team_name"`
	Nickname     string    `json:"nickname"`
	GuessedHome  int       `json:"guessed_home"`
	GuessedAway  int       `json:"guessed_away"`
	ActualHome   int       `json:"actual_home"`
	ActualAway   int       `json:"actual_away"`
	Points       int       `json:"points"`
}
