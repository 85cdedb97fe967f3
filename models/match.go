package models

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "PENDING"
	MatchStatusOngoing  MatchStatus = "ONGOING"
	MatchStatusFinished MatchStatus = "FINISHED"
)

// Match scores are either both present or both absent: a match gets its
// score recorded as a pair, never one side at a time.
type Match struct {
	ID         int         `json:"id"`
	HomeTeamID int         `json:"home_team_id"`
	AwayTeamID int         `json:"away_team_id"`
	Date       time.Time   `json:"date"`
	Status     MatchStatus `json:"status"`
	ScoreHome  *int        `json:"score_home,omitempty"`
	ScoreAway  *int        `json:"score_away,omitempty"`
	Round      int         `json:"round"`

	HomeTeam *Team `json:"home_team,omitempty"`
	AwayTeam *Team `json:"away_team,omitempty"`
}

// HasScore reports whether both scores have been recorded.
func (m *Match) HasScore() bool {
	return m.ScoreHome != nil && m.ScoreAway != nil
}
