package models

import "time"

// Guess holds a user's predicted final score for one match. A user keeps
// at most one guess per match (upsert semantics on the user/match pair).
type Guess struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	MatchID   int       `json:"match_id"`
	ScoreHome int       `json:"score_home"`
	ScoreAway int       `json:"score_away"`
	UpdatedAt time.Time `json:"updated_at"`

	User  *User  `json:"user,omitempty"`
	Match *Match `json:"match,omitempty"`
}
