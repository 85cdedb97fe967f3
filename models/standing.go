package models

// StandingTeam is the identity slice of a team that the league table exposes.
type StandingTeam struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url,omitempty"`
}

// StandingRow is derived per request from the finished matches, never
// persisted. Invariants: Wins+Draws+Losses == Matches,
// Points == 3*Wins + Draws, GoalDifference == GoalsFor - GoalsAgainst.
type StandingRow struct {
	Team           StandingTeam `json:"team"`
	Points         int          `json:"points"`
	Matches        int          `json:"matches"`
	Wins           int          `json:"wins"`
	Draws          int          `json:"draws"`
	Losses         int          `json:"losses"`
	GoalsFor       int          `json:"goals_for"`
	GoalsAgainst   int          `json:"goals_against"`
	GoalDifference int          `json:"goal_difference"`
	Position       int          `json:"position"`
}
