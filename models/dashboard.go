package models

// DashboardMetrics holds the counters shown on the admin dashboard.
// Derived on demand, never persisted.
type DashboardMetrics struct {
	TodayMatches int           `json:"today_matches"`
	UsersCount   UserCountStat `json:"users_count"`
	TeamsCount   int           `json:"teams_count"`
}

// UserCountStat pairs the current user total with its week-over-week delta.
type UserCountStat struct {
	Actual             int `json:"actual"`
	ChangeFromLastWeek int `json:"change_from_last_week"`
}
