package services

import (
	"context"
	"testing"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standingsMatch(home, away, scoreHome, scoreAway int) *models.Match {
	return &models.Match{
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     models.MatchStatusFinished,
		ScoreHome:  intPtr(scoreHome),
		ScoreAway:  intPtr(scoreAway),
	}
}

func TestComputeStandingsSingleMatch(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "Flamengo"},
		{ID: 2, Name: "Palmeiras"},
	}
	matches := []*models.Match{standingsMatch(1, 2, 3, 1)}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 2)

	winner := table[0]
	assert.Equal(t, "Flamengo", winner.Team.Name)
	assert.Equal(t, 3, winner.Points)
	assert.Equal(t, 1, winner.Matches)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 0, winner.Draws)
	assert.Equal(t, 0, winner.Losses)
	assert.Equal(t, 3, winner.GoalsFor)
	assert.Equal(t, 1, winner.GoalsAgainst)
	assert.Equal(t, 2, winner.GoalDifference)
	assert.Equal(t, 1, winner.Position)

	loser := table[1]
	assert.Equal(t, "Palmeiras", loser.Team.Name)
	assert.Equal(t, 0, loser.Points)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, -2, loser.GoalDifference)
	assert.Equal(t, 2, loser.Position)
}

func TestComputeStandingsInvariants(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "Botafogo"},
		{ID: 2, Name: "Cruzeiro"},
		{ID: 3, Name: "Fortaleza"},
		{ID: 4, Name: "Internacional"},
	}
	matches := []*models.Match{
		standingsMatch(1, 2, 2, 2),
		standingsMatch(3, 4, 1, 0),
		standingsMatch(2, 3, 0, 3),
		standingsMatch(4, 1, 2, 2),
		standingsMatch(1, 3, 0, 1),
	}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 4)

	totalPoints, totalGoalsFor, totalGoalsAgainst := 0, 0, 0
	for _, row := range table {
		assert.Equal(t, row.Matches, row.Wins+row.Draws+row.Losses, "team %s", row.Team.Name)
		assert.Equal(t, row.Points, 3*row.Wins+row.Draws, "team %s", row.Team.Name)
		assert.Equal(t, row.GoalDifference, row.GoalsFor-row.GoalsAgainst, "team %s", row.Team.Name)
		totalPoints += row.Points
		totalGoalsFor += row.GoalsFor
		totalGoalsAgainst += row.GoalsAgainst
	}
	// 3 decisive matches award 3 points each, 2 draws award 2 each.
	assert.Equal(t, 13, totalPoints)
	assert.Equal(t, totalGoalsFor, totalGoalsAgainst)

	for i := 1; i < len(table); i++ {
		assert.GreaterOrEqual(t, table[i-1].Points, table[i].Points)
	}
}

func TestComputeStandingsIdleTeamGetsZeroRow(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "Bahia"},
		{ID: 2, Name: "Ceara"},
		{ID: 3, Name: "Vitoria"},
	}
	matches := []*models.Match{standingsMatch(1, 2, 1, 0)}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 3)

	idle := table[len(table)-1]
	assert.Equal(t, "Vitoria", idle.Team.Name)
	assert.Equal(t, models.StandingRow{
		Team:     models.StandingTeam{ID: 3, Name: "Vitoria"},
		Position: 3,
	}, idle)
}

func TestComputeStandingsSkipsScorelessMatches(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "Santos"},
		{ID: 2, Name: "Gremio"},
	}
	matches := []*models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusFinished}, // no scores recorded
		standingsMatch(2, 1, 1, 1),
	}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 2)
	assert.Equal(t, 1, table[0].Matches)
	assert.Equal(t, 1, table[1].Matches)
}

func TestComputeStandingsTieBreakChain(t *testing.T) {
	// Three teams engineered to tie on points so every secondary key gets
	// exercised, plus a name-only tie at the bottom.
	teams := []*models.Team{
		{ID: 1, Name: "Colorado"},
		{ID: 2, Name: "Tricolor"},
		{ID: 3, Name: "Alvinegro"},
		{ID: 4, Name: "Coral"},
	}
	matches := []*models.Match{
		standingsMatch(1, 4, 4, 0), // Colorado: 3 pts, GD +4
		standingsMatch(2, 4, 2, 0), // Tricolor: 3 pts, GD +2
		standingsMatch(3, 4, 2, 1), // Alvinegro: 3 pts, GD +1
	}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 4)
	assert.Equal(t, "Colorado", table[0].Team.Name)
	assert.Equal(t, "Tricolor", table[1].Team.Name)
	assert.Equal(t, "Alvinegro", table[2].Team.Name)
	assert.Equal(t, "Coral", table[3].Team.Name)
}

func TestStandingsServiceGetStandings(t *testing.T) {
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, Name: "Flamengo"},
		2: {ID: 2, Name: "Palmeiras"},
	}}
	finished := standingsMatch(1, 2, 2, 0)
	finished.ID = 1
	ongoing := &models.Match{ID: 2, HomeTeamID: 2, AwayTeamID: 1, Status: models.MatchStatusOngoing}
	matchRepo := &fakeMatchRepo{matches: map[int]*models.Match{1: finished, 2: ongoing}}

	svc := NewStandingsService(teamRepo, matchRepo, nil)
	table, err := svc.GetStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 2)

	assert.Equal(t, "Flamengo", table[0].Team.Name)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, 1, table[0].Matches, "ongoing matches stay out of the table")
}

func TestComputeStandingsNameBreaksFullTie(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "Zebra"},
		{ID: 2, Name: "Aguia"},
	}
	// Mirror results: both teams end with identical stats.
	matches := []*models.Match{
		standingsMatch(1, 2, 1, 0),
		standingsMatch(2, 1, 1, 0),
	}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 2)
	assert.Equal(t, "Aguia", table[0].Team.Name)
	assert.Equal(t, "Zebra", table[1].Team.Name)
}
