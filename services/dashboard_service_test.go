package services

import (
	"context"
	"testing"
	"time"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardServiceGetMetrics(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

	userRepo := &fakeUserRepo{users: map[int]*models.User{
		1: {ID: 1, Nickname: "ana", CreatedAt: now.AddDate(0, -1, 0)},
		2: {ID: 2, Nickname: "bruno", CreatedAt: now.AddDate(0, 0, -3)},
		3: {ID: 3, Nickname: "clara", CreatedAt: now.Add(-time.Hour)},
	}}
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, Name: "Alvinegro"},
		2: {ID: 2, Name: "Tricolor"},
	}}
	matchRepo := &fakeMatchRepo{matches: map[int]*models.Match{
		1: {ID: 1, Date: now.Add(2 * time.Hour)},
		2: {ID: 2, Date: now.AddDate(0, 0, 1)},
		3: {ID: 3, Date: now.AddDate(0, 0, -2)},
	}}
	svc := &dashboardService{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		now:       func() time.Time { return now },
	}

	metrics, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.TodayMatches)
	assert.Equal(t, 2, metrics.TeamsCount)
	assert.Equal(t, 3, metrics.UsersCount.Actual)
	// bruno is the only signup inside the trailing week before today, so
	// the delta is the total minus that one account.
	assert.Equal(t, 2, metrics.UsersCount.ChangeFromLastWeek)
}

func TestDashboardServiceGetMetricsPropagatesErrors(t *testing.T) {
	svc := &dashboardService{
		userRepo:  &fakeUserRepo{err: assert.AnError},
		teamRepo:  &fakeTeamRepo{},
		matchRepo: &fakeMatchRepo{},
		now:       time.Now,
	}

	_, err := svc.GetMetrics(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
