package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingServiceGetRanking(t *testing.T) {
	m := finishedMatch(1, 2, 1)

	userRepo := &fakeUserRepo{users: map[int]*models.User{
		1: {ID: 1, Nickname: "ana"},
		2: {ID: 2, Nickname: "bruno"},
	}}
	guessRepo := &fakeGuessRepo{finished: []*models.Guess{
		guessOn(1, m, 2, 1), // exact
		guessOn(2, m, 1, 0), // outcome only
	}}

	svc := NewRankingService(userRepo, guessRepo)
	ranking, err := svc.GetRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 2)

	assert.Equal(t, "ana", ranking[0].User.Nickname)
	assert.Equal(t, 3, ranking[0].Points)
	assert.Equal(t, 1, ranking[0].Position)
	assert.Equal(t, "bruno", ranking[1].User.Nickname)
	assert.Equal(t, 1, ranking[1].Points)
	assert.Equal(t, 2, ranking[1].Position)
}

func TestRankingServiceGetRankingPropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := NewRankingService(&fakeUserRepo{err: boom}, &fakeGuessRepo{})

	_, err := svc.GetRanking(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRankingServiceGetPerformance(t *testing.T) {
	m1 := finishedMatch(1, 1, 1)
	m2 := finishedMatch(2, 3, 0)

	userRepo := &fakeUserRepo{users: map[int]*models.User{
		1: {ID: 1, Nickname: "ana"},
	}}
	guessRepo := &fakeGuessRepo{finished: []*models.Guess{
		guessOn(1, m1, 1, 1), // exact
		guessOn(1, m2, 0, 1), // miss
	}}

	svc := NewRankingService(userRepo, guessRepo)
	perf, err := svc.GetPerformance(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, perf.Points)
	assert.Equal(t, 1, perf.ExactHits)
	assert.Equal(t, 0, perf.CorrectPredictions)
	assert.Equal(t, 2, perf.TotalGuesses)
	assert.Zero(t, perf.Position, "performance has no ranking position")
}

func TestRankingServiceGetPerformanceUnknownUser(t *testing.T) {
	svc := NewRankingService(&fakeUserRepo{}, &fakeGuessRepo{})

	_, err := svc.GetPerformance(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
