package services

import (
	"context"
	"testing"
	"time"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStatus(t *testing.T) {
	now := time.Date(2026, time.March, 15, 16, 0, 0, 0, time.UTC)
	ongoing := models.MatchStatusOngoing
	pending := models.MatchStatusPending

	tests := map[string]struct {
		scheduled time.Time
		scoreHome *int
		scoreAway *int
		explicit  *models.MatchStatus
		want      models.MatchStatus
	}{
		"future kickoff": {
			scheduled: now.Add(2 * time.Hour),
			want:      models.MatchStatusPending,
		},
		"kickoff passed": {
			scheduled: now.Add(-10 * time.Minute),
			want:      models.MatchStatusOngoing,
		},
		"kickoff exactly now": {
			scheduled: now,
			want:      models.MatchStatusOngoing,
		},
		"score recorded": {
			scheduled: now.Add(-2 * time.Hour),
			scoreHome: intPtr(2),
			scoreAway: intPtr(0),
			want:      models.MatchStatusFinished,
		},
		"score beats explicit override": {
			scheduled: now.Add(time.Hour),
			scoreHome: intPtr(1),
			scoreAway: intPtr(1),
			explicit:  &pending,
			want:      models.MatchStatusFinished,
		},
		"explicit override honored without score": {
			scheduled: now.Add(time.Hour),
			explicit:  &ongoing,
			want:      models.MatchStatusOngoing,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := ResolveStatus(now, tc.scheduled, tc.scoreHome, tc.scoreAway, tc.explicit)
			assert.Equal(t, tc.want, got)
		})
	}
}

func newMatchServiceForTest(matchRepo *fakeMatchRepo, teamRepo *fakeTeamRepo) MatchService {
	return NewMatchService(matchRepo, teamRepo, nil, nil, nil)
}

func TestMatchServiceCreateValidation(t *testing.T) {
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, Name: "Flamengo"},
		2: {ID: 2, Name: "Palmeiras"},
	}}
	future := time.Now().Add(24 * time.Hour)

	tests := map[string]struct {
		input    MatchInput
		conflict bool
		wantErr  error
	}{
		"same team on both sides": {
			input:   MatchInput{HomeTeamID: 1, AwayTeamID: 1, Date: future, Round: 1},
			wantErr: ErrMatchSameTeam,
		},
		"round must be positive": {
			input:   MatchInput{HomeTeamID: 1, AwayTeamID: 2, Date: future, Round: 0},
			wantErr: ErrMatchInvalidRound,
		},
		"half a score": {
			input:   MatchInput{HomeTeamID: 1, AwayTeamID: 2, Date: future, Round: 1, ScoreHome: intPtr(1)},
			wantErr: ErrMatchScorePair,
		},
		"negative score": {
			input:   MatchInput{HomeTeamID: 1, AwayTeamID: 2, Date: future, Round: 1, ScoreHome: intPtr(-1), ScoreAway: intPtr(0)},
			wantErr: ErrNegativeScore,
		},
		"unknown team": {
			input:   MatchInput{HomeTeamID: 1, AwayTeamID: 99, Date: future, Round: 1},
			wantErr: ErrTeamNotFound,
		},
		"team already plays this round": {
			input:    MatchInput{HomeTeamID: 1, AwayTeamID: 2, Date: future, Round: 1},
			conflict: true,
			wantErr:  ErrMatchRoundConflict,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			matchRepo := &fakeMatchRepo{roundConflict: tc.conflict}
			svc := newMatchServiceForTest(matchRepo, teamRepo)

			_, err := svc.Create(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, matchRepo.matches, "invalid match must not be persisted")
		})
	}
}

func TestMatchServiceCreateResolvesStatus(t *testing.T) {
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, Name: "Flamengo"},
		2: {ID: 2, Name: "Palmeiras"},
	}}
	matchRepo := &fakeMatchRepo{}
	svc := newMatchServiceForTest(matchRepo, teamRepo)

	match, err := svc.Create(context.Background(), MatchInput{
		HomeTeamID: 1,
		AwayTeamID: 2,
		Date:       time.Now().Add(48 * time.Hour),
		Round:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusPending, match.Status)

	finished, err := svc.Create(context.Background(), MatchInput{
		HomeTeamID: 2,
		AwayTeamID: 1,
		Date:       time.Now().Add(-48 * time.Hour),
		Round:      4,
		ScoreHome:  intPtr(2),
		ScoreAway:  intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusFinished, finished.Status)
}

func TestMatchServiceAutoUpdateStatuses(t *testing.T) {
	started := time.Now().Add(-time.Minute)
	upcoming := time.Now().Add(time.Hour)
	matchRepo := &fakeMatchRepo{matches: map[int]*models.Match{
		1: {ID: 1, Status: models.MatchStatusPending, Date: started},
		2: {ID: 2, Status: models.MatchStatusPending, Date: upcoming},
		3: {ID: 3, Status: models.MatchStatusFinished, Date: started, ScoreHome: intPtr(1), ScoreAway: intPtr(0)},
	}}
	svc := newMatchServiceForTest(matchRepo, &fakeTeamRepo{})

	require.NoError(t, svc.AutoUpdateStatuses(context.Background()))

	assert.Equal(t, models.MatchStatusOngoing, matchRepo.matches[1].Status)
	assert.Equal(t, models.MatchStatusPending, matchRepo.matches[2].Status)
	assert.Equal(t, models.MatchStatusFinished, matchRepo.matches[3].Status)
}

func TestMatchServiceDeleteNotFound(t *testing.T) {
	svc := newMatchServiceForTest(&fakeMatchRepo{}, &fakeTeamRepo{})
	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestMatchServiceFindByTeam(t *testing.T) {
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, Name: "Flamengo"},
		2: {ID: 2, Name: "Palmeiras"},
		3: {ID: 3, Name: "Cruzeiro"},
	}}
	matchRepo := &fakeMatchRepo{matches: map[int]*models.Match{
		1: {ID: 1, HomeTeamID: 1, AwayTeamID: 2, Round: 1},
		2: {ID: 2, HomeTeamID: 3, AwayTeamID: 1, Round: 2},
		3: {ID: 3, HomeTeamID: 2, AwayTeamID: 3, Round: 3},
	}}
	svc := newMatchServiceForTest(matchRepo, teamRepo)

	matches, err := svc.FindByTeam(context.Background(), 1)
	require.NoError(t, err)

	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []int{1, 2}, ids, "home and away fixtures both count")
}

func TestMatchServiceFindByTeamUnknownTeam(t *testing.T) {
	svc := newMatchServiceForTest(&fakeMatchRepo{}, &fakeTeamRepo{})
	_, err := svc.FindByTeam(context.Background(), 7)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
