package services

import (
	"context"
	"fmt"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
	"github.com/GabrielDani/futebol-palpites-backend/storage"
	"golang.org/x/sync/errgroup"
)

type StandingsService interface {
	// GetStandings recomputes the league table from the full set of
	// finished matches on every call.
	GetStandings(ctx context.Context) ([]models.StandingRow, error)
}

type standingsService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	uploader  storage.FileUploader
}

func NewStandingsService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) StandingsService {
	return &standingsService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		uploader:  uploader,
	}
}

func (s *standingsService) GetStandings(ctx context.Context) ([]models.StandingRow, error) {
	var (
		teams    []*models.Team
		finished []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list teams for standings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		finished, err = s.matchRepo.ListByStatus(gCtx, models.MatchStatusFinished)
		if err != nil {
			return fmt.Errorf("failed to list finished matches for standings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, team := range teams {
		populateTeamLogoURL(team, s.uploader)
	}

	return ComputeStandings(teams, finished), nil
}
