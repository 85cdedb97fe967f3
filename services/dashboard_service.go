package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	// GetMetrics gathers the admin dashboard counters: matches scheduled
	// for today, the user total with its week-over-week delta, and the
	// team total.
	GetMetrics(ctx context.Context) (models.DashboardMetrics, error)
}

type dashboardService struct {
	userRepo  repositories.UserRepository
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	now       func() time.Time
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
) DashboardService {
	return &dashboardService{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		now:       time.Now,
	}
}

func (s *dashboardService) GetMetrics(ctx context.Context) (models.DashboardMetrics, error) {
	now := s.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	lastWeekStart := now.AddDate(0, 0, -7)

	var (
		todayMatches  int
		usersTotal    int
		usersLastWeek int
		teamsTotal    int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		todayMatches, err = s.matchRepo.CountByDateRange(gCtx, todayStart, todayEnd)
		if err != nil {
			return fmt.Errorf("failed to count today's matches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		usersTotal, err = s.userRepo.Count(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		usersLastWeek, err = s.userRepo.CountCreatedBetween(gCtx, lastWeekStart, todayStart)
		if err != nil {
			return fmt.Errorf("failed to count last week's users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		teamsTotal, err = s.teamRepo.Count(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count teams: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.DashboardMetrics{}, err
	}

	return models.DashboardMetrics{
		TodayMatches: todayMatches,
		UsersCount: models.UserCountStat{
			Actual:             usersTotal,
			ChangeFromLastWeek: usersTotal - usersLastWeek,
		},
		TeamsCount: teamsTotal,
	}, nil
}
