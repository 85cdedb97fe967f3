package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
	"golang.org/x/sync/errgroup"
)

type RankingService interface {
	// GetRanking recomputes the global ranking from scratch over all users
	// and their guesses on finished matches.
	GetRanking(ctx context.Context) ([]models.RankingEntry, error)
	// GetPerformance returns a single user's aggregate stats. Position is
	// left at zero, matching the performance endpoint contract.
	GetPerformance(ctx context.Context, userID int) (*models.RankingEntry, error)
}

type rankingService struct {
	userRepo  repositories.UserRepository
	guessRepo repositories.GuessRepository
}

func NewRankingService(userRepo repositories.UserRepository, guessRepo repositories.GuessRepository) RankingService {
	return &rankingService{
		userRepo:  userRepo,
		guessRepo: guessRepo,
	}
}

func (s *rankingService) GetRanking(ctx context.Context) ([]models.RankingEntry, error) {
	var (
		users   []*models.User
		guesses []*models.Guess
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list users for ranking: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		guesses, err = s.guessRepo.ListFinished(gCtx, nil)
		if err != nil {
			return fmt.Errorf("failed to list finished guesses for ranking: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildRanking(users, groupGuessesByUser(guesses)), nil
}

func (s *rankingService) GetPerformance(ctx context.Context, userID int) (*models.RankingEntry, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	guesses, err := s.guessRepo.ListFinished(ctx, []int{userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list finished guesses for user %d: %w", userID, err)
	}

	ranking := BuildRanking([]*models.User{user}, groupGuessesByUser(guesses))
	entry := ranking[0]
	entry.Position = 0
	return &entry, nil
}
