package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
)

type GuessInput struct {
	MatchID   int `json:"match_id"`
	ScoreHome int `json:"score_home"`
	ScoreAway int `json:"score_away"`
}

type GuessService interface {
	ListAll(ctx context.Context) ([]*models.Guess, error)
	// Upsert creates or replaces the caller's guess for a match. The
	// PENDING check and the write run in one transaction so a concurrent
	// status flip cannot slip a guess in after kickoff.
	Upsert(ctx context.Context, userID int, input GuessInput) (*models.Guess, error)
	Delete(ctx context.Context, userID, matchID int) error
}

type guessService struct {
	db        *sql.DB
	guessRepo repositories.GuessRepository
	matchRepo repositories.MatchRepository
}

func NewGuessService(db *sql.DB, guessRepo repositories.GuessRepository, matchRepo repositories.MatchRepository) GuessService {
	return &guessService{
		db:        db,
		guessRepo: guessRepo,
		matchRepo: matchRepo,
	}
}

func (s *guessService) ListAll(ctx context.Context) ([]*models.Guess, error) {
	guesses, err := s.guessRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guesses: %w", err)
	}
	return guesses, nil
}

func (s *guessService) Upsert(ctx context.Context, userID int, input GuessInput) (*models.Guess, error) {
	if input.ScoreHome < 0 || input.ScoreAway < 0 {
		return nil, ErrNegativeScore
	}

	var guess *models.Guess
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.ensureMatchAcceptsGuesses(ctx, tx, input.MatchID); err != nil {
			return err
		}
		guess = &models.Guess{
			UserID:    userID,
			MatchID:   input.MatchID,
			ScoreHome: input.ScoreHome,
			ScoreAway: input.ScoreAway,
		}
		if err := s.guessRepo.Upsert(ctx, tx, guess); err != nil {
			return fmt.Errorf("failed to upsert guess: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return guess, nil
}

func (s *guessService) Delete(ctx context.Context, userID, matchID int) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.ensureMatchAcceptsGuesses(ctx, tx, matchID); err != nil {
			return err
		}
		if err := s.guessRepo.Delete(ctx, tx, userID, matchID); err != nil {
			if errors.Is(err, repositories.ErrGuessNotFound) {
				return ErrGuessNotFound
			}
			return fmt.Errorf("failed to delete guess: %w", err)
		}
		return nil
	})
}

// ensureMatchAcceptsGuesses enforces the lifecycle gate: once a match
// leaves PENDING its guesses are frozen. The status read locks the match
// row, so a status flip committed after the read cannot land between the
// check and the guess write.
func (s *guessService) ensureMatchAcceptsGuesses(ctx context.Context, exec repositories.SQLExecutor, matchID int) error {
	status, err := s.matchRepo.GetStatusForUpdate(ctx, exec, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	if status != models.MatchStatusPending {
		return ErrGuessesLocked
	}
	return nil
}

func (s *guessService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
