package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GabrielDani/futebol-palpites-backend/live"
	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
	"github.com/GabrielDani/futebol-palpites-backend/storage"
)

// ResolveStatus derives a match status from its score, kickoff time and an
// optional caller override. A recorded score always wins: the match is
// FINISHED regardless of time or override. The resolver runs on create and
// update only; between writes the persisted status is authoritative.
func ResolveStatus(now, scheduled time.Time, scoreHome, scoreAway *int, explicit *models.MatchStatus) models.MatchStatus {
	if scoreHome != nil && scoreAway != nil {
		return models.MatchStatusFinished
	}
	if explicit != nil {
		return *explicit
	}
	if !now.Before(scheduled) {
		return models.MatchStatusOngoing
	}
	return models.MatchStatusPending
}

type MatchInput struct {
	HomeTeamID int                 `json:"home_team_id"`
	AwayTeamID int                 `json:"away_team_id"`
	Date       time.Time           `json:"date"`
	Round      int                 `json:"round"`
	ScoreHome  *int                `json:"score_home"`
	ScoreAway  *int                `json:"score_away"`
	Status     *models.MatchStatus `json:"status"`
}

type MatchService interface {
	List(ctx context.Context) ([]*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	FindNext(ctx context.Context, quantity int) ([]*models.Match, error)
	FindByRound(ctx context.Context, round int) ([]*models.Match, error)
	FindByTeam(ctx context.Context, teamID int) ([]*models.Match, error)
	Create(ctx context.Context, input MatchInput) (*models.Match, error)
	Update(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	Delete(ctx context.Context, id int) error
	// AutoUpdateStatuses flips score-less PENDING matches past kickoff to
	// ONGOING. Invoked periodically by the scheduler in cmd/main.go.
	AutoUpdateStatuses(ctx context.Context) error
}

type matchService struct {
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	uploader  storage.FileUploader
	hub       *live.Hub
	logger    *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
	hub *live.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		uploader:  uploader,
		hub:       hub,
		logger:    logger,
	}
}

func (s *matchService) List(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	for _, m := range matches {
		populateMatchLogoURLs(m, s.uploader)
	}
	return matches, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", id, err)
	}
	populateMatchLogoURLs(match, s.uploader)
	return match, nil
}

func (s *matchService) FindNext(ctx context.Context, quantity int) ([]*models.Match, error) {
	if quantity <= 0 {
		quantity = 1
	}
	matches, err := s.matchRepo.ListUpcoming(ctx, time.Now(), quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming matches: %w", err)
	}
	for _, m := range matches {
		populateMatchLogoURLs(m, s.uploader)
	}
	return matches, nil
}

func (s *matchService) FindByRound(ctx context.Context, round int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByRound(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for round %d: %w", round, err)
	}
	for _, m := range matches {
		populateMatchLogoURLs(m, s.uploader)
	}
	return matches, nil
}

// FindByTeam lists every match the team plays in, home or away. The team is
// loaded first so an unknown id answers not-found instead of an empty list.
func (s *matchService) FindByTeam(ctx context.Context, teamID int) ([]*models.Match, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}
	matches, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for team %d: %w", teamID, err)
	}
	for _, m := range matches {
		populateMatchLogoURLs(m, s.uploader)
	}
	return matches, nil
}

func (s *matchService) Create(ctx context.Context, input MatchInput) (*models.Match, error) {
	if err := s.validateTeamsForMatch(ctx, input, 0); err != nil {
		return nil, err
	}

	match := &models.Match{
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		Date:       input.Date,
		Round:      input.Round,
		ScoreHome:  input.ScoreHome,
		ScoreAway:  input.ScoreAway,
		Status:     ResolveStatus(time.Now(), input.Date, input.ScoreHome, input.ScoreAway, input.Status),
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return s.GetByID(ctx, match.ID)
}

func (s *matchService) Update(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	current, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", id, err)
	}

	if err := s.validateTeamsForMatch(ctx, input, id); err != nil {
		return nil, err
	}

	current.HomeTeamID = input.HomeTeamID
	current.AwayTeamID = input.AwayTeamID
	current.Date = input.Date
	current.Round = input.Round
	current.ScoreHome = input.ScoreHome
	current.ScoreAway = input.ScoreAway
	current.Status = ResolveStatus(time.Now(), input.Date, input.ScoreHome, input.ScoreAway, input.Status)

	if err := s.matchRepo.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.RoomScores, live.Message{Type: live.EventMatchUpdated, Payload: updated})
		if updated.Status == models.MatchStatusFinished {
			s.hub.BroadcastToRoom(live.RoomScores, live.Message{Type: live.EventStandingsChanged, Payload: nil})
		}
	}
	return updated, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	err := s.matchRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrMatchNotFound) {
		return ErrMatchNotFound
	}
	return err
}

func (s *matchService) AutoUpdateStatuses(ctx context.Context) error {
	updated, err := s.matchRepo.MarkOngoingByKickoff(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to auto-update match statuses: %w", err)
	}
	if updated > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "matches moved to ONGOING by scheduler", slog.Int64("count", updated))
	}
	return nil
}

func (s *matchService) validateTeamsForMatch(ctx context.Context, input MatchInput, excludeID int) error {
	if input.HomeTeamID == input.AwayTeamID {
		return ErrMatchSameTeam
	}
	if input.Round <= 0 {
		return ErrMatchInvalidRound
	}
	if (input.ScoreHome == nil) != (input.ScoreAway == nil) {
		return ErrMatchScorePair
	}
	if input.ScoreHome != nil && (*input.ScoreHome < 0 || *input.ScoreAway < 0) {
		return ErrNegativeScore
	}

	for _, teamID := range []int{input.HomeTeamID, input.AwayTeamID} {
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to load team %d: %w", teamID, err)
		}
	}

	conflict, err := s.matchRepo.FindRoundConflict(ctx, input.Round, input.HomeTeamID, input.AwayTeamID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check round conflict: %w", err)
	}
	if conflict {
		return ErrMatchRoundConflict
	}
	return nil
}
