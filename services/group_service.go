package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
	"golang.org/x/sync/errgroup"
)

// recentPredictionsLimit is the fixed window of the group feed.
const recentPredictionsLimit = 5

// GroupDetails combines a group's member ranking with the latest scored
// predictions across all members.
type GroupDetails struct {
	Group             *models.Group              `json:"group"`
	Ranking           []models.RankingEntry      `json:"ranking"`
	RecentPredictions []models.PredictionSummary `json:"recent_predictions"`
}

type GroupService interface {
	Create(ctx context.Context, userID int, name string, isPublic bool) (*models.Group, error)
	ListVisible(ctx context.Context, userID int) ([]*models.Group, error)
	Join(ctx context.Context, groupID, userID int) error
	Leave(ctx context.Context, groupID, userID int) error
	Delete(ctx context.Context, groupID, userID int) error
	// GetDetails recomputes the group ranking and recent predictions feed
	// from the members' guesses on finished matches.
	GetDetails(ctx context.Context, groupID int) (*GroupDetails, error)
}

type groupService struct {
	groupRepo repositories.GroupRepository
	userRepo  repositories.UserRepository
	guessRepo repositories.GuessRepository
}

func NewGroupService(
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	guessRepo repositories.GuessRepository,
) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		guessRepo: guessRepo,
	}
}

func (s *groupService) Create(ctx context.Context, userID int, name string, isPublic bool) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGroupNameRequired
	}
	group := &models.Group{Name: name, IsPublic: isPublic, CreatedBy: userID}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	group.MemberCount = 1
	return group, nil
}

func (s *groupService) ListVisible(ctx context.Context, userID int) ([]*models.Group, error) {
	groups, err := s.groupRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *groupService) Join(ctx context.Context, groupID, userID int) error {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsPublic {
		return ErrGroupPrivate
	}
	if err := s.groupRepo.AddMember(ctx, groupID, userID); err != nil {
		if errors.Is(err, repositories.ErrGroupMemberConflict) {
			return ErrAlreadyGroupMember
		}
		return fmt.Errorf("failed to join group %d: %w", groupID, err)
	}
	return nil
}

func (s *groupService) Leave(ctx context.Context, groupID, userID int) error {
	if err := s.groupRepo.RemoveMember(ctx, groupID, userID); err != nil {
		if errors.Is(err, repositories.ErrGroupMemberNotFound) {
			return ErrNotGroupMember
		}
		return fmt.Errorf("failed to leave group %d: %w", groupID, err)
	}
	return nil
}

func (s *groupService) Delete(ctx context.Context, groupID, userID int) error {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy != userID {
		return ErrOnlyCreatorCanDelete
	}
	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		return fmt.Errorf("failed to delete group %d: %w", groupID, err)
	}
	return nil
}

func (s *groupService) GetDetails(ctx context.Context, groupID int) (*GroupDetails, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.groupRepo.ListMemberIDs(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of group %d: %w", groupID, err)
	}

	var (
		members []*models.User
		guesses []*models.Guess
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var errList error
		members, errList = s.userRepo.ListByIDs(gCtx, memberIDs)
		if errList != nil {
			return fmt.Errorf("failed to load members of group %d: %w", groupID, errList)
		}
		return nil
	})
	g.Go(func() error {
		var errList error
		guesses, errList = s.guessRepo.ListFinished(gCtx, memberIDs)
		if errList != nil {
			return fmt.Errorf("failed to load guesses of group %d: %w", groupID, errList)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GroupDetails{
		Group:             group,
		Ranking:           BuildRanking(members, groupGuessesByUser(guesses)),
		RecentPredictions: BuildRecentPredictions(guesses, recentPredictionsLimit),
	}, nil
}

func (s *groupService) getGroup(ctx context.Context, groupID int) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to load group %d: %w", groupID, err)
	}
	return group, nil
}

// BuildRecentPredictions scores the supplied finished-match guesses and
// returns the newest `limit`, ordered by match date descending. Guesses on
// matches without both scores are skipped.
func BuildRecentPredictions(guesses []*models.Guess, limit int) []models.PredictionSummary {
	scored := make([]models.PredictionSummary, 0, len(guesses))
	for _, guess := range guesses {
		if !countsForScoring(guess) {
			continue
		}
		match := guess.Match
		summary := models.PredictionSummary{
			MatchID:     match.ID,
			MatchDate:   match.Date,
			GuessedHome: guess.ScoreHome,
			GuessedAway: guess.ScoreAway,
			ActualHome:  *match.ScoreHome,
			ActualAway:  *match.ScoreAway,
			Points:      EvaluateGuess(*match.ScoreHome, *match.ScoreAway, guess.ScoreHome, guess.ScoreAway).Points,
		}
		if guess.User != nil {
			summary.Nickname = guess.User.Nickname
		}
		if match.HomeTeam != nil {
			summary.HomeTeamName = match.HomeTeam.Name
		}
		if match.AwayTeam != nil {
			summary.AwayTeamName = match.AwayTeam.Name
		}
		scored = append(scored, summary)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchDate.After(scored[j].MatchDate)
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
