package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
	"github.com/GabrielDani/futebol-palpites-backend/storage"
)

type TeamInput struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type TeamService interface {
	List(ctx context.Context) ([]*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Create(ctx context.Context, input TeamInput) (*models.Team, error)
	Update(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	// UploadLogo stores the image and points the team's logo at it,
	// replacing any previous object.
	UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, t := range teams {
		populateTeamLogoURL(t, s.uploader)
	}
	return teams, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", id, err)
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) Create(ctx context.Context, input TeamInput) (*models.Team, error) {
	if err := validateTeamInput(&input); err != nil {
		return nil, err
	}
	team := &models.Team{Name: input.Name, ShortName: input.ShortName}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) Update(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	if err := validateTeamInput(&input); err != nil {
		return nil, err
	}
	team, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Name = input.Name
	team.ShortName = input.ShortName
	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to update team %d: %w", id, err)
	}
	return team, nil
}

func (s *teamService) UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrForbiddenOperation
	}
	team, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("teams/%d/logo%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", id, err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to store logo key for team %d: %w", id, err)
	}
	if oldKey != nil && *oldKey != key {
		// Best effort, the new logo is already in place.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.LogoKey = &key
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to load team %d: %w", id, err)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	if team.LogoKey != nil && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func validateTeamInput(input *TeamInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.ShortName = strings.TrimSpace(input.ShortName)
	if input.Name == "" {
		return ErrTeamNameRequired
	}
	if input.ShortName == "" {
		input.ShortName = input.Name
	}
	return nil
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}
}
