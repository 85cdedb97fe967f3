package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
	"golang.org/x/crypto/bcrypt"
)

type UpdateUserInput struct {
	Nickname *string `json:"nickname"`
	Password *string `json:"password"`
}

type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range users {
		sanitizeUser(u)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	sanitizeUser(user)
	return user, nil
}

func (s *userService) Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}

	if input.Nickname != nil {
		nickname := strings.TrimSpace(*input.Nickname)
		if nickname == "" {
			return nil, ErrNicknameRequired
		}
		user.Nickname = nickname
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, errHash := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if errHash != nil {
			return nil, fmt.Errorf("failed to hash password: %w", errHash)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserNicknameConflict) {
			return nil, ErrNicknameConflict
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	sanitizeUser(user)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int) error {
	err := s.userRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
