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

const minPasswordLength = 6

type RegisterInput struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input models.Credentials) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		return nil, ErrNicknameRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Nickname:     nickname,
		Role:         models.RoleUser,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserNicknameConflict) {
			return nil, ErrNicknameConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	sanitizeUser(user)
	return user, nil
}

func (s *authService) Login(ctx context.Context, input models.Credentials) (*models.User, error) {
	user, err := s.userRepo.GetByNickname(ctx, input.Nickname)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by nickname: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	sanitizeUser(user)
	return user, nil
}
