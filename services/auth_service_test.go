package services

import (
	"context"
	"testing"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthServiceRegister(t *testing.T) {
	userRepo := &fakeUserRepo{}
	svc := NewAuthService(userRepo)

	user, err := svc.Register(context.Background(), RegisterInput{Nickname: "  ana  ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Nickname)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash, "responses must not carry the hash")

	// The stored hash must verify against the original password.
	stored := userRepo.users[user.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{Nickname: "   ", Password: "secret123"})
	assert.ErrorIs(t, err, ErrNicknameRequired)

	_, err = svc.Register(context.Background(), RegisterInput{Nickname: "ana", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthServiceRegisterDuplicateNickname(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{Nickname: "ana", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Nickname: "ana", Password: "another123"})
	assert.ErrorIs(t, err, ErrNicknameConflict)
}

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo := &fakeUserRepo{users: map[int]*models.User{
		1: {ID: 1, Nickname: "ana", Role: models.RoleUser, PasswordHash: string(hash)},
	}}
	svc := NewAuthService(userRepo)

	user, err := svc.Login(context.Background(), models.Credentials{Nickname: "ana", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Login(context.Background(), models.Credentials{Nickname: "ana", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	// Unknown nicknames get the same error as a wrong password.
	_, err = svc.Login(context.Background(), models.Credentials{Nickname: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
