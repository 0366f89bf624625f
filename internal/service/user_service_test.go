package service

import (
	"context"
	"testing"
	"time"

	"motelhub/internal/auth"
	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/internal/testutil"
	"motelhub/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndLogin(t *testing.T) {
	db := testutil.NewDB(t)
	secret := []byte("test-secret")
	svc := NewUserService(repository.NewUserRepository(db), secret, time.Hour)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "chu_tro",
		Email:    "Owner@Example.com",
		Password: "secret123",
		Role:     model.RoleLandlord,
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "x", Email: "owner@example.com", Password: "secret123", Role: model.RoleTenant})
	requireAppError(t, err, apperror.CodeValidation)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "y", Email: "y@example.com", Password: "secret123", Role: "superuser"})
	requireAppError(t, err, apperror.CodeValidation)

	tok, err := svc.Login(ctx, LoginUserRequest{Email: "owner@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleLandlord, tok.Role)

	claims, err := auth.ParseToken(tok.Token, secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, model.RoleLandlord, claims.Role)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "chu_tro", got.Username)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(repository.NewUserRepository(db), []byte("s"), 0)
	ctx := context.Background()
	_, err := svc.CreateUser(ctx, CreateUserRequest{Username: "t", Email: "t@example.com", Password: "secret123", Role: model.RoleTenant})
	require.NoError(t, err)

	_, errWrong := svc.Login(ctx, LoginUserRequest{Email: "t@example.com", Password: "nope"})
	_, errUnknown := svc.Login(ctx, LoginUserRequest{Email: "ghost@example.com", Password: "nope"})

	wrong := requireAppError(t, errWrong, apperror.CodeUnauthorized)
	unknown := requireAppError(t, errUnknown, apperror.CodeUnauthorized)
	assert.Equal(t, wrong.Message, unknown.Message)
}
