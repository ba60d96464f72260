// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelabs/orders-backend/internal/config"
	"github.com/storelabs/orders-backend/internal/utils"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	utils.SetJWTSecret("test-secret")
	users := newFakeUserRepo()
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 24}}
	return NewAuthService(users, cfg), users
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "difference-engine",
	})
	require.NoError(t, err)
	require.NotNil(t, registered.User)
	assert.NotZero(t, registered.User.ID)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.Equal(t, 24*3600, registered.ExpiresIn)

	logged, err := svc.Login(ctx, &LoginRequest{
		Email:    "ada@example.com",
		Password: "difference-engine",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)

	claims, err := utils.ValidateJWT(logged.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "Ada Lovelace", claims.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Alan Turing",
		Email:    "alan@example.com",
		Password: "enigma-machine",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "alan@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "does-not-matter",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	req := &RegisterRequest{Name: "Adele Goldberg", Email: "adele@example.com", Password: "smalltalk-80"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc, users := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.Empty(t, users.users)
}
