package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityamakwana707/globetrotter-sub000/core/config"
	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/dto"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/entity"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	stored := *user
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.byEmail[stored.Email] = &stored
	return &stored, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func authConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenTTLMinute: 60}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, authConfig())

	registered, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "Ana@Example.com",
		Name:     "Ana",
		Password: "correct horse",
	})
	require.Nil(t, appErr)
	assert.Equal(t, "ana@example.com", registered.User.Email)
	require.NotEmpty(t, registered.Token)

	claims, err := utils.ValidateToken(registered.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID.String())

	loggedIn, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "correct horse",
	})
	require.Nil(t, appErr)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, authConfig())

	_, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "ana@example.com", Name: "Ana", Password: "correct horse",
	})
	require.Nil(t, appErr)

	_, appErr = svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "ana@example.com", Name: "Ana 2", Password: "other password",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, authConfig())

	_, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "ana@example.com", Name: "Ana", Password: "correct horse",
	})
	require.Nil(t, appErr)

	// Wrong password and unknown email fail the same way.
	_, wrongPass := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ana@example.com", Password: "wrong",
	})
	require.NotNil(t, wrongPass)
	assert.Equal(t, errors.ErrUnauthorized, wrongPass.Code)

	_, unknown := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@example.com", Password: "correct horse",
	})
	require.NotNil(t, unknown)
	assert.Equal(t, errors.ErrUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Message, unknown.Message)
}
