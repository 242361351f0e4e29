package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hatch-api/internal/models"
	"hatch-api/internal/services"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// The register and refresh flows need a live database pool and Redis; they
// are exercised through the API. What can be unit-tested here is the
// credential checking, which fails before any token work happens.

func setupUserServiceTest() (context.Context, services.UserService, *MockUserRepository, *MockOrganizationRepository) {
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	svc := services.NewUserService(userRepo, orgRepo, nil, nil, testLogger(), "test-secret", 15*time.Minute, 7*24*time.Hour)
	return context.Background(), svc, userRepo, orgRepo
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	ctx, svc, userRepo, _ := setupUserServiceTest()

	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, storage.ErrNotFound).Once()

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	require.Error(t, err)
	// Unknown email and wrong password must be indistinguishable to the caller.
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	ctx, svc, userRepo, _ := setupUserServiceTest()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo.On("GetByEmail", ctx, "ada@example.com").Return(&models.User{
		ID:           uuid.New(),
		OrgID:        uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}, nil).Once()

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "battery-staple"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	ctx, svc, userRepo, _ := setupUserServiceTest()

	id := uuid.New()
	userRepo.On("GetByID", ctx, id).Return(nil, storage.ErrNotFound).Once()

	_, err := svc.GetByID(ctx, id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestUserService_GetByID_Success(t *testing.T) {
	ctx, svc, userRepo, _ := setupUserServiceTest()

	expected := &models.User{ID: uuid.New(), OrgID: uuid.New(), Email: "ada@example.com", Name: "Ada"}
	userRepo.On("GetByID", ctx, expected.ID).Return(expected, nil).Once()

	user, err := svc.GetByID(ctx, expected.ID)

	require.NoError(t, err)
	assert.Equal(t, expected, user)
}
