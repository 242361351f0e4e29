package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"hatch-api/internal/models"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const refreshTokenPrefix = "refresh_token:"

// SessionClaims are the access-token claims: the signed-in identity plus its
// tenant binding. Serializing the org id into the token is what replaces an
// ambient session store, since every request re-derives its tenant from here.
type SessionClaims struct {
	OrgID string `json:"org_id"`
	jwt.RegisteredClaims
}

type userService struct {
	userRepo          storage.UserRepository
	orgRepo           storage.OrganizationRepository
	db                TxBeginner
	redis             *redis.Client
	log               *logrus.Logger
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	userRepo storage.UserRepository,
	orgRepo storage.OrganizationRepository,
	db TxBeginner,
	redisClient *redis.Client,
	log *logrus.Logger,
	jwtSecret string,
	jwtExpiration, refreshExpiration time.Duration,
) UserService {
	return &userService{
		userRepo:          userRepo,
		orgRepo:           orgRepo,
		db:                db,
		redis:             redisClient,
		log:               log,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExpiration,
		refreshExpiration: refreshExpiration,
	}
}

// Register creates the organization and the user profile in a single
// transaction: either the whole tenant comes into existence or none of it.
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.WithError(err).Error("Register: failed to begin transaction")
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The org row references its creator, so the user id is generated before
	// either insert.
	userID := uuid.New()

	org, err := s.orgRepo.WithTx(tx).Create(ctx, &dto.CreateOrganizationRequest{
		Name:            req.OrganizationName,
		CreatedByUserID: userID,
	})
	if err != nil {
		s.log.WithError(err).Error("Register: failed to create organization")
		return nil, mapRepoError(err, "creating organization")
	}

	user, err := s.userRepo.WithTx(tx).Create(ctx, &dto.CreateUserRecord{
		ID:           userID,
		OrgID:        org.ID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		s.log.WithError(err).Error("Register: failed to create user profile")
		return nil, mapRepoError(err, "creating user profile")
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.WithError(err).Error("Register: failed to commit transaction")
		return nil, fmt.Errorf("internal error committing signup: %w", err)
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user.ID, user.OrgID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "org_id": org.ID}).Info("user registered")

	userResp := mapUserToResponse(user)
	return &dto.AuthResponse{
		User:         &userResp,
		OrgID:        org.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.log.WithError(err).Error("Login: failed to fetch user by email")
		return nil, fmt.Errorf("internal error during login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user.ID, user.OrgID)
	if err != nil {
		return nil, err
	}

	userResp := mapUserToResponse(user)
	return &dto.AuthResponse{
		User:         &userResp,
		OrgID:        user.OrgID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh rotates the refresh token: the presented token is deleted and a new
// pair is issued. A token not present in redis (expired, revoked, or already
// rotated) yields invalid credentials.
func (s *userService) Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error) {
	key := refreshTokenPrefix + req.RefreshToken
	userIDStr, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", ErrInvalidCredentials
		}
		s.log.WithError(err).Error("Refresh: redis lookup failed")
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		s.log.WithError(err).Error("Refresh: failed to delete old refresh token")
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	return s.issueTokens(ctx, user.ID, user.OrgID)
}

func (s *userService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if err := s.redis.Del(ctx, refreshTokenPrefix+req.RefreshToken).Err(); err != nil {
		s.log.WithError(err).Error("Logout: failed to delete refresh token")
		return fmt.Errorf("internal error during logout: %w", err)
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("internal error getting user: %w", err)
	}
	return user, nil
}

// issueTokens signs an access token carrying the session claims and stores a
// new opaque refresh token in redis mapped to the user id.
func (s *userService) issueTokens(ctx context.Context, userID, orgID uuid.UUID) (string, string, error) {
	now := time.Now()
	claims := &SessionClaims{
		OrgID: orgID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.log.WithError(err).Error("failed to sign access token")
		return "", "", fmt.Errorf("failed to generate login token: %w", err)
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshToken := hex.EncodeToString(refreshBytes)

	if err := s.redis.Set(ctx, refreshTokenPrefix+refreshToken, userID.String(), s.refreshExpiration).Err(); err != nil {
		s.log.WithError(err).Error("failed to store refresh token")
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}
