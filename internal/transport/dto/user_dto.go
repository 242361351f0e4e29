package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Auth Request DTOs ---

// RegisterRequest defines the structure for signing up. Registration creates
// the organization and the user profile together.
type RegisterRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
	OrganizationName string `json:"organization_name" validate:"required,max=100"`
}

// LoginRequest defines the structure for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest defines the structure for rotating a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest defines the structure for revoking a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// --- Repository-level records ---

// CreateOrganizationRequest is the insert record for an organization.
type CreateOrganizationRequest struct {
	Name            string
	CreatedByUserID uuid.UUID
}

// CreateUserRecord is the insert record for a user profile. ID may be
// pre-generated by the caller when the organization row has to reference the
// user before the user row exists (signup transaction).
type CreateUserRecord struct {
	ID           uuid.UUID
	OrgID        uuid.UUID
	Email        string
	PasswordHash string
	Name         string
}

// --- Responses ---

// UserResponse defines the standard user data returned to the client.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	OrgID     uuid.UUID `json:"org_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	OrgID        uuid.UUID     `json:"org_id"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}
