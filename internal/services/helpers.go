package services

import (
	"errors"
	"fmt"
	"log"

	"hatch-api/internal/models"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"
)

// mapUserToResponse converts a models.User to its transport shape.
func mapUserToResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		OrgID:     user.OrgID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// mapRepoError maps storage errors to service errors
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %s (duplicate email)", ErrConflict, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	// Log other unexpected errors
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}
