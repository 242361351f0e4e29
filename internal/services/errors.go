package services

import "errors"

// Define common service errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict") // e.g., duplicate email
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidStage       = errors.New("invalid candidate stage")
	ErrInvalidTransition  = errors.New("invalid stage transition")
	ErrInvalidFileType    = errors.New("unsupported resume file type")
)
