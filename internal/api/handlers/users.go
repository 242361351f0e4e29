package handlers

import (
	"errors"
	"log"
	"net/http"

	"hatch-api/internal/api/middleware"
	"hatch-api/internal/services"
	"hatch-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserHandler holds dependencies for auth and user operations.
type UserHandler struct {
	service   services.UserService
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{service: service, validator: validate}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates an organization and its first user in one step, and returns a token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body      dto.RegisterRequest true  "Signup details"
// @Success      201 {object}  dto.AuthResponse "Account created successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      409 {object}  map[string]string "Conflict - Email already registered"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	auth, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		} else {
			log.Printf("Error registering user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, auth)
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body      dto.LoginRequest true  "Login credentials"
// @Success      200 {object}  dto.AuthResponse "Logged in successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized - Invalid credentials"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	auth, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		} else {
			log.Printf("Error logging in user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		}
		return
	}

	c.JSON(http.StatusOK, auth)
}

// Refresh godoc
// @Summary      Rotate a refresh token
// @Description  Exchanges a valid refresh token for a new token pair. The presented token is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body      dto.RefreshRequest true  "Refresh token"
// @Success      200 {object}  map[string]string "New token pair"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized - Unknown or expired refresh token"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	accessToken, refreshToken, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		} else {
			log.Printf("Error refreshing token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented refresh token. Idempotent: revoking an unknown token succeeds.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body      dto.LogoutRequest true  "Refresh token to revoke"
// @Success      204 {object}  nil "Logged out"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	if err := h.service.Logout(c.Request.Context(), &req); err != nil {
		log.Printf("Error logging out: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMe godoc
// @Summary      Get the authenticated user
// @Description  Returns the profile of the caller identified by the access token.
// @Tags         users
// @Produce      json
// @Success      200 {object}  dto.UserResponse "Successfully retrieved profile"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "User Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) GetMe(c *gin.Context) {
	session, err := middleware.GetSessionFromContext(c)
	if err != nil {
		log.Printf("Error getting session from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Error fetching user %s: %v", session.UserID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	c.JSON(http.StatusOK, MapUserModelToUserResponse(user))
}
