package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"hatch-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	sessionCtx          = "session" // Key to store the authenticated session in context
)

// Session identifies the authenticated caller and the tenant every query in
// the request must be scoped to.
type Session struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
}

// JWTAuthMiddleware creates a Gin middleware for JWT authentication.
// It parses the access token, validates the signature and expiry, and stores
// the caller's user and org IDs in the request context.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		tokenString := headerParts[1]

		token, err := jwt.ParseWithClaims(tokenString, &services.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
			// Validate the alg is what you expect:
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			log.Printf("Auth middleware: Error parsing token: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		claims, ok := token.Claims.(*services.SessionClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			log.Printf("Auth middleware: Error parsing user ID from token subject '%s': %v", claims.Subject, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identifier in token"})
			return
		}

		orgID, err := uuid.Parse(claims.OrgID)
		if err != nil {
			log.Printf("Auth middleware: Error parsing org ID from token claim '%s': %v", claims.OrgID, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid org identifier in token"})
			return
		}

		c.Set(sessionCtx, Session{UserID: userID, OrgID: orgID})
		c.Next()
	}
}

// GetSessionFromContext returns the authenticated session stored by
// JWTAuthMiddleware.
func GetSessionFromContext(c *gin.Context) (Session, error) {
	sessionAny, exists := c.Get(sessionCtx)
	if !exists {
		return Session{}, errors.New("session not found in context")
	}

	session, ok := sessionAny.(Session)
	if !ok {
		return Session{}, errors.New("session in context is of invalid type")
	}

	return session, nil
}
