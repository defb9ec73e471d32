package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blogwave/blogwave/internal/auth"
)

const (
	msgUnauthorized    = "unauthorized access"
	msgForbidden       = "forbidden access"
	msgInternalError   = "internal server error"
	msgInvalidBody     = "invalid request body"
	msgInvalidIdentity = "invalid identity claim"
)

var (
	ErrMissingToken = errors.New("missing token cookie")
	ErrTokenRevoked = errors.New("token revoked")
	ErrNoSession    = errors.New("no session")
)

func setSession(c *gin.Context, sessionData *auth.SessionData) {
	c.Set("session", sessionData)
}

// GetSessionData returns the session attached by SessionMiddleware
func GetSessionData(c *gin.Context) (*auth.SessionData, bool) {
	session, exists := c.Get("session")
	if !exists {
		return nil, false
	}

	sessionData, ok := session.(*auth.SessionData)
	return sessionData, ok
}

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Warn().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", statusCode).
		Msg(message)
	c.AbortWithStatusJSON(statusCode, gin.H{"message": message})
}

// respondInternalError answers a store or runtime failure so the request never
// hangs without a response.
func respondInternalError(c *gin.Context, log zerolog.Logger, err error, message string) {
	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg(message)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": msgInternalError})
}

// SessionMiddleware verifies the token cookie and attaches the session. Every
// failure answers 401 with the same body. revocations may be nil.
func SessionMiddleware(tokens *auth.TokenManager, revocations auth.RevocationList, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			respondWithError(c, log, http.StatusUnauthorized, ErrMissingToken, msgUnauthorized)
			return
		}

		sessionData, err := tokens.ValidateToken(token)
		if err != nil {
			respondWithError(c, log, http.StatusUnauthorized, err, msgUnauthorized)
			return
		}

		if revocations != nil {
			revoked, err := revocations.IsRevoked(c.Request.Context(), sessionData.TokenID)
			if err != nil {
				respondInternalError(c, log, err, "Failed to check token revocation")
				return
			}
			if revoked {
				respondWithError(c, log, http.StatusUnauthorized, ErrTokenRevoked, msgUnauthorized)
				return
			}
		}

		setSession(c, sessionData)

		c.Next()
	}
}

// OwnershipMiddleware applies auth.Authorize to the "email" query parameter
// and the session identity. It must run after SessionMiddleware.
func OwnershipMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionData, exists := GetSessionData(c)
		if !exists {
			respondWithError(c, log, http.StatusUnauthorized, ErrNoSession, msgUnauthorized)
			return
		}

		if err := auth.Authorize(c.Query("email"), sessionData.Email()); err != nil {
			respondWithError(c, log, http.StatusForbidden, err, msgForbidden)
			return
		}

		c.Next()
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("host", c.Request.Host).
			Str("path", c.Request.URL.RequestURI()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}
