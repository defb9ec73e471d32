package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogwave/blogwave/internal/auth"
)

// SuccessResponse is returned by the session endpoints
type SuccessResponse struct {
	Success bool `json:"success"`
}

// @Summary Issue session
// @Description Signs the posted identity claim and sets it as the token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} map[string]interface{}
// @Router /jwt [post]
func (s *Server) issueToken(c *gin.Context) {
	var identity auth.Identity
	// An absent body signs an empty identity
	if err := c.ShouldBindJSON(&identity); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, s.logger, http.StatusBadRequest, err, msgInvalidBody)
		return
	}
	if identity == nil {
		identity = auth.Identity{}
	}

	issued, err := s.tokens.Issue(identity)
	if err != nil {
		if errors.Is(err, auth.ErrReservedClaim) {
			respondWithError(c, s.logger, http.StatusBadRequest, err, msgInvalidIdentity)
			return
		}
		respondInternalError(c, s.logger, err, "Failed to issue token")
		return
	}

	auth.SetCookie(c.Writer, issued.Value, s.cookieOptions)

	s.logger.Info().
		Str("email", identity.Email()).
		Time("expires_at", issued.ExpiresAt).
		Msg("Session issued")

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// @Summary Logout
// @Description Clears the token cookie. The token is only invalidated
// @Description server-side when revocation is enabled.
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /logout [post]
func (s *Server) logout(c *gin.Context) {
	if s.revocationsService != nil {
		if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
			// Tokens that no longer verify need no revocation
			if sessionData, err := s.tokens.ValidateToken(token); err == nil {
				if err := s.revocationsService.Revoke(c.Request.Context(), sessionData.TokenID, sessionData.ExpiresAt); err != nil {
					respondInternalError(c, s.logger, err, "Failed to revoke token")
					return
				}
				s.logger.Info().Str("email", sessionData.Email()).Msg("Session revoked")
			}
		}
	}

	auth.ClearCookie(c.Writer, s.cookieOptions)

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
