package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// @Router / [get]
// @Success 200 {string} string
func (s *Server) root(c *gin.Context) {
	c.String(http.StatusOK, "Blog web app server is running")
}

// @Router /health [get]
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
func (s *Server) healthCheck(c *gin.Context) {
	status, code := "online", http.StatusOK

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Database ping failed")
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"service":   "blogwave-api",
		"version":   s.version,
	})
}
