// Package server
//
// @title Blogwave API
// @version 1.0
// @description Blog and wishlist API with cookie sessions
// @host localhost:5000
// @BasePath /
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/blogwave/blogwave/internal/auth"
	"github.com/blogwave/blogwave/internal/blogs"
	"github.com/blogwave/blogwave/internal/config"
	"github.com/blogwave/blogwave/internal/database"
	"github.com/blogwave/blogwave/internal/revocations"
	"github.com/blogwave/blogwave/internal/wishlist"
	"github.com/blogwave/blogwave/internal/workers"
)

// Server represents the HTTP server and owns the store connection
type Server struct {
	router             *gin.Engine
	db                 *gorm.DB
	config             *config.Config
	logger             zerolog.Logger
	tokens             *auth.TokenManager
	cookieOptions      auth.CookieOptions
	blogsService       *blogs.Service
	wishlistService    *wishlist.Service
	revocationsService *revocations.Service
	version            string
}

// Option customizes a Server during construction
type Option func(*Server)

// WithTokenManager replaces the token manager built from configuration
func WithTokenManager(tokens *auth.TokenManager) Option {
	return func(s *Server) {
		s.tokens = tokens
	}
}

// New creates a new server instance around an open database
func New(cfg *config.Config, db *gorm.DB, zlog zerolog.Logger, version string, opts ...Option) (*Server, error) {
	if cfg.Auth.TokenSecret == "" {
		return nil, auth.ErrSecretNotConfigured
	}

	server := &Server{
		db:              db,
		config:          cfg,
		logger:          zlog,
		tokens:          auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL),
		cookieOptions:   auth.DefaultCookieOptions(cfg.Auth.CookieMaxAge, cfg.Auth.CookieSecure),
		blogsService:    blogs.NewService(db, zlog),
		wishlistService: wishlist.NewService(db, zlog),
		version:         version,
	}

	if cfg.Auth.Revocation {
		server.revocationsService = revocations.NewService(db, zlog)
		zlog.Info().Msg("Server-side token revocation enabled")
	} else {
		zlog.Info().Msg("Stateless sessions: logout clears the cookie but tokens stay valid until expiry")
	}

	for _, opt := range opts {
		opt(server)
	}

	server.setupRouter()

	return server, nil
}

// revocationList returns the configured revocation list, or nil when sessions
// are stateless
func (s *Server) revocationList() auth.RevocationList {
	if s.revocationsService == nil {
		return nil
	}
	return s.revocationsService
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(loggingMiddleware(s.logger))

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.Server.ClientOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Liveness
	s.router.GET("/", s.root)
	s.router.GET("/health", s.healthCheck)

	// Session endpoints (no auth required)
	s.router.POST("/jwt", s.issueToken)
	s.router.POST("/logout", s.logout)

	// Public blog endpoints
	s.router.GET("/all-blogs", s.listBlogs)
	s.router.GET("/all-blogs/search", s.searchBlogs)
	s.router.GET("/blog/:id", s.getBlog)

	// Public wishlist endpoints
	s.router.GET("/blog-from-wishlist/:id", s.getWishlistItem)
	s.router.POST("/add-to-wishlist", s.addToWishlist)

	// Session + ownership gated endpoints
	owned := s.router.Group("/")
	owned.Use(SessionMiddleware(s.tokens, s.revocationList(), s.logger))
	owned.Use(OwnershipMiddleware(s.logger))
	{
		owned.POST("/add-blog", s.createBlog)
		owned.PATCH("/update-blog/:id", s.updateBlog)
		owned.GET("/wishlist", s.listWishlist)
		owned.DELETE("/remove-from-wishlist/:id", s.removeFromWishlist)
	}
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully and closes the database.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx)
}

// Run serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	var purge *cron.Cron
	if s.revocationsService != nil {
		c, err := workers.StartRevocationPurge(s.config.Auth.PurgeSchedule, s.revocationsService, s.logger)
		if err != nil {
			_ = database.Close(s.db)
			return err
		}
		purge = c
	}

	srv := &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("port", s.config.Server.Port).Msg("Blog web app server is running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		if runErr == nil {
			runErr = err
		}
	}

	if purge != nil {
		<-purge.Stop().Done()
		s.logger.Info().Msg("Revocation purge stopped")
	}

	s.logger.Info().Msg("Closing database connection...")
	if err := database.Close(s.db); err != nil {
		s.logger.Error().Err(err).Msg("Error closing database")
	} else {
		s.logger.Info().Msg("Database closed successfully")
	}

	s.logger.Info().Msg("Server shutdown complete")

	return runErr
}
