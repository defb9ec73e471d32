package main

import (
	"fmt"
	"os"

	"github.com/blogwave/blogwave/internal/config"
	"github.com/blogwave/blogwave/internal/database"
	"github.com/blogwave/blogwave/internal/logger"
	"github.com/blogwave/blogwave/internal/server"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.Logging)

	// Open the shared store connection; the server closes it on shutdown
	db, err := database.Open(cfg.Database.URL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}

	srv, err := server.New(cfg, db, log, version)
	if err != nil {
		_ = database.Close(db)
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	log.Info().Str("version", version).Msg("Starting blog server...")

	// Blocks until SIGINT/SIGTERM
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}
