package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/eren/coursehub/internal/pkg/logger"
	"github.com/eren/coursehub/internal/server"
)

func main() {
	// A .env file is optional; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		logger.Info().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
