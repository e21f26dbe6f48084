package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"bitsa-portal/internal/api"
	"bitsa-portal/internal/auth"
	"bitsa-portal/internal/config"
	"bitsa-portal/internal/ui"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine; the environment may be set directly.
		_ = err
	}

	cfg := config.LoadConfig()

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	session := auth.NewSession(cfg.UserToken, cfg.AdminToken)

	client := api.NewClient(&api.Config{
		BaseURL:      cfg.APIBaseURL,
		AssetBaseURL: cfg.AssetBaseURL,
		Timeout:      cfg.RequestTimeout,
	}, session, logger)

	logger.Info().
		Str("api", cfg.APIBaseURL).
		Bool("authenticated", session.Authenticated()).
		Msg("starting portal")

	app := ui.NewApp(client, session, logger)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Printf("Error running portal: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the zerolog logger. The TUI owns the terminal, so logs
// go to a file when configured and are dropped otherwise.
func newLogger(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.New(io.Discard), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, func() { file.Close() }, nil
}
