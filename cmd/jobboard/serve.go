package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume analysis and job application endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	expirationHours := 24
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			expirationHours = hours
		}
	}

	cfg := server.Config{
		Port:               servePort,
		DatabaseURL:        databaseURL,
		JWTSecret:          jwtSecret,
		JWTExpirationHours: expirationHours,
		// Optional integrations: missing keys degrade gracefully
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OCRBaseURL:   os.Getenv("OCR_BASE_URL"),
		OCRAPIKey:    os.Getenv("OCR_API_KEY"),
		OCRModelID:   os.Getenv("OCR_MODEL_ID"),
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
