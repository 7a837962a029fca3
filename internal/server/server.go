package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/analysis"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/llm"
	"github.com/jonathan/jobboard/internal/ocr"
)

// contextKey is a typed key for context values to avoid collisions.
type contextKey string

const userIDKey contextKey = "userID"

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	db           *db.DB
	jobs         JobStore
	resumes      ResumeStore
	applications ApplicationStore
	analyzer     *analysis.Analyzer
	extractor    ResumeExtractor
	jwtService   *JWTService
	llmClient    llm.Client
	validator    *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port               int
	DatabaseURL        string
	JWTSecret          string
	JWTExpirationHours int
	GeminiAPIKey       string // empty disables LLM feedback enrichment
	OCRBaseURL         string // empty disables the extract endpoint
	OCRAPIKey          string
	OCRModelID         string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	feedback := &analysis.FeedbackGenerator{Config: llm.ConfigFromEnv()}
	var llmClient llm.Client
	if cfg.GeminiAPIKey != "" {
		llmClient, err = llm.NewGeminiClient(context.Background(), feedback.Config, cfg.GeminiAPIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		feedback.Client = llmClient
	} else {
		log.Println("[server] no Gemini API key configured, using rule-based feedback only")
	}

	var extractor ResumeExtractor
	if cfg.OCRBaseURL != "" && cfg.OCRAPIKey != "" {
		extractor = ocr.NewClient(cfg.OCRBaseURL, cfg.OCRAPIKey, cfg.OCRModelID)
	} else {
		log.Println("[server] OCR service not configured, resume extraction disabled")
	}

	s := newServer(database, database, database, analysis.NewAnalyzer(feedback), extractor,
		NewJWTService(cfg.JWTSecret, cfg.JWTExpirationHours))
	s.db = database
	s.llmClient = llmClient

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Analysis calls out to the LLM with retries
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newServer wires the handler dependencies. Tests call it directly with
// in-memory stores.
func newServer(jobs JobStore, resumes ResumeStore, applications ApplicationStore, analyzer *analysis.Analyzer, extractor ResumeExtractor, jwtService *JWTService) *Server {
	return &Server{
		jobs:         jobs,
		resumes:      resumes,
		applications: applications,
		analyzer:     analyzer,
		extractor:    extractor,
		jwtService:   jwtService,
		validator:    validator.New(),
	}
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Resume endpoints
	mux.HandleFunc("POST /api/resume/extract", s.withAuth(s.handleExtractResume))
	mux.HandleFunc("GET /api/resume/draft", s.withAuth(s.handleGetDraft))
	mux.HandleFunc("POST /api/resume/analyze", s.withAuth(s.handleAnalyze))
	mux.HandleFunc("POST /api/resume/analyze-draft", s.withAuth(s.handleAnalyzeDraft))

	// Job endpoints
	mux.HandleFunc("POST /api/jobs", s.withAuth(s.handleCreateJob))
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	mux.HandleFunc("POST /api/jobs/{id}/apply", s.withAuth(s.handleApply))
	mux.HandleFunc("POST /api/jobs/{id}/analyze-applicants", s.withAuth(s.handleAnalyzeApplicants))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withAuth validates the bearer token and adds the user ID to the request
// context.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.errorResponse(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			s.errorResponse(w, http.StatusUnauthorized, "Invalid Authorization header")
			return
		}

		claims, err := s.jwtService.ValidateToken(parts[1])
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next(w, r.WithContext(ctx))
	}
}

// userID extracts the authenticated user ID from the request context.
func userID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user ID not found in request context")
	}
	return id, nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// validationError extracts the first validation failure from validator errors.
func validationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
