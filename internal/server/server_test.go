package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/analysis"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/types"
)

// fakeStore is an in-memory JobStore/ResumeStore/ApplicationStore.
type fakeStore struct {
	mu           sync.Mutex
	jobs         map[uuid.UUID]*db.Job
	resumes      map[uuid.UUID]*db.StoredResume
	applications map[uuid.UUID]*db.Application
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:         make(map[uuid.UUID]*db.Job),
		resumes:      make(map[uuid.UUID]*db.StoredResume),
		applications: make(map[uuid.UUID]*db.Application),
	}
}

func (f *fakeStore) CreateJob(_ context.Context, recruiterID uuid.UUID, title, domain string, skills []string) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job := &db.Job{
		ID:          uuid.New(),
		RecruiterID: recruiterID,
		Title:       title,
		Domain:      domain,
		Skills:      skills,
		Status:      db.JobStatusOpen,
		CreatedAt:   time.Now(),
	}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeStore) GetJob(_ context.Context, jobID uuid.UUID) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[jobID], nil
}

func (f *fakeStore) ListJobs(_ context.Context, limit int) ([]db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Job
	for _, job := range f.jobs {
		if job.Status == db.JobStatusOpen && len(out) < limit {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveResume(_ context.Context, candidateID uuid.UUID, parsed *types.ResumeRecord, rawText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes[candidateID] = &db.StoredResume{
		CandidateID: candidateID,
		Parsed:      *parsed,
		RawText:     rawText,
		UpdatedAt:   time.Now(),
	}
	return nil
}

func (f *fakeStore) GetResume(_ context.Context, candidateID uuid.UUID) (*db.StoredResume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resumes[candidateID], nil
}

func (f *fakeStore) CreateApplication(_ context.Context, jobID, candidateID uuid.UUID, score int, feedback string) (*db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, app := range f.applications {
		if app.JobID == jobID && app.CandidateID == candidateID {
			app.CompatibilityScore = score
			app.Feedback = feedback
			return app, nil
		}
	}
	app := &db.Application{
		ID:                 uuid.New(),
		JobID:              jobID,
		CandidateID:        candidateID,
		CompatibilityScore: score,
		Feedback:           feedback,
		Status:             db.ApplicationStatusScored,
		CreatedAt:          time.Now(),
	}
	f.applications[app.ID] = app
	return app, nil
}

func (f *fakeStore) ListApplications(_ context.Context, jobID uuid.UUID) ([]db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Application
	for _, app := range f.applications {
		if app.JobID == jobID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateApplicationScore(_ context.Context, applicationID uuid.UUID, score int, feedback string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.applications[applicationID]
	if !ok {
		return &ErrValidation{Field: "applicationId", Message: "unknown application"}
	}
	app.CompatibilityScore = score
	app.Feedback = feedback
	return nil
}

func newTestServer(store *fakeStore) *Server {
	return newServer(store, store, store, analysis.NewAnalyzer(nil), nil,
		NewJWTService("test-secret", 1))
}

func bearerFor(t *testing.T, s *Server, id uuid.UUID) string {
	t.Helper()
	token, err := s.jwtService.GenerateToken(id)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(newFakeStore())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestWithAuth_MissingHeader(t *testing.T) {
	s := newTestServer(newFakeStore())
	handler := s.withAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/resume/draft", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWithAuth_InvalidToken(t *testing.T) {
	s := newTestServer(newFakeStore())
	handler := s.withAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/resume/draft", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWithAuth_ValidTokenReachesHandler(t *testing.T) {
	s := newTestServer(newFakeStore())
	id := uuid.New()

	var gotID uuid.UUID
	handler := s.withAuth(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotID, err = userID(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/resume/draft", nil)
	req.Header.Set("Authorization", bearerFor(t, s, id))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, id, gotID)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 1)
	id := uuid.New()

	token, err := svc.GenerateToken(id)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 1).GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 1).ValidateToken(token)
	assert.Error(t, err)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrJobNotFound{}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrResumeNotFound{}))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(&ErrForbidden{}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}
