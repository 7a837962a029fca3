package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobboard/internal/analysis"
	"github.com/jonathan/jobboard/internal/db"
)

// applicantConcurrency bounds the parallel re-analysis of a job's applicants.
const applicantConcurrency = 4

// CreateJobRequest is the request body for POST /api/jobs.
type CreateJobRequest struct {
	Title  string   `json:"title" validate:"required,min=2"`
	Domain string   `json:"domain"`
	Skills []string `json:"skills" validate:"required,min=1,dive,min=1"`
}

// ApplicantResult is one row of the batch re-analysis response.
type ApplicantResult struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	CandidateID   uuid.UUID `json:"candidateId"`
	Score         int       `json:"score"`
	Feedback      []string  `json:"feedback"`
}

// handleCreateJob creates a job owned by the authenticated recruiter.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := userID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationError(err))
		return
	}

	job, err := s.jobs.CreateJob(r.Context(), recruiterID, req.Title, req.Domain, req.Skills)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs returns open jobs, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	jobs, err := s.jobs.ListJobs(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// handleGetJob returns one job by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		notFound := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleApply analyzes the candidate's stored resume against the job and
// persists the application with its compatibility score.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	candidateID, err := userID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		notFound := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	if job.Status != db.JobStatusOpen {
		s.errorResponse(w, http.StatusConflict, "Job is no longer accepting applications")
		return
	}

	stored, err := s.resumes.GetResume(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if stored == nil {
		notFound := &ErrResumeNotFound{CandidateID: candidateID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	result := s.analyzer.Analyze(r.Context(), stored.RawText, &stored.Parsed, job.Requirement())

	app, err := s.applications.CreateApplication(r.Context(), jobID, candidateID, result.Score, joinFeedback(result.Feedback))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"application": app,
		"analysis":    toAnalyzeResponse(result),
	})
}

// handleAnalyzeApplicants re-runs the analysis for every applicant of the
// recruiter's job, bounded-concurrently, and updates the stored scores.
func (s *Server) handleAnalyzeApplicants(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := userID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		notFound := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	if job.RecruiterID != recruiterID {
		forbidden := &ErrForbidden{}
		s.errorResponse(w, HTTPStatus(forbidden), forbidden.Error())
		return
	}

	apps, err := s.applications.ListApplications(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	requirement := job.Requirement()
	results := make([]ApplicantResult, 0, len(apps))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(applicantConcurrency)
	for _, app := range apps {
		g.Go(func() error {
			stored, err := s.resumes.GetResume(ctx, app.CandidateID)
			if err != nil {
				return err
			}

			result := analysis.SafeDefaultResult(requirement)
			if stored != nil {
				result = s.analyzer.Analyze(ctx, stored.RawText, &stored.Parsed, requirement)
			} else {
				log.Printf("[server] applicant %s has no stored resume, scoring as default", app.CandidateID)
			}

			if err := s.applications.UpdateApplicationScore(ctx, app.ID, result.Score, joinFeedback(result.Feedback)); err != nil {
				return err
			}

			mu.Lock()
			results = append(results, ApplicantResult{
				ApplicationID: app.ID,
				CandidateID:   app.CandidateID,
				Score:         result.Score,
				Feedback:      result.Feedback,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Applicant analysis failed: "+err.Error())
		return
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobId":      jobID,
		"applicants": results,
		"count":      len(results),
	})
}

func joinFeedback(lines []string) string {
	return strings.Join(lines, "\n")
}
