package server

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/types"
)

// maxUploadBytes caps resume document uploads at 10 MB.
const maxUploadBytes = 10 << 20

// AnalyzeRequest is the request body for /api/resume/analyze.
type AnalyzeRequest struct {
	JobID      string `json:"jobId" validate:"required,uuid"`
	ResumeText string `json:"resumeText,omitempty"`
}

// AnalyzeDraftRequest is the request body for /api/resume/analyze-draft.
// Resume carries a base64-encoded structured resume JSON document.
type AnalyzeDraftRequest struct {
	JobID  string `json:"jobId" validate:"required,uuid"`
	Resume string `json:"resume" validate:"required"`
}

// AnalyzeResponse is the analysis payload returned to clients. MatchScore
// duplicates Score for compatibility with older clients.
type AnalyzeResponse struct {
	MatchScore      int                  `json:"matchScore"`
	Score           int                  `json:"score"`
	MatchedSkills   []string             `json:"matchedSkills"`
	MissingSkills   []types.MissingSkill `json:"missingSkills"`
	Feedback        []string             `json:"feedback"`
	ExtractedSkills []string             `json:"extractedSkills"`
}

func toAnalyzeResponse(result types.AnalysisResult) AnalyzeResponse {
	return AnalyzeResponse{
		MatchScore:      result.Score,
		Score:           result.Score,
		MatchedSkills:   result.MatchedSkills,
		MissingSkills:   result.MissingSkills,
		Feedback:        result.Feedback,
		ExtractedSkills: result.ExtractedSkills,
	}
}

// handleExtractResume accepts a multipart resume upload, structures it via
// the OCR service and stores the result as the candidate's parsed resume.
func (s *Server) handleExtractResume(w http.ResponseWriter, r *http.Request) {
	candidateID, err := userID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if s.extractor == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Resume extraction is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "A resume file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	record, rawText, err := s.extractor.ExtractResume(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		log.Printf("[server] resume extraction failed: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Resume extraction failed")
		return
	}

	if err := s.resumes.SaveResume(r.Context(), candidateID, record, rawText); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"resume": record})
}

// handleGetDraft returns the candidate's stored structured resume.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	candidateID, err := userID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
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

	s.jsonResponse(w, http.StatusOK, stored)
}

// handleAnalyze scores a resume against a job. When resumeText is omitted
// the candidate's stored resume is used.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	candidateID, err := userID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationError(err))
		return
	}

	jobID, err := uuid.Parse(req.JobID)
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

	rawText := req.ResumeText
	var pre *types.ResumeRecord
	if rawText == "" {
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
		pre = &stored.Parsed
		rawText = stored.RawText
	}

	result := s.analyzer.Analyze(r.Context(), rawText, pre, job.Requirement())
	s.jsonResponse(w, http.StatusOK, toAnalyzeResponse(result))
}

// handleAnalyzeDraft analyzes a base64-encoded structured resume without
// persisting anything.
func (s *Server) handleAnalyzeDraft(w http.ResponseWriter, r *http.Request) {
	if _, err := userID(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AnalyzeDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationError(err))
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Resume)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume must be base64-encoded JSON")
		return
	}
	if err := schemas.Validate("resume", decoded); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var record types.ResumeRecord
	if err := json.Unmarshal(decoded, &record); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume document: "+err.Error())
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

	result := s.analyzer.Analyze(r.Context(), "", &record, job.Requirement())
	s.jsonResponse(w, http.StatusOK, toAnalyzeResponse(result))
}
