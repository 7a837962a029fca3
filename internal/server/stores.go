package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/types"
)

// JobStore is the job persistence surface the handlers need.
// *db.DB implements it; tests substitute in-memory fakes.
type JobStore interface {
	CreateJob(ctx context.Context, recruiterID uuid.UUID, title, domain string, skills []string) (*db.Job, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, limit int) ([]db.Job, error)
}

// ResumeStore persists candidates' structured resumes.
type ResumeStore interface {
	SaveResume(ctx context.Context, candidateID uuid.UUID, parsed *types.ResumeRecord, rawText string) error
	GetResume(ctx context.Context, candidateID uuid.UUID) (*db.StoredResume, error)
}

// ApplicationStore persists scored applications.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, score int, feedback string) (*db.Application, error)
	ListApplications(ctx context.Context, jobID uuid.UUID) ([]db.Application, error)
	UpdateApplicationScore(ctx context.Context, applicationID uuid.UUID, score int, feedback string) error
}

// ResumeExtractor structures an uploaded resume document via the external
// OCR labeling service. *ocr.Client implements it.
type ResumeExtractor interface {
	ExtractResume(ctx context.Context, filename, contentType string, data []byte) (*types.ResumeRecord, string, error)
}
