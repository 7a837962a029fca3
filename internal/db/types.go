package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/types"
)

// Job statuses
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Application statuses
const (
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusScored    = "scored"
)

// Job is a posted job opening.
type Job struct {
	ID          uuid.UUID `json:"id"`
	RecruiterID uuid.UUID `json:"recruiterId"`
	Title       string    `json:"title"`
	Domain      string    `json:"domain"`
	Skills      []string  `json:"skills"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Requirement converts the job row to the analysis pipeline's input shape.
func (j *Job) Requirement() types.JobRequirement {
	return types.JobRequirement{
		Title:  j.Title,
		Domain: j.Domain,
		Skills: j.Skills,
	}
}

// Application is a candidate application to a job, with the compatibility
// score computed at submission time.
type Application struct {
	ID                 uuid.UUID `json:"id"`
	JobID              uuid.UUID `json:"jobId"`
	CandidateID        uuid.UUID `json:"candidateId"`
	CompatibilityScore int       `json:"compatibilityScore"`
	Feedback           string    `json:"feedback"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

// StoredResume is a candidate's most recent structured resume, kept as JSONB
// alongside the raw extracted text so applications can be re-analyzed.
type StoredResume struct {
	CandidateID uuid.UUID          `json:"candidateId"`
	Parsed      types.ResumeRecord `json:"parsed"`
	RawText     string             `json:"rawText"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
