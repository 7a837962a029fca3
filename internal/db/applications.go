package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplication inserts an application with its compatibility score.
// A candidate may apply to a job at most once.
func (db *DB) CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, score int, feedback string) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_id, compatibility_score, feedback, status)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (job_id, candidate_id)
		 DO UPDATE SET compatibility_score = $3, feedback = $4, status = $5, created_at = NOW()
		 RETURNING id, job_id, candidate_id, compatibility_score, feedback, status, created_at`,
		jobID, candidateID, score, feedback, ApplicationStatusScored,
	).Scan(&app.ID, &app.JobID, &app.CandidateID, &app.CompatibilityScore, &app.Feedback, &app.Status, &app.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &app, nil
}

// ListApplications retrieves applications for a job, highest score first.
func (db *DB) ListApplications(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, candidate_id, compatibility_score, feedback, status, created_at
		 FROM applications WHERE job_id = $1
		 ORDER BY compatibility_score DESC, created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.CompatibilityScore, &app.Feedback, &app.Status, &app.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// GetApplication retrieves one application by ID. Returns nil when missing.
func (db *DB) GetApplication(ctx context.Context, applicationID uuid.UUID) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, compatibility_score, feedback, status, created_at
		 FROM applications WHERE id = $1`,
		applicationID,
	).Scan(&app.ID, &app.JobID, &app.CandidateID, &app.CompatibilityScore, &app.Feedback, &app.Status, &app.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// UpdateApplicationScore overwrites an application's score and feedback,
// used when a recruiter re-runs analysis for a job.
func (db *DB) UpdateApplicationScore(ctx context.Context, applicationID uuid.UUID, score int, feedback string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET compatibility_score = $1, feedback = $2, status = $3 WHERE id = $4`,
		score, feedback, ApplicationStatusScored, applicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", applicationID)
	}
	return nil
}
