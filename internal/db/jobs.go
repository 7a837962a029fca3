package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateJob inserts a new open job and returns the stored row.
func (db *DB) CreateJob(ctx context.Context, recruiterID uuid.UUID, title, domain string, skills []string) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (recruiter_id, title, domain, skills, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, recruiter_id, title, domain, skills, status, created_at`,
		recruiterID, title, domain, skills, JobStatusOpen,
	).Scan(&job.ID, &job.RecruiterID, &job.Title, &job.Domain, &job.Skills, &job.Status, &job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &job, nil
}

// GetJob retrieves a job by ID. Returns nil when the job does not exist.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, recruiter_id, title, domain, skills, status, created_at
		 FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.RecruiterID, &job.Title, &job.Domain, &job.Skills, &job.Status, &job.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListJobs retrieves open jobs, newest first.
func (db *DB) ListJobs(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, recruiter_id, title, domain, skills, status, created_at
		 FROM jobs WHERE status = $1 ORDER BY created_at DESC LIMIT $2`,
		JobStatusOpen, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.RecruiterID, &job.Title, &job.Domain, &job.Skills, &job.Status, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// CloseJob marks a job closed. Only its recruiter may close it.
func (db *DB) CloseJob(ctx context.Context, jobID, recruiterID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1 WHERE id = $2 AND recruiter_id = $3`,
		JobStatusClosed, jobID, recruiterID,
	)
	if err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}
