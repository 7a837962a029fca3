package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/jobboard/internal/types"
)

// SaveResume upserts a candidate's structured resume and raw text.
func (db *DB) SaveResume(ctx context.Context, candidateID uuid.UUID, parsed *types.ResumeRecord, rawText string) error {
	jsonBytes, err := json.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resumes (candidate_id, parsed, raw_text)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (candidate_id) DO UPDATE SET parsed = $2, raw_text = $3, updated_at = NOW()`,
		candidateID, jsonBytes, rawText,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume retrieves a candidate's stored resume. Returns nil when the
// candidate has not uploaded one.
func (db *DB) GetResume(ctx context.Context, candidateID uuid.UUID) (*StoredResume, error) {
	var stored StoredResume
	var parsedBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT candidate_id, parsed, raw_text, updated_at
		 FROM resumes WHERE candidate_id = $1`,
		candidateID,
	).Scan(&stored.CandidateID, &parsedBytes, &stored.RawText, &stored.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(parsedBytes, &stored.Parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored resume: %w", err)
	}
	stored.Parsed.ApplyDefaults()
	return &stored, nil
}
