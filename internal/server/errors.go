// Package server provides the HTTP REST API for the job board.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrJobNotFound indicates the requested job does not exist
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ErrResumeNotFound indicates the candidate has no stored resume
type ErrResumeNotFound struct {
	CandidateID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("no stored resume for candidate: %s", e.CandidateID)
}

// ErrForbidden indicates the caller does not own the resource
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "you do not have access to this resource"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrJobNotFound, *ErrResumeNotFound:
		return http.StatusNotFound
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
