package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJobRequirement(t *testing.T) {
	job := Job{
		ID:          uuid.New(),
		RecruiterID: uuid.New(),
		Title:       "Backend Engineer",
		Domain:      "Software",
		Skills:      []string{"Go", "PostgreSQL"},
		Status:      JobStatusOpen,
	}

	req := job.Requirement()
	assert.Equal(t, "Backend Engineer", req.Title)
	assert.Equal(t, "Software", req.Domain)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, req.Skills)
}
