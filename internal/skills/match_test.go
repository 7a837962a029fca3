package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_NormalizedVariants(t *testing.T) {
	result := Match(
		[]string{"react", "express", "postgres"},
		[]string{"React.js", "Node.js", "MongoDB"},
	)

	assert.Equal(t, []string{"React.js"}, result.Matched)
	require.Len(t, result.Missing, 2)
	assert.Equal(t, "Node.js", result.Missing[0].Skill)
	assert.Contains(t, result.Missing[0].Suggestion, "Node.js")
	assert.Equal(t, "MongoDB", result.Missing[1].Skill)
	assert.Contains(t, result.Missing[1].Suggestion, "MongoDB")
}

func TestMatch_PartitionsRequiredSkills(t *testing.T) {
	required := []string{"Go", "Kubernetes", "Terraform", "gRPC", "python"}
	result := Match([]string{"golang", "k8s"}, required)

	// Matched and missing together cover every required skill exactly once.
	covered := map[string]bool{}
	for _, s := range result.Matched {
		assert.False(t, covered[s], "duplicate %q", s)
		covered[s] = true
	}
	for _, m := range result.Missing {
		assert.False(t, covered[m.Skill], "duplicate %q", m.Skill)
		covered[m.Skill] = true
	}
	assert.Len(t, covered, len(required))

	assert.ElementsMatch(t, []string{"Go", "Kubernetes"}, result.Matched)
}

func TestMatch_SubstringBothDirections(t *testing.T) {
	result := Match([]string{"microservices"}, []string{"microservice"})
	assert.Equal(t, []string{"microservice"}, result.Matched)

	result = Match([]string{"sql"}, []string{"postgresql"})
	assert.Equal(t, []string{"postgresql"}, result.Matched)
}

func TestMatch_EmptyRequired(t *testing.T) {
	result := Match([]string{"go", "python"}, nil)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
	assert.NotNil(t, result.Matched)
	assert.NotNil(t, result.Missing)
}

func TestMatch_EmptyCandidateSkillNeverMatches(t *testing.T) {
	result := Match([]string{"", "  ", "!!!"}, []string{"Go"})
	assert.Empty(t, result.Matched)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, "Go", result.Missing[0].Skill)
}

func TestMatch_PunctuationalRequiredGoesMissing(t *testing.T) {
	result := Match([]string{"go"}, []string{"???"})
	assert.Empty(t, result.Matched)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, "???", result.Missing[0].Skill)
}
