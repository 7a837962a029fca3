package skills

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/types"
)

// suggestionTemplate is the generic upskilling suggestion attached to every
// missing skill.
const suggestionTemplate = "Consider learning %s through online courses or practical projects."

// Match partitions a job's required skills into matched and missing against
// the candidate's skills. Comparison is normalization-aware: two skills match
// when their canonical forms are equal or one contains the other. Required
// skills keep their original spelling in the result.
func Match(candidateSkills []string, requiredSkills []string) types.MatchResult {
	normalized := make([]string, 0, len(candidateSkills))
	for _, s := range candidateSkills {
		if n := Normalize(s); n != "" {
			normalized = append(normalized, n)
		}
	}

	result := types.MatchResult{
		Matched: []string{},
		Missing: []types.MissingSkill{},
	}

	seen := map[string]bool{}
	for _, required := range requiredSkills {
		normRequired := Normalize(required)
		if seen[normRequired] && normRequired != "" {
			continue
		}
		seen[normRequired] = true

		if normRequired != "" && anyMatches(normalized, normRequired) {
			result.Matched = append(result.Matched, required)
		} else {
			result.Missing = append(result.Missing, types.MissingSkill{
				Skill:      required,
				Suggestion: fmt.Sprintf(suggestionTemplate, required),
			})
		}
	}

	return result
}

func anyMatches(candidates []string, required string) bool {
	for _, c := range candidates {
		if c == required || containsEither(c, required) {
			return true
		}
	}
	return false
}
