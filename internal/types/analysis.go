package types

// MissingSkill is a required skill the candidate does not appear to have,
// annotated with an upskilling suggestion.
type MissingSkill struct {
	Skill      string `json:"skill"`
	Suggestion string `json:"suggestion"`
}

// MatchResult partitions a job's required skills into matched and missing.
// Matched skills keep the recruiter's original spelling.
type MatchResult struct {
	Matched []string       `json:"matchedSkills"`
	Missing []MissingSkill `json:"missingSkills"`
}

// AnalysisResult is the full outcome of analyzing a resume against a job.
// Score is always present and in [0,100]; Feedback is never empty.
type AnalysisResult struct {
	Score           int            `json:"score"`
	MatchedSkills   []string       `json:"matchedSkills"`
	MissingSkills   []MissingSkill `json:"missingSkills"`
	Feedback        []string       `json:"feedback"`
	ExtractedSkills []string       `json:"extractedSkills"`
}
