// Package analysis implements the resume-to-job compatibility pipeline:
// structuring, matching, scoring and feedback generation.
package analysis

import (
	"math"
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

// Scoring weights. Skills dominate as the primary signal for technical fit,
// experience is secondary, education and contact act as smaller completeness
// signals. These exact weights are a deliberate design choice.
const (
	skillsWeight      = 40.0
	experienceWeight  = 35.0
	experiencePerYear = 5.0
	titleOverlapBonus = 5.0
	educationRelevant = 15.0
	educationPresent  = 8.0
	contactComplete   = 10.0
	contactIncomplete = 5.0
)

// educationFields are the degree keywords that count as relevant to a
// technical role.
var educationFields = []string{"computer", "software", "engineering", "technology", "science"}

// Score combines skill match ratio, experience, education and contact
// completeness into a single integer in [0,100]. Deterministic and pure.
func Score(resume types.ResumeRecord, job types.JobRequirement, matched []string) int {
	total := skillsTerm(len(matched), len(job.Skills)) +
		experienceTerm(resume.Experience, job.Title) +
		educationTerm(resume.Education) +
		contactTerm(resume)

	score := int(math.Round(total))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func skillsTerm(matched, required int) float64 {
	if required == 0 {
		return 0
	}
	return float64(matched) / float64(required) * skillsWeight
}

func experienceTerm(experience []types.Experience, jobTitle string) float64 {
	duration := 0.0
	for _, exp := range experience {
		duration += float64(exp.DurationYears) * experiencePerYear
	}
	if duration > experienceWeight {
		duration = experienceWeight
	}
	if titleOverlaps(experience, jobTitle) {
		duration += titleOverlapBonus
	}
	return duration
}

// titleOverlaps compares only the first whitespace-delimited word of each
// title, case-insensitively. "Backend Engineer" overlaps "Backend Developer";
// "Senior Backend Engineer" does not.
func titleOverlaps(experience []types.Experience, jobTitle string) bool {
	jobFirst := firstWord(jobTitle)
	if jobFirst == "" {
		return false
	}
	for _, exp := range experience {
		if strings.EqualFold(firstWord(exp.Title), jobFirst) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func educationTerm(education []types.Education) float64 {
	for _, edu := range education {
		lower := strings.ToLower(edu.Degree)
		for _, field := range educationFields {
			if strings.Contains(lower, field) {
				return educationRelevant
			}
		}
	}
	if len(education) > 0 {
		return educationPresent
	}
	return 0
}

func contactTerm(resume types.ResumeRecord) float64 {
	if resume.HasCompleteContact() {
		return contactComplete
	}
	return contactIncomplete
}
