package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/jobboard/internal/llm"
	"github.com/jonathan/jobboard/internal/prompts"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/types"
)

// FeedbackGenerator produces improvement suggestions for a resume against a
// job. A deterministic rule-based list is always available; when an LLM
// client is configured its response replaces the rule-based list wholesale.
// LLM failures are swallowed and never surface to the caller.
type FeedbackGenerator struct {
	Client llm.Client  // nil disables enrichment
	Config *llm.Config // nil uses llm.DefaultConfig
}

// Generate returns a non-empty feedback list for the analysis outcome.
func (g *FeedbackGenerator) Generate(ctx context.Context, resume types.ResumeRecord, job types.JobRequirement, matched []string, missing []types.MissingSkill, score int) []string {
	if g != nil && g.Client != nil {
		if feedback, err := g.enrich(ctx, resume, job); err == nil && len(feedback) > 0 {
			return feedback
		} else if err != nil {
			log.Printf("[feedback] enrichment failed, using rule-based feedback: %v", err)
		}
	}
	return ruleBasedFeedback(resume, job, matched, missing, score)
}

// enrich asks the generative service for feedback bullet points and parses
// the {"feedback": [...]} payload out of its response.
func (g *FeedbackGenerator) enrich(ctx context.Context, resume types.ResumeRecord, job types.JobRequirement) ([]string, error) {
	template, err := prompts.Get("feedback.json", "improve")
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(resume.Experience))
	for _, exp := range resume.Experience {
		titles = append(titles, exp.Title)
	}
	degrees := make([]string, 0, len(resume.Education))
	for _, edu := range resume.Education {
		degrees = append(degrees, edu.Degree)
	}

	prompt := prompts.Format(template, map[string]string{
		"JobTitle":         job.Title,
		"JobDomain":        job.Domain,
		"JobSkills":        strings.Join(job.Skills, ", "),
		"CandidateSkills":  strings.Join(resume.Skills, ", "),
		"ExperienceTitles": strings.Join(titles, ", "),
		"EducationDegrees": strings.Join(degrees, ", "),
	})

	text, err := llm.Generate(ctx, g.Client, g.Config, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONBlock(text)
	if err := schemas.Validate("feedback", []byte(cleaned)); err != nil {
		return nil, err
	}

	var payload struct {
		Feedback []string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse feedback JSON: %w", err)
	}
	if len(payload.Feedback) == 0 {
		return nil, fmt.Errorf("empty feedback array in response")
	}
	return payload.Feedback, nil
}

// ruleBasedFeedback is the deterministic fallback. Line order is fixed:
// matched skills, missing skills, experience, education, contact, then
// exactly one closing line keyed by score bracket.
func ruleBasedFeedback(resume types.ResumeRecord, job types.JobRequirement, matched []string, missing []types.MissingSkill, score int) []string {
	feedback := []string{}

	if len(matched) > 0 {
		feedback = append(feedback, fmt.Sprintf(
			"Your skills in %s align well with this role.", joinUpTo(matched, 3)))
	}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, m := range missing {
			names = append(names, m.Skill)
		}
		feedback = append(feedback, fmt.Sprintf(
			"Consider developing %s to strengthen your fit.", joinUpTo(names, 3)))
	}

	if len(resume.Experience) == 0 {
		feedback = append(feedback, "Add your work experience with clear date ranges so it can be evaluated.")
	} else if !titleOverlaps(resume.Experience, job.Title) {
		feedback = append(feedback, fmt.Sprintf(
			"Highlight experience most relevant to a %s role.", job.Title))
	}

	if len(resume.Education) == 0 {
		feedback = append(feedback, "Include your education background, even if informal or in progress.")
	}

	if !resume.HasCompleteContact() {
		feedback = append(feedback, "Complete your contact details (name, email, phone) so recruiters can reach you.")
	}

	switch {
	case score >= 80:
		feedback = append(feedback, "Overall this is an excellent match for the role.")
	case score >= 60:
		feedback = append(feedback, "You show good potential for this role.")
	case score >= 40:
		feedback = append(feedback, "This is a moderate match; targeted improvements would help.")
	default:
		feedback = append(feedback, "Build more of the required skills and experience before applying.")
	}

	return feedback
}

func joinUpTo(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
