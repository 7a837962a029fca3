package analysis

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/jobboard/internal/resume"
	"github.com/jonathan/jobboard/internal/skills"
	"github.com/jonathan/jobboard/internal/types"
)

// Analyzer is the façade invoked by the request layer. It sequences
// structuring, matching, scoring and feedback and always returns a complete
// AnalysisResult: partial failures degrade to defaults instead of erroring.
type Analyzer struct {
	Feedback *FeedbackGenerator
}

// NewAnalyzer creates an Analyzer. feedback may be nil, in which case only
// rule-based feedback is produced.
func NewAnalyzer(feedback *FeedbackGenerator) *Analyzer {
	if feedback == nil {
		feedback = &FeedbackGenerator{}
	}
	return &Analyzer{Feedback: feedback}
}

// Analyze runs the full pipeline against raw resume text or a pre-structured
// payload. It never returns an error: an unexpected panic inside the pipeline
// yields the safe default result for the job.
func (a *Analyzer) Analyze(ctx context.Context, rawText string, pre *types.ResumeRecord, job types.JobRequirement) (result types.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[analysis] pipeline panicked, returning safe default: %v", r)
			result = SafeDefaultResult(job)
		}
	}()

	record := resume.Structure(rawText, pre)
	match := skills.Match(record.Skills, job.Skills)
	score := Score(record, job, match.Matched)
	feedback := a.Feedback.Generate(ctx, record, job, match.Matched, match.Missing, score)

	return types.AnalysisResult{
		Score:           score,
		MatchedSkills:   match.Matched,
		MissingSkills:   match.Missing,
		Feedback:        feedback,
		ExtractedSkills: record.Skills,
	}
}

// SafeDefaultResult is the degraded outcome when analysis cannot run at all:
// score 0, nothing matched, every required skill missing, one generic
// feedback line.
func SafeDefaultResult(job types.JobRequirement) types.AnalysisResult {
	missing := make([]types.MissingSkill, 0, len(job.Skills))
	for _, skill := range job.Skills {
		missing = append(missing, types.MissingSkill{
			Skill:      skill,
			Suggestion: fmt.Sprintf("Consider learning %s through online courses or practical projects.", skill),
		})
	}
	return types.AnalysisResult{
		Score:           0,
		MatchedSkills:   []string{},
		MissingSkills:   missing,
		Feedback:        []string{"We could not fully analyze this resume. Please check that it is valid and try again."},
		ExtractedSkills: []string{},
	}
}
