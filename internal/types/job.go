package types

// JobRequirement is the job-side input to the matcher and scorer. Skills are
// free text as entered by the recruiter, not pre-normalized. Domain is passed
// through for display and prompt context only.
type JobRequirement struct {
	Title  string   `json:"title"`
	Domain string   `json:"domain,omitempty"`
	Skills []string `json:"skills"`
}
