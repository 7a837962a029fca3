// Package types defines the shared domain types for resume analysis.
package types

// Default values used when a resume field cannot be extracted.
const (
	UnknownName  = "Unknown"
	NotAvailable = "N/A"
)

// Contact holds the contact information extracted from a resume.
type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location,omitempty"`
	Links    string `json:"links,omitempty"`
}

// Experience is a single work-history entry. DurationYears is derived from
// the period, never supplied by the caller.
type Experience struct {
	Title         string `json:"title"`
	Company       string `json:"company"`
	Years         string `json:"years"`
	DurationYears int    `json:"duration"`
}

// Education levels derived from the degree text.
const (
	LevelUnspecified = 0
	LevelBachelor    = 1
	LevelMaster      = 2
	LevelDoctorate   = 3
)

// Education is a single education entry.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
	Level  int    `json:"level"`
}

// ResumeRecord is the canonical structured representation of a resume.
// It is produced by the structuring engine from raw text, or supplied
// pre-structured by an upstream extraction service.
type ResumeRecord struct {
	Contact    Contact      `json:"contact"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// ApplyDefaults fills missing contact fields with their defaults and
// replaces nil slices with empty ones so the record is always well-shaped.
func (r *ResumeRecord) ApplyDefaults() {
	if r.Contact.Name == "" {
		r.Contact.Name = UnknownName
	}
	if r.Contact.Email == "" {
		r.Contact.Email = NotAvailable
	}
	if r.Contact.Phone == "" {
		r.Contact.Phone = NotAvailable
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
}

// EmptyResumeRecord returns an all-default record, used when structuring
// fails entirely.
func EmptyResumeRecord() ResumeRecord {
	r := ResumeRecord{}
	r.ApplyDefaults()
	return r
}

// HasCompleteContact reports whether name, email and phone were all extracted.
func (r *ResumeRecord) HasCompleteContact() bool {
	return r.Contact.Name != "" && r.Contact.Name != UnknownName &&
		r.Contact.Email != "" && r.Contact.Email != NotAvailable &&
		r.Contact.Phone != "" && r.Contact.Phone != NotAvailable
}
