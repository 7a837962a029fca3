// Package resume converts raw resume text, or pre-structured payloads from an
// upstream extraction service, into the canonical ResumeRecord.
package resume

import (
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jobboard/internal/skills"
	"github.com/jonathan/jobboard/internal/types"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	// Year ranges like 2019-2023, 2019 – present. Accepts hyphen, en dash
	// and em dash as separators.
	yearRangeRe = regexp.MustCompile(`(?i)(\d{4})\s*[-–—]\s*(\d{4}|present)`)
	degreeRe    = regexp.MustCompile(`(?i)(ph\.?d|doctorate|m\.s\.?|master|b\.s\.?|bachelor|diploma)`)
	yearRe      = regexp.MustCompile(`\d{4}`)
	threeDigits = regexp.MustCompile(`\d{3}`)
	wordRe      = regexp.MustCompile(`[A-Za-z0-9#+./]+`)
)

var (
	experienceKeywords = []string{"experience", "work history", "employment", "professional experience"}
	educationKeywords  = []string{"education", "academic", "degree"}
)

// Structure builds a ResumeRecord from raw text. When pre is supplied with a
// non-empty skills list it is accepted as-is with field-level defaulting and
// no text parsing happens; this is the path used when an upstream OCR service
// already structured the document. Structure never fails: unparseable input
// degrades to defaulted fields, and an internal panic yields the all-default
// record.
func Structure(rawText string, pre *types.ResumeRecord) (record types.ResumeRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[resume] structuring panicked, returning empty record: %v", r)
			record = types.EmptyResumeRecord()
		}
	}()

	if pre != nil && len(pre.Skills) > 0 {
		record = *pre
		record.ApplyDefaults()
		return record
	}

	if looksLikeHTML(rawText) {
		if text, err := TextFromHTML(rawText); err == nil {
			rawText = text
		}
	}

	lines := cleanLines(rawText)

	record = types.ResumeRecord{
		Contact:    extractContact(rawText, lines),
		Skills:     extractSkills(lines),
		Experience: extractExperience(lines),
		Education:  extractEducation(lines),
	}
	record.ApplyDefaults()
	return record
}

// cleanLines splits text into trimmed, non-empty lines.
func cleanLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func extractContact(rawText string, lines []string) types.Contact {
	contact := types.Contact{
		Name:  types.UnknownName,
		Email: types.NotAvailable,
		Phone: types.NotAvailable,
	}

	if m := emailRe.FindString(rawText); m != "" {
		contact.Email = m
	}
	if m := phoneRe.FindString(rawText); m != "" {
		contact.Phone = m
	}

	// Name heuristic: first of the opening lines that has no email, no
	// 3-digit run and is not a document header.
	for i := 0; i < len(lines) && i < 5; i++ {
		line := lines[i]
		lower := strings.ToLower(line)
		if len(line) <= 2 || strings.Contains(line, "@") || threeDigits.MatchString(line) {
			continue
		}
		if strings.Contains(lower, "resume") || strings.Contains(lower, "curriculum vitae") || lower == "cv" {
			continue
		}
		contact.Name = line
		break
	}

	return contact
}

func extractSkills(lines []string) []string {
	keywords := skills.Keywords()
	found := map[string]bool{}
	ordered := []string{}

	add := func(token string) {
		cleaned := skills.Clean(token)
		if cleaned == "" || !keywords[cleaned] {
			return
		}
		canonical := skills.Normalize(token)
		if !found[canonical] {
			found[canonical] = true
			ordered = append(ordered, canonical)
		}
	}

	for _, line := range lines {
		words := wordRe.FindAllString(line, -1)
		for i, w := range words {
			add(w)
			// Two-word skills like "machine learning" or "google cloud".
			if i+1 < len(words) {
				add(w + words[i+1])
			}
		}
	}

	sort.Strings(ordered)
	return ordered
}

// sectionSpan finds the lines between a heading containing one of the start
// keywords and the next heading containing one of the stop keywords.
func sectionSpan(lines []string, start, stop []string) []string {
	inSection := false
	span := []string{}
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !inSection {
			if containsAny(lower, start) {
				inSection = true
			}
			continue
		}
		if containsAny(lower, stop) {
			break
		}
		span = append(span, line)
	}
	return span
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func extractExperience(lines []string) []types.Experience {
	span := sectionSpan(lines, experienceKeywords, append([]string{"skills"}, educationKeywords...))

	entries := []types.Experience{}
	var current *types.Experience

	for _, line := range span {
		if m := yearRangeRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &types.Experience{
				Title:         "",
				Company:       types.UnknownName,
				Years:         m[0],
				DurationYears: durationYears(m[1], m[2]),
			}
			continue
		}
		if current != nil && current.Title == "" {
			title, company := splitTitleCompany(line)
			current.Title = title
			if company != "" {
				current.Company = company
			}
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

func durationYears(start, end string) int {
	startYear, err := strconv.Atoi(start)
	if err != nil {
		return 0
	}
	endYear := time.Now().Year()
	if !strings.EqualFold(end, "present") {
		endYear, err = strconv.Atoi(end)
		if err != nil {
			return 0
		}
	}
	if endYear < startYear {
		return 0
	}
	return endYear - startYear
}

// splitTitleCompany splits an entry's lead line into title and company on
// " at ", a comma, or " - ".
func splitTitleCompany(line string) (string, string) {
	for _, sep := range []string{" at ", " At ", ", ", " - "} {
		if idx := strings.Index(line, sep); idx >= 0 {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return strings.TrimSpace(line), ""
}

func extractEducation(lines []string) []types.Education {
	span := sectionSpan(lines, educationKeywords, []string{"experience", "skills"})

	entries := []types.Education{}
	for _, line := range span {
		degree := degreeRe.FindString(line)
		year := yearRe.FindString(line)
		if degree == "" && year == "" {
			continue
		}

		parts := strings.FieldsFunc(line, func(r rune) bool { return r == ',' })
		first := strings.TrimSpace(parts[0])
		school := types.UnknownName
		if len(parts) > 1 {
			school = strings.TrimSpace(parts[1])
		}
		if year == "" {
			year = types.NotAvailable
		}

		entries = append(entries, types.Education{
			Degree: first,
			School: school,
			Year:   year,
			Level:  degreeLevel(degree),
		})
	}
	return entries
}

func degreeLevel(degree string) int {
	lower := strings.ToLower(degree)
	switch {
	case lower == "":
		return types.LevelUnspecified
	case strings.Contains(lower, "phd") || strings.Contains(lower, "ph.d") || strings.Contains(lower, "doctorate"):
		return types.LevelDoctorate
	case strings.Contains(lower, "master") || strings.HasPrefix(lower, "m.s"):
		return types.LevelMaster
	default:
		return types.LevelBachelor
	}
}
