package resume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/types"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567
San Francisco, CA

Skills
JavaScript, React.js, Node, PostgreSQL, Docker

Professional Experience
2019-2023
Backend Engineer at Acme Corp
Built APIs in Go and deployed with Kubernetes.
2016 – 2019
Frontend Developer, Widget Inc

Education
B.S. Computer Science, State University, 2016
`

func TestStructure_FullResume(t *testing.T) {
	record := Structure(sampleResume, nil)

	assert.Equal(t, "Jane Doe", record.Contact.Name)
	assert.Equal(t, "jane.doe@example.com", record.Contact.Email)
	assert.Equal(t, "(555) 123-4567", record.Contact.Phone)

	assert.Contains(t, record.Skills, "javascript")
	assert.Contains(t, record.Skills, "react")
	assert.Contains(t, record.Skills, "postgresql")
	assert.Contains(t, record.Skills, "docker")

	require.Len(t, record.Experience, 2)
	assert.Equal(t, "Backend Engineer", record.Experience[0].Title)
	assert.Equal(t, "Acme Corp", record.Experience[0].Company)
	assert.Equal(t, 4, record.Experience[0].DurationYears)
	assert.Equal(t, "Frontend Developer", record.Experience[1].Title)
	assert.Equal(t, "Widget Inc", record.Experience[1].Company)
	assert.Equal(t, 3, record.Experience[1].DurationYears)

	require.Len(t, record.Education, 1)
	assert.Equal(t, "B.S. Computer Science", record.Education[0].Degree)
	assert.Equal(t, "State University", record.Education[0].School)
	assert.Equal(t, "2016", record.Education[0].Year)
	assert.Equal(t, types.LevelBachelor, record.Education[0].Level)
}

func TestStructure_EmptyInputDefaults(t *testing.T) {
	record := Structure("", nil)

	assert.Equal(t, types.UnknownName, record.Contact.Name)
	assert.Equal(t, types.NotAvailable, record.Contact.Email)
	assert.Equal(t, types.NotAvailable, record.Contact.Phone)
	assert.Empty(t, record.Skills)
	assert.Empty(t, record.Experience)
	assert.Empty(t, record.Education)
	assert.NotNil(t, record.Skills)
	assert.NotNil(t, record.Experience)
	assert.NotNil(t, record.Education)
}

func TestStructure_NoContactPatterns(t *testing.T) {
	record := Structure("Resume\n12345 something 678-901-2345x\n", nil)

	assert.Equal(t, types.UnknownName, record.Contact.Name)
	assert.Equal(t, types.NotAvailable, record.Contact.Email)
}

func TestStructure_PresentResolvesToCurrentYear(t *testing.T) {
	text := "Experience\n2020 - present\nPlatform Engineer at Example\n"
	record := Structure(text, nil)

	require.Len(t, record.Experience, 1)
	want := time.Now().Year() - 2020
	assert.Equal(t, want, record.Experience[0].DurationYears)
}

func TestStructure_PreStructuredPassThrough(t *testing.T) {
	pre := &types.ResumeRecord{
		Skills: []string{"go", "docker"},
		Experience: []types.Experience{
			{Title: "SRE", Company: "Ops Co", Years: "2021-2023", DurationYears: 2},
		},
	}

	record := Structure("this text must be ignored\nExperience\n1999-2001\nIgnored", pre)

	assert.Equal(t, []string{"go", "docker"}, record.Skills)
	require.Len(t, record.Experience, 1)
	assert.Equal(t, "SRE", record.Experience[0].Title)
	// Missing fields get defaulted, not parsed from text.
	assert.Equal(t, types.UnknownName, record.Contact.Name)
	assert.Equal(t, types.NotAvailable, record.Contact.Email)
	assert.NotNil(t, record.Education)
}

func TestStructure_PreStructuredWithoutSkillsFallsBackToParsing(t *testing.T) {
	pre := &types.ResumeRecord{Contact: types.Contact{Name: "Someone"}}
	record := Structure(sampleResume, pre)

	// No skills in the payload means the text path runs instead.
	assert.Equal(t, "Jane Doe", record.Contact.Name)
	assert.NotEmpty(t, record.Skills)
}

func TestStructure_HTMLInput(t *testing.T) {
	html := `<html><body>
		<h1>Jane Doe</h1>
		<p>jane.doe@example.com</p>
		<h2>Skills</h2>
		<ul><li>Python</li><li>Django</li></ul>
	</body></html>`

	record := Structure(html, nil)

	assert.Equal(t, "Jane Doe", record.Contact.Name)
	assert.Equal(t, "jane.doe@example.com", record.Contact.Email)
	assert.Contains(t, record.Skills, "python")
	assert.Contains(t, record.Skills, "django")
}

func TestTextFromHTML_StripsScripts(t *testing.T) {
	text, err := TextFromHTML(`<div><script>alert(1)</script><p>Go</p></div>`)
	require.NoError(t, err)
	assert.Equal(t, "Go", text)
}
