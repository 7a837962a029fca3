package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_KnownVariants(t *testing.T) {
	cases := map[string]string{
		"JS":         "javascript",
		"JavaScript": "javascript",
		"ECMAScript": "javascript",
		"React.js":   "react",
		"reactjs":    "react",
		"C#":         "csharp",
		".NET":       "csharp",
		"k8s":        "kubernetes",
		"Postgres":   "postgresql",
		"golang":     "go",
		"CI/CD":      "cicd",
	}

	for input, want := range cases {
		assert.Equal(t, want, Normalize(input), "input %q", input)
	}
}

func TestNormalize_UnknownPassesThroughCleaned(t *testing.T) {
	assert.Equal(t, "cobol", Normalize("COBOL"))
	assert.Equal(t, "erlangotp", Normalize("Erlang/OTP"))
}

func TestNormalize_ExactBeatsSubstring(t *testing.T) {
	// "java" is a substring of javascript variants but must stay java.
	assert.Equal(t, "java", Normalize("Java"))
	// "react" is a prefix of "react native" but resolves to react.
	assert.Equal(t, "react", Normalize("react"))
}

func TestNormalize_EmptyAndPunctuation(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("  "))
	assert.Equal(t, "", Normalize("!!! ---"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"JS", "React.js", "C#", "golang", "COBOL", "", "!!!",
		"machine learning", "Senior Backend Engineer", "node.js",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_ShortTokensNeverSubstringMatch(t *testing.T) {
	// Two-letter tokens only match exactly, so "go" must not be found
	// inside unrelated words.
	assert.Equal(t, "gopher", Normalize("gopher"))
	assert.Equal(t, "go", Normalize("Go"))
}

func TestKeywords_ContainsFlattenedVariants(t *testing.T) {
	set := Keywords()
	assert.True(t, set["reactjs"])
	assert.True(t, set["k8s"])
	assert.True(t, set["dotnet"])
	assert.False(t, set[""])
}
