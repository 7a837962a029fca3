// Package skills provides skill-name normalization against a curated synonym
// table and fuzzy matching of candidate skills against job requirements.
package skills

import (
	"sort"
	"strings"
)

// variantTable maps each canonical skill name to the spellings it covers.
// Variants are compared after cleaning, so punctuation differences
// ("react.js" vs "reactjs") collapse automatically.
var variantTable = map[string][]string{
	"javascript":         {"javascript", "js", "ecmascript", "es6"},
	"typescript":         {"typescript", "ts"},
	"python":             {"python", "py"},
	"java":               {"java"},
	"csharp":             {"csharp", "c#", ".net", "dotnet"},
	"cpp":                {"cpp", "c++"},
	"go":                 {"go", "golang"},
	"ruby":               {"ruby"},
	"rails":              {"rails", "ruby on rails"},
	"php":                {"php"},
	"laravel":            {"laravel"},
	"react":              {"react", "reactjs", "react.js"},
	"react native":       {"react native", "reactnative"},
	"angular":            {"angular", "angularjs"},
	"vue":                {"vue", "vuejs", "vue.js"},
	"svelte":             {"svelte"},
	"next":               {"next", "nextjs", "next.js"},
	"node":               {"node", "nodejs", "node.js"},
	"express":            {"express", "expressjs"},
	"django":             {"django"},
	"flask":              {"flask"},
	"spring":             {"spring", "spring boot"},
	"html":               {"html", "html5"},
	"css":                {"css", "css3"},
	"tailwind":           {"tailwind", "tailwindcss"},
	"bootstrap":          {"bootstrap"},
	"sql":                {"sql"},
	"postgresql":         {"postgresql", "postgres"},
	"mysql":              {"mysql"},
	"mongodb":            {"mongodb", "mongo"},
	"redis":              {"redis"},
	"graphql":            {"graphql"},
	"rest":               {"rest", "restful"},
	"aws":                {"aws", "amazon web services"},
	"azure":              {"azure"},
	"google cloud":       {"google cloud", "gcp", "googlecloud"},
	"docker":             {"docker"},
	"kubernetes":         {"kubernetes", "k8s"},
	"jenkins":            {"jenkins"},
	"cicd":               {"cicd", "ci/cd"},
	"git":                {"git", "github", "gitlab"},
	"machine learning":   {"machine learning", "machinelearning", "ml"},
	"tensorflow":         {"tensorflow"},
	"pytorch":            {"pytorch"},
	"data analysis":      {"data analysis", "dataanalysis"},
	"pandas":             {"pandas"},
	"numpy":              {"numpy"},
	"project management": {"project management", "projectmanagement"},
	"agile":              {"agile", "scrum"},
	"ux design":          {"ux design", "uxdesign", "ui/ux design", "uiuxdesign"},
	"figma":              {"figma"},
	"sketch":             {"sketch"},
	"adobe xd":           {"adobe xd", "adobexd"},
	"blockchain":         {"blockchain"},
	"solidity":           {"solidity"},
	"cybersecurity":      {"cybersecurity", "security"},
}

// canonicalEntry is a precomputed entry of the variant table with all
// variants cleaned, iterated in a stable order.
type canonicalEntry struct {
	name     string
	variants []string
}

var entries = buildEntries()

func buildEntries() []canonicalEntry {
	names := make([]string, 0, len(variantTable))
	for name := range variantTable {
		names = append(names, name)
	}
	sort.Strings(names)

	built := make([]canonicalEntry, 0, len(names))
	for _, name := range names {
		variants := make([]string, 0, len(variantTable[name])+1)
		seen := map[string]bool{}
		for _, v := range append([]string{name}, variantTable[name]...) {
			cleaned := Clean(v)
			if cleaned == "" || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			variants = append(variants, cleaned)
		}
		built = append(built, canonicalEntry{name: name, variants: variants})
	}
	return built
}

// Clean lowercases a token and strips everything that is not a letter or
// digit. Purely punctuational input cleans to the empty string.
func Clean(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize maps a skill token to its canonical form. Tokens not covered by
// the variant table pass through cleaned, so uncurated skills can still match
// each other exactly.
func Normalize(token string) string {
	cleaned := Clean(token)
	if cleaned == "" {
		return ""
	}

	// Exact variant match wins over substring matches so that e.g. "java"
	// never resolves to javascript.
	for _, e := range entries {
		for _, v := range e.variants {
			if cleaned == v {
				return e.name
			}
		}
	}

	for _, e := range entries {
		for _, v := range e.variants {
			if containsEither(cleaned, v) {
				return e.name
			}
		}
	}

	return cleaned
}

// containsEither reports whether one string contains the other. The shorter
// side must be longer than 2 characters, otherwise tokens like "go" or "ts"
// would swallow unrelated words.
func containsEither(a, b string) bool {
	shorter := a
	if len(b) < len(a) {
		shorter = b
	}
	if len(shorter) <= 2 {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Keywords returns the flattened set of all cleaned variants in the table.
// The structuring engine scans resume lines against this set.
func Keywords() map[string]bool {
	set := make(map[string]bool)
	for _, e := range entries {
		for _, v := range e.variants {
			set[v] = true
		}
	}
	return set
}
