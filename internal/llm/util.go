package llm

import "strings"

// CleanJSONBlock strips markdown code fences from a model response. Models
// often wrap JSON in ```json ... ``` even when told not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		// A bare language identifier may remain on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			first := strings.TrimSpace(text[:idx])
			if first != "" && len(first) < 20 && !strings.ContainsAny(first, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}
