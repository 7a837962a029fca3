package resume

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// looksLikeHTML is a cheap check for markup in pasted resume text. Resume
// builders and mail clients often hand over rich text instead of plain text.
func looksLikeHTML(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "<") {
		return false
	}
	return strings.Contains(trimmed, "</") || strings.Contains(trimmed, "/>") ||
		strings.Contains(strings.ToLower(trimmed), "<br")
}

// TextFromHTML flattens an HTML document into plain text with one line per
// block element, so the line-oriented structuring heuristics keep working.
func TextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style").Remove()

	var lines []string
	doc.Find("p, li, h1, h2, h3, h4, div, td").Each(func(_ int, sel *goquery.Selection) {
		// Only take leaf-ish blocks, otherwise nested divs duplicate text.
		if sel.Children().Filter("p, li, h1, h2, h3, h4, div, td").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(lines, "\n"), nil
}
