package unfurl

import "strings"

// FormatPreviews formats previews for display.
// Each preview is headed by its URL; missing fields are omitted.
// Previews are separated by blank lines.
func FormatPreviews(previews []*Preview) string {
	if len(previews) == 0 {
		return ""
	}

	parts := make([]string, 0, len(previews))
	for _, p := range previews {
		parts = append(parts, formatPreview(p))
	}

	return strings.Join(parts, "\n\n")
}

func formatPreview(p *Preview) string {
	var b strings.Builder
	b.WriteString("## " + p.URL)
	if p.IsEmpty() {
		b.WriteString("\n(no preview)")
		return b.String()
	}
	if p.Title != "" {
		b.WriteString("\nTitle: " + p.Title)
	}
	if p.Description != "" {
		b.WriteString("\nDescription: " + p.Description)
	}
	if p.Image != "" {
		b.WriteString("\nImage: " + p.Image)
	}
	return b.String()
}
