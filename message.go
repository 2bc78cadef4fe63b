package unfurl

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// FindURLs returns the http(s) URLs in message text in order of appearance.
// Trailing punctuation that usually belongs to the sentence is trimmed.
func FindURLs(message string) []string {
	matches := urlPattern.FindAllString(message, -1)
	if len(matches) == 0 {
		return nil
	}

	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, `.,;:!?)]'"`)
		if m == "http://" || m == "https://" {
			continue
		}
		urls = append(urls, m)
	}
	return urls
}
