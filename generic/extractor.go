// Package generic implements the fallback page summary used when no
// site-specific summarizer applies. It relies only on structure every HTML
// page may have: the title element, the meta description, the first
// top-level heading and the paragraphs and images around it.
package generic

import (
	"net/netip"
	"regexp"
	"strings"

	"github.com/fwojciec/unfurl"
)

// Ensure Extractor implements unfurl.SummaryExtractor at compile time.
var _ unfurl.SummaryExtractor = (*Extractor)(nil)

// Extractor produces a best-effort PagePreview from any document.
// It holds no state and is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title, description and image of doc.
// Each field is computed independently; fields that cannot be found are empty.
func (e *Extractor) Extract(doc unfurl.Document) unfurl.PagePreview {
	title, _ := findTitle(doc)
	description, _ := findDescription(doc)
	image, _ := findImage(doc)
	return unfurl.PagePreview{
		Title:       title,
		Description: description,
		Image:       image,
	}
}

// findTitle prefers the title element, then the first h1.
func findTitle(doc unfurl.Document) (string, bool) {
	if title, ok := textOf(doc.Find(unfurl.Tag("title"))); ok {
		return title, true
	}
	return textOf(doc.Find(unfurl.Tag("h1")))
}

// findDescription prefers the meta description, then the first paragraph
// after the first h1, then the first paragraph of the document.
func findDescription(doc unfurl.Document) (string, bool) {
	if meta, ok := doc.Find(unfurl.TagWithAttrValue("meta", "name", "description")); ok {
		if content, ok := nonEmpty(meta.Attr("content")); ok {
			return content, true
		}
	}

	if h1, ok := doc.Find(unfurl.Tag("h1")); ok {
		if text, ok := textOf(h1.FindNext(unfurl.Tag("p"))); ok {
			return text, true
		}
	}

	return textOf(doc.Find(unfurl.Tag("p")))
}

// findImage looks for the image next to the first h1: the nearest following
// sibling image, else the nearest preceding one. Pages without an h1 have no
// image. A src that is not a usable URL reference yields no image at all;
// the other sibling is not tried.
func findImage(doc unfurl.Document) (string, bool) {
	h1, ok := doc.Find(unfurl.Tag("h1"))
	if !ok {
		return "", false
	}

	withSrc := unfurl.TagWithAttr("img", "src")
	src, ok := srcOf(h1.NextSibling(withSrc))
	if !ok {
		src, ok = srcOf(h1.PrevSibling(withSrc))
	}
	if !ok || !IsURLReference(src) {
		return "", false
	}
	return src, true
}

// IsURLReference reports whether s is usable as an absolute URL or a
// relative reference. Only a malformed authority is rejected: unbalanced
// brackets, text before or after a bracketed host, or a bracketed host that
// is neither an IPv6 address nor an IPvFuture literal. Paths, queries and
// fragments are accepted as written, so "50%.png" and "10:30.png" pass.
func IsURLReference(s string) bool {
	rest := s
	if i := strings.IndexByte(s, ':'); i > 0 && isScheme(s[:i]) {
		rest = s[i+1:]
	}
	if !strings.HasPrefix(rest, "//") {
		return true
	}

	authority := rest[2:]
	if i := strings.IndexAny(authority, "/?#"); i >= 0 {
		authority = authority[:i]
	}
	if strings.Contains(authority, "[") != strings.Contains(authority, "]") {
		return false
	}

	hostport := authority[strings.LastIndexByte(authority, '@')+1:]
	before, bracketed, ok := strings.Cut(hostport, "[")
	if !ok {
		return true
	}
	if before != "" {
		return false
	}
	host, port, _ := strings.Cut(bracketed, "]")
	if port != "" && !strings.HasPrefix(port, ":") {
		return false
	}
	return validBracketedHost(host)
}

var ipvFuture = regexp.MustCompile(`^v[0-9A-Fa-f]+\..+$`)

func validBracketedHost(host string) bool {
	if strings.HasPrefix(host, "v") {
		return ipvFuture.MatchString(host)
	}
	addr, err := netip.ParseAddr(host)
	return err == nil && addr.Is6()
}

// isScheme reports whether s is a URL scheme: a letter followed by letters,
// digits, '+', '-' or '.'.
func isScheme(s string) bool {
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}

func textOf(el unfurl.Element, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	return nonEmpty(el.Text(), true)
}

func srcOf(el unfurl.Element, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	return nonEmpty(el.Attr("src"))
}

// nonEmpty treats an empty value as not found.
func nonEmpty(s string, ok bool) (string, bool) {
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
