package unfurl

import "strings"

// Selector matches elements by tag name and, optionally, by an attribute.
type Selector struct {
	// Tag is the element name, compared case-insensitively.
	Tag string

	// Attr, if set, must be present on the element.
	Attr string

	// Value is the required value of Attr when MatchValue is true.
	Value      string
	MatchValue bool
}

// Tag returns a Selector matching elements with the given tag name.
func Tag(tag string) Selector {
	return Selector{Tag: tag}
}

// TagWithAttr returns a Selector matching elements with the given tag name
// that carry attr, whatever its value (including empty).
func TagWithAttr(tag, attr string) Selector {
	return Selector{Tag: tag, Attr: attr}
}

// TagWithAttrValue returns a Selector matching elements with the given tag
// name whose attr equals value.
func TagWithAttrValue(tag, attr, value string) Selector {
	return Selector{Tag: tag, Attr: attr, Value: value, MatchValue: true}
}

// Match reports whether an element with the given tag and attribute lookup
// satisfies the selector.
func (s Selector) Match(tag string, attr func(name string) (string, bool)) bool {
	if !strings.EqualFold(tag, s.Tag) {
		return false
	}
	if s.Attr == "" {
		return true
	}
	v, ok := attr(s.Attr)
	if !ok {
		return false
	}
	return !s.MatchValue || v == s.Value
}

// Document is a read-only parsed HTML tree.
// Implementations must be safe for concurrent reads.
type Document interface {
	// Find returns the first element in document order matching sel.
	Find(sel Selector) (Element, bool)
}

// Element is a single element of a Document.
type Element interface {
	// Text returns the concatenated text of the element and its descendants.
	Text() string

	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// NextSibling returns the nearest following sibling matching sel.
	NextSibling(sel Selector) (Element, bool)

	// PrevSibling returns the nearest preceding sibling matching sel.
	PrevSibling(sel Selector) (Element, bool)

	// FindNext returns the first element after this one in document order
	// matching sel. Descendants of this element count as following it.
	FindNext(sel Selector) (Element, bool)
}

// Parser builds a Document from raw HTML.
type Parser interface {
	// Parse parses HTML into a Document.
	// Returns EINVALID for empty input.
	Parse(html string) (Document, error)
}
