// Package goquery provides an implementation of unfurl.Document backed by
// github.com/PuerkitoBio/goquery selections.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/unfurl"
)

// Compile-time interface verification.
var (
	_ unfurl.Parser   = (*Parser)(nil)
	_ unfurl.Document = (*Document)(nil)
	_ unfurl.Element  = (*Element)(nil)
)

// Parser parses HTML into goquery-backed documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses HTML into a Document.
func (p *Parser) Parse(html string) (unfurl.Document, error) {
	if html == "" {
		return nil, unfurl.Errorf(unfurl.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "failed to parse HTML: %v", err)
	}

	return NewDocument(doc), nil
}

// Document adapts a goquery.Document to unfurl.Document.
// It is safe for concurrent use as long as the underlying tree is not modified.
type Document struct {
	doc *goquery.Document

	// all holds every element in document order.
	all *goquery.Selection
}

// NewDocument wraps an already parsed goquery document.
func NewDocument(doc *goquery.Document) *Document {
	return &Document{
		doc: doc,
		all: doc.Find("*"),
	}
}

// Find returns the first element in document order matching sel.
func (d *Document) Find(sel unfurl.Selector) (unfurl.Element, bool) {
	return d.wrap(d.all.FilterFunction(matcher(sel)).First())
}

func (d *Document) wrap(s *goquery.Selection) (unfurl.Element, bool) {
	if s.Length() == 0 {
		return nil, false
	}
	return &Element{doc: d, sel: s}, true
}

// Element is a single element of a Document.
type Element struct {
	doc *Document
	sel *goquery.Selection
}

// Text returns the combined text of the element and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// NextSibling returns the nearest following sibling element matching sel.
func (e *Element) NextSibling(sel unfurl.Selector) (unfurl.Element, bool) {
	match := matcher(sel)
	for s := e.sel.Next(); s.Length() > 0; s = s.Next() {
		if match(0, s) {
			return e.doc.wrap(s)
		}
	}
	return nil, false
}

// PrevSibling returns the nearest preceding sibling element matching sel.
func (e *Element) PrevSibling(sel unfurl.Selector) (unfurl.Element, bool) {
	match := matcher(sel)
	for s := e.sel.Prev(); s.Length() > 0; s = s.Prev() {
		if match(0, s) {
			return e.doc.wrap(s)
		}
	}
	return nil, false
}

// FindNext returns the first element after this one in document order
// matching sel, descending into children before moving on to siblings.
func (e *Element) FindNext(sel unfurl.Selector) (unfurl.Element, bool) {
	all := e.doc.all
	idx := all.IndexOfSelection(e.sel)
	if idx < 0 {
		return nil, false
	}
	following := all.Slice(idx+1, all.Length())
	return e.doc.wrap(following.FilterFunction(matcher(sel)).First())
}

// matcher adapts an unfurl.Selector to a goquery filter function.
func matcher(sel unfurl.Selector) func(int, *goquery.Selection) bool {
	return func(_ int, s *goquery.Selection) bool {
		return sel.Match(goquery.NodeName(s), s.Attr)
	}
}
