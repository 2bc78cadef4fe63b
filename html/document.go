// Package html provides an implementation of unfurl.Document over the
// golang.org/x/net/html node tree, without any selector engine.
package html

import (
	"strings"

	"github.com/fwojciec/unfurl"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ unfurl.Parser   = (*Parser)(nil)
	_ unfurl.Document = (*Document)(nil)
	_ unfurl.Element  = (*Element)(nil)
)

// Parser parses HTML with golang.org/x/net/html.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses HTML into a Document.
func (p *Parser) Parse(rawHTML string) (unfurl.Document, error) {
	if rawHTML == "" {
		return nil, unfurl.Errorf(unfurl.EINVALID, "empty HTML input")
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "failed to parse HTML: %v", err)
	}

	return NewDocument(root), nil
}

// Document adapts a parsed *html.Node tree to unfurl.Document.
type Document struct {
	root *html.Node
}

// NewDocument wraps the root node of a parsed tree.
func NewDocument(root *html.Node) *Document {
	return &Document{root: root}
}

// Find returns the first element in document order matching sel.
func (d *Document) Find(sel unfurl.Selector) (unfurl.Element, bool) {
	for n := d.root; n != nil; n = following(n) {
		if matches(n, sel) {
			return &Element{node: n}, true
		}
	}
	return nil, false
}

// Element wraps a single element node.
type Element struct {
	node *html.Node
}

// Text returns the concatenated text of the element and its descendants.
func (e *Element) Text() string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(e.node)
	return sb.String()
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return attr(e.node, name)
}

// NextSibling returns the nearest following sibling element matching sel.
func (e *Element) NextSibling(sel unfurl.Selector) (unfurl.Element, bool) {
	for n := e.node.NextSibling; n != nil; n = n.NextSibling {
		if matches(n, sel) {
			return &Element{node: n}, true
		}
	}
	return nil, false
}

// PrevSibling returns the nearest preceding sibling element matching sel.
func (e *Element) PrevSibling(sel unfurl.Selector) (unfurl.Element, bool) {
	for n := e.node.PrevSibling; n != nil; n = n.PrevSibling {
		if matches(n, sel) {
			return &Element{node: n}, true
		}
	}
	return nil, false
}

// FindNext returns the first element after this one in document order
// matching sel, descending into children before moving on to siblings.
func (e *Element) FindNext(sel unfurl.Selector) (unfurl.Element, bool) {
	for n := following(e.node); n != nil; n = following(n) {
		if matches(n, sel) {
			return &Element{node: n}, true
		}
	}
	return nil, false
}

// following returns the node after n in a preorder walk of the tree.
func following(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

func matches(n *html.Node, sel unfurl.Selector) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return sel.Match(n.Data, func(name string) (string, bool) {
		return attr(n, name)
	})
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
