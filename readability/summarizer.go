// Package readability summarizes pages with go-readability, which scores
// content blocks the way Firefox Reader View does. It suits article pages
// whose first heading is not the article title.
package readability

import (
	"strings"

	"github.com/fwojciec/unfurl"
	"github.com/go-shiori/go-readability"
)

// Ensure Summarizer implements unfurl.Summarizer at compile time.
var _ unfurl.Summarizer = (*Summarizer)(nil)

// Summarizer wraps go-readability to build page previews.
type Summarizer struct{}

// NewSummarizer creates a new Summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize maps the article title, excerpt and lead image to a preview.
func (s *Summarizer) Summarize(rawHTML string) (*unfurl.PagePreview, error) {
	if rawHTML == "" {
		return nil, unfurl.Errorf(unfurl.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &unfurl.PagePreview{
		Title:       article.Title,
		Description: article.Excerpt,
		Image:       article.Image,
	}, nil
}
