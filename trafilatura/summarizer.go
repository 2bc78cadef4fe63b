package trafilatura

import (
	"fmt"
	"strings"

	"github.com/fwojciec/unfurl"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Summarizer implements unfurl.Summarizer at compile time.
var _ unfurl.Summarizer = (*Summarizer)(nil)

// Summarizer wraps go-trafilatura metadata extraction to build page previews.
type Summarizer struct{}

// NewSummarizer creates a new Summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize maps trafilatura's page metadata to a preview.
func (s *Summarizer) Summarize(rawHTML string) (*unfurl.PagePreview, error) {
	if rawHTML == "" {
		return nil, unfurl.Errorf(unfurl.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}

	return &unfurl.PagePreview{
		Title:       result.Metadata.Title,
		Description: result.Metadata.Description,
		Image:       result.Metadata.Image,
	}, nil
}
