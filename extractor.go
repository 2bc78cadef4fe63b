package unfurl

// SummaryExtractor derives a PagePreview from a parsed document.
type SummaryExtractor interface {
	// Extract never fails; fields that cannot be found are left empty.
	Extract(doc Document) PagePreview
}

// Summarizer derives a PagePreview from raw HTML.
type Summarizer interface {
	// Summarize processes raw HTML and returns its preview.
	Summarize(html string) (*PagePreview, error)
}

// Ensure TreeSummarizer implements Summarizer at compile time.
var _ Summarizer = (*TreeSummarizer)(nil)

// TreeSummarizer is a Summarizer that parses HTML with Parser and runs
// Extractor over the resulting tree.
type TreeSummarizer struct {
	Parser    Parser
	Extractor SummaryExtractor
}

// NewTreeSummarizer creates a new TreeSummarizer.
func NewTreeSummarizer(parser Parser, extractor SummaryExtractor) *TreeSummarizer {
	return &TreeSummarizer{Parser: parser, Extractor: extractor}
}

// Summarize parses html and extracts its preview.
func (s *TreeSummarizer) Summarize(html string) (*PagePreview, error) {
	doc, err := s.Parser.Parse(html)
	if err != nil {
		return nil, err
	}
	preview := s.Extractor.Extract(doc)
	return &preview, nil
}

// SummarizerRegistry selects a Summarizer for a host.
type SummarizerRegistry interface {
	// Get returns the summarizer registered for host.
	// Returns nil if no summarizer is registered for the host.
	Get(host string) Summarizer

	// GetForURL returns the summarizer for the URL's host.
	// Falls back to a generic summarizer if the host has none registered.
	GetForURL(rawURL string) Summarizer

	// Register adds a summarizer for a host.
	Register(host string, summarizer Summarizer)

	// List returns all registered hosts.
	List() []string
}
