package mock

import "github.com/fwojciec/unfurl"

// Compile-time interface verification.
var (
	_ unfurl.Parser             = (*Parser)(nil)
	_ unfurl.SummaryExtractor   = (*SummaryExtractor)(nil)
	_ unfurl.Summarizer         = (*Summarizer)(nil)
	_ unfurl.SummarizerRegistry = (*SummarizerRegistry)(nil)
)

// Parser is a mock implementation of unfurl.Parser.
type Parser struct {
	ParseFn func(html string) (unfurl.Document, error)
}

func (p *Parser) Parse(html string) (unfurl.Document, error) {
	return p.ParseFn(html)
}

// SummaryExtractor is a mock implementation of unfurl.SummaryExtractor.
type SummaryExtractor struct {
	ExtractFn func(doc unfurl.Document) unfurl.PagePreview
}

func (e *SummaryExtractor) Extract(doc unfurl.Document) unfurl.PagePreview {
	return e.ExtractFn(doc)
}

// Summarizer is a mock implementation of unfurl.Summarizer.
type Summarizer struct {
	SummarizeFn func(html string) (*unfurl.PagePreview, error)
}

func (s *Summarizer) Summarize(html string) (*unfurl.PagePreview, error) {
	return s.SummarizeFn(html)
}

// SummarizerRegistry is a mock implementation of unfurl.SummarizerRegistry.
type SummarizerRegistry struct {
	GetFn       func(host string) unfurl.Summarizer
	GetForURLFn func(rawURL string) unfurl.Summarizer
	RegisterFn  func(host string, summarizer unfurl.Summarizer)
	ListFn      func() []string
}

func (r *SummarizerRegistry) Get(host string) unfurl.Summarizer {
	return r.GetFn(host)
}

func (r *SummarizerRegistry) GetForURL(rawURL string) unfurl.Summarizer {
	return r.GetForURLFn(rawURL)
}

func (r *SummarizerRegistry) Register(host string, summarizer unfurl.Summarizer) {
	r.RegisterFn(host, summarizer)
}

func (r *SummarizerRegistry) List() []string {
	return r.ListFn()
}

var _ unfurl.Document = (*Document)(nil)

// Document is a mock implementation of unfurl.Document.
type Document struct {
	FindFn func(sel unfurl.Selector) (unfurl.Element, bool)
}

func (d *Document) Find(sel unfurl.Selector) (unfurl.Element, bool) {
	return d.FindFn(sel)
}
