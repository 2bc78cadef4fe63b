package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/unfurl"
)

// Ensure LoggingSummarizer implements unfurl.Summarizer.
var _ unfurl.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with debug logging.
type LoggingSummarizer struct {
	next   unfurl.Summarizer
	name   string
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer. The name identifies
// the summarizer in log lines.
func NewLoggingSummarizer(next unfurl.Summarizer, name string, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, name: name, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs which fields were found.
func (s *LoggingSummarizer) Summarize(html string) (preview *unfurl.PagePreview, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"summarizer", s.name,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		}
		if preview != nil {
			attrs = append(attrs,
				"title", preview.Title != "",
				"description", preview.Description != "",
				"image", preview.Image != "",
			)
		}
		s.logger.Info("summarize", attrs...)
	}(time.Now())
	return s.next.Summarize(html)
}
