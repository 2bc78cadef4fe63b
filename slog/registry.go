package slog

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/unfurl"
)

// Ensure LoggingRegistry implements unfurl.SummarizerRegistry.
var _ unfurl.SummarizerRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a SummarizerRegistry with debug logging for
// summarizer selection.
type LoggingRegistry struct {
	next   unfurl.SummarizerRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next unfurl.SummarizerRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(host string) unfurl.Summarizer {
	return r.next.Get(host)
}

// GetForURL logs whether the URL's host has a dedicated summarizer and
// returns the wrapped registry's choice.
func (r *LoggingRegistry) GetForURL(rawURL string) unfurl.Summarizer {
	begin := time.Now()
	host := "(invalid)"
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Hostname()
	}
	summarizer := r.next.GetForURL(rawURL)
	r.logger.Info("summarizer selection",
		"url", rawURL,
		"host", host,
		"registered", r.next.Get(host) != nil,
		"duration", time.Since(begin),
	)
	return summarizer
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(host string, summarizer unfurl.Summarizer) {
	r.next.Register(host, summarizer)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []string {
	return r.next.List()
}
