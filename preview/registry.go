package preview

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/fwojciec/unfurl"
)

var _ unfurl.SummarizerRegistry = (*Registry)(nil)

// Registry manages host-specific summarizers, falling back to a generic
// summarizer for hosts without one. Hosts are matched exactly after
// lower-casing and stripping a leading "www.".
type Registry struct {
	mu          sync.RWMutex
	fallback    unfurl.Summarizer
	summarizers map[string]unfurl.Summarizer
}

// NewRegistry creates a new Registry with the given fallback summarizer.
func NewRegistry(fallback unfurl.Summarizer) *Registry {
	return &Registry{
		fallback:    fallback,
		summarizers: make(map[string]unfurl.Summarizer),
	}
}

// Get returns the summarizer registered for host.
// Returns nil if no summarizer is registered for the host.
func (r *Registry) Get(host string) unfurl.Summarizer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.summarizers[normalizeHost(host)]
}

// GetForURL returns the summarizer registered for the URL's host, or the
// fallback summarizer if there is none or the URL cannot be parsed.
func (r *Registry) GetForURL(rawURL string) unfurl.Summarizer {
	u, err := url.Parse(rawURL)
	if err != nil {
		return r.fallback
	}
	if s := r.Get(u.Hostname()); s != nil {
		return s
	}
	return r.fallback
}

// Register adds a summarizer for a host.
// If a summarizer is already registered for the host, it is replaced.
func (r *Registry) Register(host string, summarizer unfurl.Summarizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summarizers[normalizeHost(host)] = summarizer
}

// List returns all registered hosts in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hosts := make([]string, 0, len(r.summarizers))
	for h := range r.summarizers {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
