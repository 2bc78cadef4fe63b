// Package preview orchestrates link previews: it validates URLs, consults
// the cache, fetches pages politely and summarizes them.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs previewed in parallel by PreviewAll.
const DefaultConcurrency = 4

// Service produces previews for URLs.
type Service struct {
	Fetcher     unfurl.Fetcher
	Summarizers unfurl.SummarizerRegistry

	// Previews caches results. Nil disables the cache.
	Previews unfurl.PreviewService

	// RateLimiter throttles fetches per host. Nil disables throttling.
	RateLimiter unfurl.DomainLimiter

	Logger *slog.Logger

	// TTL is how long a cached preview stays fresh. Zero means forever.
	TTL time.Duration

	Concurrency int

	// RetryDelays overrides DefaultRetryDelays when non-nil.
	RetryDelays []time.Duration

	// Cached holds the URLs that may have a fresh preview in Previews. A URL
	// the filter rules out skips the cache read. Nil means every lookup
	// reads the cache. See LoadCacheFilter.
	Cached *bloom.Filter

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of previewing a single URL.
type Result struct {
	URL     string
	Preview *unfurl.Preview
	Cached  bool
	Err     error
}

// ProgressEvent reports progress during PreviewAll.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// Preview returns the preview for rawURL, from the cache when a fresh entry
// exists. Returns EINVALID if rawURL is not an absolute http(s) URL.
func (s *Service) Preview(ctx context.Context, rawURL string) (*unfurl.Preview, error) {
	p, _, err := s.preview(ctx, rawURL)
	return p, err
}

func (s *Service) preview(ctx context.Context, rawURL string) (*unfurl.Preview, bool, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, false, err
	}

	if cached, ok := s.lookup(ctx, rawURL); ok {
		return cached, true, nil
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, false, err
		}
	}

	var html string
	if s.RetryDelays == nil {
		html, err = FetchWithRetry(ctx, rawURL, s.Fetcher.Fetch, s.logRetry)
	} else {
		html, err = FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, s.logRetry, s.RetryDelays)
	}
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	page, err := s.Summarizers.GetForURL(rawURL).Summarize(html)
	if err != nil {
		return nil, false, fmt.Errorf("summarize %s: %w", rawURL, err)
	}

	p := &unfurl.Preview{
		URL:         rawURL,
		FetchedAt:   s.now(),
		PagePreview: *page,
	}

	if s.Previews != nil {
		if err := s.Previews.SavePreview(ctx, p); err != nil {
			s.logger().Warn("cache write failed", "url", rawURL, "err", err)
		} else if s.Cached != nil {
			s.Cached.Add(rawURL)
		}
	}

	return p, false, nil
}

// lookup returns a fresh cached preview. Cache failures count as misses.
func (s *Service) lookup(ctx context.Context, rawURL string) (*unfurl.Preview, bool) {
	if s.Previews == nil {
		return nil, false
	}
	if s.Cached != nil && !s.Cached.Test(rawURL) {
		return nil, false
	}
	p, err := s.Previews.FindPreviewByURL(ctx, rawURL)
	if err != nil {
		if unfurl.ErrorCode(err) != unfurl.ENOTFOUND {
			s.logger().Warn("cache read failed", "url", rawURL, "err", err)
		}
		return nil, false
	}
	if s.TTL > 0 && s.now().Sub(p.FetchedAt) >= s.TTL {
		return nil, false
	}
	return p, true
}

// LoadCacheFilter builds Cached from the previews in Previews that are still
// fresh. It is a no-op when the cache is disabled.
func (s *Service) LoadCacheFilter(ctx context.Context) error {
	if s.Previews == nil {
		return nil
	}
	var since time.Time
	if s.TTL > 0 {
		since = s.now().Add(-s.TTL)
	}
	urls, err := s.Previews.FindPreviewURLs(ctx, since)
	if err != nil {
		return fmt.Errorf("load cache filter: %w", err)
	}

	// Leave room for the previews saved during this run.
	f := bloom.NewFilter(uint(len(urls))+cacheFilterHeadroom, bloom.DefaultFalsePositiveRate)
	for _, u := range urls {
		f.Add(u)
	}
	s.Cached = f
	s.logger().Debug("cache filter loaded", "urls", len(urls), "estimated", f.EstimatedCount())
	return nil
}

const cacheFilterHeadroom = 1024

// PreviewAll previews urls concurrently and returns one result per input
// URL, in input order. Repeated URLs are previewed once and share a result.
// Failures are reported per result and never stop the batch.
func (s *Service) PreviewAll(ctx context.Context, urls []string, progress ProgressFunc) []Result {
	results := make([]Result, len(urls))
	if len(urls) == 0 {
		return results
	}

	firstIndex := make(map[string]int, len(urls))
	duplicateOf := make(map[int]int)
	var unique []int
	for i, u := range urls {
		if j, ok := firstIndex[u]; ok {
			duplicateOf[i] = j
			continue
		}
		firstIndex[u] = i
		unique = append(unique, i)
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(unique)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type indexed struct {
		pos    int
		result Result
	}
	resultCh := make(chan indexed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, i := range unique {
			g.Go(func() error {
				p, cached, err := s.preview(gctx, urls[i])
				resultCh <- indexed{pos: i, result: Result{URL: urls[i], Preview: p, Cached: cached, Err: err}}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed int
	for r := range resultCh {
		results[r.pos] = r.result
		completed++
		if progress == nil {
			continue
		}
		if r.result.Err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, URL: r.result.URL, Error: r.result.Err})
		} else {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: r.result.URL})
		}
	}

	for i, j := range duplicateOf {
		results[i] = results[j]
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return results
}

// ValidateURL parses rawURL and checks that it is an absolute http(s) URL
// with a host.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, unfurl.Errorf(unfurl.EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, unfurl.Errorf(unfurl.EINVALID, "URL %q has no host", rawURL)
	}
	return u, nil
}

func (s *Service) logRetry(url string, attempt int, err error) {
	s.logger().Debug("retrying fetch", "url", url, "attempt", attempt, "err", err)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
