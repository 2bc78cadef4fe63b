package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/unfurl"
)

// Ensure LoggingPreviewService implements unfurl.PreviewService.
var _ unfurl.PreviewService = (*LoggingPreviewService)(nil)

// LoggingPreviewService wraps a PreviewService with debug logging.
type LoggingPreviewService struct {
	next   unfurl.PreviewService
	logger *slog.Logger
}

// NewLoggingPreviewService creates a new LoggingPreviewService.
func NewLoggingPreviewService(next unfurl.PreviewService, logger *slog.Logger) *LoggingPreviewService {
	return &LoggingPreviewService{next: next, logger: logger}
}

// FindPreviewByURL delegates to the wrapped service and logs hits and misses.
func (s *LoggingPreviewService) FindPreviewByURL(ctx context.Context, url string) (preview *unfurl.Preview, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache lookup",
			"url", url,
			"hit", err == nil,
			"duration", time.Since(begin),
			"err", lookupErr(err),
		)
	}(time.Now())
	return s.next.FindPreviewByURL(ctx, url)
}

// SavePreview delegates to the wrapped service and logs the operation.
func (s *LoggingPreviewService) SavePreview(ctx context.Context, preview *unfurl.Preview) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache save",
			"url", preview.URL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SavePreview(ctx, preview)
}

// FindPreviewURLs delegates to the wrapped service and logs the operation.
func (s *LoggingPreviewService) FindPreviewURLs(ctx context.Context, since time.Time) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache scan",
			"since", since,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPreviewURLs(ctx, since)
}

// DeletePreview delegates to the wrapped service and logs the operation.
func (s *LoggingPreviewService) DeletePreview(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache delete",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePreview(ctx, url)
}

// DeletePreviewsBefore delegates to the wrapped service and logs the operation.
func (s *LoggingPreviewService) DeletePreviewsBefore(ctx context.Context, t time.Time) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache purge",
			"before", t,
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePreviewsBefore(ctx, t)
}

// lookupErr hides the expected miss so it doesn't read as a failure.
func lookupErr(err error) error {
	if unfurl.ErrorCode(err) == unfurl.ENOTFOUND {
		return nil
	}
	return err
}
