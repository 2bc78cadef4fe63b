package mock

import (
	"context"
	"time"

	"github.com/fwojciec/unfurl"
)

var _ unfurl.PreviewService = (*PreviewService)(nil)

// PreviewService is a mock implementation of unfurl.PreviewService.
type PreviewService struct {
	FindPreviewByURLFn     func(ctx context.Context, url string) (*unfurl.Preview, error)
	SavePreviewFn          func(ctx context.Context, preview *unfurl.Preview) error
	FindPreviewURLsFn      func(ctx context.Context, since time.Time) ([]string, error)
	DeletePreviewFn        func(ctx context.Context, url string) error
	DeletePreviewsBeforeFn func(ctx context.Context, t time.Time) (int, error)
}

func (s *PreviewService) FindPreviewByURL(ctx context.Context, url string) (*unfurl.Preview, error) {
	return s.FindPreviewByURLFn(ctx, url)
}

func (s *PreviewService) SavePreview(ctx context.Context, preview *unfurl.Preview) error {
	return s.SavePreviewFn(ctx, preview)
}

func (s *PreviewService) FindPreviewURLs(ctx context.Context, since time.Time) ([]string, error) {
	return s.FindPreviewURLsFn(ctx, since)
}

func (s *PreviewService) DeletePreview(ctx context.Context, url string) error {
	return s.DeletePreviewFn(ctx, url)
}

func (s *PreviewService) DeletePreviewsBefore(ctx context.Context, t time.Time) (int, error) {
	return s.DeletePreviewsBeforeFn(ctx, t)
}
