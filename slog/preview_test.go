package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/mock"
	unfurlslog "github.com/fwojciec/unfurl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPreviewService_FindPreviewByURL(t *testing.T) {
	t.Parallel()

	t.Run("logs a cache hit", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PreviewService{
			FindPreviewByURLFn: func(ctx context.Context, url string) (*unfurl.Preview, error) {
				return &unfurl.Preview{URL: url}, nil
			},
		}

		svc := unfurlslog.NewLoggingPreviewService(inner, logger)
		p, err := svc.FindPreviewByURL(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/", p.URL)
		output := buf.String()
		assert.Contains(t, output, "cache lookup")
		assert.Contains(t, output, "hit=true")
		assert.Contains(t, output, "err=<nil>")
	})

	t.Run("logs a miss without error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PreviewService{
			FindPreviewByURLFn: func(ctx context.Context, url string) (*unfurl.Preview, error) {
				return nil, unfurl.Errorf(unfurl.ENOTFOUND, "preview not found")
			},
		}

		svc := unfurlslog.NewLoggingPreviewService(inner, logger)
		_, err := svc.FindPreviewByURL(context.Background(), "https://example.com/")

		assert.Equal(t, unfurl.ENOTFOUND, unfurl.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "hit=false")
		assert.Contains(t, output, "err=<nil>")
	})

	t.Run("logs a storage failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PreviewService{
			FindPreviewByURLFn: func(ctx context.Context, url string) (*unfurl.Preview, error) {
				return nil, errors.New("disk I/O error")
			},
		}

		svc := unfurlslog.NewLoggingPreviewService(inner, logger)
		_, err := svc.FindPreviewByURL(context.Background(), "https://example.com/")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk I/O error\"")
	})
}

func TestLoggingPreviewService_SavePreview(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PreviewService{
		SavePreviewFn: func(ctx context.Context, preview *unfurl.Preview) error {
			preview.ID = "abc"
			return nil
		},
	}

	svc := unfurlslog.NewLoggingPreviewService(inner, logger)
	p := &unfurl.Preview{URL: "https://example.com/"}
	err := svc.SavePreview(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, "abc", p.ID)
	output := buf.String()
	assert.Contains(t, output, "cache save")
	assert.Contains(t, output, "url=https://example.com/")
}

func TestLoggingPreviewService_DeletePreviewsBefore(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PreviewService{
		DeletePreviewsBeforeFn: func(ctx context.Context, t time.Time) (int, error) {
			return 3, nil
		},
	}

	svc := unfurlslog.NewLoggingPreviewService(inner, logger)
	n, err := svc.DeletePreviewsBefore(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	output := buf.String()
	assert.Contains(t, output, "cache purge")
	assert.Contains(t, output, "count=3")
}

func TestLoggingPreviewService_DeletePreview(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PreviewService{
		DeletePreviewFn: func(ctx context.Context, url string) error {
			return unfurl.Errorf(unfurl.ENOTFOUND, "preview not found")
		},
	}

	svc := unfurlslog.NewLoggingPreviewService(inner, logger)
	err := svc.DeletePreview(context.Background(), "https://example.com/")

	assert.Equal(t, unfurl.ENOTFOUND, unfurl.ErrorCode(err))
	assert.Contains(t, buf.String(), "cache delete")
}

func TestLoggingPreviewService_FindPreviewURLs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PreviewService{
		FindPreviewURLsFn: func(ctx context.Context, since time.Time) ([]string, error) {
			return []string{"https://a.example/", "https://b.example/"}, nil
		},
	}

	svc := unfurlslog.NewLoggingPreviewService(inner, logger)
	urls, err := svc.FindPreviewURLs(context.Background(), time.Time{})

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	output := buf.String()
	assert.Contains(t, output, "cache scan")
	assert.Contains(t, output, "count=2")
}
