package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSavePreview measures cache writes against a file database, the
// workload of a large batch unfurl.
func BenchmarkSavePreview(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewPreviewService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p := &unfurl.Preview{
			URL: fmt.Sprintf("https://example.com/posts/%d", i),
			PagePreview: unfurl.PagePreview{
				Title:       fmt.Sprintf("Post %d", i),
				Description: "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
				Image:       fmt.Sprintf("/images/%d.png", i),
			},
		}
		if err := svc.SavePreview(ctx, p); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFindPreviewByURL measures cache hits on the url_hash index.
func BenchmarkFindPreviewByURL(b *testing.B) {
	const cached = 1000

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewPreviewService(db)
	for i := 0; i < cached; i++ {
		p := &unfurl.Preview{URL: fmt.Sprintf("https://example.com/posts/%d", i)}
		require.NoError(b, svc.SavePreview(ctx, p))
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		url := fmt.Sprintf("https://example.com/posts/%d", i%cached)
		if _, err := svc.FindPreviewByURL(ctx, url); err != nil {
			b.Fatal(err)
		}
	}
}
