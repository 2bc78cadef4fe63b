package unfurl

import (
	"context"
	"time"
)

// PagePreview is the summary of a page shown under a link.
// An empty field means the value was not found; found values are never empty.
type PagePreview struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Image is the src of a representative image, verbatim.
	// It may be relative to the page URL.
	Image string `json:"image,omitempty"`
}

// IsEmpty reports whether no field was found.
func (p PagePreview) IsEmpty() bool {
	return p.Title == "" && p.Description == "" && p.Image == ""
}

// Preview is a PagePreview for a specific URL, as stored in the cache.
type Preview struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetchedAt"`

	PagePreview
}

// Validate returns an error if the preview contains invalid fields.
func (p *Preview) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "preview URL required")
	}
	return nil
}

// PreviewService represents a cache of previews keyed by URL.
type PreviewService interface {
	// FindPreviewByURL retrieves the cached preview for a URL.
	// Returns ENOTFOUND if no preview is cached.
	FindPreviewByURL(ctx context.Context, url string) (*Preview, error)

	// SavePreview stores a preview, replacing any existing preview for the
	// same URL. ID is set on the passed preview, and FetchedAt too if zero.
	SavePreview(ctx context.Context, preview *Preview) error

	// FindPreviewURLs returns the URLs of previews fetched at or after since.
	FindPreviewURLs(ctx context.Context, since time.Time) ([]string, error)

	// DeletePreview removes the cached preview for a URL.
	// Returns ENOTFOUND if no preview is cached.
	DeletePreview(ctx context.Context, url string) error

	// DeletePreviewsBefore removes previews fetched before t and returns
	// the number removed.
	DeletePreviewsBefore(ctx context.Context, t time.Time) (int, error)
}
