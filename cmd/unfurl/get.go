package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/preview"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	urls := c.Args
	if c.Message {
		urls = unfurl.FindURLs(strings.Join(c.Args, " "))
		if len(urls) == 0 {
			fmt.Fprintln(deps.Stderr, "error: no URLs found in message")
			return unfurl.Errorf(unfurl.EINVALID, "no URLs found in message")
		}
	}

	results := deps.Service.PreviewAll(deps.Ctx, urls, func(e preview.ProgressEvent) {
		if e.Type == preview.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", e.URL, errorMessage(e.Error))
		}
	})

	var failed int
	previews := make([]*unfurl.Preview, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		previews = append(previews, r.Preview)
	}

	if c.Format == "json" {
		if err := writeJSON(deps.Stdout, results); err != nil {
			return err
		}
	} else if len(previews) > 0 {
		fmt.Fprintln(deps.Stdout, unfurl.FormatPreviews(previews))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(results))
	}
	return nil
}
