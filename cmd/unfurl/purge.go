package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/unfurl"
)

// Run executes the purge command.
func (c *PurgeCmd) Run(deps *Dependencies) error {
	if c.OlderThan < 0 {
		fmt.Fprintln(deps.Stderr, "error: --older-than must not be negative")
		return unfurl.Errorf(unfurl.EINVALID, "--older-than must not be negative")
	}

	if len(c.URLs) > 0 {
		return c.deleteURLs(deps)
	}

	cutoff := deps.Now().Add(-c.OlderThan)
	if c.OlderThan == 0 {
		// Fetch times are stored at second precision; include this second.
		cutoff = cutoff.Add(time.Second)
	}

	n, err := deps.Previews.DeletePreviewsBefore(deps.Ctx, cutoff)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	printDeleted(deps, n)
	return nil
}

// deleteURLs removes the cached previews for the given URLs. URLs without a
// cached preview are reported and skipped.
func (c *PurgeCmd) deleteURLs(deps *Dependencies) error {
	var n int
	for _, url := range c.URLs {
		err := deps.Previews.DeletePreview(deps.Ctx, url)
		switch {
		case err == nil:
			n++
		case unfurl.ErrorCode(err) == unfurl.ENOTFOUND:
			fmt.Fprintf(deps.Stderr, "not cached: %s\n", url)
		default:
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			return err
		}
	}

	printDeleted(deps, n)
	return nil
}

func printDeleted(deps *Dependencies, n int) {
	if n == 1 {
		fmt.Fprintln(deps.Stdout, "Deleted 1 cached preview")
	} else {
		fmt.Fprintf(deps.Stdout, "Deleted %d cached previews\n", n)
	}
}
