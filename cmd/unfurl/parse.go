package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/preview"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	var r io.Reader = deps.Stdin
	name := "stdin"
	if c.File != "" && c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()
		r = f
		name = c.File
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	page, err := deps.Summarizer.Summarize(string(data))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", name, errorMessage(err))
		return err
	}

	url := c.URL
	if url == "" {
		url = name
	}
	p := &unfurl.Preview{URL: url, FetchedAt: deps.Now(), PagePreview: *page}

	if c.Format == "json" {
		return writeJSON(deps.Stdout, []preview.Result{{URL: url, Preview: p}})
	}
	fmt.Fprintln(deps.Stdout, unfurl.FormatPreviews([]*unfurl.Preview{p}))
	return nil
}
