package main

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/preview"
)

// jsonPreview is the JSON output for one URL.
type jsonPreview struct {
	URL string `json:"url"`
	unfurl.PagePreview
	Cached bool   `json:"cached,omitempty"`
	Error  string `json:"error,omitempty"`
}

func writeJSON(w io.Writer, results []preview.Result) error {
	out := make([]jsonPreview, 0, len(results))
	for _, r := range results {
		jp := jsonPreview{URL: r.URL, Cached: r.Cached}
		if r.Err != nil {
			jp.Error = errorMessage(r.Err)
		} else {
			jp.PagePreview = r.Preview.PagePreview
		}
		out = append(out, jp)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// errorMessage returns the message of application errors and the full
// text of anything else.
func errorMessage(err error) string {
	if unfurl.ErrorCode(err) == unfurl.EINTERNAL {
		return err.Error()
	}
	return unfurl.ErrorMessage(err)
}
