package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/generic"
	"github.com/fwojciec/unfurl/goquery"
	"github.com/fwojciec/unfurl/html"
	unfurlhttp "github.com/fwojciec/unfurl/http"
	"github.com/fwojciec/unfurl/preview"
	"github.com/fwojciec/unfurl/readability"
	"github.com/fwojciec/unfurl/rod"
	unfurlslog "github.com/fwojciec/unfurl/slog"
	"github.com/fwojciec/unfurl/sqlite"
	"github.com/fwojciec/unfurl/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Input for commands that read HTML from stdin.
	Stdin io.Reader

	// SQLite database used by the preview cache.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("unfurl"),
		kong.Description("Show link previews (title, description, image) for web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"default_db": defaultDBPath()},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'unfurl --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	cmd := strings.Fields(kongCtx.Command())[0]

	switch cmd {
	case "get":
		if err := m.wireGet(deps, cli, logger); err != nil {
			return err
		}
		defer deps.Service.Fetcher.Close()
	case "parse":
		summarizer, err := newSummarizer(cli.Parse.Extractor, cli.Parse.Parser)
		if err != nil {
			return err
		}
		deps.Summarizer = unfurlslog.NewLoggingSummarizer(summarizer, cli.Parse.Extractor, logger)
	case "purge":
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		deps.Previews = unfurlslog.NewLoggingPreviewService(sqlite.NewPreviewService(m.DB), logger)
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wireGet builds the preview service for the get command.
func (m *Main) wireGet(deps *Dependencies, cli *CLI, logger *slog.Logger) error {
	c := &cli.Get

	fallback, err := newSummarizer(c.Extractor, c.Parser)
	if err != nil {
		return err
	}
	registry := preview.NewRegistry(unfurlslog.NewLoggingSummarizer(fallback, c.Extractor, logger))
	for host, name := range c.Site {
		s, err := newSummarizer(name, c.Parser)
		if err != nil {
			return fmt.Errorf("site %s: %w", host, err)
		}
		registry.Register(host, unfurlslog.NewLoggingSummarizer(s, name, logger))
	}

	var fetcher unfurl.Fetcher
	if c.JS {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		opts := []unfurlhttp.Option{unfurlhttp.WithTimeout(c.Timeout)}
		if c.UserAgent != "" {
			opts = append(opts, unfurlhttp.WithUserAgent(c.UserAgent))
		}
		fetcher = unfurlhttp.NewFetcher(opts...)
	}

	svc := &preview.Service{
		Fetcher:     unfurlslog.NewLoggingFetcher(fetcher, logger),
		Summarizers: unfurlslog.NewLoggingRegistry(registry, logger),
		RateLimiter: preview.NewDomainLimiter(c.RateLimit),
		Logger:      logger,
		TTL:         c.TTL,
		Concurrency: c.Concurrency,
	}

	if !c.NoCache {
		if err := m.openDB(cli.DB, deps.Stderr); err != nil {
			fetcher.Close()
			return err
		}
		svc.Previews = unfurlslog.NewLoggingPreviewService(sqlite.NewPreviewService(m.DB), logger)
		if err := svc.LoadCacheFilter(deps.Ctx); err != nil {
			logger.Warn("cache filter disabled", "err", err)
		}
	}

	deps.Service = svc
	return nil
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set UNFURL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// newSummarizer returns the summarizer for an extractor name. The parser
// name selects the HTML tree implementation used by the generic extractor.
func newSummarizer(extractor, parser string) (unfurl.Summarizer, error) {
	switch extractor {
	case "", "generic":
		switch parser {
		case "", "goquery":
			return unfurl.NewTreeSummarizer(goquery.NewParser(), generic.NewExtractor()), nil
		case "html":
			return unfurl.NewTreeSummarizer(html.NewParser(), generic.NewExtractor()), nil
		}
		return nil, unfurl.Errorf(unfurl.EINVALID, "unknown parser %q", parser)
	case "readability":
		return readability.NewSummarizer(), nil
	case "trafilatura":
		return trafilatura.NewSummarizer(), nil
	}
	return nil, unfurl.Errorf(unfurl.EINVALID, "unknown extractor %q", extractor)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "previews.db"
	}
	return filepath.Join(home, ".unfurl", "previews.db")
}
