package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/preview"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Now        func() time.Time
	Service    *preview.Service
	Summarizer unfurl.Summarizer
	Previews   unfurl.PreviewService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"UNFURL_DB" default:"${default_db}" help:"Preview cache database path"`
	Verbose bool   `short:"v" help:"Log fetches, cache lookups and extraction to stderr"`

	Get   GetCmd   `cmd:"" help:"Show previews for URLs"`
	Parse ParseCmd `cmd:"" help:"Show the preview of a local HTML file"`
	Purge PurgeCmd `cmd:"" help:"Delete cached previews"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Args        []string          `arg:"" name:"url" help:"URLs to preview, or message text with --message"`
	Message     bool              `short:"m" help:"Treat arguments as message text and preview the URLs found in it"`
	Extractor   string            `short:"e" enum:"generic,readability,trafilatura" default:"generic" help:"Extractor (generic, readability, trafilatura)"`
	Parser      string            `enum:"goquery,html" default:"goquery" help:"HTML parser for the generic extractor (goquery, html)"`
	Site        map[string]string `help:"Use another extractor for a host, as host=extractor (repeatable)"`
	JS          bool              `name:"js" help:"Render pages in a headless browser"`
	Timeout     time.Duration     `short:"t" default:"10s" help:"Fetch timeout per page"`
	Concurrency int               `short:"c" default:"4" help:"Concurrent fetch limit"`
	RateLimit   float64           `default:"2" help:"Requests per second per host"`
	TTL         time.Duration     `name:"ttl" default:"24h" help:"How long cached previews stay fresh (0 = forever)"`
	NoCache     bool              `help:"Don't read or write the preview cache"`
	Format      string            `short:"f" enum:"text,json" default:"text" help:"Output format (text, json)"`
	UserAgent   string            `env:"UNFURL_USER_AGENT" help:"User-Agent header for HTTP fetches"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File      string `arg:"" optional:"" default:"-" help:"HTML file, or - for stdin"`
	URL       string `help:"URL shown with the preview (defaults to the file name)"`
	Extractor string `short:"e" enum:"generic,readability,trafilatura" default:"generic" help:"Extractor (generic, readability, trafilatura)"`
	Parser    string `enum:"goquery,html" default:"goquery" help:"HTML parser for the generic extractor (goquery, html)"`
	Format    string `short:"f" enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// PurgeCmd is the "purge" subcommand.
type PurgeCmd struct {
	URLs      []string      `arg:"" optional:"" name:"url" help:"Delete only the previews for these URLs"`
	OlderThan time.Duration `default:"0s" help:"Only delete previews fetched longer ago than this (0 = all)"`
}
