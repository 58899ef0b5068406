package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Runs     scrapedown.RunService
	Sitemaps scrapedown.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches and collaborator calls to stderr"`

	Scrape ScrapeCmd `cmd:"" help:"Extract content from a single page"`
	Deep   DeepCmd   `cmd:"" help:"Crawl a site breadth-first and assemble one document"`
	Enrich EnrichCmd `cmd:"" help:"Enrich business listings with website contact data"`
	Runs   RunsCmd   `cmd:"" help:"List or delete stored run history"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL     string `arg:"" help:"Page URL"`
	Extract string `short:"e" default:"generic" help:"Extraction intent (headlines, links, articles, emails, phones)"`
	Render  bool   `short:"r" help:"Render the page in a headless browser first"`
	Timeout int    `default:"15" help:"Fetch timeout in seconds"`
}

// DeepCmd is the "deep" subcommand.
type DeepCmd struct {
	URL      string `help:"Seed URL" xor:"seed" required:""`
	Query    string `help:"Listing query seed (requires --location and --listings)" xor:"seed"`
	Location string `help:"Location for query seeds"`
	Listings string `help:"JSON file of candidate business listings for query seeds"`

	Filter      string `short:"F" help:"Only admit URLs matching this regex"`
	MaxDepth    int    `default:"2" help:"Maximum link hops from the seed"`
	MaxPages    int    `default:"50" help:"Maximum pages fetched, seed included"`
	Delay       int    `default:"1500" help:"Per-host politeness delay in milliseconds"`
	Timeout     int    `default:"15" help:"Fetch timeout in seconds"`
	Concurrency int    `short:"c" default:"1" help:"Concurrent extraction workers"`
	Scope       string `help:"Override the domain links are scoped to ('*' disables scoping)"`
	Sitemap     bool   `help:"Seed the frontier from the site's sitemap when available"`
	Render      bool   `short:"r" help:"Render pages in a headless browser"`
	Sort        string `default:"discovery" enum:"discovery,title" help:"Unit ordering (discovery, title)"`
	Format      string `short:"f" default:"markdown" enum:"markdown,json" help:"Output format (markdown, json)"`
	Out         string `short:"o" help:"Output directory (default: temp directory)"`
	NoSave      bool   `help:"Skip recording the run in history"`
}

// EnrichCmd is the "enrich" subcommand.
type EnrichCmd struct {
	Query    string `arg:"" help:"Business type to search for"`
	Location string `arg:"" help:"City or area"`
	Listings string `short:"l" required:"" help:"JSON file of candidate business listings"`
	Limit    int    `default:"20" help:"Maximum listings to enrich"`
	Delay    int    `default:"1500" help:"Per-host politeness delay in milliseconds"`
	Timeout  int    `default:"15" help:"Fetch timeout in seconds"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Delete string `help:"Delete the run with this ID"`
	Pages  string `help:"Show the stored pages of the run with this ID"`
	Limit  int    `default:"20" help:"Maximum runs to list"`
}
