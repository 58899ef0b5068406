package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/crawl"
	"github.com/scrapedown/scrapedown/goquery"
	sdhttp "github.com/scrapedown/scrapedown/http"
	"github.com/scrapedown/scrapedown/rod"
	sdslog "github.com/scrapedown/scrapedown/slog"
	"github.com/scrapedown/scrapedown/sqlite"
	"github.com/scrapedown/scrapedown/trafilatura"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService scrapedown.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
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
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scrapedown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scrapedown --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SCRAPEDOWN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RunService = sqlite.NewRunService(m.DB)
	deps.DB = m.DB
	deps.Runs = m.RunService
	deps.Sitemaps = sdslog.NewLoggingSitemapService(sdhttp.NewSitemapService(nil), deps.Logger)

	return kongCtx.Run(deps)
}

// newFetcher builds the fetch strategy for a command: plain HTTP by
// default, a headless browser when rendering was requested. The caller owns
// Close.
func newFetcher(deps *Dependencies, render bool, cfg scrapedown.CrawlConfig) (scrapedown.Fetcher, error) {
	var fetcher scrapedown.Fetcher
	if render {
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = sdhttp.NewFetcher(sdhttp.WithTimeout(cfg.RequestTimeout))
	}
	return sdslog.NewLoggingFetcher(fetcher, deps.Logger), nil
}

// newCrawler wires the two-stage pipeline for the deep command.
func newCrawler(deps *Dependencies, cfg scrapedown.CrawlConfig, useSitemap bool) (*crawl.Crawler, scrapedown.Fetcher, error) {
	fetcher, err := newFetcher(deps, cfg.RenderMode == scrapedown.RenderBrowser, cfg)
	if err != nil {
		return nil, nil, err
	}

	c := &crawl.Crawler{
		Fetcher:   fetcher,
		Links:     goquery.NewLinkExtractor(),
		Extractor: goquery.NewContentExtractor(goquery.WithFallback(trafilatura.NewExtractor())),
		Gate:      crawl.NewHostGate(cfg.RequestDelay),
		Config:    cfg,
	}
	if useSitemap {
		c.Sitemaps = deps.Sitemaps
	}
	return c, fetcher, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SCRAPEDOWN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "scrapedown.db"
	}
	dir := filepath.Join(home, ".scrapedown")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "scrapedown.db")
}
