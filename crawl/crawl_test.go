package crawl_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/crawl"
	"github.com/scrapedown/scrapedown/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site is a canned set of pages: URL to markup, plus the links each page
// exposes. The extractor derives the title from the markup verbatim.
type site struct {
	pages map[string]string
	links map[string][]string
}

func newSiteCrawler(s site, cfg scrapedown.CrawlConfig) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if err := ctx.Err(); err != nil {
					return "", err
				}
				html, ok := s.pages[url]
				if !ok {
					return "", scrapedown.Errorf(scrapedown.ENOTFOUND, "HTTP 404 for %s", url)
				}
				return html, nil
			},
		},
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]string, error) {
				return s.links[baseURL], nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html, url string) (*scrapedown.PageRecord, error) {
				return &scrapedown.PageRecord{
					URL:         url,
					Title:       html,
					ContentHTML: "<p>" + html + "</p>",
				}, nil
			},
		},
		Config:      cfg,
		RetryDelays: []time.Duration{},
	}
}

func testConfig() scrapedown.CrawlConfig {
	cfg := scrapedown.DefaultCrawlConfig()
	cfg.RequestDelay = 0
	return cfg
}

func urlSeed(value string) scrapedown.SeedSpec {
	return scrapedown.SeedSpec{Kind: scrapedown.SeedURL, Value: value}
}

func TestCrawler_Run(t *testing.T) {
	t.Parallel()

	t.Run("assembles discovered pages in discovery order", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":       "Home",
				"https://example.com/one":   "One",
				"https://example.com/two":   "Two",
				"https://example.com/three": "Three",
			},
			links: map[string][]string{
				"https://example.com": {
					"https://example.com/one",
					"https://example.com/two",
					"https://example.com/three",
				},
			},
		}
		cfg := testConfig()
		cfg.MaxDepth = 1

		result, err := newSiteCrawler(s, cfg).Run(context.Background(), urlSeed("https://example.com"), nil)

		require.NoError(t, err)
		assert.Equal(t, 4, result.Attempted)
		assert.Equal(t, 4, result.Succeeded)
		assert.Empty(t, result.Failed)

		require.NotNil(t, result.Artifact)
		require.Len(t, result.Artifact.Units, 4)
		assert.Equal(t, "example.com", result.Artifact.Title)

		var titles []string
		for _, unit := range result.Artifact.Units {
			titles = append(titles, unit.Page.Title)
		}
		assert.Equal(t, []string{"Home", "One", "Two", "Three"}, titles)

		for i, entry := range result.Artifact.TOC {
			assert.Equal(t, i+1, entry.Ordinal)
		}
	})

	t.Run("filter narrows the frontier", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":            "Home",
				"https://example.com/docs/alpha": "Alpha",
				"https://example.com/docs/beta":  "Beta",
			},
			links: map[string][]string{
				"https://example.com": {
					"https://example.com/docs/alpha",
					"https://example.com/docs/beta",
					"https://example.com/blog/noise",
					"https://example.com/about",
				},
			},
		}
		cfg := testConfig()
		cfg.MaxDepth = 1
		cfg.FilterPattern = `/docs/`

		result, err := newSiteCrawler(s, cfg).Run(context.Background(), urlSeed("https://example.com"), nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Attempted)
		assert.Equal(t, 3, result.Succeeded)
	})

	t.Run("max pages bounds the run including the seed", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":   "Home",
				"https://example.com/1": "P1",
				"https://example.com/2": "P2",
				"https://example.com/3": "P3",
			},
			links: map[string][]string{
				"https://example.com": {
					"https://example.com/1",
					"https://example.com/2",
					"https://example.com/3",
				},
			},
		}
		cfg := testConfig()
		cfg.MaxDepth = 1
		cfg.MaxPages = 2

		result, err := newSiteCrawler(s, cfg).Run(context.Background(), urlSeed("https://example.com"), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Attempted)
	})

	t.Run("page failures are isolated and counted", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":      "Home",
				"https://example.com/good": "Good",
				// /missing is absent: the fetch 404s.
			},
			links: map[string][]string{
				"https://example.com": {
					"https://example.com/good",
					"https://example.com/missing",
				},
			},
		}
		cfg := testConfig()
		cfg.MaxDepth = 1

		result, err := newSiteCrawler(s, cfg).Run(context.Background(), urlSeed("https://example.com"), nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Attempted)
		assert.Equal(t, 2, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "https://example.com/missing", result.Failed[0].URL)
		assert.Contains(t, result.Failed[0].Reason, "404")
		require.NotNil(t, result.Artifact)
		assert.Len(t, result.Artifact.Units, 2)
	})

	t.Run("unreachable seed aborts before stage two", func(t *testing.T) {
		t.Parallel()

		s := site{pages: map[string]string{}}
		cfg := testConfig()

		result, err := newSiteCrawler(s, cfg).Run(context.Background(), urlSeed("https://example.com"), nil)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, scrapedown.EUNAVAILABLE, scrapedown.ErrorCode(err))
		assert.Contains(t, scrapedown.ErrorMessage(err), "seed unreachable")
	})

	t.Run("zero survivors still reports counts", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":      "Home",
				"https://example.com/next": "Next",
			},
			links: map[string][]string{
				"https://example.com": {"https://example.com/next"},
			},
		}
		cfg := testConfig()
		cfg.MaxDepth = 1

		c := newSiteCrawler(s, cfg)
		c.Extractor = &mock.Extractor{
			ExtractFn: func(html, url string) (*scrapedown.PageRecord, error) {
				return nil, scrapedown.Errorf(scrapedown.EUNPROCESSABLE, "no usable content")
			},
		}

		result, err := c.Run(context.Background(), urlSeed("https://example.com"), nil)

		require.Error(t, err)
		assert.Equal(t, scrapedown.EEMPTY, scrapedown.ErrorCode(err))
		require.NotNil(t, result)
		assert.Equal(t, 2, result.Attempted)
		assert.Equal(t, 0, result.Succeeded)
		assert.Len(t, result.Failed, 2)
		assert.Nil(t, result.Artifact)
	})

	t.Run("cancellation keeps already extracted pages", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":   "Home",
				"https://example.com/a": "A",
				"https://example.com/b": "B",
				"https://example.com/c": "C",
			},
			links: map[string][]string{
				"https://example.com": {
					"https://example.com/a",
					"https://example.com/b",
					"https://example.com/c",
				},
			},
		}
		cfg := testConfig()
		cfg.MaxDepth = 1

		ctx, cancel := context.WithCancel(context.Background())
		c := newSiteCrawler(s, cfg)
		inner := c.Fetcher
		c.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				html, err := inner.Fetch(ctx, url)
				if url == "https://example.com/b" {
					cancel()
				}
				return html, err
			},
		}

		result, err := c.Run(ctx, urlSeed("https://example.com"), nil)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 4, result.Attempted)
		assert.GreaterOrEqual(t, result.Succeeded, 2)
		assert.NotEmpty(t, result.Failed)
		require.NotNil(t, result.Artifact)
		assert.Equal(t, "Home", result.Artifact.Units[0].Page.Title)
	})

	t.Run("title order re-sorts units before numbering", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":   "Zebra",
				"https://example.com/a": "Apple",
			},
			links: map[string][]string{
				"https://example.com": {"https://example.com/a"},
			},
		}
		cfg := testConfig()
		cfg.MaxDepth = 1

		c := newSiteCrawler(s, cfg)
		c.Order = scrapedown.OrderTitle

		result, err := c.Run(context.Background(), urlSeed("https://example.com"), nil)

		require.NoError(t, err)
		require.Len(t, result.Artifact.Units, 2)
		assert.Equal(t, "Apple", result.Artifact.Units[0].Page.Title)
		assert.Equal(t, 1, result.Artifact.Units[0].Ordinal)
		assert.Equal(t, "Zebra", result.Artifact.Units[1].Page.Title)
	})

	t.Run("seeds from the sitemap when one is published", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":       "Home",
				"https://example.com/guide": "Guide",
				"https://example.com/faq":   "FAQ",
			},
		}
		cfg := testConfig()

		linkCalls := 0
		c := newSiteCrawler(s, cfg)
		c.Links = &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]string, error) {
				linkCalls++
				return nil, nil
			},
		}
		c.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *regexp.Regexp) ([]string, error) {
				return []string{"https://example.com/guide", "https://example.com/faq"}, nil
			},
		}

		result, err := c.Run(context.Background(), urlSeed("https://example.com"), nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Attempted)
		assert.Equal(t, 3, result.Succeeded)
		assert.Equal(t, 0, linkCalls, "sitemap-closed frontiers skip link expansion")
	})

	t.Run("falls back to link expansion when the sitemap is empty", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":     "Home",
				"https://example.com/one": "One",
			},
			links: map[string][]string{
				"https://example.com": {"https://example.com/one"},
			},
		}
		cfg := testConfig()
		cfg.MaxDepth = 1

		c := newSiteCrawler(s, cfg)
		c.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *regexp.Regexp) ([]string, error) {
				return nil, nil
			},
		}

		result, err := c.Run(context.Background(), urlSeed("https://example.com"), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Attempted)
	})

	t.Run("invalid seed is rejected", func(t *testing.T) {
		t.Parallel()

		c := newSiteCrawler(site{}, testConfig())

		_, err := c.Run(context.Background(), scrapedown.SeedSpec{Kind: scrapedown.SeedURL}, nil)

		require.Error(t, err)
		assert.Equal(t, scrapedown.EINVALID, scrapedown.ErrorCode(err))
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		s := site{
			pages: map[string]string{
				"https://example.com":     "Home",
				"https://example.com/one": "One",
			},
			links: map[string][]string{
				"https://example.com": {"https://example.com/one"},
			},
		}
		cfg := testConfig()
		cfg.MaxDepth = 1

		var started, completed, finished int
		progress := func(event crawl.ProgressEvent) {
			switch event.Type {
			case crawl.ProgressStarted:
				started++
				assert.Equal(t, 2, event.Total)
			case crawl.ProgressCompleted:
				completed++
			case crawl.ProgressFinished:
				finished++
			}
		}

		_, err := newSiteCrawler(s, cfg).Run(context.Background(), urlSeed("https://example.com"), progress)

		require.NoError(t, err)
		assert.Equal(t, 1, started)
		assert.Equal(t, 2, completed)
		assert.Equal(t, 1, finished)
	})
}
