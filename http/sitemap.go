package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/scrapedown/scrapedown"
)

// Ensure SitemapService implements scrapedown.SitemapService.
var _ scrapedown.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds URLs from a site's sitemap. It checks robots.txt for
// Sitemap directives first, then falls back to /sitemap.xml; sitemap
// indexes are resolved recursively. Returns an empty slice when the site
// publishes no sitemap.
//
// When baseURL has a non-root path (e.g., https://example.com/videos/),
// only URLs under that path prefix are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *regexp.Regexp) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, scrapedown.Errorf(scrapedown.EINVALID, "invalid base URL: %v", err)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	// Sitemaps live at the domain root regardless of the seed's path.
	root := *base
	root.Path = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	var all []string
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sitemapURL := range sitemapURLs {
		urls, err := s.walkSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if pathPrefix != "" && !underPathPrefix(u, pathPrefix) {
				continue
			}
			if filter != nil && !filter.MatchString(u) {
				continue
			}
			all = append(all, u)
		}
	}

	return all, nil
}

// findSitemapURLs discovers sitemap locations from robots.txt or the
// /sitemap.xml fallback.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if body, err := s.get(ctx, robotsURL.String()); err == nil {
		sitemaps := parseRobotsSitemaps(body)
		body.Close()
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	if body, err := s.get(ctx, fallback.String()); err == nil {
		body.Close()
		return []string{fallback.String()}, nil
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return nil, nil
}

// walkSitemap fetches one sitemap document and recurses into sitemap
// indexes. Already-visited sitemaps are skipped to break cycles.
func (s *SitemapService) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, scrapedown.Errorf(scrapedown.EUNPROCESSABLE, "parsing sitemap XML at %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, scrapedown.Errorf(scrapedown.EUNPROCESSABLE, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, child := range root.SelectElements("sitemap") {
			loc := child.SelectElement("loc")
			if loc == nil {
				continue
			}
			childURL := strings.TrimSpace(loc.Text())
			if childURL == "" {
				continue
			}
			urls, err := s.walkSitemap(ctx, childURL, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	var urls []string
	for _, entry := range root.SelectElements("url") {
		loc := entry.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// get fetches a URL and returns its body for 2xx responses.
func (s *SitemapService) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, scrapedown.Errorf(scrapedown.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

// parseRobotsSitemaps extracts Sitemap: directives from robots.txt.
func parseRobotsSitemaps(body io.Reader) []string {
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

// underPathPrefix checks whether a URL's path sits under the prefix,
// respecting path boundaries.
func underPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix)
}
