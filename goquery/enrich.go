package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scrapedown/scrapedown"
)

// Ensure Enricher implements scrapedown.Enricher.
var _ scrapedown.Enricher = (*Enricher)(nil)

// contactPaths are the well-known pages checked for an email address when
// the homepage has none. German paths first since the listing sources were
// originally German-market.
var contactPaths = []string{"/kontakt", "/impressum", "/contact", "/about", "/ueber-uns"}

// socialHosts maps a platform name to the hostnames that identify it.
var socialHosts = map[string][]string{
	"facebook":  {"facebook.com", "fb.com"},
	"instagram": {"instagram.com"},
	"tiktok":    {"tiktok.com"},
	"linkedin":  {"linkedin.com"},
	"twitter":   {"twitter.com", "x.com"},
}

// Strings that match the email pattern but are never contact addresses:
// image filenames served from CDN paths and placeholder domains.
var (
	emailImageSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}
	emailBogusDomains  = []string{"@example.com", "@example.org", "@sentry.io", "@domain.com"}
)

var obfuscationReplacer = strings.NewReplacer(
	"[at]", "@", "(at)", "@", " [at] ", "@", " (at) ", "@",
	"[dot]", ".", "(dot)", ".", " [dot] ", ".", " (dot) ", ".",
)

// Enricher augments business records with email and social links scraped
// from their websites. Fetches go through the shared fetcher and host gate
// so enrichment honors the same politeness rules as crawling.
type Enricher struct {
	fetcher scrapedown.Fetcher
	gate    scrapedown.HostGate
}

// NewEnricher creates an Enricher around the given fetcher. The gate may be
// nil when rate limiting is handled elsewhere.
func NewEnricher(fetcher scrapedown.Fetcher, gate scrapedown.HostGate) *Enricher {
	return &Enricher{fetcher: fetcher, gate: gate}
}

// Enrich scrapes the record's website for an email address and social
// profile links, then derives the score and outreach intro. A record
// without a website short-circuits to a zero-contribution enrichment with
// no fetch attempt. A website that cannot be fetched keeps the listing
// fields and records the failure on the lead rather than failing the call;
// only context cancellation is returned as an error.
func (e *Enricher) Enrich(ctx context.Context, rec scrapedown.BusinessRecord) (*scrapedown.EnrichedLead, error) {
	lead := &scrapedown.EnrichedLead{Business: rec}

	if rec.Website != "" {
		if err := e.scanWebsite(ctx, lead); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lead.FetchFailure = scrapedown.ErrorMessage(err)
		}
	}

	lead.Score = scrapedown.ScoreLead(rec.ServiceBusiness, lead.Email != "", len(lead.SocialLinks) > 0)
	lead.ColdEmailIntro = scrapedown.ColdEmailIntro(lead)
	return lead, nil
}

// scanWebsite fetches the homepage and, while no email has turned up,
// well-known contact pages, populating the lead's email and social links.
func (e *Enricher) scanWebsite(ctx context.Context, lead *scrapedown.EnrichedLead) error {
	site, err := url.Parse(ensureScheme(lead.Business.Website))
	if err != nil {
		return scrapedown.Errorf(scrapedown.EINVALID, "invalid website URL %q: %v", lead.Business.Website, err)
	}

	if err := e.scanPage(ctx, site.String(), lead); err != nil {
		return err
	}

	for _, path := range contactPaths {
		if lead.Email != "" {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		contact := site.ResolveReference(&url.URL{Path: path})
		// Missing contact pages are expected; only the homepage failure
		// above is reported.
		_ = e.scanPage(ctx, contact.String(), lead)
	}

	return nil
}

func (e *Enricher) scanPage(ctx context.Context, pageURL string, lead *scrapedown.EnrichedLead) error {
	if e.gate != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return scrapedown.Errorf(scrapedown.EINVALID, "invalid URL %q: %v", pageURL, err)
		}
		if err := e.gate.Wait(ctx, u.Host); err != nil {
			return err
		}
	}

	html, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return scrapedown.Errorf(scrapedown.EINVALID, "failed to parse HTML: %v", err)
	}

	if lead.Email == "" {
		if emails := scanEmails(doc); len(emails) > 0 {
			lead.Email = emails[0]
		}
	}

	social := scanSocialLinks(doc)
	for platform, link := range social {
		if lead.SocialLinks == nil {
			lead.SocialLinks = make(map[string]string)
		}
		if lead.SocialLinks[platform] == "" {
			lead.SocialLinks[platform] = link
		}
	}

	return nil
}

// scanEmails returns plausible email addresses found in mailto links and
// body text, mailto hits first, de-obfuscated and filtered for known false
// positives.
func scanEmails(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var emails []string

	add := func(candidate string) {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" || seen[candidate] || isEmailFalsePositive(candidate) {
			return
		}
		seen[candidate] = true
		emails = append(emails, candidate)
	}

	doc.Find("a[href^='mailto:']").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if idx := strings.IndexByte(addr, '?'); idx != -1 {
			addr = addr[:idx]
		}
		if emailPattern.MatchString(addr) {
			add(addr)
		}
	})

	text := obfuscationReplacer.Replace(doc.Text())
	for _, match := range emailPattern.FindAllString(text, -1) {
		add(match)
	}

	return emails
}

// scanSocialLinks returns the first anchor per known platform, keyed by
// platform name.
func scanSocialLinks(doc *goquery.Document) map[string]string {
	links := make(map[string]string)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		u, err := url.Parse(href)
		if err != nil || u.Host == "" {
			return
		}
		host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
		for platform, hosts := range socialHosts {
			if links[platform] != "" {
				continue
			}
			for _, h := range hosts {
				if host == h || strings.HasSuffix(host, "."+h) {
					links[platform] = href
					break
				}
			}
		}
	})
	return links
}

func isEmailFalsePositive(email string) bool {
	for _, suffix := range emailImageSuffixes {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	for _, domain := range emailBogusDomains {
		if strings.HasSuffix(email, domain) {
			return true
		}
	}
	return false
}

func ensureScheme(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "https://" + rawURL
}
