package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scrapedown/scrapedown"
)

// Ensure IntentExtractor implements scrapedown.IntentExtractor.
var _ scrapedown.IntentExtractor = (*IntentExtractor)(nil)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+\d{1,3}[\s\-./]?)?(?:\(\d{1,5}\)[\s\-./]?)?\d{2,5}(?:[\s\-./]\d{2,8}){1,4}`)
)

// IntentExtractor extracts a flat item list for one of the recognized
// extraction intents. Free-form requests are reduced to the closed intent
// set before reaching this type; anything unrecognized arrives as
// IntentGeneric.
type IntentExtractor struct {
	// Generic handles IntentGeneric by delegating to a full content
	// extractor and flattening its paragraphs.
	Generic scrapedown.Extractor
}

// NewIntentExtractor creates an IntentExtractor whose generic strategy
// delegates to the given content extractor.
func NewIntentExtractor(generic scrapedown.Extractor) *IntentExtractor {
	return &IntentExtractor{Generic: generic}
}

// ExtractIntent dispatches on intent and returns the matching items in
// document order.
func (e *IntentExtractor) ExtractIntent(html string, baseURL string, intent scrapedown.Intent) ([]scrapedown.IntentItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scrapedown.Errorf(scrapedown.EINVALID, "failed to parse HTML: %v", err)
	}

	switch intent {
	case scrapedown.IntentHeadlines:
		return extractHeadlines(doc), nil
	case scrapedown.IntentLinks:
		return extractLinkItems(doc, baseURL)
	case scrapedown.IntentArticles:
		return extractArticles(doc), nil
	case scrapedown.IntentEmails:
		return extractEmailItems(doc), nil
	case scrapedown.IntentPhones:
		return extractPhoneItems(doc), nil
	default:
		return e.extractGeneric(html, baseURL)
	}
}

func extractHeadlines(doc *goquery.Document) []scrapedown.IntentItem {
	var items []scrapedown.IntentItem
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		text := normalizeSpace(sel.Text())
		if text == "" {
			return
		}
		item := scrapedown.IntentItem{Kind: "headline", Text: text}
		if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
			item.URL = href
		}
		items = append(items, item)
	})
	return items
}

func extractLinkItems(doc *goquery.Document, baseURL string) ([]scrapedown.IntentItem, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, scrapedown.Errorf(scrapedown.EINVALID, "invalid base URL: %v", err)
	}

	seen := make(map[string]bool)
	var items []scrapedown.IntentItem
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		items = append(items, scrapedown.IntentItem{
			Kind: "link",
			Text: normalizeSpace(sel.Text()),
			URL:  resolved,
		})
	})
	return items, nil
}

// extractArticles captures card-like teaser blocks: article elements and
// common listing item classes, one item per block with its first heading
// and link.
func extractArticles(doc *goquery.Document) []scrapedown.IntentItem {
	var items []scrapedown.IntentItem
	doc.Find("article, .post, .card, [class*='article-item']").Each(func(_ int, sel *goquery.Selection) {
		title := normalizeSpace(sel.Find("h1, h2, h3, h4").First().Text())
		if title == "" {
			title = normalizeSpace(sel.Find("a").First().Text())
		}
		if title == "" {
			return
		}
		item := scrapedown.IntentItem{Kind: "article", Text: title}
		if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
			item.URL = href
		}
		items = append(items, item)
	})
	return items
}

func extractEmailItems(doc *goquery.Document) []scrapedown.IntentItem {
	seen := make(map[string]bool)
	var items []scrapedown.IntentItem
	for _, email := range scanEmails(doc) {
		if seen[email] {
			continue
		}
		seen[email] = true
		items = append(items, scrapedown.IntentItem{Kind: "email", Text: email})
	}
	return items
}

func extractPhoneItems(doc *goquery.Document) []scrapedown.IntentItem {
	seen := make(map[string]bool)
	var items []scrapedown.IntentItem

	doc.Find("a[href^='tel:']").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		number := strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
		if number == "" || seen[number] {
			return
		}
		seen[number] = true
		items = append(items, scrapedown.IntentItem{Kind: "phone", Text: number})
	})

	for _, match := range phonePattern.FindAllString(doc.Text(), -1) {
		number := strings.TrimSpace(match)
		// Digit count filters out dates and price lists the loose pattern
		// also matches.
		if digits := countDigits(number); digits < 7 || digits > 15 {
			continue
		}
		if seen[number] {
			continue
		}
		seen[number] = true
		items = append(items, scrapedown.IntentItem{Kind: "phone", Text: number})
	}
	return items
}

// extractGeneric delegates to the content extractor and flattens its
// sections into paragraph items, the closest approximation of "the largest
// text block" the closed intent set offers.
func (e *IntentExtractor) extractGeneric(html string, baseURL string) ([]scrapedown.IntentItem, error) {
	if e.Generic == nil {
		return nil, scrapedown.Errorf(scrapedown.EINTERNAL, "no generic extraction strategy configured")
	}
	rec, err := e.Generic.Extract(html, baseURL)
	if err != nil {
		return nil, err
	}

	var items []scrapedown.IntentItem
	for _, section := range rec.Sections {
		for _, p := range section.Paragraphs {
			items = append(items, scrapedown.IntentItem{Kind: "text", Text: p})
		}
	}
	if len(items) == 0 && rec.Title != "" {
		items = append(items, scrapedown.IntentItem{Kind: "text", Text: rec.Title})
	}
	return items, nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
