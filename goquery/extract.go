package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scrapedown/scrapedown"
)

// Ensure ContentExtractor implements scrapedown.Extractor.
var _ scrapedown.Extractor = (*ContentExtractor)(nil)

// ContentExtractor parses page markup into a structured PageRecord using
// CSS selection and density heuristics.
type ContentExtractor struct {
	heuristics Heuristics

	// fallback, when set, is consulted for the main-content markup when
	// the selector and density passes both come up empty.
	fallback scrapedown.Extractor
}

// ContentOption configures a ContentExtractor.
type ContentOption func(*ContentExtractor)

// WithHeuristics overrides the default extraction pattern sets.
func WithHeuristics(h Heuristics) ContentOption {
	return func(e *ContentExtractor) {
		e.heuristics = h
	}
}

// WithFallback sets a fallback extractor (typically trafilatura-based)
// consulted when no main content container can be resolved.
func WithFallback(f scrapedown.Extractor) ContentOption {
	return func(e *ContentExtractor) {
		e.fallback = f
	}
}

// NewContentExtractor creates a ContentExtractor with default heuristics.
func NewContentExtractor(opts ...ContentOption) *ContentExtractor {
	e := &ContentExtractor{heuristics: DefaultHeuristics()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the structured record for one page. It fails with
// EUNPROCESSABLE only when neither a title nor any body text can be
// resolved; paywalled pages return their teaser content with
// PaywallDetected set.
func (e *ContentExtractor) Extract(html string, pageURL string) (*scrapedown.PageRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scrapedown.Errorf(scrapedown.EINVALID, "failed to parse HTML: %v", err)
	}

	main := e.mainContent(doc)

	var contentHTML string
	var bodyText string
	if main != nil {
		contentHTML, _ = goquery.OuterHtml(main)
		bodyText = normalizeSpace(main.Text())
	}

	// Density and selector passes found nothing; give the boilerplate
	// stripper a chance before declaring the page empty.
	if bodyText == "" && e.fallback != nil {
		if rec, ferr := e.fallback.Extract(html, pageURL); ferr == nil {
			contentHTML = rec.ContentHTML
			if fdoc, perr := goquery.NewDocumentFromReader(strings.NewReader(contentHTML)); perr == nil {
				main = fdoc.Selection
				bodyText = normalizeSpace(main.Text())
			}
		}
	}

	title := e.title(doc, main, pageURL)
	if title == "" && bodyText == "" {
		return nil, scrapedown.Errorf(scrapedown.EUNPROCESSABLE, "no content found at %s", pageURL)
	}

	rec := &scrapedown.PageRecord{
		URL:             pageURL,
		Title:           title,
		ContentHTML:     contentHTML,
		PaywallDetected: e.detectPaywall(doc, main, bodyText),
		Metadata:        e.metadata(doc, bodyText),
	}
	if main != nil {
		rec.Sections = extractSections(main)
	}
	rec.ContentHash = scrapedown.HashContent(contentHTML)

	return rec, nil
}

// mainContent resolves the main content boundary: a semantic article/main
// container first, else the largest text-dense block container, else the
// full body. Returns nil when the document has no body at all.
func (e *ContentExtractor) mainContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range []string{"main", "article", "[role='main']", "#content", ".content"} {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && len(normalizeSpace(sel.Text())) > 0 {
			return sel
		}
	}

	if dense := densestContainer(doc); dense != nil {
		return dense
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	return body
}

// densestContainer returns the block container with the most direct text
// content, ignoring navigation chrome. Containers shorter than a paragraph
// are not considered.
func densestContainer(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestLen := 200 // minimum to count as content

	doc.Find("div, section").Each(func(_ int, sel *goquery.Selection) {
		if sel.Closest("nav, header, footer, aside").Length() > 0 {
			return
		}
		textLen := 0
		sel.Find("p, li").Each(func(_ int, p *goquery.Selection) {
			textLen += len(normalizeSpace(p.Text()))
		})
		if textLen > bestLen {
			best = sel
			bestLen = textLen
		}
	})

	return best
}

// title resolves the page title: first heading in main content, else
// page-level title metadata, else the URL's last path segment.
func (e *ContentExtractor) title(doc *goquery.Document, main *goquery.Selection, pageURL string) string {
	if main != nil {
		if h1 := main.Find("h1").First(); h1.Length() > 0 {
			if t := normalizeSpace(h1.Text()); t != "" {
				return t
			}
		}
	}
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if t := normalizeSpace(h1.Text()); t != "" {
			return t
		}
	}
	if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if t := normalizeSpace(og); t != "" {
			return t
		}
	}
	if t := normalizeSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return scrapedown.LastPathSegment(pageURL)
}

// extractSections walks the main content and groups paragraphs and list
// items under the preceding heading, preserving document order. Text before
// the first heading lands in an untitled level-0 section.
func extractSections(main *goquery.Selection) []scrapedown.Section {
	var sections []scrapedown.Section
	current := scrapedown.Section{}

	flush := func() {
		if current.Heading != "" || len(current.Paragraphs) > 0 {
			sections = append(sections, current)
		}
	}

	main.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		text := normalizeSpace(sel.Text())
		if text == "" {
			return
		}

		if strings.HasPrefix(tag, "h") && len(tag) == 2 {
			level, err := strconv.Atoi(tag[1:])
			if err != nil {
				return
			}
			flush()
			current = scrapedown.Section{Heading: text, Level: level}
			return
		}

		// A list item nested inside an already-captured paragraph tree
		// would double-count; only direct items are kept.
		if tag == "li" && sel.Parent().Closest("li").Length() > 0 {
			return
		}
		current.Paragraphs = append(current.Paragraphs, text)
	})
	flush()

	return sections
}

// detectPaywall applies the login-wall heuristic: a marker anywhere on a
// short-bodied page, or a marker inside the main content itself.
func (e *ContentExtractor) detectPaywall(doc *goquery.Document, main *goquery.Selection, bodyText string) bool {
	pageText := strings.ToLower(normalizeSpace(doc.Text()))
	mainText := strings.ToLower(bodyText)

	for _, marker := range e.heuristics.PaywallMarkers {
		if strings.Contains(mainText, marker) {
			return true
		}
		if strings.Contains(pageText, marker) && len([]rune(bodyText)) < e.heuristics.PaywallMinBodyRunes {
			return true
		}
	}
	return false
}

// metadata collects description, tags, detected tools, and duration.
func (e *ContentExtractor) metadata(doc *goquery.Document, bodyText string) scrapedown.PageMetadata {
	var md scrapedown.PageMetadata

	if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok {
		md.Description = normalizeSpace(desc)
	}
	if md.Description == "" {
		if desc, ok := doc.Find("meta[property='og:description']").Attr("content"); ok {
			md.Description = normalizeSpace(desc)
		}
	}

	seenTags := make(map[string]bool)
	for _, selector := range e.heuristics.TagSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			tag := normalizeSpace(sel.Text())
			key := strings.ToLower(tag)
			if tag == "" || seenTags[key] {
				return
			}
			seenTags[key] = true
			md.Tags = append(md.Tags, tag)
		})
	}

	lowerBody := strings.ToLower(bodyText)
	for _, tool := range e.heuristics.ToolNames {
		if containsWord(lowerBody, strings.ToLower(tool)) {
			md.Tools = append(md.Tools, tool)
		}
	}

	for _, pattern := range e.heuristics.DurationPatterns {
		if m := pattern.FindString(bodyText); m != "" {
			md.Duration = strings.TrimSpace(m)
			break
		}
	}

	return md
}

// containsWord reports whether word occurs in text at word boundaries.
func containsWord(text, word string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], word)
		if idx == -1 {
			return false
		}
		idx += start
		end := idx + len(word)
		beforeOK := idx == 0 || !isWordByte(text[idx-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
