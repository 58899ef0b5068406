package scrapedown

// Extractor turns raw page markup into a structured PageRecord.
type Extractor interface {
	// Extract returns the page record for the given markup. It returns an
	// EUNPROCESSABLE error only when neither a title nor any body text can
	// be resolved; paywalled pages still return their teaser content with
	// PaywallDetected set.
	Extract(html string, url string) (*PageRecord, error)
}

// Intent is one of the recognized extraction intents. Free-form "extract
// whatever the user describes" requests reduce to this closed set; anything
// unrecognized falls back to IntentGeneric.
type Intent string

// Recognized extraction intents.
const (
	IntentGeneric   Intent = "generic"
	IntentHeadlines Intent = "headlines"
	IntentLinks     Intent = "links"
	IntentArticles  Intent = "articles"
	IntentEmails    Intent = "emails"
	IntentPhones    Intent = "phones"
)

// ParseIntent maps a free-form extraction request onto the closed intent
// set. Unrecognized descriptions fall back to IntentGeneric rather than
// open-ended inference.
func ParseIntent(s string) Intent {
	switch Intent(normalizeIntent(s)) {
	case IntentHeadlines:
		return IntentHeadlines
	case IntentLinks:
		return IntentLinks
	case IntentArticles:
		return IntentArticles
	case IntentEmails:
		return IntentEmails
	case IntentPhones:
		return IntentPhones
	default:
		return IntentGeneric
	}
}

func normalizeIntent(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' {
			out = append(out, r)
		}
	}
	switch v := string(out); v {
	case "headline", "heading", "headings", "titles":
		return string(IntentHeadlines)
	case "link", "urls":
		return string(IntentLinks)
	case "article", "posts", "cards":
		return string(IntentArticles)
	case "email", "emailaddresses":
		return string(IntentEmails)
	case "phone", "phonenumbers", "phones":
		return string(IntentPhones)
	default:
		return v
	}
}

// IntentItem is one item produced by an intent extraction.
type IntentItem struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// IntentExtractor extracts a flat item list for a recognized intent.
type IntentExtractor interface {
	ExtractIntent(html string, baseURL string, intent Intent) ([]IntentItem, error)
}
