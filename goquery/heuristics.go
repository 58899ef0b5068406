package goquery

import "regexp"

// Heuristics bundles the configurable pattern sets used during content
// extraction. The sets are versioned so stored page records can say which
// rules produced them; bumping Version signals a semantic change in any set.
type Heuristics struct {
	Version string

	// PaywallMarkers are lowercase substrings whose presence in the page
	// suggests a login wall. Includes German terms since the rules were
	// originally tuned on German-language sites.
	PaywallMarkers []string

	// PaywallMinBodyRunes is the body length below which a single marker
	// match is enough to flag a paywall. Longer bodies need a marker inside
	// the main content itself.
	PaywallMinBodyRunes int

	// ToolNames are product names matched word-wise against body text to
	// populate PageMetadata.Tools.
	ToolNames []string

	// DurationPatterns match reading/watch-time annotations.
	DurationPatterns []*regexp.Regexp

	// TagSelectors are CSS selectors for tag/category containers.
	TagSelectors []string
}

// DefaultHeuristics returns the built-in pattern sets.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Version: "2026-01",
		PaywallMarkers: []string{
			"einloggen",
			"jetzt beitreten",
			"mitgliedschaft",
			"registrieren",
			"anmelden, um weiterzulesen",
			"log in to continue",
			"sign up to continue",
			"subscribe to read",
			"subscribers only",
			"premium content",
			"members only",
			"unlock this",
		},
		PaywallMinBodyRunes: 600,
		ToolNames: []string{
			"ChatGPT", "Claude", "Gemini", "Midjourney", "Stable Diffusion",
			"n8n", "Zapier", "Make", "Airtable", "Notion", "Obsidian",
			"Canva", "Figma", "Webflow", "WordPress", "Shopify",
			"HubSpot", "Mailchimp", "Slack", "Trello", "Asana",
		},
		DurationPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b\d{1,3}\s*(?:min(?:uten)?|minutes?)\b`),
			regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\b`),
			regexp.MustCompile(`(?i)\b\d{1,2}\s*(?:std|h|hours?|stunden)\b`),
		},
		TagSelectors: []string{
			".tags a", ".tag", ".categories a", ".category",
			"[class*='tag-list'] a", "[rel='tag']",
		},
	}
}
