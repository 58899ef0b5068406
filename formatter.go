package scrapedown

import (
	"fmt"
	"strings"
)

// FormatRunResult renders a run summary for terminal display.
// Counts are always reported, even on partial failure.
func FormatRunResult(res *RunResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "attempted %d, succeeded %d, failed %d\n",
		res.Attempted, res.Succeeded, len(res.Failed))
	for _, f := range res.Failed {
		fmt.Fprintf(&b, "  skipped %s: %s\n", TruncateURL(f.URL, 60), f.Reason)
	}
	return b.String()
}

// FormatTOC renders an artifact's table of contents, one numbered line per
// unit.
func FormatTOC(artifact *Artifact) string {
	var b strings.Builder
	for _, entry := range artifact.TOC {
		fmt.Fprintf(&b, "%d. %s\n", entry.Ordinal, entry.Title)
	}
	return b.String()
}

// FormatLeads renders enriched leads with star scores, highest first.
func FormatLeads(leads []*EnrichedLead) string {
	var b strings.Builder
	for i, lead := range leads {
		stars := strings.Repeat("*", lead.Score) + strings.Repeat(".", 5-lead.Score)
		fmt.Fprintf(&b, "[%d] %s  [%s] (%d/5)\n", i+1, lead.Business.Name, stars, lead.Score)
		if lead.Email != "" {
			fmt.Fprintf(&b, "    email: %s\n", lead.Email)
		}
		for _, platform := range SocialPlatforms {
			if link, ok := lead.SocialLinks[platform]; ok {
				fmt.Fprintf(&b, "    %s: %s\n", platform, link)
			}
		}
		if lead.FetchFailure != "" {
			fmt.Fprintf(&b, "    skipped: %s\n", lead.FetchFailure)
		}
	}
	return b.String()
}

// TruncateURL shortens a URL for display, keeping the end which is more
// informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
