package scrapedown

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// SocialPlatforms lists the platforms scanned during enrichment, in
// reporting order.
var SocialPlatforms = []string{"facebook", "instagram", "tiktok", "linkedin", "twitter"}

// BusinessRecord is one candidate seed record as returned by a listing
// search collaborator.
type BusinessRecord struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	Rating  string `json:"rating,omitempty"`

	// ServiceBusiness is classified by the listing source and contributes
	// one scoring point.
	ServiceBusiness bool `json:"serviceBusiness,omitempty"`
}

// EnrichedLead is a business record augmented with data scraped from its
// website. Score is derived once and never mutated afterwards.
type EnrichedLead struct {
	Business BusinessRecord `json:"business"`

	Email string `json:"email,omitempty"`

	// SocialLinks maps platform name to profile URL, at most one per
	// platform (first occurrence wins).
	SocialLinks map[string]string `json:"socialLinks,omitempty"`

	// Score is in [0,5] by construction.
	Score int `json:"score"`

	ColdEmailIntro string `json:"coldEmailIntro,omitempty"`

	// FetchFailure records why the website scrape was skipped, if it was.
	FetchFailure string `json:"fetchFailure,omitempty"`
}

// Enricher augments one seed record with website-derived fields.
type Enricher interface {
	// Enrich fetches the record's website, if any, and returns the
	// enriched lead. A record without a website short-circuits to a
	// zero-contribution enrichment without any fetch attempt.
	Enrich(ctx context.Context, rec BusinessRecord) (*EnrichedLead, error)
}

// ScoreLead computes the lead score: 1 point for a service business, 3 for
// a reachable email address, 1 for any social presence. The result is
// capped at 5 by construction and never computed outside [0,5].
func ScoreLead(serviceBusiness, hasEmail, hasSocial bool) int {
	score := 0
	if serviceBusiness {
		score++
	}
	if hasEmail {
		score += 3
	}
	if hasSocial {
		score++
	}
	return score
}

// ColdEmailIntro generates a templated outreach intro from the lead's own
// fields. It is a pure function: no external calls, no randomness.
func ColdEmailIntro(lead *EnrichedLead) string {
	name := lead.Business.Name
	if name == "" {
		name = "your business"
	}

	var gaps []string
	if lead.Email == "" {
		gaps = append(gaps, "no visible email address on your website")
	}
	missing := 0
	for _, platform := range SocialPlatforms {
		if lead.SocialLinks[platform] == "" {
			missing++
		}
	}
	if missing >= len(SocialPlatforms)-1 {
		gaps = append(gaps, "little to no social media presence")
	}
	if lead.Business.Website == "" {
		gaps = append(gaps, "no website of your own")
	}

	if len(gaps) == 0 {
		return fmt.Sprintf("Subject: Even more reach for %s?\n\n"+
			"Hello,\n\n"+
			"I came across %s and was impressed by your professional online presence. "+
			"Even so, there is always room to rank higher locally and turn more visitors into inquiries. "+
			"Would you be open to a short, no-obligation chat?", name, name)
	}

	if len(gaps) > 2 {
		gaps = gaps[:2]
	}
	return fmt.Sprintf("Subject: More customers for %s through better online visibility\n\n"+
		"Hello,\n\n"+
		"I came across %s and had a look at your online presence. "+
		"I noticed you have %s. Many customers search online for businesses like yours, "+
		"and that is exactly where I see untapped potential. "+
		"Would you be open to a short, no-obligation chat about improving your visibility?",
		name, name, strings.Join(gaps, " and "))
}

// SortLeadsByScore orders leads by score descending, preserving the input
// order among equal scores.
func SortLeadsByScore(leads []*EnrichedLead) {
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].Score > leads[j].Score
	})
}
