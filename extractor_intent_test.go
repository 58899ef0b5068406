package scrapedown_test

import (
	"testing"

	"github.com/scrapedown/scrapedown"
	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want scrapedown.Intent
	}{
		{"headlines", scrapedown.IntentHeadlines},
		{"headline", scrapedown.IntentHeadlines},
		{"Headings", scrapedown.IntentHeadlines},
		{"titles", scrapedown.IntentHeadlines},
		{"links", scrapedown.IntentLinks},
		{"URLs", scrapedown.IntentLinks},
		{"articles", scrapedown.IntentArticles},
		{"posts", scrapedown.IntentArticles},
		{"emails", scrapedown.IntentEmails},
		{"email addresses", scrapedown.IntentEmails},
		{"phones", scrapedown.IntentPhones},
		{"phone numbers", scrapedown.IntentPhones},
		{"generic", scrapedown.IntentGeneric},
		{"", scrapedown.IntentGeneric},
		{"the entire kitchen sink", scrapedown.IntentGeneric},
		{"HEADLINES!!", scrapedown.IntentHeadlines},
	}

	for _, tt := range tests {
		t.Run("parses "+tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scrapedown.ParseIntent(tt.in))
		})
	}
}
