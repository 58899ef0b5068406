package scrapedown_test

import (
	"testing"

	"github.com/scrapedown/scrapedown"
	"github.com/stretchr/testify/assert"
)

func TestScoreLead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		serviceBusiness bool
		hasEmail        bool
		hasSocial       bool
		want            int
	}{
		{"nothing scores zero", false, false, false, 0},
		{"service business alone", true, false, false, 1},
		{"email alone", false, true, false, 3},
		{"social alone", false, false, true, 1},
		{"email and social", false, true, true, 4},
		{"everything scores five", true, true, true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scrapedown.ScoreLead(tt.serviceBusiness, tt.hasEmail, tt.hasSocial))
		})
	}
}

func TestColdEmailIntro(t *testing.T) {
	t.Parallel()

	t.Run("names the gaps it found", func(t *testing.T) {
		t.Parallel()

		lead := &scrapedown.EnrichedLead{
			Business: scrapedown.BusinessRecord{Name: "Muster GmbH", Website: "https://muster.example"},
		}

		intro := scrapedown.ColdEmailIntro(lead)

		assert.Contains(t, intro, "Muster GmbH")
		assert.Contains(t, intro, "no visible email address")
		assert.Contains(t, intro, "social media presence")
	})

	t.Run("mentions at most two gaps", func(t *testing.T) {
		t.Parallel()

		lead := &scrapedown.EnrichedLead{
			Business: scrapedown.BusinessRecord{Name: "Offline Shop"},
		}

		intro := scrapedown.ColdEmailIntro(lead)

		// Email, social, and website are all missing; the third gap is
		// dropped.
		assert.Contains(t, intro, "no visible email address")
		assert.Contains(t, intro, "social media presence")
		assert.NotContains(t, intro, "no website of your own")
	})

	t.Run("complete presence gets the alternate opening", func(t *testing.T) {
		t.Parallel()

		lead := &scrapedown.EnrichedLead{
			Business: scrapedown.BusinessRecord{Name: "Polished AG", Website: "https://polished.example"},
			Email:    "hello@polished.example",
			SocialLinks: map[string]string{
				"facebook":  "https://facebook.com/polished",
				"instagram": "https://instagram.com/polished",
			},
		}

		intro := scrapedown.ColdEmailIntro(lead)

		assert.Contains(t, intro, "impressed by your professional online presence")
		assert.NotContains(t, intro, "I noticed you have")
	})

	t.Run("nameless business gets a neutral salutation", func(t *testing.T) {
		t.Parallel()

		intro := scrapedown.ColdEmailIntro(&scrapedown.EnrichedLead{})

		assert.Contains(t, intro, "your business")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		lead := &scrapedown.EnrichedLead{Business: scrapedown.BusinessRecord{Name: "Same In"}}

		assert.Equal(t, scrapedown.ColdEmailIntro(lead), scrapedown.ColdEmailIntro(lead))
	})
}

func TestSortLeadsByScore(t *testing.T) {
	t.Parallel()

	t.Run("orders by score descending", func(t *testing.T) {
		t.Parallel()

		leads := []*scrapedown.EnrichedLead{
			{Business: scrapedown.BusinessRecord{Name: "Low"}, Score: 1},
			{Business: scrapedown.BusinessRecord{Name: "High"}, Score: 5},
			{Business: scrapedown.BusinessRecord{Name: "Mid"}, Score: 3},
		}

		scrapedown.SortLeadsByScore(leads)

		assert.Equal(t, "High", leads[0].Business.Name)
		assert.Equal(t, "Mid", leads[1].Business.Name)
		assert.Equal(t, "Low", leads[2].Business.Name)
	})

	t.Run("equal scores keep input order", func(t *testing.T) {
		t.Parallel()

		leads := []*scrapedown.EnrichedLead{
			{Business: scrapedown.BusinessRecord{Name: "First"}, Score: 2},
			{Business: scrapedown.BusinessRecord{Name: "Second"}, Score: 2},
			{Business: scrapedown.BusinessRecord{Name: "Third"}, Score: 2},
		}

		scrapedown.SortLeadsByScore(leads)

		assert.Equal(t, "First", leads[0].Business.Name)
		assert.Equal(t, "Second", leads[1].Business.Name)
		assert.Equal(t, "Third", leads[2].Business.Name)
	})
}
