package scrapedown_test

import (
	"testing"

	"github.com/scrapedown/scrapedown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedSpec_Validate(t *testing.T) {
	t.Parallel()

	t.Run("URL seed needs only a value", func(t *testing.T) {
		t.Parallel()

		seed := scrapedown.SeedSpec{Kind: scrapedown.SeedURL, Value: "https://example.com"}

		assert.NoError(t, seed.Validate())
	})

	t.Run("query seed needs a location", func(t *testing.T) {
		t.Parallel()

		seed := scrapedown.SeedSpec{Kind: scrapedown.SeedQuery, Value: "plumbers"}

		err := seed.Validate()
		require.Error(t, err)
		assert.Equal(t, scrapedown.EINVALID, scrapedown.ErrorCode(err))

		seed.Location = "Berlin"
		assert.NoError(t, seed.Validate())
	})

	t.Run("empty value is rejected", func(t *testing.T) {
		t.Parallel()

		seed := scrapedown.SeedSpec{Kind: scrapedown.SeedURL}

		assert.Error(t, seed.Validate())
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		t.Parallel()

		seed := scrapedown.SeedSpec{Kind: "rss", Value: "https://example.com/feed"}

		assert.Error(t, seed.Validate())
	})
}
