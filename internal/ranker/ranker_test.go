package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodsearch/fuzzyrank/internal/config"
	"github.com/foodsearch/fuzzyrank/internal/distance"
	"github.com/foodsearch/fuzzyrank/internal/evaluator"
	"github.com/foodsearch/fuzzyrank/internal/scoring"
	"github.com/foodsearch/fuzzyrank/internal/synonym"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

func newRanker() *Ranker {
	cfg := config.Default()
	syn := synonym.NewIndex(cfg.Synonyms)
	dist := distance.New()
	ev := evaluator.New(cfg.MaxLevenshteinDistance, syn, dist)
	composer := scoring.NewComposer(cfg, ev)
	phonetic := scoring.NewPhoneticScorer(dist)
	final := scoring.NewFinalScorer()
	return New(cfg, composer, phonetic, final)
}

func TestDedupePriorityOrder(t *testing.T) {
	results := StrategyResults{
		"standard":    {models.Document{"id": "1", "name": "A"}},
		"name_search": {models.Document{"id": "1", "name": "A"}, models.Document{"id": "2", "name": "B"}},
	}

	unique := Dedupe(results)

	require.Len(t, unique, 2)
	assert.Equal(t, "name_search", unique[0]["_discovery_strategy"])
	assert.Equal(t, "1", unique[0]["id"])
}

func TestDedupeFallsBackToNamePrefix(t *testing.T) {
	results := StrategyResults{
		"standard": {models.Document{"name": "Same Name"}, models.Document{"name": "Same Name"}},
	}

	unique := Dedupe(results)

	assert.Len(t, unique, 1)
}

func TestRankFiltersBelowMinScore(t *testing.T) {
	r := newRanker()
	docs := []models.Document{
		{"id": "1", "name": "Some Place", "name_search": "some place"},
	}
	// Query words long enough that the length-adaptive distance cap
	// (DynamicMax) reaches its ceiling of 4, so a truly unrelated word
	// of comparable length cannot slip under the acceptance threshold.
	q := models.QueryData{
		Original:      "xqzwvbkjhrtyplmn",
		Cleaned:       "xqzwvbkjhrtyplmn",
		WordsCleaned:  []string{"xqzwvbkjhrtyplmn"},
		WordsOriginal: []string{"xqzwvbkjhrtyplmn"},
	}

	hits := r.Rank(docs, q)
	assert.Empty(t, hits)
}

func TestRankExactShortCircuit(t *testing.T) {
	r := newRanker()
	docs := []models.Document{
		{"id": "1", "name": "Petit Resto", "name_search": "petit resto"},
		{"id": "2", "name": "Petit Restp", "name_search": "petit restp"},
	}
	q := models.QueryData{
		Original:      "petit resto",
		Cleaned:       "petit resto",
		WordsCleaned:  []string{"petit", "resto"},
		WordsOriginal: []string{"petit", "resto"},
	}

	hits := r.Rank(docs, q)

	require.Len(t, hits, 1)
	assert.Equal(t, "1", hits[0].Document.ID())
	assert.Equal(t, models.MatchExactFull, hits[0].MatchType)
	assert.Equal(t, 10.0, hits[0].Score)
}

func TestRankSortOrderByScoreDescending(t *testing.T) {
	r := newRanker()
	docs := []models.Document{
		{"id": "1", "name": "Petit Restaurant du Coin et Compagnie", "name_search": "petit restaurant du coin et compagnie"},
		{"id": "2", "name": "Petit Resto", "name_search": "petit resto"},
	}
	q := models.QueryData{
		Original:      "petit resto",
		Cleaned:       "petit resto",
		WordsCleaned:  []string{"petit", "resto"},
		WordsOriginal: []string{"petit", "resto"},
	}

	hits := r.Rank(docs, q)

	require.NotEmpty(t, hits)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}
