package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodsearch/fuzzyrank/internal/config"
	"github.com/foodsearch/fuzzyrank/internal/distance"
	"github.com/foodsearch/fuzzyrank/internal/evaluator"
	"github.com/foodsearch/fuzzyrank/internal/ranker"
	"github.com/foodsearch/fuzzyrank/internal/scoring"
	"github.com/foodsearch/fuzzyrank/internal/synonym"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

type fakeIndex struct {
	byAttribute map[string][]models.Document
	err         error
}

func (f *fakeIndex) Search(ctx context.Context, index, attribute, query string, opts models.SearchOptions) (RetrievalResult, error) {
	if f.err != nil {
		return RetrievalResult{}, f.err
	}
	docs := f.byAttribute[attribute]
	return RetrievalResult{Hits: docs, EstimatedTotalHits: len(docs)}, nil
}

type fakeEnrichment struct {
	calledUserID int
}

func (f *fakeEnrichment) Enrich(ctx context.Context, hits []models.ScoredHit, userID int) ([]models.ScoredHit, error) {
	f.calledUserID = userID
	out := make([]models.ScoredHit, len(hits))
	for i, h := range hits {
		doc := h.Document.Clone()
		doc["isFavori"] = true
		out[i] = models.ScoredHit{Document: doc, Score: h.Score, MatchType: h.MatchType}
	}
	return out, nil
}

func newTestCoordinator(index IndexClient, enrichment EnrichmentClient) *Coordinator {
	cfg := config.Default()
	dist := distance.New()
	syn := synonym.NewIndex(cfg.Synonyms)
	ev := evaluator.New(cfg.MaxLevenshteinDistance, syn, dist)
	composer := scoring.NewComposer(cfg, ev)
	phon := scoring.NewPhoneticScorer(dist)
	final := scoring.NewFinalScorer()
	r := ranker.New(cfg, composer, phon, final)
	return New(index, enrichment, r, cfg, nil)
}

func TestSearch_RawStringQuery(t *testing.T) {
	idx := &fakeIndex{byAttribute: map[string][]models.Document{
		"name": {{"id": "1", "name": "Petit Resto"}},
	}}
	c := newTestCoordinator(idx, nil)

	resp, err := c.Search(context.Background(), "restaurants", "petit resto", models.DefaultSearchOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestSearch_NilQuery(t *testing.T) {
	idx := &fakeIndex{byAttribute: map[string][]models.Document{
		"name": {{"id": "1", "name": "Anything"}},
	}}
	c := newTestCoordinator(idx, nil)

	resp, err := c.Search(context.Background(), "restaurants", nil, models.DefaultSearchOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestSearch_StructuredQuery_ExactFull(t *testing.T) {
	doc := models.Document{"id": "1", "name": "Petit Resto", "name_search": "petit resto", "dep": 75}
	idx := &fakeIndex{byAttribute: map[string][]models.Document{
		"name_search":   {doc},
		"name_no_space": {},
		"name":          {doc},
	}}
	c := newTestCoordinator(idx, nil)

	q := models.QueryData{
		Original:     "petit resto",
		Cleaned:      "petit resto",
		NoSpace:      "petitresto",
		WordsCleaned: []string{"petit", "resto"},
		WordsOriginal: []string{"petit", "resto"},
		WordsNoSpace: []string{"petitresto"},
	}

	resp, err := c.Search(context.Background(), "restaurants", q, models.DefaultSearchOptions(), nil)
	require.NoError(t, err)
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, models.MatchExactFull, resp.Hits[0].MatchType)
	assert.True(t, resp.HasExactResults)
	assert.Equal(t, 1, resp.ExactCount)
	assert.Equal(t, map[string]int{"75": 1}, resp.CountPerDep)
	assert.NotNil(t, resp.Preprocessing)
}

func TestSearch_FanOutFailsAllOrNothing(t *testing.T) {
	idx := &fakeIndex{err: errors.New("index unreachable")}
	c := newTestCoordinator(idx, nil)

	q := models.QueryData{WordsCleaned: []string{"resto"}}
	_, err := c.Search(context.Background(), "restaurants", q, models.DefaultSearchOptions(), nil)
	require.Error(t, err)
}

func TestSearch_EnrichmentRunsForPositiveUserID(t *testing.T) {
	doc := models.Document{"id": "1", "name": "Petit Resto", "name_search": "petit resto"}
	idx := &fakeIndex{byAttribute: map[string][]models.Document{
		"name_search":   {doc},
		"name_no_space": {},
		"name":          {doc},
	}}
	enrich := &fakeEnrichment{}
	c := newTestCoordinator(idx, enrich)

	q := models.QueryData{
		Original:      "petit resto",
		Cleaned:       "petit resto",
		NoSpace:       "petitresto",
		WordsCleaned:  []string{"petit", "resto"},
		WordsOriginal: []string{"petit", "resto"},
		WordsNoSpace:  []string{"petitresto"},
	}
	uid := 42
	resp, err := c.Search(context.Background(), "restaurants", q, models.DefaultSearchOptions(), &uid)
	require.NoError(t, err)
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, 42, enrich.calledUserID)
	assert.Equal(t, true, resp.Hits[0].Document["isFavori"])
}

func TestSearch_NonPositiveUserIDSkipsEnrichmentButSucceeds(t *testing.T) {
	doc := models.Document{"id": "1", "name": "Petit Resto", "name_search": "petit resto"}
	idx := &fakeIndex{byAttribute: map[string][]models.Document{
		"name_search":   {doc},
		"name_no_space": {},
		"name":          {doc},
	}}
	enrich := &fakeEnrichment{}
	c := newTestCoordinator(idx, enrich)

	q := models.QueryData{
		Original:      "petit resto",
		Cleaned:       "petit resto",
		NoSpace:       "petitresto",
		WordsCleaned:  []string{"petit", "resto"},
		WordsOriginal: []string{"petit", "resto"},
		WordsNoSpace:  []string{"petitresto"},
	}
	uid := -1
	resp, err := c.Search(context.Background(), "restaurants", q, models.DefaultSearchOptions(), &uid)
	require.NoError(t, err)
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, 0, enrich.calledUserID)
}

func TestParseUserID(t *testing.T) {
	n, ok := ParseUserID("42")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = ParseUserID("0")
	assert.False(t, ok)

	_, ok = ParseUserID("abc")
	assert.False(t, ok)
}
