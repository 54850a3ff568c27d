package geo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodsearch/fuzzyrank/pkg/models"
)

func hitAt(id string, lat, lng float64) models.ScoredHit {
	return models.ScoredHit{
		Document: models.Document{
			"id":  id,
			"lat": lat,
			"lng": lng,
		},
	}
}

func TestDisperse_RoundRobinAcrossCells(t *testing.T) {
	var hits []models.ScoredHit
	for i := 0; i < 9; i++ {
		hits = append(hits, hitAt(fmt.Sprintf("a%d", i), 1.01, 1.02))
	}
	hits = append(hits, hitAt("b0", 9.0, 9.0))

	out := Disperse(hits, 0.1)
	require.Len(t, out, 10)

	assert.Equal(t, "a0", out[0].Document.ID())
	assert.Equal(t, "b0", out[1].Document.ID())
	assert.Equal(t, "a1", out[2].Document.ID())
	assert.Equal(t, "a2", out[3].Document.ID())
}

func TestDisperse_ConservesMultiset(t *testing.T) {
	var hits []models.ScoredHit
	for i := 0; i < 5; i++ {
		hits = append(hits, hitAt(fmt.Sprintf("geo%d", i), float64(i), float64(i)))
	}
	hits = append(hits, models.ScoredHit{Document: models.Document{"id": "nogeo"}})

	out := Disperse(hits, 0.1)
	require.Len(t, out, len(hits))

	seen := make(map[string]bool)
	for _, h := range out {
		seen[h.Document.ID()] = true
	}
	for _, h := range hits {
		assert.True(t, seen[h.Document.ID()])
	}
}

func TestDisperse_DeterministicOrderWithinCell(t *testing.T) {
	hits := []models.ScoredHit{
		hitAt("zzz", 1.0, 1.0),
		hitAt("aaa", 1.0, 1.0),
		hitAt("mmm", 1.0, 1.0),
	}
	out1 := Disperse(hits, 0.1)

	reversed := []models.ScoredHit{hits[2], hits[1], hits[0]}
	out2 := Disperse(reversed, 0.1)

	require.Len(t, out1, 3)
	require.Len(t, out2, 3)
	assert.Equal(t, out1[0].Document.ID(), out2[0].Document.ID())
	assert.Equal(t, "aaa", out1[0].Document.ID())
}

func TestDisperse_NonGeoAppendedAfterGeoRounds(t *testing.T) {
	hits := []models.ScoredHit{
		{Document: models.Document{"id": "n1"}},
		hitAt("g1", 1.0, 1.0),
	}
	out := Disperse(hits, 0.1)
	require.Len(t, out, 2)
	assert.Equal(t, "g1", out[0].Document.ID())
	assert.Equal(t, "n1", out[1].Document.ID())
}

func TestDisperse_DefaultGridSizeUsedWhenZero(t *testing.T) {
	hits := []models.ScoredHit{hitAt("a", 1.0, 1.0)}
	out := Disperse(hits, 0)
	require.Len(t, out, 1)
}
