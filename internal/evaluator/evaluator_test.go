package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodsearch/fuzzyrank/internal/distance"
	"github.com/foodsearch/fuzzyrank/internal/synonym"
)

func newEvaluator(maxDist int) *Evaluator {
	syn := synonym.NewIndex(map[string][]string{"saint": {"st"}})
	return New(maxDist, syn, distance.New())
}

func TestEvaluateExactFull(t *testing.T) {
	e := newEvaluator(4)
	eval := e.Evaluate([]string{"petit", "resto"}, []string{"petit", "resto"}, "petit resto")

	require.Equal(t, 2, eval.FoundCount)
	assert.Equal(t, 0, eval.TotalDistance)
	assert.Equal(t, 0, eval.Penalties.Missing)
	assert.Equal(t, 0.0, eval.ExtraLengthRatio)
}

func TestEvaluateExactWithExtras(t *testing.T) {
	e := newEvaluator(4)
	eval := e.Evaluate([]string{"petit"}, []string{"petit", "resto", "de", "la", "gare"}, "petit")

	require.Equal(t, 1, eval.FoundCount)
	assert.Greater(t, eval.ExtraLength, 0)
}

func TestEvaluateSynonym(t *testing.T) {
	e := newEvaluator(4)
	eval := e.Evaluate([]string{"st", "jean"}, []string{"saint", "jean"}, "st jean")

	require.Equal(t, 2, eval.FoundCount)
	assert.Equal(t, "synonym", eval.Found[0].Type)
	assert.Equal(t, 0, eval.TotalDistance)
}

func TestEvaluateLevenshteinFallback(t *testing.T) {
	e := newEvaluator(4)
	eval := e.Evaluate([]string{"resto"}, []string{"restp"}, "resto")

	require.Equal(t, 1, eval.FoundCount)
	assert.Equal(t, "levenshtein", eval.Found[0].Type)
	assert.Equal(t, 1, eval.Found[0].Distance)
}

func TestAlignmentUniqueness(t *testing.T) {
	e := newEvaluator(4)
	// Two identical query words must not both bind to the same candidate
	// position.
	eval := e.Evaluate([]string{"resto", "resto"}, []string{"resto"}, "resto resto")

	assert.Equal(t, 1, eval.FoundCount)
	assert.Len(t, eval.NotFound, 1)
}

func TestNotFoundWhenBeyondMaxDistance(t *testing.T) {
	e := newEvaluator(1)
	eval := e.Evaluate([]string{"completely"}, []string{"different"}, "completely")

	assert.Equal(t, 0, eval.FoundCount)
	assert.Equal(t, []string{"completely"}, eval.NotFound)
}
