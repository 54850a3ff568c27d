// Package evaluator implements the C3 FieldEvaluator: greedy best-match
// alignment of query tokens to candidate tokens (spec.md §4.3).
package evaluator

import (
	"strings"

	"github.com/foodsearch/fuzzyrank/internal/distance"
	"github.com/foodsearch/fuzzyrank/internal/synonym"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

// Evaluator aligns query words to candidate words one field at a time.
type Evaluator struct {
	maxDistance int
	synonyms    *synonym.Index
	dist        *distance.StringDistance
}

// New builds an Evaluator bound to a maximum edit distance, a synonym
// index, and a shared (process-wide) distance memo.
func New(maxDistance int, synonyms *synonym.Index, dist *distance.StringDistance) *Evaluator {
	return &Evaluator{maxDistance: maxDistance, synonyms: synonyms, dist: dist}
}

type wordMatch struct {
	distance int
	typ      string
	matched  string
	position int
}

// matchWords scores one (query word, candidate word) pair: exact,
// synonym, or bounded Levenshtein, in that priority order.
func (e *Evaluator) matchWords(queryWord, candidateWord string) wordMatch {
	q := strings.ToLower(queryWord)
	c := strings.ToLower(candidateWord)

	if q == c {
		return wordMatch{distance: 0, typ: "exact", matched: candidateWord}
	}
	if e.synonyms != nil && e.synonyms.IsSynonym(q, c) {
		return wordMatch{distance: 0, typ: "synonym", matched: candidateWord}
	}

	capDist := e.maxDistance
	if dm := distance.DynamicMax(q); dm < capDist {
		capDist = dm
	}
	d := e.dist.Distance(q, c, capDist)
	return wordMatch{distance: d, typ: "levenshtein", matched: candidateWord}
}

// findBestMatch scans every unused candidate position for the lowest
// distance, returning the first-wins-on-tie candidate (ascending index
// order) and early-exiting on an exact (distance 0) match.
func (e *Evaluator) findBestMatch(queryWord string, candidateWords []string, used []bool) (wordMatch, bool) {
	best := wordMatch{distance: e.maxDistance + 1}
	found := false

	for pos, candidateWord := range candidateWords {
		if used[pos] {
			continue
		}
		m := e.matchWords(queryWord, candidateWord)
		if m.distance < best.distance {
			m.position = pos
			best = m
			found = true
			if best.distance == 0 {
				break
			}
		}
	}

	if found {
		used[best.position] = true
	}
	return best, found
}

// Evaluate compares query words to candidate words for one field view,
// returning the full FieldEvaluation (spec.md §4.3).
func (e *Evaluator) Evaluate(queryWords, candidateWords []string, queryText string) models.FieldEvaluation {
	used := make([]bool, len(candidateWords))

	var found []models.Alignment
	var notFound []string
	totalDistance := 0

	for _, qWord := range queryWords {
		best, ok := e.findBestMatch(qWord, candidateWords, used)
		if ok && best.distance <= e.maxDistance {
			found = append(found, models.Alignment{
				QueryWord:   qWord,
				MatchedWord: best.matched,
				Distance:    best.distance,
				Type:        best.typ,
				Position:    best.position,
			})
			totalDistance += best.distance
		} else {
			notFound = append(notFound, qWord)
		}
	}

	foundCount := len(found)
	queryCount := len(queryWords)
	resultCount := len(candidateWords)

	avgDistance := 0.0
	if foundCount > 0 {
		avgDistance = float64(totalDistance) / float64(foundCount)
	}

	lengthRatio := 1.0
	if queryCount > 0 && resultCount > 0 {
		lengthRatio = float64(minInt(queryCount, resultCount)) / float64(maxInt(queryCount, resultCount))
	}

	coverageRatio := 1.0
	if queryCount > 0 {
		coverageRatio = float64(foundCount) / float64(queryCount)
	}

	foundPositions := make(map[int]bool, len(found))
	for _, f := range found {
		foundPositions[f.Position] = true
	}
	extraLength := 0
	for pos, word := range candidateWords {
		if !foundPositions[pos] {
			extraLength += len([]rune(word))
		}
	}

	extraLengthRatio := 0.0
	queryLength := len([]rune(queryText))
	if queryLength > 0 {
		extraLengthRatio = float64(extraLength) / float64(queryLength)
	}

	missing := len(notFound)

	return models.FieldEvaluation{
		Found:            found,
		NotFound:         notFound,
		TotalDistance:    totalDistance,
		AverageDistance:  avgDistance,
		FoundCount:       foundCount,
		QueryCount:       queryCount,
		ResultCount:      resultCount,
		ExtraLength:      extraLength,
		ExtraLengthRatio: extraLengthRatio,
		Penalties: models.Penalties{
			Missing:          missing,
			AvgDistance:      avgDistance,
			LengthRatio:      lengthRatio,
			CoverageRatio:    coverageRatio,
			ExtraLength:      extraLength,
			ExtraLengthRatio: extraLengthRatio,
		},
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Tokenize splits s on whitespace into case-preserving tokens (the
// evaluator lowercases per-comparison, not per-token, so the original
// case is kept for display in alignments).
func Tokenize(s string) []string {
	return strings.Fields(strings.TrimSpace(s))
}
