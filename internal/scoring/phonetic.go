package scoring

import (
	"strings"

	"github.com/foodsearch/fuzzyrank/internal/distance"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

// PhoneticResult is the outcome of the C5 phonetic scorer (spec.md §4.5).
type PhoneticResult struct {
	Score     float64
	Ratio     float64
	MatchType string // phonetic_strict or phonetic_tolerant
}

// PhoneticScorer matches precomputed soundex-like tokens between a query
// and a candidate document. It never computes phonetics itself — both
// sides arrive pre-tokenized.
type PhoneticScorer struct {
	dist *distance.StringDistance
}

// NewPhoneticScorer builds a PhoneticScorer sharing the process-wide
// distance memo.
func NewPhoneticScorer(dist *distance.StringDistance) *PhoneticScorer {
	return &PhoneticScorer{dist: dist}
}

// phoneticTokens splits on whitespace and drops tokens of length <= 1.
func phoneticTokens(s string) []string {
	var out []string
	for _, t := range strings.Fields(strings.ToLower(strings.TrimSpace(s))) {
		if len([]rune(t)) > 1 {
			out = append(out, t)
		}
	}
	return out
}

type phoneticMatch struct {
	found int
}

// matchTokens runs one matching pass (strict or tolerant) over the query
// tokens against unused candidate tokens, in order (spec.md §4.5).
func (p *PhoneticScorer) matchTokens(queryTokens, candidateTokens []string, tolerant bool) phoneticMatch {
	used := make([]bool, len(candidateTokens))
	matches := 0

	for _, qt := range queryTokens {
		bestIdx := -1

		for idx, ct := range candidateTokens {
			if used[idx] {
				continue
			}

			if qt == ct {
				bestIdx = idx
				break
			}

			minLen := minInt(len([]rune(qt)), len([]rune(ct)))
			if minLen >= 4 && (strings.HasPrefix(qt, ct) || strings.HasPrefix(ct, qt)) {
				bestIdx = idx
				break
			}

			if tolerant && minLen >= 6 && p.dist.Distance(qt, ct, 1) <= 1 {
				bestIdx = idx
			}
		}

		if bestIdx != -1 {
			used[bestIdx] = true
			matches++
		}
	}

	return phoneticMatch{found: matches}
}

func phoneticScoreFromRatio(ratio float64) float64 {
	score := 8 * ratio
	switch {
	case ratio == 1.0:
		return minFloat(7.5, score)
	case ratio >= 0.66:
		return minFloat(7.0, score)
	default:
		return minFloat(6.0, score)
	}
}

// Score computes the phonetic score for a candidate document against the
// query's precomputed soundex tokens. It returns false if either side has
// no usable tokens.
func (p *PhoneticScorer) Score(doc models.Document, q models.QueryData) (PhoneticResult, bool) {
	qTokens := phoneticTokens(q.Soundex)
	hTokens := phoneticTokens(doc.NameSoundex())
	if len(qTokens) == 0 || len(hTokens) == 0 {
		return PhoneticResult{}, false
	}

	strict := p.matchTokens(qTokens, hTokens, false)
	ratio := float64(strict.found) / float64(len(qTokens))
	matchType := models.MatchPhoneticStrict
	score := phoneticScoreFromRatio(ratio)

	if score < 6.0 {
		tolerant := p.matchTokens(qTokens, hTokens, true)
		ratioTol := float64(tolerant.found) / float64(len(qTokens))
		if ratioTol > ratio {
			ratio = ratioTol
			matchType = models.MatchPhoneticTolerant
			score = phoneticScoreFromRatio(ratio)
		}
	}

	return PhoneticResult{Score: score, Ratio: ratio, MatchType: matchType}, true
}
