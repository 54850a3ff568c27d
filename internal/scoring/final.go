package scoring

import (
	"math"

	"github.com/foodsearch/fuzzyrank/pkg/models"
)

// FinalScorer hybridizes the composed textual score with the phonetic
// alternative (spec.md §4.6, grounded on calculate_final_score).
type FinalScorer struct{}

// NewFinalScorer builds a FinalScorer. It carries no state: the
// hybridization thresholds are fixed constants in the original
// implementation, not configuration.
func NewFinalScorer() *FinalScorer {
	return &FinalScorer{}
}

// Score blends a MainScore with an optional PhoneticResult into the final
// published score, match type, and match method.
func (f *FinalScorer) Score(main MainScore, phon *PhoneticResult) (score float64, matchType string, method string) {
	textScore := main.TotalScore

	if textScore >= 8.5 {
		return textScore, main.MatchType, models.MethodTextOnly
	}

	if phon != nil && textScore >= 6.0 && textScore < 8.5 && phon.Score > 0 {
		weightText := 0.7 + textScore/40.0
		weightPhon := 1 - weightText
		blended := weightText*textScore + weightPhon*phon.Score
		return round2(blended), models.MatchHybrid, models.MethodWeighted
	}

	if phon != nil && phon.Score > textScore {
		return phon.Score, phon.MatchType, models.MethodPhoneticFallback
	}

	return textScore, main.MatchType, models.MethodTextOnly
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
