// Package scoring implements C4 ScoreComposer, C5 PhoneticScorer, and C6
// FinalScorer (spec.md §4.4–4.6): the arbitration between candidate
// views, the phonetic alternative, and the hybridization of the two.
package scoring

import (
	"strings"

	"github.com/foodsearch/fuzzyrank/internal/config"
	"github.com/foodsearch/fuzzyrank/internal/evaluator"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

// MainScore is the result of composing the name_search, no_space, and
// name views for one candidate (spec.md §4.4).
type MainScore struct {
	NameSearchScore  float64
	NoSpaceScore     float64
	BaseScore        float64
	NameBonus        float64
	TotalScore       float64
	WinningStrategy  string // "name_search", "no_space", or "none"
	MatchType        string
	AllWordsFound    bool
	WinningFoundCt   int
	PenaltyIndices   models.Penalties
}

// Composer runs the field evaluator against three candidate views and
// arbitrates between them.
type Composer struct {
	cfg *config.Config
	ev  *evaluator.Evaluator
}

// NewComposer builds a Composer bound to a configuration and evaluator.
func NewComposer(cfg *config.Config, ev *evaluator.Evaluator) *Composer {
	return &Composer{cfg: cfg, ev: ev}
}

func tokenizeLower(s string) []string {
	return evaluator.Tokenize(strings.ToLower(strings.TrimSpace(s)))
}

// adjustedFieldScore applies the strategy-adjusted score formula from
// spec.md §4.3 to one field evaluation.
func (c *Composer) adjustedFieldScore(eval models.FieldEvaluation) float64 {
	if eval.FoundCount == 0 {
		return 0.0
	}
	score := clamp(0, 10, 10-float64(eval.TotalDistance))

	p := eval.Penalties
	penalty := c.cfg.WMissing*float64(p.Missing) +
		c.cfg.WFuzzy*maxFloat(0, p.AvgDistance) +
		c.cfg.WRatio*(1-clamp(0, 1, p.LengthRatio)) +
		c.cfg.WExtraLength*p.ExtraLengthRatio*10

	return maxFloat(0, score-penalty)
}

// Compose evaluates a document against the three candidate views and
// produces the composed score and match-type classification.
func (c *Composer) Compose(doc models.Document, q models.QueryData) MainScore {
	if q.Empty() {
		return MainScore{WinningStrategy: "none", MatchType: models.MatchPartial}
	}

	nameSearchWords := tokenizeLower(doc.NameSearch())
	noSpaceWords := tokenizeLower(doc.NameNoSpace())
	nameWords := tokenizeLower(doc.Name())

	evalSearch := c.ev.Evaluate(q.WordsCleaned, nameSearchWords, q.Cleaned)
	evalNoSpace := c.ev.Evaluate(q.WordsNoSpace, noSpaceWords, q.NoSpace)
	evalName := c.ev.Evaluate(q.WordsOriginal, nameWords, q.Original)

	nameSearchAdj := c.adjustedFieldScore(evalSearch)
	noSpaceAdj := c.adjustedFieldScore(evalNoSpace)
	if noSpaceAdj < c.cfg.NoSpaceMinScore {
		noSpaceAdj = 0.0
	}

	searchValid := nameSearchAdj > 0 && evalSearch.FoundCount > 0
	noSpaceValid := noSpaceAdj > 0 && evalNoSpace.FoundCount > 0

	var winningStrategy string
	var baseScore float64
	var winningEval models.FieldEvaluation

	switch {
	case noSpaceValid && (!searchValid || noSpaceAdj >= nameSearchAdj):
		winningStrategy = "no_space"
		baseScore = noSpaceAdj
		winningEval = evalNoSpace
	case searchValid:
		winningStrategy = "name_search"
		baseScore = nameSearchAdj
		winningEval = evalSearch
	default:
		winningStrategy = "none"
		baseScore = 0.0
		winningEval = evalSearch
	}

	bonus := c.nameBonus(evalName, q.WordsOriginal)
	totalScore := minFloat(12.0, baseScore+bonus)

	matchType := c.classify(winningEval, winningStrategy, totalScore)

	return MainScore{
		NameSearchScore: nameSearchAdj,
		NoSpaceScore:    noSpaceAdj,
		BaseScore:       baseScore,
		NameBonus:       bonus,
		TotalScore:      totalScore,
		WinningStrategy: winningStrategy,
		MatchType:       matchType,
		AllWordsFound:   winningEval.Penalties.Missing == 0,
		WinningFoundCt:  winningEval.FoundCount,
		PenaltyIndices:  winningEval.Penalties,
	}
}

// nameBonus computes the progressive bonus over the "name" view
// (spec.md §4.4).
func (c *Composer) nameBonus(evalName models.FieldEvaluation, queryWords []string) float64 {
	queryWordCount := len(queryWords)
	nameWordCount := evalName.ResultCount

	wordCountRatio := 0.0
	if nameWordCount > 0 {
		wordCountRatio = float64(minInt(queryWordCount, nameWordCount)) / float64(maxInt(queryWordCount, nameWordCount))
	}

	extraLengthRatio := evalName.ExtraLengthRatio

	if wordCountRatio < c.cfg.BonusWordRatioMin || extraLengthRatio > c.cfg.BonusExtraRatioMax {
		return 0.0
	}

	scoreTerms := 0.0
	for _, m := range evalName.Found {
		switch m.Distance {
		case 0:
			scoreTerms += 1.0
		case 1:
			scoreTerms += 0.7
		case 2:
			scoreTerms += 0.4
		default:
			scoreTerms += 0.2
		}
	}

	maxScore := maxInt(1, queryWordCount)
	scoreRatio := scoreTerms / float64(maxScore)

	bonusBase := c.cfg.BonusMax * scoreRatio

	reduction := c.cfg.BonusAMissing*float64(evalName.Penalties.Missing) +
		c.cfg.BonusCAvgDist*maxFloat(0, evalName.AverageDistance) +
		c.cfg.BonusMax*extraLengthRatio*0.6

	bonus := clamp(0, c.cfg.BonusMax, bonusBase-reduction)

	attenuationRange := 1.0 - c.cfg.BonusWordRatioMin
	attenuation := clamp(0, 1, (wordCountRatio-c.cfg.BonusWordRatioMin)/attenuationRange)

	return bonus * attenuation
}

// classify maps a winning field evaluation to one of the eleven
// enumerated match types (spec.md §4.4).
func (c *Composer) classify(winningEval models.FieldEvaluation, winningStrategy string, totalScore float64) string {
	if winningEval.FoundCount == 0 {
		return models.MatchPartial
	}

	avg := winningEval.AverageDistance
	missing := winningEval.Penalties.Missing
	extraRatio := winningEval.Penalties.ExtraLengthRatio

	var matchType string
	switch {
	case avg == 0 && missing == 0 && extraRatio == 0:
		matchType = models.MatchExactFull
	case avg == 0 && missing == 0 && winningStrategy == "no_space":
		matchType = models.MatchNoSpaceMatch
	case avg == 0 && missing == 0:
		matchType = models.MatchExactWithExtras
	case avg == 0 && missing > 0:
		matchType = models.MatchExactWithMissing
	case avg > 0 && missing == 0:
		matchType = models.MatchFuzzyFull
	default:
		matchType = models.MatchFuzzyPartial
	}

	if matchType == models.MatchFuzzyFull && totalScore >= 8.0 {
		matchType = models.MatchNearPerfect
	}
	return matchType
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
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
