// Package ranker implements the C7 Ranker: cross-strategy deduplication,
// data-parallel scoring, filtering, the multi-key stable sort, and the
// exact short-circuit (spec.md §4.7).
package ranker

import (
	"runtime"
	"sort"
	"sync"

	"github.com/foodsearch/fuzzyrank/internal/config"
	"github.com/foodsearch/fuzzyrank/internal/scoring"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

// StrategyOrder is the fixed deduplication priority (spec.md §4.7).
var StrategyOrder = []string{"name_search", "no_space", "standard", "phonetic"}

// StrategyResults maps a retrieval strategy name to the candidate
// documents it surfaced.
type StrategyResults map[string][]models.Document

// Ranker deduplicates, scores, filters, and sorts candidate documents
// gathered across the retrieval strategies.
type Ranker struct {
	cfg      *config.Config
	composer *scoring.Composer
	phonetic *scoring.PhoneticScorer
	final    *scoring.FinalScorer
}

// New builds a Ranker bound to a configuration and the C4/C5/C6 scoring
// components.
func New(cfg *config.Config, composer *scoring.Composer, phonetic *scoring.PhoneticScorer, final *scoring.FinalScorer) *Ranker {
	return &Ranker{cfg: cfg, composer: composer, phonetic: phonetic, final: final}
}

// Dedupe merges per-strategy candidate lists into one unique set, in the
// fixed priority order, stamping each survivor with the strategy that
// first surfaced it.
func Dedupe(results StrategyResults) []models.Document {
	seen := make(map[string]bool)
	var unique []models.Document

	for _, strat := range StrategyOrder {
		for _, doc := range results[strat] {
			key := dedupeKey(doc)
			if seen[key] {
				continue
			}
			seen[key] = true

			stamped := doc.Clone()
			stamped["_discovery_strategy"] = strat
			unique = append(unique, stamped)
		}
	}
	return unique
}

func dedupeKey(doc models.Document) string {
	if id := doc.ID(); id != "" {
		return id
	}
	name := doc.Name()
	if len(name) > 200 {
		return name[:200]
	}
	return name
}

// Rank scores, filters, sorts, and short-circuits the deduplicated
// candidates against one query (spec.md §4.7).
func (r *Ranker) Rank(unique []models.Document, q models.QueryData) []models.ScoredHit {
	scored := r.scoreParallel(unique, q)

	filtered := make([]models.ScoredHit, 0, len(scored))
	for _, hit := range scored {
		if hit.Score >= r.cfg.MinScore {
			filtered = append(filtered, hit)
		}
	}

	sortHits(filtered)

	return shortCircuit(filtered, r.cfg.ExactThreshold)
}

// scoreParallel runs C4+C5+C6 for every candidate concurrently. Each
// worker owns a disjoint slice of result positions, so no synchronization
// beyond the WaitGroup is required and the output order matches the
// input order regardless of scheduling.
func (r *Ranker) scoreParallel(docs []models.Document, q models.QueryData) []models.ScoredHit {
	n := len(docs)
	out := make([]models.ScoredHit, n)
	if n == 0 {
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = r.scoreOne(docs[i], q)
			}
		}(start, end)
	}
	wg.Wait()

	return out
}

func (r *Ranker) scoreOne(doc models.Document, q models.QueryData) models.ScoredHit {
	main := r.composer.Compose(doc, q)

	var phonPtr *scoring.PhoneticResult
	if phon, ok := r.phonetic.Score(doc, q); ok {
		phonPtr = &phon
	}

	score, matchType, method := r.final.Score(main, phonPtr)

	capped := false
	switch {
	case matchType == models.MatchExactFull:
		// total_score can run past 10.0 (the name-view bonus is additive
		// on top of an already-perfect base score); exact_full is the
		// only type allowed to reach the ceiling exactly.
		score = minFloat(score, r.cfg.ExactThreshold)
	case score >= r.cfg.ExactThreshold:
		score = r.cfg.ExactFullCap
		capped = true
	}

	strategy, _ := doc["_discovery_strategy"].(string)

	return models.ScoredHit{
		Document:          doc,
		Score:             score,
		MatchType:         matchType,
		MatchPriority:     r.cfg.TypePriority[matchType],
		DiscoveryStrategy: strategy,
		MatchMethod:       method,
		Capped:            capped,
		PenaltyIndices:    main.PenaltyIndices,
	}
}

// sortHits applies the spec's multi-key comparator in place: score
// descending, match priority ascending, penalty tie-breaks, then
// lexicographic id as a stable fallback.
func sortHits(hits []models.ScoredHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]

		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.MatchPriority != b.MatchPriority {
			return a.MatchPriority < b.MatchPriority
		}

		ae, be := a.PenaltyIndices.ExtraLengthRatio, b.PenaltyIndices.ExtraLengthRatio
		if absFloat(ae-be) > 0.01 {
			return ae < be
		}

		al, bl := a.PenaltyIndices.LengthRatio, b.PenaltyIndices.LengthRatio
		if absFloat(al-bl) > 0.001 {
			return al > bl
		}

		if a.PenaltyIndices.AvgDistance != b.PenaltyIndices.AvgDistance {
			return a.PenaltyIndices.AvgDistance < b.PenaltyIndices.AvgDistance
		}

		return a.Document.ID() < b.Document.ID()
	})
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// shortCircuit restricts the output to exact-threshold hits whenever at
// least one exists.
func shortCircuit(hits []models.ScoredHit, threshold float64) []models.ScoredHit {
	for _, h := range hits {
		if h.Score >= threshold {
			out := make([]models.ScoredHit, 0, len(hits))
			for _, h2 := range hits {
				if h2.Score >= threshold {
					out = append(out, h2)
				}
			}
			return out
		}
	}
	return hits
}
