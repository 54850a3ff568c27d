// Package coordinator implements C9 SearchCoordinator: it fans out the
// retrieval strategies against an external index service, hands the
// results to the ranker, runs enrichment, and assembles the public
// search response (spec.md §4.9, §6).
package coordinator

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodsearch/fuzzyrank/internal/config"
	"github.com/foodsearch/fuzzyrank/internal/ranker"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

// RetrievalResult is one strategy's answer from the index service.
type RetrievalResult struct {
	Hits               []models.Document
	EstimatedTotalHits int
}

// IndexClient is the black-box retrieval port (spec.md §1): one
// operation taking an index, a query against a searchable attribute, and
// paging/sort/filter options, returning candidate documents plus the
// backend's own total estimate. Implementations are out of scope for
// this repository; internal/store provides a reference one for the demo
// CLI and integration tests.
type IndexClient interface {
	Search(ctx context.Context, index, attribute, query string, opts models.SearchOptions) (RetrievalResult, error)
}

// EnrichmentClient is the black-box per-user annotation port (spec.md
// §1): it stamps `isDeleted`, `isWaiting`, `isModified`, and `hasFavori`
// onto each hit for a given user.
type EnrichmentClient interface {
	Enrich(ctx context.Context, hits []models.ScoredHit, userID int) ([]models.ScoredHit, error)
}

// Coordinator orchestrates the parallel retrieval fan-out, the ranker,
// and enrichment behind the public Search operation.
type Coordinator struct {
	index      IndexClient
	enrichment EnrichmentClient
	ranker     *ranker.Ranker
	cfg        *config.Config
	log        *zap.Logger
}

// New builds a Coordinator. enrichment may be nil — the per-user
// annotation step is then skipped entirely, same as an unauthenticated
// request.
func New(index IndexClient, enrichment EnrichmentClient, r *ranker.Ranker, cfg *config.Config, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{index: index, enrichment: enrichment, ranker: r, cfg: cfg, log: log}
}

// strategyAttribute maps a retrieval strategy to the attribute the index
// service should search against.
var strategyAttribute = map[string]string{
	"name_search": "name_search",
	"no_space":    "name_no_space",
	"standard":    "name",
	"phonetic":    "name_soundex",
}

// Search runs the full pipeline for either a raw-string query or a
// structured QueryData (spec.md §4.9). query is nil for the "no query"
// branch, a string for raw text, or a models.QueryData value for
// structured input; any other type (pointers included) is rejected.
func (c *Coordinator) Search(ctx context.Context, index string, query any, opts models.SearchOptions, userID *int) (models.SearchResponse, error) {
	opts = opts.Normalize()
	requestID := uuid.New().String()
	start := time.Now()

	var (
		resp models.SearchResponse
		err  error
	)

	switch q := query.(type) {
	case nil:
		resp, err = c.searchRaw(ctx, index, "", opts)
	case string:
		resp, err = c.searchRaw(ctx, index, q, opts)
	case models.QueryData:
		resp, err = c.searchStructured(ctx, index, q, opts)
		resp.Preprocessing = &q
	default:
		return models.SearchResponse{}, fmt.Errorf("coordinator: unsupported query type %T", query)
	}
	if err != nil {
		c.log.Info("search failed",
			zap.String("request_id", requestID),
			zap.String("index", index),
			zap.Error(err),
		)
		return models.SearchResponse{}, err
	}

	if userID != nil && c.enrichment != nil {
		if *userID > 0 {
			enriched, enrichErr := c.enrichment.Enrich(ctx, resp.Hits, *userID)
			if enrichErr != nil {
				return models.SearchResponse{}, fmt.Errorf("coordinator: enrichment: %w", enrichErr)
			}
			resp.Hits = enriched
		}
		// user_id <= 0 is rejected for the per-user annotation but the
		// base search still succeeds (spec.md §7).
	}

	resp.QueryTimeMs = roundMs(time.Since(start))
	resp.MemoryUsedMb = memoryUsedMB()

	c.log.Info("search completed",
		zap.String("request_id", requestID),
		zap.String("index", index),
		zap.Int("total", resp.Total),
		zap.Float64("query_time_ms", resp.QueryTimeMs),
	)

	return resp, nil
}

// searchRaw handles the null/string-query branch: a single retrieval
// against "name", no ranking pipeline involved.
func (c *Coordinator) searchRaw(ctx context.Context, index, text string, opts models.SearchOptions) (models.SearchResponse, error) {
	result, err := c.index.Search(ctx, index, "name", text, opts)
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("coordinator: retrieval: %w", err)
	}

	hits := make([]models.ScoredHit, 0, len(result.Hits))
	for _, doc := range result.Hits {
		hits = append(hits, models.ScoredHit{Document: doc})
	}

	return models.SearchResponse{
		Hits:              hits,
		Total:             len(hits),
		TotalBeforeFilter: result.EstimatedTotalHits,
		CountPerDep:       countPerDep(hits),
	}, nil
}

// searchStructured handles the QueryData branch: up to four parallel
// retrieval strategies, cancelled all-or-nothing on any failure
// (spec.md §5, §7), then ranking and histogramming.
func (c *Coordinator) searchStructured(ctx context.Context, index string, q models.QueryData, opts models.SearchOptions) (models.SearchResponse, error) {
	strategies := []string{"name_search", "no_space", "standard"}
	if q.Soundex != "" {
		strategies = append(strategies, "phonetic")
	}

	results, totalBeforeFilter, err := c.fanOut(ctx, index, strategies, q, opts)
	if err != nil {
		return models.SearchResponse{}, err
	}

	unique := ranker.Dedupe(results)
	ranked := c.ranker.Rank(unique, q)

	exactCount := 0
	for _, h := range ranked {
		if h.Score >= c.cfg.ExactThreshold {
			exactCount++
		}
	}

	return models.SearchResponse{
		Hits:              ranked,
		Total:             len(ranked),
		HasExactResults:   exactCount > 0,
		ExactCount:        exactCount,
		TotalBeforeFilter: totalBeforeFilter,
		CountPerDep:       countPerDep(ranked),
	}, nil
}

type strategyOutcome struct {
	strategy string
	result   RetrievalResult
	err      error
}

// fanOut launches one retrieval per strategy concurrently and collects
// them into a priority-keyed map. If any strategy fails, all others are
// cancelled and the whole request fails (spec.md §7: "fail the whole
// request").
func (c *Coordinator) fanOut(ctx context.Context, index string, strategies []string, q models.QueryData, opts models.SearchOptions) (ranker.StrategyResults, int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queryText := map[string]string{
		"name_search": q.Cleaned,
		"no_space":    q.NoSpace,
		"standard":    q.Original,
		"phonetic":    q.Soundex,
	}

	outcomes := make(chan strategyOutcome, len(strategies))
	var wg sync.WaitGroup
	for _, strat := range strategies {
		wg.Add(1)
		go func(strat string) {
			defer wg.Done()
			t0 := time.Now()
			res, err := c.index.Search(ctx, index, strategyAttribute[strat], queryText[strat], opts)
			c.log.Debug("strategy fan-out",
				zap.String("strategy", strat),
				zap.Duration("elapsed", time.Since(t0)),
				zap.Error(err),
			)
			outcomes <- strategyOutcome{strategy: strat, result: res, err: err}
		}(strat)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	results := make(ranker.StrategyResults, len(strategies))
	maxTotal := 0
	var firstErr error
	for o := range outcomes {
		if o.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("coordinator: strategy %q: %w", o.strategy, o.err)
				cancel()
			}
			continue
		}
		results[o.strategy] = o.result.Hits
		if o.result.EstimatedTotalHits > maxTotal {
			maxTotal = o.result.EstimatedTotalHits
		}
	}
	if firstErr != nil {
		return nil, 0, firstErr
	}

	return results, maxTotal, nil
}

// countPerDep builds the per-department histogram (spec.md §4.9):
// non-integer "dep" values are ignored for the histogram but the hit is
// kept in the results.
func countPerDep(hits []models.ScoredHit) map[string]int {
	counts := make(map[string]int)
	for _, h := range hits {
		dep, ok := h.Document.Dept()
		if !ok {
			continue
		}
		counts[fmt.Sprintf("%02d", dep)]++
	}
	return sortedCopy(counts)
}

// sortedCopy returns a copy of m, filled in ascending key order. The copy
// is still a Go map and keeps no order of its own: the sorted-by-key
// output of count_per_dep comes from encoding/json, which writes
// map[string]int keys in sorted order.
func sortedCopy(m map[string]int) map[string]int {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]int, len(m))
	for _, k := range keys {
		out[k] = m[k]
	}
	return out
}

// memoryUsedMB reports resident-set-ish usage at the end of one request
// (spec.md §6 `memory_used_mb`): the Go runtime's own allocator stats,
// the same shape the corpus's one other memory-reporting endpoint uses.
func memoryUsedMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / 1024 / 1024
}

func roundMs(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return float64(int64(ms*100+0.5)) / 100
}

// ParseUserID validates the raw user id per spec.md §7: a positive
// integer, otherwise the per-user annotation is skipped (not an error).
func ParseUserID(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
