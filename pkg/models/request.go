package models

import "encoding/json"

// SearchOptions controls a search call: retrieval limits, pagination, and
// the edit-distance ceiling (spec.md §6).
type SearchOptions struct {
	Limit       int      `json:"limit"`
	PerPage     int      `json:"per_page"`
	Offset      int      `json:"offset"`
	Sort        []string `json:"sort,omitempty"`
	Filters     []string `json:"filters,omitempty"`
	MaxDistance int      `json:"max_distance"`
}

// DefaultSearchOptions returns the documented defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit:       200,
		PerPage:     10,
		Offset:      0,
		MaxDistance: 4,
	}
}

// Normalize clamps option values into their documented ranges.
func (o SearchOptions) Normalize() SearchOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultSearchOptions().Limit
	}
	if o.Limit > 1_000_000 {
		o.Limit = 1_000_000
	}
	if o.PerPage <= 0 {
		o.PerPage = DefaultSearchOptions().PerPage
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.MaxDistance < 0 {
		o.MaxDistance = 0
	}
	if o.MaxDistance > 10 {
		o.MaxDistance = 10
	}
	return o
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	IndexName string          `json:"index_name"`
	QueryData json.RawMessage `json:"query_data"` // string, null, or QueryData object
	UserID    *int            `json:"user_id"`
	Options   SearchOptions   `json:"options"`
}

// SearchResponse is the body returned from POST /search.
type SearchResponse struct {
	Hits              []ScoredHit    `json:"hits"`
	Total             int            `json:"total"`
	HasExactResults   bool           `json:"has_exact_results"`
	ExactCount        int            `json:"exact_count"`
	TotalBeforeFilter int            `json:"total_before_filter"`
	QueryTimeMs       float64        `json:"query_time_ms"`
	Preprocessing     *QueryData     `json:"preprocessing"`
	MemoryUsedMb      float64        `json:"memory_used_mb"`
	CountPerDep       map[string]int `json:"count_per_dep"`
}
