// Package models defines the data types shared across the scoring,
// ranking, and transport layers: the query representation, the opaque
// candidate document, and the scored hit produced by the ranker.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// QueryData is the preprocessed query handed to the scoring pipeline.
// It is produced upstream (cleaning, tokenization, soundex generation are
// out of scope here) and is treated as immutable for the life of one
// request.
type QueryData struct {
	Original       string   `json:"original"`
	Cleaned        string   `json:"cleaned"`
	NoSpace        string   `json:"no_space"`
	Soundex        string   `json:"soundex"`
	OriginalLength int      `json:"original_length"`
	CleanedLength  int      `json:"cleaned_length"`
	NoSpaceLength  int      `json:"no_space_length"`
	WordsCleaned   []string `json:"wordsCleaned"`
	WordsOriginal  []string `json:"wordsOriginal"`
	WordsNoSpace   []string `json:"wordsNoSpace"`
}

// Empty reports whether the query carries no cleaned words, the trigger
// for the "empty query" edge case (spec.md §7): the textual score of
// every hit is 0 with match type "partial". A phonetic match can still
// give a hit a nonzero final score through the phonetic fallback.
func (q QueryData) Empty() bool {
	return len(q.WordsCleaned) == 0
}

// Document is an opaque candidate document coming back from the external
// index service. Scoring only reads a handful of named attributes; every
// other key is carried through untouched. Document is never mutated by
// the scoring pipeline — augmented copies are produced instead.
type Document map[string]any

// Clone returns a shallow copy of the document suitable for augmenting
// with `_`-prefixed scoring fields without mutating the input.
func (d Document) Clone() Document {
	out := make(Document, len(d)+8)
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (d Document) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := d[k]; ok && v != nil {
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

// ID returns the document's identity, preferring "id" over "id_etab".
func (d Document) ID() string { return d.str("id", "id_etab") }

// Name returns the document's canonical display name, preferring "name"
// over "nom".
func (d Document) Name() string { return d.str("name", "nom") }

// NameSearch returns the pre-cleaned, tokenized name field.
func (d Document) NameSearch() string { return d.str("name_search") }

// NameNoSpace returns the space-collapsed name field.
func (d Document) NameNoSpace() string { return d.str("name_no_space") }

// NameSoundex returns the precomputed phonetic tokens.
func (d Document) NameSoundex() string { return d.str("name_soundex") }

// Dept returns the department code and whether it was integer-coercible.
// A non-numeric "dep" is ignored by the histogram, not an error
// (spec.md §7).
func (d Document) Dept() (int, bool) {
	v, ok := d["dep"]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// GeoPoint returns the document's latitude/longitude if present in any of
// the accepted encodings: `_geo.lat`/`_geo.lng`, top-level `lat`/`lng`, or
// top-level `lat`/`long`.
func (d Document) GeoPoint() (lat, lng float64, ok bool) {
	if geo, isMap := d["_geo"].(map[string]any); isMap {
		if la, laOK := toFloat(geo["lat"]); laOK {
			if lo, loOK := toFloat(geo["lng"]); loOK {
				return la, lo, true
			}
		}
	}
	la, laOK := toFloat(d["lat"])
	if !laOK {
		return 0, 0, false
	}
	if lo, loOK := toFloat(d["lng"]); loOK {
		return la, lo, true
	}
	if lo, loOK := toFloat(d["long"]); loOK {
		return la, lo, true
	}
	return 0, 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Alignment records one query-word-to-candidate-word pairing produced by
// the field evaluator.
type Alignment struct {
	QueryWord   string `json:"query_word"`
	MatchedWord string `json:"matched_word"`
	Distance    int    `json:"distance"`
	Type        string `json:"type"` // exact, synonym, levenshtein
	Position    int    `json:"position"`
}

// Match type tags, enumerated per spec.md §4.3.
const (
	MatchExactFull        = "exact_full"
	MatchExactWithExtras  = "exact_with_extras"
	MatchNoSpaceMatch     = "no_space_match"
	MatchNearPerfect      = "near_perfect"
	MatchPhoneticStrict   = "phonetic_strict"
	MatchExactWithMissing = "exact_with_missing"
	MatchFuzzyFull        = "fuzzy_full"
	MatchHybrid           = "hybrid"
	MatchPhoneticTolerant = "phonetic_tolerant"
	MatchFuzzyPartial     = "fuzzy_partial"
	MatchPartial          = "partial"
)

// Match method tags, per the ScoredHit `_match_method` field.
const (
	MethodTextOnly         = "text_only"
	MethodWeighted         = "weighted"
	MethodPhoneticFallback = "phonetic_fallback"
	MethodError            = "error"
)

// Penalties is the aggregate penalty bundle produced by one field
// evaluation, also used as the tie-break vector during ranking.
type Penalties struct {
	Missing          int     `json:"missing"`
	AvgDistance      float64 `json:"avg_distance"`
	LengthRatio      float64 `json:"length_ratio"`
	CoverageRatio    float64 `json:"coverage_ratio"`
	ExtraLength      int     `json:"extra_length"`
	ExtraLengthRatio float64 `json:"extra_length_ratio"`
}

// FieldEvaluation is the per-field output of the greedy token-alignment
// evaluator (spec.md §4.3).
type FieldEvaluation struct {
	Found            []Alignment `json:"found"`
	NotFound         []string    `json:"not_found"`
	TotalDistance    int         `json:"total_distance"`
	AverageDistance  float64     `json:"average_distance"`
	FoundCount       int         `json:"found_count"`
	QueryCount       int         `json:"query_count"`
	ResultCount      int         `json:"result_count"`
	ExtraLength      int         `json:"extra_length"`
	ExtraLengthRatio float64     `json:"extra_length_ratio"`
	Penalties        Penalties   `json:"penalties"`
}

// ScoredHit is a candidate document augmented with the scoring fields the
// ranker computes. The underlying Document is never mutated; ScoredHit
// holds the original fields plus the new `_`-prefixed ones.
type ScoredHit struct {
	Document          Document
	Score             float64
	MatchType         string
	MatchPriority     int
	DiscoveryStrategy string
	MatchMethod       string
	Capped            bool
	PenaltyIndices    Penalties
}

// MarshalJSON flattens the document's pass-through fields together with
// the `_`-prefixed scoring fields into a single JSON object, the shape
// spec.md §6 describes for each entry in `hits`.
func (h ScoredHit) MarshalJSON() ([]byte, error) {
	out := h.Document.Clone()
	out["_score"] = roundTo(h.Score, 2)
	out["_match_type"] = h.MatchType
	out["_match_priority"] = h.MatchPriority
	out["_discovery_strategy"] = h.DiscoveryStrategy
	out["_match_method"] = h.MatchMethod
	if h.Capped {
		out["_capped"] = true
	}
	out["_penalty_indices"] = h.PenaltyIndices
	return json.Marshal(map[string]any(out))
}

func roundTo(v float64, places int) float64 {
	mul := 1.0
	for i := 0; i < places; i++ {
		mul *= 10
	}
	return float64(int64(v*mul+sign(v)*0.5)) / mul
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
