// Package config loads the scoring weights, thresholds, match-type
// priorities, and synonym table that parameterize the ranking pipeline.
// The resulting Config is immutable once Load returns and is threaded
// into every scoring component at construction time — nothing in the
// scoring hot path reaches back into this package.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the single immutable configuration value threaded through
// the scoring pipeline (spec.md §6, §9).
type Config struct {
	MaxLevenshteinDistance int `yaml:"max_levenshtein_distance"`
	MinScore               float64 `yaml:"min_score"`

	WMissing     float64 `yaml:"w_missing"`
	WFuzzy       float64 `yaml:"w_fuzzy"`
	WRatio       float64 `yaml:"w_ratio"`
	WExtraLength float64 `yaml:"w_extra_length"`

	BonusMax           float64 `yaml:"bonus_max"`
	BonusAMissing      float64 `yaml:"bonus_a_missing"`
	BonusCAvgDist      float64 `yaml:"bonus_c_avgdist"`
	BonusWordRatioMin  float64 `yaml:"bonus_word_ratio_min"`
	BonusExtraRatioMax float64 `yaml:"bonus_extra_ratio_max"`

	ExactThreshold  float64 `yaml:"exact_threshold"`
	ExactFullCap    float64 `yaml:"exact_full_cap"`
	NoSpaceMinScore float64 `yaml:"no_space_min_score"`

	GeoDispersionGridSize float64 `yaml:"geo_dispersion_grid_size"`

	TypePriority map[string]int      `yaml:"type_priority"`
	Synonyms     map[string][]string `yaml:"synonyms"`
}

// Default returns the documented default configuration: spec.md §6's
// weights/thresholds and the full SYNONYMS_FR table from
// original_source/app/config.py.
func Default() *Config {
	return &Config{
		MaxLevenshteinDistance: 4,
		MinScore:               1.0,

		WMissing:     0.6,
		WFuzzy:       0.5,
		WRatio:       1.0,
		WExtraLength: 0.15,

		BonusMax:           2.0,
		BonusAMissing:      0.3,
		BonusCAvgDist:      0.35,
		BonusWordRatioMin:  0.4,
		BonusExtraRatioMax: 1.0,

		ExactThreshold:  10.0,
		ExactFullCap:    9.99,
		NoSpaceMinScore: 7.0,

		GeoDispersionGridSize: 0.1,

		TypePriority: defaultTypePriority(),
		Synonyms:     defaultSynonyms(),
	}
}

func defaultTypePriority() map[string]int {
	return map[string]int{
		"exact_full":         0,
		"exact_with_extras":  1,
		"no_space_match":     1,
		"near_perfect":       2,
		"phonetic_strict":    3,
		"exact_with_missing": 4,
		"fuzzy_full":         5,
		"hybrid":             6,
		"phonetic_tolerant":  7,
		"fuzzy_partial":      8,
		"partial":            9,
	}
}

// Load reads a YAML configuration document, falling back to documented
// defaults for any field it omits, then applies environment variable
// overrides for the scalar fields named in spec.md §6.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	envFloat("MAX_LEVENSHTEIN_DISTANCE", func(v float64) { cfg.MaxLevenshteinDistance = int(v) })
	envFloat("MIN_SCORE", func(v float64) { cfg.MinScore = v })
	envFloat("W_MISSING", func(v float64) { cfg.WMissing = v })
	envFloat("W_FUZZY", func(v float64) { cfg.WFuzzy = v })
	envFloat("W_RATIO", func(v float64) { cfg.WRatio = v })
	envFloat("W_EXTRA_LENGTH", func(v float64) { cfg.WExtraLength = v })
	envFloat("BONUS_MAX", func(v float64) { cfg.BonusMax = v })
	envFloat("BONUS_A_MISSING", func(v float64) { cfg.BonusAMissing = v })
	envFloat("BONUS_C_AVGDIST", func(v float64) { cfg.BonusCAvgDist = v })
	envFloat("BONUS_WORD_RATIO_MIN", func(v float64) { cfg.BonusWordRatioMin = v })
	envFloat("BONUS_EXTRA_RATIO_MAX", func(v float64) { cfg.BonusExtraRatioMax = v })
	envFloat("EXACT_THRESHOLD", func(v float64) { cfg.ExactThreshold = v })
	envFloat("EXACT_FULL_CAP", func(v float64) { cfg.ExactFullCap = v })
	envFloat("NO_SPACE_MIN_SCORE", func(v float64) { cfg.NoSpaceMinScore = v })
}

func envFloat(key string, set func(float64)) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return
	}
	set(v)
}
