// Package seed synthesizes demo candidate documents for cmd/rankctl and
// integration tests, including the `name_soundex` field. The scorer
// itself never computes phonetics (spec.md §4.5); something upstream of
// it must have, and for the demo corpus that something is this seeder.
package seed

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/foodsearch/fuzzyrank/pkg/models"
)

// Restaurant is the minimal shape a demo establishment is described
// with before it's expanded into a full candidate document.
type Restaurant struct {
	ID   string
	Name string
	Dep  int
	Lat  float64
	Lng  float64
}

// Document expands a Restaurant into the full candidate-document shape
// the scoring pipeline reads: name, name_search, name_no_space, and
// name_soundex derived from name, plus the pass-through geo/dep fields.
func Document(r Restaurant) models.Document {
	cleaned := strings.ToLower(strings.TrimSpace(r.Name))
	noSpace := strings.ReplaceAll(cleaned, " ", "")

	return models.Document{
		"id":            r.ID,
		"name":          r.Name,
		"name_search":   cleaned,
		"name_no_space": noSpace,
		"name_soundex":  Soundex(cleaned),
		"dep":           r.Dep,
		"_geo": map[string]any{
			"lat": r.Lat,
			"lng": r.Lng,
		},
	}
}

// Soundex computes whitespace-separated per-word soundex codes for s,
// matching the shape QueryData.soundex arrives in (spec.md §3).
func Soundex(s string) string {
	words := strings.Fields(s)
	codes := make([]string, 0, len(words))
	for _, w := range words {
		codes = append(codes, matchr.Soundex(w))
	}
	return strings.Join(codes, " ")
}

// Query builds a QueryData for raw text the same way an upstream
// preprocessing service would (spec.md §3): cleaning is just
// lowercasing/trimming here since diacritics removal is out of scope for
// the demo seeder.
func Query(text string) models.QueryData {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	noSpace := strings.ReplaceAll(cleaned, " ", "")

	return models.QueryData{
		Original:       text,
		Cleaned:        cleaned,
		NoSpace:        noSpace,
		Soundex:        Soundex(cleaned),
		OriginalLength: len([]rune(text)),
		CleanedLength:  len([]rune(cleaned)),
		NoSpaceLength:  len([]rune(noSpace)),
		WordsCleaned:   strings.Fields(cleaned),
		WordsOriginal:  strings.Fields(text),
		WordsNoSpace:   strings.Fields(noSpace),
	}
}

// Demo returns a small, fixed corpus of French restaurant names spread
// across a few departments and coordinates, for cmd/rankctl's `seed`
// subcommand and integration tests.
func Demo() []Restaurant {
	return []Restaurant{
		{ID: "1", Name: "Petit Resto", Dep: 75, Lat: 48.8566, Lng: 2.3522},
		{ID: "2", Name: "Le Petit Resto de la Gare", Dep: 75, Lat: 48.8500, Lng: 2.3600},
		{ID: "3", Name: "Grand Café Saint Jean", Dep: 69, Lat: 45.7640, Lng: 4.8357},
		{ID: "4", Name: "Auberge du Mont Blanc", Dep: 74, Lat: 45.9237, Lng: 6.8694},
		{ID: "5", Name: "Pizzeria Napoli", Dep: 13, Lat: 43.2965, Lng: 5.3698},
		{ID: "6", Name: "Crêperie Bretonne", Dep: 35, Lat: 48.1173, Lng: -1.6778},
		{ID: "7", Name: "Boulangerie du Coin", Dep: 75, Lat: 48.8600, Lng: 2.3400},
		{ID: "8", Name: "Sandwicherie Express", Dep: 92, Lat: 48.8924, Lng: 2.2469},
		{ID: "9", Name: "Bistrot Chez Marcel", Dep: 33, Lat: 44.8378, Lng: -0.5792},
		{ID: "10", Name: "Café de la Paix", Dep: 75, Lat: 48.8707, Lng: 2.3317},
	}
}
