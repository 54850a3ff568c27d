// Package geo implements the C8 GeoDisperser: deterministic round-robin
// dispersion of scored hits across a lat/lng grid, so a page of results
// doesn't cluster entirely inside one city block (spec.md §4.8).
package geo

import (
	"fmt"
	"math"
	"sort"

	"github.com/foodsearch/fuzzyrank/pkg/models"
)

// DefaultGridSize is the documented default cell size, ≈11km on a side.
const DefaultGridSize = 0.1

// Disperse partitions hits into geo-located and non-geo buckets, groups
// the geo-located ones into grid cells, and emits them in round-robin
// order across the sorted cells, followed by the non-geo hits in their
// original order. Every input hit appears exactly once in the output.
func Disperse(hits []models.ScoredHit, gridSize float64) []models.ScoredHit {
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}

	cells := make(map[string][]models.ScoredHit)
	var nonGeo []models.ScoredHit

	for _, h := range hits {
		lat, lng, ok := h.Document.GeoPoint()
		if !ok {
			nonGeo = append(nonGeo, h)
			continue
		}
		key := cellKey(lat, lng, gridSize)
		cells[key] = append(cells[key], h)
	}

	keys := make([]string, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		sortCell(cells[k])
	}

	out := make([]models.ScoredHit, 0, len(hits))
	for round := 0; ; round++ {
		any := false
		for _, k := range keys {
			cell := cells[k]
			if round < len(cell) {
				out = append(out, cell[round])
				any = true
			}
		}
		if !any {
			break
		}
	}

	out = append(out, nonGeo...)
	return out
}

func cellKey(lat, lng, gridSize float64) string {
	return fmt.Sprintf("%d_%d", int(math.Floor(lat/gridSize)), int(math.Floor(lng/gridSize)))
}

// sortCell orders one cell's hits by (id, name, lat, lng) so the
// round-robin draw order is deterministic regardless of how the cell's
// members arrived.
func sortCell(hits []models.ScoredHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Document.ID() != b.Document.ID() {
			return a.Document.ID() < b.Document.ID()
		}
		if a.Document.Name() != b.Document.Name() {
			return a.Document.Name() < b.Document.Name()
		}
		alat, alng, _ := a.Document.GeoPoint()
		blat, blng, _ := b.Document.GeoPoint()
		if alat != blat {
			return alat < blat
		}
		return alng < blng
	})
}
