// Package synonym implements the C2 SynonymIndex: a reverse lookup from
// any surface form to its canonical base form (spec.md §4.2).
package synonym

import "strings"

// Index is a flattened surface-form → canonical-base lookup table built
// once from a base→variants configuration map. Membership in the same
// canonical class is the synonymy relation; no cyclic structure is
// needed because the relation is equivalence-by-shared-base (spec.md §9).
type Index struct {
	base map[string]string
}

// NewIndex builds an Index from a base→variants map. Every canonical key
// also maps to itself, and lookup is case-insensitive.
func NewIndex(table map[string][]string) *Index {
	idx := &Index{base: make(map[string]string, len(table)*4)}
	for base, variants := range table {
		b := strings.ToLower(base)
		idx.base[b] = b
		for _, v := range variants {
			idx.base[strings.ToLower(v)] = b
		}
	}
	return idx
}

// lookup returns the canonical base for a surface form, if any.
func (idx *Index) lookup(word string) (string, bool) {
	b, ok := idx.base[strings.ToLower(word)]
	return b, ok
}

// IsSynonym reports whether w1 and w2 map to the same canonical base.
// The relation is symmetric by construction: both directions consult the
// same reverse lookup.
func (idx *Index) IsSynonym(w1, w2 string) bool {
	b1, ok1 := idx.lookup(w1)
	if !ok1 {
		return false
	}
	b2, ok2 := idx.lookup(w2)
	if !ok2 {
		return false
	}
	return b1 == b2
}
