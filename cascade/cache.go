package cascade

import (
	"github.com/RoaringBitmap/roaring"
)

// MatchEntry caches the set of rules structurally matching a node, i.e. with
// pseudo-state predicates assumed to hold. An entry is valid for a single
// generation of the style sheet store.
//
// The zero value is an invalid entry, ready to use.
type MatchEntry struct {
	gen   uint64
	valid bool
	rules *roaring.Bitmap // origin indices
}

// Invalidate marks the entry stale. It has to be called whenever the tag,
// classes, id or ancestor chain of the node changes.
func (m *MatchEntry) Invalidate() {
	m.valid = false
}

// IsValid is a predicate: does the entry hold matches for rule generation gen?
func (m *MatchEntry) IsValid(gen uint64) bool {
	return m.valid && m.gen == gen
}

// Structural returns the origin indices of the cached structural matches,
// in ascending order.
func (m *MatchEntry) Structural() []int {
	if m.rules == nil {
		return nil
	}
	r := make([]int, 0, m.rules.GetCardinality())
	it := m.rules.Iterator()
	for it.HasNext() {
		r = append(r, int(it.Next()))
	}
	return r
}

// Equal is a predicate: do two entries hold the same set of matches?
func (m *MatchEntry) Equal(other *MatchEntry) bool {
	if m.rules == nil || other.rules == nil {
		return isEmpty(m.rules) && isEmpty(other.rules)
	}
	return m.rules.Equals(other.rules)
}

func isEmpty(bm *roaring.Bitmap) bool {
	return bm == nil || bm.IsEmpty()
}

func (m *MatchEntry) set(gen uint64, rules *roaring.Bitmap) {
	m.gen, m.valid, m.rules = gen, true, rules
}
