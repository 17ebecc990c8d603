package ident

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// Set is a set of identifiers, used for the class names and the active
// pseudo-states of a node. The zero value is an empty set.
//
// Sets are backed by compressed bitmaps, which keeps membership tests cheap
// and iteration ordered.
type Set struct {
	bm *roaring.Bitmap
}

// NewSet creates a set from a list of identifiers.
func NewSet(ids ...ID) Set {
	s := Set{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// SetOf interns a list of strings and returns them as a set.
func SetOf(names ...string) Set {
	return NewSet(Strings(names...)...)
}

// Add inserts id into s. None is never a member of a set.
func (s *Set) Add(id ID) {
	if id == None {
		return
	}
	if s.bm == nil {
		s.bm = roaring.New()
	}
	s.bm.Add(uint32(id))
}

// Remove deletes id from s.
func (s *Set) Remove(id ID) {
	if s.bm != nil {
		s.bm.Remove(uint32(id))
	}
}

// Contains is a predicate for membership of id.
func (s Set) Contains(id ID) bool {
	return s.bm != nil && s.bm.Contains(uint32(id))
}

// Len returns the number of identifiers in s.
func (s Set) Len() int {
	if s.bm == nil {
		return 0
	}
	return int(s.bm.GetCardinality())
}

// IsEmpty is a predicate for the empty set.
func (s Set) IsEmpty() bool {
	return s.bm == nil || s.bm.IsEmpty()
}

// IDs returns the members of s in ascending order.
func (s Set) IDs() []ID {
	if s.bm == nil {
		return nil
	}
	ids := make([]ID, 0, s.bm.GetCardinality())
	it := s.bm.Iterator()
	for it.HasNext() {
		ids = append(ids, ID(it.Next()))
	}
	return ids
}

// Equal compares two sets for equal membership.
func (s Set) Equal(other Set) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() && other.IsEmpty()
	}
	return s.bm.Equals(other.bm)
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	if s.bm == nil {
		return Set{}
	}
	return Set{bm: s.bm.Clone()}
}

func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range s.IDs() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(id.String())
	}
	b.WriteByte('}')
	return b.String()
}
