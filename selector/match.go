package selector

import (
	"fmt"

	"github.com/npillmayer/scenestyle/dom"
)

// Mode selects how pseudo-state predicates are treated during matching.
type Mode uint8

// Matching modes.
const (
	Full       Mode = iota // test every predicate against the node's current state
	Structural             // assume every pseudo-state predicate holds
)

// Matches tests the selector against node n of a scene graph.
//
// Matching is evaluated right-to-left: the subject compound is tested against
// n first, only then are ancestors and siblings visited.
func (sel *Selector) Matches(v dom.View, n dom.NodeRef, mode Mode) bool {
	last := len(sel.compounds) - 1
	if !matchCompound(sel.compounds[last], v, n, mode) {
		return false
	}
	return sel.matchLeft(last, v, n, mode)
}

// matchLeft checks compounds[:i], given that compounds[i] has matched n.
func (sel *Selector) matchLeft(i int, v dom.View, n dom.NodeRef, mode Mode) bool {
	if i == 0 {
		return true
	}
	left := sel.compounds[i-1]
	switch sel.compounds[i].Combinator {
	case Child:
		p, ok := v.Parent(n)
		return ok && matchCompound(left, v, p, mode) && sel.matchLeft(i-1, v, p, mode)
	case Descendant:
		for p, ok := v.Parent(n); ok; p, ok = v.Parent(p) {
			if matchCompound(left, v, p, mode) && sel.matchLeft(i-1, v, p, mode) {
				return true
			}
		}
		return false
	case Adjacent:
		s, ok := v.PrevSibling(n)
		return ok && matchCompound(left, v, s, mode) && sel.matchLeft(i-1, v, s, mode)
	case NoCombinator:
		panic("selector: inner compound without combinator")
	}
	panic(fmt.Sprintf("selector: unhandled combinator %d", sel.compounds[i].Combinator))
}

// matchCompound tests every simple selector of c against n.
func matchCompound(c Compound, v dom.View, n dom.NodeRef, mode Mode) bool {
	for _, s := range c.Simples {
		if !matchSimple(s, v, n, mode) {
			return false
		}
	}
	return true
}

func matchSimple(s Simple, v dom.View, n dom.NodeRef, mode Mode) bool {
	switch s.Kind {
	case Universal:
		return true
	case Tag:
		return v.Tag(n) == s.Name
	case Class:
		return v.Classes(n).Contains(s.Name)
	case ID:
		id, ok := v.ID(n)
		return ok && id == s.Name
	case Pseudo:
		return mode == Structural || v.PseudoState(n).Contains(s.Name)
	}
	panic(fmt.Sprintf("selector: unhandled simple selector kind %d", s.Kind))
}
