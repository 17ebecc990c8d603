package selector

import (
	"fmt"
	"strings"

	"github.com/npillmayer/scenestyle/ident"
	tp "github.com/xlab/treeprint"
)

// Kind is the kind of a simple selector. The set of kinds is closed; code
// switching over kinds must handle all of them.
type Kind uint8

// Kinds of simple selectors.
const (
	Universal Kind = iota // '*'
	Tag                   // 'button'
	Class                 // '.primary'
	ID                    // '#title'
	Pseudo                // ':hover'
)

// Simple is a simple selector: a single predicate on a node.
type Simple struct {
	Kind Kind
	Name ident.ID // unused for Universal
}

func (s Simple) String() string {
	switch s.Kind {
	case Universal:
		return "*"
	case Tag:
		return s.Name.String()
	case Class:
		return "." + s.Name.String()
	case ID:
		return "#" + s.Name.String()
	case Pseudo:
		return ":" + s.Name.String()
	}
	panic(fmt.Sprintf("selector: unhandled simple selector kind %d", s.Kind))
}

// Combinator is the relation between two adjacent compound selectors.
type Combinator uint8

// Combinators. NoCombinator is used for the leftmost compound only.
const (
	NoCombinator Combinator = iota
	Descendant              // whitespace
	Child                   // '>'
	Adjacent                // '+'
)

func (c Combinator) String() string {
	switch c {
	case NoCombinator:
		return ""
	case Descendant:
		return " "
	case Child:
		return " > "
	case Adjacent:
		return " + "
	}
	panic(fmt.Sprintf("selector: unhandled combinator %d", c))
}

// Compound is a set of simple selectors which must all hold on the same node.
// Combinator relates the compound to the one on its left.
type Compound struct {
	Simples    []Simple
	Combinator Combinator
}

func (c Compound) String() string {
	var b strings.Builder
	for _, s := range c.Simples {
		b.WriteString(s.String())
	}
	return b.String()
}

func (c Compound) hasPseudo() bool {
	for _, s := range c.Simples {
		if s.Kind == Pseudo {
			return true
		}
	}
	return false
}

// --- Specificity -----------------------------------------------------------

// Specificity is the ordered weight (id count, class/pseudo count, tag count)
// of a selector.
type Specificity [3]uint16

// Compare returns -1, 0 or +1, depending on whether sp is lower, equal or
// higher than other.
func (sp Specificity) Compare(other Specificity) int {
	for i := 0; i < 3; i++ {
		switch {
		case sp[i] < other[i]:
			return -1
		case sp[i] > other[i]:
			return 1
		}
	}
	return 0
}

// Less is a predicate: is sp lower than other?
func (sp Specificity) Less(other Specificity) bool {
	return sp.Compare(other) < 0
}

func (sp Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", sp[0], sp[1], sp[2])
}

// --- Selector --------------------------------------------------------------

// Selector is a complex selector: compounds from left to right.
// Selectors are immutable after parsing.
type Selector struct {
	compounds   []Compound
	specificity Specificity
}

func newSelector(compounds []Compound) *Selector {
	sel := &Selector{compounds: compounds}
	for _, c := range compounds {
		for _, s := range c.Simples {
			switch s.Kind {
			case Universal:
			case Tag:
				sel.specificity[2]++
			case Class, Pseudo:
				sel.specificity[1]++
			case ID:
				sel.specificity[0]++
			default:
				panic(fmt.Sprintf("selector: unhandled simple selector kind %d", s.Kind))
			}
		}
	}
	return sel
}

// Compounds returns the compound selectors, from left to right.
func (sel *Selector) Compounds() []Compound {
	return sel.compounds
}

// Subject returns the rightmost compound, which is matched against the node
// itself.
func (sel *Selector) Subject() Compound {
	return sel.compounds[len(sel.compounds)-1]
}

// Specificity returns the specificity of the selector.
func (sel *Selector) Specificity() Specificity {
	return sel.specificity
}

// HasPseudo is a predicate: does the selector test pseudo-states anywhere?
func (sel *Selector) HasPseudo() bool {
	for _, c := range sel.compounds {
		if c.hasPseudo() {
			return true
		}
	}
	return false
}

// HasNonSubjectPseudo is a predicate: does the selector test pseudo-states of
// nodes other than the subject (ancestors or siblings)?
func (sel *Selector) HasNonSubjectPseudo() bool {
	for _, c := range sel.compounds[:len(sel.compounds)-1] {
		if c.hasPseudo() {
			return true
		}
	}
	return false
}

// HasSiblingCombinator is a predicate: does the selector use '+'?
func (sel *Selector) HasSiblingCombinator() bool {
	for _, c := range sel.compounds {
		if c.Combinator == Adjacent {
			return true
		}
	}
	return false
}

// SiblingReach returns the number of '+' combinators of the selector. A
// change of a node may affect the match of this many following siblings.
func (sel *Selector) SiblingReach() int {
	n := 0
	for _, c := range sel.compounds {
		if c.Combinator == Adjacent {
			n++
		}
	}
	return n
}

// Key returns the most selective simple selector of the subject compound,
// in order of preference id, class, tag. Rules may be bucketed by this key.
// Subjects without any of these yield (Universal, ident.None).
func (sel *Selector) Key() (Kind, ident.ID) {
	best := Simple{Kind: Universal}
	rank := func(k Kind) int {
		switch k {
		case ID:
			return 3
		case Class:
			return 2
		case Tag:
			return 1
		case Universal, Pseudo:
			return 0
		}
		panic(fmt.Sprintf("selector: unhandled simple selector kind %d", k))
	}
	for _, s := range sel.Subject().Simples {
		if rank(s.Kind) > rank(best.Kind) {
			best = s
		}
	}
	return best.Kind, best.Name
}

func (sel *Selector) String() string {
	var b strings.Builder
	for _, c := range sel.compounds {
		b.WriteString(c.Combinator.String())
		b.WriteString(c.String())
	}
	return b.String()
}

// Tree returns a printable tree of the selector's structure, subject first;
// used for debugging.
func (sel *Selector) Tree() string {
	header := fmt.Sprintf("%s %s\n", sel.String(), sel.specificity)
	printer := tp.New()
	for i := len(sel.compounds) - 1; i >= 0; i-- {
		c := sel.compounds[i]
		meta := "subject"
		if i < len(sel.compounds)-1 {
			meta = combinatorName(sel.compounds[i+1].Combinator)
		}
		branch := printer.AddMetaBranch(meta, c.String())
		for _, s := range c.Simples {
			branch.AddNode(s.String())
		}
	}
	return header + printer.String()
}

func combinatorName(c Combinator) string {
	switch c {
	case NoCombinator:
		return "none"
	case Descendant:
		return "descendant"
	case Child:
		return "child"
	case Adjacent:
		return "adjacent"
	}
	panic(fmt.Sprintf("selector: unhandled combinator %d", c))
}
