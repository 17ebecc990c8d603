package cssom

import (
	"fmt"
	"sort"

	"github.com/npillmayer/scenestyle/dom"
	"github.com/npillmayer/scenestyle/ident"
	"github.com/npillmayer/scenestyle/selector"
	"github.com/npillmayer/scenestyle/style"
)

// SheetHandle identifies a loaded style sheet.
type SheetHandle uint32

type sheet struct {
	handle   SheetHandle
	label    string
	seq      uint64 // position in load order
	text     string
	rules    []*Rule
	warnings []Warning
}

// Store holds the active collection of style sheets. A store is not safe for
// concurrent use; mutations must not overlap with resolution passes reading it.
type Store struct {
	schema     *style.Schema
	sheets     []*sheet // in origin order
	labelSeq   map[string]uint64
	nextSeq    uint64
	nextHandle SheetHandle
	rules      []*Rule // all rules in origin order
	index      ruleIndex
	generation uint64
	pseudo     bool // some rule tests pseudo-states of non-subject nodes
	sibling    bool // some rule uses the adjacent sibling combinator
	reach      int  // maximum number of '+' combinators in a rule
}

// NewStore creates an empty store. Declarations will be checked against schema,
// which may be nil.
func NewStore(schema *style.Schema) *Store {
	return &Store{
		schema:   schema,
		labelSeq: make(map[string]uint64),
	}
}

// Load parses text and appends its rules to the active rules. origin labels
// the sheet's source (e.g. a file name). If text does not parse, a
// *SyntaxError is returned and the store remains unchanged.
//
// A sheet loaded under a label which has been used before, but is not in use
// by an active sheet, takes the position in origin order the label had
// originally. Hot-reloading a sheet via Unload and Load thus keeps its
// precedence.
func (s *Store) Load(text string, origin string) (SheetHandle, error) {
	rules, warnings, err := Parse(text, origin, s.schema)
	if err != nil {
		tracer().Infof("style sheet %q rejected: %v", origin, err)
		return 0, err
	}
	s.nextHandle++
	sh := &sheet{
		handle:   s.nextHandle,
		label:    origin,
		text:     text,
		rules:    rules,
		warnings: warnings,
	}
	seq, known := s.labelSeq[origin]
	if !known || origin == "" || s.labelInUse(origin) {
		s.nextSeq++
		seq = s.nextSeq
		if !known && origin != "" {
			s.labelSeq[origin] = seq
		}
	}
	sh.seq = seq
	s.sheets = append(s.sheets, sh)
	s.rebuild()
	tracer().Debugf("loaded style sheet %q with %d rules", origin, len(rules))
	return sh.handle, nil
}

// Unload removes a sheet and its rules.
func (s *Store) Unload(h SheetHandle) error {
	i := s.find(h)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownSheet, h)
	}
	s.sheets = append(s.sheets[:i], s.sheets[i+1:]...)
	s.rebuild()
	tracer().Debugf("unloaded style sheet %d", h)
	return nil
}

// Replace exchanges the rules of a sheet by the rules parsed from text. The sheet
// keeps its position in origin order. If text does not parse, the previous
// rules stay in effect.
func (s *Store) Replace(h SheetHandle, text string) error {
	i := s.find(h)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownSheet, h)
	}
	sh := s.sheets[i]
	rules, warnings, err := Parse(text, sh.label, s.schema)
	if err != nil {
		tracer().Infof("replacement for style sheet %q rejected: %v", sh.label, err)
		return err
	}
	sh.text, sh.rules, sh.warnings = text, rules, warnings
	s.rebuild()
	tracer().Debugf("replaced style sheet %q, now %d rules", sh.label, len(rules))
	return nil
}

// Warnings returns the diagnostics collected while loading a sheet.
func (s *Store) Warnings(h SheetHandle) []Warning {
	if i := s.find(h); i >= 0 {
		return s.sheets[i].warnings
	}
	return nil
}

// Label returns the origin label of a sheet.
func (s *Store) Label(h SheetHandle) string {
	if i := s.find(h); i >= 0 {
		return s.sheets[i].label
	}
	return ""
}

// Sheets returns the handles of all active sheets in origin order.
func (s *Store) Sheets() []SheetHandle {
	hs := make([]SheetHandle, len(s.sheets))
	for i, sh := range s.sheets {
		hs[i] = sh.handle
	}
	return hs
}

// Schema returns the schema declarations are checked against.
func (s *Store) Schema() *style.Schema {
	return s.schema
}

// Generation is incremented with every change of the active rule set.
func (s *Store) Generation() uint64 {
	return s.generation
}

// Rules returns all active rules in origin order.
func (s *Store) Rules() []*Rule {
	return s.rules
}

// Rule returns the rule with a given origin index.
func (s *Store) Rule(origin int) *Rule {
	return s.rules[origin]
}

// HasNonSubjectPseudo is a predicate: does any active rule test the
// pseudo-state of an ancestor or sibling of the node it applies to?
func (s *Store) HasNonSubjectPseudo() bool {
	return s.pseudo
}

// HasSiblingCombinator is a predicate: does any active rule use '+'?
func (s *Store) HasSiblingCombinator() bool {
	return s.sibling
}

// SiblingReach returns the maximum number of '+' combinators in any active
// rule. A change of a node may affect this many of its following siblings
// (and their subtrees).
func (s *Store) SiblingReach() int {
	return s.reach
}

// Candidates returns the origin indices of rules which may match node n,
// judged by the most selective part of the rules' subjects. The result is
// a superset of the matching rules, in no particular order.
func (s *Store) Candidates(v dom.View, n dom.NodeRef) []int {
	var c []int
	if id, ok := v.ID(n); ok {
		c = append(c, s.index.byID[id]...)
	}
	for _, class := range v.Classes(n).IDs() {
		c = append(c, s.index.byClass[class]...)
	}
	c = append(c, s.index.byTag[v.Tag(n)]...)
	return append(c, s.index.universal...)
}

func (s *Store) find(h SheetHandle) int {
	for i, sh := range s.sheets {
		if sh.handle == h {
			return i
		}
	}
	return -1
}

func (s *Store) labelInUse(label string) bool {
	for _, sh := range s.sheets {
		if sh.label == label {
			return true
		}
	}
	return false
}

// rebuild re-computes the global origin order and the rule index.
// Rules are copied, as their origin index depends on the set of active sheets.
func (s *Store) rebuild() {
	sort.SliceStable(s.sheets, func(i, j int) bool {
		if s.sheets[i].seq != s.sheets[j].seq {
			return s.sheets[i].seq < s.sheets[j].seq
		}
		return s.sheets[i].handle < s.sheets[j].handle
	})
	s.rules = s.rules[:0:0]
	s.index = newRuleIndex()
	s.pseudo, s.sibling, s.reach = false, false, 0
	for _, sh := range s.sheets {
		for _, r := range sh.rules {
			rule := *r
			rule.Origin = len(s.rules)
			rule.Sheet = sh.handle
			s.rules = append(s.rules, &rule)
			s.index.add(&rule)
			s.pseudo = s.pseudo || rule.Selector.HasNonSubjectPseudo()
			s.sibling = s.sibling || rule.Selector.HasSiblingCombinator()
			s.reach = max(s.reach, rule.Selector.SiblingReach())
		}
	}
	s.generation++
}

// --- Rule index ------------------------------------------------------------

// ruleIndex buckets rules by the most selective simple selector of their
// subject compound.
type ruleIndex struct {
	byID      map[ident.ID][]int
	byClass   map[ident.ID][]int
	byTag     map[ident.ID][]int
	universal []int
}

func newRuleIndex() ruleIndex {
	return ruleIndex{
		byID:    make(map[ident.ID][]int),
		byClass: make(map[ident.ID][]int),
		byTag:   make(map[ident.ID][]int),
	}
}

func (ix *ruleIndex) add(r *Rule) {
	kind, name := r.Selector.Key()
	switch kind {
	case selector.ID:
		ix.byID[name] = append(ix.byID[name], r.Origin)
	case selector.Class:
		ix.byClass[name] = append(ix.byClass[name], r.Origin)
	case selector.Tag:
		ix.byTag[name] = append(ix.byTag[name], r.Origin)
	case selector.Universal, selector.Pseudo:
		ix.universal = append(ix.universal, r.Origin)
	default:
		panic(fmt.Sprintf("cssom: unhandled selector key kind %d", kind))
	}
}
