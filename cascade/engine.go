package cascade

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/npillmayer/scenestyle/cssom"
	"github.com/npillmayer/scenestyle/dom"
	"github.com/npillmayer/scenestyle/selector"
	"github.com/npillmayer/scenestyle/style"
)

// Engine resolves computed styles against the rules of a style sheet store.
// An engine is not safe for concurrent use.
type Engine struct {
	store  *cssom.Store
	schema *style.Schema
	inline *inlineCache
}

// NewEngine creates a cascade engine for the rules of store. Computed styles
// will carry a value for every property of the store's schema, or the default
// schema if the store has none.
func NewEngine(store *cssom.Store) *Engine {
	schema := store.Schema()
	if schema == nil {
		schema = style.DefaultSchema()
	}
	return &Engine{
		store:  store,
		schema: schema,
		inline: newInlineCache(schema),
	}
}

// Schema returns the schema of the computed styles produced by the engine.
func (e *Engine) Schema() *style.Schema {
	return e.schema
}

// Match returns the rules matching node n with its current pseudo-states,
// in cascade order (lowest precedence first). entry caches the structural
// matches for n and is refreshed if stale; it may be nil.
func (e *Engine) Match(v dom.View, n dom.NodeRef, entry *MatchEntry) []*cssom.Rule {
	if entry == nil {
		entry = &MatchEntry{}
	}
	gen := e.store.Generation()
	if !entry.IsValid(gen) {
		bm := roaring.New()
		for _, i := range e.store.Candidates(v, n) {
			if e.store.Rule(i).Selector.Matches(v, n, selector.Structural) {
				bm.Add(uint32(i))
			}
		}
		entry.set(gen, bm)
		tracer().Debugf("%s matches %d rules structurally", n, bm.GetCardinality())
	}
	var rules []*cssom.Rule
	it := entry.rules.Iterator()
	for it.HasNext() {
		r := e.store.Rule(int(it.Next()))
		if r.Selector.HasPseudo() && !r.Selector.Matches(v, n, selector.Full) {
			continue
		}
		rules = append(rules, r)
	}
	// rules are in origin order; a stable sort keeps it within equal specificity
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Selector.Specificity().Less(rules[j].Selector.Specificity())
	})
	return rules
}

// Resolve computes the style of node n. parent is the computed style of n's
// parent, or nil for a root node. entry caches the structural matches for n,
// see Match.
func (e *Engine) Resolve(v dom.View, n dom.NodeRef, parent *style.ComputedStyle, entry *MatchEntry) *style.ComputedStyle {
	winners := make([]*style.Declaration, e.schema.Len())
	declare := func(decls []style.Declaration) {
		for i := range decls {
			if inx, ok := e.schema.Index(decls[i].Key); ok {
				winners[inx] = &decls[i]
			}
		}
	}
	for _, r := range e.Match(v, n, entry) {
		declare(r.Declarations)
	}
	if styler, ok := v.(dom.InlineStyler); ok {
		declare(e.inline.declarations(styler.InlineStyle(n)))
	}
	if parent != nil && parent.Schema() != e.schema {
		tracer().Errorf("parent style of %s computed for a different schema; ignored", n)
		parent = nil
	}
	values := make([]style.Property, e.schema.Len())
	for i := range values {
		values[i] = e.value(i, winners[i], parent)
	}
	return style.NewComputedStyle(e.schema, values)
}

// value selects the value for property i, given the winning declaration d
// (possibly nil).
func (e *Engine) value(i int, d *style.Declaration, parent *style.ComputedStyle) style.Property {
	def := e.schema.Def(i)
	kw := style.NoKeyword
	if d != nil {
		if d.Keyword == style.NoKeyword {
			return d.Value
		}
		kw = d.Keyword
	} else if def.Inheritable {
		kw = style.Inherit
	}
	if kw == style.Unset {
		kw = style.Initial
		if def.Inheritable {
			kw = style.Inherit
		}
	}
	if kw == style.Inherit && parent != nil {
		return parent.At(i)
	}
	return def.Default
}
