package cascade

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scenestyle/cssom"
	"github.com/npillmayer/scenestyle/dom/scene"
	"github.com/npillmayer/scenestyle/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSchema declares color (inheritable, default black) and font-size
// (not inheritable, default 12).
func testSchema() *style.Schema {
	return style.MustSchema(
		style.PropertyDef{Name: "color", Inheritable: true, Default: "black", Kind: style.KindString},
		style.PropertyDef{Name: "font-size", Default: "12", Kind: style.KindNumber},
	)
}

func load(t *testing.T, store *cssom.Store, sheets ...string) {
	for _, text := range sheets {
		_, err := store.Load(text, "")
		require.NoError(t, err)
	}
}

func TestCascadeSpecificityAndInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.cascade")
	defer teardown()
	//
	store := cssom.NewStore(testSchema())
	load(t, store, `.panel { color: "red"; }`, `.panel.active { color: "blue"; }`)
	g := scene.NewGraph()
	panel := g.SetRoot(g.NewNode("panel", "panel", "active"))
	child := g.NewNode("label")
	panel.AddChild(child)
	//
	e := NewEngine(store)
	cs := e.Resolve(g, panel.Ref(), nil, nil)
	t.Logf("panel = %s", cs)
	assert.Equal(t, style.Property("blue"), cs.Property("color"))
	assert.Equal(t, style.Property("12"), cs.Property("font-size"))
	ccs := e.Resolve(g, child.Ref(), cs, nil)
	t.Logf("child = %s", ccs)
	assert.Equal(t, style.Property("blue"), ccs.Property("color"))
	assert.Equal(t, style.Property("12"), ccs.Property("font-size"))
}

func TestCascadeIDOutranksClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.cascade")
	defer teardown()
	//
	for _, sheet := range []string{
		`#title { font-size: 20; } .big { font-size: 18; }`,
		`.big { font-size: 18; } #title { font-size: 20; }`,
	} {
		store := cssom.NewStore(testSchema())
		load(t, store, sheet)
		g := scene.NewGraph()
		n := g.SetRoot(g.NewNode("label", "big").SetID("title"))
		cs := NewEngine(store).Resolve(g, n.Ref(), nil, nil)
		if fs := cs.Property("font-size"); fs != "20" {
			t.Errorf("expected font-size to be 20, is %s", fs)
		}
	}
}

func TestCascadeOriginTieBreak(t *testing.T) {
	store := cssom.NewStore(testSchema())
	load(t, store, `label { color: red } label { color: green }`)
	g := scene.NewGraph()
	n := g.SetRoot(g.NewNode("label"))
	e := NewEngine(store)
	assert.Equal(t, style.Property("green"), e.Resolve(g, n.Ref(), nil, nil).Property("color"))
	load(t, store, `label { color: yellow }`)
	assert.Equal(t, style.Property("yellow"), e.Resolve(g, n.Ref(), nil, nil).Property("color"))
	load(t, store, `* { color: white }`) // lower specificity, later origin
	assert.Equal(t, style.Property("yellow"), e.Resolve(g, n.Ref(), nil, nil).Property("color"))
}

func TestCascadeRootDefaults(t *testing.T) {
	store := cssom.NewStore(testSchema())
	g := scene.NewGraph()
	n := g.SetRoot(g.NewNode("window"))
	cs := NewEngine(store).Resolve(g, n.Ref(), nil, nil)
	assert.True(t, cs.Equal(store.Schema().Defaults()), "root without rules should have defaults")
}

func TestCascadeKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.cascade")
	defer teardown()
	//
	store := cssom.NewStore(testSchema())
	load(t, store, `
panel { color: red; font-size: 30 }
.inh { font-size: inherit }
.ini { color: initial }
.uns { color: unset; font-size: unset }
.quoted { color: "inherit" }
`)
	g := scene.NewGraph()
	root := g.SetRoot(g.NewNode("panel"))
	e := NewEngine(store)
	pcs := e.Resolve(g, root.Ref(), nil, nil)
	resolve := func(class string) *style.ComputedStyle {
		n := g.NewNode("label", class)
		root.AddChild(n)
		return e.Resolve(g, n.Ref(), pcs, nil)
	}
	assert.Equal(t, style.Property("30"), resolve("inh").Property("font-size"))
	assert.Equal(t, style.Property("black"), resolve("ini").Property("color"))
	uns := resolve("uns")
	assert.Equal(t, style.Property("red"), uns.Property("color"))
	assert.Equal(t, style.Property("12"), uns.Property("font-size"))
	assert.Equal(t, style.Property("inherit"), resolve("quoted").Property("color"))
	// 'inherit' at the root falls back to the default
	n := g.NewNode("x", "inh")
	assert.Equal(t, style.Property("12"), e.Resolve(g, n.Ref(), nil, nil).Property("font-size"))
}

func TestCascadeInlineStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.cascade")
	defer teardown()
	//
	store := cssom.NewStore(style.DefaultSchema())
	load(t, store, `#ok { color: red; margin-top: 3pt }`)
	g := scene.NewGraph()
	n := g.SetRoot(g.NewNode("button").SetID("ok"))
	n.SetInlineStyle(`color: purple; margin: 1pt 2pt; colour: green; display: sideways`)
	cs := NewEngine(store).Resolve(g, n.Ref(), nil, nil)
	assert.Equal(t, style.Property("purple"), cs.Property("color"))
	assert.Equal(t, style.Property("1pt"), cs.Property("margin-top"))
	assert.Equal(t, style.Property("2pt"), cs.Property("margin-left"))
	assert.Equal(t, style.Property("block"), cs.Property("display"))
}

func TestCascadeInlineLastDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.cascade")
	defer teardown()
	//
	store := cssom.NewStore(style.DefaultSchema())
	load(t, store, `button { color: red }`)
	g := scene.NewGraph()
	n := g.SetRoot(g.NewNode("button"))
	e := NewEngine(store)
	n.SetInlineStyle(`color: purple`)
	cs := e.Resolve(g, n.Ref(), nil, nil)
	assert.Equal(t, style.Property("purple"), cs.Property("color"))
	n.SetInlineStyle(`color: blue; padding: 1pt 2pt  `)
	cs = e.Resolve(g, n.Ref(), nil, nil)
	assert.Equal(t, style.Property("blue"), cs.Property("color"))
	assert.Equal(t, style.Property("1pt"), cs.Property("padding-top"))
	assert.Equal(t, style.Property("2pt"), cs.Property("padding-right"))
	n.SetInlineStyle(`margin: 2pt;`)
	cs = e.Resolve(g, n.Ref(), nil, nil)
	assert.Equal(t, style.Property("2pt"), cs.Property("margin-left"))
}

func TestMatchCachePseudoToggle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.cascade")
	defer teardown()
	//
	store := cssom.NewStore(testSchema())
	load(t, store, `button { color: gray } button:hover { color: red } .primary { font-size: 14 }`)
	g := scene.NewGraph()
	b := g.SetRoot(g.NewNode("button", "primary"))
	e := NewEngine(store)
	entry := &MatchEntry{}
	cs := e.Resolve(g, b.Ref(), nil, entry)
	assert.Equal(t, style.Property("gray"), cs.Property("color"))
	before := entry.Structural()
	assert.Equal(t, []int{0, 1, 2}, before)
	//
	b.SetState("hover", true)
	cs = e.Resolve(g, b.Ref(), nil, entry)
	assert.Equal(t, style.Property("red"), cs.Property("color"))
	assert.Equal(t, before, entry.Structural(), "pseudo-state toggle must not change structural matches")
	//
	b.RemoveClass("primary")
	entry.Invalidate()
	cs = e.Resolve(g, b.Ref(), nil, entry)
	assert.Equal(t, []int{0, 1}, entry.Structural())
	assert.Equal(t, style.Property("12"), cs.Property("font-size"))
}

func TestMatchCacheGeneration(t *testing.T) {
	store := cssom.NewStore(testSchema())
	load(t, store, `label { color: red }`)
	g := scene.NewGraph()
	n := g.SetRoot(g.NewNode("label"))
	e := NewEngine(store)
	entry := &MatchEntry{}
	e.Resolve(g, n.Ref(), nil, entry)
	assert.True(t, entry.IsValid(store.Generation()))
	load(t, store, `label { color: blue }`)
	assert.False(t, entry.IsValid(store.Generation()))
	cs := e.Resolve(g, n.Ref(), nil, entry)
	assert.Equal(t, style.Property("blue"), cs.Property("color"))
	assert.Len(t, entry.Structural(), 2)
}

func TestCascadeIgnoresUnknownProperties(t *testing.T) {
	store := cssom.NewStore(testSchema())
	h, err := store.Load(`label { colour: red; color: green }`, "")
	require.NoError(t, err)
	assert.Len(t, store.Warnings(h), 1)
	g := scene.NewGraph()
	n := g.SetRoot(g.NewNode("label"))
	cs := NewEngine(store).Resolve(g, n.Ref(), nil, nil)
	assert.Equal(t, 2, cs.Size())
	assert.Equal(t, style.Property("green"), cs.Property("color"))
}

func TestResolveIsIdempotent(t *testing.T) {
	store := cssom.NewStore(testSchema())
	load(t, store, `panel > label { color: red } label + label { font-size: 9 }`)
	g := scene.NewGraph()
	root := g.SetRoot(g.NewNode("panel"))
	l1, l2 := g.NewNode("label"), g.NewNode("label")
	root.AddChild(l1).AddChild(l2)
	e := NewEngine(store)
	entry := &MatchEntry{}
	pcs := e.Resolve(g, root.Ref(), nil, nil)
	first := e.Resolve(g, l2.Ref(), pcs, entry)
	second := e.Resolve(g, l2.Ref(), pcs, entry)
	assert.True(t, first.Equal(second))
	assert.Equal(t, style.Property("9"), first.Property("font-size"))
	assert.Equal(t, style.Property("red"), first.Property("color"))
}
