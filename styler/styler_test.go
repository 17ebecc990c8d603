package styler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scenestyle/dom"
	"github.com/npillmayer/scenestyle/dom/scene"
	"github.com/npillmayer/scenestyle/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ scene.Listener = &Styler{}

func testSchema() *style.Schema {
	return style.MustSchema(
		style.PropertyDef{Name: "color", Inheritable: true, Default: "black", Kind: style.KindString},
		style.PropertyDef{Name: "font-size", Default: "12", Kind: style.KindNumber},
	)
}

// buildScene creates
//
//	window
//	├── panel.a
//	│   ├── label#first
//	│   ├── label
//	│   └── label
//	└── panel.b
//	    └── button
func buildScene(t *testing.T, sheets ...string) (*scene.Graph, *Styler) {
	g := scene.NewGraph()
	root := g.SetRoot(g.NewNode("window"))
	a := g.NewNode("panel", "a")
	a.AddChild(g.NewNode("label").SetID("first")).AddChild(g.NewNode("label")).AddChild(g.NewNode("label"))
	b := g.NewNode("panel", "b")
	b.AddChild(g.NewNode("button"))
	root.AddChild(a).AddChild(b)
	s := New(g, testSchema(), Options{})
	g.SetListener(s)
	for _, text := range sheets {
		_, err := s.Load(text, "")
		require.NoError(t, err)
	}
	require.NoError(t, s.RunPass(context.Background()))
	return g, s
}

func prop(t *testing.T, s *Styler, n *scene.Node, key string) style.Property {
	cs, err := s.ComputedStyle(n.Ref())
	require.NoError(t, err)
	return cs.Property(key)
}

func child(n *scene.Node, i int) *scene.Node {
	ch, _ := n.Child(i)
	return ch
}

func TestPanelExample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g := scene.NewGraph()
	panel := g.SetRoot(g.NewNode("div", "panel", "active"))
	label := g.NewNode("label")
	panel.AddChild(label)
	s := New(g, testSchema(), Options{})
	g.SetListener(s)
	_, err := s.Load(`.panel { color: "red"; }`, "one")
	require.NoError(t, err)
	_, err = s.Load(`.panel.active { color: "blue"; }`, "two")
	require.NoError(t, err)
	require.NoError(t, s.RunPass(context.Background()))
	t.Logf("styled tree:\n%s", s.Dump(panel.Ref()))
	//
	assert.Equal(t, style.Property("blue"), prop(t, s, panel, "color"))
	assert.Equal(t, style.Property("12"), prop(t, s, panel, "font-size"))
	assert.Equal(t, style.Property("blue"), prop(t, s, label, "color"))
	assert.Equal(t, style.Property("12"), prop(t, s, label, "font-size"))
}

func TestTitleExample(t *testing.T) {
	g := scene.NewGraph()
	title := g.SetRoot(g.NewNode("label", "big").SetID("title"))
	s := New(g, testSchema(), Options{})
	g.SetListener(s)
	_, err := s.Load(`#title { font-size: 20; } .big { font-size: 18; }`, "")
	require.NoError(t, err)
	require.NoError(t, s.RunPass(context.Background()))
	if fs := prop(t, s, title, "font-size"); fs != "20" {
		t.Errorf("expected font-size of #title to be 20, is %s", fs)
	}
}

func TestPassOrderAndInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g, s := buildScene(t, `.a { color: red } .b { color: green } #first { font-size: 8 }`)
	a, b := child(g.Root(), 0), child(g.Root(), 1)
	assert.Equal(t, 7, s.LastPass().Resolved)
	assert.Equal(t, style.Property("red"), prop(t, s, child(a, 2), "color"))
	assert.Equal(t, style.Property("green"), prop(t, s, child(b, 0), "color"))
	assert.Equal(t, style.Property("8"), prop(t, s, child(a, 0), "font-size"))
	assert.Equal(t, style.Property("black"), prop(t, s, g.Root(), "color"))
	assert.Equal(t, 0, s.Pending())
	// idempotent: a pass without changes resolves nothing
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, 0, s.LastPass().Resolved)
}

func TestStateChangeResolvesOnlyNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g, s := buildScene(t, `label:hover { color: red }`)
	a := child(g.Root(), 0)
	l := child(a, 1)
	l.SetState("hover", true)
	st, err := s.State(l.Ref())
	require.NoError(t, err)
	assert.Equal(t, StateDirty, st)
	assert.Equal(t, 1, s.Pending())
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, 1, s.LastPass().Resolved)
	assert.Equal(t, style.Property("red"), prop(t, s, l, "color"))
	assert.Equal(t, style.Property("black"), prop(t, s, child(a, 0), "color"))
	//
	l.SetState("hover", false)
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, style.Property("black"), prop(t, s, l, "color"))
}

func TestStructuralChangeDirtiesSubtree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g, s := buildScene(t, `.hot label { font-size: 20 } .hot { color: red }`)
	a := child(g.Root(), 0)
	a.AddClass("hot")
	assert.Equal(t, 4, s.Pending())
	st, _ := s.State(child(a, 2).Ref())
	assert.Equal(t, StructurallyDirty, st)
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, 4, s.LastPass().Resolved)
	for _, l := range a.Children() {
		assert.Equal(t, style.Property("20"), prop(t, s, l, "font-size"))
		assert.Equal(t, style.Property("red"), prop(t, s, l, "color"))
	}
	assert.Equal(t, style.Property("12"), prop(t, s, child(child(g.Root(), 1), 0), "font-size"))
}

func TestChangePropagatesToChildren(t *testing.T) {
	g, s := buildScene(t, `panel:hover { color: blue }`)
	b := child(g.Root(), 1)
	b.SetState("hover", true)
	require.NoError(t, s.RunPass(context.Background()))
	// panel changed, its button inherits
	assert.Equal(t, 2, s.LastPass().Resolved)
	assert.Equal(t, 2, s.LastPass().Changed)
	assert.Equal(t, style.Property("blue"), prop(t, s, child(b, 0), "color"))
}

func TestNonSubjectPseudo(t *testing.T) {
	g, s := buildScene(t, `panel:hover label { font-size: 16 }`)
	a := child(g.Root(), 0)
	a.SetState("hover", true)
	assert.Equal(t, 4, s.Pending())
	require.NoError(t, s.RunPass(context.Background()))
	for _, l := range a.Children() {
		assert.Equal(t, style.Property("16"), prop(t, s, l, "font-size"))
	}
}

func TestSiblingCombinator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g, s := buildScene(t, `label + label { font-size: 9 }`)
	a := child(g.Root(), 0)
	first := child(a, 0)
	assert.Equal(t, style.Property("12"), prop(t, s, first, "font-size"))
	assert.Equal(t, style.Property("9"), prop(t, s, child(a, 1), "font-size"))
	//
	a.InsertChildAt(0, g.NewNode("label", "new"))
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, style.Property("9"), prop(t, s, first, "font-size"))
	assert.Equal(t, style.Property("12"), prop(t, s, child(a, 0), "font-size"))
	//
	child(a, 0).Isolate()
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, style.Property("12"), prop(t, s, first, "font-size"))
}

func TestSiblingChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g, s := buildScene(t, `.x + label + label { font-size: 9 }`)
	a := child(g.Root(), 0)
	assert.Equal(t, style.Property("12"), prop(t, s, child(a, 2), "font-size"))
	child(a, 0).AddClass("x")
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, style.Property("12"), prop(t, s, child(a, 1), "font-size"))
	assert.Equal(t, style.Property("9"), prop(t, s, child(a, 2), "font-size"))
	// a fresh styler must agree
	fresh := New(g, testSchema(), Options{})
	_, err := fresh.Load(`.x + label + label { font-size: 9 }`, "")
	require.NoError(t, err)
	require.NoError(t, fresh.RunPass(context.Background()))
	assert.Equal(t, snapshot(t, fresh, g), snapshot(t, s, g))
	//
	child(a, 0).RemoveClass("x")
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, style.Property("12"), prop(t, s, child(a, 2), "font-size"))
}

func TestSiblingChainState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g, s := buildScene(t, `label:hover + label + label { color: red }`)
	a := child(g.Root(), 0)
	child(a, 0).SetState("hover", true)
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, style.Property("black"), prop(t, s, child(a, 1), "color"))
	assert.Equal(t, style.Property("red"), prop(t, s, child(a, 2), "color"))
	child(a, 0).SetState("hover", false)
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, style.Property("black"), prop(t, s, child(a, 2), "color"))
}

func TestSheetChanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g, s := buildScene(t)
	ha, err := s.Load(`label { color: red }`, "a.css")
	require.NoError(t, err)
	_, err = s.Load(`label { color: green }`, "b.css")
	require.NoError(t, err)
	assert.Equal(t, s.Len(), s.Pending())
	require.NoError(t, s.RunPass(context.Background()))
	l := child(child(g.Root(), 0), 1)
	assert.Equal(t, style.Property("green"), prop(t, s, l, "color"))
	before := snapshot(t, s, g)
	// round trip: reloading a.css must reproduce the cascade
	require.NoError(t, s.Unload(ha))
	require.NoError(t, s.RunPass(context.Background()))
	ha, err = s.Load(`label { color: red }`, "a.css")
	require.NoError(t, err)
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, before, snapshot(t, s, g))
	// a broken replacement leaves everything as is
	_, err = s.Load(`label { color: blue`, "c.css")
	assert.Error(t, err)
	assert.Error(t, s.Replace(ha, `label {`))
	assert.Equal(t, 0, s.Pending())
	require.NoError(t, s.Replace(ha, `label { font-size: 30 }`))
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, style.Property("30"), prop(t, s, l, "font-size"))
	assert.Equal(t, style.Property("green"), prop(t, s, l, "color"))
}

func snapshot(t *testing.T, s *Styler, g *scene.Graph) map[dom.NodeRef]string {
	m := map[dom.NodeRef]string{}
	var walk func(n *scene.Node)
	walk = func(n *scene.Node) {
		cs, err := s.ComputedStyle(n.Ref())
		require.NoError(t, err)
		m[n.Ref()] = cs.String()
		for _, ch := range n.Children() {
			walk(ch)
		}
	}
	walk(g.Root())
	return m
}

// countdown is a context which is cancelled after a number of checks.
type countdown struct {
	context.Context
	n int
}

func (c *countdown) Err() error {
	if c.n <= 0 {
		return context.Canceled
	}
	c.n--
	return nil
}

func TestCancelledPass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g, s := buildScene(t, `.a { color: red }`)
	_, err := s.Load(`label { font-size: 14 }`, "")
	require.NoError(t, err)
	ctx := &countdown{Context: context.Background(), n: 3}
	err = s.RunPass(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 3, s.LastPass().Resolved)
	assert.Equal(t, 4, s.Pending())
	// resolved nodes are parents of unresolved ones
	st, _ := s.State(g.Root().Ref())
	assert.Equal(t, Clean, st)
	//
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.RunPass(cctx))
	assert.Equal(t, 4, s.Pending())
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, style.Property("14"), prop(t, s, child(child(g.Root(), 0), 2), "font-size"))
}

func TestMissingNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scenestyle.styler")
	defer teardown()
	//
	g, s := buildScene(t)
	_, err := s.ComputedStyle(dom.NodeRef(4711))
	assert.True(t, errors.Is(err, ErrMissingNode))
	var merr *MissingNodeError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, dom.NodeRef(4711), merr.Node)
	assert.Error(t, s.StateChanged(dom.NodeRef(4711)))
	assert.Error(t, s.NodeRemoved(dom.NodeRef(4711)))
	//
	a := child(g.Root(), 0)
	l := child(a, 0)
	a.Isolate()
	assert.Equal(t, 3, s.Len())
	_, err = s.ComputedStyle(l.Ref())
	assert.True(t, errors.Is(err, ErrMissingNode))
	//
	strict := New(g, testSchema(), Options{Strict: true})
	assert.Panics(t, func() {
		_, _ = strict.ComputedStyle(l.Ref())
	})
}

func TestNewNodes(t *testing.T) {
	g, s := buildScene(t, `button { color: red }`)
	b := child(g.Root(), 1)
	btn := g.NewNode("button")
	b.AddChild(btn)
	_, err := s.ComputedStyle(btn.Ref())
	assert.True(t, errors.Is(err, ErrUnresolved))
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, 1, s.LastPass().Resolved)
	assert.Equal(t, style.Property("red"), prop(t, s, btn, "color"))
	// moving a subtree re-resolves it below its new parent
	a := child(g.Root(), 0)
	a.AddChild(b)
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, 3, s.LastPass().Resolved)
	assert.Equal(t, 8, s.Len())
}

func TestLazyAncestorRegistration(t *testing.T) {
	g := scene.NewGraph()
	root := g.SetRoot(g.NewNode("window", "dark"))
	p := g.NewNode("panel")
	l := g.NewNode("label")
	root.AddChild(p.AddChild(l))
	s := New(g, testSchema(), Options{})
	_, err := s.Load(`.dark { color: white }`, "")
	require.NoError(t, err)
	// only the leaf is announced, ancestors are picked up from the view
	require.NoError(t, s.StructureChanged(l.Ref()))
	assert.Equal(t, 3, s.Len())
	require.NoError(t, s.RunPass(context.Background()))
	assert.Equal(t, style.Property("white"), prop(t, s, l, "color"))
}

func TestDebugOutput(t *testing.T) {
	g, s := buildScene(t, `.a { color: red }`)
	child(g.Root(), 0).AddClass("x")
	dump := s.Dump(g.Root().Ref())
	t.Logf("styled tree:\n%s", dump)
	assert.Contains(t, dump, "label#first")
	assert.Contains(t, dump, "[StructurallyDirty]")
	var buf bytes.Buffer
	require.NoError(t, s.ToGraphViz(g.Root().Ref(), &buf, "color"))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.Contains(t, dot, "<td>red</td>")
	assert.Equal(t, 6, strings.Count(dot, "->"))
}
