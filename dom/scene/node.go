package scene

import (
	"fmt"

	"github.com/npillmayer/scenestyle/dom"
	"github.com/npillmayer/scenestyle/ident"
)

// Listener receives mutation notifications from a scene graph.
type Listener interface {
	StructureChanged(dom.NodeRef) error // tag, classes, id or position changed, or node attached
	StateChanged(dom.NodeRef) error     // pseudo-state or inline style changed
	NodeRemoved(dom.NodeRef) error      // node detached from the graph
}

// Graph is a scene graph: a tree of nodes plus a registry of handles.
type Graph struct {
	nodes    map[dom.NodeRef]*Node
	next     dom.NodeRef
	root     *Node
	listener Listener
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[dom.NodeRef]*Node)}
}

// SetListener connects a listener to the graph. Nodes already attached are
// announced to the listener, parents first.
func (g *Graph) SetListener(l Listener) {
	g.listener = l
	if g.root != nil {
		g.announce(g.root)
	}
}

// Node is the building block of a scene graph.
type Node struct {
	ref      dom.NodeRef
	graph    *Graph
	parent   *Node
	children []*Node
	attached bool // reachable from the root of the graph
	tag      ident.ID
	id       ident.ID
	classes  ident.Set
	state    ident.Set
	inline   string
}

// NewNode creates a detached node with a given tag name and optional classes.
func (g *Graph) NewNode(tag string, classes ...string) *Node {
	g.next++
	n := &Node{
		ref:     g.next,
		graph:   g,
		tag:     ident.Intern(tag),
		classes: ident.SetOf(classes...),
	}
	g.nodes[n.ref] = n
	return n
}

// SetRoot makes n the root of the graph. A previous root is detached.
func (g *Graph) SetRoot(n *Node) *Node {
	if g.root == n {
		return n
	}
	if g.root != nil {
		g.detach(g.root)
	}
	n.Isolate()
	g.root = n
	g.attach(n)
	return n
}

// Root returns the root node of the graph, if any.
func (g *Graph) Root() *Node {
	return g.root
}

// Node returns the node for a handle.
func (g *Graph) Node(ref dom.NodeRef) (*Node, bool) {
	n, ok := g.nodes[ref]
	return n, ok
}

func (g *Graph) attach(n *Node) {
	n.walk(func(x *Node) { x.attached = true })
	g.announce(n)
}

func (g *Graph) announce(n *Node) {
	if g.listener == nil {
		return
	}
	n.walk(func(x *Node) { g.notify(g.listener.StructureChanged, x) })
}

func (g *Graph) detach(n *Node) {
	if !n.attached {
		return
	}
	n.walk(func(x *Node) { x.attached = false })
	if g.listener != nil {
		g.notify(g.listener.NodeRemoved, n)
	}
	if g.root == n {
		g.root = nil
	}
}

func (g *Graph) notify(f func(dom.NodeRef) error, n *Node) {
	if err := f(n.ref); err != nil {
		tracer().Errorf("scene graph listener: %v", err)
	}
}

func (g *Graph) changed(n *Node, structural bool) {
	if !n.attached || g.listener == nil {
		return
	}
	if structural {
		g.notify(g.listener.StructureChanged, n)
	} else {
		g.notify(g.listener.StateChanged, n)
	}
}

// --- Tree structure --------------------------------------------------------

// Ref returns the handle of the node.
func (n *Node) Ref() dom.NodeRef {
	return n.ref
}

func (n *Node) String() string {
	return fmt.Sprintf("(%s %s%s #ch=%d)", n.ref, n.tag, n.classes, len(n.children))
}

// AddChild appends a child node. A child still attached elsewhere is moved.
// It returns the parent node to allow for chaining.
func (n *Node) AddChild(ch *Node) *Node {
	return n.InsertChildAt(len(n.children), ch)
}

// InsertChildAt inserts a child node at position i, shifting children at later
// positions. It returns the parent node to allow for chaining.
func (n *Node) InsertChildAt(i int, ch *Node) *Node {
	if ch == nil {
		return n
	}
	ch.Isolate()
	if i < 0 || i > len(n.children) {
		i = len(n.children)
	}
	n.children = append(n.children, nil)   // make room for one child
	copy(n.children[i+1:], n.children[i:]) // shift i+1..n
	n.children[i] = ch
	ch.parent = n
	if n.attached {
		n.graph.attach(ch)
	}
	return n
}

// Isolate removes a node from its parent. The node and its sub-tree are
// reported as removed. Isolate returns the isolated node.
func (n *Node) Isolate() *Node {
	if n.parent == nil {
		if n.graph.root == n {
			n.graph.detach(n)
		}
		return n
	}
	i := n.parent.IndexOfChild(n)
	n.parent.children = append(n.parent.children[:i], n.parent.children[i+1:]...)
	n.parent = nil
	n.graph.detach(n)
	return n
}

// Parent returns the parent node or nil (for the root of the tree).
func (n *Node) Parent() *Node {
	return n.parent
}

// ChildCount returns the number of children-nodes for a node.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns a children-node of a node.
func (n *Node) Child(i int) (*Node, bool) {
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}

// Children returns a copy of the slice of children.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// IndexOfChild returns the index of a child within the list of children
// of its parent, or -1.
func (n *Node) IndexOfChild(ch *Node) int {
	for i, child := range n.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// walk visits n and its sub-tree, parents before children.
func (n *Node) walk(f func(*Node)) {
	f(n)
	for _, ch := range n.children {
		ch.walk(f)
	}
}

// --- Styling facets --------------------------------------------------------

// SetTag changes the tag name of the node.
func (n *Node) SetTag(tag string) *Node {
	n.tag = ident.Intern(tag)
	n.graph.changed(n, true)
	return n
}

// SetID sets the id of the node; the empty string removes it.
func (n *Node) SetID(id string) *Node {
	n.id = ident.Intern(id)
	n.graph.changed(n, true)
	return n
}

// AddClass adds a class name.
func (n *Node) AddClass(class string) *Node {
	n.classes.Add(ident.Intern(class))
	n.graph.changed(n, true)
	return n
}

// RemoveClass removes a class name.
func (n *Node) RemoveClass(class string) *Node {
	n.classes.Remove(ident.Intern(class))
	n.graph.changed(n, true)
	return n
}

// SetState switches a pseudo-state flag, e.g. "hover", on or off.
func (n *Node) SetState(flag string, on bool) *Node {
	id := ident.Intern(flag)
	if n.state.Contains(id) == on {
		return n
	}
	if on {
		n.state.Add(id)
	} else {
		n.state.Remove(id)
	}
	n.graph.changed(n, false)
	return n
}

// SetInlineStyle sets inline declarations, e.g. "color: red".
func (n *Node) SetInlineStyle(decls string) *Node {
	n.inline = decls
	n.graph.changed(n, false)
	return n
}

// --- dom.View --------------------------------------------------------------

func (g *Graph) lookup(ref dom.NodeRef) *Node {
	n, ok := g.nodes[ref]
	if !ok {
		panic(fmt.Sprintf("scene: unknown node %s", ref))
	}
	return n
}

// Tag is part of interface dom.View.
func (g *Graph) Tag(ref dom.NodeRef) ident.ID {
	return g.lookup(ref).tag
}

// Classes is part of interface dom.View.
func (g *Graph) Classes(ref dom.NodeRef) ident.Set {
	return g.lookup(ref).classes
}

// ID is part of interface dom.View.
func (g *Graph) ID(ref dom.NodeRef) (ident.ID, bool) {
	n := g.lookup(ref)
	return n.id, n.id != ident.None
}

// PseudoState is part of interface dom.View.
func (g *Graph) PseudoState(ref dom.NodeRef) ident.Set {
	return g.lookup(ref).state
}

// Parent is part of interface dom.View.
func (g *Graph) Parent(ref dom.NodeRef) (dom.NodeRef, bool) {
	n := g.lookup(ref)
	if n.parent == nil {
		return 0, false
	}
	return n.parent.ref, true
}

// PrevSibling is part of interface dom.View.
func (g *Graph) PrevSibling(ref dom.NodeRef) (dom.NodeRef, bool) {
	n := g.lookup(ref)
	if n.parent == nil {
		return 0, false
	}
	i := n.parent.IndexOfChild(n)
	if i <= 0 {
		return 0, false
	}
	return n.parent.children[i-1].ref, true
}

// InlineStyle is part of interface dom.InlineStyler.
func (g *Graph) InlineStyle(ref dom.NodeRef) string {
	return g.lookup(ref).inline
}

var _ dom.View = &Graph{}
var _ dom.InlineStyler = &Graph{}
