package styler

import (
	"context"
	"errors"
	"fmt"

	"github.com/npillmayer/scenestyle/cascade"
	"github.com/npillmayer/scenestyle/cssom"
	"github.com/npillmayer/scenestyle/dom"
	"github.com/npillmayer/scenestyle/style"
)

// ErrMissingNode flags a host/core desynchronization: the styler has been
// asked about a node it has never been told about, or which has been removed.
var ErrMissingNode = errors.New("node unknown to styler")

// ErrUnresolved is returned for computed styles of nodes which have not been
// part of a pass yet.
var ErrUnresolved = errors.New("node has not been styled yet")

// MissingNodeError is an ErrMissingNode for a specific node.
type MissingNodeError struct {
	Node dom.NodeRef
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingNode, e.Node)
}

func (e *MissingNodeError) Unwrap() error {
	return ErrMissingNode
}

// Options configure a styler.
type Options struct {
	// Strict makes host/core desynchronization fatal: instead of returning
	// a MissingNodeError, the styler panics. Intended for debug builds.
	Strict bool
}

// PassStats reports on a resolution pass.
type PassStats struct {
	Resolved int // nodes resolved
	Changed  int // nodes whose computed style changed
}

// Styler tracks dirty nodes of a host's scene graph and re-resolves them in
// passes.
type Styler struct {
	view   dom.View
	store  *cssom.Store
	engine *cascade.Engine
	opts   Options
	arena  arena
	queue  depthQueue
	last   PassStats
}

// New creates a styler for a scene graph, viewed through v. Computed styles
// will carry the properties of schema; if schema is nil, the built-in default
// schema is used.
func New(v dom.View, schema *style.Schema, opts Options) *Styler {
	if schema == nil {
		schema = style.DefaultSchema()
	}
	store := cssom.NewStore(schema)
	return &Styler{
		view:   v,
		store:  store,
		engine: cascade.NewEngine(store),
		opts:   opts,
		arena:  newArena(),
	}
}

// Store returns the style sheet store of the styler. Clients should use the
// styler's Load, Unload and Replace for changes to the active sheets, as
// these dirty the styled nodes.
func (s *Styler) Store() *cssom.Store {
	return s.store
}

// Schema returns the schema of the computed styles.
func (s *Styler) Schema() *style.Schema {
	return s.engine.Schema()
}

func (s *Styler) missing(n dom.NodeRef) error {
	err := &MissingNodeError{Node: n}
	if s.opts.Strict {
		panic(err)
	}
	tracer().Errorf("%v", err)
	return err
}

// --- Style sheets ----------------------------------------------------------

// Load adds a style sheet, see cssom.Store.Load. All nodes become dirty.
func (s *Styler) Load(text string, origin string) (cssom.SheetHandle, error) {
	h, err := s.store.Load(text, origin)
	if err != nil {
		return h, err
	}
	s.markAll()
	return h, nil
}

// Unload removes a style sheet, see cssom.Store.Unload. All nodes become dirty.
func (s *Styler) Unload(h cssom.SheetHandle) error {
	if err := s.store.Unload(h); err != nil {
		return err
	}
	s.markAll()
	return nil
}

// Replace exchanges the rules of a style sheet, see cssom.Store.Replace.
// All nodes become dirty. If text does not parse, the previous rules stay
// in effect and no node is dirtied.
func (s *Styler) Replace(h cssom.SheetHandle, text string) error {
	if err := s.store.Replace(h, text); err != nil {
		return err
	}
	s.markAll()
	return nil
}

func (s *Styler) markAll() {
	for _, i := range s.arena.index {
		s.mark(i, StructurallyDirty)
	}
	tracer().Debugf("style sheets changed, %d nodes dirty", s.arena.len())
}

// --- Host notifications ----------------------------------------------------

// StructureChanged notifies the styler of a change of a node's tag, classes,
// id or position in the tree. It is also used to announce new nodes; unknown
// ancestors of a new node are registered as well.
func (s *Styler) StructureChanged(n dom.NodeRef) error {
	i := s.register(n)
	s.markSubtree(i, StructurallyDirty)
	s.markFollowing(i, StructurallyDirty)
	return nil
}

// register finds or creates the slot for n and refreshes its parent link
// from the host's view.
func (s *Styler) register(n dom.NodeRef) int {
	i, ok := s.arena.lookup(n)
	if !ok {
		i = s.arena.alloc(n)
		s.mark(i, StructurallyDirty)
		tracer().Debugf("styler: registered %s", n)
	}
	p := noSlot
	if pref, ok := s.view.Parent(n); ok {
		if p, ok = s.arena.lookup(pref); !ok {
			p = s.register(pref)
		}
	}
	s.arena.setParent(i, p, s.enqueue)
	return i
}

// StateChanged notifies the styler of a change of a node's pseudo-state or
// inline style.
func (s *Styler) StateChanged(n dom.NodeRef) error {
	i, ok := s.arena.lookup(n)
	if !ok {
		return s.missing(n)
	}
	if !s.store.HasNonSubjectPseudo() {
		s.mark(i, StateDirty)
		return nil
	}
	// descendants and following siblings may test n's pseudo-state
	s.markSubtree(i, StateDirty)
	s.markFollowing(i, StateDirty)
	return nil
}

// NodeRemoved notifies the styler of the removal of a node. The node and its
// subtree are forgotten.
func (s *Styler) NodeRemoved(n dom.NodeRef) error {
	i, ok := s.arena.lookup(n)
	if !ok {
		return s.missing(n)
	}
	p := s.arena.slots[i].parent
	count := s.arena.release(i)
	tracer().Debugf("styler: removed %s with %d nodes", n, count)
	if p != noSlot && s.store.HasSiblingCombinator() {
		// a former following sibling has a new predecessor
		for _, ch := range s.arena.slots[p].children {
			s.markSubtree(ch, StructurallyDirty)
		}
	}
	return nil
}

// --- Core to host ----------------------------------------------------------

// ComputedStyle returns the computed style of a node, as of the most recent
// pass which resolved it. Use State to check if it is up to date.
func (s *Styler) ComputedStyle(n dom.NodeRef) (*style.ComputedStyle, error) {
	i, ok := s.arena.lookup(n)
	if !ok {
		return nil, s.missing(n)
	}
	cs := s.arena.slots[i].style
	if cs == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, n)
	}
	return cs, nil
}

// State returns the dirty state of a node.
func (s *Styler) State(n dom.NodeRef) (DirtyState, error) {
	i, ok := s.arena.lookup(n)
	if !ok {
		return Clean, s.missing(n)
	}
	return s.arena.slots[i].state, nil
}

// Len returns the number of nodes known to the styler.
func (s *Styler) Len() int {
	return s.arena.len()
}

// Pending returns the number of dirty nodes.
func (s *Styler) Pending() int {
	count := 0
	for _, i := range s.arena.index {
		if s.arena.slots[i].state != Clean {
			count++
		}
	}
	return count
}

// LastPass returns statistics about the most recent pass.
func (s *Styler) LastPass() PassStats {
	return s.last
}

// RunPass resolves all dirty nodes, parents before children. If ctx is
// cancelled, the pass stops after the node currently being resolved and
// returns ctx's error; nodes not yet resolved stay dirty for the next pass.
func (s *Styler) RunPass(ctx context.Context) error {
	s.last = PassStats{}
	for {
		if err := ctx.Err(); err != nil {
			tracer().Infof("styler: pass cancelled with %d nodes resolved", s.last.Resolved)
			return err
		}
		i, ok := s.dequeue()
		if !ok {
			break
		}
		s.resolve(i)
	}
	tracer().Debugf("styler: pass resolved %d nodes, %d changed", s.last.Resolved, s.last.Changed)
	return nil
}

func (s *Styler) resolve(i int) {
	sl := &s.arena.slots[i]
	if sl.state == StructurallyDirty {
		sl.match.Invalidate()
	}
	var parent *style.ComputedStyle
	if sl.parent != noSlot {
		parent = s.arena.slots[sl.parent].style
	}
	cs := s.engine.Resolve(s.view, sl.ref, parent, &sl.match)
	changed := !cs.Equal(sl.style)
	sl.style, sl.state = cs, Clean
	s.last.Resolved++
	if !changed {
		return
	}
	s.last.Changed++
	for _, ch := range sl.children {
		s.mark(ch, StateDirty)
	}
}
