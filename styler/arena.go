package styler

import (
	"github.com/npillmayer/scenestyle/cascade"
	"github.com/npillmayer/scenestyle/dom"
	"github.com/npillmayer/scenestyle/style"
)

const noSlot = -1

// slot holds the styling state of a node. Slots are kept in an arena and
// referenced by index; freed slots are re-used.
type slot struct {
	ref      dom.NodeRef
	live     bool
	serial   uint32 // incremented on re-use of the slot
	parent   int
	depth    int
	children []int
	state    DirtyState
	queued   bool
	match    cascade.MatchEntry
	style    *style.ComputedStyle
}

// arena is the node index of a styler: handles to slots, plus the parent and
// depth structure of the tree as far as it is known.
type arena struct {
	slots []slot
	index map[dom.NodeRef]int
	free  []int
}

func newArena() arena {
	return arena{index: make(map[dom.NodeRef]int)}
}

func (a *arena) lookup(ref dom.NodeRef) (int, bool) {
	i, ok := a.index[ref]
	return i, ok
}

func (a *arena) len() int {
	return len(a.index)
}

// alloc creates a slot for a node, without parent.
func (a *arena) alloc(ref dom.NodeRef) int {
	var i int
	if l := len(a.free); l > 0 {
		i = a.free[l-1]
		a.free = a.free[:l-1]
		serial := a.slots[i].serial + 1
		a.slots[i] = slot{serial: serial}
	} else {
		a.slots = append(a.slots, slot{})
		i = len(a.slots) - 1
	}
	s := &a.slots[i]
	s.ref, s.live, s.parent = ref, true, noSlot
	a.index[ref] = i
	return i
}

// setParent links slot i below slot p (or makes it a root, if p is noSlot)
// and adjusts the depth of i's subtree.
func (a *arena) setParent(i, p int, requeue func(int)) {
	s := &a.slots[i]
	if s.parent == p {
		return
	}
	if s.parent != noSlot {
		a.unlink(s.parent, i)
	}
	s.parent = p
	depth := 0
	if p != noSlot {
		a.slots[p].children = append(a.slots[p].children, i)
		depth = a.slots[p].depth + 1
	}
	a.setDepth(i, depth, requeue)
}

func (a *arena) setDepth(i, depth int, requeue func(int)) {
	if a.slots[i].depth == depth {
		return
	}
	a.slots[i].depth = depth
	if a.slots[i].queued {
		requeue(i)
	}
	for _, ch := range a.slots[i].children {
		a.setDepth(ch, depth+1, requeue)
	}
}

func (a *arena) unlink(p, child int) {
	chs := a.slots[p].children
	for k, ch := range chs {
		if ch == child {
			a.slots[p].children = append(chs[:k], chs[k+1:]...)
			return
		}
	}
}

// release frees slot i and its subtree.
func (a *arena) release(i int) int {
	if p := a.slots[i].parent; p != noSlot {
		a.unlink(p, i)
	}
	return a.releaseSubtree(i)
}

func (a *arena) releaseSubtree(i int) int {
	count := 1
	for _, ch := range a.slots[i].children {
		count += a.releaseSubtree(ch)
	}
	s := &a.slots[i]
	delete(a.index, s.ref)
	s.live, s.children, s.style, s.queued = false, nil, nil, false
	a.free = append(a.free, i)
	return count
}

// walk calls f for slot i and every slot in its subtree, parents first.
func (a *arena) walk(i int, f func(int)) {
	f(i)
	for _, ch := range a.slots[i].children {
		a.walk(ch, f)
	}
}
