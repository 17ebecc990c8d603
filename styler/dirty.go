package styler

import (
	"container/heap"
	"fmt"
)

// DirtyState is the resolution state of a node.
type DirtyState uint8

// States of nodes. A node in state StructurallyDirty which receives a
// pseudo-state change stays structurally dirty, as its cached rule matches
// still have to be dropped.
const (
	Clean             DirtyState = iota // computed style is up to date
	StateDirty                          // pseudo-state changed, cached matches valid
	StructurallyDirty                   // structure or rules changed, cached matches stale
)

func (d DirtyState) String() string {
	switch d {
	case Clean:
		return "Clean"
	case StateDirty:
		return "StateDirty"
	case StructurallyDirty:
		return "StructurallyDirty"
	}
	return fmt.Sprintf("DirtyState(%d)", d)
}

// queueItem is an entry of the depth queue. Items may go stale when the slot
// is released or moved to a different depth; stale items are skipped.
type queueItem struct {
	slot   int
	serial uint32
	depth  int
}

// depthQueue orders dirty nodes by depth, ancestors first. Nodes of equal
// depth are ordered by slot to make passes deterministic.
type depthQueue []queueItem

func (q depthQueue) Len() int { return len(q) }

func (q depthQueue) Less(i, j int) bool {
	if q[i].depth != q[j].depth {
		return q[i].depth < q[j].depth
	}
	return q[i].slot < q[j].slot
}

func (q depthQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *depthQueue) Push(x interface{}) {
	*q = append(*q, x.(queueItem))
}

func (q *depthQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// mark raises the dirty state of slot i to at least d and enqueues it.
func (s *Styler) mark(i int, d DirtyState) {
	sl := &s.arena.slots[i]
	if d > sl.state {
		sl.state = d
	}
	if !sl.queued && sl.state != Clean {
		s.enqueue(i)
	}
}

// markSubtree marks slot i and all of its descendants.
func (s *Styler) markSubtree(i int, d DirtyState) {
	s.arena.walk(i, func(j int) { s.mark(j, d) })
}

func (s *Styler) enqueue(i int) {
	sl := &s.arena.slots[i]
	sl.queued = true
	heap.Push(&s.queue, queueItem{slot: i, serial: sl.serial, depth: sl.depth})
}

// dequeue returns the next dirty slot in depth order, or false if there is
// none.
func (s *Styler) dequeue() (int, bool) {
	for s.queue.Len() > 0 {
		item := heap.Pop(&s.queue).(queueItem)
		sl := &s.arena.slots[item.slot]
		if !sl.live || sl.serial != item.serial || sl.depth != item.depth || !sl.queued {
			continue
		}
		sl.queued = false
		if sl.state == Clean {
			continue
		}
		return item.slot, true
	}
	return 0, false
}

// markFollowing marks the subtrees of the siblings following slot i, as far
// as '+' chains of the active rules reach.
func (s *Styler) markFollowing(i int, d DirtyState) {
	j := i
	for k := 0; k < s.store.SiblingReach(); k++ {
		next, ok := s.nextSibling(j)
		if !ok {
			return
		}
		s.markSubtree(next, d)
		j = next
	}
}

// nextSibling finds the node following slot i among its parent's children,
// asking the host for sibling order.
func (s *Styler) nextSibling(i int) (int, bool) {
	p := s.arena.slots[i].parent
	if p == noSlot {
		return 0, false
	}
	ref := s.arena.slots[i].ref
	for _, ch := range s.arena.slots[p].children {
		if prev, ok := s.view.PrevSibling(s.arena.slots[ch].ref); ok && prev == ref {
			return ch, true
		}
	}
	return 0, false
}
