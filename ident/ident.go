package ident

import (
	"fmt"
	"sync"
)

// ID is an interned identifier. The zero value None is the handle of the
// empty string.
type ID uint32

// None is the identifier of the empty string. It is used to denote the absence
// of an identifier, e.g. for nodes without an id.
const None ID = 0

// Table maps strings to IDs and back. The zero value is not usable, create
// tables with NewTable.
type Table struct {
	mu  sync.RWMutex
	ids map[string]ID
	rev []string
}

// NewTable creates an empty interning table. The empty string is
// pre-interned as None.
func NewTable() *Table {
	return &Table{
		ids: map[string]ID{"": None},
		rev: []string{""},
	}
}

// Intern returns the ID for s, creating a new one if s has not been seen
// before. Intern is idempotent and safe for concurrent use.
func (t *Table) Intern(s string) ID {
	t.mu.RLock()
	id, ok := t.ids[s]
	t.mu.RUnlock()
	if ok {
		return id
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok = t.ids[s]; ok { // another writer may have been faster
		return id
	}
	id = ID(len(t.rev))
	t.rev = append(t.rev, s)
	t.ids[s] = id
	return id
}

// Find returns the ID for s without interning it.
func (t *Table) Find(s string) (ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[s]
	return id, ok
}

// Lookup returns the string for id. Lookup panics for identifiers which have
// not been handed out by this table.
func (t *Table) Lookup(id ID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) >= len(t.rev) {
		panic(fmt.Sprintf("ident: identifier %d out of range", id))
	}
	return t.rev[id]
}

// Len returns the number of interned strings, including the empty string.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rev)
}

// --- Process-wide table ----------------------------------------------------

var global = NewTable()

// Intern interns s with the process-wide table.
func Intern(s string) ID {
	return global.Intern(s)
}

// Find looks up s in the process-wide table without interning it.
func Find(s string) (ID, bool) {
	return global.Find(s)
}

// Lookup resolves id with the process-wide table.
func Lookup(id ID) string {
	return global.Lookup(id)
}

// String returns the interned string of id, resolved with the process-wide table.
func (id ID) String() string {
	return Lookup(id)
}

// Strings interns a list of strings.
func Strings(s ...string) []ID {
	ids := make([]ID, len(s))
	for i, str := range s {
		ids[i] = Intern(str)
	}
	return ids
}
