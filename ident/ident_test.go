package ident

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternIsIdempotent(t *testing.T) {
	tab := NewTable()
	a := tab.Intern("panel")
	b := tab.Intern("panel")
	if a != b {
		t.Errorf("expected equal strings to yield equal handles, got %d and %d", a, b)
	}
	if c := tab.Intern("button"); c == a {
		t.Errorf("expected different strings to yield different handles, both are %d", c)
	}
	if got := tab.Lookup(a); got != "panel" {
		t.Errorf("expected lookup to return 'panel', is %q", got)
	}
}

func TestEmptyStringIsNone(t *testing.T) {
	tab := NewTable()
	assert.Equal(t, None, tab.Intern(""))
	assert.Equal(t, "", tab.Lookup(None))
	assert.Equal(t, 1, tab.Len())
}

func TestFindDoesNotIntern(t *testing.T) {
	tab := NewTable()
	_, ok := tab.Find("hover")
	assert.False(t, ok)
	assert.Equal(t, 1, tab.Len())
	id := tab.Intern("hover")
	found, ok := tab.Find("hover")
	assert.True(t, ok)
	assert.Equal(t, id, found)
}

func TestLookupOutOfRangePanics(t *testing.T) {
	tab := NewTable()
	assert.Panics(t, func() { tab.Lookup(ID(42)) })
}

func TestConcurrentIntern(t *testing.T) {
	tab := NewTable()
	const workers = 8
	results := make([][]ID, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]ID, 100)
			for i := range ids {
				ids[i] = tab.Intern(fmt.Sprintf("class-%d", i))
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()
	for w := 1; w < workers; w++ {
		assert.Equal(t, results[0], results[w], "worker %d saw different handles", w)
	}
	assert.Equal(t, 101, tab.Len())
}

func TestGlobalTable(t *testing.T) {
	id := Intern("ident-test-global")
	if id.String() != "ident-test-global" {
		t.Errorf("expected global lookup to round-trip, is %q", id.String())
	}
}

func TestSet(t *testing.T) {
	s := SetOf("panel", "active")
	assert.True(t, s.Contains(Intern("panel")))
	assert.True(t, s.Contains(Intern("active")))
	assert.False(t, s.Contains(Intern("hidden")))
	assert.Equal(t, 2, s.Len())

	var empty Set
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.Contains(Intern("panel")))
	assert.True(t, empty.Equal(NewSet()))

	c := s.Clone()
	c.Remove(Intern("active"))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, s.Len(), "clone must not share storage")
	assert.False(t, s.Equal(c))
	c.Add(Intern("active"))
	assert.True(t, s.Equal(c))

	var n Set
	n.Add(None)
	assert.True(t, n.IsEmpty(), "None is never a set member")
}
