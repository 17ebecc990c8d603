package style

import (
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/scenestyle/ident"
)

// ComputedStyle maps every property of a schema to its resolved value.
// Computed styles are created by the cascade and are read-only for clients.
// nil is a legal (empty) computed style.
type ComputedStyle struct {
	schema *Schema
	values []Property
}

// NewComputedStyle creates a computed style from a list of values, one per
// schema property in schema order.
func NewComputedStyle(schema *Schema, values []Property) *ComputedStyle {
	if len(values) != schema.Len() {
		panic(fmt.Sprintf("style: have %d values for schema of %d properties", len(values), schema.Len()))
	}
	return &ComputedStyle{schema: schema, values: values}
}

// Schema returns the schema of the computed style.
func (cs *ComputedStyle) Schema() *Schema {
	if cs == nil {
		return nil
	}
	return cs.schema
}

// Size returns the number of properties.
func (cs *ComputedStyle) Size() int {
	if cs == nil {
		return 0
	}
	return len(cs.values)
}

// At returns the value of the property at schema position i.
func (cs *ComputedStyle) At(i int) Property {
	return cs.values[i]
}

// Get returns a property value, together with an indicator wether the
// property is known to the schema.
func (cs *ComputedStyle) Get(key ident.ID) (Property, bool) {
	if cs == nil {
		return NullStyle, false
	}
	i, ok := cs.schema.Index(key)
	if !ok {
		return NullStyle, false
	}
	return cs.values[i], true
}

// Property returns the value of a property by name, or NullStyle.
func (cs *ComputedStyle) Property(name string) Property {
	key, ok := ident.Find(name)
	if !ok {
		return NullStyle
	}
	p, _ := cs.Get(key)
	return p
}

// Properties returns all properties in schema order.
func (cs *ComputedStyle) Properties() []KeyValue {
	if cs == nil {
		return nil
	}
	r := make([]KeyValue, len(cs.values))
	for i, v := range cs.values {
		r[i] = KeyValue{cs.schema.Def(i).Name, v}
	}
	return r
}

// Equal compares two computed styles value by value.
func (cs *ComputedStyle) Equal(other *ComputedStyle) bool {
	if cs == nil || other == nil {
		return cs == other
	}
	return cs.schema == other.schema && slices.Equal(cs.values, other.values)
}

// Diff returns the names of properties whose values differ between cs and other.
func (cs *ComputedStyle) Diff(other *ComputedStyle) []string {
	var diff []string
	for i := 0; i < cs.Size(); i++ {
		if other.Size() <= i || cs.values[i] != other.values[i] {
			diff = append(diff, cs.schema.Def(i).Name)
		}
	}
	return diff
}

// Stringer for computed styles; used for debugging.
func (cs *ComputedStyle) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, kv := range cs.Properties() {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", kv.Key, kv.Value)
	}
	b.WriteString("}")
	return b.String()
}
