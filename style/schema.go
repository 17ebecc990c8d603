package style

import (
	"errors"
	"fmt"
	"slices"

	"github.com/npillmayer/scenestyle/ident"
)

// ErrSchema is returned for invalid schema definitions.
var ErrSchema = errors.New("invalid style schema")

// ValueKind tells which kind of values a property accepts.
type ValueKind uint8

// Value kinds known to the schema.
const (
	KindAny    ValueKind = iota // any non-empty value
	KindString                  // string or identifier
	KindNumber                  // plain number, e.g. 12 or 1.5
	KindDimen                   // dimension, e.g. 10pt or 50%, or 'auto'
	KindEnum                    // one of an enumerated set of identifiers
)

var kindNames = map[ValueKind]string{
	KindAny:    "any",
	KindString: "string",
	KindNumber: "number",
	KindDimen:  "dimen",
	KindEnum:   "enum",
}

func (k ValueKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", k)
}

// KindFromString returns the value kind with name s. The empty string maps
// to KindAny.
func KindFromString(s string) (ValueKind, bool) {
	if s == "" {
		return KindAny, true
	}
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindAny, false
}

// PropertyDef declares a style property.
type PropertyDef struct {
	Name        string
	Inheritable bool      // take the parent's value if no rule applies
	Default     Property  // value if no rule applies and nothing is inherited
	Kind        ValueKind // kind of values accepted
	Values      []string  // allowed values for KindEnum
}

// Validate checks if v is an acceptable value for the property.
func (def PropertyDef) Validate(v Property) error {
	if v.IsEmpty() {
		return fmt.Errorf("empty value for property %s", def.Name)
	}
	switch def.Kind {
	case KindAny, KindString:
		return nil
	case KindNumber:
		if _, err := v.Float(); err != nil {
			return fmt.Errorf("property %s expects a number, have %q", def.Name, v)
		}
		return nil
	case KindDimen:
		if _, err := ParseDimen(v); err != nil {
			return fmt.Errorf("property %s expects a dimension: %w", def.Name, err)
		}
		return nil
	case KindEnum:
		if !slices.Contains(def.Values, v.String()) {
			return fmt.Errorf("property %s expects one of %v, have %q", def.Name, def.Values, v)
		}
		return nil
	}
	panic(fmt.Sprintf("style: unhandled value kind %d", def.Kind))
}

// Schema is the set of style properties a cascade produces values for.
// Properties are kept in declaration order; each property has a dense index
// into ComputedStyle.
type Schema struct {
	defs  []PropertyDef
	keys  []ident.ID
	index map[ident.ID]int
}

// NewSchema creates a schema from a list of property definitions. Property
// names must be unique and every default value must be valid for its kind.
func NewSchema(defs ...PropertyDef) (*Schema, error) {
	s := &Schema{
		defs:  make([]PropertyDef, 0, len(defs)),
		keys:  make([]ident.ID, 0, len(defs)),
		index: make(map[ident.ID]int, len(defs)),
	}
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: property without name", ErrSchema)
		}
		key := ident.Intern(def.Name)
		if _, dup := s.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate property %s", ErrSchema, def.Name)
		}
		if def.Kind == KindEnum && len(def.Values) == 0 {
			return nil, fmt.Errorf("%w: enum property %s without values", ErrSchema, def.Name)
		}
		if err := def.Validate(def.Default); err != nil {
			return nil, fmt.Errorf("%w: default: %v", ErrSchema, err)
		}
		s.index[key] = len(s.defs)
		s.defs = append(s.defs, def)
		s.keys = append(s.keys, key)
	}
	tracer().Debugf("schema with %d properties", len(s.defs))
	return s, nil
}

// MustSchema is like NewSchema, but panics on error.
func MustSchema(defs ...PropertyDef) *Schema {
	s, err := NewSchema(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of properties in the schema.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.defs)
}

// Index returns the position of a property within the schema.
func (s *Schema) Index(key ident.ID) (int, bool) {
	i, ok := s.index[key]
	return i, ok
}

// Key returns the interned name of the property at position i.
func (s *Schema) Key(i int) ident.ID {
	return s.keys[i]
}

// Def returns the definition of the property at position i.
func (s *Schema) Def(i int) PropertyDef {
	return s.defs[i]
}

// Lookup finds a property definition by name.
func (s *Schema) Lookup(name string) (PropertyDef, bool) {
	key, ok := ident.Find(name)
	if !ok {
		return PropertyDef{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return PropertyDef{}, false
	}
	return s.defs[i], true
}

// Knows is a predicate: does the schema declare a property with this key?
func (s *Schema) Knows(key ident.ID) bool {
	_, ok := s.index[key]
	return ok
}

// IsInheritable returns wether the standard behaviour for a property is to be
// inherited from the parent node.
func (s *Schema) IsInheritable(key ident.ID) bool {
	i, ok := s.index[key]
	return ok && s.defs[i].Inheritable
}

// Defaults returns a computed style holding the default value of every property.
func (s *Schema) Defaults() *ComputedStyle {
	values := make([]Property, len(s.defs))
	for i, def := range s.defs {
		values[i] = def.Default
	}
	return &ComputedStyle{schema: s, values: values}
}
