package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/scenestyle/ident"
)

// Property is a raw value for a style property. For example, with
//
//     color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient type conversion functions and other helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsUnset denotes if a property is of inheritence-type "unset"
func (p Property) IsUnset() bool {
	return p == "unset"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// Float returns the numeric value of p.
func (p Property) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(p)), 64)
}

// Int returns the integer value of p. Fractional values are truncated.
func (p Property) Int() (int, error) {
	f, err := p.Float()
	return int(f), err
}

// Fields splits a multi-valued property, e.g. "1px solid red".
func (p Property) Fields() []string {
	return strings.Fields(string(p))
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Declarations ----------------------------------------------------------

// Keyword is a CSS-wide keyword, which may be used as the value of any property.
type Keyword uint8

// CSS-wide keywords. A declaration with keyword NoKeyword carries a literal value.
const (
	NoKeyword Keyword = iota
	Inherit           // use the parent's computed value
	Initial           // use the schema default
	Unset             // Inherit for inheritable properties, Initial otherwise
)

func (k Keyword) String() string {
	switch k {
	case NoKeyword:
		return ""
	case Inherit:
		return "inherit"
	case Initial:
		return "initial"
	case Unset:
		return "unset"
	}
	return fmt.Sprintf("keyword(%d)", k)
}

// KeywordOf returns the CSS-wide keyword p stands for, if any.
func KeywordOf(p Property) Keyword {
	switch {
	case p.IsInherit():
		return Inherit
	case p.IsInitial():
		return Initial
	case p.IsUnset():
		return Unset
	}
	return NoKeyword
}

// Declaration is a single 'property: value' entry of a declaration block.
type Declaration struct {
	Key     ident.ID // interned property name
	Value   Property // literal value, empty if Keyword is set
	Keyword Keyword
}

func (d Declaration) String() string {
	if d.Keyword != NoKeyword {
		return d.Key.String() + ": " + d.Keyword.String()
	}
	return d.Key.String() + ": " + d.Value.String()
}

// --- Compound properties ---------------------------------------------------

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//    SplitCompountProperty("padding", "3px")
// will return
//    "padding-top"    => "3px"
//    "padding-right"  => "3px"
//    "padding-bottom" => "3px"
//    "padding-left"   => "3px"
// For the logic behind this, refer to e.g.
// https://www.w3schools.com/css/css_padding.asp .
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := value.Fields()
	switch key {
	case "margin":
		return feazeCompound4(key, "margin", "", fourDirs, fields)
	case "padding":
		return feazeCompound4(key, "padding", "", fourDirs, fields)
	case "border-color":
		return feazeCompound4(key, "border", "color", fourDirs, fields)
	case "border-width":
		return feazeCompound4(key, "border", "width", fourDirs, fields)
	case "border-style":
		return feazeCompound4(key, "border", "style", fourDirs, fields)
	case "border-radius":
		return feazeCompound4(key, "border", "radius", fourCorners, fields)
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// IsCompound is a predicate for shortcut properties understood by
// SplitCompoundProperty.
func IsCompound(key string) bool {
	switch key {
	case "margin", "padding", "border-color", "border-width", "border-style", "border-radius":
		return true
	}
	return false
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_border.asp
func feazeCompound4(key string, pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s", key)
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{p(pre, suf, dirs[0]), Property(fields[0])}
	switch l {
	case 1:
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[0])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[0])}
	case 2:
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
	case 3:
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
	case 4:
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[3])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	if tag == "" {
		return prefix + "-" + suffix
	}
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}
