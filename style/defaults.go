package style

import "sync"

var displayModes = []string{
	"none", "block", "inline", "inline-block", "flex", "grid", "list-item",
	"table", "table-row", "table-cell",
}

var borderStyles = []string{
	"none", "hidden", "dotted", "dashed", "solid", "double", "groove", "ridge",
	"inset", "outset",
}

// defaultProperties are browser-like user-agent defaults, plus the flex
// container properties a UI layout engine understands.
var defaultProperties = []PropertyDef{
	{Name: "display", Default: "block", Kind: KindEnum, Values: displayModes},
	{Name: "visibility", Default: "visible", Kind: KindEnum, Inheritable: true,
		Values: []string{"visible", "hidden", "collapse"}},
	{Name: "position", Default: "static", Kind: KindEnum,
		Values: []string{"static", "relative", "absolute", "fixed"}},
	{Name: "float", Default: "none", Kind: KindEnum, Values: []string{"none", "left", "right"}},
	// Margins
	{Name: "margin-top", Default: "0", Kind: KindDimen},
	{Name: "margin-left", Default: "0", Kind: KindDimen},
	{Name: "margin-right", Default: "0", Kind: KindDimen},
	{Name: "margin-bottom", Default: "0", Kind: KindDimen},
	// Padding
	{Name: "padding-top", Default: "0", Kind: KindDimen},
	{Name: "padding-left", Default: "0", Kind: KindDimen},
	{Name: "padding-right", Default: "0", Kind: KindDimen},
	{Name: "padding-bottom", Default: "0", Kind: KindDimen},
	// Border
	{Name: "border-top-color", Default: "black", Kind: KindString},
	{Name: "border-left-color", Default: "black", Kind: KindString},
	{Name: "border-right-color", Default: "black", Kind: KindString},
	{Name: "border-bottom-color", Default: "black", Kind: KindString},
	{Name: "border-top-width", Default: "medium"},
	{Name: "border-left-width", Default: "medium"},
	{Name: "border-right-width", Default: "medium"},
	{Name: "border-bottom-width", Default: "medium"},
	{Name: "border-top-style", Default: "none", Kind: KindEnum, Values: borderStyles},
	{Name: "border-left-style", Default: "none", Kind: KindEnum, Values: borderStyles},
	{Name: "border-right-style", Default: "none", Kind: KindEnum, Values: borderStyles},
	{Name: "border-bottom-style", Default: "none", Kind: KindEnum, Values: borderStyles},
	{Name: "border-top-left-radius", Default: "0", Kind: KindDimen},
	{Name: "border-top-right-radius", Default: "0", Kind: KindDimen},
	{Name: "border-bottom-right-radius", Default: "0", Kind: KindDimen},
	{Name: "border-bottom-left-radius", Default: "0", Kind: KindDimen},
	// Dimension
	{Name: "width", Default: "auto", Kind: KindDimen},
	{Name: "height", Default: "auto", Kind: KindDimen},
	{Name: "min-width", Default: "none"},
	{Name: "min-height", Default: "none"},
	{Name: "max-width", Default: "none"},
	{Name: "max-height", Default: "none"},
	// Flex container
	{Name: "flex-direction", Default: "row", Kind: KindEnum,
		Values: []string{"row", "column", "row-reverse", "column-reverse"}},
	{Name: "flex-wrap", Default: "no-wrap", Kind: KindEnum,
		Values: []string{"no-wrap", "wrap", "wrap-reverse"}},
	{Name: "align-items", Default: "stretch", Kind: KindEnum,
		Values: []string{"flex-start", "flex-end", "center", "baseline", "stretch"}},
	{Name: "align-content", Default: "stretch", Kind: KindEnum,
		Values: []string{"flex-start", "flex-end", "center", "stretch", "space-between", "space-around"}},
	{Name: "justify-content", Default: "flex-start", Kind: KindEnum,
		Values: []string{"flex-start", "flex-end", "center", "space-between", "space-around", "space-evenly"}},
	// Color
	{Name: "color", Default: "black", Kind: KindString, Inheritable: true},
	{Name: "background-color", Default: "transparent", Kind: KindString},
	// Text
	{Name: "font-family", Default: "sans", Kind: KindString, Inheritable: true},
	{Name: "font-size", Default: "12pt", Kind: KindDimen, Inheritable: true},
	{Name: "font-weight", Default: "normal", Inheritable: true},
	{Name: "direction", Default: "ltr", Kind: KindEnum, Inheritable: true, Values: []string{"ltr", "rtl"}},
	{Name: "white-space", Default: "normal", Inheritable: true},
	{Name: "word-spacing", Default: "normal", Inheritable: true},
	{Name: "letter-spacing", Default: "normal", Inheritable: true},
	{Name: "line-height", Default: "normal", Inheritable: true},
	{Name: "text-align", Default: "left", Kind: KindEnum, Inheritable: true,
		Values: []string{"left", "right", "center", "justify"}},
}

var defaultSchema struct {
	once   sync.Once
	schema *Schema
}

// DefaultSchema returns the built-in schema. It is created once and shared;
// schemas are immutable after creation.
func DefaultSchema() *Schema {
	defaultSchema.once.Do(func() {
		defaultSchema.schema = MustSchema(defaultProperties...)
	})
	return defaultSchema.schema
}
