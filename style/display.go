package style

import (
	"fmt"
	"strings"
)

// DisplayMode is a typed value of property "display": an outer mode (how a
// node participates in its parent's layout) and an inner mode (how it lays
// out its children).
type DisplayMode uint16

// Flags for outer and inner display modes.
const (
	NoMode         DisplayMode = 0      // unset or error condition
	DisplayNone    DisplayMode = 0x0001 // outer display = none
	BlockMode      DisplayMode = 0x0002 // outer block context
	InlineMode     DisplayMode = 0x0004 // outer inline context
	ListItemMode   DisplayMode = 0x0010 // list item marker
	FlowMode       DisplayMode = 0x0020 // inner flow layout
	FlexMode       DisplayMode = 0x0040 // inner display = flex
	GridMode       DisplayMode = 0x0080 // inner display = grid
	TableMode      DisplayMode = 0x0100 // inner display = table
	TableRowMode   DisplayMode = 0x0200 // table row
	TableCellMode  DisplayMode = 0x0400 // table cell
	ContainerMode  DisplayMode = 0x0800 // inner block container of an inline box
	outerModesMask DisplayMode = 0x000f
)

var displayFlags = []struct {
	mode DisplayMode
	name string
}{
	{DisplayNone, "none"}, {BlockMode, "block"}, {InlineMode, "inline"},
	{ListItemMode, "list-item"}, {FlowMode, "flow"}, {FlexMode, "flex"},
	{GridMode, "grid"}, {TableMode, "table"}, {TableRowMode, "table-row"},
	{TableCellMode, "table-cell"}, {ContainerMode, "container"},
}

// Outer returns the outer mode.
func (disp DisplayMode) Outer() DisplayMode {
	return disp & outerModesMask
}

// Inner returns the inner mode.
func (disp DisplayMode) Inner() DisplayMode {
	return disp &^ outerModesMask
}

// IsBlockLevel returns true if disp has an outer display of BlockMode.
func (disp DisplayMode) IsBlockLevel() bool {
	return disp.Outer() == BlockMode
}

// Contains checks if a display mode contains a given atomic mode.
// Returns false for d = NoMode.
func (disp DisplayMode) Contains(d DisplayMode) bool {
	return d != NoMode && disp&d == d
}

// String returns all atomic modes set in a display mode.
func (disp DisplayMode) String() string {
	if disp == NoMode {
		return "NoMode"
	}
	var names []string
	for _, f := range displayFlags {
		if disp.Contains(f.mode) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, " ")
}

// ParseDisplay returns mode flags from a display property value.
func ParseDisplay(display string) (DisplayMode, error) {
	switch strings.TrimSpace(display) {
	case "":
		return NoMode, nil
	case "none":
		return DisplayNone, nil
	case "block":
		return BlockMode | FlowMode, nil
	case "inline":
		return InlineMode | FlowMode, nil
	case "inline-block":
		return InlineMode | ContainerMode | FlowMode, nil
	case "list-item":
		return BlockMode | ListItemMode | FlowMode, nil
	case "flex":
		return BlockMode | FlexMode, nil
	case "grid":
		return BlockMode | GridMode, nil
	case "table":
		return BlockMode | TableMode, nil
	case "table-row":
		return TableRowMode, nil
	case "table-cell":
		return TableCellMode | FlowMode, nil
	}
	return NoMode, fmt.Errorf("unknown display mode: %s", display)
}

// Display interprets p as a value of property "display".
func (p Property) Display() (DisplayMode, error) {
	return ParseDisplay(p.String())
}
