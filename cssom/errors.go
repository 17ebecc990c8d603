package cssom

import (
	"errors"
	"fmt"
)

// ErrUnknownSheet is returned for operations on sheet handles which are not
// (or no longer) loaded.
var ErrUnknownSheet = errors.New("unknown style sheet")

// SyntaxError is a parse error in style sheet text. A sheet with a syntax error
// is never applied.
type SyntaxError struct {
	Origin       string // origin label of the sheet
	Line, Column int
	Msg          string
}

func (e *SyntaxError) Error() string {
	if e.Origin == "" {
		return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: syntax error: %s", e.Origin, e.Line, e.Column, e.Msg)
}

// WarningKind classifies non-fatal diagnostics.
type WarningKind uint8

// Kinds of warnings.
const (
	UnknownProperty WarningKind = iota // property not declared by the schema; ignored
	InvalidValue                       // value not acceptable for the property; dropped
)

func (k WarningKind) String() string {
	switch k {
	case UnknownProperty:
		return "unknown property"
	case InvalidValue:
		return "invalid value"
	}
	return fmt.Sprintf("warning(%d)", k)
}

// Warning is a non-blocking diagnostic produced while loading a sheet.
type Warning struct {
	Kind         WarningKind
	Property     string
	Line, Column int
	Msg          string
}

func (w Warning) String() string {
	return fmt.Sprintf("%d:%d: %s %s: %s", w.Line, w.Column, w.Kind, w.Property, w.Msg)
}
