package selector

import (
	"fmt"
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/scenestyle/ident"
)

// ParseError is a syntax error in selector text, carrying the source position.
type ParseError struct {
	Line, Column int
	Msg          string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

func errorAt(t *scanner.Token, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: t.Line, Column: t.Column, Msg: fmt.Sprintf(format, args...)}
}

// Tokenize splits text into CSS tokens. Comments are dropped.
func Tokenize(text string) ([]*scanner.Token, error) {
	s := scanner.New(text)
	var toks []*scanner.Token
	for {
		t := s.Next()
		switch t.Type {
		case scanner.TokenEOF:
			return toks, nil
		case scanner.TokenError:
			return nil, errorAt(t, "illegal input %q", t.Value)
		case scanner.TokenComment:
			continue
		}
		toks = append(toks, t)
	}
}

// Parse parses a single selector, e.g. "panel > button.primary:hover".
func Parse(text string) (*Selector, error) {
	toks, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	end := &scanner.Token{Line: 1, Column: len(text) + 1}
	sels, err := ParseList(toks, end)
	if err != nil {
		return nil, err
	}
	if len(sels) != 1 {
		return nil, &ParseError{Line: 1, Column: 1, Msg: "expected a single selector"}
	}
	return sels[0], nil
}

// MustParse is like Parse, but panics on error.
func MustParse(text string) *Selector {
	sel, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return sel
}

// ParseList parses a comma-separated list of selectors from a token stream.
// end is the token following the stream (e.g. the opening brace of a rule
// block); it is used to report errors at the end of the stream.
func ParseList(toks []*scanner.Token, end *scanner.Token) ([]*Selector, error) {
	var sels []*Selector
	start := 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) && !(toks[i].Type == scanner.TokenChar && toks[i].Value == ",") {
			continue
		}
		stop := end
		if i < len(toks) {
			stop = toks[i]
		}
		sel, err := parseSelector(toks[start:i], stop)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
		start = i + 1
	}
	return sels, nil
}

// parseSelector parses a single complex selector. Whitespace between
// compounds denotes a descendant combinator, unless an explicit combinator
// is present.
func parseSelector(toks []*scanner.Token, end *scanner.Token) (*Selector, error) {
	var compounds []Compound
	var explicit *scanner.Token // last explicit combinator, if not yet consumed
	cur := -1                   // index of the open compound, -1 if none
	pending := NoCombinator     // combinator for the next compound
	open := func() {
		compounds = append(compounds, Compound{Combinator: pending})
		cur = len(compounds) - 1
		pending = NoCombinator
		explicit = nil
	}
	add := func(s Simple) {
		if cur < 0 {
			open()
		}
		compounds[cur].Simples = append(compounds[cur].Simples, s)
	}
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Type {
		case scanner.TokenS:
			if cur >= 0 {
				cur = -1
				pending = Descendant
			}
		case scanner.TokenIdent:
			if cur >= 0 {
				return nil, errorAt(t, "type selector %q must come first in compound selector", t.Value)
			}
			add(Simple{Kind: Tag, Name: ident.Intern(t.Value)})
		case scanner.TokenHash:
			add(Simple{Kind: ID, Name: ident.Intern(strings.TrimPrefix(t.Value, "#"))})
		case scanner.TokenChar:
			switch t.Value {
			case "*":
				if cur >= 0 {
					return nil, errorAt(t, "universal selector must come first in compound selector")
				}
				add(Simple{Kind: Universal})
			case ".", ":":
				if i+1 >= len(toks) || toks[i+1].Type != scanner.TokenIdent {
					next := end
					if i+1 < len(toks) {
						next = toks[i+1]
					}
					return nil, errorAt(next, "expected name after %q", t.Value)
				}
				i++
				name := ident.Intern(toks[i].Value)
				if t.Value == "." {
					add(Simple{Kind: Class, Name: name})
				} else {
					add(Simple{Kind: Pseudo, Name: name})
				}
			case ">", "+":
				if len(compounds) == 0 {
					return nil, errorAt(t, "selector must not start with combinator %q", t.Value)
				}
				if explicit != nil {
					return nil, errorAt(t, "unexpected combinator %q after %q", t.Value, explicit.Value)
				}
				cur = -1
				explicit = t
				if t.Value == ">" {
					pending = Child
				} else {
					pending = Adjacent
				}
			default:
				return nil, errorAt(t, "unknown combinator or unexpected character %q in selector", t.Value)
			}
		case scanner.TokenFunction:
			return nil, errorAt(t, "functional pseudo-classes are not supported: %q", t.Value)
		default:
			return nil, errorAt(t, "unexpected token %q in selector", t.Value)
		}
	}
	if len(compounds) == 0 {
		return nil, errorAt(end, "empty selector")
	}
	if explicit != nil {
		return nil, errorAt(explicit, "dangling combinator %q", explicit.Value)
	}
	sel := newSelector(compounds)
	tracer().Debugf("selector %s, specificity %s", sel, sel.specificity)
	return sel, nil
}
