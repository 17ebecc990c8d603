package cssom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/scenestyle/ident"
	"github.com/npillmayer/scenestyle/selector"
	"github.com/npillmayer/scenestyle/style"
)

// Rule is a selector paired with a declaration block.
// Rules are immutable once loaded.
type Rule struct {
	Selector     *selector.Selector
	Declarations []style.Declaration
	Origin       int         // position in the global origin order
	Sheet        SheetHandle // sheet the rule has been loaded from
	Line         int         // source line of the rule's selector
}

func (r *Rule) String() string {
	decls := make([]string, len(r.Declarations))
	for i, d := range r.Declarations {
		decls[i] = d.String()
	}
	return fmt.Sprintf("%s { %s }", r.Selector, strings.Join(decls, "; "))
}

// parser consumes a token stream of a style sheet.
type parser struct {
	origin   string
	schema   *style.Schema
	toks     []*scanner.Token
	pos      int
	eof      *scanner.Token
	rules    []*Rule
	warnings []Warning
}

// Parse parses style sheet text into rules (with origin indices relative to the
// sheet). Declarations are checked against schema, if it is non-nil.
// The returned warnings are non-fatal diagnostics.
func Parse(text string, origin string, schema *style.Schema) ([]*Rule, []Warning, error) {
	toks, err := selector.Tokenize(text)
	if err != nil {
		return nil, nil, wrapSyntax(err, origin)
	}
	line, col := endPosition(text)
	p := &parser{
		origin: origin,
		schema: schema,
		toks:   toks,
		eof:    &scanner.Token{Type: scanner.TokenEOF, Line: line, Column: col},
	}
	if err := p.sheet(); err != nil {
		return nil, nil, err
	}
	for i, r := range p.rules {
		r.Origin = i
	}
	return p.rules, p.warnings, nil
}

func endPosition(text string) (int, int) {
	line := strings.Count(text, "\n") + 1
	col := len(text) - strings.LastIndex(text, "\n")
	return line, col
}

func wrapSyntax(err error, origin string) error {
	var perr *selector.ParseError
	if errors.As(err, &perr) {
		return &SyntaxError{Origin: origin, Line: perr.Line, Column: perr.Column, Msg: perr.Msg}
	}
	return err
}

func (p *parser) errorAt(t *scanner.Token, format string, args ...interface{}) error {
	return &SyntaxError{Origin: p.origin, Line: t.Line, Column: t.Column, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() *scanner.Token {
	if p.pos >= len(p.toks) {
		return p.eof
	}
	return p.toks[p.pos]
}

func (p *parser) next() *scanner.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) skipSpace() {
	for p.peek().Type == scanner.TokenS {
		p.pos++
	}
}

func isChar(t *scanner.Token, c string) bool {
	return t.Type == scanner.TokenChar && t.Value == c
}

// sheet := rule*
func (p *parser) sheet() error {
	for {
		p.skipSpace()
		t := p.peek()
		switch t.Type {
		case scanner.TokenEOF:
			return nil
		case scanner.TokenAtKeyword:
			return p.errorAt(t, "at-rules are not supported: %s", t.Value)
		case scanner.TokenCDO, scanner.TokenCDC:
			p.next()
			continue
		}
		if err := p.rule(); err != nil {
			return err
		}
	}
}

// rule := selector-list '{' declarations '}'
func (p *parser) rule() error {
	start := p.peek()
	prelude := []*scanner.Token{}
	for {
		t := p.peek()
		if t.Type == scanner.TokenEOF {
			return p.errorAt(start, "unterminated rule: missing '{'")
		}
		if isChar(t, "{") {
			break
		}
		if isChar(t, "}") || isChar(t, ";") {
			return p.errorAt(t, "unexpected %q in selector", t.Value)
		}
		prelude = append(prelude, p.next())
	}
	brace := p.next()
	sels, err := selector.ParseList(prelude, brace)
	if err != nil {
		return wrapSyntax(err, p.origin)
	}
	decls, err := p.block(brace)
	if err != nil {
		return err
	}
	for _, sel := range sels {
		p.rules = append(p.rules, &Rule{Selector: sel, Declarations: decls, Line: start.Line})
	}
	return nil
}

// block := (declaration (';' declaration)*)? '}'
func (p *parser) block(brace *scanner.Token) ([]style.Declaration, error) {
	var decls []style.Declaration
	for {
		p.skipSpace()
		t := p.peek()
		switch {
		case t.Type == scanner.TokenEOF:
			return nil, p.errorAt(brace, "unterminated block")
		case isChar(t, "}"):
			p.next()
			return decls, nil
		case isChar(t, ";"):
			p.next()
			continue
		case t.Type != scanner.TokenIdent:
			return nil, p.errorAt(t, "expected property name, have %q", t.Value)
		}
		d, err := p.declaration(brace)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d...)
	}
}

// declaration := ident ':' value
func (p *parser) declaration(brace *scanner.Token) ([]style.Declaration, error) {
	name := p.next()
	p.skipSpace()
	if colon := p.peek(); !isChar(colon, ":") {
		return nil, p.errorAt(colon, "expected ':' after property %s", name.Value)
	}
	p.next()
	var value []*scanner.Token
	for {
		t := p.peek()
		if t.Type == scanner.TokenEOF {
			return nil, p.errorAt(brace, "unterminated block")
		}
		if isChar(t, ";") || isChar(t, "}") {
			break
		}
		if isChar(t, "{") {
			return nil, p.errorAt(t, "nested blocks are not supported")
		}
		value = append(value, p.next())
	}
	value = trimSpace(value)
	if len(value) == 0 {
		return nil, p.errorAt(name, "missing value for property %s", name.Value)
	}
	return p.check(name, value), nil
}

// check converts a raw declaration to style declarations, splitting up
// compound properties and validating values against the schema.
func (p *parser) check(name *scanner.Token, value []*scanner.Token) []style.Declaration {
	key := strings.ToLower(name.Value)
	v, kw := valueOf(value)
	if p.schema == nil {
		return []style.Declaration{{Key: ident.Intern(key), Value: v, Keyword: kw}}
	}
	if style.IsCompound(key) && !p.schema.Knows(ident.Intern(key)) {
		var decls []style.Declaration
		if kw != style.NoKeyword {
			longhands, _ := style.SplitCompoundProperty(key, "x")
			for _, lh := range longhands {
				decls = append(decls, p.check1(name, lh.Key, style.NullStyle, kw)...)
			}
			return decls
		}
		longhands, err := style.SplitCompoundProperty(key, v)
		if err != nil {
			p.warn(InvalidValue, name, key, err.Error())
			return nil
		}
		for _, lh := range longhands {
			decls = append(decls, p.check1(name, lh.Key, lh.Value, kw)...)
		}
		return decls
	}
	return p.check1(name, key, v, kw)
}

func (p *parser) check1(name *scanner.Token, key string, v style.Property, kw style.Keyword) []style.Declaration {
	def, ok := p.schema.Lookup(key)
	if !ok {
		p.warn(UnknownProperty, name, key, "property not declared by schema; ignored")
	} else if kw == style.NoKeyword {
		if err := def.Validate(v); err != nil {
			p.warn(InvalidValue, name, key, err.Error())
			return nil
		}
	}
	return []style.Declaration{{Key: ident.Intern(key), Value: v, Keyword: kw}}
}

func (p *parser) warn(kind WarningKind, t *scanner.Token, key string, msg string) {
	w := Warning{Kind: kind, Property: key, Line: t.Line, Column: t.Column, Msg: msg}
	tracer().Infof("%s: %s", p.origin, w)
	p.warnings = append(p.warnings, w)
}

func trimSpace(toks []*scanner.Token) []*scanner.Token {
	for len(toks) > 0 && toks[0].Type == scanner.TokenS {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].Type == scanner.TokenS {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// valueOf converts the tokens of a declaration value to a property value.
// A single string literal is unquoted, a single identifier may be a CSS-wide
// keyword. Other values are joined, with whitespace collapsed.
func valueOf(toks []*scanner.Token) (style.Property, style.Keyword) {
	if len(toks) == 1 {
		switch t := toks[0]; t.Type {
		case scanner.TokenString:
			return style.Property(Unquote(t.Value)), style.NoKeyword
		case scanner.TokenIdent:
			v := style.Property(t.Value)
			if kw := style.KeywordOf(v); kw != style.NoKeyword {
				return style.NullStyle, kw
			}
			return v, style.NoKeyword
		}
	}
	var b strings.Builder
	space := false
	for _, t := range toks {
		if t.Type == scanner.TokenS {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		if t.Type == scanner.TokenString {
			b.WriteString(Unquote(t.Value))
			continue
		}
		b.WriteString(t.Value)
	}
	return style.Property(b.String()), style.NoKeyword
}

// Unquote strips the quotes of a CSS string literal and resolves its
// backslash escapes. Unquoted text has its escapes resolved, too.
func Unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i == len(s) {
			break // a dangling backslash is dropped
		}
		switch c := s[i]; {
		case c == '\n' || c == '\f':
			// escaped newline continues the string
		case c == '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case isHexDigit(c):
			j := i
			for j < len(s) && j-i < 6 && isHexDigit(s[j]) {
				j++
			}
			cp, _ := strconv.ParseUint(s[i:j], 16, 32)
			r := rune(cp)
			if r == 0 || r > unicode.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
				r = unicode.ReplacementChar
			}
			b.WriteRune(r)
			if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
				j++ // one whitespace terminates a hex escape
			}
			i = j - 1
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size - 1
		}
	}
	return b.String()
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
