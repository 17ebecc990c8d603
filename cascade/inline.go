package cascade

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/scenestyle/cssom"
	"github.com/npillmayer/scenestyle/ident"
	"github.com/npillmayer/scenestyle/style"
)

// maxInlineEntries bounds the number of distinct inline style texts cached.
const maxInlineEntries = 1024

// inlineCache holds parsed inline declarations, keyed by their source text.
// Hosts tend to re-use a small number of inline style texts.
type inlineCache struct {
	schema  *style.Schema
	entries map[string][]style.Declaration
}

func newInlineCache(schema *style.Schema) *inlineCache {
	return &inlineCache{
		schema:  schema,
		entries: make(map[string][]style.Declaration),
	}
}

// declarations returns the parsed declarations of an inline style text.
// Text which does not parse is ignored as a whole.
func (c *inlineCache) declarations(text string) []style.Declaration {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if decls, ok := c.entries[text]; ok {
		return decls
	}
	decls := c.parse(text)
	if len(c.entries) >= maxInlineEntries {
		c.entries = make(map[string][]style.Declaration)
	}
	c.entries[text] = decls
	return decls
}

func (c *inlineCache) parse(text string) []style.Declaration {
	src := strings.TrimSpace(text)
	if !strings.HasSuffix(src, ";") {
		src += ";" // the parser drops the value of an unterminated last declaration
	}
	raw, err := parser.ParseDeclarations(src)
	if err != nil {
		tracer().Infof("inline style %q ignored: %v", text, err)
		return nil
	}
	var decls []style.Declaration
	for _, d := range raw {
		key := strings.ToLower(strings.TrimSpace(d.Property))
		literal := strings.TrimSpace(d.Value)
		value := style.Property(cssom.Unquote(literal))
		kw := style.KeywordOf(style.Property(literal)) // quoted keywords are literals
		if kw != style.NoKeyword {
			value = style.NullStyle
		}
		if style.IsCompound(key) && !c.schema.Knows(ident.Intern(key)) {
			if kw != style.NoKeyword {
				longhands, _ := style.SplitCompoundProperty(key, "x")
				for _, lh := range longhands {
					decls = c.append(decls, lh.Key, style.NullStyle, kw)
				}
				continue
			}
			longhands, err := style.SplitCompoundProperty(key, value)
			if err != nil {
				tracer().Infof("inline style: %v", err)
				continue
			}
			for _, lh := range longhands {
				decls = c.append(decls, lh.Key, lh.Value, kw)
			}
			continue
		}
		decls = c.append(decls, key, value, kw)
	}
	return decls
}

// append adds a declaration if it is valid for the schema.
func (c *inlineCache) append(decls []style.Declaration, key string, v style.Property, kw style.Keyword) []style.Declaration {
	def, ok := c.schema.Lookup(key)
	if !ok {
		tracer().Infof("inline style: unknown property %s ignored", key)
		return decls
	}
	if kw == style.NoKeyword {
		if err := def.Validate(v); err != nil {
			tracer().Infof("inline style: %v", err)
			return decls
		}
	}
	return append(decls, style.Declaration{Key: ident.Intern(key), Value: v, Keyword: kw})
}
