/*
Package htmlview is a read-only host view onto an HTML document.

Element nodes of a parsed HTML document are presented as a dom.View, with
the 'class' and 'id' attributes as class set and id, and the 'style' attribute
as inline style. Text nodes, comments and the document node itself are not
part of the view. Pseudo-states are kept by the view, as HTML has no notion
of them; clients toggle them with SetState.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlview

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/scenestyle/dom"
	"github.com/npillmayer/scenestyle/ident"
	"golang.org/x/net/html"
)

// tracer traces with key 'scenestyle.dom'.
func tracer() tracing.Trace {
	return tracing.Select("scenestyle.dom")
}

// Announcer receives the announcement of element nodes, usually a
// *styler.Styler.
type Announcer interface {
	StructureChanged(dom.NodeRef) error
	StateChanged(dom.NodeRef) error
}

// Document is a view onto an HTML document. Element nodes are numbered in
// document order, starting with 1.
type Document struct {
	doc      *goquery.Document
	elements []*html.Node // element for ref n at n-1
	refs     map[*html.Node]dom.NodeRef
	state    map[dom.NodeRef]ident.Set
	listener Announcer
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return wrap(doc), nil
}

// FromNode creates a view for an already parsed HTML tree.
func FromNode(root *html.Node) *Document {
	return wrap(goquery.NewDocumentFromNode(root))
}

func wrap(doc *goquery.Document) *Document {
	d := &Document{
		doc:   doc,
		refs:  make(map[*html.Node]dom.NodeRef),
		state: make(map[dom.NodeRef]ident.Set),
	}
	for _, root := range doc.Nodes {
		d.number(root)
	}
	tracer().Debugf("HTML view with %d elements", len(d.elements))
	return d
}

func (d *Document) number(n *html.Node) {
	if n.Type == html.ElementNode {
		d.elements = append(d.elements, n)
		d.refs[n] = dom.NodeRef(len(d.elements))
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		d.number(ch)
	}
}

// Elements returns the handles of all elements, in document order.
func (d *Document) Elements() []dom.NodeRef {
	refs := make([]dom.NodeRef, len(d.elements))
	for i := range d.elements {
		refs[i] = dom.NodeRef(i + 1)
	}
	return refs
}

// Ref returns the handle of an element node.
func (d *Document) Ref(n *html.Node) (dom.NodeRef, bool) {
	ref, ok := d.refs[n]
	return ref, ok
}

// HTMLNode returns the element node for a handle.
func (d *Document) HTMLNode(ref dom.NodeRef) *html.Node {
	if ref == 0 || int(ref) > len(d.elements) {
		panic(fmt.Sprintf("htmlview: unknown node %s", ref))
	}
	return d.elements[ref-1]
}

// Find returns the elements matching a CSS selector, in document order.
// The full selector syntax of package goquery is accepted.
func (d *Document) Find(selector string) []dom.NodeRef {
	var refs []dom.NodeRef
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			if ref, ok := d.refs[n]; ok {
				refs = append(refs, ref)
			}
		}
	})
	return refs
}

// Query is like Find, but reports selector syntax errors.
func (d *Document) Query(selector string) ([]dom.NodeRef, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	var refs []dom.NodeRef
	for _, root := range d.doc.Nodes {
		for _, n := range sel.MatchAll(root) {
			if ref, ok := d.refs[n]; ok {
				refs = append(refs, ref)
			}
		}
	}
	return refs, nil
}

// StyleSheets returns the contents of the document's <style> elements, in
// document order.
func (d *Document) StyleSheets() []string {
	var sheets []string
	d.doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		sheets = append(sheets, s.Text())
	})
	return sheets
}

// Announce tells l about every element of the document, parents first.
// Subsequent changes of pseudo-states are reported to l as well.
func (d *Document) Announce(l Announcer) error {
	d.listener = l
	for i := range d.elements {
		if err := l.StructureChanged(dom.NodeRef(i + 1)); err != nil {
			return err
		}
	}
	return nil
}

// SetState switches a pseudo-state flag of an element on or off.
func (d *Document) SetState(ref dom.NodeRef, flag string, on bool) {
	d.HTMLNode(ref) // check ref
	id := ident.Intern(flag)
	set := d.state[ref]
	if set.Contains(id) == on {
		return
	}
	if on {
		set.Add(id)
	} else {
		set.Remove(id)
	}
	d.state[ref] = set
	if d.listener != nil {
		if err := d.listener.StateChanged(ref); err != nil {
			tracer().Errorf("HTML view listener: %v", err)
		}
	}
}

// --- dom.View --------------------------------------------------------------

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Tag is part of interface dom.View.
func (d *Document) Tag(ref dom.NodeRef) ident.ID {
	return ident.Intern(strings.ToLower(d.HTMLNode(ref).Data))
}

// Classes is part of interface dom.View.
func (d *Document) Classes(ref dom.NodeRef) ident.Set {
	classes, _ := attr(d.HTMLNode(ref), "class")
	return ident.SetOf(strings.Fields(classes)...)
}

// ID is part of interface dom.View.
func (d *Document) ID(ref dom.NodeRef) (ident.ID, bool) {
	id, ok := attr(d.HTMLNode(ref), "id")
	if !ok || id == "" {
		return ident.None, false
	}
	return ident.Intern(id), true
}

// PseudoState is part of interface dom.View.
func (d *Document) PseudoState(ref dom.NodeRef) ident.Set {
	d.HTMLNode(ref)
	return d.state[ref]
}

// Parent is part of interface dom.View.
func (d *Document) Parent(ref dom.NodeRef) (dom.NodeRef, bool) {
	p := d.HTMLNode(ref).Parent
	if p == nil || p.Type != html.ElementNode {
		return 0, false
	}
	return d.refs[p], true
}

// PrevSibling is part of interface dom.View. Only element siblings count.
func (d *Document) PrevSibling(ref dom.NodeRef) (dom.NodeRef, bool) {
	for s := d.HTMLNode(ref).PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return d.refs[s], true
		}
	}
	return 0, false
}

// InlineStyle is part of interface dom.InlineStyler.
func (d *Document) InlineStyle(ref dom.NodeRef) string {
	style, _ := attr(d.HTMLNode(ref), "style")
	return style
}

var _ dom.View = &Document{}
var _ dom.InlineStyler = &Document{}
