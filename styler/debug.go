package styler

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/scenestyle/dom"
	"github.com/npillmayer/scenestyle/style"
	tp "github.com/xlab/treeprint"
)

// Dump returns a printable tree of the styled nodes below (and including)
// root, together with their dirty state and computed style.
// Used for debugging.
func (s *Styler) Dump(root dom.NodeRef) string {
	i, ok := s.arena.lookup(root)
	if !ok {
		return fmt.Sprintf("%s (unknown)\n", root)
	}
	printer := tp.New()
	s.dumpNode(printer, i)
	return printer.String()
}

func (s *Styler) dumpNode(printer tp.Tree, i int) {
	sl := &s.arena.slots[i]
	label := fmt.Sprintf("%s %s", s.describe(sl.ref), sl.style)
	if sl.state != Clean {
		label = fmt.Sprintf("%s [%s]", label, sl.state)
	}
	if len(sl.children) == 0 {
		printer.AddNode(label)
		return
	}
	branch := printer.AddBranch(label)
	for _, ch := range sl.children {
		s.dumpNode(branch, ch)
	}
}

// describe returns a selector-like description of a node, e.g. "label#title.big".
func (s *Styler) describe(n dom.NodeRef) string {
	var b strings.Builder
	b.WriteString(s.view.Tag(n).String())
	if id, ok := s.view.ID(n); ok {
		b.WriteString("#" + id.String())
	}
	for _, c := range s.view.Classes(n).IDs() {
		b.WriteString("." + c.String())
	}
	for _, p := range s.view.PseudoState(n).IDs() {
		b.WriteString(":" + p.String())
	}
	return b.String()
}

// --- GraphViz --------------------------------------------------------------

type dotNode struct {
	Name  string
	Label string
	Dirty bool
	Props []style.KeyValue
}

type dotEdge struct {
	From, To string
}

// ToGraphViz outputs a diagram of the styled tree below root, in GraphViz
// (DOT) format. Each node lists the computed values of the given properties.
// If props is empty, all properties are listed.
func (s *Styler) ToGraphViz(root dom.NodeRef, w io.Writer, props ...string) error {
	i, ok := s.arena.lookup(root)
	if !ok {
		return s.missing(root)
	}
	if _, err := io.WriteString(w, graphHeadTmpl); err != nil {
		return err
	}
	if err := s.dotNodes(i, w, props); err != nil {
		return err
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func (s *Styler) dotNodes(i int, w io.Writer, props []string) error {
	sl := &s.arena.slots[i]
	n := dotNode{
		Name:  dotName(i),
		Label: s.describe(sl.ref),
		Dirty: sl.state != Clean,
	}
	if len(props) == 0 {
		n.Props = sl.style.Properties()
	} else if sl.style != nil {
		for _, p := range props {
			n.Props = append(n.Props, style.KeyValue{Key: p, Value: sl.style.Property(p)})
		}
	}
	if err := nodeTmpl.Execute(w, n); err != nil {
		return err
	}
	for _, ch := range sl.children {
		if err := s.dotNodes(ch, w, props); err != nil {
			return err
		}
		if err := edgeTmpl.Execute(w, dotEdge{From: n.Name, To: dotName(ch)}); err != nil {
			return err
		}
	}
	return nil
}

func dotName(i int) string {
	return fmt.Sprintf("node%05d", i)
}

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  node [fontname = "Helvetica" fontsize=14] ;
  edge [fontname = "Helvetica" fontsize=14] ;
`

var nodeTmpl = template.Must(template.New("node").Parse(
	`{{ .Name }} [ style="filled" penwidth=1 fillcolor="{{ if .Dirty }}lightpink{{ else }}ivory3{{ end }}" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Label }}</font></td></tr>
      {{ range .Props }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ else }}
      <tr><td colspan="2">no styles</td></tr>
      {{ end }}
    </table>> ] ;
`))

var edgeTmpl = template.Must(template.New("edge").Parse(
	`{{ .From }} -> {{ .To }} [weight=1] ;
`))
