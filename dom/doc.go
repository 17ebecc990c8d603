/*
Package dom defines the view the styling core has onto a host's scene graph.

Overview

The host application owns its scene graph: nodes, their tag, classes, id and
dynamic pseudo-state flags, and the tree structure. The styling core observes
the scene graph exclusively through interface View, which is the sole channel
to tree structure. Nodes are identified by opaque handles of type NodeRef,
assigned by the host.

Hosts tell the core about mutations by calling the notification methods of
package styler. Sub-packages provide a reference implementation of an in-memory
scene graph (package scene) and a read-only view onto HTML documents (package
htmlview).

In a fully object oriented programming language we would subclass a
node type for every kind of host, but in Go we resort to a small interface
and let every host adapt its own node type.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"fmt"

	"github.com/npillmayer/scenestyle/ident"
)

// NodeRef is an opaque handle for a host node. Hosts must not re-use a handle
// for a different node while the core may still know about the old one.
type NodeRef uint64

func (n NodeRef) String() string {
	return fmt.Sprintf("node#%d", uint64(n))
}

// View is the read-only adapter over the host's scene graph.
// Every method must be answered from the host's current state.
type View interface {
	Tag(NodeRef) ident.ID                // the tag name of a node
	Classes(NodeRef) ident.Set           // the class names of a node
	ID(NodeRef) (ident.ID, bool)         // the id of a node, if any
	PseudoState(NodeRef) ident.Set       // active dynamic state flags (hover, focus, …)
	Parent(NodeRef) (NodeRef, bool)      // the parent node; false for the root
	PrevSibling(NodeRef) (NodeRef, bool) // the immediately preceding sibling, if any
}

// InlineStyler is an optional extension of View. Hosts supporting per-node
// inline declarations (like the HTML style attribute) implement it.
// Inline declarations take precedence over every style sheet rule.
type InlineStyler interface {
	InlineStyle(NodeRef) string // e.g. "color: red; margin: 3pt"
}
