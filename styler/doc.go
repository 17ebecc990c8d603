/*
Package styler keeps the computed styles of a host's scene graph up to date.

Overview

A Styler observes a scene graph through a dom.View. Hosts notify it of every
mutation: structural changes (tag, classes, id, position in the tree; also the
announcement of a new node), pseudo-state changes and node removal. The
Styler does not resolve styles on notification. It records which nodes are
affected and re-resolves exactly these nodes once the host runs a pass,
usually once per frame:

    s := styler.New(graph, style.DefaultSchema(), styler.Options{})
    graph.SetListener(s)
    s.Load(sheetText, "app.css")
    …
    if err := s.RunPass(ctx); err != nil { … }
    cs, err := s.ComputedStyle(node)

Dirty states

Every node is in one of three states:

    Clean ──(structural change, sheet change)──> StructurallyDirty ──(pass)──> Clean
      └────(pseudo-state change)─────────────────> StateDirty ─────────(pass)──> Clean

Structurally dirty nodes have their cached rule matches dropped before they
are resolved; state-dirty nodes re-use them. A structural change affects the
node's subtree as well, as descendant selectors may depend on it. A pass
resolves dirty nodes ordered by depth, so a node is resolved only after its
parent is clean. If a node's computed style changes, its children are marked
dirty within the same pass (they may inherit from it).

Concurrency

A Styler is not safe for concurrent use. Hosts must serialize mutations, sheet
management and passes.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scenestyle.styler'.
func tracer() tracing.Trace {
	return tracing.Select("scenestyle.styler")
}
