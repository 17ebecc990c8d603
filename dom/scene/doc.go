/*
Package scene is a straightforward in-memory scene graph, usable as a host for
the styling core.

Overview

Package scene implements dom.View and dom.InlineStyler. Every mutation of a
node (attaching, detaching, changing its tag, classes, id, pseudo-state or
inline style) is reported to a Listener, usually a *styler.Styler. This is the
contract every host has to fulfil: the core never polls for changes.

Scene graphs are not safe for concurrent mutation. Hosts are expected to
serialize mutations and styling passes.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scene

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scenestyle.dom'.
func tracer() tracing.Trace {
	return tracing.Select("scenestyle.dom")
}
