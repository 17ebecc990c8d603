/*
Package selector implements selectors: their model, a parser and a matcher.

Overview

A selector is a sequence of compound selectors joined by combinators. A
compound selector is a set of simple selectors which must all hold for the
same node:

    panel > button.primary:hover
    ^^^^^   ^^^^^^^^^^^^^^^^^^^^
     |       compound: tag 'button', class 'primary', pseudo-state 'hover'
     compound: tag 'panel'

Supported simple selectors are the tag name, the universal selector '*',
'.class', '#id' and ':pseudo-state'. Supported combinators are whitespace
(descendant), '>' (direct child) and '+' (adjacent sibling).

Every selector carries a specificity, computed once at parse time.

Matching

Selectors are matched right-to-left: the rightmost compound is tested against
the node itself first, so that most non-matching nodes are rejected before any
ancestor is visited. Matching may be performed in structural mode, where
pseudo-state predicates are assumed to hold. A node's set of structurally
matching rules does not change when pseudo-states toggle, which makes it a
cacheable quantity.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scenestyle.selector'.
func tracer() tracing.Trace {
	return tracing.Select("scenestyle.selector")
}
