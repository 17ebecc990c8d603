/*
Package cascade computes the style of a single node from the active rules.

Overview

For a node, the cascade selects one winning declaration per style property
from all rules matching the node:

  - Rules are first matched structurally, i.e. with pseudo-state predicates
    assumed to hold. The result is kept in a MatchEntry and re-used until the
    node's structure or the set of active rules changes.
  - Of the structurally matching rules, the ones testing pseudo-states are
    re-checked against the node's current pseudo-state set.
  - Declarations of rules with higher specificity win over those with lower
    specificity. On equal specificity, the rule later in origin order wins.
  - Inline declarations of a node (see dom.InlineStyler) win over every rule.

Properties without a winning declaration are inherited from the parent's
computed style, if the schema declares them inheritable, or else take the
schema default. The root of a tree has no inheritance source.

Resolution never fails: given a schema with defaults for every property,
Resolve is total.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cascade

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scenestyle.cascade'.
func tracer() tracing.Trace {
	return tracing.Select("scenestyle.cascade")
}
