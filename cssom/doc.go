/*
Package cssom parses style sheets and holds the active collection of rules.

Overview

Style sheets follow a CSS-like grammar:

    panel > button.primary:hover { color: "red"; padding: 2pt 4pt; }
    #title, .big { font-size: 18; }

A sheet is parsed in its entirety before it is applied. A syntax error rejects
the whole sheet and leaves the store untouched; the error carries the source
position. Declarations for properties unknown to the schema are accepted, but
reported as warnings and ignored by the cascade.

The Store keeps all loaded sheets in origin order, which is load order for
sheets and source order within a sheet. Every rule is assigned a global
origin index, the final tie-break of the cascade. Each mutation of the store
increments its generation counter, invalidating all cached rule matches.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'scenestyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("scenestyle.cssom")
}
