/*
Package style holds style property values, the property schema and computed
styles.

Overview

A style property value is an opaque payload to the cascade: the cascade only
ever compares values for equality. The property schema, supplied as
configuration, declares which properties exist, whether they are inherited from
the parent node, their default values and the kind of values they accept.
Consumers (widgets, box renderers) read typed values from a node's
ComputedStyle through the conversion helpers of type Property.

Configuration

Schemas may be built in code (NewSchema), taken from the built-in defaults
(DefaultSchema) or loaded from YAML (LoadSchema):

    properties:
      - name: color
        inheritable: true
        default: black
      - name: font-size
        kind: number
        default: 12

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scenestyle.style'.
func tracer() tracing.Trace {
	return tracing.Select("scenestyle.style")
}
