package style

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type schemaConfig struct {
	Properties []propertyConfig `yaml:"properties"`
}

type propertyConfig struct {
	Name        string    `yaml:"name"`
	Inheritable bool      `yaml:"inheritable"`
	Default     yaml.Node `yaml:"default"`
	Kind        string    `yaml:"kind"`
	Values      []string  `yaml:"values"`
}

// LoadSchema reads a schema configuration in YAML format. See the package
// documentation for an example.
func LoadSchema(r io.Reader) (*Schema, error) {
	var conf schemaConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	defs := make([]PropertyDef, len(conf.Properties))
	for i, pc := range conf.Properties {
		kind, ok := KindFromString(pc.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: property %s has unknown kind %q", ErrSchema, pc.Name, pc.Kind)
		}
		if pc.Default.Kind != 0 && pc.Default.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: default of property %s must be a scalar", ErrSchema, pc.Name)
		}
		defs[i] = PropertyDef{
			Name:        pc.Name,
			Inheritable: pc.Inheritable,
			Default:     Property(pc.Default.Value),
			Kind:        kind,
			Values:      pc.Values,
		}
	}
	return NewSchema(defs...)
}
