// Package schemafile loads class-definition schemas from YAML, so
// asset pipelines can declare their script grammars in data instead of
// code. The loaded root feeds script.NewValidator directly.
//
// Document shape:
//
//	classes:
//	  - name: engine
//	    required: true
//	    properties:
//	      - name: renderer
//	        params: [enumerable]
//	        tags: [forward, deferred]
//	    classes:
//	      - name: settings
//	        required: true
//	        classes:
//	          - name: basic
//	            required: true
//	            properties:
//	              - name: resolution
//	                required: true
//	                params: [integer, integer]
//
// A class entry with `ref: true` declares a by-name reference resolved
// through the validator's scope lookup; `inherits:` lists base classes
// by name; `abstract: true` marks a class inheritable-only.
//
// A `params` entry is either a bare kind name or a mapping when an
// enumerable parameter needs its own tag set:
//
//	- name: blend
//	  params:
//	    - {kind: enumerable, tags: [add, multiply]}
//	    - {kind: enumerable, tags: [src, dst]}
//
// Property-level `tags` apply to enumerable parameters that do not
// carry their own.
package schemafile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emberworks/scribe/script"
)

type document struct {
	Classes []classEntry `yaml:"classes"`
}

type classEntry struct {
	Name       string       `yaml:"name"`
	Ref        bool         `yaml:"ref"`
	Required   bool         `yaml:"required"`
	Abstract   bool         `yaml:"abstract"`
	Inherits   []string     `yaml:"inherits"`
	Properties []propEntry  `yaml:"properties"`
	Classes    []classEntry `yaml:"classes"`
}

type propEntry struct {
	Name      string       `yaml:"name"`
	Required  bool         `yaml:"required"`
	Params    []paramEntry `yaml:"params"`
	Tags      []string     `yaml:"tags"`
	MinParams int          `yaml:"min-params"`
}

// paramEntry is one parameter: either a bare kind name, or a mapping
// carrying the kind plus its own tag set for enumerable parameters.
type paramEntry struct {
	Kind string   `yaml:"kind"`
	Tags []string `yaml:"tags"`
}

func (p *paramEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&p.Kind)
	}
	type plain paramEntry
	return node.Decode((*plain)(p))
}

// Load reads a YAML schema document and builds the class-definition
// root that owns the document's top-level classes.
func Load(r io.Reader) (*script.ClassDefinition, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schemafile: decode: %w", err)
	}
	if len(doc.Classes) == 0 {
		return nil, fmt.Errorf("schemafile: document declares no classes")
	}

	root := script.NewClass("root")
	for _, entry := range doc.Classes {
		if err := addClass(root, entry); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// LoadFile reads a YAML schema from disk.
func LoadFile(path string) (*script.ClassDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func addClass(parent *script.ClassDefinition, entry classEntry) error {
	if entry.Name == "" {
		return fmt.Errorf("schemafile: class entry without a name inside %q", parent.Name())
	}

	if entry.Ref {
		if entry.Abstract || len(entry.Inherits) > 0 || len(entry.Properties) > 0 || len(entry.Classes) > 0 {
			return fmt.Errorf("schemafile: reference %q must carry only a name", entry.Name)
		}
		if entry.Required {
			parent.AddRequiredClassRef(entry.Name)
		} else {
			parent.AddClassRef(entry.Name)
		}
		return nil
	}

	def, err := buildDefinition(entry)
	if err != nil {
		return err
	}
	switch {
	case entry.Abstract:
		parent.AddAbstractClass(def)
	case entry.Required:
		parent.AddRequiredClass(def)
	default:
		parent.AddClass(def)
	}
	return nil
}

func buildDefinition(entry classEntry) (*script.ClassDefinition, error) {
	def := script.NewClass(entry.Name)
	for _, base := range entry.Inherits {
		def.AddBaseRef(base)
	}
	for _, p := range entry.Properties {
		if err := addProperty(def, entry.Name, p); err != nil {
			return nil, err
		}
	}
	for _, c := range entry.Classes {
		if err := addClass(def, c); err != nil {
			return nil, err
		}
	}
	return def, nil
}

func addProperty(def *script.ClassDefinition, class string, entry propEntry) error {
	if entry.Name == "" {
		return fmt.Errorf("schemafile: property entry without a name in class %q", class)
	}
	params := make([]script.ParameterDefinition, 0, len(entry.Params))
	for _, pe := range entry.Params {
		kind, ok := script.ParseValueKind(pe.Kind)
		if !ok {
			return fmt.Errorf("schemafile: unknown value kind %q for property %q in class %q", pe.Kind, entry.Name, class)
		}
		if len(pe.Tags) > 0 && kind != script.KindEnumerable {
			return fmt.Errorf("schemafile: tags on non-enumerable parameter of property %q in class %q", entry.Name, class)
		}
		param := script.Param(kind)
		if kind == script.KindEnumerable {
			param.Tags = pe.Tags
			if len(param.Tags) == 0 {
				// Property-level tags are shorthand for a single
				// enumerable parameter without its own set.
				param.Tags = entry.Tags
			}
		}
		params = append(params, param)
	}

	pd := script.NewPropertyDef(entry.Name, params...)
	if entry.MinParams > 0 {
		pd.WithRequired(entry.MinParams)
	}
	if entry.Required {
		def.AddRequiredPropertyDef(pd)
	} else {
		def.AddPropertyDef(pd)
	}
	return nil
}
