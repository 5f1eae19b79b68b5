package schemafile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emberworks/scribe/script"
)

const engineSchema = `
classes:
  - name: engine
    required: true
    properties:
      - name: renderer
        params: [enumerable]
        tags: [forward, deferred]
    classes:
      - name: settings
        required: true
        classes:
          - name: basic
            required: true
            properties:
              - name: resolution
                required: true
                params: [integer, integer]
              - name: fullscreen
                required: true
                params: [boolean]
`

func engineTree(withFullscreen bool) *script.Tree {
	basic := script.NewObject("basic", "").WithProperties(
		script.NewProperty("resolution", script.Int(1280), script.Int(720)),
	)
	if withFullscreen {
		basic.WithProperties(script.NewProperty("fullscreen", script.Bool(false)))
	}
	return script.NewTree(
		script.NewObject("engine", "").WithProperties(
			script.NewProperty("renderer", script.Enum("deferred")),
		).WithChildren(
			script.NewObject("settings", "").WithChildren(basic),
		),
	)
}

func TestLoadAndValidate(t *testing.T) {
	root, err := Load(strings.NewReader(engineSchema))
	if err != nil {
		t.Fatal(err)
	}

	if errs := script.Validate(engineTree(true), root); len(errs) != 0 {
		t.Errorf("expected clean validation, got %v", errs)
	}

	errs := script.Validate(engineTree(false), root)
	if len(errs) != 1 || errs[0].Code != script.ErrMissingProperty {
		t.Fatalf("expected one missing-property error, got %v", errs)
	}
	if errs[0].Path != "engine.settings.basic" {
		t.Errorf("path: got %q", errs[0].Path)
	}
}

func TestLoadedStructure(t *testing.T) {
	root, err := Load(strings.NewReader(engineSchema))
	if err != nil {
		t.Fatal(err)
	}

	engine := root.InnerClass("engine")
	if engine == nil || engine.Ordinality != script.Mandatory || !engine.Resolved() {
		t.Fatalf("engine declaration: %+v", engine)
	}
	renderer := engine.Def.PropertyDecl("renderer")
	if renderer == nil || len(renderer.Def.Params) != 1 {
		t.Fatalf("renderer declaration: %+v", renderer)
	}
	if p := renderer.Def.Params[0]; p.Kind != script.KindEnumerable || len(p.Tags) != 2 {
		t.Errorf("renderer param: %+v", p)
	}
	settings := engine.Def.InnerClass("settings")
	if settings == nil || settings.Def.InnerClass("basic") == nil {
		t.Fatal("nested classes must survive loading")
	}
}

func TestLoadEnumTagsRejectUnknown(t *testing.T) {
	root, err := Load(strings.NewReader(engineSchema))
	if err != nil {
		t.Fatal(err)
	}
	tree := engineTree(true)
	tree.Objects()[0].Properties()[0] = script.NewProperty("renderer", script.Enum("wireframe"))
	if errs := script.Validate(tree, root); len(errs) != 1 || errs[0].Code != script.ErrPropertyMismatch {
		t.Errorf("expected property_mismatch for tag outside the set, got %v", errs)
	}
}

func TestLoadPerParameterTags(t *testing.T) {
	doc := `
classes:
  - name: material
    properties:
      - name: blend
        params:
          - {kind: enumerable, tags: [add, multiply]}
          - {kind: enumerable, tags: [src, dst]}
`
	root, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	good := script.NewTree(script.NewObject("m", "material").WithProperties(
		script.NewProperty("blend", script.Enum("add"), script.Enum("src")),
	))
	if errs := script.Validate(good, root); len(errs) != 0 {
		t.Errorf("each parameter should honor its own tag set, got %v", errs)
	}

	// The sets are positional; swapping the tags must fail.
	swapped := script.NewTree(script.NewObject("m", "material").WithProperties(
		script.NewProperty("blend", script.Enum("src"), script.Enum("add")),
	))
	if errs := script.Validate(swapped, root); len(errs) != 1 || errs[0].Code != script.ErrPropertyMismatch {
		t.Errorf("expected property_mismatch for swapped tags, got %v", errs)
	}
}

func TestLoadInheritsAndAbstract(t *testing.T) {
	doc := `
classes:
  - name: shape
    abstract: true
    properties:
      - name: area
        required: true
        params: [float]
  - name: circle
    inherits: [shape]
    properties:
      - name: radius
        params: [float]
`
	root, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	tree := script.NewTree(script.NewObject("c", "circle").WithProperties(
		script.NewProperty("area", script.Float(3.14)),
		script.NewProperty("radius", script.Float(1)),
	))
	if errs := script.Validate(tree, root); len(errs) != 0 {
		t.Errorf("inherited requirements should resolve, got %v", errs)
	}

	tree2 := script.NewTree(script.NewObject("s", "shape"))
	if errs := script.Validate(tree2, root); len(errs) != 1 || errs[0].Code != script.ErrAbstractClass {
		t.Errorf("expected abstract_class, got %v", errs)
	}
}

func TestLoadRefAndMinParams(t *testing.T) {
	doc := `
classes:
  - name: display
    properties:
      - name: scale
        params: [float, float]
        min-params: 1
  - name: window
    classes:
      - name: display
        ref: true
        required: true
`
	root, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	window := root.InnerClass("window")
	ref := window.Def.InnerClass("display")
	if ref == nil || ref.Resolved() || ref.Ordinality != script.Mandatory {
		t.Fatalf("ref declaration: %+v", ref)
	}

	tree := script.NewTree(
		script.NewObject("w", "window").WithChildren(
			script.NewObject("d", "display").WithProperties(
				script.NewProperty("scale", script.Float(2)),
			),
		),
	)
	if errs := script.Validate(tree, root); len(errs) != 0 {
		t.Errorf("by-name reference with one of two params should pass, got %v", errs)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			"unknown kind",
			"classes:\n  - name: a\n    properties:\n      - name: p\n        params: [quaternion]\n",
			"unknown value kind",
		},
		{
			"ref with extra fields",
			"classes:\n  - name: a\n    ref: true\n    properties:\n      - name: p\n",
			"must carry only a name",
		},
		{
			"tags on non-enumerable param",
			"classes:\n  - name: a\n    properties:\n      - name: p\n        params:\n          - {kind: integer, tags: [one]}\n",
			"non-enumerable",
		},
		{
			"nameless class",
			"classes:\n  - required: true\n",
			"without a name",
		},
		{
			"nameless property",
			"classes:\n  - name: a\n    properties:\n      - params: [integer]\n",
			"without a name",
		},
		{
			"empty document",
			"classes: []\n",
			"no classes",
		},
		{
			"unknown field",
			"classes:\n  - name: a\n    colour: red\n",
			"decode",
		},
		{
			"not yaml",
			"{{{",
			"decode",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte(engineSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if root.InnerClass("engine") == nil {
		t.Error("loaded schema should declare engine")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
