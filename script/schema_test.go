package script

import "testing"

func TestClassBuilderLookups(t *testing.T) {
	base := NewClass("surface").AddProperty("opacity", KindFloatingPoint)
	inner := NewClass("border").AddProperty("width", KindInteger)

	def := NewClass("panel").
		AddBase(base).
		AddRequiredClass(inner).
		AddClassRef("shadow").
		AddRequiredProperty("size", KindInteger, KindInteger)

	if d := def.BaseClass("surface"); d == nil || !d.Resolved() {
		t.Error("base class surface should be declared with a definition")
	}
	if def.BaseClass("missing") != nil {
		t.Error("missing base lookup must return nil")
	}

	if d := def.InnerClass("border"); d == nil || d.Ordinality != Mandatory {
		t.Error("border should be a mandatory inner class")
	}
	if d := def.InnerClass("shadow"); d == nil || d.Resolved() {
		t.Error("shadow should be a by-name reference without a definition")
	}

	if d := def.PropertyDecl("size"); d == nil || d.Ordinality != Mandatory {
		t.Error("size should be mandatory")
	}
	if def.PropertyDecl("missing") != nil {
		t.Error("missing property lookup must return nil")
	}
}

func TestPropertyDefRequiredClamp(t *testing.T) {
	def := NewPropertyDef("pos", Param(KindInteger), Param(KindInteger))
	if def.Required != 2 {
		t.Errorf("default required should be all parameters, got %d", def.Required)
	}
	def.WithRequired(1)
	if def.Required != 1 {
		t.Errorf("got %d, want 1", def.Required)
	}
	def.WithRequired(0)
	if def.Required != 1 {
		t.Errorf("required below 1 must clamp, got %d", def.Required)
	}
	def.WithRequired(5)
	if def.Required != 2 {
		t.Errorf("required above len must clamp, got %d", def.Required)
	}

	empty := NewPropertyDef("flag")
	if empty.Required != 0 {
		t.Errorf("parameterless property requires zero arguments, got %d", empty.Required)
	}
}

func TestOverloadDeclarations(t *testing.T) {
	def := NewClass("widget").
		AddProperty("size", KindInteger).
		AddProperty("size", KindInteger, KindInteger)

	if len(def.Properties()) != 2 {
		t.Fatalf("both declarations must survive, got %d", len(def.Properties()))
	}
	// PropertyDecl returns the first; the validator sees the whole set.
	if d := def.PropertyDecl("size"); d == nil || len(d.Def.Params) != 1 {
		t.Error("PropertyDecl should return the first declaration")
	}
}

func TestEnumParam(t *testing.T) {
	p := EnumParam("forward", "deferred")
	if p.Kind != KindEnumerable || len(p.Tags) != 2 {
		t.Errorf("EnumParam: %+v", p)
	}
}
