package script

// The schema model describes what is legal, separately from what was
// parsed. A ClassDefinition is built once through the fluent Add*
// methods, then shared read-only across any number of validation runs.

// Ordinality marks a declaration as mandatory or optional.
type Ordinality uint8

const (
	Optional Ordinality = iota
	Mandatory
)

// String returns the ordinality name.
func (o Ordinality) String() string {
	if o == Mandatory {
		return "mandatory"
	}
	return "optional"
}

// ClassType marks a class declaration as concrete or abstract.
// Abstract classes may be inherited but never instantiated by a parsed
// object.
type ClassType uint8

const (
	Concrete ClassType = iota
	Abstract
)

// String returns the class type name.
func (t ClassType) String() string {
	if t == Abstract {
		return "abstract"
	}
	return "concrete"
}

// ParameterDefinition describes one legal argument position: a value
// kind and, for the enumerable kind, the fixed set of legal tags.
type ParameterDefinition struct {
	Kind ValueKind
	Tags []string // legal tags when Kind == KindEnumerable
}

// Param creates a parameter of the given kind.
func Param(kind ValueKind) ParameterDefinition {
	return ParameterDefinition{Kind: kind}
}

// EnumParam creates an enumerable parameter restricted to the given tags.
func EnumParam(tags ...string) ParameterDefinition {
	return ParameterDefinition{Kind: KindEnumerable, Tags: tags}
}

// PropertyDefinition describes one legal property: a name, an ordered
// parameter list, and the number of leading parameters that must be
// supplied. Required < len(Params) makes the property variable-arity.
type PropertyDefinition struct {
	Name     string
	Params   []ParameterDefinition
	Required int
}

// NewPropertyDef creates a property definition requiring all of its
// parameters. Use WithRequired for variable arity.
func NewPropertyDef(name string, params ...ParameterDefinition) *PropertyDefinition {
	return &PropertyDefinition{Name: name, Params: params, Required: len(params)}
}

// WithRequired sets the required parameter count, clamped to
// [1, len(Params)] (or 0 for a parameterless property), and returns the
// definition for chaining.
func (d *PropertyDefinition) WithRequired(n int) *PropertyDefinition {
	max := len(d.Params)
	switch {
	case max == 0:
		n = 0
	case n < 1:
		n = 1
	case n > max:
		n = max
	}
	d.Required = n
	return d
}

// PropertyDeclaration wraps a property definition with its ordinality
// within a declaring class.
type PropertyDeclaration struct {
	Def        *PropertyDefinition
	Ordinality Ordinality
}

// Name returns the declared property name.
func (d *PropertyDeclaration) Name() string {
	if d == nil || d.Def == nil {
		return ""
	}
	return d.Def.Name
}

// ClassDeclaration wraps a class definition (or just a name, when the
// definition lives elsewhere in the schema and must be resolved by
// scope lookup) with ordinality and abstract/concrete-ness.
type ClassDeclaration struct {
	Name       string
	Def        *ClassDefinition // nil for a by-name reference
	Ordinality Ordinality
	Type       ClassType
}

// Resolved reports whether the declaration carries its own definition.
func (d *ClassDeclaration) Resolved() bool {
	return d != nil && d.Def != nil
}

// ClassDefinition describes what properties and inner classes are legal
// for a named class. Base classes contribute their declarations through
// inheritance; more than one base is allowed (multiple inheritance of
// schema, not of data).
type ClassDefinition struct {
	name       string
	properties []*PropertyDeclaration
	bases      []*ClassDeclaration
	inner      []*ClassDeclaration
}

// NewClass creates an empty class definition. All Add* methods return
// the receiver so schemas read as one fluent expression.
func NewClass(name string) *ClassDefinition {
	return &ClassDefinition{name: name}
}

// Name returns the class name.
func (c *ClassDefinition) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// ============================================================
// Inner classes
// ============================================================

// AddClass declares an optional concrete inner class by definition.
func (c *ClassDefinition) AddClass(def *ClassDefinition) *ClassDefinition {
	return c.addInner(def.name, def, Optional, Concrete)
}

// AddClassRef declares an optional concrete inner class by name only;
// the definition is resolved by scope lookup at validation time.
func (c *ClassDefinition) AddClassRef(name string) *ClassDefinition {
	return c.addInner(name, nil, Optional, Concrete)
}

// AddRequiredClass declares a mandatory concrete inner class.
func (c *ClassDefinition) AddRequiredClass(def *ClassDefinition) *ClassDefinition {
	return c.addInner(def.name, def, Mandatory, Concrete)
}

// AddRequiredClassRef declares a mandatory concrete inner class by name.
func (c *ClassDefinition) AddRequiredClassRef(name string) *ClassDefinition {
	return c.addInner(name, nil, Mandatory, Concrete)
}

// AddAbstractClass declares an inner class that may only be inherited,
// never instantiated.
func (c *ClassDefinition) AddAbstractClass(def *ClassDefinition) *ClassDefinition {
	return c.addInner(def.name, def, Optional, Abstract)
}

func (c *ClassDefinition) addInner(name string, def *ClassDefinition, ord Ordinality, typ ClassType) *ClassDefinition {
	c.inner = append(c.inner, &ClassDeclaration{Name: name, Def: def, Ordinality: ord, Type: typ})
	return c
}

// ============================================================
// Base classes
// ============================================================

// AddBase declares a base class by definition. Declarations of all
// bases are flattened into this class during validation.
func (c *ClassDefinition) AddBase(def *ClassDefinition) *ClassDefinition {
	c.bases = append(c.bases, &ClassDeclaration{Name: def.name, Def: def, Type: Concrete})
	return c
}

// AddBaseRef declares a base class by name only.
func (c *ClassDefinition) AddBaseRef(name string) *ClassDefinition {
	c.bases = append(c.bases, &ClassDeclaration{Name: name, Type: Concrete})
	return c
}

// ============================================================
// Properties
// ============================================================

// AddProperty declares an optional property taking the given parameter
// kinds, all required. Declaring the same name more than once creates
// an overload set resolved by arity and type at validation time.
func (c *ClassDefinition) AddProperty(name string, kinds ...ValueKind) *ClassDefinition {
	return c.AddPropertyDef(NewPropertyDef(name, paramsOf(kinds)...))
}

// AddRequiredProperty declares a mandatory property.
func (c *ClassDefinition) AddRequiredProperty(name string, kinds ...ValueKind) *ClassDefinition {
	return c.AddRequiredPropertyDef(NewPropertyDef(name, paramsOf(kinds)...))
}

// AddPropertyDef declares an optional property from a full definition.
func (c *ClassDefinition) AddPropertyDef(def *PropertyDefinition) *ClassDefinition {
	c.properties = append(c.properties, &PropertyDeclaration{Def: def, Ordinality: Optional})
	return c
}

// AddRequiredPropertyDef declares a mandatory property from a full
// definition.
func (c *ClassDefinition) AddRequiredPropertyDef(def *PropertyDefinition) *ClassDefinition {
	c.properties = append(c.properties, &PropertyDeclaration{Def: def, Ordinality: Mandatory})
	return c
}

func paramsOf(kinds []ValueKind) []ParameterDefinition {
	params := make([]ParameterDefinition, len(kinds))
	for i, k := range kinds {
		params[i] = ParameterDefinition{Kind: k}
	}
	return params
}

// ============================================================
// Lookups
// ============================================================

// BaseClass returns the base-class declaration with the given name, or
// nil. Only this class's direct bases are searched.
func (c *ClassDefinition) BaseClass(name string) *ClassDeclaration {
	if c == nil {
		return nil
	}
	for _, b := range c.bases {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// InnerClass returns the inner-class declaration with the given name,
// or nil. Only this class's own declarations are searched; the
// validator aggregates inherited ones.
func (c *ClassDefinition) InnerClass(name string) *ClassDeclaration {
	if c == nil {
		return nil
	}
	for _, d := range c.inner {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// PropertyDecl returns the first property declaration with the given
// name, or nil. Overloads beyond the first are only visible to the
// validator's aggregation.
func (c *ClassDefinition) PropertyDecl(name string) *PropertyDeclaration {
	if c == nil {
		return nil
	}
	for _, d := range c.properties {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// Bases returns the base-class declarations in declaration order.
func (c *ClassDefinition) Bases() []*ClassDeclaration {
	if c == nil {
		return nil
	}
	return c.bases
}

// InnerClasses returns the inner-class declarations in declaration order.
func (c *ClassDefinition) InnerClasses() []*ClassDeclaration {
	if c == nil {
		return nil
	}
	return c.inner
}

// Properties returns the property declarations in declaration order.
func (c *ClassDefinition) Properties() []*PropertyDeclaration {
	if c == nil {
		return nil
	}
	return c.properties
}
