package script

// Argument is a leaf node holding one script value. The zero Argument
// is the invalid sentinel returned for missed lookups; Valid reports
// whether the argument actually exists.
type Argument struct {
	value Value
	ok    bool
}

// Arg wraps a value in an argument node.
func Arg(v Value) Argument {
	return Argument{value: v, ok: true}
}

// Valid reports whether this argument came from a successful lookup.
func (a Argument) Valid() bool {
	return a.ok
}

// Value returns the argument's value. The invalid sentinel returns the
// zero value.
func (a Argument) Value() Value {
	return a.value
}

// Unit returns the unit suffix of the argument's value.
func (a Argument) Unit() string {
	return a.value.Unit()
}

// Accessor sugar so call sites can write prop.Argument(0).AsInt().

func (a Argument) AsBool() (bool, error)      { return a.value.AsBool() }
func (a Argument) AsInt() (int64, error)      { return a.value.AsInt() }
func (a Argument) AsFloat() (float64, error)  { return a.value.AsFloat() }
func (a Argument) AsStr() (string, error)     { return a.value.AsStr() }
func (a Argument) AsEnum() (string, error)    { return a.value.AsEnum() }
func (a Argument) AsColor() (Color, error)    { return a.value.AsColor() }
func (a Argument) AsVec2() (Vector2, error)   { return a.value.AsVec2() }
func (a Argument) AsVec3() (Vector3, error)   { return a.value.AsVec3() }

// Property is a named, ordered list of arguments. Argument position is
// semantically significant (parameter 0, 1, 2...). A nil *Property is
// the invalid sentinel; all methods are nil-safe.
type Property struct {
	name string
	args []Argument
}

// NewProperty creates a property node. Values are wrapped in argument
// nodes in order.
func NewProperty(name string, values ...Value) *Property {
	args := make([]Argument, len(values))
	for i, v := range values {
		args[i] = Arg(v)
	}
	return &Property{name: name, args: args}
}

// Valid reports whether the property exists and has a non-empty name.
func (p *Property) Valid() bool {
	return p != nil && p.name != ""
}

// Name returns the property name, or "" for the sentinel.
func (p *Property) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Len returns the number of arguments.
func (p *Property) Len() int {
	if p == nil {
		return 0
	}
	return len(p.args)
}

// Argument returns the i-th argument, or the invalid sentinel when the
// index is out of range.
func (p *Property) Argument(i int) Argument {
	if p == nil || i < 0 || i >= len(p.args) {
		return Argument{}
	}
	return p.args[i]
}

// Arguments returns the argument sequence. Callers must not mutate it.
func (p *Property) Arguments() []Argument {
	if p == nil {
		return nil
	}
	return p.args
}

// Object is a named, class-tagged container of properties and child
// objects. Each object exclusively owns its children; there are no
// parent pointers (parent context is reconstructed during traversal).
// A nil *Object is the invalid sentinel; all methods are nil-safe.
type Object struct {
	name     string
	class    string
	props    []*Property
	children []*Object
}

// NewObject creates an object node. The class tag names the class the
// object instantiates; parsers that have no explicit class syntax leave
// it empty, in which case schema lookup falls back to the object name.
func NewObject(name, class string) *Object {
	return &Object{name: name, class: class}
}

// WithProperties appends properties and returns the object for chaining.
func (o *Object) WithProperties(props ...*Property) *Object {
	o.props = append(o.props, props...)
	return o
}

// WithChildren appends child objects and returns the object for chaining.
func (o *Object) WithChildren(children ...*Object) *Object {
	o.children = append(o.children, children...)
	return o
}

// Valid reports whether the object exists and has a non-empty name.
func (o *Object) Valid() bool {
	return o != nil && o.name != ""
}

// Name returns the object name, or "" for the sentinel.
func (o *Object) Name() string {
	if o == nil {
		return ""
	}
	return o.name
}

// Class returns the class tag, or "" for the sentinel.
func (o *Object) Class() string {
	if o == nil {
		return ""
	}
	return o.class
}

// ClassOrName returns the class tag, falling back to the object name
// when the parser recorded no explicit class. Schema resolution keys on
// this.
func (o *Object) ClassOrName() string {
	if o == nil {
		return ""
	}
	if o.class != "" {
		return o.class
	}
	return o.name
}

// Properties returns the property sequence. Callers must not mutate it.
func (o *Object) Properties() []*Property {
	if o == nil {
		return nil
	}
	return o.props
}

// Children returns the child object sequence. Callers must not mutate it.
func (o *Object) Children() []*Object {
	if o == nil {
		return nil
	}
	return o.children
}

// Find returns the first direct child object with the given name, or
// the invalid sentinel. It never descends; use Search for that.
func (o *Object) Find(name string) *Object {
	if o == nil {
		return nil
	}
	for _, c := range o.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Property returns the first property with the given name, or the
// invalid sentinel.
func (o *Object) Property(name string) *Property {
	if o == nil {
		return nil
	}
	for _, p := range o.props {
		if p.name == name {
			return p
		}
	}
	return nil
}
