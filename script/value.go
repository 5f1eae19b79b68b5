package script

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies which of the eight script value kinds a Value holds.
type ValueKind uint8

const (
	KindBoolean ValueKind = iota
	KindColor
	KindEnumerable
	KindFloatingPoint
	KindInteger
	KindString
	KindVector2
	KindVector3
)

// String returns the kind name as it appears in schema files and diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindColor:
		return "color"
	case KindEnumerable:
		return "enumerable"
	case KindFloatingPoint:
		return "floating-point"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindVector2:
		return "vector2"
	case KindVector3:
		return "vector3"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseValueKind parses a kind name. Accepts the canonical names plus a
// few spellings seen in schema files ("float", "int", "bool", "enum").
func ParseValueKind(s string) (ValueKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boolean", "bool":
		return KindBoolean, true
	case "color", "colour":
		return KindColor, true
	case "enumerable", "enum":
		return KindEnumerable, true
	case "floating-point", "float", "floatingpoint":
		return KindFloatingPoint, true
	case "integer", "int":
		return KindInteger, true
	case "string", "str":
		return KindString, true
	case "vector2", "vec2":
		return KindVector2, true
	case "vector3", "vec3":
		return KindVector3, true
	default:
		return 0, false
	}
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Vector2 is a 2D vector value.
type Vector2 struct {
	X, Y float64
}

// Vector3 is a 3D vector value.
type Vector3 struct {
	X, Y, Z float64
}

// Value is one script value: exactly one of the eight kinds, plus an
// optional unit suffix ("px", "sec", ...). Values are immutable; the
// With* helpers return copies.
type Value struct {
	kind ValueKind

	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string     // String and Enumerable
	numVal   [4]float64 // Color (r,g,b,a), Vector2 (x,y), Vector3 (x,y,z)

	unit string
}

// ============================================================
// Constructors
// ============================================================

// Bool creates a boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBoolean, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) Value {
	return Value{kind: KindInteger, intVal: v}
}

// Float creates a floating-point value.
func Float(v float64) Value {
	return Value{kind: KindFloatingPoint, floatVal: v}
}

// Str creates a string value.
func Str(v string) Value {
	return Value{kind: KindString, strVal: v}
}

// Enum creates an enumerable value holding a bare string tag.
func Enum(tag string) Value {
	return Value{kind: KindEnumerable, strVal: tag}
}

// Rgba creates a color value.
func Rgba(r, g, b, a float64) Value {
	return Value{kind: KindColor, numVal: [4]float64{r, g, b, a}}
}

// Vec2 creates a 2D vector value.
func Vec2(x, y float64) Value {
	return Value{kind: KindVector2, numVal: [4]float64{x, y}}
}

// Vec3 creates a 3D vector value.
func Vec3(x, y, z float64) Value {
	return Value{kind: KindVector3, numVal: [4]float64{x, y, z}}
}

// WithUnit returns a copy of the value tagged with a unit suffix.
func (v Value) WithUnit(unit string) Value {
	v.unit = unit
	return v
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Unit returns the unit suffix, or "" if the value carries none.
func (v Value) Unit() string {
	return v.unit
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBoolean {
		return false, fmt.Errorf("script: expected boolean, got %s", v.kind)
	}
	return v.boolVal, nil
}

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInteger {
		return 0, fmt.Errorf("script: expected integer, got %s", v.kind)
	}
	return v.intVal, nil
}

// AsFloat returns the floating-point payload. An integer value widens
// to floating point without loss; this is the one cross-kind access
// the value model permits.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindFloatingPoint:
		return v.floatVal, nil
	case KindInteger:
		return float64(v.intVal), nil
	default:
		return 0, fmt.Errorf("script: expected floating-point, got %s", v.kind)
	}
}

// AsStr returns the string payload.
func (v Value) AsStr() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("script: expected string, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsEnum returns the enumerable tag.
func (v Value) AsEnum() (string, error) {
	if v.kind != KindEnumerable {
		return "", fmt.Errorf("script: expected enumerable, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsColor returns the color payload.
func (v Value) AsColor() (Color, error) {
	if v.kind != KindColor {
		return Color{}, fmt.Errorf("script: expected color, got %s", v.kind)
	}
	n := v.numVal
	return Color{R: n[0], G: n[1], B: n[2], A: n[3]}, nil
}

// AsVec2 returns the 2D vector payload.
func (v Value) AsVec2() (Vector2, error) {
	if v.kind != KindVector2 {
		return Vector2{}, fmt.Errorf("script: expected vector2, got %s", v.kind)
	}
	return Vector2{X: v.numVal[0], Y: v.numVal[1]}, nil
}

// AsVec3 returns the 3D vector payload.
func (v Value) AsVec3() (Vector3, error) {
	if v.kind != KindVector3 {
		return Vector3{}, fmt.Errorf("script: expected vector3, got %s", v.kind)
	}
	return Vector3{X: v.numVal[0], Y: v.numVal[1], Z: v.numVal[2]}, nil
}

// text returns the string payload for either string-like kind.
// Used by enumerable tag matching during validation.
func (v Value) text() (string, bool) {
	if v.kind == KindString || v.kind == KindEnumerable {
		return v.strVal, true
	}
	return "", false
}

// ============================================================
// Visitor
// ============================================================

// Visitor dispatches on a value's kind. Fields left nil are skipped.
type Visitor struct {
	Boolean       func(bool)
	Color         func(Color)
	Enumerable    func(string)
	FloatingPoint func(float64)
	Integer       func(int64)
	String        func(string)
	Vector2       func(Vector2)
	Vector3       func(Vector3)
}

// Visit calls the visitor field matching the value's kind.
func (v Value) Visit(vis Visitor) {
	switch v.kind {
	case KindBoolean:
		if vis.Boolean != nil {
			vis.Boolean(v.boolVal)
		}
	case KindColor:
		if vis.Color != nil {
			vis.Color(Color{R: v.numVal[0], G: v.numVal[1], B: v.numVal[2], A: v.numVal[3]})
		}
	case KindEnumerable:
		if vis.Enumerable != nil {
			vis.Enumerable(v.strVal)
		}
	case KindFloatingPoint:
		if vis.FloatingPoint != nil {
			vis.FloatingPoint(v.floatVal)
		}
	case KindInteger:
		if vis.Integer != nil {
			vis.Integer(v.intVal)
		}
	case KindString:
		if vis.String != nil {
			vis.String(v.strVal)
		}
	case KindVector2:
		if vis.Vector2 != nil {
			vis.Vector2(Vector2{X: v.numVal[0], Y: v.numVal[1]})
		}
	case KindVector3:
		if vis.Vector3 != nil {
			vis.Vector3(Vector3{X: v.numVal[0], Y: v.numVal[1], Z: v.numVal[2]})
		}
	}
}

// Equal reports whether two values have the same kind, payload and unit.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.unit != o.unit {
		return false
	}
	switch v.kind {
	case KindBoolean:
		return v.boolVal == o.boolVal
	case KindInteger:
		return v.intVal == o.intVal
	case KindFloatingPoint:
		return v.floatVal == o.floatVal
	case KindString, KindEnumerable:
		return v.strVal == o.strVal
	case KindColor, KindVector2, KindVector3:
		return v.numVal == o.numVal
	default:
		return false
	}
}

// String renders the value as script-literal text, unit suffix included.
func (v Value) String() string {
	var s string
	switch v.kind {
	case KindBoolean:
		s = strconv.FormatBool(v.boolVal)
	case KindInteger:
		s = strconv.FormatInt(v.intVal, 10)
	case KindFloatingPoint:
		s = strconv.FormatFloat(v.floatVal, 'g', -1, 64)
	case KindString:
		s = strconv.Quote(v.strVal)
	case KindEnumerable:
		s = v.strVal
	case KindColor:
		s = fmt.Sprintf("rgba(%s, %s, %s, %s)",
			fmtNum(v.numVal[0]), fmtNum(v.numVal[1]), fmtNum(v.numVal[2]), fmtNum(v.numVal[3]))
	case KindVector2:
		s = fmt.Sprintf("vec2(%s, %s)", fmtNum(v.numVal[0]), fmtNum(v.numVal[1]))
	case KindVector3:
		s = fmt.Sprintf("vec3(%s, %s, %s)", fmtNum(v.numVal[0]), fmtNum(v.numVal[1]), fmtNum(v.numVal[2]))
	default:
		s = "invalid"
	}
	if v.unit != "" {
		s += " " + v.unit
	}
	return s
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
