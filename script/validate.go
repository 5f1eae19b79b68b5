package script

import (
	"fmt"
	"io"
	"time"
)

// Error codes attached to ValidateError records.
const (
	ErrUnknownClass      = "unknown_class"
	ErrAbstractClass     = "abstract_class"
	ErrUnresolvedClass   = "unresolved_class"
	ErrUnknownProperty   = "unknown_property"
	ErrPropertyMismatch  = "property_mismatch"
	ErrMissingProperty   = "missing_required_property"
	ErrMissingClass      = "missing_required_class"
	ErrAmbiguousOverload = "ambiguous_overload"
)

// ValidateError is one schema violation: a condition code, the
// fully-qualified location, and a human-readable message. Violations
// are collected, never thrown; a single run reports all problems.
type ValidateError struct {
	Code    string
	Path    string
	Message string
}

func (e ValidateError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Validator checks a Tree against a ClassDefinition root. The schema is
// treated as read-only and may be shared; the validator's resolution
// and aggregation caches are scoped to one Validate call, so use one
// Validator per goroutine.
type Validator struct {
	root    *ClassDefinition
	errors  []ValidateError
	elapsed time.Duration

	// Per-run caches. Definitions are resolved repeatedly while walking
	// large trees and the schema subtree is shared between instances of
	// the same class, so both lookups are memoized. Keys use pointer
	// identity; Go pointers are stable for the life of the run.
	defs    map[defKey]*ClassDefinition
	decls   map[*ClassDefinition]*declarationSet
	flagged map[ambKey]bool
}

type defKey struct {
	owner *ClassDefinition
	name  string
}

type ambKey struct {
	def  *ClassDefinition
	name string
}

// NewValidator creates a validator for the given schema root. The root
// class is the owner of the forest's top-level objects.
func NewValidator(root *ClassDefinition) *Validator {
	return &Validator{root: root}
}

// Validate walks the tree against the schema and returns true when no
// violations were found. Errors and Elapsed report on the last run.
func (v *Validator) Validate(tree *Tree) bool {
	start := time.Now()
	v.errors = nil
	v.defs = make(map[defKey]*ClassDefinition)
	v.decls = make(map[*ClassDefinition]*declarationSet)
	v.flagged = make(map[ambKey]bool)

	scope := []*ClassDefinition{v.root}
	for _, obj := range tree.Objects() {
		v.validateObject(obj, v.root, scope, obj.Name())
	}

	v.elapsed = time.Since(start)
	return len(v.errors) == 0
}

// Errors returns the violations collected by the last Validate run, in
// walk order.
func (v *Validator) Errors() []ValidateError {
	return v.errors
}

// Elapsed returns the wall time of the last Validate run.
func (v *Validator) Elapsed() time.Duration {
	return v.elapsed
}

// Validate is a convenience wrapper: one run, errors returned directly.
func Validate(tree *Tree, root *ClassDefinition) []ValidateError {
	val := NewValidator(root)
	val.Validate(tree)
	return val.Errors()
}

// ============================================================
// Object walk
// ============================================================

func (v *Validator) validateObject(obj *Object, owner *ClassDefinition, scope []*ClassDefinition, path string) {
	ownerDecls := v.aggregate(owner, scope)

	tag := obj.ClassOrName()
	entries := ownerDecls.classes[tag]
	if len(entries) == 0 {
		v.addError(ErrUnknownClass, path, "unknown class %q inside %q", tag, owner.Name())
		return
	}

	// Most-derived declaration wins.
	decl := entries[0].decl
	if decl.Type == Abstract {
		v.addError(ErrAbstractClass, path, "abstract class %q cannot be instantiated", tag)
		return
	}

	def := decl.Def
	if def == nil {
		def = v.resolveDef(decl, scope)
	}
	if def == nil {
		v.addError(ErrUnresolvedClass, path, "class %q has no definition in scope", tag)
		return
	}

	childScope := pushScope(scope, def)
	declared := v.aggregate(def, childScope)

	// Properties actually present.
	present := make(map[string]bool, len(obj.Properties()))
	for _, p := range obj.Properties() {
		present[p.Name()] = true
		overloads := declared.props[p.Name()]
		if len(overloads) == 0 {
			v.addError(ErrUnknownProperty, path+"."+p.Name(), "unknown property %q in class %q", p.Name(), tag)
			continue
		}
		if !matchOverloads(p, overloads) {
			v.addError(ErrPropertyMismatch, path+"."+p.Name(),
				"property %q does not match any declaration (%s)", p.Name(), describeOverloads(overloads))
		}
	}

	// Child objects, by declared class tag.
	childTags := make(map[string]bool, len(obj.Children()))
	for _, c := range obj.Children() {
		childTags[c.ClassOrName()] = true
		v.validateObject(c, def, childScope, path+"."+c.Name())
	}

	// Completeness: every mandatory declaration must have been seen.
	for _, name := range declared.propOrder {
		if requiredEntry(declared.props[name]) && !present[name] {
			v.addError(ErrMissingProperty, path, "missing required property %q", name)
		}
	}
	for _, name := range declared.classOrder {
		if requiredClassEntry(declared.classes[name]) && !childTags[name] {
			v.addError(ErrMissingClass, path, "missing required class %q", name)
		}
	}
}

// requiredEntry reports whether the most-derived depth declares the
// property as mandatory.
func requiredEntry(entries []propEntry) bool {
	if len(entries) == 0 {
		return false
	}
	min := entries[0].depth
	for _, e := range entries {
		if e.depth == min && e.decl.Ordinality == Mandatory {
			return true
		}
	}
	return false
}

func requiredClassEntry(entries []classEntry) bool {
	if len(entries) == 0 {
		return false
	}
	min := entries[0].depth
	for _, e := range entries {
		if e.depth == min && e.decl.Ordinality == Mandatory {
			return true
		}
	}
	return false
}

// ============================================================
// Overload matching
// ============================================================

// matchOverloads reports whether at least one overload accepts the
// property's argument count and kinds. Overloads are ordered
// most-derived first, so shadowing is automatic.
func matchOverloads(p *Property, overloads []propEntry) bool {
	for _, e := range overloads {
		if matchDefinition(p, e.decl.Def) {
			return true
		}
	}
	return false
}

func matchDefinition(p *Property, def *PropertyDefinition) bool {
	n := p.Len()
	if n < def.Required || n > len(def.Params) {
		return false
	}
	for i := 0; i < n; i++ {
		if !argMatches(p.Argument(i).Value(), def.Params[i]) {
			return false
		}
	}
	return true
}

// argMatches checks one argument against one parameter. A floating
// point parameter accepts an integer argument (promoted, never
// truncated); an enumerable parameter accepts string-valued arguments
// whose text is among its declared tags.
func argMatches(val Value, param ParameterDefinition) bool {
	switch param.Kind {
	case KindFloatingPoint:
		return val.Kind() == KindFloatingPoint || val.Kind() == KindInteger
	case KindEnumerable:
		text, ok := val.text()
		if !ok {
			return false
		}
		if len(param.Tags) == 0 {
			return true
		}
		for _, tag := range param.Tags {
			if tag == text {
				return true
			}
		}
		return false
	default:
		return val.Kind() == param.Kind
	}
}

func describeOverloads(overloads []propEntry) string {
	s := "accepts"
	for i, e := range overloads {
		def := e.decl.Def
		if i > 0 {
			s += " or"
		}
		if def.Required == len(def.Params) {
			s += fmt.Sprintf(" %d arguments", len(def.Params))
		} else {
			s += fmt.Sprintf(" %d-%d arguments", def.Required, len(def.Params))
		}
	}
	return s
}

// ============================================================
// Declaration aggregation (class_declarations_cacher)
// ============================================================

type propEntry struct {
	decl  *PropertyDeclaration
	depth int
}

type classEntry struct {
	decl  *ClassDeclaration
	depth int
}

// declarationSet is the flattened view of everything a class declares
// through its (possibly multiple) base classes. Entries are ordered by
// inheritance depth, most-derived first; all same-named property
// declarations survive as an overload set.
type declarationSet struct {
	props      map[string][]propEntry
	classes    map[string][]classEntry
	propOrder  []string // first-seen order, for deterministic reports
	classOrder []string
}

func (ds *declarationSet) addProp(decl *PropertyDeclaration, depth int) {
	name := decl.Name()
	if _, seen := ds.props[name]; !seen {
		ds.propOrder = append(ds.propOrder, name)
	}
	ds.props[name] = insertProp(ds.props[name], propEntry{decl: decl, depth: depth})
}

func (ds *declarationSet) addClass(decl *ClassDeclaration, depth int) {
	name := decl.Name
	if _, seen := ds.classes[name]; !seen {
		ds.classOrder = append(ds.classOrder, name)
	}
	ds.classes[name] = insertClass(ds.classes[name], classEntry{decl: decl, depth: depth})
}

// insertProp keeps entries sorted by depth ascending, stable within a
// depth.
func insertProp(entries []propEntry, e propEntry) []propEntry {
	i := len(entries)
	for i > 0 && entries[i-1].depth > e.depth {
		i--
	}
	entries = append(entries, propEntry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	return entries
}

func insertClass(entries []classEntry, e classEntry) []classEntry {
	i := len(entries)
	for i > 0 && entries[i-1].depth > e.depth {
		i--
	}
	entries = append(entries, classEntry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	return entries
}

// aggregate flattens all declarations reachable through a class's base
// chain. Memoized per definition: aggregation is requested once per
// object instance of the class but the schema subtree is shared.
func (v *Validator) aggregate(def *ClassDefinition, scope []*ClassDefinition) *declarationSet {
	if ds, ok := v.decls[def]; ok {
		return ds
	}
	ds := &declarationSet{
		props:   make(map[string][]propEntry),
		classes: make(map[string][]classEntry),
	}
	visited := make(map[*ClassDefinition]bool)
	v.collect(def, scope, 0, visited, ds)
	v.checkOverloads(def, ds)
	v.decls[def] = ds
	return ds
}

// collect gathers declarations depth-first through the base chain. The
// visited set guarantees termination under diamond or repeated
// inheritance.
func (v *Validator) collect(def *ClassDefinition, scope []*ClassDefinition, depth int, visited map[*ClassDefinition]bool, ds *declarationSet) {
	if def == nil || visited[def] {
		return
	}
	visited[def] = true

	for _, pd := range def.properties {
		ds.addProp(pd, depth)
	}
	for _, cd := range def.inner {
		ds.addClass(cd, depth)
	}
	for _, b := range def.bases {
		base := b.Def
		if base == nil {
			base = v.resolveDef(b, scope)
		}
		if base == nil {
			v.addError(ErrUnresolvedClass, def.name, "base class %q of %q has no definition in scope", b.Name, def.name)
			continue
		}
		v.collect(base, scope, depth+1, visited, ds)
	}
}

// checkOverloads flags truly ambiguous overload sets: two declarations
// of the same name, at the same inheritance depth, whose parameter
// kinds agree over an overlapping arity range. Overlaps across depths
// are fine; the most-derived declaration shadows.
func (v *Validator) checkOverloads(def *ClassDefinition, ds *declarationSet) {
	for _, name := range ds.propOrder {
		entries := ds.props[name]
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				if entries[i].depth != entries[j].depth {
					continue
				}
				if !overloadsCollide(entries[i].decl.Def, entries[j].decl.Def) {
					continue
				}
				key := ambKey{def: def, name: name}
				if !v.flagged[key] {
					v.flagged[key] = true
					v.addError(ErrAmbiguousOverload, def.name,
						"property %q is declared twice with indistinguishable signatures", name)
				}
			}
		}
	}
}

// overloadsCollide reports whether two definitions can accept the same
// property node.
func overloadsCollide(a, b *PropertyDefinition) bool {
	lo := a.Required
	if b.Required > lo {
		lo = b.Required
	}
	hi := len(a.Params)
	if len(b.Params) < hi {
		hi = len(b.Params)
	}
	if lo > hi {
		return false // arity ranges disjoint
	}
	for i := 0; i < hi; i++ {
		if a.Params[i].Kind != b.Params[i].Kind {
			return false
		}
	}
	return true
}

// ============================================================
// Scope resolution (class_definition_cacher)
// ============================================================

// resolveDef resolves a by-name class declaration by walking outward
// through the enclosing scope chain, innermost first, looking for a
// same-named class that does carry a definition. Misses are memoized
// too.
func (v *Validator) resolveDef(ref *ClassDeclaration, scope []*ClassDefinition) *ClassDefinition {
	if ref.Def != nil {
		return ref.Def
	}
	key := defKey{name: ref.Name}
	if len(scope) > 0 {
		key.owner = scope[len(scope)-1]
	}
	if def, ok := v.defs[key]; ok {
		return def
	}
	var found *ClassDefinition
	for i := len(scope) - 1; i >= 0 && found == nil; i-- {
		found = findDefinition(scope[i], ref.Name, make(map[*ClassDefinition]bool))
	}
	v.defs[key] = found
	return found
}

// findDefinition searches a class and its inheritance lineage for a
// definition of the given name. The visited set keeps diamond and
// repeated inheritance from looping.
func findDefinition(c *ClassDefinition, name string, visited map[*ClassDefinition]bool) *ClassDefinition {
	if c == nil || visited[c] {
		return nil
	}
	visited[c] = true
	if c.name == name {
		return c
	}
	for _, d := range c.inner {
		if d.Name == name && d.Def != nil {
			return d.Def
		}
	}
	for _, b := range c.bases {
		if b.Def == nil {
			continue
		}
		if found := findDefinition(b.Def, name, visited); found != nil {
			return found
		}
	}
	return nil
}

func pushScope(scope []*ClassDefinition, def *ClassDefinition) []*ClassDefinition {
	next := make([]*ClassDefinition, len(scope)+1)
	copy(next, scope)
	next[len(scope)] = def
	return next
}

func (v *Validator) addError(code, path, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidateError{
		Code:    code,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

// ============================================================
// Reporting
// ============================================================

// ReportOptions selects what WriteReport renders.
type ReportOptions uint8

const (
	ReportSummary ReportOptions = iota
	ReportErrors
	ReportSummaryAndErrors
)

// WriteReport renders a human-readable account of the last run.
func (v *Validator) WriteReport(w io.Writer, opts ReportOptions) error {
	if opts == ReportSummary || opts == ReportSummaryAndErrors {
		verdict := "PASS"
		if len(v.errors) > 0 {
			verdict = "FAIL"
		}
		if _, err := fmt.Fprintf(w, "validation %s: %d error(s) in %s\n", verdict, len(v.errors), v.elapsed); err != nil {
			return err
		}
	}
	if opts == ReportErrors || opts == ReportSummaryAndErrors {
		for _, e := range v.errors {
			if _, err := fmt.Fprintf(w, "  %s: %s [%s]\n", e.Path, e.Message, e.Code); err != nil {
				return err
			}
		}
	}
	return nil
}
