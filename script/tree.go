package script

import "strings"

// Tree owns a forest of top-level object nodes. It is the unit of
// persistence (see the codec package) and the unit of schema
// validation.
type Tree struct {
	objects []*Object
}

// NewTree creates a tree over the given top-level objects.
func NewTree(objects ...*Object) *Tree {
	return &Tree{objects: objects}
}

// Objects returns the top-level object sequence. Callers must not
// mutate it; compose trees through Append.
func (t *Tree) Objects() []*Object {
	if t == nil {
		return nil
	}
	return t.objects
}

// Len returns the number of top-level objects.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.objects)
}

// Find returns the first top-level object with the given name, or the
// invalid sentinel.
func (t *Tree) Find(name string) *Object {
	if t == nil {
		return nil
	}
	for _, o := range t.objects {
		if o.name == name {
			return o
		}
	}
	return nil
}

// FullyQualifiedName computes the dotted path that uniquely identifies
// an object within this tree, e.g. "engine.settings.basic". The second
// return is false when the object is not part of the tree.
func (t *Tree) FullyQualifiedName(target *Object) (string, bool) {
	if t == nil || target == nil {
		return "", false
	}
	for _, o := range t.objects {
		if path, ok := objectPath(o, target, nil); ok {
			return strings.Join(path, "."), true
		}
	}
	return "", false
}

// FullyQualifiedPropertyName computes the dotted path of a property
// within this tree, e.g. "engine.settings.basic.resolution". The owning
// object and the property itself must both belong to the tree.
func (t *Tree) FullyQualifiedPropertyName(owner *Object, prop *Property) (string, bool) {
	if prop == nil {
		return "", false
	}
	base, ok := t.FullyQualifiedName(owner)
	if !ok {
		return "", false
	}
	for _, p := range owner.props {
		if p == prop {
			return base + "." + prop.name, true
		}
	}
	return "", false
}

// objectPath appends node names while descending toward target.
// Matching is by pointer identity: two distinct same-named objects are
// different nodes.
func objectPath(node, target *Object, prefix []string) ([]string, bool) {
	prefix = append(prefix, node.name)
	if node == target {
		return prefix, true
	}
	for _, c := range node.children {
		if path, ok := objectPath(c, target, prefix); ok {
			return path, true
		}
	}
	return nil, false
}
