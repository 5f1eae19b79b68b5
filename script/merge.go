package script

// MergeCondition controls how Append treats candidates whose name (or
// name and class) collides with a node already present before the
// append started. Existing nodes always win; original order is kept.
// This three-way policy backs script import/include composition.
type MergeCondition uint8

const (
	// MergeUnconditional concatenates; duplicates are allowed.
	MergeUnconditional MergeCondition = iota

	// MergeNoDuplicateNames drops a candidate when a pre-append node
	// with the same name already exists.
	MergeNoDuplicateNames

	// MergeNoDuplicateClasses drops a candidate when a pre-append node
	// with the same name and the same class tag already exists, so two
	// same-named objects of different classes both survive.
	MergeNoDuplicateClasses
)

// String returns the condition name.
func (c MergeCondition) String() string {
	switch c {
	case MergeUnconditional:
		return "unconditional"
	case MergeNoDuplicateNames:
		return "no-duplicate-names"
	case MergeNoDuplicateClasses:
		return "no-duplicate-classes"
	default:
		return "unknown"
	}
}

// Append merges the source tree's top-level objects into this tree
// under the given condition. The source is not modified; merged nodes
// are shared, not copied.
func (t *Tree) Append(src *Tree, cond MergeCondition) {
	if t == nil || src == nil {
		return
	}
	t.objects = appendObjects(t.objects, src.objects, cond)
}

// AppendChildren merges objects into this object's children under the
// given condition.
func (o *Object) AppendChildren(children []*Object, cond MergeCondition) {
	if o == nil {
		return
	}
	o.children = appendObjects(o.children, children, cond)
}

// AppendProperties merges properties into this object under the given
// condition. Properties have no class tag, so MergeNoDuplicateClasses
// behaves like MergeNoDuplicateNames here.
func (o *Object) AppendProperties(props []*Property, cond MergeCondition) {
	if o == nil {
		return
	}
	if cond == MergeUnconditional {
		o.props = append(o.props, props...)
		return
	}
	existing := len(o.props)
	for _, cand := range props {
		dup := false
		for _, p := range o.props[:existing] {
			if p.name == cand.name {
				dup = true
				break
			}
		}
		if !dup {
			o.props = append(o.props, cand)
		}
	}
}

// appendObjects implements the merge. Candidates are only checked
// against the items present before the append began, so a batch can
// legitimately introduce several same-named nodes of its own.
func appendObjects(dst, src []*Object, cond MergeCondition) []*Object {
	if cond == MergeUnconditional {
		return append(dst, src...)
	}
	existing := len(dst)
	for _, cand := range src {
		dup := false
		for _, o := range dst[:existing] {
			switch cond {
			case MergeNoDuplicateNames:
				dup = o.name == cand.name
			case MergeNoDuplicateClasses:
				dup = o.name == cand.name && o.class == cand.class
			}
			if dup {
				break
			}
		}
		if !dup {
			dst = append(dst, cand)
		}
	}
	return dst
}
