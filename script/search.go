package script

// SearchStrategy selects the traversal order for whole-subtree search.
// The strategy decides which of several same-named objects is found
// first, never whether one is found at all.
type SearchStrategy uint8

const (
	BreadthFirst SearchStrategy = iota
	DepthFirstPre
	DepthFirstPost
)

// String returns the strategy name.
func (s SearchStrategy) String() string {
	switch s {
	case BreadthFirst:
		return "breadth-first"
	case DepthFirstPre:
		return "depth-first-pre"
	case DepthFirstPost:
		return "depth-first-post"
	default:
		return "unknown"
	}
}

// Search looks for an object with the given name anywhere in the
// subtree rooted at o, including o itself. Returns the invalid
// sentinel on miss.
func (o *Object) Search(name string, strategy SearchStrategy) *Object {
	if o == nil {
		return nil
	}
	return searchObjects([]*Object{o}, name, strategy)
}

// Search looks for an object with the given name anywhere in the whole
// forest. Returns the invalid sentinel on miss.
func (t *Tree) Search(name string, strategy SearchStrategy) *Object {
	if t == nil {
		return nil
	}
	return searchObjects(t.objects, name, strategy)
}

func searchObjects(roots []*Object, name string, strategy SearchStrategy) *Object {
	switch strategy {
	case DepthFirstPre:
		for _, o := range roots {
			if found := searchPre(o, name); found != nil {
				return found
			}
		}
	case DepthFirstPost:
		for _, o := range roots {
			if found := searchPost(o, name); found != nil {
				return found
			}
		}
	default: // BreadthFirst
		queue := make([]*Object, len(roots))
		copy(queue, roots)
		for len(queue) > 0 {
			o := queue[0]
			queue = queue[1:]
			if o.name == name {
				return o
			}
			queue = append(queue, o.children...)
		}
	}
	return nil
}

func searchPre(o *Object, name string) *Object {
	if o.name == name {
		return o
	}
	for _, c := range o.children {
		if found := searchPre(c, name); found != nil {
			return found
		}
	}
	return nil
}

func searchPost(o *Object, name string) *Object {
	for _, c := range o.children {
		if found := searchPost(c, name); found != nil {
			return found
		}
	}
	if o.name == name {
		return o
	}
	return nil
}
