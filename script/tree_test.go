package script

import "testing"

// buildTestTree constructs:
//
//	engine {
//	  settings {
//	    basic { resolution(1280, 720) }
//	    video { }
//	  }
//	  audio { volume(0.8) }
//	}
//	theme {
//	  audio { }
//	}
func buildTestTree() *Tree {
	basic := NewObject("basic", "").WithProperties(
		NewProperty("resolution", Int(1280), Int(720)),
	)
	settings := NewObject("settings", "").WithChildren(
		basic,
		NewObject("video", ""),
	)
	audio := NewObject("audio", "").WithProperties(
		NewProperty("volume", Float(0.8)),
	)
	engine := NewObject("engine", "").WithChildren(settings, audio)
	theme := NewObject("theme", "").WithChildren(NewObject("audio", "skin"))
	return NewTree(engine, theme)
}

func TestFindDirectChildrenOnly(t *testing.T) {
	tree := buildTestTree()
	if obj := tree.Find("engine"); !obj.Valid() {
		t.Fatal("expected to find top-level engine")
	}
	// basic is two levels down; Find must not descend.
	if obj := tree.Find("basic"); obj.Valid() {
		t.Error("Find must not search the whole subtree")
	}
	engine := tree.Find("engine")
	if obj := engine.Find("settings"); !obj.Valid() {
		t.Error("expected settings as direct child of engine")
	}
	if obj := engine.Find("basic"); obj.Valid() {
		t.Error("basic is a grandchild, not a direct child")
	}
}

func TestSearchFindsDeepNodes(t *testing.T) {
	tree := buildTestTree()
	for _, strategy := range []SearchStrategy{BreadthFirst, DepthFirstPre, DepthFirstPost} {
		if obj := tree.Search("basic", strategy); !obj.Valid() {
			t.Errorf("%s: expected to find basic", strategy)
		}
		if obj := tree.Search("nonexistent", strategy); obj.Valid() {
			t.Errorf("%s: found a node that does not exist", strategy)
		}
	}
}

func TestSearchStrategyOrder(t *testing.T) {
	// Two objects named "audio": engine.audio (shallow, later sibling
	// subtree) and theme.audio. Strategy decides which is hit first.
	tree := buildTestTree()

	bfs := tree.Search("audio", BreadthFirst)
	if bfs.Class() != "" {
		t.Errorf("breadth-first should reach engine.audio first, got class %q", bfs.Class())
	}
	pre := tree.Search("audio", DepthFirstPre)
	if pre.Class() != "" {
		t.Errorf("depth-first-pre should reach engine.audio first, got class %q", pre.Class())
	}

	// Post-order visits children before the node itself, so within the
	// engine subtree it still reaches engine.audio before theme.
	post := tree.Search("audio", DepthFirstPost)
	if post.Class() != "" {
		t.Errorf("depth-first-post should reach engine.audio first, got class %q", post.Class())
	}

	// Two same-named objects at different depths: breadth-first hits
	// the shallow one, depth-first the deep one.
	forest := NewTree(
		NewObject("a", "").WithChildren(NewObject("t", "deep")),
		NewObject("t", "shallow"),
	)
	if got := forest.Search("t", BreadthFirst).Class(); got != "shallow" {
		t.Errorf("breadth-first: got %q, want shallow", got)
	}
	if got := forest.Search("t", DepthFirstPre).Class(); got != "deep" {
		t.Errorf("depth-first-pre: got %q, want deep", got)
	}
	if got := forest.Search("t", DepthFirstPost).Class(); got != "deep" {
		t.Errorf("depth-first-post: got %q, want deep", got)
	}
}

func TestSentinelSafety(t *testing.T) {
	tree := buildTestTree()

	// Chained lookups through misses must not panic and stay invalid.
	arg := tree.Find("missing").Property("nope").Argument(3)
	if arg.Valid() {
		t.Error("argument from missed lookups must be invalid")
	}
	if _, err := arg.AsInt(); err == nil {
		t.Error("invalid argument must not yield a value")
	}
	if tree.Find("missing").Valid() {
		t.Error("missed Find must be invalid")
	}
	if tree.Search("missing", BreadthFirst).Valid() {
		t.Error("missed Search must be invalid")
	}
	if tree.Find("engine").Property("missing").Valid() {
		t.Error("missed Property must be invalid")
	}

	var nilTree *Tree
	if nilTree.Find("x").Valid() || nilTree.Search("x", BreadthFirst).Valid() {
		t.Error("nil tree lookups must be invalid")
	}
}

func TestArgumentPosition(t *testing.T) {
	tree := buildTestTree()
	res := tree.Find("engine").Find("settings").Find("basic").Property("resolution")
	if !res.Valid() || res.Len() != 2 {
		t.Fatalf("resolution property: valid=%v len=%d", res.Valid(), res.Len())
	}
	if w, err := res.Argument(0).AsInt(); err != nil || w != 1280 {
		t.Errorf("argument 0: %v, %v", w, err)
	}
	if h, err := res.Argument(1).AsInt(); err != nil || h != 720 {
		t.Errorf("argument 1: %v, %v", h, err)
	}
	if res.Argument(2).Valid() {
		t.Error("argument 2 must be the invalid sentinel")
	}
	if res.Argument(-1).Valid() {
		t.Error("negative index must be the invalid sentinel")
	}
}

func TestFullyQualifiedName(t *testing.T) {
	tree := buildTestTree()
	basic := tree.Search("basic", BreadthFirst)

	fqn, ok := tree.FullyQualifiedName(basic)
	if !ok || fqn != "engine.settings.basic" {
		t.Errorf("FQN: %q, %v", fqn, ok)
	}

	prop := basic.Property("resolution")
	pfqn, ok := tree.FullyQualifiedPropertyName(basic, prop)
	if !ok || pfqn != "engine.settings.basic.resolution" {
		t.Errorf("property FQN: %q, %v", pfqn, ok)
	}

	// A node that is not part of the tree has no FQN.
	stray := NewObject("basic", "")
	if _, ok := tree.FullyQualifiedName(stray); ok {
		t.Error("stray object must not resolve to an FQN")
	}
	if _, ok := tree.FullyQualifiedPropertyName(stray, prop); ok {
		t.Error("property of a stray object must not resolve")
	}
}

func TestClassOrNameFallback(t *testing.T) {
	plain := NewObject("settings", "")
	if plain.ClassOrName() != "settings" {
		t.Errorf("fallback: got %q", plain.ClassOrName())
	}
	tagged := NewObject("main-menu", "menu")
	if tagged.ClassOrName() != "menu" {
		t.Errorf("explicit tag: got %q", tagged.ClassOrName())
	}
}
