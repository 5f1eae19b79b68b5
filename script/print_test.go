package script

import (
	"errors"
	"strings"
	"testing"
)

func TestPrintDetailLevels(t *testing.T) {
	tree := NewTree(
		NewObject("window", "widget").WithProperties(
			NewProperty("size", Int(640), Int(480)),
		).WithChildren(
			NewObject("label", "widget"),
		),
	)

	objects := tree.Print(PrintOptions{Detail: PrintObjects})
	if !strings.Contains(objects, "window : widget") {
		t.Errorf("objects view missing header:\n%s", objects)
	}
	if strings.Contains(objects, "size") {
		t.Errorf("objects view must not include properties:\n%s", objects)
	}

	props := tree.Print(PrintOptions{Detail: PrintProperties})
	if !strings.Contains(props, "size") {
		t.Errorf("properties view missing property name:\n%s", props)
	}
	if strings.Contains(props, "640") {
		t.Errorf("properties view must not include arguments:\n%s", props)
	}

	args := tree.Print(DefaultPrintOptions())
	if !strings.Contains(args, "size(640, 480)") {
		t.Errorf("arguments view missing values:\n%s", args)
	}
	if !strings.Contains(args, "label") {
		t.Errorf("arguments view missing nested object:\n%s", args)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestWritePrintReportsWriteErrors(t *testing.T) {
	tree := NewTree(NewObject("engine", ""))
	want := errors.New("disk full")
	if err := tree.WritePrint(failingWriter{err: want}, DefaultPrintOptions()); !errors.Is(err, want) {
		t.Errorf("got %v, want %v", err, want)
	}

	var sb strings.Builder
	if err := tree.WritePrint(&sb, DefaultPrintOptions()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	var nilTree *Tree
	if err := nilTree.WritePrint(failingWriter{err: want}, DefaultPrintOptions()); err != nil {
		t.Errorf("nil tree writes nothing and must not error: %v", err)
	}
}

func TestPrintOmitsRedundantClass(t *testing.T) {
	tree := NewTree(NewObject("engine", "engine"))
	out := tree.Print(PrintOptions{Detail: PrintObjects})
	if strings.Contains(out, ":") {
		t.Errorf("class equal to name should not be repeated:\n%s", out)
	}
}
