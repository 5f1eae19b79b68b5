package script

import (
	"io"
	"strings"
)

// PrintDetail selects how much of the tree Print renders.
type PrintDetail uint8

const (
	PrintObjects    PrintDetail = iota // object names and classes only
	PrintProperties                    // + property names
	PrintArguments                     // + argument values
)

// PrintOptions configures tree printing.
type PrintOptions struct {
	Detail PrintDetail
	Indent string // indent unit (default "  ")
}

// DefaultPrintOptions renders everything with two-space indentation.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{Detail: PrintArguments, Indent: "  "}
}

// Print renders the tree in script-like syntax for debugging and logs.
func (t *Tree) Print(opts PrintOptions) string {
	var sb strings.Builder
	t.WritePrint(&sb, opts)
	return sb.String()
}

// WritePrint renders the tree to a writer.
func (t *Tree) WritePrint(w io.Writer, opts PrintOptions) error {
	if t == nil {
		return nil
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	var sb strings.Builder
	for _, o := range t.objects {
		printObject(&sb, o, opts, 0)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// String renders the tree with default options.
func (t *Tree) String() string {
	return t.Print(DefaultPrintOptions())
}

func printObject(sb *strings.Builder, o *Object, opts PrintOptions, depth int) {
	ind := strings.Repeat(opts.Indent, depth)
	sb.WriteString(ind)
	sb.WriteString(o.name)
	if o.class != "" && o.class != o.name {
		sb.WriteString(" : ")
		sb.WriteString(o.class)
	}

	empty := len(o.children) == 0 &&
		(opts.Detail < PrintProperties || len(o.props) == 0)
	if empty {
		sb.WriteString(" {}\n")
		return
	}

	sb.WriteString(" {\n")
	if opts.Detail >= PrintProperties {
		for _, p := range o.props {
			printProperty(sb, p, opts, depth+1)
		}
	}
	for _, c := range o.children {
		printObject(sb, c, opts, depth+1)
	}
	sb.WriteString(ind)
	sb.WriteString("}\n")
}

func printProperty(sb *strings.Builder, p *Property, opts PrintOptions, depth int) {
	sb.WriteString(strings.Repeat(opts.Indent, depth))
	sb.WriteString(p.name)
	if opts.Detail >= PrintArguments {
		sb.WriteString("(")
		for i, a := range p.args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.Value().String())
		}
		sb.WriteString(")")
	}
	sb.WriteString("\n")
}
