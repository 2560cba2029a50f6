package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Format renders the document in canonical form: blocks in declaration
// order, two-space indentation, attributes in a fixed order. Re-parsing
// the output yields a structurally identical document, and formatting
// that document again yields the same text.
func (d *Document) Format() string {
	var b strings.Builder

	type block struct {
		line  int
		write func()
	}
	blocks := make([]block, 0, len(d.Models)+len(d.Enums))
	for i := range d.Models {
		m := &d.Models[i]
		blocks = append(blocks, block{m.Line, func() { writeModel(&b, m) }})
	}
	for i := range d.Enums {
		e := &d.Enums[i]
		blocks = append(blocks, block{e.Line, func() { writeEnum(&b, e) }})
	}
	// Sorting by declaration line restores the original interleaving of
	// models and enums.
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].line < blocks[j].line })

	for i, blk := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		blk.write()
	}
	return b.String()
}

func writeModel(b *strings.Builder, m *Model) {
	fmt.Fprintf(b, "model %s {\n", m.Name)
	for _, f := range m.Fields {
		fmt.Fprintf(b, "  %s %s%s\n", f.Name, f.Type, formatAttrs(f.Attrs))
	}
	for _, idx := range m.Indexes {
		kind := "index"
		if idx.Unique {
			kind = "unique"
		}
		fmt.Fprintf(b, "  @@%s([%s])\n", kind, strings.Join(idx.Fields, ", "))
	}
	b.WriteString("}\n")
}

func writeEnum(b *strings.Builder, e *EnumDef) {
	fmt.Fprintf(b, "enum %s {\n", e.Name)
	for _, v := range e.Variants {
		fmt.Fprintf(b, "  %s\n", v.Name)
	}
	b.WriteString("}\n")
}

func formatAttrs(a FieldAttrs) string {
	var b strings.Builder
	if a.ID {
		b.WriteString(" @id")
	}
	if a.Unique {
		b.WriteString(" @unique")
	}
	if a.Default != "" {
		fmt.Fprintf(&b, " @default(%s)", a.Default)
	}
	if a.Relation != nil {
		if len(a.Relation.Fields) > 0 {
			fmt.Fprintf(&b, " @relation(%s, fields: [%s])", a.Relation.Model, strings.Join(a.Relation.Fields, ", "))
		} else {
			fmt.Fprintf(&b, " @relation(%s)", a.Relation.Model)
		}
	}
	return b.String()
}
