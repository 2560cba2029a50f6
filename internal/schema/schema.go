package schema

import "fmt"

// Document is the parsed, immutable representation of a schema file.
// Models and enums keep their declaration order; names are unique across
// the whole document (enforced by the parser).
type Document struct {
	Models []Model
	Enums  []EnumDef
}

// ModelByName looks up a model by name.
func (d *Document) ModelByName(name string) (Model, bool) {
	for _, m := range d.Models {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

// EnumByName looks up an enum by name.
func (d *Document) EnumByName(name string) (EnumDef, bool) {
	for _, e := range d.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return EnumDef{}, false
}

// Model is a `model Name { ... }` block: an ordered field list plus any
// block-level index declarations.
type Model struct {
	Name    string
	Fields  []Field
	Indexes []IndexDef
	Line    int
}

// FieldByName looks up a field by name.
func (m Model) FieldByName(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Field is a single field declaration inside a model.
type Field struct {
	Name  string
	Type  TypeRef
	Attrs FieldAttrs
	Line  int
}

// TypeRef is a field's type reference: a base type name plus the
// optional (`?`) and list (`[]`) modifiers.
type TypeRef struct {
	Name     string
	Optional bool
	List     bool
}

// String renders the type the way it appears in source, e.g. "Post[]"
// or "String?".
func (t TypeRef) String() string {
	s := t.Name
	if t.List {
		s += "[]"
	}
	if t.Optional {
		s += "?"
	}
	return s
}

// FieldAttrs holds the field-level attributes of a declaration.
type FieldAttrs struct {
	ID       bool
	Unique   bool
	Default  string
	Relation *Relation
}

// Relation describes an `@relation` attribute. The target model name is
// not resolved against any other document at parse time; resolution
// happens during comparison.
type Relation struct {
	Model  string
	Fields []string
}

// EnumDef is an `enum Name { ... }` block.
type EnumDef struct {
	Name     string
	Variants []Variant
	Line     int
}

// VariantByName looks up a variant by name.
func (e EnumDef) VariantByName(name string) (Variant, bool) {
	for _, v := range e.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Variant is a single enum variant.
type Variant struct {
	Name string
	Line int
}

// IndexDef is a block-level `@@index` or `@@unique` declaration. The
// field list is an ordered tuple: (a, b) and (b, a) are different
// indexes because column order affects query planning.
type IndexDef struct {
	Fields []string
	Unique bool
	Line   int
}

// ParseError is a fatal, per-document parse failure. Parsing stops at
// the first one; no partial document is produced.
type ParseError struct {
	Line    int
	Message string
}

// Error formats the error with its 1-based source line.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}
