// Package drift compares two parsed schema documents and reports every
// structural discrepancy between them as an ordered, deterministic
// sequence of findings.
package drift

import (
	"fmt"
	"sort"
	"strings"

	"github.com/simonhull/schemadrift/internal/schema"
)

// Option configures a comparison.
type Option func(*comparer)

// WithAliases adds extra type aliases on top of the built-in
// normalization table for this comparison. Alias names match
// case-insensitively; config loaders tend to fold map keys.
func WithAliases(aliases map[string]string) Option {
	return func(c *comparer) {
		for from, to := range aliases {
			c.aliases[strings.ToLower(from)] = to
		}
	}
}

type comparer struct {
	aliases map[string]string
}

func (c *comparer) normalize(name string) string {
	if canonical, ok := c.aliases[strings.ToLower(name)]; ok {
		return canonical
	}
	return schema.NormalizeType(name)
}

// Compare reports every structural discrepancy between the reference
// and target documents. It never mutates its inputs and is total over
// well-formed documents: an empty result means the schemas are
// structurally compatible.
//
// The output order is deterministic: findings are grouped by model or
// enum in reference declaration order, followed by entities only the
// target declares in target declaration order. Within a group, critical
// findings precede warnings; ties break on ascending item name.
// Matching is by name everywhere, so reordering declarations never
// produces a finding.
func Compare(ref, target *schema.Document, opts ...Option) []Finding {
	c := &comparer{aliases: map[string]string{}}
	for _, opt := range opts {
		opt(c)
	}

	var out []Finding
	for _, blk := range declarationOrder(ref) {
		var group []Finding
		if blk.model != nil {
			group = c.compareModel(*blk.model, target)
		} else {
			group = c.compareEnum(*blk.enum, target)
		}
		sortGroup(group)
		out = append(out, group...)
	}

	for _, blk := range declarationOrder(target) {
		switch {
		case blk.model != nil:
			if _, ok := ref.ModelByName(blk.model.Name); !ok {
				out = append(out, Finding{
					Kind:       KindExtraModel,
					Severity:   SeverityWarning,
					Object:     blk.model.Name,
					TargetLine: blk.model.Line,
					Message:    fmt.Sprintf("model %q exists only in the target schema; remove it or add it to the reference", blk.model.Name),
				})
			}
		case blk.enum != nil:
			if _, ok := ref.EnumByName(blk.enum.Name); !ok {
				out = append(out, Finding{
					Kind:       KindExtraEnum,
					Severity:   SeverityWarning,
					Object:     blk.enum.Name,
					TargetLine: blk.enum.Line,
					Message:    fmt.Sprintf("enum %q exists only in the target schema; remove it or add it to the reference", blk.enum.Name),
				})
			}
		}
	}

	return out
}

func (c *comparer) compareModel(m schema.Model, target *schema.Document) []Finding {
	tm, ok := target.ModelByName(m.Name)
	if !ok {
		return []Finding{{
			Kind:     KindMissingModel,
			Severity: SeverityCritical,
			Object:   m.Name,
			RefLine:  m.Line,
			Message:  fmt.Sprintf("model %q is missing from the target schema; add it", m.Name),
		}}
	}

	var out []Finding
	for _, f := range m.Fields {
		tf, ok := tm.FieldByName(f.Name)
		if !ok {
			out = append(out, Finding{
				Kind:     KindMissingField,
				Severity: SeverityCritical,
				Object:   m.Name,
				Item:     f.Name,
				RefLine:  f.Line,
				Message:  fmt.Sprintf("field %q is missing from model %q in the target schema; add it", f.Name, m.Name),
			})
			continue
		}

		if c.normalize(f.Type.Name) != c.normalize(tf.Type.Name) {
			out = append(out, Finding{
				Kind:       KindTypeMismatch,
				Severity:   SeverityWarning,
				Object:     m.Name,
				Item:       f.Name,
				RefLine:    f.Line,
				TargetLine: tf.Line,
				Message:    fmt.Sprintf("field %q has type %s in the reference but %s in the target", f.Name, f.Type.Name, tf.Type.Name),
			})
		}
		if f.Type.Optional != tf.Type.Optional || f.Type.List != tf.Type.List {
			out = append(out, Finding{
				Kind:       KindModifierMismatch,
				Severity:   SeverityCritical,
				Object:     m.Name,
				Item:       f.Name,
				RefLine:    f.Line,
				TargetLine: tf.Line,
				Message:    fmt.Sprintf("field %q is declared %s in the reference but %s in the target; nullability or cardinality differs", f.Name, f.Type, tf.Type),
			})
		}
		if f.Attrs.Relation != nil && tf.Attrs.Relation != nil && f.Attrs.Relation.Model != tf.Attrs.Relation.Model {
			out = append(out, Finding{
				Kind:       KindRelationMismatch,
				Severity:   SeverityCritical,
				Object:     m.Name,
				Item:       f.Name,
				RefLine:    f.Line,
				TargetLine: tf.Line,
				Message:    fmt.Sprintf("relation %q points at model %q in the reference but %q in the target", f.Name, f.Attrs.Relation.Model, tf.Attrs.Relation.Model),
			})
		}
	}

	for _, tf := range tm.Fields {
		if _, ok := m.FieldByName(tf.Name); !ok {
			out = append(out, Finding{
				Kind:       KindExtraField,
				Severity:   SeverityWarning,
				Object:     m.Name,
				Item:       tf.Name,
				TargetLine: tf.Line,
				Message:    fmt.Sprintf("field %q exists only in the target's model %q; remove it or add it to the reference", tf.Name, m.Name),
			})
		}
	}

	for _, idx := range m.Indexes {
		if !hasIndex(tm, idx) {
			kind := "index"
			if idx.Unique {
				kind = "unique index"
			}
			out = append(out, Finding{
				Kind:     KindMissingIndex,
				Severity: SeverityWarning,
				Object:   m.Name,
				Item:     indexTuple(idx),
				RefLine:  idx.Line,
				Message:  fmt.Sprintf("%s %s on model %q is missing from the target schema; add it with the same column order", kind, indexTuple(idx), m.Name),
			})
		}
	}

	return out
}

func (c *comparer) compareEnum(e schema.EnumDef, target *schema.Document) []Finding {
	te, ok := target.EnumByName(e.Name)
	if !ok {
		return []Finding{{
			Kind:     KindMissingEnum,
			Severity: SeverityCritical,
			Object:   e.Name,
			RefLine:  e.Line,
			Message:  fmt.Sprintf("enum %q is missing from the target schema; add it", e.Name),
		}}
	}

	var out []Finding
	for _, v := range e.Variants {
		if _, ok := te.VariantByName(v.Name); !ok {
			out = append(out, Finding{
				Kind:     KindMissingVariant,
				Severity: SeverityCritical,
				Object:   e.Name,
				Item:     v.Name,
				RefLine:  v.Line,
				Message:  fmt.Sprintf("variant %q is missing from enum %q in the target schema; add it", v.Name, e.Name),
			})
		}
	}
	for _, tv := range te.Variants {
		if _, ok := e.VariantByName(tv.Name); !ok {
			out = append(out, Finding{
				Kind:       KindExtraVariant,
				Severity:   SeverityWarning,
				Object:     e.Name,
				Item:       tv.Name,
				TargetLine: tv.Line,
				Message:    fmt.Sprintf("variant %q exists only in the target's enum %q; remove it or add it to the reference", tv.Name, e.Name),
			})
		}
	}
	return out
}

// block is one top-level declaration; exactly one pointer is set.
type block struct {
	model *schema.Model
	enum  *schema.EnumDef
}

// declarationOrder returns a document's models and enums interleaved in
// source order, reconstructed from their declaration lines.
func declarationOrder(d *schema.Document) []block {
	blocks := make([]block, 0, len(d.Models)+len(d.Enums))
	for i := range d.Models {
		blocks = append(blocks, block{model: &d.Models[i]})
	}
	for i := range d.Enums {
		blocks = append(blocks, block{enum: &d.Enums[i]})
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].line() < blocks[j].line() })
	return blocks
}

func (b block) line() int {
	if b.model != nil {
		return b.model.Line
	}
	return b.enum.Line
}

// sortGroup orders findings within one model/enum group: critical
// before warning, ties broken by ascending item name.
func sortGroup(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Severity != fs[j].Severity {
			return fs[i].Severity.rank() < fs[j].Severity.rank()
		}
		return fs[i].Item < fs[j].Item
	})
}

// hasIndex reports whether the model declares an index with exactly the
// same ordered field tuple and uniqueness flag.
func hasIndex(m schema.Model, want schema.IndexDef) bool {
	for _, idx := range m.Indexes {
		if idx.Unique != want.Unique || len(idx.Fields) != len(want.Fields) {
			continue
		}
		match := true
		for i, f := range idx.Fields {
			if f != want.Fields[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func indexTuple(idx schema.IndexDef) string {
	return "(" + strings.Join(idx.Fields, ", ") + ")"
}
