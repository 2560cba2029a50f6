package schema

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// maxArgDepth bounds nesting inside attribute argument lists so that
// pathological input fails with a ParseError instead of runaway state.
const maxArgDepth = 16

// Parse turns schema source text into a Document. It is a pure function
// of its input: one pass, line oriented, 1-based line numbers. The first
// malformed construct aborts the parse; no partial document is returned.
func Parse(src []byte) (*Document, error) {
	p := &parser{names: map[string]int{}}
	return p.run(src)
}

type parser struct {
	doc  Document
	line int

	// names holds every top-level name with its declaration line.
	names map[string]int

	// Exactly one of model/enum is non-nil while inside a block.
	model    *Model
	enum     *EnumDef
	fields   map[string]int
	variants map[string]int

	// Relation foreign keys may reference fields declared later in the
	// same model, so they are checked when the block closes.
	pending []pendingRelation
}

type pendingRelation struct {
	field string
	key   string
	line  int
}

func (p *parser) run(src []byte) (*Document, error) {
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		p.line++
		line := strings.TrimSpace(stripComment(sc.Text()))
		if line == "" {
			continue
		}

		var err error
		switch {
		case p.model != nil:
			err = p.modelLine(line)
		case p.enum != nil:
			err = p.enumLine(line)
		default:
			err = p.topLine(line)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Line: p.line, Message: err.Error()}
	}

	if p.model != nil {
		return nil, p.errf("model %q is missing its closing brace", p.model.Name)
	}
	if p.enum != nil {
		return nil, p.errf("enum %q is missing its closing brace", p.enum.Name)
	}

	return &p.doc, nil
}

// topLine handles a line outside any block: `model Name {` or `enum Name {`.
func (p *parser) topLine(line string) error {
	if line == "}" {
		return p.errf("unbalanced closing brace")
	}

	parts := strings.Fields(line)
	if len(parts) != 3 || parts[2] != "{" {
		return p.errf("expected a block declaration like %q, got %q", "model Name {", line)
	}

	keyword, name := parts[0], parts[1]
	if keyword != "model" && keyword != "enum" {
		return p.errf("unknown top-level keyword %q (expected \"model\" or \"enum\")", keyword)
	}
	if !isIdent(name) {
		return p.errf("invalid %s name %q", keyword, name)
	}
	if prev, ok := p.names[name]; ok {
		return p.errf("duplicate declaration of %q (first declared on line %d)", name, prev)
	}
	p.names[name] = p.line

	if keyword == "model" {
		p.model = &Model{Name: name, Line: p.line}
		p.fields = map[string]int{}
		p.pending = nil
	} else {
		p.enum = &EnumDef{Name: name, Line: p.line}
		p.variants = map[string]int{}
	}
	return nil
}

// modelLine handles a line inside a model block: a field declaration, a
// block-level `@@` attribute, or the closing brace.
func (p *parser) modelLine(line string) error {
	if line == "}" {
		for _, pr := range p.pending {
			if _, ok := p.fields[pr.key]; !ok {
				return &ParseError{
					Line:    pr.line,
					Message: fmt.Sprintf("relation on field %q references undeclared field %q", pr.field, pr.key),
				}
			}
		}
		p.doc.Models = append(p.doc.Models, *p.model)
		p.model = nil
		return nil
	}
	if strings.HasPrefix(line, "@@") {
		return p.blockAttr(line)
	}
	if strings.Contains(line, "{") {
		return p.errf("nested blocks are not allowed inside model %q", p.model.Name)
	}
	return p.fieldLine(line)
}

func (p *parser) fieldLine(line string) error {
	toks, err := splitTokens(line)
	if err != nil {
		return &ParseError{Line: p.line, Message: err.Error()}
	}
	if len(toks) < 2 {
		return p.errf("field declaration needs a name and a type, got %q", line)
	}

	name := toks[0]
	if !isIdent(name) {
		return p.errf("invalid field name %q", name)
	}
	if prev, ok := p.fields[name]; ok {
		return p.errf("duplicate field %q in model %q (first declared on line %d)", name, p.model.Name, prev)
	}

	typ, err := parseTypeRef(toks[1])
	if err != nil {
		return &ParseError{Line: p.line, Message: err.Error()}
	}

	f := Field{Name: name, Type: typ, Line: p.line}
	for _, tok := range toks[2:] {
		if !strings.HasPrefix(tok, "@") || strings.HasPrefix(tok, "@@") {
			return p.errf("unexpected token %q in field declaration (attributes start with @)", tok)
		}
		if err := p.fieldAttr(&f, tok[1:]); err != nil {
			return err
		}
	}

	p.fields[name] = p.line
	p.model.Fields = append(p.model.Fields, f)
	return nil
}

func (p *parser) fieldAttr(f *Field, attr string) error {
	name, args, hasArgs, err := splitAttr(attr)
	if err != nil {
		return &ParseError{Line: p.line, Message: err.Error()}
	}

	switch name {
	case "id":
		f.Attrs.ID = true
	case "unique":
		f.Attrs.Unique = true
	case "default":
		if !hasArgs || strings.TrimSpace(args) == "" {
			return p.errf("@default on field %q needs a value", f.Name)
		}
		f.Attrs.Default = strings.TrimSpace(args)
	case "relation":
		rel, err := p.parseRelation(f.Name, args, hasArgs)
		if err != nil {
			return err
		}
		f.Attrs.Relation = rel
	default:
		// Unknown attributes are tolerated: they passed the syntax check
		// above and carry no structural meaning for drift detection.
	}
	return nil
}

// parseRelation handles `@relation(Model)` and
// `@relation(Model, fields: [a, b])`.
func (p *parser) parseRelation(fieldName, args string, hasArgs bool) (*Relation, error) {
	if !hasArgs {
		return nil, p.errf("@relation on field %q needs a target model", fieldName)
	}

	rel := &Relation{}
	for _, arg := range splitArgs(args) {
		arg = strings.TrimSpace(arg)
		switch {
		case strings.HasPrefix(arg, "fields:"):
			list, err := parseFieldList(strings.TrimSpace(strings.TrimPrefix(arg, "fields:")))
			if err != nil {
				return nil, &ParseError{Line: p.line, Message: err.Error()}
			}
			rel.Fields = list
			for _, fk := range list {
				p.pending = append(p.pending, pendingRelation{field: fieldName, key: fk, line: p.line})
			}
		case isIdent(arg):
			if rel.Model != "" {
				return nil, p.errf("@relation on field %q names two target models (%q and %q)", fieldName, rel.Model, arg)
			}
			rel.Model = arg
		default:
			return nil, p.errf("malformed @relation argument %q on field %q", arg, fieldName)
		}
	}
	if rel.Model == "" {
		return nil, p.errf("@relation on field %q needs a target model", fieldName)
	}
	return rel, nil
}

// blockAttr handles `@@unique([a, b])` and `@@index([a, b])`. Referenced
// fields must already be declared earlier in the block.
func (p *parser) blockAttr(line string) error {
	name, args, hasArgs, err := splitAttr(line[2:])
	if err != nil {
		return &ParseError{Line: p.line, Message: err.Error()}
	}
	if name != "unique" && name != "index" {
		return p.errf("unknown block attribute @@%s in model %q", name, p.model.Name)
	}
	if !hasArgs {
		return p.errf("@@%s needs a field list like ([a, b])", name)
	}

	fields, err := parseFieldList(strings.TrimSpace(args))
	if err != nil {
		return &ParseError{Line: p.line, Message: err.Error()}
	}
	if len(fields) == 0 {
		return p.errf("@@%s needs at least one field", name)
	}
	for _, fname := range fields {
		if _, ok := p.fields[fname]; !ok {
			return p.errf("@@%s references undeclared field %q", name, fname)
		}
	}

	p.model.Indexes = append(p.model.Indexes, IndexDef{
		Fields: fields,
		Unique: name == "unique",
		Line:   p.line,
	})
	return nil
}

// enumLine handles a line inside an enum block: a variant name or the
// closing brace.
func (p *parser) enumLine(line string) error {
	if line == "}" {
		p.doc.Enums = append(p.doc.Enums, *p.enum)
		p.enum = nil
		return nil
	}
	if !isIdent(line) {
		return p.errf("invalid enum variant %q in enum %q", line, p.enum.Name)
	}
	if prev, ok := p.variants[line]; ok {
		return p.errf("duplicate variant %q in enum %q (first declared on line %d)", line, p.enum.Name, prev)
	}
	p.variants[line] = p.line
	p.enum.Variants = append(p.enum.Variants, Variant{Name: line, Line: p.line})
	return nil
}

func (p *parser) errf(format string, args ...any) error {
	return &ParseError{Line: p.line, Message: fmt.Sprintf(format, args...)}
}
