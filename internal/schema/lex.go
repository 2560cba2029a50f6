package schema

import (
	"fmt"
	"strings"
)

// stripComment removes a trailing `//` comment, ignoring markers inside
// double-quoted strings (e.g. @default("https://example.com")).
func stripComment(line string) string {
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inString = !inString
		case '/':
			if !inString && i+1 < len(line) && line[i+1] == '/' {
				return line[:i]
			}
		}
	}
	return line
}

// splitTokens splits a field declaration on whitespace, keeping
// parenthesized and bracketed groups intact so that
// `@relation(User, fields: [author_id])` stays one token.
func splitTokens(line string) ([]string, error) {
	var (
		toks     []string
		start    = -1
		depth    int
		inString bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(' || c == '[':
			depth++
			if depth > maxArgDepth {
				return nil, fmt.Errorf("attribute arguments nested deeper than %d levels", maxArgDepth)
			}
		case c == ')' || c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced %q in %q", string(c), line)
			}
		case c == ' ' || c == '\t':
			if depth == 0 {
				if start >= 0 {
					toks = append(toks, line[start:i])
					start = -1
				}
				continue
			}
		}
		if start < 0 {
			start = i
		}
	}
	if inString {
		return nil, fmt.Errorf("unterminated string in %q", line)
	}
	if depth != 0 {
		return nil, fmt.Errorf("attribute argument list not closed before end of line in %q", line)
	}
	if start >= 0 {
		toks = append(toks, line[start:])
	}
	return toks, nil
}

// parseTypeRef parses a type token: a base name optionally followed by
// `[]` (list) and `?` (optional), in that order.
func parseTypeRef(tok string) (TypeRef, error) {
	t := TypeRef{Name: tok}
	if strings.HasSuffix(t.Name, "?") {
		t.Optional = true
		t.Name = strings.TrimSuffix(t.Name, "?")
	}
	if strings.HasSuffix(t.Name, "[]") {
		t.List = true
		t.Name = strings.TrimSuffix(t.Name, "[]")
	}
	if !isIdent(t.Name) {
		return TypeRef{}, fmt.Errorf("invalid type %q", tok)
	}
	return t, nil
}

// splitAttr splits an attribute (without its @ prefix) into a name and
// the raw text of its argument list, if any. The argument list must be
// balanced and must consume the rest of the token.
func splitAttr(attr string) (name, args string, hasArgs bool, err error) {
	open := strings.IndexByte(attr, '(')
	if open < 0 {
		if !isIdent(attr) {
			return "", "", false, fmt.Errorf("malformed attribute %q", attr)
		}
		return attr, "", false, nil
	}

	name = attr[:open]
	if !isIdent(name) {
		return "", "", false, fmt.Errorf("malformed attribute %q", attr)
	}

	depth := 0
	inString := false
	for i := open; i < len(attr); i++ {
		switch c := attr[i]; {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(':
			depth++
			if depth > maxArgDepth {
				return "", "", false, fmt.Errorf("attribute @%s nested deeper than %d levels", name, maxArgDepth)
			}
		case c == ')':
			depth--
			if depth == 0 {
				if i != len(attr)-1 {
					return "", "", false, fmt.Errorf("unexpected text after argument list in @%s", name)
				}
				return name, attr[open+1 : i], true, nil
			}
		}
	}
	return "", "", false, fmt.Errorf("argument list of @%s is not closed", name)
}

// splitArgs splits an argument list on top-level commas.
func splitArgs(args string) []string {
	var (
		out      []string
		start    int
		depth    int
		inString bool
	)
	for i := 0; i < len(args); i++ {
		switch c := args[i]; {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			out = append(out, args[start:i])
			start = i + 1
		}
	}
	if strings.TrimSpace(args[start:]) != "" || len(out) > 0 {
		out = append(out, args[start:])
	}
	return out
}

// parseFieldList parses a bracketed list of field names: [a, b].
func parseFieldList(s string) ([]string, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("expected a field list like [a, b], got %q", s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}

	var fields []string
	for _, part := range strings.Split(inner, ",") {
		name := strings.TrimSpace(part)
		if !isIdent(name) {
			return nil, fmt.Errorf("invalid field name %q in field list", name)
		}
		fields = append(fields, name)
	}
	return fields, nil
}

// isIdent reports whether s is a valid identifier: a letter or
// underscore followed by letters, digits, or underscores.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
