package schema

// typeAliases maps alternate spellings of a base type to its canonical
// name. The table is explicit so type-equivalence rules stay auditable;
// two types are equivalent only if they normalize to the same name.
var typeAliases = map[string]string{
	"Integer":   "Int",
	"Text":      "String",
	"Bool":      "Boolean",
	"Double":    "Float",
	"Timestamp": "DateTime",
}

// NormalizeType returns the canonical name for a base type. Unknown
// names normalize to themselves.
func NormalizeType(name string) string {
	if canonical, ok := typeAliases[name]; ok {
		return canonical
	}
	return name
}
