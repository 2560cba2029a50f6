package drift

// Severity classifies a finding. Critical findings fail the check;
// warnings are informational only.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// rank orders severities for sorting: critical findings come first.
func (s Severity) rank() int {
	if s == SeverityCritical {
		return 0
	}
	return 1
}

// Kind identifies the drift rule that produced a finding.
type Kind string

const (
	KindMissingModel     Kind = "missing_model"
	KindExtraModel       Kind = "extra_model"
	KindMissingField     Kind = "missing_field"
	KindExtraField       Kind = "extra_field"
	KindTypeMismatch     Kind = "type_mismatch"
	KindModifierMismatch Kind = "modifier_mismatch"
	KindRelationMismatch Kind = "relation_mismatch"
	KindMissingEnum      Kind = "missing_enum"
	KindExtraEnum        Kind = "extra_enum"
	KindMissingVariant   Kind = "missing_variant"
	KindExtraVariant     Kind = "extra_variant"
	KindMissingIndex     Kind = "missing_index"
)

// Finding is a single structural discrepancy between the reference and
// target schemas. Object names the model or enum, Item the field,
// variant, or index tuple when one applies. Message always carries
// enough context to fix the drift without re-deriving it.
type Finding struct {
	Kind       Kind     `yaml:"kind"`
	Severity   Severity `yaml:"severity"`
	Object     string   `yaml:"object"`
	Item       string   `yaml:"item,omitempty"`
	RefLine    int      `yaml:"reference_line,omitempty"`
	TargetLine int      `yaml:"target_line,omitempty"`
	Message    string   `yaml:"message"`
}
