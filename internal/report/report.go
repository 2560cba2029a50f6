// Package report turns a finding sequence into summary counts, a
// pass/fail verdict, and renderable output. It is a pure transformation;
// deciding what to do with the verdict belongs to the caller.
package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/schemadrift/internal/drift"
)

// Summary counts findings by severity. A check passes when it produced
// no critical findings; warnings alone never fail it.
type Summary struct {
	Criticals int  `yaml:"criticals"`
	Warnings  int  `yaml:"warnings"`
	Passed    bool `yaml:"passed"`
}

// Summarize counts the findings and derives the verdict.
func Summarize(findings []drift.Finding) Summary {
	s := Summary{}
	for _, f := range findings {
		switch f.Severity {
		case drift.SeverityCritical:
			s.Criticals++
		case drift.SeverityWarning:
			s.Warnings++
		}
	}
	s.Passed = s.Criticals == 0
	return s
}

// Report pairs the summary with the findings that produced it, in their
// emitted order.
type Report struct {
	Summary  Summary         `yaml:"summary"`
	Findings []drift.Finding `yaml:"findings,omitempty"`
}

// New builds a report from a finding sequence.
func New(findings []drift.Finding) Report {
	return Report{Summary: Summarize(findings), Findings: findings}
}

// YAML renders the report as YAML for machine consumption (CI steps,
// pre-commit hooks).
func (r Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// Write renders the findings as plain text, grouped exactly as emitted:
// one header per model or enum, one indented line per finding with its
// severity and source lines.
func Write(w io.Writer, findings []drift.Finding) error {
	lastObject := ""
	for _, f := range findings {
		if f.Object != lastObject {
			if lastObject != "" {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%s\n", f.Object); err != nil {
				return err
			}
			lastObject = f.Object
		}
		if _, err := fmt.Fprintf(w, "  [%s] %s%s\n", f.Severity, f.Message, lineSuffix(f)); err != nil {
			return err
		}
	}
	return nil
}

func lineSuffix(f drift.Finding) string {
	switch {
	case f.RefLine > 0 && f.TargetLine > 0:
		return fmt.Sprintf(" (reference line %d, target line %d)", f.RefLine, f.TargetLine)
	case f.RefLine > 0:
		return fmt.Sprintf(" (reference line %d)", f.RefLine)
	case f.TargetLine > 0:
		return fmt.Sprintf(" (target line %d)", f.TargetLine)
	}
	return ""
}
