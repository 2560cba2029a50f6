package commands

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/simonhull/schemadrift/internal/drift"
	"github.com/simonhull/schemadrift/internal/report"
	"github.com/simonhull/schemadrift/internal/schema"
	"github.com/spf13/cobra"
)

var (
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	objectStyle   = lipgloss.NewStyle().Bold(true)
	lineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// CheckCmd creates and returns the 'check' command.
func CheckCmd() *cobra.Command {
	var format string
	var failOnWarning, textDiff bool

	cmd := &cobra.Command{
		Use:   "check <reference> <target>",
		Short: "Compare two schema files and report structural drift",
		Long: `Compare a reference schema against a target schema and report every
structural discrepancy: missing or extra models, fields, enums, variants
and indexes, plus type, modifier, and relation mismatches.

Entities are matched by name, never by position, so reordering
declarations is never drift. Critical findings fail the check; warnings
are informational unless --fail-on-warning is set.

Exit code is 1 when either file fails to parse or the check fails.

Examples:
  schemadrift check schema.ref schema.target
  schemadrift check --format yaml dev.schema deploy.schema
  schemadrift check --text-diff dev.schema deploy.schema`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if !cmd.Flags().Changed("format") && cfg.Format != "" {
				format = cfg.Format
			}
			if !cmd.Flags().Changed("fail-on-warning") && cfg.FailOnWarning {
				failOnWarning = true
			}
			if format != "text" && format != "yaml" {
				output.Error(fmt.Sprintf("invalid format %q (valid: text, yaml)", format))
				os.Exit(1)
			}

			refSrc, err := os.ReadFile(args[0])
			if err != nil {
				output.Error(fmt.Sprintf("Failed to read reference schema: %v", err))
				os.Exit(1)
			}
			tgtSrc, err := os.ReadFile(args[1])
			if err != nil {
				output.Error(fmt.Sprintf("Failed to read target schema: %v", err))
				os.Exit(1)
			}

			output.Verbose(fmt.Sprintf("Comparing %s (reference) against %s (target)", args[0], args[1]))

			// The two parses are independent; running them concurrently
			// is a latency optimization only.
			var (
				wg             sync.WaitGroup
				refDoc, tgtDoc *schema.Document
				refErr, tgtErr error
			)
			wg.Add(2)
			go func() {
				defer wg.Done()
				refDoc, refErr = schema.Parse(refSrc)
			}()
			go func() {
				defer wg.Done()
				tgtDoc, tgtErr = schema.Parse(tgtSrc)
			}()
			wg.Wait()

			if refErr != nil {
				output.Error(fmt.Sprintf("%s: %v", args[0], refErr))
			}
			if tgtErr != nil {
				output.Error(fmt.Sprintf("%s: %v", args[1], tgtErr))
			}
			if refErr != nil || tgtErr != nil {
				os.Exit(1)
			}

			findings := drift.Compare(refDoc, tgtDoc, drift.WithAliases(cfg.Aliases))
			summary := report.Summarize(findings)
			w := cmd.OutOrStdout()

			switch format {
			case "yaml":
				data, err := report.New(findings).YAML()
				if err != nil {
					output.Error(fmt.Sprintf("Failed to render report: %v", err))
					os.Exit(1)
				}
				fmt.Fprint(w, string(data))
			default:
				renderFindings(w, findings)
				renderSummary(summary)
			}

			if textDiff {
				renderTextDiff(w, refDoc, tgtDoc)
			}

			if !summary.Passed || (failOnWarning && summary.Warnings > 0) {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Report format: text or yaml")
	cmd.Flags().BoolVar(&failOnWarning, "fail-on-warning", false, "Exit non-zero when warnings are found")
	cmd.Flags().BoolVar(&textDiff, "text-diff", false, "Also show a diff of the canonicalized schema texts")

	return cmd
}

// renderFindings prints findings grouped by model/enum in their emitted
// order, with severity-colored badges. Color lives here, not in the
// core: report.Write produces the plain rendering.
func renderFindings(w io.Writer, findings []drift.Finding) {
	lastObject := ""
	for _, f := range findings {
		if f.Object != lastObject {
			if lastObject != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, objectStyle.Render(f.Object))
			lastObject = f.Object
		}

		badge := warningStyle.Render("warning ")
		if f.Severity == drift.SeverityCritical {
			badge = criticalStyle.Render("critical")
		}
		fmt.Fprintf(w, "  %s %s%s\n", badge, f.Message, lineStyle.Render(lineRefs(f)))
	}
	if lastObject != "" {
		fmt.Fprintln(w)
	}
}

func lineRefs(f drift.Finding) string {
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

func renderSummary(s report.Summary) {
	switch {
	case s.Criticals == 0 && s.Warnings == 0:
		output.Success("Schemas are structurally compatible")
	case s.Passed:
		output.Success(fmt.Sprintf("Check passed with %d warning(s)", s.Warnings))
	default:
		output.Error(fmt.Sprintf("Check failed: %d critical finding(s), %d warning(s)", s.Criticals, s.Warnings))
	}
}

// renderTextDiff prints a character diff of the two canonical
// serializations. Useful as a quick visual companion to the findings.
func renderTextDiff(w io.Writer, ref, target *schema.Document) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(ref.Format(), target.Format(), false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	fmt.Fprintln(w, dmp.DiffPrettyText(diffs))
}
