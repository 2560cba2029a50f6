package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/schemadrift/internal/drift"
	"github.com/simonhull/schemadrift/internal/schema"
)

func compareSources(t *testing.T, ref, target string) []drift.Finding {
	t.Helper()
	refDoc, err := schema.Parse([]byte(ref))
	require.NoError(t, err)
	targetDoc, err := schema.Parse([]byte(target))
	require.NoError(t, err)
	return drift.Compare(refDoc, targetDoc)
}

func TestSummarize(t *testing.T) {
	findings := []drift.Finding{
		{Severity: drift.SeverityCritical},
		{Severity: drift.SeverityCritical},
		{Severity: drift.SeverityWarning},
	}

	s := Summarize(findings)
	assert.Equal(t, 2, s.Criticals)
	assert.Equal(t, 1, s.Warnings)
	assert.False(t, s.Passed)
}

func TestSummarizeWarningsOnlyStillPasses(t *testing.T) {
	findings := []drift.Finding{
		{Severity: drift.SeverityWarning},
		{Severity: drift.SeverityWarning},
	}

	s := Summarize(findings)
	assert.Equal(t, 0, s.Criticals)
	assert.Equal(t, 2, s.Warnings)
	assert.True(t, s.Passed)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.Passed)
	assert.Equal(t, 0, s.Criticals)
	assert.Equal(t, 0, s.Warnings)
}

func TestWriteGroupsFindings(t *testing.T) {
	findings := compareSources(t, `model User {
  id   Int
  name String
}

enum Role {
  ADMIN
  MEMBER
}
`, `model User {
  id   Int
  nick String
}

enum Role {
  ADMIN
}
`)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, findings))
	out := buf.String()

	// One header per group, reference order, critical lines first.
	userIdx := strings.Index(out, "User\n")
	roleIdx := strings.Index(out, "Role\n")
	require.GreaterOrEqual(t, userIdx, 0)
	require.Greater(t, roleIdx, userIdx)

	assert.Contains(t, out, `[critical] field "name" is missing`)
	assert.Contains(t, out, `[warning] field "nick" exists only`)
	assert.Contains(t, out, `[critical] variant "MEMBER" is missing`)
	assert.Less(t, strings.Index(out, "[critical] field"), strings.Index(out, "[warning] field"))
	assert.Contains(t, out, "(reference line 3)")
}

func TestReportYAML(t *testing.T) {
	findings := compareSources(t,
		"model A {\n  id Int\n  name String\n}\n",
		"model A {\n  id Int\n}\n")

	data, err := New(findings).YAML()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "criticals: 1")
	assert.Contains(t, out, "passed: false")
	assert.Contains(t, out, "kind: missing_field")
	assert.Contains(t, out, "severity: critical")
	assert.Contains(t, out, "object: A")
	assert.Contains(t, out, "item: name")
}

func TestReportYAMLEmptyFindings(t *testing.T) {
	data, err := New(nil).YAML()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "passed: true")
	assert.NotContains(t, out, "findings:")
}
