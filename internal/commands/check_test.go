package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/schemadrift/internal/drift"
	"github.com/simonhull/schemadrift/internal/schema"
)

func TestRenderFindingsGroupsByObject(t *testing.T) {
	ref, err := schema.Parse([]byte(`model User {
  id   Int
  name String
}

enum Role {
  ADMIN
  MEMBER
}
`))
	require.NoError(t, err)
	target, err := schema.Parse([]byte(`model User {
  id Int
}

enum Role {
  ADMIN
}
`))
	require.NoError(t, err)

	var buf bytes.Buffer
	renderFindings(&buf, drift.Compare(ref, target))
	out := buf.String()

	userIdx := strings.Index(out, "User")
	roleIdx := strings.Index(out, "Role")
	require.GreaterOrEqual(t, userIdx, 0)
	assert.Greater(t, roleIdx, userIdx)
	assert.Contains(t, out, `field "name" is missing`)
	assert.Contains(t, out, `variant "MEMBER" is missing`)
	assert.Contains(t, out, "reference line 3")
}

func TestLineRefs(t *testing.T) {
	assert.Equal(t, " (reference line 3)", lineRefs(drift.Finding{RefLine: 3}))
	assert.Equal(t, " (target line 7)", lineRefs(drift.Finding{TargetLine: 7}))
	assert.Equal(t, " (reference line 3, target line 7)", lineRefs(drift.Finding{RefLine: 3, TargetLine: 7}))
	assert.Equal(t, "", lineRefs(drift.Finding{}))
}
