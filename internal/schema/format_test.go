package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCanonicalLayout(t *testing.T) {
	src := `model User {
  id    Int      @id
  tags  String[]
  role  Role     @default(MEMBER)

  @@unique([id, role])
}

enum Role {
  ADMIN
  MEMBER
}
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)

	want := `model User {
  id Int @id
  tags String[]
  role Role @default(MEMBER)
  @@unique([id, role])
}

enum Role {
  ADMIN
  MEMBER
}
`
	assert.Equal(t, want, doc.Format())
}

func TestFormatPreservesInterleaving(t *testing.T) {
	src := `enum First {
  A
}

model Second {
  id Int
}

enum Third {
  B
}
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)

	formatted := doc.Format()
	assert.Less(t, strings.Index(formatted, "enum First"), strings.Index(formatted, "model Second"))
	assert.Less(t, strings.Index(formatted, "model Second"), strings.Index(formatted, "enum Third"))
	assert.Greater(t, strings.Index(formatted, "enum Third"), -1)
}

func TestFormatRoundTrip(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "blog.schema"))
	require.NoError(t, err)

	doc, err := Parse(src)
	require.NoError(t, err)

	canonical := doc.Format()
	reparsed, err := Parse([]byte(canonical))
	require.NoError(t, err)

	// Formatting is a fixpoint: the canonical text of the reparsed
	// document is identical to the first canonical rendering.
	assert.Equal(t, canonical, reparsed.Format())

	// The reparse is structurally identical too (source lines aside).
	require.Len(t, reparsed.Models, len(doc.Models))
	require.Len(t, reparsed.Enums, len(doc.Enums))
	for i, m := range doc.Models {
		assert.Equal(t, m.Name, reparsed.Models[i].Name)
		require.Len(t, reparsed.Models[i].Fields, len(m.Fields))
		for j, f := range m.Fields {
			got := reparsed.Models[i].Fields[j]
			assert.Equal(t, f.Name, got.Name)
			assert.Equal(t, f.Type, got.Type)
			assert.Equal(t, f.Attrs, got.Attrs)
		}
	}
}
