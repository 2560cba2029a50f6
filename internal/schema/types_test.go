package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Int", "Int"},
		{"Integer", "Int"},
		{"Text", "String"},
		{"Bool", "Boolean"},
		{"Double", "Float"},
		{"Timestamp", "DateTime"},
		{"Unknown", "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeType(tt.in), "NormalizeType(%q)", tt.in)
	}
}
