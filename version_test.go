package schemakit

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Version
	}{
		{
			name:     "postgres banner",
			input:    "PostgreSQL 16.2 on x86_64-pc-linux-gnu, compiled by gcc",
			expected: Version{Major: 16, Minor: 2, Text: "16.2"},
		},
		{
			name:     "mysql banner with suffix",
			input:    "8.0.36-debian",
			expected: Version{Major: 8, Minor: 0, Patch: 36, Text: "8.0.36"},
		},
		{
			name:     "sqlite bare version",
			input:    "3.45.1",
			expected: Version{Major: 3, Minor: 45, Patch: 1, Text: "3.45.1"},
		},
		{
			name:     "sqlserver product version with extra component",
			input:    "16.0.1000.6",
			expected: Version{Major: 16, Minor: 0, Patch: 1000, Text: "16.0.1000.6"},
		},
		{
			name:     "major only",
			input:    "version 9",
			expected: Version{Major: 9, Text: "9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ExtractVersion(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestExtractVersionNotFound(t *testing.T) {
	_, err := ExtractVersion("no digits here")
	assert.IsError(t, err, ErrVersionNotFound)

	_, err = ExtractVersion("")
	assert.IsError(t, err, ErrVersionNotFound)
}

func TestVersionAtLeast(t *testing.T) {
	v := Version{Major: 8, Minor: 0, Patch: 16}

	assert.True(t, v.AtLeast(8, 0, 16))
	assert.True(t, v.AtLeast(8, 0, 15))
	assert.True(t, v.AtLeast(7, 9, 99))
	assert.False(t, v.AtLeast(8, 0, 17))
	assert.False(t, v.AtLeast(8, 1, 0))
	assert.False(t, v.AtLeast(9, 0, 0))
}
