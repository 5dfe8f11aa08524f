package methods

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestStripViewPrologue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain create view",
			input:    "CREATE VIEW v1 AS SELECT id FROM users",
			expected: "SELECT id FROM users",
		},
		{
			name:     "lowercase keywords",
			input:    "create view v1 as select id from users",
			expected: "select id from users",
		},
		{
			name:     "body only passes through",
			input:    "SELECT id FROM users",
			expected: "SELECT id FROM users",
		},
		{
			name:     "leading whitespace",
			input:    "  \n CREATE VIEW v1 AS SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "column list with parens",
			input:    "CREATE VIEW v1 (a, b) AS SELECT x, y FROM t",
			expected: "SELECT x, y FROM t",
		},
		{
			name:     "quoted identifier containing as",
			input:    `CREATE VIEW "as view" AS SELECT 1`,
			expected: "SELECT 1",
		},
		{
			name:     "bracket quoted identifier",
			input:    "CREATE VIEW [weird as name] AS SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "string literal containing as before boundary",
			input:    "CREATE VIEW v1 AS SELECT 'as' AS label",
			expected: "SELECT 'as' AS label",
		},
		{
			name:     "sqlserver create or alter shape",
			input:    "CREATE   VIEW dbo.v1\nAS\nSELECT id FROM dbo.users",
			expected: "SELECT id FROM dbo.users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := StripViewPrologue(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, body)
		})
	}
}

func TestStripViewPrologueErrors(t *testing.T) {
	_, err := StripViewPrologue("")
	assert.IsError(t, err, ErrDefinitionRequired)

	_, err = StripViewPrologue("   ")
	assert.IsError(t, err, ErrDefinitionRequired)

	// CREATE prefix but no locatable AS boundary.
	_, err = StripViewPrologue("CREATE VIEW broken")
	assert.IsError(t, err, ErrMalformedViewDefinition)

	_, err = StripViewPrologue("CREATE VIEW v1 AS   ")
	assert.IsError(t, err, ErrMalformedViewDefinition)
}
