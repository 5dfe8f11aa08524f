package schemakit

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseProviderType(t *testing.T) {
	tests := []struct {
		token    string
		expected ProviderType
	}{
		{"sqlite", ProviderSqlite},
		{"sqlite3", ProviderSqlite},
		{"SQLite3", ProviderSqlite},
		{"sqlserver", ProviderSqlServer},
		{"mssql", ProviderSqlServer},
		{"localdb", ProviderSqlServer},
		{"mysql", ProviderMySQL},
		{"mariadb", ProviderMySQL},
		{"postgresql", ProviderPostgreSQL},
		{"postgres", ProviderPostgreSQL},
		{"pgx", ProviderPostgreSQL},
		{" Postgres ", ProviderPostgreSQL},
		{"oracle", ProviderOther},
		{"", ProviderOther},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseProviderType(tt.token))
		})
	}
}

func TestParseProviderDataTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[ProviderType]string
	}{
		{
			name:  "braced list",
			input: "{postgresql:jsonb,sqlserver:nvarchar(max)}",
			expected: map[ProviderType]string{
				ProviderPostgreSQL: "jsonb",
				ProviderSqlServer:  "nvarchar(max)",
			},
		},
		{
			name:  "nested parens do not split entries",
			input: "{mysql:decimal(10,2),postgresql:numeric(10,2)}",
			expected: map[ProviderType]string{
				ProviderMySQL:      "decimal(10,2)",
				ProviderPostgreSQL: "numeric(10,2)",
			},
		},
		{
			name:  "no braces, semicolon delimiters",
			input: "sqlite:text; mysql:varchar(255)",
			expected: map[ProviderType]string{
				ProviderSqlite: "text",
				ProviderMySQL:  "varchar(255)",
			},
		},
		{
			name:  "unknown providers skipped",
			input: "{oracle:clob,postgresql:text}",
			expected: map[ProviderType]string{
				ProviderPostgreSQL: "text",
			},
		},
		{
			name:     "empty type skipped",
			input:    "{postgresql:}",
			expected: map[ProviderType]string{},
		},
		{
			name:     "empty input",
			input:    "",
			expected: map[ProviderType]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseProviderDataTypes(tt.input))
		})
	}
}
