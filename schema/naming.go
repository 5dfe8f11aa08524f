package schema

import (
	"strings"
	"unicode"
)

// Deterministic name generation for constraints and indexes. Identical
// (table, columns) input always yields the identical name, across calls and
// across process runs; callers rely on that for idempotent existence checks
// when no explicit name was supplied.

// GeneratePrimaryKeyName returns "pk_{table}_{col}[_{col}...]".
func GeneratePrimaryKeyName(tableName string, columnNames ...string) string {
	return generateName("pk", tableName, columnNames...)
}

// GenerateCheckConstraintName returns "ck_{table}_{col}".
func GenerateCheckConstraintName(tableName string, columnNames ...string) string {
	return generateName("ck", tableName, columnNames...)
}

// GenerateDefaultConstraintName returns "df_{table}_{col}".
func GenerateDefaultConstraintName(tableName, columnName string) string {
	return generateName("df", tableName, columnName)
}

// GenerateUniqueConstraintName returns "uc_{table}_{col}[_{col}...]".
func GenerateUniqueConstraintName(tableName string, columnNames ...string) string {
	return generateName("uc", tableName, columnNames...)
}

// GenerateIndexName returns "ix_{table}_{col}[_{col}...]".
func GenerateIndexName(tableName string, columnNames ...string) string {
	return generateName("ix", tableName, columnNames...)
}

// GenerateForeignKeyName returns
// "fk_{table}_{cols}_{referencedTable}_{referencedCols}".
func GenerateForeignKeyName(tableName string, columnNames []string, referencedTableName string, referencedColumnNames []string) string {
	parts := make([]string, 0, len(columnNames)+len(referencedColumnNames)+3)
	parts = append(parts, "fk", tableName)
	parts = append(parts, columnNames...)
	parts = append(parts, referencedTableName)
	parts = append(parts, referencedColumnNames...)
	return joinNameParts(parts)
}

func generateName(prefix, tableName string, columnNames ...string) string {
	parts := make([]string, 0, len(columnNames)+2)
	parts = append(parts, prefix, tableName)
	parts = append(parts, columnNames...)
	return joinNameParts(parts)
}

func joinNameParts(parts []string) string {
	normalized := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := normalizeName(p); n != "" {
			normalized = append(normalized, n)
		}
	}
	return strings.Join(normalized, "_")
}

// normalizeName lowercases an identifier and collapses every run of
// non-alphanumeric characters to a single underscore.
func normalizeName(s string) string {
	var (
		b        strings.Builder
		lastWasU bool
	)

	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastWasU = false
		default:
			if !lastWasU && b.Len() > 0 {
				b.WriteByte('_')
				lastWasU = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "_")
}
