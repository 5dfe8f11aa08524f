package schemakit

import "strings"

// ProviderType identifies a supported database engine.
// It is a dispatch/capability tag only and never represents query results.
type ProviderType string

const (
	ProviderSqlite     ProviderType = "sqlite"
	ProviderSqlServer  ProviderType = "sqlserver"
	ProviderMySQL      ProviderType = "mysql"
	ProviderPostgreSQL ProviderType = "postgresql"
	ProviderOther      ProviderType = "other"
)

// ParseProviderType normalizes a provider token to a ProviderType.
// Unrecognized tokens yield ProviderOther.
func ParseProviderType(token string) ProviderType {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "sqlite", "sqlite3":
		return ProviderSqlite
	case "sqlserver", "mssql", "sqlserver2019", "localdb":
		return ProviderSqlServer
	case "mysql", "mariadb":
		return ProviderMySQL
	case "postgresql", "postgres", "pgx", "pg":
		return ProviderPostgreSQL
	default:
		return ProviderOther
	}
}

// ParseProviderDataTypes parses a provider data type string of the form
// "{postgresql:jsonb,mysql:decimal(10,2)}". Brace/bracket wrappers are
// optional. Entries are delimited by commas or semicolons at the top nesting
// level only, so parentheses and brackets inside a single type spec (for
// example "decimal(10,2)") never split an entry. Entries with unrecognized
// provider tokens are skipped silently.
func ParseProviderDataTypes(s string) map[ProviderType]string {
	result := make(map[ProviderType]string)

	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	for _, entry := range splitTopLevel(s) {
		provider, sqlType, found := strings.Cut(entry, ":")
		if !found {
			continue
		}

		providerType := ParseProviderType(provider)
		if providerType == ProviderOther {
			continue
		}

		sqlType = strings.TrimSpace(sqlType)
		if sqlType == "" {
			continue
		}

		result[providerType] = sqlType
	}

	return result
}

// splitTopLevel splits s on commas and semicolons that are not nested inside
// parentheses or brackets.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)

	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',', ';':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	if rest := strings.TrimSpace(s[start:]); rest != "" {
		parts = append(parts, rest)
	}

	return parts
}
