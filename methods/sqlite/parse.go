package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode"

	"github.com/shibukawa/schemakit/schema"
)

// SQLite keeps the verbatim CREATE TABLE text in sqlite_master and exposes
// no catalog view for check constraints, constraint names, or column
// defaults' origins. This file extracts those from the stored text.

// tableSQL returns the stored CREATE TABLE statement, or "" when the table
// does not exist.
func (m *Methods) tableSQL(ctx context.Context, q Querier, tableName string) (string, error) {
	var stored string
	row := q.QueryRowContext(ctx,
		`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, tableName)
	if err := row.Scan(&stored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return stored, nil
}

// tableDefinition is the parsed shape of a stored CREATE TABLE statement:
// the top-level comma-separated definitions inside the outer parentheses.
type tableDefinition struct {
	hasAutoIncrement bool
	pkName           string
	checks           []schema.CheckConstraint
	fkNames          []string
}

func parseTableDefinition(stored, tableName string) tableDefinition {
	var def tableDefinition
	def.hasAutoIncrement = containsKeyword(stored, "AUTOINCREMENT")

	body := definitionBody(stored)
	for _, item := range splitDefinitions(body) {
		tokens := tokenize(item)
		if len(tokens) == 0 {
			continue
		}

		name := ""
		rest := tokens
		if strings.EqualFold(tokens[0], "CONSTRAINT") && len(tokens) > 1 {
			name = unquoteIdent(tokens[1])
			rest = tokens[2:]
		}

		columnName := ""
		if name == "" && !isConstraintLead(tokens[0]) {
			columnName = unquoteIdent(tokens[0])
		}

		for i, tok := range rest {
			switch {
			case strings.EqualFold(tok, "PRIMARY") && name != "":
				def.pkName = name
			case strings.EqualFold(tok, "FOREIGN") && name != "":
				def.fkNames = append(def.fkNames, name)
			case strings.EqualFold(tok, "CHECK"):
				expr := parenGroup(rest[i+1:])
				if expr == "" {
					continue
				}
				ckName := name
				if ckName == "" {
					ckName = schema.GenerateCheckConstraintName(tableName, columnName)
				}
				def.checks = append(def.checks, schema.CheckConstraint{
					TableName:      tableName,
					ColumnName:     columnName,
					ConstraintName: ckName,
					Expression:     expr,
				})
			}
		}
	}
	return def
}

// definitionBody extracts the text between the outer parentheses of a
// CREATE TABLE statement.
func definitionBody(stored string) string {
	depth := 0
	start := -1
	for i := 0; i < len(stored); i++ {
		switch next := skipQuoted(stored, i); {
		case next > i:
			i = next - 1
		case stored[i] == '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case stored[i] == ')':
			depth--
			if depth == 0 && start >= 0 {
				return stored[start:i]
			}
		}
	}
	return ""
}

// splitDefinitions splits the definition body on top-level commas.
func splitDefinitions(body string) []string {
	var (
		items []string
		depth int
		start int
	)
	for i := 0; i < len(body); i++ {
		switch next := skipQuoted(body, i); {
		case next > i:
			i = next - 1
		case body[i] == '(':
			depth++
		case body[i] == ')':
			depth--
		case body[i] == ',' && depth == 0:
			items = append(items, strings.TrimSpace(body[start:i]))
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(body[start:]); tail != "" {
		items = append(items, tail)
	}
	return items
}

// tokenize splits a definition into identifier/keyword/paren-group tokens.
// Parenthesized groups are kept as single tokens, quotes intact.
func tokenize(item string) []string {
	var tokens []string
	i := 0
	for i < len(item) {
		c := item[i]
		switch {
		case unicode.IsSpace(rune(c)):
			i++
		case c == '(':
			depth := 0
			start := i
			for ; i < len(item); i++ {
				if next := skipQuoted(item, i); next > i {
					i = next - 1
					continue
				}
				if item[i] == '(' {
					depth++
				} else if item[i] == ')' {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
			}
			tokens = append(tokens, item[start:i])
		case c == '"' || c == '\'' || c == '`' || c == '[':
			next := skipQuoted(item, i)
			tokens = append(tokens, item[i:next])
			i = next
		default:
			start := i
			for i < len(item) && !unicode.IsSpace(rune(item[i])) && item[i] != '(' && item[i] != ',' {
				i++
			}
			tokens = append(tokens, item[start:i])
		}
	}
	return tokens
}

// parenGroup returns the inner expression of the first parenthesized token.
func parenGroup(tokens []string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "(") && strings.HasSuffix(tok, ")") {
			return strings.TrimSpace(tok[1 : len(tok)-1])
		}
	}
	return ""
}

// skipQuoted returns the index just past a quoted region starting at i, or i
// when position i is not a quote opener. Doubled closing characters escape.
func skipQuoted(s string, i int) int {
	var close byte
	switch s[i] {
	case '\'', '"', '`':
		close = s[i]
	case '[':
		close = ']'
	default:
		return i
	}
	for j := i + 1; j < len(s); j++ {
		if s[j] != close {
			continue
		}
		if j+1 < len(s) && s[j+1] == close {
			j++
			continue
		}
		return j + 1
	}
	return len(s)
}

func unquoteIdent(tok string) string {
	if len(tok) >= 2 {
		switch {
		case tok[0] == '"' && tok[len(tok)-1] == '"':
			return strings.ReplaceAll(tok[1:len(tok)-1], `""`, `"`)
		case tok[0] == '`' && tok[len(tok)-1] == '`':
			return strings.ReplaceAll(tok[1:len(tok)-1], "``", "`")
		case tok[0] == '[' && tok[len(tok)-1] == ']':
			return tok[1 : len(tok)-1]
		}
	}
	return tok
}

func isConstraintLead(tok string) bool {
	switch strings.ToUpper(tok) {
	case "PRIMARY", "UNIQUE", "CHECK", "FOREIGN", "CONSTRAINT":
		return true
	}
	return false
}

// containsKeyword reports whether the keyword appears outside quoted text.
func containsKeyword(s, keyword string) bool {
	upper := strings.ToUpper(s)
	keyword = strings.ToUpper(keyword)
	for i := 0; i < len(upper); i++ {
		if next := skipQuoted(upper, i); next > i {
			i = next - 1
			continue
		}
		if strings.HasPrefix(upper[i:], keyword) {
			before := i == 0 || !isWordChar(upper[i-1])
			afterIdx := i + len(keyword)
			after := afterIdx >= len(upper) || !isWordChar(upper[afterIdx])
			if before && after {
				return true
			}
		}
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
