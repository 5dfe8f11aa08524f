// Package structmap builds schema entity definitions from annotated Go
// structs. It walks exported fields and their `db` / `schemakit` tags and
// produces a *schema.Table ready to hand to a provider's
// CreateTableIfNotExists. The package is pure reflection over value types;
// it never touches a connection.
//
//	type User struct {
//		ID        int64     `db:"id" schemakit:"primarykey,autoincrement"`
//		Email     string    `db:"email" schemakit:"length:320,unique"`
//		TeamID    *int64    `db:"team_id" schemakit:"references:teams(id),ondelete:cascade"`
//		CreatedAt time.Time `db:"created_at" schemakit:"default:CURRENT_TIMESTAMP"`
//	}
//
//	table, err := structmap.Table(User{})
package structmap

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/shibukawa/schemakit/schema"
)

var (
	ErrNotAStruct       = errors.New("value must be a struct or pointer to struct")
	ErrNoMappedColumns  = errors.New("struct has no mapped columns")
	ErrBadTagOption     = errors.New("malformed schemakit tag option")
	ErrBadReferenceSpec = errors.New("malformed references spec, want table(column)")
)

// Table builds a table definition from the struct type of v. The table name
// is the snake_cased struct name unless v implements TableNamer. Fields with
// `db:"-"` and unexported fields are skipped; anonymous struct fields are
// flattened into the parent.
func Table(v any) (*schema.Table, error) {
	return TableNamed(v, "", "")
}

// TableNamer lets a struct override the derived table name.
type TableNamer interface {
	TableName() string
}

// TableNamed is Table with explicit schema and table names. Empty tableName
// falls back to the TableNamer override, then the snake_cased struct name.
func TableNamed(v any, schemaName, tableName string) (*schema.Table, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrNotAStruct, v)
	}

	if tableName == "" {
		if n, ok := v.(TableNamer); ok {
			tableName = n.TableName()
		} else {
			tableName = toSnakeCase(t.Name())
		}
	}

	columns, err := walkFields(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name(), err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%s: %w", t.Name(), ErrNoMappedColumns)
	}
	return schema.NewTable(schemaName, tableName, columns...), nil
}

func walkFields(t reflect.Type) ([]schema.Column, error) {
	var columns []schema.Column
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous {
			ft := field.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && field.Tag.Get("db") == "" {
				embedded, err := walkFields(ft)
				if err != nil {
					return nil, err
				}
				columns = append(columns, embedded...)
				continue
			}
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "-" {
			continue
		}
		name := dbTag
		if name == "" {
			name = toSnakeCase(field.Name)
		}

		col := schema.NewColumn(name, field.Type)
		col.IsNullable = field.Type.Kind() == reflect.Pointer
		if err := applyOptions(&col, field.Tag.Get("schemakit")); err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// applyOptions parses the comma-separated schemakit tag. Options carrying an
// argument use a colon; the references argument keeps its parenthesized
// column, so commas inside parens do not split.
func applyOptions(col *schema.Column, tag string) error {
	for _, opt := range splitOptions(tag) {
		key, arg, _ := strings.Cut(opt, ":")
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "":
		case "primarykey", "pk":
			col.IsPrimaryKey = true
			col.IsNullable = false
		case "autoincrement", "identity":
			col.IsAutoIncrement = true
		case "nullable":
			col.IsNullable = true
		case "notnull":
			col.IsNullable = false
		case "unique":
			col.IsUnique = true
		case "indexed", "index":
			col.IsIndexed = true
		case "unicode":
			col.IsUnicode = true
		case "fixed":
			col.IsFixedLength = true
		case "length":
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%w: length %q", ErrBadTagOption, arg)
			}
			col.Length = &n
		case "precision":
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%w: precision %q", ErrBadTagOption, arg)
			}
			col.Precision = &n
		case "scale":
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%w: scale %q", ErrBadTagOption, arg)
			}
			col.Scale = &n
		case "default":
			col.DefaultExpression = arg
		case "check":
			col.CheckExpression = arg
		case "references":
			table, column, err := parseReference(arg)
			if err != nil {
				return err
			}
			col.IsForeignKey = true
			col.ReferencedTableName = table
			col.ReferencedColumnName = column
		case "ondelete":
			col.OnDelete = schema.ParseForeignKeyAction(arg)
		case "onupdate":
			col.OnUpdate = schema.ParseForeignKeyAction(arg)
		case "provider", "providers":
			col.SetProviderDataTypes(arg)
		default:
			return fmt.Errorf("%w: %q", ErrBadTagOption, opt)
		}
	}
	return nil
}

// splitOptions splits on top-level commas only; "provider:{a:x,b:y}" and
// "references:teams(id)" stay whole.
func splitOptions(tag string) []string {
	var opts []string
	depth := 0
	start := 0
	for i := 0; i < len(tag); i++ {
		switch tag[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case ',':
			if depth == 0 {
				opts = append(opts, strings.TrimSpace(tag[start:i]))
				start = i + 1
			}
		}
	}
	opts = append(opts, strings.TrimSpace(tag[start:]))
	return opts
}

func parseReference(spec string) (table, column string, err error) {
	open := strings.IndexByte(spec, '(')
	if open <= 0 || !strings.HasSuffix(spec, ")") {
		return "", "", fmt.Errorf("%w: %q", ErrBadReferenceSpec, spec)
	}
	table = strings.TrimSpace(spec[:open])
	column = strings.TrimSpace(spec[open+1 : len(spec)-1])
	if table == "" || column == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadReferenceSpec, spec)
	}
	return table, column, nil
}

// toSnakeCase converts an exported Go identifier to snake_case, keeping
// acronym runs intact: "UserID" -> "user_id", "HTTPRoute" -> "http_route".
func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevIsLower := unicode.IsLower(runes[i-1])
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
