package methods

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/datatypes"
	"github.com/shibukawa/schemakit/schema"
	"github.com/shibukawa/schemakit/typemap"
)

// Base carries the pieces every provider implementation shares: identifier
// quoting, the type map, the data type registry, wildcard filtering and the
// ANSI-shaped DDL clause builders. Provider packages embed it and add their
// engine-specific catalog queries on top.
type Base struct {
	Provider   schemakit.ProviderType
	Types      typemap.TypeMap
	Registry   *datatypes.Registry
	QuoteOpen  string
	QuoteClose string
}

func (b *Base) ProviderType() schemakit.ProviderType { return b.Provider }
func (b *Base) TypeMap() typemap.TypeMap             { return b.Types }

func (b *Base) AvailableDataTypes(includeAdvanced bool) []*datatypes.DataTypeInfo {
	return b.Registry.AvailableDataTypes(includeAdvanced)
}

func (b *Base) DataTypeByName(name string) *datatypes.DataTypeInfo {
	return b.Registry.DataTypeByName(name)
}

func (b *Base) DataTypesForCategory(category datatypes.Category) []*datatypes.DataTypeInfo {
	return b.Registry.DataTypesForCategory(category)
}

func (b *Base) AvailableCategories() []datatypes.Category {
	return b.Registry.AvailableCategories()
}

// QuoteName quotes a single identifier with the engine's quoting characters.
func (b *Base) QuoteName(name string) string {
	escaped := strings.ReplaceAll(name, b.QuoteClose, b.QuoteClose+b.QuoteClose)
	return b.QuoteOpen + escaped + b.QuoteClose
}

// Qualified renders an optionally schema-qualified quoted identifier.
func (b *Base) Qualified(schemaName, name string) string {
	if schemaName == "" {
		return b.QuoteName(name)
	}
	return b.QuoteName(schemaName) + "." + b.QuoteName(name)
}

// ColumnTypeSQL resolves a column's native type: an explicit per-provider
// type string wins, otherwise the Go type is mapped through the type map.
func (b *Base) ColumnTypeSQL(col *schema.Column) (string, error) {
	if explicit := col.ProviderDataType(b.Provider); explicit != "" {
		return explicit, nil
	}

	gd := &typemap.GoTypeDescriptor{
		Type:          col.DataType,
		Length:        col.Length,
		Precision:     col.Precision,
		Scale:         col.Scale,
		IsUnicode:     col.IsUnicode,
		IsFixedLength: col.IsFixedLength,
	}

	sd, ok := b.Types.SQLType(gd)
	if !ok {
		return "", fmt.Errorf("%w: column %q (%v)", ErrNoTypeMapping, col.ColumnName, col.DataType)
	}
	return sd.SQLTypeName, nil
}

// OrderedColumnList renders "col1 ASC, col2 DESC" (or just the names).
func (b *Base) OrderedColumnList(columns []schema.OrderedColumn, withOrder bool) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = b.QuoteName(c.ColumnName)
		if withOrder && c.Order == schema.Descending {
			parts[i] += " DESC"
		}
	}
	return strings.Join(parts, ", ")
}

// PrimaryKeyClause renders "CONSTRAINT name PRIMARY KEY (cols)".
func (b *Base) PrimaryKeyClause(pk *schema.PrimaryKeyConstraint) string {
	return fmt.Sprintf("CONSTRAINT %s PRIMARY KEY (%s)",
		b.QuoteName(pk.ConstraintName), b.OrderedColumnList(pk.Columns, false))
}

// UniqueClause renders "CONSTRAINT name UNIQUE (cols)".
func (b *Base) UniqueClause(uc *schema.UniqueConstraint) string {
	return fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)",
		b.QuoteName(uc.ConstraintName), b.OrderedColumnList(uc.Columns, false))
}

// CheckClause renders "CONSTRAINT name CHECK (expr)".
func (b *Base) CheckClause(cc *schema.CheckConstraint) string {
	return fmt.Sprintf("CONSTRAINT %s CHECK (%s)",
		b.QuoteName(cc.ConstraintName), cc.Expression)
}

// ForeignKeyClause renders the full REFERENCES clause with actions.
func (b *Base) ForeignKeyClause(fk *schema.ForeignKeyConstraint) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		b.QuoteName(fk.ConstraintName),
		b.OrderedColumnList(fk.SourceColumns, false),
		b.Qualified(fk.ReferencedSchemaName, fk.ReferencedTableName),
		b.OrderedColumnList(fk.ReferencedColumns, false))
	if fk.OnDelete != "" && fk.OnDelete != schema.ActionNoAction {
		fmt.Fprintf(&sb, " ON DELETE %s", fk.OnDelete)
	}
	if fk.OnUpdate != "" && fk.OnUpdate != schema.ActionNoAction {
		fmt.Fprintf(&sb, " ON UPDATE %s", fk.OnUpdate)
	}
	return sb.String()
}

// Require fails with the given sentinel when a required identifier is blank.
func Require(value string, sentinel error) error {
	if strings.TrimSpace(value) == "" {
		return sentinel
	}
	return nil
}

// MatchesFilter matches a name against a "*"/"?" wildcard filter,
// case-insensitively. An empty filter matches everything.
func MatchesFilter(name, filter string) bool {
	if filter == "" {
		return true
	}
	ok, err := filepath.Match(strings.ToLower(filter), strings.ToLower(name))
	return err == nil && ok
}

// FilterNames keeps the names matching the filter, sorted.
func FilterNames(names []string, filter string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if MatchesFilter(n, filter) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// FetchStrings runs a single-column query and collects the values.
func FetchStrings(ctx context.Context, q Querier, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FetchBool runs a single-value existence query (COUNT or EXISTS shaped).
func FetchBool(ctx context.Context, q Querier, query string, args ...any) (bool, error) {
	var n int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// QueryVersion runs a version banner query and parses the result.
func QueryVersion(ctx context.Context, q Querier, query string) (schemakit.Version, error) {
	var banner string
	if err := q.QueryRowContext(ctx, query).Scan(&banner); err != nil {
		return schemakit.Version{}, err
	}
	return schemakit.ExtractVersion(banner)
}

// NormalizeTable reconciles a table definition before DDL generation:
// column-level flags (IsPrimaryKey, IsUnique, IsIndexed, check/default
// expressions, denormalized foreign key fields) are folded into table-level
// constraint objects with deterministic generated names. An explicit
// table-level constraint covering the same column wins over the column-level
// shorthand, keeping the two representations consistent.
func NormalizeTable(t *schema.Table) *schema.Table {
	n := *t
	n.Columns = append([]schema.Column(nil), t.Columns...)
	n.CheckConstraints = append([]schema.CheckConstraint(nil), t.CheckConstraints...)
	n.DefaultConstraints = append([]schema.DefaultConstraint(nil), t.DefaultConstraints...)
	n.UniqueConstraints = append([]schema.UniqueConstraint(nil), t.UniqueConstraints...)
	n.ForeignKeyConstraints = append([]schema.ForeignKeyConstraint(nil), t.ForeignKeyConstraints...)
	n.Indexes = append([]schema.Index(nil), t.Indexes...)

	var pkColumns []schema.OrderedColumn
	for i := range n.Columns {
		col := &n.Columns[i]

		if col.IsPrimaryKey {
			pkColumns = append(pkColumns, schema.Asc(col.ColumnName))
		}
		if col.IsUnique && !hasUniqueOn(n.UniqueConstraints, col.ColumnName) {
			n.UniqueConstraints = append(n.UniqueConstraints,
				*schema.NewUniqueConstraint(n.SchemaName, n.TableName, "", schema.Asc(col.ColumnName)))
		}
		if col.IsIndexed && !hasIndexOn(n.Indexes, col.ColumnName) {
			n.Indexes = append(n.Indexes,
				*schema.NewIndex(n.SchemaName, n.TableName, "", schema.Asc(col.ColumnName)))
		}
		if col.CheckExpression != "" && !hasCheckOn(n.CheckConstraints, col.ColumnName) {
			n.CheckConstraints = append(n.CheckConstraints,
				*schema.NewCheckConstraint(n.SchemaName, n.TableName, col.ColumnName, "", col.CheckExpression))
		}
		if col.DefaultExpression != "" && !hasDefaultOn(n.DefaultConstraints, col.ColumnName) {
			n.DefaultConstraints = append(n.DefaultConstraints,
				*schema.NewDefaultConstraint(n.SchemaName, n.TableName, col.ColumnName, "", col.DefaultExpression))
		}
		if col.IsForeignKey && col.ReferencedTableName != "" && !hasForeignKeyOn(n.ForeignKeyConstraints, col.ColumnName) {
			fk := schema.NewForeignKeyConstraint(n.SchemaName, n.TableName, "",
				[]schema.OrderedColumn{schema.Asc(col.ColumnName)},
				col.ReferencedTableName,
				[]schema.OrderedColumn{schema.Asc(col.ReferencedColumnName)})
			if col.OnDelete != "" {
				fk.OnDelete = col.OnDelete
			}
			if col.OnUpdate != "" {
				fk.OnUpdate = col.OnUpdate
			}
			n.ForeignKeyConstraints = append(n.ForeignKeyConstraints, *fk)
		}
	}

	if n.PrimaryKeyConstraint == nil && len(pkColumns) > 0 {
		n.PrimaryKeyConstraint = schema.NewPrimaryKeyConstraint(n.SchemaName, n.TableName, "", pkColumns...)
	}

	return &n
}

func hasUniqueOn(constraints []schema.UniqueConstraint, columnName string) bool {
	for _, c := range constraints {
		for _, oc := range c.Columns {
			if strings.EqualFold(oc.ColumnName, columnName) {
				return true
			}
		}
	}
	return false
}

func hasIndexOn(indexes []schema.Index, columnName string) bool {
	for _, ix := range indexes {
		for _, oc := range ix.Columns {
			if strings.EqualFold(oc.ColumnName, columnName) {
				return true
			}
		}
	}
	return false
}

func hasCheckOn(constraints []schema.CheckConstraint, columnName string) bool {
	for _, c := range constraints {
		if strings.EqualFold(c.ColumnName, columnName) {
			return true
		}
	}
	return false
}

func hasDefaultOn(constraints []schema.DefaultConstraint, columnName string) bool {
	for _, c := range constraints {
		if strings.EqualFold(c.ColumnName, columnName) {
			return true
		}
	}
	return false
}

func hasForeignKeyOn(constraints []schema.ForeignKeyConstraint, columnName string) bool {
	for _, c := range constraints {
		for _, oc := range c.SourceColumns {
			if strings.EqualFold(oc.ColumnName, columnName) {
				return true
			}
		}
	}
	return false
}
