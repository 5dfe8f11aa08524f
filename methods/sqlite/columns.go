package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

func (m *Methods) DoesColumnExist(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error) {
	if err := methods.Require(columnName, methods.ErrColumnNameRequired); err != nil {
		return false, err
	}
	col, err := m.GetColumn(ctx, q, schemaName, tableName, columnName)
	return col != nil, err
}

func (m *Methods) GetColumnNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error) {
	columns, err := m.GetColumns(ctx, q, schemaName, tableName, "")
	if err != nil {
		return nil, err
	}
	names := make([]string, len(columns))
	for i := range columns {
		names[i] = columns[i].ColumnName
	}
	return methods.FilterNames(names, nameFilter), nil
}

func (m *Methods) GetColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.Column, error) {
	if err := methods.Require(columnName, methods.ErrColumnNameRequired); err != nil {
		return nil, err
	}
	columns, err := m.GetColumns(ctx, q, schemaName, tableName, "")
	if err != nil {
		return nil, err
	}
	for i := range columns {
		if strings.EqualFold(columns[i].ColumnName, columnName) {
			return &columns[i], nil
		}
	}
	return nil, nil
}

func (m *Methods) GetColumns(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.Column, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	stored, err := m.tableSQL(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	def := parseTableDefinition(stored, tableName)

	columns, _, err := m.readColumns(ctx, q, tableName, def)
	if err != nil {
		return nil, err
	}

	if nameFilter == "" {
		return columns, nil
	}
	out := columns[:0]
	for _, c := range columns {
		if methods.MatchesFilter(c.ColumnName, nameFilter) {
			out = append(out, c)
		}
	}
	return out, nil
}

// readColumns hydrates the column list and the primary key from
// PRAGMA table_info. The pk column of the pragma carries the 1-based
// position of the column within the primary key (0 = not part of it).
func (m *Methods) readColumns(ctx context.Context, q Querier, tableName string, def tableDefinition) ([]schema.Column, *schema.PrimaryKeyConstraint, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", m.QuoteName(tableName)))
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	type pkEntry struct {
		position int
		name     string
	}
	var (
		columns   []schema.Column
		pkEntries []pkEntry
	)
	for rows.Next() {
		var (
			cid, notNull, pkPos int
			name, declaredType  string
			dflt                sql.NullString
		)
		if err := rows.Scan(&cid, &name, &declaredType, &notNull, &dflt, &pkPos); err != nil {
			return nil, nil, err
		}

		col := schema.Column{
			ColumnName: name,
			IsNullable: notNull == 0,
		}
		col.SetProviderDataType(schemakit.ProviderSqlite, declaredType)
		if dflt.Valid {
			col.DefaultExpression = dflt.String
		}
		if pkPos > 0 {
			col.IsPrimaryKey = true
			col.IsNullable = false
			pkEntries = append(pkEntries, pkEntry{position: pkPos, name: name})
		}

		if gd, ok := m.Types.GoType(declaredType); ok {
			col.DataType = gd.Type
			col.Length = gd.Length
			col.Precision = gd.Precision
			col.Scale = gd.Scale
			col.IsUnicode = gd.IsUnicode
			col.IsFixedLength = gd.IsFixedLength
		}

		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var pk *schema.PrimaryKeyConstraint
	if len(pkEntries) > 0 {
		sort.Slice(pkEntries, func(i, j int) bool { return pkEntries[i].position < pkEntries[j].position })
		ordered := make([]schema.OrderedColumn, len(pkEntries))
		pkNames := make([]string, len(pkEntries))
		for i, e := range pkEntries {
			ordered[i] = schema.Asc(e.name)
			pkNames[i] = e.name
		}
		name := def.pkName
		if name == "" {
			name = schema.GeneratePrimaryKeyName(tableName, pkNames...)
		}
		pk = &schema.PrimaryKeyConstraint{
			TableName:      tableName,
			ConstraintName: name,
			Columns:        ordered,
		}

		if len(pkEntries) == 1 && def.hasAutoIncrement {
			for i := range columns {
				if strings.EqualFold(columns[i].ColumnName, pkEntries[0].name) {
					columns[i].IsAutoIncrement = true
				}
			}
		}
	}

	return columns, pk, nil
}

func (m *Methods) CreateColumnIfNotExists(ctx context.Context, q Querier, schemaName, tableName string, column *schema.Column) (bool, error) {
	if column == nil || methods.Require(column.ColumnName, methods.ErrColumnNameRequired) != nil {
		return false, methods.ErrColumnNameRequired
	}
	exists, err := m.DoesColumnExist(ctx, q, schemaName, tableName, column.ColumnName)
	if err != nil || exists {
		return false, err
	}

	typeSQL, err := m.ColumnTypeSQL(column)
	if err != nil {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
		m.QuoteName(tableName), m.QuoteName(column.ColumnName), typeSQL)
	// ADD COLUMN with NOT NULL requires a default for existing rows.
	if !column.IsNullable && column.DefaultExpression != "" {
		stmt += " NOT NULL"
	}
	if column.DefaultExpression != "" {
		stmt += " DEFAULT " + column.DefaultExpression
	}
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropColumnIfExists(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error) {
	exists, err := m.DoesColumnExist(ctx, q, schemaName, tableName, columnName)
	if err != nil || !exists {
		return false, err
	}
	stmt := fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s",
		m.QuoteName(tableName), m.QuoteName(columnName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) RenameColumnIfExists(ctx context.Context, q Querier, schemaName, tableName, columnName, newColumnName string) (bool, error) {
	if err := methods.Require(newColumnName, methods.ErrNewNameRequired); err != nil {
		return false, err
	}
	exists, err := m.DoesColumnExist(ctx, q, schemaName, tableName, columnName)
	if err != nil || !exists {
		return false, err
	}
	stmt := fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		m.QuoteName(tableName), m.QuoteName(columnName), m.QuoteName(newColumnName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}
