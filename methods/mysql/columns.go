package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

func (m *Methods) DoesColumnExist(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return false, err
	}
	if err := methods.Require(columnName, methods.ErrColumnNameRequired); err != nil {
		return false, err
	}
	return methods.FetchBool(ctx, q, `
		SELECT count(*) FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ?`,
		tableName, columnName)
}

func (m *Methods) GetColumnNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}
	names, err := methods.FetchStrings(ctx, q, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`, tableName)
	if err != nil {
		return nil, err
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

	// COLUMN_TYPE carries the complete native spelling ("varchar(255)",
	// "decimal(10,2) unsigned"), unlike the split data_type columns.
	rows, err := q.QueryContext(ctx, `
		SELECT column_name, column_type, is_nullable, column_default, extra
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			name, columnType, isNullable, extra string
			columnDefault                       sql.NullString
		)
		if err := rows.Scan(&name, &columnType, &isNullable, &columnDefault, &extra); err != nil {
			return nil, err
		}
		if !methods.MatchesFilter(name, nameFilter) {
			continue
		}

		col := schema.Column{
			ColumnName:      name,
			IsNullable:      strings.EqualFold(isNullable, "YES"),
			IsAutoIncrement: strings.Contains(strings.ToLower(extra), "auto_increment"),
		}
		col.SetProviderDataType(schemakit.ProviderMySQL, columnType)
		if columnDefault.Valid && !col.IsAutoIncrement {
			col.DefaultExpression = columnDefault.String
		}

		if gd, ok := m.Types.GoType(columnType); ok {
			col.DataType = gd.Type
			col.Length = gd.Length
			col.Precision = gd.Precision
			col.Scale = gd.Scale
			col.IsUnicode = gd.IsUnicode
			col.IsFixedLength = gd.IsFixedLength
		}

		columns = append(columns, col)
	}
	return columns, rows.Err()
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
	if !column.IsNullable {
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
