package postgres

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
		WHERE table_schema = $1 AND table_name = $2 AND column_name = $3`,
		schemaOr(schemaName), tableName, columnName)
}

func (m *Methods) GetColumnNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}
	names, err := methods.FetchStrings(ctx, q, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`, schemaOr(schemaName), tableName)
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

	rows, err := q.QueryContext(ctx, `
		SELECT column_name, data_type,
		       character_maximum_length, numeric_precision, numeric_scale,
		       is_nullable, column_default, is_identity
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`, schemaOr(schemaName), tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			name, dataType, isNullable, isIdentity string
			maxLength, precision, scale            sql.NullInt64
			columnDefault                          sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &maxLength, &precision, &scale, &isNullable, &columnDefault, &isIdentity); err != nil {
			return nil, err
		}
		if !methods.MatchesFilter(name, nameFilter) {
			continue
		}

		nativeType := renderNativeType(dataType, maxLength, precision, scale)
		col := schema.Column{
			ColumnName:      name,
			IsNullable:      isNullable == "YES",
			IsAutoIncrement: isIdentity == "YES",
		}
		col.SetProviderDataType(schemakit.ProviderPostgreSQL, nativeType)
		if columnDefault.Valid && !col.IsAutoIncrement {
			col.DefaultExpression = columnDefault.String
		}

		if gd, ok := m.Types.GoType(nativeType); ok {
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

// renderNativeType reassembles the full native type spelling the catalog
// splits across data_type and the dimension columns.
func renderNativeType(dataType string, maxLength, precision, scale sql.NullInt64) string {
	switch dataType {
	case "character varying", "character", "varchar", "char", "bit", "bit varying":
		if maxLength.Valid {
			return fmt.Sprintf("%s(%d)", dataType, maxLength.Int64)
		}
		return dataType
	case "numeric", "decimal":
		if precision.Valid && scale.Valid {
			return fmt.Sprintf("%s(%d,%d)", dataType, precision.Int64, scale.Int64)
		}
		return dataType
	default:
		return dataType
	}
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
		m.Qualified(schemaOr(schemaName), tableName), m.QuoteName(column.ColumnName), typeSQL)
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
		m.Qualified(schemaOr(schemaName), tableName), m.QuoteName(columnName))
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
		m.Qualified(schemaOr(schemaName), tableName), m.QuoteName(columnName), m.QuoteName(newColumnName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}
