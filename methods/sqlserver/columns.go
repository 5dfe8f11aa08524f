package sqlserver

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
		SELECT count(*) FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 AND COLUMN_NAME = @p3`,
		schemaOr(schemaName), tableName, columnName)
}

func (m *Methods) GetColumnNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}
	names, err := methods.FetchStrings(ctx, q, `
		SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
		ORDER BY ORDINAL_POSITION`, schemaOr(schemaName), tableName)
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
		SELECT c.name, tp.name,
		       c.max_length, c.precision, c.scale,
		       c.is_nullable, c.is_identity,
		       dc.definition
		FROM sys.columns c
		JOIN sys.tables t ON t.object_id = c.object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		JOIN sys.types tp ON tp.user_type_id = c.user_type_id
		LEFT JOIN sys.default_constraints dc ON dc.object_id = c.default_object_id
		WHERE s.name = @p1 AND t.name = @p2
		ORDER BY c.column_id`, schemaOr(schemaName), tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			name, typeName         string
			maxLength              int
			precision, scale       int
			isNullable, isIdentity bool
			defaultDef             sql.NullString
		)
		if err := rows.Scan(&name, &typeName, &maxLength, &precision, &scale, &isNullable, &isIdentity, &defaultDef); err != nil {
			return nil, err
		}
		if !methods.MatchesFilter(name, nameFilter) {
			continue
		}

		nativeType := renderNativeType(typeName, maxLength, precision, scale)
		col := schema.Column{
			ColumnName:      name,
			IsNullable:      isNullable,
			IsAutoIncrement: isIdentity,
		}
		col.SetProviderDataType(schemakit.ProviderSqlServer, nativeType)
		if defaultDef.Valid {
			col.DefaultExpression = stripOuterParens(defaultDef.String)
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

// renderNativeType reassembles the full native spelling from sys.columns
// dimensions. max_length is bytes: nchar/nvarchar count two per character,
// and -1 marks (max).
func renderNativeType(typeName string, maxLength, precision, scale int) string {
	switch strings.ToLower(typeName) {
	case "nvarchar", "nchar":
		if maxLength == -1 {
			return typeName + "(max)"
		}
		return fmt.Sprintf("%s(%d)", typeName, maxLength/2)
	case "varchar", "char", "varbinary", "binary":
		if maxLength == -1 {
			return typeName + "(max)"
		}
		return fmt.Sprintf("%s(%d)", typeName, maxLength)
	case "decimal", "numeric":
		return fmt.Sprintf("%s(%d,%d)", typeName, precision, scale)
	default:
		return typeName
	}
}

func stripOuterParens(expr string) string {
	expr = strings.TrimSpace(expr)
	for strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}
	return expr
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

	stmt := fmt.Sprintf("ALTER TABLE %s ADD %s %s",
		m.Qualified(schemaOr(schemaName), tableName), m.QuoteName(column.ColumnName), typeSQL)
	if !column.IsNullable {
		stmt += " NOT NULL"
	}
	if column.DefaultExpression != "" {
		stmt += fmt.Sprintf(" CONSTRAINT %s DEFAULT %s",
			m.QuoteName(schema.GenerateDefaultConstraintName(tableName, column.ColumnName)),
			column.DefaultExpression)
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

	// A default constraint blocks DROP COLUMN; clear it first.
	if err := m.dropDefaultOnColumn(ctx, q, schemaName, tableName, columnName); err != nil {
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
	if _, err := q.ExecContext(ctx, "EXEC sp_rename @p1, @p2, 'COLUMN'",
		schemaOr(schemaName)+"."+tableName+"."+columnName, newColumnName); err != nil {
		return false, err
	}
	return true, nil
}
