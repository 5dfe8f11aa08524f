package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

// ---- primary key ----
//
// MySQL names every primary key PRIMARY; the contract still reports the
// catalog name so drops and existence checks round-trip.

func (m *Methods) DoesPrimaryKeyConstraintExist(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return false, err
	}
	return methods.FetchBool(ctx, q, `
		SELECT count(*) FROM information_schema.table_constraints
		WHERE table_schema = DATABASE() AND table_name = ? AND constraint_type = 'PRIMARY KEY'`,
		tableName)
}

func (m *Methods) GetPrimaryKeyConstraint(ctx context.Context, q Querier, schemaName, tableName string) (*schema.PrimaryKeyConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	names, err := methods.FetchStrings(ctx, q, `
		SELECT column_name FROM information_schema.key_column_usage
		WHERE table_schema = DATABASE() AND table_name = ? AND constraint_name = 'PRIMARY'
		ORDER BY ordinal_position`, tableName)
	if err != nil || len(names) == 0 {
		return nil, err
	}

	columns := make([]schema.OrderedColumn, len(names))
	for i, n := range names {
		columns[i] = schema.Asc(n)
	}
	return &schema.PrimaryKeyConstraint{
		TableName:      tableName,
		ConstraintName: "PRIMARY",
		Columns:        columns,
	}, nil
}

func (m *Methods) CreatePrimaryKeyConstraintIfNotExists(ctx context.Context, q Querier, pk *schema.PrimaryKeyConstraint) (bool, error) {
	if pk == nil || methods.Require(pk.TableName, methods.ErrTableNameRequired) != nil {
		return false, methods.ErrTableNameRequired
	}
	if len(pk.Columns) == 0 {
		return false, methods.ErrNoColumnsSpecified
	}

	exists, err := m.DoesPrimaryKeyConstraintExist(ctx, q, pk.SchemaName, pk.TableName)
	if err != nil || exists {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD PRIMARY KEY (%s)",
		m.QuoteName(pk.TableName), m.OrderedColumnList(pk.Columns, false))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropPrimaryKeyConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	exists, err := m.DoesPrimaryKeyConstraintExist(ctx, q, schemaName, tableName)
	if err != nil || !exists {
		return false, err
	}
	if _, err := q.ExecContext(ctx, "ALTER TABLE "+m.QuoteName(tableName)+" DROP PRIMARY KEY"); err != nil {
		return false, err
	}
	return true, nil
}

// ---- check constraints ----

func (m *Methods) getCheckConstraints(ctx context.Context, q Querier, tableName string) ([]schema.CheckConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}
	// information_schema.check_constraints only exists on 8.0.16+.
	if !m.supportsCheckConstraints(ctx, q) {
		return nil, nil
	}

	rows, err := q.QueryContext(ctx, `
		SELECT tc.constraint_name, cc.check_clause
		FROM information_schema.table_constraints tc
		JOIN information_schema.check_constraints cc
		  ON cc.constraint_schema = tc.constraint_schema AND cc.constraint_name = tc.constraint_name
		WHERE tc.table_schema = DATABASE() AND tc.table_name = ? AND tc.constraint_type = 'CHECK'
		ORDER BY tc.constraint_name`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var constraints []schema.CheckConstraint
	for rows.Next() {
		var name, clause string
		if err := rows.Scan(&name, &clause); err != nil {
			return nil, err
		}
		constraints = append(constraints, schema.CheckConstraint{
			TableName:      tableName,
			ConstraintName: name,
			Expression:     stripOuterParens(clause),
		})
	}
	return constraints, rows.Err()
}

func stripOuterParens(expr string) string {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}
	return expr
}

func (m *Methods) DoesCheckConstraintExist(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	c, err := m.GetCheckConstraint(ctx, q, schemaName, tableName, constraintName)
	return c != nil, err
}

func (m *Methods) DoesCheckConstraintExistOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error) {
	c, err := m.GetCheckConstraintOnColumn(ctx, q, schemaName, tableName, columnName)
	return c != nil, err
}

func (m *Methods) GetCheckConstraint(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (*schema.CheckConstraint, error) {
	if err := methods.Require(constraintName, methods.ErrConstraintNameRequired); err != nil {
		return nil, err
	}
	constraints, err := m.getCheckConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	for i := range constraints {
		if strings.EqualFold(constraints[i].ConstraintName, constraintName) {
			return &constraints[i], nil
		}
	}
	return nil, nil
}

// GetCheckConstraintOnColumn matches by the deterministic generated name,
// since MySQL's catalog does not record which column a check targets.
func (m *Methods) GetCheckConstraintOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.CheckConstraint, error) {
	if err := methods.Require(columnName, methods.ErrColumnNameRequired); err != nil {
		return nil, err
	}
	constraints, err := m.getCheckConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	generated := schema.GenerateCheckConstraintName(tableName, columnName)
	for i := range constraints {
		if strings.EqualFold(constraints[i].ConstraintName, generated) {
			constraints[i].ColumnName = columnName
			return &constraints[i], nil
		}
	}
	return nil, nil
}

func (m *Methods) GetCheckConstraints(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.CheckConstraint, error) {
	constraints, err := m.getCheckConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	out := constraints[:0]
	for _, c := range constraints {
		if methods.MatchesFilter(c.ConstraintName, nameFilter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Methods) GetCheckConstraintNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error) {
	constraints, err := m.getCheckConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(constraints))
	for i, c := range constraints {
		names[i] = c.ConstraintName
	}
	return methods.FilterNames(names, nameFilter), nil
}

func (m *Methods) CreateCheckConstraintIfNotExists(ctx context.Context, q Querier, constraint *schema.CheckConstraint) (bool, error) {
	if constraint == nil || methods.Require(constraint.TableName, methods.ErrTableNameRequired) != nil {
		return false, methods.ErrTableNameRequired
	}
	if err := methods.Require(constraint.Expression, methods.ErrExpressionRequired); err != nil {
		return false, err
	}
	if constraint.ConstraintName == "" {
		constraint.ConstraintName = schema.GenerateCheckConstraintName(constraint.TableName, constraint.ColumnName)
	}

	exists, err := m.DoesCheckConstraintExist(ctx, q, constraint.SchemaName, constraint.TableName, constraint.ConstraintName)
	if err != nil || exists {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD %s",
		m.QuoteName(constraint.TableName), m.CheckClause(constraint))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropCheckConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	exists, err := m.DoesCheckConstraintExist(ctx, q, schemaName, tableName, constraintName)
	if err != nil || !exists {
		return false, err
	}
	stmt := fmt.Sprintf("ALTER TABLE %s DROP CHECK %s",
		m.QuoteName(tableName), m.QuoteName(constraintName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

// ---- default constraints ----
//
// MySQL defaults are unnamed column attributes; the named-object contract is
// emulated the same way as on PostgreSQL.

func (m *Methods) getDefaultConstraints(ctx context.Context, q Querier, tableName string) ([]schema.DefaultConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT column_name, column_default
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ? AND column_default IS NOT NULL
		  AND extra NOT LIKE '%auto_increment%'
		ORDER BY ordinal_position`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var constraints []schema.DefaultConstraint
	for rows.Next() {
		var columnName, expression string
		if err := rows.Scan(&columnName, &expression); err != nil {
			return nil, err
		}
		constraints = append(constraints, schema.DefaultConstraint{
			TableName:      tableName,
			ColumnName:     columnName,
			ConstraintName: schema.GenerateDefaultConstraintName(tableName, columnName),
			Expression:     expression,
		})
	}
	return constraints, rows.Err()
}

func (m *Methods) DoesDefaultConstraintExist(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	c, err := m.GetDefaultConstraint(ctx, q, schemaName, tableName, constraintName)
	return c != nil, err
}

func (m *Methods) DoesDefaultConstraintExistOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error) {
	c, err := m.GetDefaultConstraintOnColumn(ctx, q, schemaName, tableName, columnName)
	return c != nil, err
}

func (m *Methods) GetDefaultConstraint(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (*schema.DefaultConstraint, error) {
	if err := methods.Require(constraintName, methods.ErrConstraintNameRequired); err != nil {
		return nil, err
	}
	constraints, err := m.getDefaultConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	for i := range constraints {
		if strings.EqualFold(constraints[i].ConstraintName, constraintName) {
			return &constraints[i], nil
		}
	}
	return nil, nil
}

func (m *Methods) GetDefaultConstraintOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.DefaultConstraint, error) {
	if err := methods.Require(columnName, methods.ErrColumnNameRequired); err != nil {
		return nil, err
	}
	constraints, err := m.getDefaultConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	for i := range constraints {
		if strings.EqualFold(constraints[i].ColumnName, columnName) {
			return &constraints[i], nil
		}
	}
	return nil, nil
}

func (m *Methods) GetDefaultConstraints(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.DefaultConstraint, error) {
	constraints, err := m.getDefaultConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	out := constraints[:0]
	for _, c := range constraints {
		if methods.MatchesFilter(c.ConstraintName, nameFilter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Methods) GetDefaultConstraintNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error) {
	constraints, err := m.getDefaultConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(constraints))
	for i, c := range constraints {
		names[i] = c.ConstraintName
	}
	return methods.FilterNames(names, nameFilter), nil
}

func (m *Methods) CreateDefaultConstraintIfNotExists(ctx context.Context, q Querier, constraint *schema.DefaultConstraint) (bool, error) {
	if constraint == nil || methods.Require(constraint.TableName, methods.ErrTableNameRequired) != nil {
		return false, methods.ErrTableNameRequired
	}
	if err := methods.Require(constraint.ColumnName, methods.ErrColumnNameRequired); err != nil {
		return false, err
	}
	if err := methods.Require(constraint.Expression, methods.ErrExpressionRequired); err != nil {
		return false, err
	}

	exists, err := m.DoesDefaultConstraintExistOnColumn(ctx, q, constraint.SchemaName, constraint.TableName, constraint.ColumnName)
	if err != nil || exists {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s",
		m.QuoteName(constraint.TableName), m.QuoteName(constraint.ColumnName), constraint.Expression)
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropDefaultConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	c, err := m.GetDefaultConstraint(ctx, q, schemaName, tableName, constraintName)
	if err != nil || c == nil {
		return false, err
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT",
		m.QuoteName(tableName), m.QuoteName(c.ColumnName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

// ---- unique constraints ----

func (m *Methods) getUniqueConstraints(ctx context.Context, q Querier, tableName string) ([]schema.UniqueConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT tc.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		 AND kcu.table_name = tc.table_name
		WHERE tc.table_schema = DATABASE() AND tc.table_name = ? AND tc.constraint_type = 'UNIQUE'
		ORDER BY tc.constraint_name, kcu.ordinal_position`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*schema.UniqueConstraint{}
	var order []string
	for rows.Next() {
		var name, columnName string
		if err := rows.Scan(&name, &columnName); err != nil {
			return nil, err
		}
		uc, ok := byName[name]
		if !ok {
			uc = &schema.UniqueConstraint{TableName: tableName, ConstraintName: name}
			byName[name] = uc
			order = append(order, name)
		}
		uc.Columns = append(uc.Columns, schema.Asc(columnName))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	constraints := make([]schema.UniqueConstraint, 0, len(order))
	for _, name := range order {
		constraints = append(constraints, *byName[name])
	}
	return constraints, nil
}

func (m *Methods) DoesUniqueConstraintExist(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	c, err := m.GetUniqueConstraint(ctx, q, schemaName, tableName, constraintName)
	return c != nil, err
}

func (m *Methods) GetUniqueConstraint(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (*schema.UniqueConstraint, error) {
	if err := methods.Require(constraintName, methods.ErrConstraintNameRequired); err != nil {
		return nil, err
	}
	constraints, err := m.getUniqueConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	for i := range constraints {
		if strings.EqualFold(constraints[i].ConstraintName, constraintName) {
			return &constraints[i], nil
		}
	}
	return nil, nil
}

func (m *Methods) GetUniqueConstraints(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.UniqueConstraint, error) {
	constraints, err := m.getUniqueConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	out := constraints[:0]
	for _, c := range constraints {
		if methods.MatchesFilter(c.ConstraintName, nameFilter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Methods) GetUniqueConstraintNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error) {
	constraints, err := m.getUniqueConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(constraints))
	for i, c := range constraints {
		names[i] = c.ConstraintName
	}
	return methods.FilterNames(names, nameFilter), nil
}

func (m *Methods) CreateUniqueConstraintIfNotExists(ctx context.Context, q Querier, constraint *schema.UniqueConstraint) (bool, error) {
	if constraint == nil || methods.Require(constraint.TableName, methods.ErrTableNameRequired) != nil {
		return false, methods.ErrTableNameRequired
	}
	if len(constraint.Columns) == 0 {
		return false, methods.ErrNoColumnsSpecified
	}
	if constraint.ConstraintName == "" {
		constraint.ConstraintName = schema.GenerateUniqueConstraintName(constraint.TableName, schema.ColumnNames(constraint.Columns)...)
	}

	exists, err := m.DoesUniqueConstraintExist(ctx, q, constraint.SchemaName, constraint.TableName, constraint.ConstraintName)
	if err != nil || exists {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD %s",
		m.QuoteName(constraint.TableName), m.UniqueClause(constraint))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropUniqueConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	exists, err := m.DoesUniqueConstraintExist(ctx, q, schemaName, tableName, constraintName)
	if err != nil || !exists {
		return false, err
	}
	// A unique constraint is backed by a unique index; DROP INDEX removes
	// it on every supported server version.
	stmt := fmt.Sprintf("ALTER TABLE %s DROP INDEX %s",
		m.QuoteName(tableName), m.QuoteName(constraintName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

// ---- foreign key constraints ----

func (m *Methods) getForeignKeyConstraints(ctx context.Context, q Querier, tableName string) ([]schema.ForeignKeyConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT rc.constraint_name, kcu.column_name,
		       kcu.referenced_table_name, kcu.referenced_column_name,
		       rc.delete_rule, rc.update_rule
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = rc.constraint_name
		 AND kcu.table_schema = rc.constraint_schema
		 AND kcu.table_name = rc.table_name
		WHERE rc.constraint_schema = DATABASE() AND rc.table_name = ?
		ORDER BY rc.constraint_name, kcu.ordinal_position`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*schema.ForeignKeyConstraint{}
	var order []string
	for rows.Next() {
		var name, column, refTable, refColumn, deleteRule, updateRule string
		if err := rows.Scan(&name, &column, &refTable, &refColumn, &deleteRule, &updateRule); err != nil {
			return nil, err
		}
		fk, ok := byName[name]
		if !ok {
			fk = &schema.ForeignKeyConstraint{
				TableName:           tableName,
				ConstraintName:      name,
				ReferencedTableName: refTable,
				OnDelete:            schema.ParseForeignKeyAction(deleteRule),
				OnUpdate:            schema.ParseForeignKeyAction(updateRule),
			}
			byName[name] = fk
			order = append(order, name)
		}
		fk.SourceColumns = append(fk.SourceColumns, schema.Asc(column))
		fk.ReferencedColumns = append(fk.ReferencedColumns, schema.Asc(refColumn))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	constraints := make([]schema.ForeignKeyConstraint, 0, len(order))
	for _, name := range order {
		constraints = append(constraints, *byName[name])
	}
	return constraints, nil
}

func (m *Methods) DoesForeignKeyConstraintExist(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	c, err := m.GetForeignKeyConstraint(ctx, q, schemaName, tableName, constraintName)
	return c != nil, err
}

func (m *Methods) DoesForeignKeyConstraintExistOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error) {
	c, err := m.GetForeignKeyConstraintOnColumn(ctx, q, schemaName, tableName, columnName)
	return c != nil, err
}

func (m *Methods) GetForeignKeyConstraint(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (*schema.ForeignKeyConstraint, error) {
	if err := methods.Require(constraintName, methods.ErrConstraintNameRequired); err != nil {
		return nil, err
	}
	constraints, err := m.getForeignKeyConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	for i := range constraints {
		if strings.EqualFold(constraints[i].ConstraintName, constraintName) {
			return &constraints[i], nil
		}
	}
	return nil, nil
}

func (m *Methods) GetForeignKeyConstraintOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.ForeignKeyConstraint, error) {
	if err := methods.Require(columnName, methods.ErrColumnNameRequired); err != nil {
		return nil, err
	}
	constraints, err := m.getForeignKeyConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	for i := range constraints {
		for _, oc := range constraints[i].SourceColumns {
			if strings.EqualFold(oc.ColumnName, columnName) {
				return &constraints[i], nil
			}
		}
	}
	return nil, nil
}

func (m *Methods) GetForeignKeyConstraints(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.ForeignKeyConstraint, error) {
	constraints, err := m.getForeignKeyConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	out := constraints[:0]
	for _, c := range constraints {
		if methods.MatchesFilter(c.ConstraintName, nameFilter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Methods) GetForeignKeyConstraintNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error) {
	constraints, err := m.getForeignKeyConstraints(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(constraints))
	for i, c := range constraints {
		names[i] = c.ConstraintName
	}
	return methods.FilterNames(names, nameFilter), nil
}

func (m *Methods) CreateForeignKeyConstraintIfNotExists(ctx context.Context, q Querier, constraint *schema.ForeignKeyConstraint) (bool, error) {
	if constraint == nil || methods.Require(constraint.TableName, methods.ErrTableNameRequired) != nil {
		return false, methods.ErrTableNameRequired
	}
	if len(constraint.SourceColumns) == 0 || len(constraint.ReferencedColumns) == 0 {
		return false, methods.ErrNoColumnsSpecified
	}
	if err := methods.Require(constraint.ReferencedTableName, methods.ErrTableNameRequired); err != nil {
		return false, err
	}
	if constraint.ConstraintName == "" {
		constraint.ConstraintName = schema.GenerateForeignKeyName(
			constraint.TableName, schema.ColumnNames(constraint.SourceColumns),
			constraint.ReferencedTableName, schema.ColumnNames(constraint.ReferencedColumns))
	}

	exists, err := m.DoesForeignKeyConstraintExist(ctx, q, constraint.SchemaName, constraint.TableName, constraint.ConstraintName)
	if err != nil || exists {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD %s",
		m.QuoteName(constraint.TableName), m.ForeignKeyClause(constraint))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropForeignKeyConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	exists, err := m.DoesForeignKeyConstraintExist(ctx, q, schemaName, tableName, constraintName)
	if err != nil || !exists {
		return false, err
	}
	stmt := fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s",
		m.QuoteName(tableName), m.QuoteName(constraintName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}
