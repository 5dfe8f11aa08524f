package sqlserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

// ---- primary key ----

func (m *Methods) DoesPrimaryKeyConstraintExist(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return false, err
	}
	return methods.FetchBool(ctx, q, `
		SELECT count(*) FROM sys.key_constraints kc
		JOIN sys.tables t ON t.object_id = kc.parent_object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		WHERE kc.type = 'PK' AND s.name = @p1 AND t.name = @p2`,
		schemaOr(schemaName), tableName)
}

func (m *Methods) GetPrimaryKeyConstraint(ctx context.Context, q Querier, schemaName, tableName string) (*schema.PrimaryKeyConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT kc.name, c.name
		FROM sys.key_constraints kc
		JOIN sys.tables t ON t.object_id = kc.parent_object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		JOIN sys.index_columns ic
		  ON ic.object_id = t.object_id AND ic.index_id = kc.unique_index_id
		JOIN sys.columns c ON c.object_id = t.object_id AND c.column_id = ic.column_id
		WHERE kc.type = 'PK' AND s.name = @p1 AND t.name = @p2
		ORDER BY ic.key_ordinal`, schemaOr(schemaName), tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		name    string
		columns []schema.OrderedColumn
	)
	for rows.Next() {
		var columnName string
		if err := rows.Scan(&name, &columnName); err != nil {
			return nil, err
		}
		columns = append(columns, schema.Asc(columnName))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, nil
	}
	return &schema.PrimaryKeyConstraint{
		SchemaName:     schemaOr(schemaName),
		TableName:      tableName,
		ConstraintName: name,
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

	stmt := fmt.Sprintf("ALTER TABLE %s ADD %s",
		m.Qualified(schemaOr(pk.SchemaName), pk.TableName), m.PrimaryKeyClause(pk))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropPrimaryKeyConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	pk, err := m.GetPrimaryKeyConstraint(ctx, q, schemaName, tableName)
	if err != nil || pk == nil {
		return false, err
	}
	return m.dropConstraint(ctx, q, schemaName, tableName, pk.ConstraintName)
}

func (m *Methods) dropConstraint(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	stmt := fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
		m.Qualified(schemaOr(schemaName), tableName), m.QuoteName(constraintName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

// ---- check constraints ----

func (m *Methods) getCheckConstraints(ctx context.Context, q Querier, schemaName, tableName string) ([]schema.CheckConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT cc.name, cc.definition, ISNULL(c.name, '')
		FROM sys.check_constraints cc
		JOIN sys.tables t ON t.object_id = cc.parent_object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		LEFT JOIN sys.columns c
		  ON c.object_id = t.object_id AND c.column_id = cc.parent_column_id
		WHERE s.name = @p1 AND t.name = @p2
		ORDER BY cc.name`, schemaOr(schemaName), tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var constraints []schema.CheckConstraint
	for rows.Next() {
		var name, definition, columnName string
		if err := rows.Scan(&name, &definition, &columnName); err != nil {
			return nil, err
		}
		constraints = append(constraints, schema.CheckConstraint{
			SchemaName:     schemaOr(schemaName),
			TableName:      tableName,
			ColumnName:     columnName,
			ConstraintName: name,
			Expression:     stripOuterParens(definition),
		})
	}
	return constraints, rows.Err()
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
	constraints, err := m.getCheckConstraints(ctx, q, schemaName, tableName)
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

func (m *Methods) GetCheckConstraintOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.CheckConstraint, error) {
	if err := methods.Require(columnName, methods.ErrColumnNameRequired); err != nil {
		return nil, err
	}
	constraints, err := m.getCheckConstraints(ctx, q, schemaName, tableName)
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

func (m *Methods) GetCheckConstraints(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.CheckConstraint, error) {
	constraints, err := m.getCheckConstraints(ctx, q, schemaName, tableName)
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
	constraints, err := m.getCheckConstraints(ctx, q, schemaName, tableName)
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
		m.Qualified(schemaOr(constraint.SchemaName), constraint.TableName), m.CheckClause(constraint))
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
	return m.dropConstraint(ctx, q, schemaName, tableName, constraintName)
}

// ---- default constraints ----
//
// SQL Server is the one engine where defaults are first-class named objects.

func (m *Methods) getDefaultConstraints(ctx context.Context, q Querier, schemaName, tableName string) ([]schema.DefaultConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT dc.name, c.name, dc.definition
		FROM sys.default_constraints dc
		JOIN sys.tables t ON t.object_id = dc.parent_object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		JOIN sys.columns c
		  ON c.object_id = t.object_id AND c.column_id = dc.parent_column_id
		WHERE s.name = @p1 AND t.name = @p2
		ORDER BY dc.name`, schemaOr(schemaName), tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var constraints []schema.DefaultConstraint
	for rows.Next() {
		var name, columnName, definition string
		if err := rows.Scan(&name, &columnName, &definition); err != nil {
			return nil, err
		}
		constraints = append(constraints, schema.DefaultConstraint{
			SchemaName:     schemaOr(schemaName),
			TableName:      tableName,
			ColumnName:     columnName,
			ConstraintName: name,
			Expression:     stripOuterParens(definition),
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
	constraints, err := m.getDefaultConstraints(ctx, q, schemaName, tableName)
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
	constraints, err := m.getDefaultConstraints(ctx, q, schemaName, tableName)
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
	constraints, err := m.getDefaultConstraints(ctx, q, schemaName, tableName)
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
	constraints, err := m.getDefaultConstraints(ctx, q, schemaName, tableName)
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
	if constraint.ConstraintName == "" {
		constraint.ConstraintName = schema.GenerateDefaultConstraintName(constraint.TableName, constraint.ColumnName)
	}

	exists, err := m.DoesDefaultConstraintExistOnColumn(ctx, q, constraint.SchemaName, constraint.TableName, constraint.ColumnName)
	if err != nil || exists {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s DEFAULT %s FOR %s",
		m.Qualified(schemaOr(constraint.SchemaName), constraint.TableName),
		m.QuoteName(constraint.ConstraintName), constraint.Expression,
		m.QuoteName(constraint.ColumnName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropDefaultConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	exists, err := m.DoesDefaultConstraintExist(ctx, q, schemaName, tableName, constraintName)
	if err != nil || !exists {
		return false, err
	}
	return m.dropConstraint(ctx, q, schemaName, tableName, constraintName)
}

// dropDefaultOnColumn removes the default constraint bound to a column, if
// any; used before DROP COLUMN.
func (m *Methods) dropDefaultOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) error {
	c, err := m.GetDefaultConstraintOnColumn(ctx, q, schemaName, tableName, columnName)
	if err != nil || c == nil {
		return err
	}
	_, err = m.dropConstraint(ctx, q, schemaName, tableName, c.ConstraintName)
	return err
}

// ---- unique constraints ----

func (m *Methods) getUniqueConstraints(ctx context.Context, q Querier, schemaName, tableName string) ([]schema.UniqueConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT kc.name, c.name
		FROM sys.key_constraints kc
		JOIN sys.tables t ON t.object_id = kc.parent_object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		JOIN sys.index_columns ic
		  ON ic.object_id = t.object_id AND ic.index_id = kc.unique_index_id
		JOIN sys.columns c ON c.object_id = t.object_id AND c.column_id = ic.column_id
		WHERE kc.type = 'UQ' AND s.name = @p1 AND t.name = @p2
		ORDER BY kc.name, ic.key_ordinal`, schemaOr(schemaName), tableName)
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
			uc = &schema.UniqueConstraint{
				SchemaName:     schemaOr(schemaName),
				TableName:      tableName,
				ConstraintName: name,
			}
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
	constraints, err := m.getUniqueConstraints(ctx, q, schemaName, tableName)
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
	constraints, err := m.getUniqueConstraints(ctx, q, schemaName, tableName)
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
	constraints, err := m.getUniqueConstraints(ctx, q, schemaName, tableName)
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
		m.Qualified(schemaOr(constraint.SchemaName), constraint.TableName), m.UniqueClause(constraint))
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
	return m.dropConstraint(ctx, q, schemaName, tableName, constraintName)
}

// ---- foreign key constraints ----

func (m *Methods) getForeignKeyConstraints(ctx context.Context, q Querier, schemaName, tableName string) ([]schema.ForeignKeyConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT fk.name, refs.name, reft.name,
		       pc.name, rc.name,
		       fk.delete_referential_action_desc, fk.update_referential_action_desc
		FROM sys.foreign_keys fk
		JOIN sys.tables t ON t.object_id = fk.parent_object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		JOIN sys.tables reft ON reft.object_id = fk.referenced_object_id
		JOIN sys.schemas refs ON refs.schema_id = reft.schema_id
		JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
		JOIN sys.columns pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
		JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
		WHERE s.name = @p1 AND t.name = @p2
		ORDER BY fk.name, fkc.constraint_column_id`, schemaOr(schemaName), tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*schema.ForeignKeyConstraint{}
	var order []string
	for rows.Next() {
		var name, refSchema, refTable, column, refColumn, deleteAction, updateAction string
		if err := rows.Scan(&name, &refSchema, &refTable, &column, &refColumn, &deleteAction, &updateAction); err != nil {
			return nil, err
		}
		fk, ok := byName[name]
		if !ok {
			fk = &schema.ForeignKeyConstraint{
				SchemaName:           schemaOr(schemaName),
				TableName:            tableName,
				ConstraintName:       name,
				ReferencedSchemaName: refSchema,
				ReferencedTableName:  refTable,
				OnDelete:             schema.ParseForeignKeyAction(deleteAction),
				OnUpdate:             schema.ParseForeignKeyAction(updateAction),
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
	constraints, err := m.getForeignKeyConstraints(ctx, q, schemaName, tableName)
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
	constraints, err := m.getForeignKeyConstraints(ctx, q, schemaName, tableName)
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
	constraints, err := m.getForeignKeyConstraints(ctx, q, schemaName, tableName)
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
	constraints, err := m.getForeignKeyConstraints(ctx, q, schemaName, tableName)
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
		m.Qualified(schemaOr(constraint.SchemaName), constraint.TableName), m.ForeignKeyClause(constraint))
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
	return m.dropConstraint(ctx, q, schemaName, tableName, constraintName)
}
