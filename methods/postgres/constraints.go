package postgres

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
		SELECT count(*) FROM information_schema.table_constraints
		WHERE table_schema = $1 AND table_name = $2 AND constraint_type = 'PRIMARY KEY'`,
		schemaOr(schemaName), tableName)
}

func (m *Methods) GetPrimaryKeyConstraint(ctx context.Context, q Querier, schemaName, tableName string) (*schema.PrimaryKeyConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT tc.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
		WHERE tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position`, schemaOr(schemaName), tableName)
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
		SELECT con.conname,
		       pg_get_constraintdef(con.oid),
		       CASE WHEN array_length(con.conkey, 1) = 1 THEN
		         (SELECT a.attname FROM pg_attribute a
		          WHERE a.attrelid = con.conrelid AND a.attnum = con.conkey[1])
		       ELSE '' END
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE con.contype = 'c' AND n.nspname = $1 AND c.relname = $2
		ORDER BY con.conname`, schemaOr(schemaName), tableName)
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
			Expression:     stripCheckWrapper(definition),
		})
	}
	return constraints, rows.Err()
}

// stripCheckWrapper unwraps "CHECK ((expr))" as rendered by
// pg_get_constraintdef down to the bare expression.
func stripCheckWrapper(definition string) string {
	expr := strings.TrimSpace(definition)
	if rest, ok := strings.CutPrefix(strings.ToUpper(expr), "CHECK"); ok {
		expr = strings.TrimSpace(expr[len(expr)-len(rest):])
	}
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
// PostgreSQL defaults are unnamed column attributes. The named-object
// contract is emulated: the deterministic generated name stands in for the
// catalog name, and DDL goes through ALTER COLUMN SET/DROP DEFAULT.

func (m *Methods) getDefaultConstraints(ctx context.Context, q Querier, schemaName, tableName string) ([]schema.DefaultConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT column_name, column_default
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2 AND column_default IS NOT NULL
		  AND is_identity = 'NO'
		ORDER BY ordinal_position`, schemaOr(schemaName), tableName)
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
		// Sequence-backed defaults belong to autoincrement, not defaults.
		if strings.HasPrefix(expression, "nextval(") {
			continue
		}
		constraints = append(constraints, schema.DefaultConstraint{
			SchemaName:     schemaOr(schemaName),
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

	exists, err := m.DoesDefaultConstraintExistOnColumn(ctx, q, constraint.SchemaName, constraint.TableName, constraint.ColumnName)
	if err != nil || exists {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s",
		m.Qualified(schemaOr(constraint.SchemaName), constraint.TableName),
		m.QuoteName(constraint.ColumnName), constraint.Expression)
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
		m.Qualified(schemaOr(schemaName), tableName), m.QuoteName(c.ColumnName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

// ---- unique constraints ----

func (m *Methods) getUniqueConstraints(ctx context.Context, q Querier, schemaName, tableName string) ([]schema.UniqueConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT tc.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
		WHERE tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'UNIQUE'
		ORDER BY tc.constraint_name, kcu.ordinal_position`, schemaOr(schemaName), tableName)
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
		SELECT con.conname,
		       refns.nspname,
		       refcls.relname,
		       (SELECT string_agg(a.attname, ',' ORDER BY k.ord)
		        FROM unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord)
		        JOIN pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.attnum),
		       (SELECT string_agg(a.attname, ',' ORDER BY k.ord)
		        FROM unnest(con.confkey) WITH ORDINALITY AS k(attnum, ord)
		        JOIN pg_attribute a ON a.attrelid = con.confrelid AND a.attnum = k.attnum),
		       con.confdeltype, con.confupdtype
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_class refcls ON refcls.oid = con.confrelid
		JOIN pg_namespace refns ON refns.oid = refcls.relnamespace
		WHERE con.contype = 'f' AND n.nspname = $1 AND c.relname = $2
		ORDER BY con.conname`, schemaOr(schemaName), tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var constraints []schema.ForeignKeyConstraint
	for rows.Next() {
		var name, refSchema, refTable, srcCols, refCols, delType, updType string
		if err := rows.Scan(&name, &refSchema, &refTable, &srcCols, &refCols, &delType, &updType); err != nil {
			return nil, err
		}
		constraints = append(constraints, schema.ForeignKeyConstraint{
			SchemaName:           schemaOr(schemaName),
			TableName:            tableName,
			ConstraintName:       name,
			SourceColumns:        orderedColumns(srcCols),
			ReferencedSchemaName: refSchema,
			ReferencedTableName:  refTable,
			ReferencedColumns:    orderedColumns(refCols),
			OnDelete:             schema.ParseForeignKeyAction(delType),
			OnUpdate:             schema.ParseForeignKeyAction(updType),
		})
	}
	return constraints, rows.Err()
}

func orderedColumns(joined string) []schema.OrderedColumn {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]schema.OrderedColumn, len(parts))
	for i, p := range parts {
		out[i] = schema.Asc(strings.TrimSpace(p))
	}
	return out
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
