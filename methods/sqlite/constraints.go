package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

// ---- primary key ----

func (m *Methods) DoesPrimaryKeyConstraintExist(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	pk, err := m.GetPrimaryKeyConstraint(ctx, q, schemaName, tableName)
	return pk != nil, err
}

func (m *Methods) GetPrimaryKeyConstraint(ctx context.Context, q Querier, schemaName, tableName string) (*schema.PrimaryKeyConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}
	stored, err := m.tableSQL(ctx, q, tableName)
	if err != nil || stored == "" {
		return nil, err
	}
	_, pk, err := m.readColumns(ctx, q, tableName, parseTableDefinition(stored, tableName))
	return pk, err
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

	err = m.rebuildTable(ctx, q, pk.TableName, func(t *schema.Table) {
		t.PrimaryKeyConstraint = pk
		for _, oc := range pk.Columns {
			if col := t.Column(oc.ColumnName); col != nil {
				col.IsPrimaryKey = true
				col.IsNullable = false
			}
		}
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropPrimaryKeyConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	exists, err := m.DoesPrimaryKeyConstraintExist(ctx, q, schemaName, tableName)
	if err != nil || !exists {
		return false, err
	}

	err = m.rebuildTable(ctx, q, tableName, func(t *schema.Table) {
		t.PrimaryKeyConstraint = nil
		for i := range t.Columns {
			t.Columns[i].IsPrimaryKey = false
			t.Columns[i].IsAutoIncrement = false
		}
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ---- check constraints ----
//
// Check constraints live only in the stored CREATE TABLE text; add and drop
// both go through a rebuild.

func (m *Methods) getCheckConstraints(ctx context.Context, q Querier, tableName string) ([]schema.CheckConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}
	stored, err := m.tableSQL(ctx, q, tableName)
	if err != nil || stored == "" {
		return nil, err
	}
	return parseTableDefinition(stored, tableName).checks, nil
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

func (m *Methods) GetCheckConstraintOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.CheckConstraint, error) {
	if err := methods.Require(columnName, methods.ErrColumnNameRequired); err != nil {
		return nil, err
	}
	constraints, err := m.getCheckConstraints(ctx, q, tableName)
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

	err = m.rebuildTable(ctx, q, constraint.TableName, func(t *schema.Table) {
		t.CheckConstraints = append(t.CheckConstraints, *constraint)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropCheckConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	exists, err := m.DoesCheckConstraintExist(ctx, q, schemaName, tableName, constraintName)
	if err != nil || !exists {
		return false, err
	}

	err = m.rebuildTable(ctx, q, tableName, func(t *schema.Table) {
		kept := t.CheckConstraints[:0]
		for _, c := range t.CheckConstraints {
			if !strings.EqualFold(c.ConstraintName, constraintName) {
				kept = append(kept, c)
			}
		}
		t.CheckConstraints = kept
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ---- default constraints ----
//
// Defaults are column attributes in the stored CREATE TABLE text. Setting or
// clearing one rewrites the table.

func (m *Methods) getDefaultConstraints(ctx context.Context, q Querier, tableName string) ([]schema.DefaultConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", m.QuoteName(tableName)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var constraints []schema.DefaultConstraint
	for rows.Next() {
		var (
			cid, notNull, pkPos int
			name, declaredType  string
			dflt                sql.NullString
		)
		if err := rows.Scan(&cid, &name, &declaredType, &notNull, &dflt, &pkPos); err != nil {
			return nil, err
		}
		if !dflt.Valid {
			continue
		}
		constraints = append(constraints, schema.DefaultConstraint{
			TableName:      tableName,
			ColumnName:     name,
			ConstraintName: schema.GenerateDefaultConstraintName(tableName, name),
			Expression:     dflt.String,
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

	err = m.rebuildTable(ctx, q, constraint.TableName, func(t *schema.Table) {
		t.DefaultConstraints = append(t.DefaultConstraints, *constraint)
		if col := t.Column(constraint.ColumnName); col != nil {
			col.DefaultExpression = constraint.Expression
		}
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropDefaultConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	c, err := m.GetDefaultConstraint(ctx, q, schemaName, tableName, constraintName)
	if err != nil || c == nil {
		return false, err
	}

	err = m.rebuildTable(ctx, q, tableName, func(t *schema.Table) {
		kept := t.DefaultConstraints[:0]
		for _, dc := range t.DefaultConstraints {
			if !strings.EqualFold(dc.ConstraintName, constraintName) {
				kept = append(kept, dc)
			}
		}
		t.DefaultConstraints = kept
		if col := t.Column(c.ColumnName); col != nil {
			col.DefaultExpression = ""
		}
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ---- unique constraints ----
//
// Table-clause UNIQUE constraints surface in PRAGMA index_list with origin
// 'u'. Constraints added after table creation are backed by a standalone
// CREATE UNIQUE INDEX carrying the uc_ name prefix; both spellings are
// reported here.

func (m *Methods) getUniqueConstraints(ctx context.Context, q Querier, tableName string) ([]schema.UniqueConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	entries, err := m.indexList(ctx, q, tableName)
	if err != nil {
		return nil, err
	}

	var constraints []schema.UniqueConstraint
	for _, e := range entries {
		if !e.unique {
			continue
		}
		if e.origin != "u" && !strings.HasPrefix(strings.ToLower(e.name), "uc_") {
			continue
		}
		columns, err := m.indexColumns(ctx, q, e.name)
		if err != nil {
			return nil, err
		}
		name := e.name
		if strings.HasPrefix(strings.ToLower(name), "sqlite_autoindex_") {
			// Table-clause UNIQUE gets a reserved internal index name that
			// cannot be recreated verbatim, so the constraint surfaces (and
			// survives a table rebuild) under the deterministic name instead.
			name = schema.GenerateUniqueConstraintName(tableName, schema.ColumnNames(columns)...)
		}
		constraints = append(constraints, schema.UniqueConstraint{
			TableName:      tableName,
			ConstraintName: name,
			Columns:        columns,
		})
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

	stmt := fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)",
		m.QuoteName(constraint.ConstraintName), m.QuoteName(constraint.TableName),
		m.OrderedColumnList(constraint.Columns, false))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropUniqueConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	if err := methods.Require(constraintName, methods.ErrConstraintNameRequired); err != nil {
		return false, err
	}
	entries, err := m.indexList(ctx, q, tableName)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if !e.unique {
			continue
		}
		name := e.name
		if strings.HasPrefix(strings.ToLower(name), "sqlite_autoindex_") {
			columns, err := m.indexColumns(ctx, q, e.name)
			if err != nil {
				return false, err
			}
			name = schema.GenerateUniqueConstraintName(tableName, schema.ColumnNames(columns)...)
		}
		if !strings.EqualFold(name, constraintName) {
			continue
		}
		if e.origin == "u" {
			// Table-clause constraint: only a rebuild can remove it.
			err = m.rebuildTable(ctx, q, tableName, func(t *schema.Table) {
				kept := t.UniqueConstraints[:0]
				for _, uc := range t.UniqueConstraints {
					if !strings.EqualFold(uc.ConstraintName, constraintName) {
						kept = append(kept, uc)
					}
				}
				t.UniqueConstraints = kept
			})
			if err != nil {
				return false, err
			}
			return true, nil
		}
		if _, err := q.ExecContext(ctx, "DROP INDEX "+m.QuoteName(e.name)); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// ---- foreign key constraints ----
//
// PRAGMA foreign_key_list exposes no constraint names, so foreign keys are
// reported under the deterministic generated name. Add and drop rebuild.

func (m *Methods) getForeignKeyConstraints(ctx context.Context, q Querier, tableName string) ([]schema.ForeignKeyConstraint, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", m.QuoteName(tableName)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[int]*schema.ForeignKeyConstraint{}
	var order []int
	for rows.Next() {
		var (
			id, seq                                  int
			refTable, from, onUpdate, onDelete, mtch string
			to                                       sql.NullString
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &mtch); err != nil {
			return nil, err
		}
		fk, ok := byID[id]
		if !ok {
			fk = &schema.ForeignKeyConstraint{
				TableName:           tableName,
				ReferencedTableName: refTable,
				OnDelete:            schema.ParseForeignKeyAction(onDelete),
				OnUpdate:            schema.ParseForeignKeyAction(onUpdate),
			}
			byID[id] = fk
			order = append(order, id)
		}
		fk.SourceColumns = append(fk.SourceColumns, schema.Asc(from))
		if to.Valid {
			fk.ReferencedColumns = append(fk.ReferencedColumns, schema.Asc(to.String))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	constraints := make([]schema.ForeignKeyConstraint, 0, len(order))
	for _, id := range order {
		fk := byID[id]
		fk.ConstraintName = schema.GenerateForeignKeyName(
			tableName, schema.ColumnNames(fk.SourceColumns),
			fk.ReferencedTableName, schema.ColumnNames(fk.ReferencedColumns))
		constraints = append(constraints, *fk)
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

	err = m.rebuildTable(ctx, q, constraint.TableName, func(t *schema.Table) {
		t.ForeignKeyConstraints = append(t.ForeignKeyConstraints, *constraint)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropForeignKeyConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error) {
	exists, err := m.DoesForeignKeyConstraintExist(ctx, q, schemaName, tableName, constraintName)
	if err != nil || !exists {
		return false, err
	}

	err = m.rebuildTable(ctx, q, tableName, func(t *schema.Table) {
		kept := t.ForeignKeyConstraints[:0]
		for _, fk := range t.ForeignKeyConstraints {
			if !strings.EqualFold(fk.ConstraintName, constraintName) {
				kept = append(kept, fk)
			}
		}
		t.ForeignKeyConstraints = kept
		for i := range t.Columns {
			t.Columns[i].IsForeignKey = false
			t.Columns[i].ReferencedTableName = ""
			t.Columns[i].ReferencedColumnName = ""
		}
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
