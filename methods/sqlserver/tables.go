package sqlserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

func (m *Methods) DoesTableExist(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return false, err
	}
	return methods.FetchBool(ctx, q, `
		SELECT count(*) FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 AND TABLE_TYPE = 'BASE TABLE'`,
		schemaOr(schemaName), tableName)
}

func (m *Methods) GetTableNames(ctx context.Context, q Querier, schemaName, nameFilter string) ([]string, error) {
	names, err := methods.FetchStrings(ctx, q, `
		SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`, schemaOr(schemaName))
	if err != nil {
		return nil, err
	}
	return methods.FilterNames(names, nameFilter), nil
}

func (m *Methods) GetTable(ctx context.Context, q Querier, schemaName, tableName string) (*schema.Table, error) {
	exists, err := m.DoesTableExist(ctx, q, schemaName, tableName)
	if err != nil || !exists {
		return nil, err
	}
	return m.hydrateTable(ctx, q, schemaOr(schemaName), tableName)
}

func (m *Methods) GetTables(ctx context.Context, q Querier, schemaName, nameFilter string) ([]*schema.Table, error) {
	names, err := m.GetTableNames(ctx, q, schemaName, nameFilter)
	if err != nil {
		return nil, err
	}

	tables := make([]*schema.Table, 0, len(names))
	for _, name := range names {
		t, err := m.hydrateTable(ctx, q, schemaOr(schemaName), name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (m *Methods) hydrateTable(ctx context.Context, q Querier, schemaName, tableName string) (*schema.Table, error) {
	t := schema.NewTable(schemaName, tableName)

	columns, err := m.GetColumns(ctx, q, schemaName, tableName, "")
	if err != nil {
		return nil, err
	}
	t.Columns = columns

	if t.PrimaryKeyConstraint, err = m.GetPrimaryKeyConstraint(ctx, q, schemaName, tableName); err != nil {
		return nil, err
	}
	if t.PrimaryKeyConstraint != nil {
		for _, oc := range t.PrimaryKeyConstraint.Columns {
			if col := t.Column(oc.ColumnName); col != nil {
				col.IsPrimaryKey = true
			}
		}
	}

	if t.CheckConstraints, err = m.GetCheckConstraints(ctx, q, schemaName, tableName, ""); err != nil {
		return nil, err
	}
	if t.DefaultConstraints, err = m.GetDefaultConstraints(ctx, q, schemaName, tableName, ""); err != nil {
		return nil, err
	}
	if t.UniqueConstraints, err = m.GetUniqueConstraints(ctx, q, schemaName, tableName, ""); err != nil {
		return nil, err
	}
	if t.ForeignKeyConstraints, err = m.GetForeignKeyConstraints(ctx, q, schemaName, tableName, ""); err != nil {
		return nil, err
	}
	for _, fk := range t.ForeignKeyConstraints {
		if len(fk.SourceColumns) != 1 {
			continue
		}
		if col := t.Column(fk.SourceColumns[0].ColumnName); col != nil {
			col.IsForeignKey = true
			col.ReferencedTableName = fk.ReferencedTableName
			if len(fk.ReferencedColumns) == 1 {
				col.ReferencedColumnName = fk.ReferencedColumns[0].ColumnName
			}
			col.OnDelete = fk.OnDelete
			col.OnUpdate = fk.OnUpdate
		}
	}

	if t.Indexes, err = m.GetIndexes(ctx, q, schemaName, tableName, ""); err != nil {
		return nil, err
	}

	return t, nil
}

func (m *Methods) CreateTableIfNotExists(ctx context.Context, q Querier, table *schema.Table) (bool, error) {
	if table == nil || methods.Require(table.TableName, methods.ErrTableNameRequired) != nil {
		return false, methods.ErrTableNameRequired
	}
	if len(table.Columns) == 0 {
		return false, methods.ErrNoColumnsSpecified
	}

	exists, err := m.DoesTableExist(ctx, q, table.SchemaName, table.TableName)
	if err != nil || exists {
		return false, err
	}

	t := methods.NormalizeTable(table)
	createSQL, indexSQL, err := m.buildCreateTableSQL(t)
	if err != nil {
		return false, err
	}

	if _, err := q.ExecContext(ctx, createSQL); err != nil {
		return false, err
	}
	for _, stmt := range indexSQL {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (m *Methods) buildCreateTableSQL(t *schema.Table) (string, []string, error) {
	schemaName := schemaOr(t.SchemaName)
	var defs []string

	for i := range t.Columns {
		def, err := m.buildColumnDefinition(t, &t.Columns[i])
		if err != nil {
			return "", nil, err
		}
		defs = append(defs, def)
	}

	// Single-column primary keys are emitted inline above.
	if pk := t.PrimaryKeyConstraint; pk != nil && len(pk.Columns) > 1 {
		defs = append(defs, m.PrimaryKeyClause(pk))
	}
	for i := range t.CheckConstraints {
		defs = append(defs, m.CheckClause(&t.CheckConstraints[i]))
	}
	for i := range t.UniqueConstraints {
		defs = append(defs, m.UniqueClause(&t.UniqueConstraints[i]))
	}
	for i := range t.ForeignKeyConstraints {
		defs = append(defs, m.ForeignKeyClause(&t.ForeignKeyConstraints[i]))
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s (\n  %s\n)",
		m.Qualified(schemaName, t.TableName), strings.Join(defs, ",\n  "))

	var indexSQL []string
	for i := range t.Indexes {
		ix := t.Indexes[i]
		ix.SchemaName = schemaName
		ix.TableName = t.TableName
		indexSQL = append(indexSQL, m.buildCreateIndexSQL(&ix))
	}
	return createSQL, indexSQL, nil
}

func (m *Methods) buildColumnDefinition(t *schema.Table, col *schema.Column) (string, error) {
	typeSQL, err := m.ColumnTypeSQL(col)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(m.QuoteName(col.ColumnName))
	sb.WriteByte(' ')
	sb.WriteString(typeSQL)

	if col.IsAutoIncrement {
		sb.WriteString(" IDENTITY(1,1)")
	}
	if !col.IsNullable {
		sb.WriteString(" NOT NULL")
	}
	if pk := t.PrimaryKeyConstraint; pk != nil && len(pk.Columns) == 1 &&
		strings.EqualFold(pk.Columns[0].ColumnName, col.ColumnName) {
		fmt.Fprintf(&sb, " CONSTRAINT %s PRIMARY KEY", m.QuoteName(pk.ConstraintName))
	}
	for i := range t.DefaultConstraints {
		dc := &t.DefaultConstraints[i]
		if strings.EqualFold(dc.ColumnName, col.ColumnName) {
			fmt.Fprintf(&sb, " CONSTRAINT %s DEFAULT %s", m.QuoteName(dc.ConstraintName), dc.Expression)
			break
		}
	}
	return sb.String(), nil
}

func (m *Methods) DropTableIfExists(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	exists, err := m.DoesTableExist(ctx, q, schemaName, tableName)
	if err != nil || !exists {
		return false, err
	}
	if _, err := q.ExecContext(ctx, "DROP TABLE "+m.Qualified(schemaOr(schemaName), tableName)); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) RenameTableIfExists(ctx context.Context, q Querier, schemaName, tableName, newTableName string) (bool, error) {
	if err := methods.Require(newTableName, methods.ErrNewNameRequired); err != nil {
		return false, err
	}
	exists, err := m.DoesTableExist(ctx, q, schemaName, tableName)
	if err != nil || !exists {
		return false, err
	}
	if _, err := q.ExecContext(ctx, "EXEC sp_rename @p1, @p2",
		schemaOr(schemaName)+"."+tableName, newTableName); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) TruncateTableIfExists(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	exists, err := m.DoesTableExist(ctx, q, schemaName, tableName)
	if err != nil || !exists {
		return false, err
	}
	if _, err := q.ExecContext(ctx, "TRUNCATE TABLE "+m.Qualified(schemaOr(schemaName), tableName)); err != nil {
		return false, err
	}
	return true, nil
}
