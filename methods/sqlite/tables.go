package sqlite

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
		SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name = ? AND name NOT LIKE 'sqlite_%'`, tableName)
}

func (m *Methods) GetTableNames(ctx context.Context, q Querier, schemaName, nameFilter string) ([]string, error) {
	names, err := methods.FetchStrings(ctx, q, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
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
	return m.hydrateTable(ctx, q, tableName)
}

func (m *Methods) GetTables(ctx context.Context, q Querier, schemaName, nameFilter string) ([]*schema.Table, error) {
	names, err := m.GetTableNames(ctx, q, schemaName, nameFilter)
	if err != nil {
		return nil, err
	}

	tables := make([]*schema.Table, 0, len(names))
	for _, name := range names {
		t, err := m.hydrateTable(ctx, q, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (m *Methods) hydrateTable(ctx context.Context, q Querier, tableName string) (*schema.Table, error) {
	t := schema.NewTable("", tableName)

	stored, err := m.tableSQL(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	def := parseTableDefinition(stored, tableName)

	columns, pk, err := m.readColumns(ctx, q, tableName, def)
	if err != nil {
		return nil, err
	}
	t.Columns = columns
	t.PrimaryKeyConstraint = pk
	t.CheckConstraints = def.checks
	for i := range t.Columns {
		col := &t.Columns[i]
		if col.DefaultExpression != "" {
			t.DefaultConstraints = append(t.DefaultConstraints, schema.DefaultConstraint{
				TableName:      tableName,
				ColumnName:     col.ColumnName,
				ConstraintName: schema.GenerateDefaultConstraintName(tableName, col.ColumnName),
				Expression:     col.DefaultExpression,
			})
		}
	}

	if t.UniqueConstraints, err = m.getUniqueConstraints(ctx, q, tableName); err != nil {
		return nil, err
	}
	for _, uc := range t.UniqueConstraints {
		if len(uc.Columns) == 1 {
			if col := t.Column(uc.Columns[0].ColumnName); col != nil {
				col.IsUnique = true
			}
		}
	}

	if t.ForeignKeyConstraints, err = m.getForeignKeyConstraints(ctx, q, tableName); err != nil {
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

	if t.Indexes, err = m.GetIndexes(ctx, q, "", tableName, ""); err != nil {
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

// buildCreateTableSQL renders the CREATE TABLE statement plus follow-up
// CREATE INDEX statements. Unique constraints are emitted as named unique
// indexes rather than UNIQUE table clauses: SQLite names the index behind a
// table clause sqlite_autoindex_* and discards the constraint name, so a
// standalone index is the only spelling that keeps the name addressable.
func (m *Methods) buildCreateTableSQL(t *schema.Table) (string, []string, error) {
	var defs []string

	for i := range t.Columns {
		def, err := m.buildColumnDefinition(t, &t.Columns[i])
		if err != nil {
			return "", nil, err
		}
		defs = append(defs, def)
	}

	// A single-column pk on an INTEGER column must stay inline to keep
	// rowid aliasing (and AUTOINCREMENT) working; it is emitted above.
	if pk := t.PrimaryKeyConstraint; pk != nil && !m.inlinePrimaryKey(t) {
		defs = append(defs, m.PrimaryKeyClause(pk))
	}
	for i := range t.CheckConstraints {
		defs = append(defs, m.CheckClause(&t.CheckConstraints[i]))
	}
	for i := range t.ForeignKeyConstraints {
		defs = append(defs, m.ForeignKeyClause(&t.ForeignKeyConstraints[i]))
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s (\n  %s\n)",
		m.QuoteName(t.TableName), strings.Join(defs, ",\n  "))

	var indexSQL []string
	for i := range t.UniqueConstraints {
		uc := &t.UniqueConstraints[i]
		indexSQL = append(indexSQL, fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)",
			m.QuoteName(uc.ConstraintName), m.QuoteName(t.TableName),
			m.OrderedColumnList(uc.Columns, false)))
	}
	for i := range t.Indexes {
		ix := t.Indexes[i]
		ix.TableName = t.TableName
		indexSQL = append(indexSQL, m.buildCreateIndexSQL(&ix))
	}
	return createSQL, indexSQL, nil
}

// inlinePrimaryKey reports whether the table's primary key is emitted on the
// column definition rather than as a table clause.
func (m *Methods) inlinePrimaryKey(t *schema.Table) bool {
	pk := t.PrimaryKeyConstraint
	if pk == nil || len(pk.Columns) != 1 {
		return false
	}
	col := t.Column(pk.Columns[0].ColumnName)
	return col != nil && col.IsAutoIncrement
}

func (m *Methods) buildColumnDefinition(t *schema.Table, col *schema.Column) (string, error) {
	typeSQL, err := m.ColumnTypeSQL(col)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(m.QuoteName(col.ColumnName))
	sb.WriteByte(' ')

	// AUTOINCREMENT requires the exact spelling INTEGER PRIMARY KEY, which
	// only exists for a single-column primary key. In a composite key the
	// column falls through to the plain definition: emitting both the inline
	// form and the table-level PRIMARY KEY clause is a syntax error.
	if col.IsAutoIncrement && m.inlinePrimaryKey(t) &&
		strings.EqualFold(t.PrimaryKeyConstraint.Columns[0].ColumnName, col.ColumnName) {
		sb.WriteString("INTEGER PRIMARY KEY AUTOINCREMENT")
		return sb.String(), nil
	}

	sb.WriteString(typeSQL)
	if !col.IsNullable {
		sb.WriteString(" NOT NULL")
	}
	for i := range t.DefaultConstraints {
		dc := &t.DefaultConstraints[i]
		if strings.EqualFold(dc.ColumnName, col.ColumnName) {
			fmt.Fprintf(&sb, " DEFAULT %s", dc.Expression)
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
	if _, err := q.ExecContext(ctx, "DROP TABLE "+m.QuoteName(tableName)); err != nil {
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
	stmt := fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		m.QuoteName(tableName), m.QuoteName(newTableName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

// TruncateTableIfExists deletes all rows; SQLite has no TRUNCATE statement.
func (m *Methods) TruncateTableIfExists(ctx context.Context, q Querier, schemaName, tableName string) (bool, error) {
	exists, err := m.DoesTableExist(ctx, q, schemaName, tableName)
	if err != nil || !exists {
		return false, err
	}
	if _, err := q.ExecContext(ctx, "DELETE FROM "+m.QuoteName(tableName)); err != nil {
		return false, err
	}
	return true, nil
}

// rebuildTable applies a structural change SQLite's ALTER TABLE cannot
// express: hydrate the current definition, let mutate adjust it, recreate
// the table under a scratch name, copy the surviving columns, then swap.
func (m *Methods) rebuildTable(ctx context.Context, q Querier, tableName string, mutate func(*schema.Table)) error {
	t, err := m.hydrateTable(ctx, q, tableName)
	if err != nil {
		return err
	}
	oldColumns := make(map[string]bool, len(t.Columns))
	for i := range t.Columns {
		oldColumns[strings.ToLower(t.Columns[i].ColumnName)] = true
	}

	mutate(t)

	scratch := tableName + "_rebuild"
	t.TableName = scratch
	for i := range t.Indexes {
		t.Indexes[i].TableName = scratch
	}
	createSQL, indexSQL, err := m.buildCreateTableSQL(t)
	if err != nil {
		return err
	}

	var copied []string
	for i := range t.Columns {
		if oldColumns[strings.ToLower(t.Columns[i].ColumnName)] {
			copied = append(copied, m.QuoteName(t.Columns[i].ColumnName))
		}
	}

	if _, err := q.ExecContext(ctx, createSQL); err != nil {
		return err
	}
	if len(copied) > 0 {
		cols := strings.Join(copied, ", ")
		copySQL := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
			m.QuoteName(scratch), cols, cols, m.QuoteName(tableName))
		if _, err := q.ExecContext(ctx, copySQL); err != nil {
			return err
		}
	}
	if _, err := q.ExecContext(ctx, "DROP TABLE "+m.QuoteName(tableName)); err != nil {
		return err
	}
	renameSQL := fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		m.QuoteName(scratch), m.QuoteName(tableName))
	if _, err := q.ExecContext(ctx, renameSQL); err != nil {
		return err
	}
	// Dropping the old table took its indexes with it.
	for _, stmt := range indexSQL {
		stmt = strings.Replace(stmt, m.QuoteName(scratch), m.QuoteName(tableName), 1)
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
