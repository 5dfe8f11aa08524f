package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

// indexEntry is one row of PRAGMA index_list: origin is 'c' for CREATE
// INDEX, 'u' for a UNIQUE table clause, 'pk' for the primary key.
type indexEntry struct {
	name   string
	unique bool
	origin string
}

func (m *Methods) indexList(ctx context.Context, q Querier, tableName string) ([]indexEntry, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA index_list(%s)", m.QuoteName(tableName)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []indexEntry
	for rows.Next() {
		var (
			seq, unique, partial int
			name, origin         string
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return nil, err
		}
		entries = append(entries, indexEntry{name: name, unique: unique == 1, origin: origin})
	}
	return entries, rows.Err()
}

func (m *Methods) indexColumns(ctx context.Context, q Querier, indexName string) ([]schema.OrderedColumn, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA index_info(%s)", m.QuoteName(indexName)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.OrderedColumn
	for rows.Next() {
		var (
			seqno, cid int
			name       *string
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, err
		}
		if name != nil {
			columns = append(columns, schema.Asc(*name))
		}
	}
	return columns, rows.Err()
}

// getIndexes lists plain indexes: CREATE INDEX entries that are not the
// uc_-named unique indexes backing unique constraints.
func (m *Methods) getIndexes(ctx context.Context, q Querier, tableName string) ([]schema.Index, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	entries, err := m.indexList(ctx, q, tableName)
	if err != nil {
		return nil, err
	}

	var indexes []schema.Index
	for _, e := range entries {
		if e.origin != "c" {
			continue
		}
		if e.unique && strings.HasPrefix(strings.ToLower(e.name), "uc_") {
			continue
		}
		columns, err := m.indexColumns(ctx, q, e.name)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, schema.Index{
			TableName: tableName,
			IndexName: e.name,
			Columns:   columns,
			IsUnique:  e.unique,
		})
	}
	return indexes, nil
}

func (m *Methods) DoesIndexExist(ctx context.Context, q Querier, schemaName, tableName, indexName string) (bool, error) {
	ix, err := m.GetIndex(ctx, q, schemaName, tableName, indexName)
	return ix != nil, err
}

func (m *Methods) DoesIndexExistOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error) {
	if err := methods.Require(columnName, methods.ErrColumnNameRequired); err != nil {
		return false, err
	}
	indexes, err := m.getIndexes(ctx, q, tableName)
	if err != nil {
		return false, err
	}
	for _, ix := range indexes {
		for _, oc := range ix.Columns {
			if strings.EqualFold(oc.ColumnName, columnName) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *Methods) GetIndex(ctx context.Context, q Querier, schemaName, tableName, indexName string) (*schema.Index, error) {
	if err := methods.Require(indexName, methods.ErrIndexNameRequired); err != nil {
		return nil, err
	}
	indexes, err := m.getIndexes(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	for i := range indexes {
		if strings.EqualFold(indexes[i].IndexName, indexName) {
			return &indexes[i], nil
		}
	}
	return nil, nil
}

func (m *Methods) GetIndexes(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.Index, error) {
	indexes, err := m.getIndexes(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	out := indexes[:0]
	for _, ix := range indexes {
		if methods.MatchesFilter(ix.IndexName, nameFilter) {
			out = append(out, ix)
		}
	}
	return out, nil
}

func (m *Methods) GetIndexNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error) {
	indexes, err := m.getIndexes(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(indexes))
	for i, ix := range indexes {
		names[i] = ix.IndexName
	}
	return methods.FilterNames(names, nameFilter), nil
}

func (m *Methods) buildCreateIndexSQL(ix *schema.Index) string {
	unique := ""
	if ix.IsUnique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)",
		unique, m.QuoteName(ix.IndexName), m.QuoteName(ix.TableName),
		m.OrderedColumnList(ix.Columns, true))
}

func (m *Methods) CreateIndexIfNotExists(ctx context.Context, q Querier, index *schema.Index) (bool, error) {
	if index == nil || methods.Require(index.TableName, methods.ErrTableNameRequired) != nil {
		return false, methods.ErrTableNameRequired
	}
	if len(index.Columns) == 0 {
		return false, methods.ErrNoColumnsSpecified
	}
	if index.IndexName == "" {
		index.IndexName = schema.GenerateIndexName(index.TableName, schema.ColumnNames(index.Columns)...)
	}

	exists, err := m.DoesIndexExist(ctx, q, index.SchemaName, index.TableName, index.IndexName)
	if err != nil || exists {
		return false, err
	}

	if _, err := q.ExecContext(ctx, m.buildCreateIndexSQL(index)); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropIndexIfExists(ctx context.Context, q Querier, schemaName, tableName, indexName string) (bool, error) {
	exists, err := m.DoesIndexExist(ctx, q, schemaName, tableName, indexName)
	if err != nil || !exists {
		return false, err
	}
	if _, err := q.ExecContext(ctx, "DROP INDEX "+m.QuoteName(indexName)); err != nil {
		return false, err
	}
	return true, nil
}
