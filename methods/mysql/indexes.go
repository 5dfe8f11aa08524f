package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

// getIndexes reads plain indexes from information_schema.statistics. The
// primary key and constraint-backed unique indexes are excluded; those
// surface through the constraint APIs.
func (m *Methods) getIndexes(ctx context.Context, q Querier, tableName string) ([]schema.Index, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT s.index_name, s.non_unique, s.column_name, s.collation
		FROM information_schema.statistics s
		WHERE s.table_schema = DATABASE() AND s.table_name = ?
		  AND s.index_name <> 'PRIMARY'
		  AND s.index_name NOT IN (
		    SELECT tc.constraint_name FROM information_schema.table_constraints tc
		    WHERE tc.table_schema = s.table_schema AND tc.table_name = s.table_name
		  )
		ORDER BY s.index_name, s.seq_in_index`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*schema.Index{}
	var order []string
	for rows.Next() {
		var (
			name, columnName string
			nonUnique        int
			collation        *string
		)
		if err := rows.Scan(&name, &nonUnique, &columnName, &collation); err != nil {
			return nil, err
		}
		ix, ok := byName[name]
		if !ok {
			ix = &schema.Index{
				TableName: tableName,
				IndexName: name,
				IsUnique:  nonUnique == 0,
			}
			byName[name] = ix
			order = append(order, name)
		}
		if collation != nil && *collation == "D" {
			ix.Columns = append(ix.Columns, schema.Desc(columnName))
		} else {
			ix.Columns = append(ix.Columns, schema.Asc(columnName))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	indexes := make([]schema.Index, 0, len(order))
	for _, name := range order {
		indexes = append(indexes, *byName[name])
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

	unique := ""
	if index.IsUnique {
		unique = "UNIQUE "
	}
	stmt := fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)",
		unique, m.QuoteName(index.IndexName), m.QuoteName(index.TableName),
		m.OrderedColumnList(index.Columns, true))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropIndexIfExists(ctx context.Context, q Querier, schemaName, tableName, indexName string) (bool, error) {
	exists, err := m.DoesIndexExist(ctx, q, schemaName, tableName, indexName)
	if err != nil || !exists {
		return false, err
	}
	stmt := fmt.Sprintf("DROP INDEX %s ON %s", m.QuoteName(indexName), m.QuoteName(tableName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}
