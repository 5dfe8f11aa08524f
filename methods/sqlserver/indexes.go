package sqlserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

// getIndexes reads plain indexes from sys.indexes, excluding the ones that
// back a primary key or unique constraint (those surface through the
// constraint APIs).
func (m *Methods) getIndexes(ctx context.Context, q Querier, schemaName, tableName string) ([]schema.Index, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT i.name, i.is_unique, c.name, ic.is_descending_key
		FROM sys.indexes i
		JOIN sys.tables t ON t.object_id = i.object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
		JOIN sys.columns c ON c.object_id = i.object_id AND c.column_id = ic.column_id
		WHERE s.name = @p1 AND t.name = @p2
		  AND i.is_primary_key = 0 AND i.is_unique_constraint = 0
		  AND i.type > 0 AND i.name IS NOT NULL
		ORDER BY i.name, ic.key_ordinal`, schemaOr(schemaName), tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*schema.Index{}
	var order []string
	for rows.Next() {
		var (
			name, columnName   string
			unique, descending bool
		)
		if err := rows.Scan(&name, &unique, &columnName, &descending); err != nil {
			return nil, err
		}
		ix, ok := byName[name]
		if !ok {
			ix = &schema.Index{
				SchemaName: schemaOr(schemaName),
				TableName:  tableName,
				IndexName:  name,
				IsUnique:   unique,
			}
			byName[name] = ix
			order = append(order, name)
		}
		if descending {
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
	indexes, err := m.getIndexes(ctx, q, schemaName, tableName)
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
	indexes, err := m.getIndexes(ctx, q, schemaName, tableName)
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
	indexes, err := m.getIndexes(ctx, q, schemaName, tableName)
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
	indexes, err := m.getIndexes(ctx, q, schemaName, tableName)
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
		unique, m.QuoteName(ix.IndexName),
		m.Qualified(schemaOr(ix.SchemaName), ix.TableName),
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
	stmt := fmt.Sprintf("DROP INDEX %s ON %s",
		m.QuoteName(indexName), m.Qualified(schemaOr(schemaName), tableName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}
