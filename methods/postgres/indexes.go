package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

// getIndexes reads plain indexes from pg_index, excluding indexes that back a
// primary key or a constraint (those surface through the constraint APIs).
func (m *Methods) getIndexes(ctx context.Context, q Querier, schemaName, tableName string) ([]schema.Index, error) {
	if err := methods.Require(tableName, methods.ErrTableNameRequired); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT ic.relname,
		       ix.indisunique,
		       (SELECT string_agg(a.attname || CASE WHEN ix.indoption[k.ord-1] & 1 = 1 THEN ' DESC' ELSE '' END, ',' ORDER BY k.ord)
		        FROM unnest(ix.indkey) WITH ORDINALITY AS k(attnum, ord)
		        JOIN pg_attribute a ON a.attrelid = ix.indrelid AND a.attnum = k.attnum)
		FROM pg_index ix
		JOIN pg_class c ON c.oid = ix.indrelid
		JOIN pg_class ic ON ic.oid = ix.indexrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2
		  AND NOT ix.indisprimary
		  AND NOT EXISTS (SELECT 1 FROM pg_constraint con WHERE con.conindid = ix.indexrelid)
		ORDER BY ic.relname`, schemaOr(schemaName), tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []schema.Index
	for rows.Next() {
		var name, columns string
		var unique bool
		if err := rows.Scan(&name, &unique, &columns); err != nil {
			return nil, err
		}
		indexes = append(indexes, schema.Index{
			SchemaName: schemaOr(schemaName),
			TableName:  tableName,
			IndexName:  name,
			Columns:    parseIndexColumns(columns),
			IsUnique:   unique,
		})
	}
	return indexes, rows.Err()
}

func parseIndexColumns(joined string) []schema.OrderedColumn {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]schema.OrderedColumn, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if name, ok := strings.CutSuffix(p, " DESC"); ok {
			out[i] = schema.Desc(name)
		} else {
			out[i] = schema.Asc(p)
		}
	}
	return out
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
	stmt := fmt.Sprintf("DROP INDEX %s", m.Qualified(schemaOr(schemaName), indexName))
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}
