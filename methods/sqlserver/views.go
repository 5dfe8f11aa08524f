package sqlserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

func (m *Methods) DoesViewExist(ctx context.Context, q Querier, schemaName, viewName string) (bool, error) {
	if err := methods.Require(viewName, methods.ErrViewNameRequired); err != nil {
		return false, err
	}
	return methods.FetchBool(ctx, q, `
		SELECT count(*) FROM sys.views v
		JOIN sys.schemas s ON s.schema_id = v.schema_id
		WHERE s.name = @p1 AND v.name = @p2`, schemaOr(schemaName), viewName)
}

func (m *Methods) GetView(ctx context.Context, q Querier, schemaName, viewName string) (*schema.View, error) {
	if err := methods.Require(viewName, methods.ErrViewNameRequired); err != nil {
		return nil, err
	}

	var stored string
	row := q.QueryRowContext(ctx, `
		SELECT sm.definition
		FROM sys.sql_modules sm
		JOIN sys.views v ON v.object_id = sm.object_id
		JOIN sys.schemas s ON s.schema_id = v.schema_id
		WHERE s.name = @p1 AND v.name = @p2`, schemaOr(schemaName), viewName)
	if err := row.Scan(&stored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	// sql_modules keeps the full CREATE VIEW batch text.
	body, err := methods.StripViewPrologue(stored)
	if err != nil {
		return nil, err
	}
	return schema.NewView(schemaOr(schemaName), viewName, body), nil
}

func (m *Methods) GetViews(ctx context.Context, q Querier, schemaName, nameFilter string) ([]*schema.View, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT v.name, sm.definition
		FROM sys.sql_modules sm
		JOIN sys.views v ON v.object_id = sm.object_id
		JOIN sys.schemas s ON s.schema_id = v.schema_id
		WHERE s.name = @p1
		ORDER BY v.name`, schemaOr(schemaName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*schema.View
	for rows.Next() {
		var name, stored string
		if err := rows.Scan(&name, &stored); err != nil {
			return nil, err
		}
		if !methods.MatchesFilter(name, nameFilter) {
			continue
		}
		body, err := methods.StripViewPrologue(stored)
		if err != nil {
			return nil, err
		}
		views = append(views, schema.NewView(schemaOr(schemaName), name, body))
	}
	return views, rows.Err()
}

func (m *Methods) GetViewNames(ctx context.Context, q Querier, schemaName, nameFilter string) ([]string, error) {
	names, err := methods.FetchStrings(ctx, q, `
		SELECT v.name FROM sys.views v
		JOIN sys.schemas s ON s.schema_id = v.schema_id
		WHERE s.name = @p1 ORDER BY v.name`, schemaOr(schemaName))
	if err != nil {
		return nil, err
	}
	return methods.FilterNames(names, nameFilter), nil
}

func (m *Methods) CreateViewIfNotExists(ctx context.Context, q Querier, view *schema.View) (bool, error) {
	if view == nil || methods.Require(view.ViewName, methods.ErrViewNameRequired) != nil {
		return false, methods.ErrViewNameRequired
	}
	if err := methods.Require(view.Definition, methods.ErrDefinitionRequired); err != nil {
		return false, err
	}

	exists, err := m.DoesViewExist(ctx, q, view.SchemaName, view.ViewName)
	if err != nil || exists {
		return false, err
	}

	stmt := fmt.Sprintf("CREATE VIEW %s AS %s",
		m.Qualified(schemaOr(view.SchemaName), view.ViewName), view.Definition)
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) UpdateViewIfExists(ctx context.Context, q Querier, schemaName, viewName, definition string) (bool, error) {
	if err := methods.Require(viewName, methods.ErrViewNameRequired); err != nil {
		return false, err
	}
	if err := methods.Require(definition, methods.ErrDefinitionRequired); err != nil {
		return false, err
	}

	exists, err := m.DoesViewExist(ctx, q, schemaName, viewName)
	if err != nil || !exists {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER VIEW %s AS %s",
		m.Qualified(schemaOr(schemaName), viewName), definition)
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) RenameViewIfExists(ctx context.Context, q Querier, schemaName, viewName, newViewName string) (bool, error) {
	if err := methods.Require(viewName, methods.ErrViewNameRequired); err != nil {
		return false, err
	}
	if err := methods.Require(newViewName, methods.ErrNewNameRequired); err != nil {
		return false, err
	}

	exists, err := m.DoesViewExist(ctx, q, schemaName, viewName)
	if err != nil || !exists {
		return false, err
	}

	if _, err := q.ExecContext(ctx, "EXEC sp_rename @p1, @p2",
		schemaOr(schemaName)+"."+viewName, newViewName); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropViewIfExists(ctx context.Context, q Querier, schemaName, viewName string) (bool, error) {
	exists, err := m.DoesViewExist(ctx, q, schemaName, viewName)
	if err != nil || !exists {
		return false, err
	}
	if _, err := q.ExecContext(ctx, "DROP VIEW "+m.Qualified(schemaOr(schemaName), viewName)); err != nil {
		return false, err
	}
	return true, nil
}
