package sqlite

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
		SELECT count(*) FROM sqlite_master WHERE type = 'view' AND name = ?`, viewName)
}

func (m *Methods) GetView(ctx context.Context, q Querier, schemaName, viewName string) (*schema.View, error) {
	if err := methods.Require(viewName, methods.ErrViewNameRequired); err != nil {
		return nil, err
	}

	var stored string
	row := q.QueryRowContext(ctx,
		`SELECT sql FROM sqlite_master WHERE type = 'view' AND name = ?`, viewName)
	if err := row.Scan(&stored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	// sqlite_master keeps the full CREATE VIEW statement.
	body, err := methods.StripViewPrologue(stored)
	if err != nil {
		return nil, err
	}
	return schema.NewView("", viewName, body), nil
}

func (m *Methods) GetViews(ctx context.Context, q Querier, schemaName, nameFilter string) ([]*schema.View, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name, sql FROM sqlite_master WHERE type = 'view' ORDER BY name`)
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
		views = append(views, schema.NewView("", name, body))
	}
	return views, rows.Err()
}

func (m *Methods) GetViewNames(ctx context.Context, q Querier, schemaName, nameFilter string) ([]string, error) {
	names, err := methods.FetchStrings(ctx, q, `
		SELECT name FROM sqlite_master WHERE type = 'view' ORDER BY name`)
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

	stmt := fmt.Sprintf("CREATE VIEW %s AS %s", m.QuoteName(view.ViewName), view.Definition)
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateViewIfExists drops and recreates; SQLite has no CREATE OR REPLACE.
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

	if _, err := q.ExecContext(ctx, "DROP VIEW "+m.QuoteName(viewName)); err != nil {
		return false, err
	}
	stmt := fmt.Sprintf("CREATE VIEW %s AS %s", m.QuoteName(viewName), definition)
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

// RenameViewIfExists drops and recreates under the new name; SQLite's
// ALTER ... RENAME does not apply to views.
func (m *Methods) RenameViewIfExists(ctx context.Context, q Querier, schemaName, viewName, newViewName string) (bool, error) {
	if err := methods.Require(newViewName, methods.ErrNewNameRequired); err != nil {
		return false, err
	}

	view, err := m.GetView(ctx, q, schemaName, viewName)
	if err != nil || view == nil {
		return false, err
	}

	if _, err := q.ExecContext(ctx, "DROP VIEW "+m.QuoteName(viewName)); err != nil {
		return false, err
	}
	stmt := fmt.Sprintf("CREATE VIEW %s AS %s", m.QuoteName(newViewName), view.Definition)
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropViewIfExists(ctx context.Context, q Querier, schemaName, viewName string) (bool, error) {
	exists, err := m.DoesViewExist(ctx, q, schemaName, viewName)
	if err != nil || !exists {
		return false, err
	}
	if _, err := q.ExecContext(ctx, "DROP VIEW "+m.QuoteName(viewName)); err != nil {
		return false, err
	}
	return true, nil
}
