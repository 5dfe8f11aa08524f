package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
)

func (m *Methods) DoesViewExist(ctx context.Context, q Querier, schemaName, viewName string) (bool, error) {
	if err := methods.Require(viewName, methods.ErrViewNameRequired); err != nil {
		return false, err
	}
	return methods.FetchBool(ctx, q, `
		SELECT count(*) FROM information_schema.views
		WHERE table_schema = DATABASE() AND table_name = ?`, viewName)
}

func (m *Methods) GetView(ctx context.Context, q Querier, schemaName, viewName string) (*schema.View, error) {
	if err := methods.Require(viewName, methods.ErrViewNameRequired); err != nil {
		return nil, err
	}

	var definition string
	row := q.QueryRowContext(ctx, `
		SELECT view_definition FROM information_schema.views
		WHERE table_schema = DATABASE() AND table_name = ?`, viewName)
	if err := row.Scan(&definition); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return schema.NewView("", viewName, strings.TrimSpace(definition)), nil
}

func (m *Methods) GetViews(ctx context.Context, q Querier, schemaName, nameFilter string) ([]*schema.View, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT table_name, view_definition FROM information_schema.views
		WHERE table_schema = DATABASE() ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*schema.View
	for rows.Next() {
		var name, definition string
		if err := rows.Scan(&name, &definition); err != nil {
			return nil, err
		}
		if !methods.MatchesFilter(name, nameFilter) {
			continue
		}
		views = append(views, schema.NewView("", name, strings.TrimSpace(definition)))
	}
	return views, rows.Err()
}

func (m *Methods) GetViewNames(ctx context.Context, q Querier, schemaName, nameFilter string) ([]string, error) {
	names, err := methods.FetchStrings(ctx, q, `
		SELECT table_name FROM information_schema.views
		WHERE table_schema = DATABASE()`)
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

	stmt := fmt.Sprintf("CREATE OR REPLACE VIEW %s AS %s", m.QuoteName(viewName), definition)
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

	// RENAME TABLE also renames views.
	stmt := fmt.Sprintf("RENAME TABLE %s TO %s", m.QuoteName(viewName), m.QuoteName(newViewName))
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
