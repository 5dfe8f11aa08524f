package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/shibukawa/schemakit/methods"
)

var ErrDatabaseURLRequired = errors.New("database connection string is required")

// PullCmd represents the pull command
type PullCmd struct {
	DB   string `help:"Database connection string" required:""`
	Type string `help:"Database type (postgresql, mysql, sqlite, sqlserver); detected from the URL when omitted"`

	Schema string `help:"Schema to pull from (engines without schemas ignore this)"`
	Tables string `help:"Table name filter, supports * and ? wildcards"`

	Output       string `short:"o" help:"Output directory" default:"./schema" type:"path"`
	IncludeViews bool   `help:"Include database views" default:"true"`
}

func (p *PullCmd) Run(ctx *Context) error {
	if p.DB == "" {
		return ErrDatabaseURLRequired
	}

	db, err := openDatabase(p.DB, p.Type)
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := methods.NewClient(db)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Pulling schema from %s database", client.ProviderType())
		color.Blue("Output directory: %s", p.Output)
	}

	pullCtx := context.Background()

	tables, err := client.GetTables(pullCtx, p.Schema, p.Tables)
	if err != nil {
		return fmt.Errorf("failed to read tables: %w", err)
	}

	written := 0
	for _, table := range tables {
		path, err := p.writeEntity(table.SchemaName, table.TableName+".yaml", table)
		if err != nil {
			return err
		}
		written++
		if ctx.Verbose {
			color.Green("Wrote: %s", path)
		}
	}

	viewCount := 0
	if p.IncludeViews {
		views, err := client.GetViews(pullCtx, p.Schema, "")
		if err != nil {
			return fmt.Errorf("failed to read views: %w", err)
		}
		for _, view := range views {
			path, err := p.writeEntity(view.SchemaName, filepath.Join("views", view.ViewName+".yaml"), view)
			if err != nil {
				return err
			}
			viewCount++
			if ctx.Verbose {
				color.Green("Wrote: %s", path)
			}
		}
	}

	if !ctx.Quiet {
		color.Green("Pulled %d table(s) and %d view(s)", written, viewCount)
	}
	return nil
}

// writeEntity marshals one table or view and writes it below the output
// directory, nested under the schema name when the engine has one.
func (p *PullCmd) writeEntity(schemaName, relPath string, entity any) (string, error) {
	data, err := yaml.Marshal(entity)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", relPath, err)
	}

	path := filepath.Join(p.Output, relPath)
	if schemaName != "" {
		path = filepath.Join(p.Output, schemaName, relPath)
	}
	if err := writeFile(path, data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
