package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/schemakit/methods"
)

var ErrUnknownObjectKind = errors.New("unknown object kind, want table, view, index or schema")

// objectTarget holds the shared flags of the exists and drop commands.
type objectTarget struct {
	DB   string `help:"Database connection string" required:""`
	Type string `help:"Database type; detected from the URL when omitted"`

	Kind   string `arg:"" help:"Object kind: table, view, index or schema"`
	Name   string `arg:"" help:"Object name"`
	Schema string `help:"Schema the object lives in"`
	Table  string `help:"Owning table (required for index)"`
}

func (o *objectTarget) client() (*methods.Client, func(), error) {
	db, err := openDatabase(o.DB, o.Type)
	if err != nil {
		return nil, nil, err
	}
	client, err := methods.NewClient(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return client, func() { db.Close() }, nil
}

// ExistsCmd represents the exists command
type ExistsCmd struct {
	objectTarget
}

func (e *ExistsCmd) Run(ctx *Context) error {
	client, closeDB, err := e.client()
	if err != nil {
		return err
	}
	defer closeDB()

	execCtx := context.Background()

	var exists bool
	switch e.Kind {
	case "table":
		exists, err = client.DoesTableExist(execCtx, e.Schema, e.Name)
	case "view":
		exists, err = client.DoesViewExist(execCtx, e.Schema, e.Name)
	case "index":
		exists, err = client.DoesIndexExist(execCtx, e.Schema, e.Table, e.Name)
	case "schema":
		exists, err = client.DoesSchemaExist(execCtx, e.Name)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownObjectKind, e.Kind)
	}
	if err != nil {
		return err
	}

	if exists {
		color.Green("%s %s exists", e.Kind, e.Name)
	} else {
		color.Yellow("%s %s does not exist", e.Kind, e.Name)
	}
	return nil
}

// DropCmd represents the drop command
type DropCmd struct {
	objectTarget
}

func (d *DropCmd) Run(ctx *Context) error {
	client, closeDB, err := d.client()
	if err != nil {
		return err
	}
	defer closeDB()

	execCtx := context.Background()

	var dropped bool
	switch d.Kind {
	case "table":
		dropped, err = client.DropTableIfExists(execCtx, d.Schema, d.Name)
	case "view":
		dropped, err = client.DropViewIfExists(execCtx, d.Schema, d.Name)
	case "index":
		dropped, err = client.DropIndexIfExists(execCtx, d.Schema, d.Table, d.Name)
	case "schema":
		dropped, err = client.DropSchemaIfExists(execCtx, d.Name)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownObjectKind, d.Kind)
	}
	if err != nil {
		return err
	}

	if !ctx.Quiet {
		if dropped {
			color.Green("Dropped %s %s", d.Kind, d.Name)
		} else {
			color.Yellow("%s %s did not exist", d.Kind, d.Name)
		}
	}
	return nil
}
