package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/datatypes"
)

var ErrUnknownProvider = errors.New("unknown provider")

// TypesCmd represents the types command
type TypesCmd struct {
	Provider string `arg:"" help:"Provider to list types for (postgresql, mysql, sqlite, sqlserver)"`
	Category string `help:"Only show types in this category"`
	Advanced bool   `help:"Include advanced/uncommon types"`
}

func (t *TypesCmd) Run(ctx *Context) error {
	provider := schemakit.ParseProviderType(t.Provider)
	registry := datatypes.ForProvider(provider)
	if registry == nil {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, t.Provider)
	}

	var types []*datatypes.DataTypeInfo
	if t.Category != "" {
		types = registry.DataTypesForCategory(datatypes.Category(strings.ToLower(t.Category)))
	} else {
		types = registry.AvailableDataTypes(t.Advanced)
	}

	if len(types) == 0 {
		if !ctx.Quiet {
			color.Yellow("No data types found")
		}
		return nil
	}

	var lastCategory datatypes.Category
	for _, info := range types {
		if info.Category != lastCategory {
			color.Cyan("%s:", info.Category)
			lastCategory = info.Category
		}
		fmt.Printf("  %s%s\n", info.Name, describeType(info))
	}
	return nil
}

func describeType(info *datatypes.DataTypeInfo) string {
	var parts []string
	if info.SupportsLength {
		parts = append(parts, fmt.Sprintf("length %d..%d", info.MinLength, info.MaxLength))
	}
	if info.SupportsPrecision {
		parts = append(parts, fmt.Sprintf("precision %d..%d", info.MinPrecision, info.MaxPrecision))
	}
	if info.SupportsScale {
		parts = append(parts, fmt.Sprintf("scale %d..%d", info.MinScale, info.MaxScale))
	}
	if len(info.Aliases) > 0 {
		parts = append(parts, "aliases: "+strings.Join(info.Aliases, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, "; ") + ")"
}
