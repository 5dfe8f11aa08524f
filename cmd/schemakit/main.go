package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Context represents the global context for commands
type Context struct {
	Verbose bool
	Quiet   bool
}

// CLI represents the command-line interface
var CLI struct {
	Verbose bool `help:"Enable verbose output" short:"v"`
	Quiet   bool `help:"Suppress output" short:"q"`

	Pull    PullCmd    `cmd:"" help:"Pull schema information from a live database into YAML files"`
	Types   TypesCmd   `cmd:"" help:"List the data types a provider supports"`
	Exists  ExistsCmd  `cmd:"" help:"Check whether a schema object exists"`
	Drop    DropCmd    `cmd:"" help:"Drop a schema object if it exists"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("schemakit v0.1.0")
	return nil
}

func main() {
	if err := loadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI)

	appCtx := &Context{
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
