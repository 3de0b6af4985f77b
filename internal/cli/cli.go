// Package cli implements the hackerslides command-line interface.
//
// This package provides commands for rendering slide decks written in the
// hackerslides markup to PNG images, validating decks without rendering,
// and inspecting the renderer's font inventory. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Compile a deck and run the external rendering tools
//   - parse: Parse and validate a deck, optionally dumping the model as JSON
//   - fonts: Show the renderer font inventory and per-role selections
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hackerslides/hackerslides/pkg/buildinfo"
	"github.com/hackerslides/hackerslides/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "hackerslides"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Hackerslides renders plain-text slide decks to images",
		Long:         `Hackerslides is a CLI tool that compiles a small plain-text markup for slide decks into a deterministic sequence of ImageMagick operations, producing one PNG per slide.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
