package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hackerslides/hackerslides/pkg/errors"
	"github.com/hackerslides/hackerslides/pkg/pipeline"
)

// renderCommand creates the render command: the full parse → compile →
// execute pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	opts := pipeline.Options{}
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "render <deck>",
		Short: "Render a slide deck to PNG images",
		Long: `Render a slide deck to PNG images.

The deck is parsed, compiled into an exact sequence of ImageMagick (and,
for code slides, pygmentize) invocations, and executed. The output
directory is deleted and recreated before any slide renders, and slides
are written as slide_000.png, slide_001.png, ... in deck order.

Use --dry-run to print the compiled command stream without executing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.applyTo(&opts)
			opts.DryRun = dryRun
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Resolution, "resolution", "r", "", "output resolution as WIDTHxHEIGHT (default 1920x1080)")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "output directory (default \"out\")")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the command stream instead of executing it")

	return cmd
}

// runRender executes the pipeline for one deck file.
func (c *CLI) runRender(ctx context.Context, path string, opts pipeline.Options) error {
	// Validate here so the defaulted output dir is known when reported
	// below; Run receives a copy and would only default its own.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read deck %s", path)
	}

	runner := c.newRunner()

	if opts.DryRun {
		result, err := runner.Run(ctx, string(source), opts)
		if err != nil {
			return err
		}
		printInfo("render plan: %d command(s)", len(result.Commands))
		for _, command := range result.Commands {
			printCommand(command.String())
		}
		return nil
	}

	// The spinner and stage logs share stderr; show one or the other.
	verbose := c.Logger.GetLevel() <= log.DebugLevel
	var spinner *Spinner
	if !verbose {
		runner = pipeline.NewRunner(newLogger(os.Stderr, log.WarnLevel))
		spinner = newSpinner(ctx, fmt.Sprintf("Rendering %s...", path))
		spinner.Start()
	}

	result, err := runner.Run(ctx, string(source), opts)
	if err != nil {
		if spinner != nil {
			spinner.Stop()
		}
		return err
	}
	if spinner != nil {
		spinner.StopWithSuccess(fmt.Sprintf("Rendered %d slide(s)", result.Stats.SlideCount))
	} else {
		printSuccess("Rendered %d slide(s)", result.Stats.SlideCount)
	}
	printFile(opts.OutputDir)
	return nil
}
