package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hackerslides/hackerslides/pkg/pipeline"
	"github.com/hackerslides/hackerslides/pkg/render"
)

// fontsCommand creates the fonts command showing the renderer's font
// inventory and the per-role selections the compiler would make.
func (c *CLI) fontsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "Show renderer fonts and per-role selections",
		Long: `Show which fonts the rendering tool provides and which one each
rendering role (text, code, meme) resolves to. A role with no available
preferred font falls back to the tool's implicit default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts := pipeline.Options{}
			cfg.applyTo(&opts)
			return c.runFonts(cmd.Context(), opts, all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "list the full font inventory")

	return cmd
}

func (c *CLI) runFonts(ctx context.Context, opts pipeline.Options, all bool) error {
	runner := c.newRunner()
	fonts, err := runner.Fonts(ctx, opts)
	if err != nil {
		return err
	}

	selector, err := render.NewFontSelector(ctx, staticFonts(fonts), c.Logger)
	if err != nil {
		return err
	}

	printInfo("%d font(s) available to the renderer", len(fonts))
	for _, role := range []struct {
		name    string
		choices []string
	}{
		{"text", fontChoices(opts.TextFonts, render.TextFonts)},
		{"code", fontChoices(opts.CodeFonts, render.CodeFonts)},
		{"meme", fontChoices(opts.MemeFonts, render.MemeFonts)},
	} {
		choice := selector.Best(role.choices)
		if choice == "" {
			choice = "implicit default"
		}
		printDetail("%-5s %s %s", role.name, iconArrow, StyleHighlight.Render(choice))
	}

	if all {
		for _, font := range fonts {
			printDetail("%s", font)
		}
	}
	return nil
}

// fontChoices returns the configured preference list, or the built-in one
// when no override is configured.
func fontChoices(configured, builtin []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return builtin
}

// staticFonts adapts an already-fetched inventory to render.FontSource.
type staticFonts []string

func (s staticFonts) ListFonts(context.Context) ([]string, error) { return s, nil }
