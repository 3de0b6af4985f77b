package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hackerslides/hackerslides/pkg/errors"
	"github.com/hackerslides/hackerslides/pkg/slides"
)

// parseCommand creates the parse command for validating a deck without
// rendering it.
func (c *CLI) parseCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <deck>",
		Short: "Parse and validate a slide deck",
		Long: `Parse and validate a slide deck without rendering it.

Reports the first error with its 1-based source line. With --json the
parsed presentation model (slides with their fully resolved options) is
written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "dump the presentation model as JSON")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, path string, asJSON bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read deck %s", path)
	}

	p := newProgress(loggerFromContext(ctx))
	presentation, err := slides.Parse(string(source))
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Parsed %d slide(s)", len(presentation.Slides)))

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(presentation)
	}

	printSuccess("%s is a valid deck", path)
	for i, slide := range presentation.Slides {
		printDetail("slide %03d: %s", i, describeSlide(slide))
	}
	return nil
}

// describeSlide summarizes one slide for terminal output.
func describeSlide(slide slides.Slide) string {
	switch s := slide.(type) {
	case slides.TextSlide:
		return fmt.Sprintf("text (%d line(s))", countLines(s.Text))
	case slides.ImageSlide:
		if s.Caption != "" {
			return fmt.Sprintf("image %s (captioned)", s.ImagePath)
		}
		return "image " + s.ImagePath
	case slides.CodeSlide:
		return "code " + s.CodePath
	default:
		return fmt.Sprintf("%T", slide)
	}
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}
