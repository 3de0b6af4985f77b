package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hackerslides/hackerslides/pkg/errors"
	"github.com/hackerslides/hackerslides/pkg/executor"
	"github.com/hackerslides/hackerslides/pkg/render"
	"github.com/hackerslides/hackerslides/pkg/slides"
)

// Runner encapsulates pipeline execution. It is stateless apart from its
// logger; the font inventory is queried once per Run and never stored on
// the Runner, so one Runner can serve several runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run executes the complete parse → compile → execute pipeline.
// With opts.DryRun the execute stage is skipped and the compiled command
// stream is returned unexecuted.
func (r *Runner) Run(ctx context.Context, source string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	presentation, err := r.Parse(source)
	if err != nil {
		return nil, err
	}
	result.Presentation = presentation
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.SlideCount = len(presentation.Slides)

	r.Logger.Info("parsed presentation",
		"slides", len(presentation.Slides),
		"duration", result.Stats.ParseTime)

	// Stage 2: Compile
	compileStart := time.Now()
	commands, err := r.Compile(ctx, presentation, opts)
	if err != nil {
		return nil, err
	}
	result.Commands = commands
	result.Stats.CompileTime = time.Since(compileStart)

	r.Logger.Info("compiled render plan",
		"commands", len(commands),
		"duration", result.Stats.CompileTime)

	// Stage 3: Execute
	if opts.DryRun {
		return result, nil
	}
	executeStart := time.Now()
	if err := r.Execute(ctx, commands); err != nil {
		return nil, err
	}
	result.Stats.ExecuteTime = time.Since(executeStart)

	r.Logger.Info("rendered slides",
		"slides", len(presentation.Slides),
		"output", opts.OutputDir,
		"duration", result.Stats.ExecuteTime)

	return result, nil
}

// Parse turns deck source text into a presentation.
func (r *Runner) Parse(source string) (*slides.Presentation, error) {
	return slides.Parse(source)
}

// Compile builds the render command stream for the presentation. The font
// inventory is queried from the probe once here and shared by all slides
// of the run.
func (r *Runner) Compile(ctx context.Context, presentation *slides.Presentation, opts Options) ([]render.Command, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	probe := r.probe(opts)
	fonts, err := render.NewFontSelector(ctx, probe, r.Logger)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollaborator, err, "query renderer fonts")
	}

	compiler := render.NewCompiler(render.Config{
		Canvas:        opts.Canvas(),
		OutputDir:     opts.OutputDir,
		ScratchDir:    opts.ScratchDir,
		ConvertTool:   opts.ConvertTool,
		HighlightTool: opts.HighlightTool,
		TextFonts:     opts.TextFonts,
		CodeFonts:     opts.CodeFonts,
		MemeFonts:     opts.MemeFonts,
	}, probe, fonts, r.Logger)

	return compiler.Compile(ctx, presentation)
}

// Execute runs a compiled command stream.
func (r *Runner) Execute(ctx context.Context, commands []render.Command) error {
	return executor.New(r.Logger).Execute(ctx, commands)
}

// Fonts lists the renderer's font inventory, for diagnostics.
func (r *Runner) Fonts(ctx context.Context, opts Options) ([]string, error) {
	return r.probe(opts).ListFonts(ctx)
}

func (r *Runner) probe(opts Options) *executor.Magick {
	return &executor.Magick{
		ConvertTool:  opts.ConvertTool,
		IdentifyTool: opts.IdentifyTool,
	}
}
