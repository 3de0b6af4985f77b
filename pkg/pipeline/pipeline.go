// Package pipeline provides the core slide-rendering pipeline for hackerslides.
//
// This package implements the complete parse → compile → execute pipeline
// shared by all CLI commands. Centralizing it keeps option validation and
// defaulting consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: turn deck source text into a structured presentation
//  2. Compile: turn each slide into an exact external-tool command sequence
//  3. Execute: run the command stream against the collaborators
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Resolution: "1280x720",
//	    OutputDir:  "out",
//	}
//	result, err := runner.Run(ctx, source, opts)
package pipeline

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hackerslides/hackerslides/pkg/errors"
	"github.com/hackerslides/hackerslides/pkg/render"
	"github.com/hackerslides/hackerslides/pkg/slides"
)

// Default values shared by all entry points.
const (
	// DefaultResolution is the output resolution when none is configured.
	DefaultResolution = "1920x1080"

	// DefaultOutputDir receives the rendered slide images.
	DefaultOutputDir = "out"
)

// resolutionRE matches a WIDTHxHEIGHT resolution string.
var resolutionRE = regexp.MustCompile(`^(\d+)x(\d+)$`)

// Options contains all configuration for the render pipeline.
type Options struct {
	// Resolution is the canvas size as "WIDTHxHEIGHT".
	Resolution string

	// OutputDir receives the rendered slides; it is fully reset per run.
	OutputDir string

	// ScratchDir holds intermediate code rasters. Empty means a unique
	// directory under the system temp dir.
	ScratchDir string

	// Collaborator executables; empty fields use the tool defaults.
	ConvertTool   string
	IdentifyTool  string
	HighlightTool string

	// Per-role font preference overrides. Empty lists keep the built-in
	// preferences (render.TextFonts, render.CodeFonts, render.MemeFonts).
	TextFonts []string
	CodeFonts []string
	MemeFonts []string

	// DryRun compiles the command stream without executing it.
	DryRun bool

	// canvas is the parsed resolution, set by ValidateAndSetDefaults.
	canvas render.Size

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults. This
// method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Resolution == "" {
		o.Resolution = DefaultResolution
	}
	canvas, err := ParseResolution(o.Resolution)
	if err != nil {
		return err
	}
	o.canvas = canvas
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.ScratchDir == "" {
		// Unique per run so concurrent runs never share intermediates.
		o.ScratchDir = filepath.Join(os.TempDir(), "hackerslides-"+uuid.NewString())
	}
	o.validated = true
	return nil
}

// Canvas returns the parsed canvas size. Valid after ValidateAndSetDefaults.
func (o *Options) Canvas() render.Size {
	return o.canvas
}

// ParseResolution parses a "WIDTHxHEIGHT" string into a size with two
// positive dimensions.
func ParseResolution(resolution string) (render.Size, error) {
	m := resolutionRE.FindStringSubmatch(resolution)
	if m == nil {
		return render.Size{}, errors.New(errors.ErrCodeInvalidResolution,
			"resolution must be specified as WIDTHxHEIGHT, got %q", resolution)
	}
	width, err := strconv.Atoi(m[1])
	if err != nil {
		return render.Size{}, errors.Wrap(errors.ErrCodeInvalidResolution, err, "parse width %q", m[1])
	}
	height, err := strconv.Atoi(m[2])
	if err != nil {
		return render.Size{}, errors.Wrap(errors.ErrCodeInvalidResolution, err, "parse height %q", m[2])
	}
	size := render.Size{Width: width, Height: height}
	if size.Width <= 0 || size.Height <= 0 {
		return render.Size{}, errors.New(errors.ErrCodeInvalidResolution,
			"resolution dimensions must be positive, got %q", resolution)
	}
	return size, nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Presentation is the parsed deck.
	Presentation *slides.Presentation

	// Commands is the compiled render plan.
	Commands []render.Command

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SlideCount  int
	ParseTime   time.Duration
	CompileTime time.Duration
	ExecuteTime time.Duration
}
