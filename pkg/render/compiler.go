package render

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hackerslides/hackerslides/pkg/errors"
	"github.com/hackerslides/hackerslides/pkg/slides"
)

// Tool defaults for the external collaborators.
const (
	DefaultConvertTool   = "convert"
	DefaultHighlightTool = "pygmentize"
)

// Syntax highlighter settings, passed through verbatim.
const (
	highlightStyle    = "vim"
	highlightFontSize = 100
	highlightImagePad = 50
)

// Config parameterizes the render compiler.
type Config struct {
	// Canvas is the output resolution, constant across slides.
	Canvas Size

	// OutputDir receives the final slide images. It is reset (deleted and
	// recreated) before any slide renders.
	OutputDir string

	// ScratchDir holds intermediate code rasters. Created only when the
	// deck contains code slides and removed at the end of the plan.
	ScratchDir string

	// ConvertTool and HighlightTool name the collaborator executables.
	ConvertTool   string
	HighlightTool string

	// Per-role font preference lists. Empty lists use the package-level
	// defaults (TextFonts, CodeFonts, MemeFonts).
	TextFonts []string
	CodeFonts []string
	MemeFonts []string
}

// withDefaults fills unset tool names and font preference lists.
func (c Config) withDefaults() Config {
	if c.ConvertTool == "" {
		c.ConvertTool = DefaultConvertTool
	}
	if c.HighlightTool == "" {
		c.HighlightTool = DefaultHighlightTool
	}
	if c.ScratchDir == "" {
		c.ScratchDir = "tmp"
	}
	if len(c.TextFonts) == 0 {
		c.TextFonts = TextFonts
	}
	if len(c.CodeFonts) == 0 {
		c.CodeFonts = CodeFonts
	}
	if len(c.MemeFonts) == 0 {
		c.MemeFonts = MemeFonts
	}
	return c
}

// Prober queries the native pixel dimensions of an image file.
type Prober interface {
	ImageSize(ctx context.Context, path string) (Size, error)
}

// Compiler turns a parsed presentation into an ordered command plan that
// reproduces every slide as one image file.
type Compiler struct {
	config Config
	prober Prober
	fonts  *FontSelector
	logger *log.Logger
}

// NewCompiler creates a compiler. The prober is consulted for image slides
// that need a footprint; the font selector holds the process-wide font
// inventory.
func NewCompiler(config Config, prober Prober, fonts *FontSelector, logger *log.Logger) *Compiler {
	if logger == nil {
		logger = log.Default()
	}
	return &Compiler{config: config.withDefaults(), prober: prober, fonts: fonts, logger: logger}
}

// Compile emits the full command plan for the presentation: output
// directory reset, then one or two invocations per slide in ascending
// index order, then scratch cleanup.
func (c *Compiler) Compile(ctx context.Context, presentation *slides.Presentation) ([]Command, error) {
	commands := []Command{
		RemoveDirectory{Path: c.config.OutputDir},
		MakeDirectory{Path: c.config.OutputDir},
	}

	scratch := false
	for _, slide := range presentation.Slides {
		if _, ok := slide.(slides.CodeSlide); ok {
			scratch = true
			break
		}
	}
	if scratch {
		commands = append(commands, MakeDirectory{Path: c.config.ScratchDir})
	}

	for i, slide := range presentation.Slides {
		slideCommands, err := c.compileSlide(ctx, slide, i)
		if err != nil {
			return nil, err
		}
		commands = append(commands, slideCommands...)
	}

	if scratch {
		commands = append(commands, RemoveDirectory{Path: c.config.ScratchDir})
	}

	c.logger.Debug("compiled render plan", "slides", len(presentation.Slides), "commands", len(commands))
	return commands, nil
}

func (c *Compiler) compileSlide(ctx context.Context, slide slides.Slide, index int) ([]Command, error) {
	switch s := slide.(type) {
	case slides.TextSlide:
		return c.compileTextSlide(s, index)
	case slides.ImageSlide:
		return c.compileImageSlide(ctx, s, index)
	case slides.CodeSlide:
		return c.compileCodeSlide(s, index)
	default:
		return nil, errors.New(errors.ErrCodeCompilation, "cannot render unsupported slide %T", slide)
	}
}

// compileTextSlide centers the text in a label box of the canvas size
// scaled around the canvas center.
func (c *Compiler) compileTextSlide(slide slides.TextSlide, index int) ([]Command, error) {
	opts := slide.Options()
	args := c.backgroundArgs(opts.Background)
	args = append(args, c.labelArgs(slide.Text, c.config.Canvas.scaled(opts.Scale), opts.Foreground)...)
	args = append(args, c.slideFile(index))
	return []Command{Invoke{Executable: c.config.ConvertTool, Args: args}}, nil
}

// compileImageSlide composites the image over the background and lays the
// caption out either as one scaled label box or as a meme caption pair.
func (c *Compiler) compileImageSlide(ctx context.Context, slide slides.ImageSlide, index int) ([]Command, error) {
	opts := slide.Options()

	// The footprint needs native dimensions only when the image does not
	// cover the canvas.
	var imageSize *Size
	if !opts.Cover {
		size, err := c.prober.ImageSize(ctx, slide.ImagePath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCollaborator, err, "probe image size of %s", slide.ImagePath)
		}
		// The footprint divides by the native dimensions.
		if size.Width <= 0 || size.Height <= 0 {
			return nil, errors.New(errors.ErrCodeCollaborator,
				"probed degenerate dimensions %s for %s", size, slide.ImagePath)
		}
		imageSize = &size
	}
	fp := footprint(c.config.Canvas, imageSize, opts.Cover)

	args := c.backgroundArgs(opts.Background)
	args = append(args, c.imageArgs(slide.ImagePath, opts.Cover)...)

	if opts.Style == slides.StyleMeme {
		memeArgs, err := c.memeArgs(slide.Caption, fp, opts.Scale)
		if err != nil {
			return nil, err
		}
		args = append(args, memeArgs...)
	} else {
		args = append(args, c.labelArgs(slide.Caption, fp.scaled(opts.Scale), opts.Foreground)...)
	}

	args = append(args, c.slideFile(index))
	return []Command{Invoke{Executable: c.config.ConvertTool, Args: args}}, nil
}

// compileCodeSlide renders the source file to an intermediate raster via
// the syntax highlighter, then composites that raster onto the background.
func (c *Compiler) compileCodeSlide(slide slides.CodeSlide, index int) ([]Command, error) {
	opts := slide.Options()
	intermediate := filepath.Join(c.config.ScratchDir, fmt.Sprintf("slide_%03d_code.png", index))

	highlight := []string{
		"-O", "line_numbers=False",
		"-O", fmt.Sprintf("font_size=%d", highlightFontSize),
		"-O", "style=" + highlightStyle,
		"-O", fmt.Sprintf("image_pad=%d", highlightImagePad),
	}
	if font := c.fonts.Best(c.config.CodeFonts); font != "" {
		// Pygmentize wants the spaced form of the family name.
		highlight = append(highlight, "-O", "font_name="+strings.ReplaceAll(font, "-", " "))
	}
	highlight = append(highlight, "-o", intermediate, slide.CodePath)

	composite := c.backgroundArgs(opts.Background)
	composite = append(composite,
		"-background", "transparent",
		"-gravity", "Center",
		intermediate,
		"-adaptive-resize", c.config.Canvas.String(),
		"-extent", c.config.Canvas.String(),
		"-composite",
		c.slideFile(index),
	)

	return []Command{
		Invoke{Executable: c.config.HighlightTool, Args: highlight},
		Invoke{Executable: c.config.ConvertTool, Args: composite},
	}, nil
}

// backgroundArgs starts an invocation by filling the canvas with the
// background color.
func (c *Compiler) backgroundArgs(background string) []string {
	return []string{
		"-size", c.config.Canvas.String(),
		"xc:" + background,
	}
}

// labelArgs renders text centered in box and composites it. Empty text
// emits nothing.
func (c *Compiler) labelArgs(text string, box Size, fill string) []string {
	if text == "" {
		return nil
	}
	args := []string{
		"-size", box.String(),
		"-background", "transparent",
		"-fill", fill,
	}
	if font := c.fonts.Best(c.config.TextFonts); font != "" {
		args = append(args, "-font", font)
	}
	args = append(args,
		"-gravity", "Center",
		"label:"+text,
		"-composite",
	)
	return args
}

// imageArgs resizes and composites the slide image. Cover mode fills the
// canvas and crops the overflow; otherwise the image fits inside the
// canvas and is padded to the exact canvas size.
func (c *Compiler) imageArgs(path string, cover bool) []string {
	resize := c.config.Canvas.String()
	if cover {
		resize += "^"
	}
	return []string{
		"-background", "transparent",
		"-gravity", "Center",
		path,
		"-resize", resize,
		"-extent", c.config.Canvas.String(),
		"-composite",
	}
}

// memeArgs renders the caption as a stroked two-line pair, the first line
// above and the second below the canvas center. A single caption line is
// padded with an empty second line.
func (c *Compiler) memeArgs(caption string, fp Size, scale float64) ([]string, error) {
	if caption == "" {
		return nil, nil
	}
	lines := strings.Split(caption, "\n")
	if len(lines) > 2 {
		return nil, errors.New(errors.ErrCodeCompilation,
			"cannot render a meme with more than 2 lines of text")
	}
	if len(lines) == 1 {
		lines = append(lines, "")
	}

	geometry := memeLayout(fp, scale)
	common := []string{
		"-size", geometry.box.String(),
		"-background", "transparent",
		"-fill", "white",
		"-stroke", "black",
		"-strokewidth", strconv.Itoa(geometry.strokeWidth),
	}
	if font := c.fonts.Best(c.config.MemeFonts); font != "" {
		common = append(common, "-font", font)
	}

	var args []string
	args = append(args, common...)
	args = append(args,
		"-gravity", "Center",
		"label:"+lines[0],
		"-geometry", fmt.Sprintf("+0-%d", geometry.offsetY),
		"-composite",
	)
	args = append(args, common...)
	args = append(args,
		"-gravity", "Center",
		"label:"+lines[1],
		"-geometry", fmt.Sprintf("+0+%d", geometry.offsetY),
		"-composite",
	)
	return args, nil
}

// slideFile is the deterministic output path for a slide index.
func (c *Compiler) slideFile(index int) string {
	return filepath.Join(c.config.OutputDir, fmt.Sprintf("slide_%03d.png", index))
}
