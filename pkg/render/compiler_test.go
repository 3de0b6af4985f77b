package render

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerslides/hackerslides/pkg/errors"
	"github.com/hackerslides/hackerslides/pkg/slides"
)

// fakeProber serves fixed image dimensions and records probe calls.
type fakeProber struct {
	size   Size
	err    error
	probed []string
}

func (p *fakeProber) ImageSize(_ context.Context, path string) (Size, error) {
	p.probed = append(p.probed, path)
	return p.size, p.err
}

// fontList adapts a fixed inventory to FontSource.
type fontList []string

func (f fontList) ListFonts(context.Context) ([]string, error) { return f, nil }

func newTestCompiler(t *testing.T, prober Prober, fonts []string) *Compiler {
	t.Helper()
	selector, err := NewFontSelector(context.Background(), fontList(fonts), nil)
	require.NoError(t, err)
	return NewCompiler(Config{
		Canvas:     Size{Width: 1920, Height: 1080},
		OutputDir:  "out",
		ScratchDir: "scratch",
	}, prober, selector, nil)
}

func resolved(mutate func(*slides.Resolved)) slides.Resolved {
	opts := slides.Defaults
	if mutate != nil {
		mutate(&opts)
	}
	return opts
}

func presentationOf(s ...slides.Slide) *slides.Presentation {
	return &slides.Presentation{Slides: s, Options: slides.Defaults}
}

func TestCompilePlanOrdering(t *testing.T) {
	compiler := newTestCompiler(t, &fakeProber{}, nil)
	presentation := presentationOf(
		slides.TextSlide{Text: "one", Opts: resolved(nil)},
		slides.CodeSlide{CodePath: "main.go", Opts: resolved(nil)},
	)

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)

	// Directory reset precedes all slide work; scratch cleanup is last.
	require.GreaterOrEqual(t, len(commands), 5)
	assert.Equal(t, RemoveDirectory{Path: "out"}, commands[0])
	assert.Equal(t, MakeDirectory{Path: "out"}, commands[1])
	assert.Equal(t, MakeDirectory{Path: "scratch"}, commands[2])
	assert.Equal(t, RemoveDirectory{Path: "scratch"}, commands[len(commands)-1])
}

func TestCompileTextSlide(t *testing.T) {
	compiler := newTestCompiler(t, &fakeProber{}, nil)
	presentation := presentationOf(slides.TextSlide{Text: "Hello", Opts: resolved(nil)})

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)
	require.Len(t, commands, 3)

	invoke, ok := commands[2].(Invoke)
	require.True(t, ok)
	assert.Equal(t, "convert", invoke.Executable)
	assert.Equal(t, []string{
		"-size", "1920x1080", "xc:black",
		"-size", "1920x1080",
		"-background", "transparent",
		"-fill", "white",
		"-gravity", "Center",
		"label:Hello",
		"-composite",
		"out/slide_000.png",
	}, invoke.Args)
}

func TestCompileTextSlideScaledAndStyled(t *testing.T) {
	compiler := newTestCompiler(t, &fakeProber{}, []string{"Roboto"})
	presentation := presentationOf(slides.TextSlide{
		Text: "Hi",
		Opts: resolved(func(o *slides.Resolved) {
			o.Background = "navy"
			o.Foreground = "gold"
			o.Scale = 0.5
		}),
	})

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)

	invoke := commands[2].(Invoke)
	assert.Equal(t, []string{
		"-size", "1920x1080", "xc:navy",
		"-size", "960x540",
		"-background", "transparent",
		"-fill", "gold",
		"-font", "Roboto",
		"-gravity", "Center",
		"label:Hi",
		"-composite",
		"out/slide_000.png",
	}, invoke.Args)
}

func TestCompileImageSlideFit(t *testing.T) {
	// A 4000x1000 source in fit mode: footprint 1920x480, caption box
	// scaled from the footprint.
	prober := &fakeProber{size: Size{Width: 4000, Height: 1000}}
	compiler := newTestCompiler(t, prober, nil)
	presentation := presentationOf(slides.ImageSlide{
		ImagePath: "photo.png",
		Caption:   "A caption",
		Opts:      resolved(nil),
	})

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)
	require.Len(t, commands, 3)
	assert.Equal(t, []string{"photo.png"}, prober.probed)

	invoke := commands[2].(Invoke)
	assert.Equal(t, []string{
		"-size", "1920x1080", "xc:black",
		"-background", "transparent",
		"-gravity", "Center",
		"photo.png",
		"-resize", "1920x1080",
		"-extent", "1920x1080",
		"-composite",
		"-size", "1920x480",
		"-background", "transparent",
		"-fill", "white",
		"-gravity", "Center",
		"label:A caption",
		"-composite",
		"out/slide_000.png",
	}, invoke.Args)
}

func TestCompileImageSlideCover(t *testing.T) {
	// Cover mode needs no probe and resizes with the fill flag.
	prober := &fakeProber{err: fmt.Errorf("must not be probed")}
	compiler := newTestCompiler(t, prober, nil)
	presentation := presentationOf(slides.ImageSlide{
		ImagePath: "photo.png",
		Opts:      resolved(func(o *slides.Resolved) { o.Cover = true }),
	})

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)
	assert.Empty(t, prober.probed)

	invoke := commands[2].(Invoke)
	assert.Contains(t, invoke.Args, "1920x1080^")
	assert.NotContains(t, invoke.Args, "label:")
}

func TestCompileImageSlideDegenerateDimensions(t *testing.T) {
	// A collaborator reporting zero dimensions must surface as an error,
	// not reach the footprint division.
	prober := &fakeProber{size: Size{Width: 0, Height: 0}}
	compiler := newTestCompiler(t, prober, nil)
	presentation := presentationOf(slides.ImageSlide{ImagePath: "empty.png", Opts: resolved(nil)})

	_, err := compiler.Compile(context.Background(), presentation)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCollaborator))
}

func TestCompileImageSlideProbeFailure(t *testing.T) {
	prober := &fakeProber{err: fmt.Errorf("identify: no such file")}
	compiler := newTestCompiler(t, prober, nil)
	presentation := presentationOf(slides.ImageSlide{ImagePath: "missing.png", Opts: resolved(nil)})

	_, err := compiler.Compile(context.Background(), presentation)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCollaborator))
}

func TestCompileMemeCaption(t *testing.T) {
	// Source matches the canvas aspect, so the footprint is the full
	// canvas: box 1920x180, stroke 10, offsets ±90.
	prober := &fakeProber{size: Size{Width: 960, Height: 540}}
	compiler := newTestCompiler(t, prober, []string{"Impact"})
	presentation := presentationOf(slides.ImageSlide{
		ImagePath: "photo.png",
		Caption:   "top\nbottom",
		Opts:      resolved(func(o *slides.Resolved) { o.Style = slides.StyleMeme }),
	})

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)

	invoke := commands[2].(Invoke)
	caption := []string{
		"-size", "1920x180",
		"-background", "transparent",
		"-fill", "white",
		"-stroke", "black",
		"-strokewidth", "10",
		"-font", "Impact",
		"-gravity", "Center",
		"label:top",
		"-geometry", "+0-90",
		"-composite",
		"-size", "1920x180",
		"-background", "transparent",
		"-fill", "white",
		"-stroke", "black",
		"-strokewidth", "10",
		"-font", "Impact",
		"-gravity", "Center",
		"label:bottom",
		"-geometry", "+0+90",
		"-composite",
	}
	assert.Subset(t, invoke.Args, caption)
	assert.Contains(t, invoke.Args, "label:top")
	assert.Contains(t, invoke.Args, "+0-90")
	assert.Contains(t, invoke.Args, "label:bottom")
	assert.Contains(t, invoke.Args, "+0+90")
}

func TestCompileMemeSingleLinePadded(t *testing.T) {
	prober := &fakeProber{size: Size{Width: 1920, Height: 1080}}
	compiler := newTestCompiler(t, prober, nil)
	presentation := presentationOf(slides.ImageSlide{
		ImagePath: "photo.png",
		Caption:   "only",
		Opts:      resolved(func(o *slides.Resolved) { o.Style = slides.StyleMeme }),
	})

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)

	invoke := commands[2].(Invoke)
	assert.Contains(t, invoke.Args, "label:only")
	// The empty second line still renders so both offsets are emitted.
	assert.Contains(t, invoke.Args, "label:")
	assert.Contains(t, invoke.Args, "+0-90")
	assert.Contains(t, invoke.Args, "+0+90")
}

func TestCompileMemeTooManyLines(t *testing.T) {
	prober := &fakeProber{size: Size{Width: 1920, Height: 1080}}
	compiler := newTestCompiler(t, prober, nil)
	presentation := presentationOf(slides.ImageSlide{
		ImagePath: "photo.png",
		Caption:   "a\nb\nc",
		Opts:      resolved(func(o *slides.Resolved) { o.Style = slides.StyleMeme }),
	})

	_, err := compiler.Compile(context.Background(), presentation)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCompilation))
}

func TestCompileCodeSlide(t *testing.T) {
	compiler := newTestCompiler(t, &fakeProber{}, []string{"Ubuntu-Mono"})
	presentation := presentationOf(slides.CodeSlide{CodePath: "main.py", Opts: resolved(nil)})

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)
	require.Len(t, commands, 6)

	highlight, ok := commands[3].(Invoke)
	require.True(t, ok)
	assert.Equal(t, "pygmentize", highlight.Executable)
	assert.Equal(t, []string{
		"-O", "line_numbers=False",
		"-O", "font_size=100",
		"-O", "style=vim",
		"-O", "image_pad=50",
		"-O", "font_name=Ubuntu Mono",
		"-o", "scratch/slide_000_code.png",
		"main.py",
	}, highlight.Args)

	composite, ok := commands[4].(Invoke)
	require.True(t, ok)
	assert.Equal(t, "convert", composite.Executable)
	assert.Equal(t, []string{
		"-size", "1920x1080", "xc:black",
		"-background", "transparent",
		"-gravity", "Center",
		"scratch/slide_000_code.png",
		"-adaptive-resize", "1920x1080",
		"-extent", "1920x1080",
		"-composite",
		"out/slide_000.png",
	}, composite.Args)
}

func TestCompileFontOverrides(t *testing.T) {
	// Configured preference lists replace the built-in ones.
	selector, err := NewFontSelector(context.Background(), fontList{"Comic-Sans", "Fira-Code"}, nil)
	require.NoError(t, err)
	compiler := NewCompiler(Config{
		Canvas:    Size{Width: 1920, Height: 1080},
		OutputDir: "out",
		TextFonts: []string{"Comic-Sans"},
		CodeFonts: []string{"Fira-Code"},
	}, &fakeProber{}, selector, nil)
	presentation := presentationOf(
		slides.TextSlide{Text: "Hello", Opts: resolved(nil)},
		slides.CodeSlide{CodePath: "main.go", Opts: resolved(nil)},
	)

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)

	label := commands[3].(Invoke)
	assert.Contains(t, label.Args, "Comic-Sans")
	highlight := commands[4].(Invoke)
	assert.Contains(t, highlight.Args, "font_name=Fira Code")
}

func TestCompileOutputNamesFollowSlideIndex(t *testing.T) {
	compiler := newTestCompiler(t, &fakeProber{}, nil)
	presentation := presentationOf(
		slides.TextSlide{Text: "a", Opts: resolved(nil)},
		slides.TextSlide{Text: "b", Opts: resolved(nil)},
		slides.TextSlide{Text: "c", Opts: resolved(nil)},
	)

	commands, err := compiler.Compile(context.Background(), presentation)
	require.NoError(t, err)
	require.Len(t, commands, 5)

	for i, want := range []string{"out/slide_000.png", "out/slide_001.png", "out/slide_002.png"} {
		invoke := commands[2+i].(Invoke)
		assert.Equal(t, want, invoke.Args[len(invoke.Args)-1])
	}
}
