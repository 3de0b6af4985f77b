package slides

import (
	"strings"

	"github.com/hackerslides/hackerslides/pkg/errors"
)

// Directive and option keywords of the deck grammar.
const (
	imgKeyword  = "@img"
	codeKeyword = "@code"
)

// optionArity maps each option keyword to its required argument count.
var optionArity = map[string]int{
	"fg":      1,
	"bg":      1,
	"scale":   1,
	"style":   1,
	"cover":   0,
	"nocover": 0,
	"nostyle": 0,
}

// classifiedLine is one source line after classification. Exactly one of
// the concrete line types implements it. Each line remembers its 0-based
// source index for error reporting.
type classifiedLine interface {
	// name is the human-readable line kind used in error messages.
	name() string
	lineIndex() int
}

type textLine struct {
	text  string
	index int
}

type imageIncludeLine struct {
	path  string
	index int
}

type codeIncludeLine struct {
	path  string
	index int
}

type emptyLine struct {
	index int
}

type optionLine struct {
	key   string
	args  []string
	index int
}

func (l textLine) name() string         { return "Text line" }
func (l imageIncludeLine) name() string { return "@img statement" }
func (l codeIncludeLine) name() string  { return "@code statement" }
func (l emptyLine) name() string        { return "empty line" }
func (l optionLine) name() string       { return ":" + l.key + " statement" }

func (l textLine) lineIndex() int         { return l.index }
func (l imageIncludeLine) lineIndex() int { return l.index }
func (l codeIncludeLine) lineIndex() int  { return l.index }
func (l emptyLine) lineIndex() int        { return l.index }
func (l optionLine) lineIndex() int       { return l.index }

// Parse turns deck source text into a Presentation. The first error aborts
// parsing; errors carry the 0-based source line and render 1-based.
func Parse(source string) (*Presentation, error) {
	var classified []classifiedLine
	for i, raw := range splitLines(source) {
		if strings.HasPrefix(raw, "#") {
			continue // comment, dropped before classification
		}
		line, err := classifyLine(raw, i)
		if err != nil {
			return nil, err
		}
		classified = append(classified, line)
	}

	chunks := splitIntoChunks(classified)

	presOptions := SlideOptions{}
	if len(chunks) > 0 && isOptionOnlyChunk(chunks[0]) {
		var err error
		if _, presOptions, err = extractOptions(chunks[0]); err != nil {
			return nil, err
		}
		chunks = chunks[1:]
	}
	resolved := presOptions.Resolve(SlideOptions{})

	presentation := &Presentation{Options: resolved}
	for _, chunk := range chunks {
		slide, err := buildSlide(chunk, presOptions)
		if err != nil {
			return nil, err
		}
		presentation.Slides = append(presentation.Slides, slide)
	}
	return presentation, nil
}

// splitLines splits source into physical lines without trailing newlines,
// matching splitlines semantics: a trailing newline does not produce an
// extra empty line.
func splitLines(source string) []string {
	source = strings.TrimSuffix(source, "\n")
	if source == "" {
		return nil
	}
	return strings.Split(source, "\n")
}

// classifyLine categorizes one raw line. Comments are filtered before this
// is called. The leading escape backslash is stripped here, so downstream
// consumers only ever see literal text.
func classifyLine(raw string, index int) (classifiedLine, error) {
	switch {
	case strings.HasPrefix(raw, "@"):
		fields := strings.Fields(raw)
		keyword, args := fields[0], fields[1:]
		switch keyword {
		case imgKeyword, codeKeyword:
			if len(args) != 1 {
				return nil, errors.NewParse(index, "No path given in %s statement", keyword)
			}
			if keyword == imgKeyword {
				return imageIncludeLine{path: args[0], index: index}, nil
			}
			return codeIncludeLine{path: args[0], index: index}, nil
		default:
			return nil, errors.NewParse(index, "Unknown keyword %s", keyword)
		}
	case strings.HasPrefix(raw, ":"):
		return classifyOption(raw, index)
	case strings.HasPrefix(raw, `\`):
		return textLine{text: raw[1:], index: index}, nil
	case strings.TrimSpace(raw) == "":
		return emptyLine{index: index}, nil
	default:
		return textLine{text: raw, index: index}, nil
	}
}

// classifyOption parses a ":keyword [args]" directive, checking the keyword
// and its arity.
func classifyOption(raw string, index int) (classifiedLine, error) {
	fields := strings.Fields(raw)
	keyword, args := fields[0], fields[1:]
	key := strings.TrimPrefix(keyword, ":")
	arity, ok := optionArity[key]
	if !ok {
		return nil, errors.NewParse(index, "Unknown keyword %s", keyword)
	}
	if len(args) != arity {
		return nil, errors.NewParse(index, "Expected %d argument(s) for %s statement", arity, keyword)
	}
	return optionLine{key: key, args: args, index: index}, nil
}

// splitIntoChunks groups consecutive non-empty lines. Empty lines separate
// chunks and never appear inside one.
func splitIntoChunks(lines []classifiedLine) [][]classifiedLine {
	var chunks [][]classifiedLine
	var current []classifiedLine

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, current)
			current = nil
		}
	}

	for _, line := range lines {
		if _, empty := line.(emptyLine); empty {
			flush()
		} else {
			current = append(current, line)
		}
	}
	flush()
	return chunks
}

// isOptionOnlyChunk reports whether every line of the chunk is an option
// directive. A leading chunk of this shape holds the presentation options.
func isOptionOnlyChunk(chunk []classifiedLine) bool {
	for _, line := range chunk {
		if _, ok := line.(optionLine); !ok {
			return false
		}
	}
	return true
}

// extractOptions pulls option directives out of a chunk, accumulating them
// into a partial options record. Non-option lines pass through in order.
func extractOptions(chunk []classifiedLine) ([]classifiedLine, SlideOptions, error) {
	options := SlideOptions{}
	var rest []classifiedLine
	for _, line := range chunk {
		opt, ok := line.(optionLine)
		if !ok {
			rest = append(rest, line)
			continue
		}
		if err := options.apply(opt); err != nil {
			return nil, SlideOptions{}, err
		}
	}
	return rest, options, nil
}

// buildSlide classifies the chunk's kind and builds the typed slide with
// its options resolved through the three-tier cascade.
func buildSlide(chunk []classifiedLine, presOptions SlideOptions) (Slide, error) {
	rest, local, err := extractOptions(chunk)
	if err != nil {
		return nil, err
	}
	resolved := local.Resolve(presOptions)

	if containsImageInclude(rest) {
		return buildImageSlide(rest, resolved)
	}
	if containsCodeInclude(rest) {
		return buildCodeSlide(rest, resolved)
	}
	return buildTextSlide(rest, resolved)
}

func containsImageInclude(chunk []classifiedLine) bool {
	for _, line := range chunk {
		if _, ok := line.(imageIncludeLine); ok {
			return true
		}
	}
	return false
}

func containsCodeInclude(chunk []classifiedLine) bool {
	for _, line := range chunk {
		if _, ok := line.(codeIncludeLine); ok {
			return true
		}
	}
	return false
}

// memeCaptionLimit is the maximum caption line count under meme style.
const memeCaptionLimit = 2

// buildImageSlide assembles an image slide: exactly one @img directive plus
// optional caption text. Under meme style the caption is limited to two
// lines, checked incrementally so the error names the offending line.
func buildImageSlide(chunk []classifiedLine, resolved Resolved) (Slide, error) {
	var imagePath string
	var caption []string
	for _, line := range chunk {
		switch l := line.(type) {
		case imageIncludeLine:
			if imagePath != "" {
				return nil, errors.NewParse(l.index, "Only one %s statement per slide is allowed", imgKeyword)
			}
			imagePath = l.path
		case textLine:
			if resolved.Style == StyleMeme && len(caption) == memeCaptionLimit {
				return nil, errors.NewParse(l.index,
					"Image slide with style meme cannot have more than %d lines of text", memeCaptionLimit)
			}
			caption = append(caption, l.text)
		default:
			return nil, errors.NewParse(line.lineIndex(), "%s not supported in image slide", line.name())
		}
	}
	return ImageSlide{
		ImagePath: imagePath,
		Caption:   strings.Join(caption, "\n"),
		Opts:      resolved,
	}, nil
}

// buildCodeSlide assembles a code slide: exactly one @code directive and
// nothing else.
func buildCodeSlide(chunk []classifiedLine, resolved Resolved) (Slide, error) {
	var codePath string
	for _, line := range chunk {
		switch l := line.(type) {
		case codeIncludeLine:
			if codePath != "" {
				return nil, errors.NewParse(l.index, "Only one %s statement per slide is allowed", codeKeyword)
			}
			codePath = l.path
		default:
			return nil, errors.NewParse(line.lineIndex(), "%s not supported in code slide", line.name())
		}
	}
	return CodeSlide{CodePath: codePath, Opts: resolved}, nil
}

// buildTextSlide joins the chunk's text lines with newlines. Escape
// backslashes were already stripped at classification time.
func buildTextSlide(chunk []classifiedLine, resolved Resolved) (Slide, error) {
	lines := make([]string, len(chunk))
	for i, line := range chunk {
		l, ok := line.(textLine)
		if !ok {
			return nil, errors.NewParse(line.lineIndex(), "%s not supported in text slide", line.name())
		}
		lines[i] = l.text
	}
	return TextSlide{Text: strings.Join(lines, "\n"), Opts: resolved}, nil
}
