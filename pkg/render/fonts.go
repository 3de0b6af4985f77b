package render

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
)

// Font preference lists per rendering role. The first available entry wins;
// if none is available the tool's implicit default font is used and no font
// argument is emitted.
var (
	// TextFonts are preferred for plain labels and image captions.
	TextFonts = []string{"DejaVu-Sans", "Roboto", "Ubuntu"}

	// CodeFonts are preferred monospace fonts for highlighted code.
	CodeFonts = []string{"Source-Code-Pro", "Ubuntu-Mono", "DeJaVu-Sans-Mono"}

	// MemeFonts are preferred for meme-style captions.
	MemeFonts = []string{"Impact"}
)

// FontSource lists the font family names available to the rendering tool.
type FontSource interface {
	ListFonts(ctx context.Context) ([]string, error)
}

// FontSelector picks fonts for rendering roles from a fixed inventory.
// The inventory is queried once when the selector is built and reused for
// the rest of the run.
type FontSelector struct {
	available map[string]bool
	logger    *log.Logger
}

// NewFontSelector queries the source once and returns a selector over the
// resulting inventory. A nil source yields an empty inventory, so every
// role falls back to the tool's implicit default.
func NewFontSelector(ctx context.Context, source FontSource, logger *log.Logger) (*FontSelector, error) {
	if logger == nil {
		logger = log.Default()
	}
	selector := &FontSelector{available: map[string]bool{}, logger: logger}
	if source == nil {
		return selector, nil
	}
	fonts, err := source.ListFonts(ctx)
	if err != nil {
		return nil, err
	}
	for _, font := range fonts {
		selector.available[font] = true
	}
	logger.Debug("queried renderer fonts", "count", len(fonts))
	return selector, nil
}

// Best returns the first available font from choices, or "" if none of
// them is available.
func (s *FontSelector) Best(choices []string) string {
	for _, choice := range choices {
		if s.available[choice] {
			s.logger.Debugf("choosing font %s among %s", choice, strings.Join(choices, ", "))
			return choice
		}
	}
	s.logger.Debugf("no font among %s available, falling back to implicit default", strings.Join(choices, ", "))
	return ""
}
