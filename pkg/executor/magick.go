package executor

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/hackerslides/hackerslides/pkg/errors"
	"github.com/hackerslides/hackerslides/pkg/render"
)

// DefaultIdentifyTool is the ImageMagick dimension-query executable.
const DefaultIdentifyTool = "identify"

// fontLineRE matches one entry of `convert -list font` output.
var fontLineRE = regexp.MustCompile(`^\s+Font:\s(.*)$`)

// Magick probes the ImageMagick installation: native image dimensions and
// the font inventory. It implements render.Prober and render.FontSource.
type Magick struct {
	// ConvertTool and IdentifyTool name the executables; empty fields use
	// the defaults.
	ConvertTool  string
	IdentifyTool string
}

func (m *Magick) convertTool() string {
	if m.ConvertTool != "" {
		return m.ConvertTool
	}
	return render.DefaultConvertTool
}

func (m *Magick) identifyTool() string {
	if m.IdentifyTool != "" {
		return m.IdentifyTool
	}
	return DefaultIdentifyTool
}

// ImageSize returns the native pixel dimensions of the image at path.
func (m *Magick) ImageSize(ctx context.Context, path string) (render.Size, error) {
	out, err := exec.CommandContext(ctx, m.identifyTool(), "-format", "%w %h", path).Output()
	if err != nil {
		return render.Size{}, errors.Wrap(errors.ErrCodeCollaborator, err, "identify %s", path)
	}
	return parseImageSize(string(out), path)
}

// parseImageSize decodes `identify -format "%w %h"` output. Dimensions
// must be positive; downstream geometry divides by them.
func parseImageSize(out, path string) (render.Size, error) {
	trimmed := strings.TrimSpace(out)
	var size render.Size
	if _, err := fmt.Sscanf(trimmed, "%d %d", &size.Width, &size.Height); err != nil {
		return render.Size{}, errors.Wrap(errors.ErrCodeCollaborator, err,
			"unreadable identify output %q for %s", trimmed, path)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return render.Size{}, errors.New(errors.ErrCodeCollaborator,
			"identify reported non-positive dimensions %q for %s", trimmed, path)
	}
	return size, nil
}

// ListFonts returns the font family names known to the rendering tool.
func (m *Magick) ListFonts(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, m.convertTool(), "-list", "font").Output()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollaborator, err, "list fonts")
	}
	return ParseFontList(string(out)), nil
}

// ParseFontList extracts font names from `convert -list font` output.
func ParseFontList(out string) []string {
	var fonts []string
	for _, line := range strings.Split(out, "\n") {
		if m := fontLineRE.FindStringSubmatch(line); m != nil {
			fonts = append(fonts, m[1])
		}
	}
	return fonts
}
