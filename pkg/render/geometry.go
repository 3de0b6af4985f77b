package render

import "fmt"

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// String formats the size as an ImageMagick geometry argument.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// scaled returns the size multiplied by factor, truncated to integers.
func (s Size) scaled(factor float64) Size {
	return Size{
		Width:  int(float64(s.Width) * factor),
		Height: int(float64(s.Height) * factor),
	}
}

// min returns the smaller dimension.
func (s Size) min() int {
	if s.Width < s.Height {
		return s.Width
	}
	return s.Height
}

// footprint computes the on-canvas rectangle an image occupies: the largest
// aspect-preserving rectangle of the image's aspect ratio that fits inside
// the canvas. With no image, or in cover mode where the image fills the
// canvas exactly, the footprint is the canvas itself.
func footprint(canvas Size, image *Size, cover bool) Size {
	if image == nil || cover {
		return canvas
	}
	width := canvas.Width
	if w := canvas.Height * image.Width / image.Height; w < width {
		width = w
	}
	height := canvas.Height
	if h := canvas.Width * image.Height / image.Width; h < height {
		height = h
	}
	return Size{Width: width, Height: height}
}

// memeGeometry holds the derived parameters for one meme caption pair.
type memeGeometry struct {
	box         Size // per-line caption box
	strokeWidth int  // caption outline width
	offsetY     int  // vertical distance of each line from canvas center
}

// memeLayout derives the caption box, stroke width, and vertical offsets
// for meme-style captions from the image footprint and scale. Each of the
// two lines is offset by half the box height from the canvas center.
func memeLayout(fp Size, scale float64) memeGeometry {
	boxHeight := int(float64(fp.Height) / 6 * scale)
	return memeGeometry{
		box:         Size{Width: fp.Width, Height: boxHeight},
		strokeWidth: int(float64(fp.min()) * scale / 100),
		offsetY:     boxHeight / 2,
	}
}
