package slides

import "encoding/json"

// Style selects how a slide's text is laid out.
type Style string

// Supported slide styles.
const (
	// StyleDefault centers text in a single scaled label box.
	StyleDefault Style = "default"

	// StyleMeme places up to two stroked caption lines above and below
	// the canvas center.
	StyleMeme Style = "meme"
)

// Slide is one renderable unit of a presentation. Exactly one of
// TextSlide, ImageSlide, and CodeSlide implements it.
type Slide interface {
	// Options returns the fully resolved formatting options for the slide.
	Options() Resolved

	isSlide()
}

// TextSlide is a slide containing only text, centered on the canvas.
type TextSlide struct {
	Text string   `json:"text"`
	Opts Resolved `json:"options"`
}

// ImageSlide composites an image onto the canvas, optionally captioned.
type ImageSlide struct {
	ImagePath string   `json:"image_path"`
	Caption   string   `json:"caption,omitempty"`
	Opts      Resolved `json:"options"`
}

// CodeSlide renders a source file through a syntax highlighter.
type CodeSlide struct {
	CodePath string   `json:"code_path"`
	Opts     Resolved `json:"options"`
}

func (s TextSlide) Options() Resolved  { return s.Opts }
func (s ImageSlide) Options() Resolved { return s.Opts }
func (s CodeSlide) Options() Resolved  { return s.Opts }

func (TextSlide) isSlide()  {}
func (ImageSlide) isSlide() {}
func (CodeSlide) isSlide()  {}

// Presentation is the fully parsed deck: slides in source order plus the
// presentation-wide resolved options. The presentation options served as
// the fallback tier during per-slide resolution; rendering reads only the
// per-slide options.
type Presentation struct {
	Slides  []Slide  `json:"slides"`
	Options Resolved `json:"options"`
}

// slideEnvelope tags slides with their kind for JSON output.
type slideEnvelope struct {
	Kind  string `json:"kind"`
	Slide Slide  `json:"slide"`
}

// MarshalJSON emits slides wrapped in kind-tagged envelopes so consumers
// can tell the variants apart.
func (p Presentation) MarshalJSON() ([]byte, error) {
	envelopes := make([]slideEnvelope, len(p.Slides))
	for i, s := range p.Slides {
		var kind string
		switch s.(type) {
		case TextSlide:
			kind = "text"
		case ImageSlide:
			kind = "image"
		case CodeSlide:
			kind = "code"
		}
		envelopes[i] = slideEnvelope{Kind: kind, Slide: s}
	}
	return json.Marshal(struct {
		Slides  []slideEnvelope `json:"slides"`
		Options Resolved        `json:"options"`
	}{Slides: envelopes, Options: p.Options})
}
