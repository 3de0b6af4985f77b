package slides

import (
	"strconv"

	"github.com/hackerslides/hackerslides/pkg/errors"
)

// SlideOptions is a partial formatting record. Every field is independently
// optional; nil means "not specified", which is distinct from any concrete
// value including false. Options merge through a three-tier cascade:
// slide-local, then presentation-wide, then Defaults.
type SlideOptions struct {
	Background *string
	Foreground *string
	Cover      *bool
	Style      *Style
	Scale      *float64
}

// Resolved is a fully resolved formatting record with every field set.
// It is the post-cascade form attached to each slide.
type Resolved struct {
	Background string  `json:"background"`
	Foreground string  `json:"foreground"`
	Cover      bool    `json:"cover"`
	Style      Style   `json:"style"`
	Scale      float64 `json:"scale"`
}

// Defaults is the fixed bottom tier of the cascade.
var Defaults = Resolved{
	Background: "black",
	Foreground: "white",
	Cover:      false,
	Style:      StyleDefault,
	Scale:      1,
}

// Merge returns the per-field combination of o and fallback: o's value where
// set, fallback's otherwise. Merge is idempotent with respect to its
// fallback: o.Merge(o.Merge(f).AsPartial()) == o.Merge(f) field by field.
func (o SlideOptions) Merge(fallback SlideOptions) SlideOptions {
	merged := o
	if merged.Background == nil {
		merged.Background = fallback.Background
	}
	if merged.Foreground == nil {
		merged.Foreground = fallback.Foreground
	}
	if merged.Cover == nil {
		merged.Cover = fallback.Cover
	}
	if merged.Style == nil {
		merged.Style = fallback.Style
	}
	if merged.Scale == nil {
		merged.Scale = fallback.Scale
	}
	return merged
}

// Resolve merges o onto fallback and the fixed defaults, yielding a record
// with every field set.
func (o SlideOptions) Resolve(fallback SlideOptions) Resolved {
	merged := o.Merge(fallback).Merge(Defaults.AsPartial())
	return Resolved{
		Background: *merged.Background,
		Foreground: *merged.Foreground,
		Cover:      *merged.Cover,
		Style:      *merged.Style,
		Scale:      *merged.Scale,
	}
}

// AsPartial converts a resolved record back to the partial form with every
// field set, for use as a cascade fallback tier.
func (r Resolved) AsPartial() SlideOptions {
	return SlideOptions{
		Background: &r.Background,
		Foreground: &r.Foreground,
		Cover:      &r.Cover,
		Style:      &r.Style,
		Scale:      &r.Scale,
	}
}

// apply validates an option directive and applies it to the accumulating
// record. Arity has already been checked by the line classifier.
func (o *SlideOptions) apply(line optionLine) error {
	switch line.key {
	case "fg":
		o.Foreground = &line.args[0]
	case "bg":
		o.Background = &line.args[0]
	case "scale":
		scale, err := strconv.ParseFloat(line.args[0], 64)
		if err != nil {
			return errors.NewParse(line.index, "Invalid scale %s", line.args[0])
		}
		o.Scale = &scale
	case "style":
		if line.args[0] != string(StyleMeme) {
			return errors.NewParse(line.index, "Unknown style %s", line.args[0])
		}
		style := StyleMeme
		o.Style = &style
	case "nostyle":
		style := StyleDefault
		o.Style = &style
	case "cover":
		cover := true
		o.Cover = &cover
	case "nocover":
		cover := false
		o.Cover = &cover
	default:
		return errors.New(errors.ErrCodeInternal, "unsupported option key %s", line.key)
	}
	return nil
}
