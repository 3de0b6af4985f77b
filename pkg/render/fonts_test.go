package render

import (
	"context"
	"testing"
)

func TestFontSelectorBest(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		choices   []string
		want      string
	}{
		{
			name:      "first preference available",
			available: []string{"DejaVu-Sans", "Roboto"},
			choices:   TextFonts,
			want:      "DejaVu-Sans",
		},
		{
			name:      "falls through to later preference",
			available: []string{"Ubuntu-Mono"},
			choices:   CodeFonts,
			want:      "Ubuntu-Mono",
		},
		{
			name:      "nothing available",
			available: []string{"Comic-Sans"},
			choices:   MemeFonts,
			want:      "",
		},
		{
			name:    "empty inventory",
			choices: TextFonts,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector, err := NewFontSelector(context.Background(), fontList(tt.available), nil)
			if err != nil {
				t.Fatalf("NewFontSelector() error = %v", err)
			}
			if got := selector.Best(tt.choices); got != tt.want {
				t.Errorf("Best(%v) = %q, want %q", tt.choices, got, tt.want)
			}
		})
	}
}

func TestFontSelectorNilSource(t *testing.T) {
	selector, err := NewFontSelector(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("NewFontSelector() error = %v", err)
	}
	if got := selector.Best(TextFonts); got != "" {
		t.Errorf("Best() = %q, want empty for nil source", got)
	}
}
