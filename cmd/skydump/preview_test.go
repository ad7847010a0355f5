package main

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   math.Color
		want string
	}{
		{math.ColorBlack, "#000000"},
		{math.ColorWhite, "#ffffff"},
		{math.Color{R: 2, G: -1, B: 0.5, A: 1}, "#ff0080"},
	}
	for _, tt := range tests {
		if got := hexColor(tt.in); got != tt.want {
			t.Errorf("hexColor(%+v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRenderPreviewShape(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	img := image.NewRGBA(image.Rect(0, 0, 4, 5))
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(2, 3, color.RGBA{B: 255, A: 255})

	lines := strings.Split(renderPreview(img), "\n")
	if len(lines) != 3 {
		t.Fatalf("%d lines, want 3", len(lines))
	}
	want := []string{" ▀  ", "  ▀ ", "    "}
	for i, line := range lines {
		if line != want[i] {
			t.Errorf("line %d = %q, want %q", i, line, want[i])
		}
	}
}

func TestRenderPreviewColors(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	out := renderPreview(img)
	if !strings.Contains(out, upperHalf) || !strings.Contains(out, "\x1b[") {
		t.Errorf("expected styled half block, got %q", out)
	}
}
