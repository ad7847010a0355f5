package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

// upperHalf draws the top pixel in the foreground and the bottom one in the
// background, so each terminal cell shows two image rows.
const upperHalf = "▀"

// renderPreview draws img with half-block cells. Transparent pixels are left
// blank.
func renderPreview(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			if top.A == 0 && bottom.A == 0 {
				sb.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle()
			if top.A != 0 {
				style = style.Foreground(lipgloss.Color(hexRGB(top.R, top.G, top.B)))
			}
			if bottom.A != 0 {
				style = style.Background(lipgloss.Color(hexRGB(bottom.R, bottom.G, bottom.B)))
			}
			sb.WriteString(style.Render(upperHalf))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexRGB(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// hexColor formats c as #rrggbb after clamping.
func hexColor(c math.Color) string {
	r, g, b, _ := c.Bytes()
	return hexRGB(r, g, b)
}
