package dome

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

// Project renders colors as a size×size fisheye image: zenith at the centre,
// horizon on the rim, azimuth 0 to the right and increasing clockwise when
// looking up. Pixels outside the disc are transparent.
func (m *Mesh) Project(colors []math.Color, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			rho := gomath.Hypot(dx, dy)
			if rho > 1 {
				continue
			}
			el := (1 - rho) * gomath.Pi / 2
			az := gomath.Atan2(dy, dx)
			dir := math.Vec3{
				X: float32(gomath.Cos(el) * gomath.Cos(az)),
				Y: float32(gomath.Sin(el)),
				Z: float32(gomath.Cos(el) * gomath.Sin(az)),
			}
			r, g, b, _ := m.Sample(colors, dir).Bytes()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
