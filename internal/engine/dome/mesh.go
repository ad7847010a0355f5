// Package dome builds and draws the sky hemisphere.
package dome

import (
	gomath "math"

	"github.com/Faultbox/midgard-sky/internal/sky/atmosphere"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// Radial is the number of distinct samples per ring. The sky model reads
// the haze at atmosphere.HazeSampleIndex, which must sit half a turn from
// sample 0 on the horizon ring.
const Radial = 2 * atmosphere.HazeSampleIndex

// ringLen counts the seam duplicate that closes each ring.
const ringLen = Radial + 1

// Mesh is a hemisphere of unit normals. Rings run from the horizon up, each
// with Radial samples plus a seam duplicate; the apex is the last sample.
type Mesh struct {
	Planes  int
	Normals []math.Vec3
	// UVs map the hemisphere onto a disc for the star and cloud layers.
	UVs     [][2]float32
	Indices []uint32
}

// NewMesh builds a hemisphere with planes rings. Fewer than two rings are
// raised to two.
func NewMesh(planes int) *Mesh {
	if planes < 2 {
		planes = 2
	}
	m := &Mesh{
		Planes:  planes,
		Normals: make([]math.Vec3, 0, planes*ringLen+1),
		UVs:     make([][2]float32, 0, planes*ringLen+1),
	}

	for p := 0; p < planes; p++ {
		el := float64(p) / float64(planes) * gomath.Pi / 2
		for r := 0; r < ringLen; r++ {
			az := 2 * gomath.Pi * float64(r%Radial) / Radial
			m.addSample(el, az)
		}
	}
	m.addSample(gomath.Pi/2, 0)

	apex := uint32(len(m.Normals) - 1)
	for p := 0; p < planes; p++ {
		base := uint32(p * ringLen)
		for r := uint32(0); r < Radial; r++ {
			a, b := base+r, base+r+1
			if p == planes-1 {
				m.Indices = append(m.Indices, a, apex, b)
				continue
			}
			c, d := a+ringLen, b+ringLen
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}
	return m
}

func (m *Mesh) addSample(el, az float64) {
	n := math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Cos(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Sin(az)),
	}
	m.Normals = append(m.Normals, n)
	// Zenith at the centre, horizon on the rim.
	rho := float32(0.5 * (1 - el/(gomath.Pi/2)))
	m.UVs = append(m.UVs, [2]float32{0.5 + rho*float32(gomath.Cos(az)), 0.5 + rho*float32(gomath.Sin(az))})
}

// Index returns the sample index of ring p, radial step r. r wraps.
func (m *Mesh) Index(p, r int) int {
	r %= Radial
	if r < 0 {
		r += Radial
	}
	return p*ringLen + r
}

// Apex returns the index of the zenith sample.
func (m *Mesh) Apex() int { return len(m.Normals) - 1 }

// Sample returns the color seen along the unit direction dir by bilinear
// interpolation over the ring grid. Directions below the horizon take the
// horizon ring.
func (m *Mesh) Sample(colors []math.Color, dir math.Vec3) math.Color {
	el := gomath.Asin(float64(clampUnit(dir.Y)))
	if el < 0 {
		el = 0
	}
	az := gomath.Atan2(float64(dir.Z), float64(dir.X))
	if az < 0 {
		az += 2 * gomath.Pi
	}

	fp := el / (gomath.Pi / 2) * float64(m.Planes)
	fr := az / (2 * gomath.Pi) * Radial
	p0, r0 := int(fp), int(fr)
	tp, tr := float32(fp-float64(p0)), float32(fr-float64(r0))

	at := func(p, r int) math.Color {
		if p >= m.Planes {
			return colors[m.Apex()]
		}
		return colors[m.Index(p, r)]
	}
	lo := at(p0, r0).Lerp(at(p0, r0+1), tr)
	hi := at(p0+1, r0).Lerp(at(p0+1, r0+1), tr)
	return lo.Lerp(hi, tp)
}

func clampUnit(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
