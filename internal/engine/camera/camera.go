// Package camera provides the viewer camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

// LookCamera stands at a point and turns its head. The sky viewer uses it
// to look around the dome from the ground.
type LookCamera struct {
	Position math.Vec3

	Yaw   float32 // radians, 0 looks down +X
	Pitch float32 // radians, positive looks up

	FovY      float32 // radians
	Near, Far float32

	MinPitch float32
	MaxPitch float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	MinFov, MaxFov  float32
}

// NewLookCamera creates a camera at pos looking at the horizon, with a far
// plane past a dome of radius.
func NewLookCamera(pos math.Vec3, radius float32) *LookCamera {
	return &LookCamera{
		Position:        pos,
		Pitch:           0.3,
		FovY:            1.0,
		Near:            1,
		Far:             radius * 2,
		MinPitch:        -0.2,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		MinFov:          0.3,
		MaxFov:          2.2,
	}
}

// Forward returns the unit view direction.
func (c *LookCamera) Forward() math.Vec3 {
	cp := gomath.Cos(float64(c.Pitch))
	return math.Vec3{
		X: float32(cp * gomath.Cos(float64(c.Yaw))),
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: float32(cp * gomath.Sin(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *LookCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), up)
}

// ViewProj returns projection times view for the given aspect ratio.
func (c *LookCamera) ViewProj(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far).Mul(c.ViewMatrix())
}

// HandleDrag turns the camera by a mouse drag delta in pixels.
func (c *LookCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.DragSensitivity
	c.Pitch -= deltaY * c.DragSensitivity

	// Clamp pitch
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom narrows or widens the field of view by a wheel delta.
func (c *LookCamera) HandleZoom(delta float32) {
	c.FovY -= delta * c.FovY * c.ZoomSensitivity
	if c.FovY < c.MinFov {
		c.FovY = c.MinFov
	}
	if c.FovY > c.MaxFov {
		c.FovY = c.MaxFov
	}
}
