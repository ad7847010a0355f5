package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

func TestForward(t *testing.T) {
	c := NewLookCamera(math.Vec3{}, 1000)
	tests := []struct {
		yaw, pitch float32
		want       math.Vec3
	}{
		{0, 0, math.Vec3{X: 1}},
		{gomath.Pi / 2, 0, math.Vec3{Z: 1}},
		{0, gomath.Pi / 2, math.Vec3{Y: 1}},
	}
	for _, tt := range tests {
		c.Yaw, c.Pitch = tt.yaw, tt.pitch
		got := c.Forward()
		if got.Sub(tt.want).Length() > 1e-6 {
			t.Errorf("Forward(yaw=%v, pitch=%v) = %+v, want %+v", tt.yaw, tt.pitch, got, tt.want)
		}
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewLookCamera(math.Vec3{}, 1000)
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, c.MinPitch)
	}
	c.HandleDrag(100, 0)
	if gomath.Abs(float64(c.Yaw-0.5)) > 1e-6 {
		t.Errorf("yaw = %v, want 0.5", c.Yaw)
	}
}

func TestHandleZoomClampsFov(t *testing.T) {
	c := NewLookCamera(math.Vec3{}, 1000)
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.FovY != c.MinFov {
		t.Errorf("fov = %v, want %v", c.FovY, c.MinFov)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	if c.FovY != c.MaxFov {
		t.Errorf("fov = %v, want %v", c.FovY, c.MaxFov)
	}
}

func TestViewProjKeepsDomeInFront(t *testing.T) {
	c := NewLookCamera(math.Vec3{Y: 10}, 1000)
	c.Yaw, c.Pitch = 0, 0
	p := c.ViewProj(16.0 / 9).TransformVec3(math.Vec3{X: 900, Y: 10})
	if gomath.Abs(float64(p.X)) > 1e-3 || gomath.Abs(float64(p.Y)) > 1e-3 || p.Z < -1 || p.Z > 1 {
		t.Errorf("point ahead projects to %+v", p)
	}
}
