package sky

import (
	"sync"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

// TextureOffset is a scrolling texture translation. The per-frame update and
// the wind task both move it, so every access goes through the mutex.
type TextureOffset struct {
	mu sync.Mutex
	v  math.Vec3
}

// Translation returns the current offset.
func (t *TextureOffset) Translation() math.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.v
}

// SetTranslation replaces the offset.
func (t *TextureOffset) SetTranslation(v math.Vec3) {
	t.mu.Lock()
	t.v = v
	t.mu.Unlock()
}

// Advance adds delta and wraps every component modulo wrap, atomically with
// respect to other writers. It returns the new offset.
func (t *TextureOffset) Advance(delta math.Vec3, wrap float32) math.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.v = t.v.Add(delta).Mod(wrap)
	return t.v
}
