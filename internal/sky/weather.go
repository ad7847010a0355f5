package sky

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/pkg/math"
)

// windStep is the wind task period per unit of wind speed.
const windStep = 200 * time.Millisecond

// minWindPeriod bounds the wind task rate for tiny positive speeds.
const minWindPeriod = 10 * time.Millisecond

// FogMode selects the fog density falloff.
type FogMode int

const (
	FogLinear FogMode = iota
	FogExp
	FogExp2
)

// Fog is the haze applied to terrain.
type Fog struct {
	Mode    FogMode
	Density float32
	Start   float32
	End     float32
	Color   math.Color
}

// DefaultFog returns the stock distance haze.
func DefaultFog() Fog {
	return Fog{
		Mode:    FogExp,
		Density: 0.0005,
		Start:   600,
		End:     7000,
		Color:   math.Color{R: 0.7, G: 0.7, B: 0.7, A: 0.5},
	}
}

// Weather is the cloud layer and terrain haze that follow a Sky. The cloud
// texture scrolls both per frame and from a background wind task.
type Weather struct {
	sky    *Sky
	clouds TextureOffset
	fog    Fog

	windMu sync.Mutex
	wind   math.Vec3
	speed  float64

	cloudBase  math.Color
	cloudAlpha []float32
	rng        *rand.Rand

	cancel context.CancelFunc
	done   chan struct{}
	log    *zap.Logger
}

// NewWeather creates the weather for sky with cloudVertices cloud dome
// samples. seed drives the per-vertex cloudiness jitter.
func NewWeather(sky *Sky, cloudVertices int, seed int64) *Weather {
	w := &Weather{
		sky:        sky,
		fog:        DefaultFog(),
		cloudBase:  math.ColorWhite,
		cloudAlpha: make([]float32, cloudVertices),
		rng:        rand.New(rand.NewSource(seed)),
		log:        logger.Named("weather"),
	}
	for i := range w.cloudAlpha {
		w.cloudAlpha[i] = 1
	}
	return w
}

// SetWind sets the wind vector added to the cloud offset on every wind
// step and the speed that scales the step period. The running task picks
// the new values up on its next step.
func (w *Weather) SetWind(v math.Vec3, speed float64) {
	w.windMu.Lock()
	w.wind, w.speed = v, speed
	w.windMu.Unlock()
}

// Wind returns the current wind vector and speed.
func (w *Weather) Wind() (math.Vec3, float64) {
	w.windMu.Lock()
	defer w.windMu.Unlock()
	return w.wind, w.speed
}

// Start launches the wind task. It runs until ctx is done or Close is
// called. Calling Start on a running task is a no-op.
func (w *Weather) Start(ctx context.Context) {
	if w.done != nil {
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.run(ctx, w.done)
}

// Close stops the wind task and waits for it to exit.
func (w *Weather) Close() error {
	if w.done == nil {
		return nil
	}
	w.cancel()
	<-w.done
	w.done = nil
	return nil
}

func (w *Weather) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	w.log.Debug("wind task started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("wind task stopped")
			return
		case <-timer.C:
		}

		wind, speed := w.Wind()
		period := windStep
		if speed > 0 {
			w.clouds.Advance(wind, 1)
			period = max(time.Duration(float64(windStep)*speed), minWindPeriod)
		}
		timer.Reset(period)
	}
}

// Clouds returns the cloud texture offset.
func (w *Weather) Clouds() *TextureOffset { return &w.clouds }

// SetCloudiness sets every cloud vertex alpha to value jittered into
// [0.1·value, value]. value is clamped to [0, 1].
func (w *Weather) SetCloudiness(value float64) {
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	for i := range w.cloudAlpha {
		w.cloudAlpha[i] = float32(value * (w.rng.Float64()*0.9 + 0.1))
	}
}

// CloudAlpha returns the per-vertex cloud alpha.
func (w *Weather) CloudAlpha() []float32 { return w.cloudAlpha }

// CloudColor returns the tint of cloud vertex i.
func (w *Weather) CloudColor(i int) math.Color {
	return w.cloudBase.WithAlpha(w.cloudAlpha[i])
}

// Fog returns the terrain haze.
func (w *Weather) Fog() Fog { return w.fog }

// SetFog replaces the terrain haze settings. The color is overwritten by
// the sky haze on the next Update.
func (w *Weather) SetFog(f Fog) { w.fog = f }

// Update copies the sky haze into the fog and drifts the clouds along the
// normalized wind by the elapsed time. Call it after Sky.Update.
func (w *Weather) Update(tpf float32, hh, mm, ss int) {
	w.fog.Color = w.sky.HazeColor()

	wind, _ := w.Wind()
	if wind == (math.Vec3{}) {
		return
	}
	drift := wind.Normalize().Scale(0.25 * elapsedHours(hh, mm, 0.016))
	w.clouds.Advance(drift, 0.95)
}
