// skydump runs the sky headless and writes what it sees.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Faultbox/midgard-sky/internal/config"
	"github.com/Faultbox/midgard-sky/internal/engine/debug"
	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/internal/scene"
	"github.com/Faultbox/midgard-sky/internal/sky/ephemeris"
	"github.com/Faultbox/midgard-sky/internal/sky/lighting"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "render":
		err = cmdRender(args)
	case "table":
		err = cmdTable(args)
	case "preview":
		err = cmdPreview(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`skydump - headless sky snapshots

Usage:
  skydump <command> [options]

Commands:
  render   Write fisheye dome images, one per step
  table    Print body positions and colors per step
  preview  Draw the dome in the terminal

Common options:
  -config <file>   YAML config (defaults when omitted)
  -start <time>    Start time, RFC3339
  -step <dur>      Simulated time per step (default 1h)
  -steps <n>       Number of steps (default 24)

Examples:
  skydump render -out shots -format bmp -size 256
  skydump table -start 2008-06-21T00:00:00Z -step 30m -steps 48
  skydump preview -start 2008-06-21T19:00:00Z`)
}

// run holds the options every command shares.
type run struct {
	fs     *flag.FlagSet
	config string
	start  string
	step   time.Duration
	steps  int
	debug  bool
}

func newRun(name string) *run {
	r := &run{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	r.fs.StringVar(&r.config, "config", "", "YAML config file")
	r.fs.StringVar(&r.start, "start", "", "start time (RFC3339)")
	r.fs.DurationVar(&r.step, "step", time.Hour, "simulated time per step")
	r.fs.IntVar(&r.steps, "steps", 24, "number of steps")
	r.fs.BoolVar(&r.debug, "debug", false, "log to stderr")
	return r
}

// scene parses args and builds the scene.
func (r *run) scene(args []string) (*scene.Scene, *config.Config, error) {
	if err := r.fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if r.debug {
		if err := logger.Init("debug", ""); err != nil {
			return nil, nil, err
		}
	}

	cfg := config.Default()
	if r.config != "" {
		var err error
		if cfg, err = config.LoadFile(r.config); err != nil {
			return nil, nil, err
		}
	}
	if r.start != "" {
		cfg.Clock.Start = r.start
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	sc, err := scene.New(cfg, 1)
	if err != nil {
		return nil, nil, err
	}
	return sc, cfg, nil
}

// advance steps the scene by d of simulated time.
func advance(sc *scene.Scene, d time.Duration) {
	secs := int(d / time.Second)
	sc.Step(float32(d.Seconds()), secs/3600, secs%3600/60, secs%60)
}

func cmdRender(args []string) error {
	r := newRun("render")
	out := r.fs.String("out", "snapshots", "output directory")
	format := r.fs.String("format", "png", "png or bmp")
	size := r.fs.Int("size", 256, "image size in pixels")

	sc, _, err := r.scene(args)
	if err != nil {
		return err
	}
	f, err := debug.ParseFormat(*format)
	if err != nil {
		return err
	}
	shots := debug.NewScreenshotCapture(*out, "dome", f)

	for i := 0; i <= r.steps; i++ {
		if i > 0 {
			advance(sc, r.step)
		}
		img := sc.Mesh.Project(sc.Frame().Colors, *size)
		path, err := shots.CaptureNamed(img, sc.Now().Format("20060102T1504"))
		if err != nil {
			return err
		}
		fmt.Println(path)
	}
	return nil
}

func cmdTable(args []string) error {
	r := newRun("table")
	sc, _, err := r.scene(args)
	if err != nil {
		return err
	}

	fmt.Printf("%-17s %-5s %3s %9s %9s %-9s %6s %6s\n",
		"time", "body", "#", "lat", "lon", "diffuse", "flare", "stars")
	for i := 0; i <= r.steps; i++ {
		if i > 0 {
			advance(sc, r.step)
		}
		f := sc.Frame()
		for _, b := range f.Bodies {
			fmt.Printf("%-17s %-5s %3d %9.4f %9.4f %-9s %6.3f %6.3f\n",
				sc.Now().Format("2006-01-02 15:04"), b.Kind, b.Index,
				b.Latitude, b.Longitude, hexColor(b.Diffuse), b.Flare, f.StarAlpha)
			if b.Kind == ephemeris.KindSun && b.Transition != lighting.NoTransition {
				fmt.Printf("%-17s %s\n", "", strings.ToUpper(b.Transition.String()))
			}
		}
	}
	return nil
}

func cmdPreview(args []string) error {
	r := newRun("preview")
	size := r.fs.Int("size", 32, "preview diameter in terminal columns")
	sc, _, err := r.scene(append([]string{"-steps", "0"}, args...))
	if err != nil {
		return err
	}

	for i := 0; i <= r.steps; i++ {
		if i > 0 {
			advance(sc, r.step)
		}
		fmt.Println(sc.Now().Format(time.RFC3339))
		fmt.Println(renderPreview(sc.Mesh.Project(sc.Frame().Colors, *size)))
	}
	return nil
}
