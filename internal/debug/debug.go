package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce
	// allocations.
	updateInterval = 30
)

// Stats is the simulation snapshot the overlay renders alongside FPS/memory.
type Stats struct {
	Steps    uint64
	Bodies   int
	Sleeping int
}

// Overlay draws runtime debugging info at the top-right: FPS, heap use, and
// simulation counters. Hidden until toggled.
type Overlay struct {
	Visible bool

	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns an overlay, hidden by default.
func New() *Overlay {
	return &Overlay{}
}

// Toggle flips overlay visibility.
func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// Draw renders the overlay when visible. Call after the 3D pass in the draw
// loop. Text is only recomputed every updateInterval frames.
func (o *Overlay) Draw(stats Stats) {
	if !o.Visible {
		return
	}
	o.frameCount++
	if o.lines == nil || o.frameCount%updateInterval == 0 {
		runtime.ReadMemStats(&o.memStats)
		mb := float64(o.memStats.Alloc) / (1024 * 1024)
		o.lines = o.lines[:0]
		o.lines = append(o.lines,
			fmt.Sprintf("FPS: %d", rl.GetFPS()),
			fmt.Sprintf("Mem: %.2f MiB", mb),
			fmt.Sprintf("Steps: %d", stats.Steps),
			fmt.Sprintf("Bodies: %d (%d asleep)", stats.Bodies, stats.Sleeping),
		)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range o.lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}
