package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options controls the window the main loop runs in.
type Options struct {
	Title      string
	Fullscreen bool
	TargetFPS  int
	// Windowed size; ignored when Fullscreen (monitor size is used).
	Width, Height int
}

// Run starts the window and main loop. Each frame it calls update (input and
// simulation), then clears the screen and calls draw. Returns when the
// window is closed; teardown passed by the caller runs after the loop while
// the GL context still exists.
func Run(opts Options, update, draw, teardown func()) {
	w, h := int32(opts.Width), int32(opts.Height)
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}
	if opts.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
		w = int32(rl.GetMonitorWidth(0))
		h = int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(w, h, opts.Title)
	defer rl.CloseWindow()

	fps := int32(opts.TargetFPS)
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}

	if teardown != nil {
		teardown()
	}
}
