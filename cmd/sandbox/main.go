package main

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"physics-sandbox/internal/config"
	"physics-sandbox/internal/debug"
	"physics-sandbox/internal/graphics"
	"physics-sandbox/internal/input"
	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/render"
	"physics-sandbox/internal/scene"
	"physics-sandbox/internal/stepper"
)

// Body ids the keyboard mapping drives. A loaded scene file that wants
// keyboard control should use the same ids.
const (
	playerID = "player"
	crateID  = "crate"
)

const defaultGravityY = -9.81

var (
	scenePath  string
	configPath string
	fullscreen bool
	targetFPS  int
	gravityY   float32
)

func main() {
	root := &cobra.Command{
		Use:   "sandbox",
		Short: "3D physics sandbox: boxes, gravity, keyboard forces",
		Long: `A raylib window with a physics world stepped once per frame.
Space jumps the player box, arrow keys push the crate, right shift pops it
upward, F1 toggles the debug overlay, G toggles the grid. WASD+mouse moves
the camera.`,
		RunE: run,
	}
	root.Flags().StringVar(&scenePath, "scene", "", "scene file (YAML); empty builds the demo scene")
	root.Flags().StringVar(&configPath, "config", "", "preferences file (default "+config.DefaultPath+")")
	root.Flags().BoolVar(&fullscreen, "fullscreen", false, "fullscreen window")
	root.Flags().IntVar(&targetFPS, "fps", 0, "FPS cap (default from preferences)")
	root.Flags().Float32Var(&gravityY, "gravity", defaultGravityY, "vertical gravity (scene file overrides)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	prefs := config.Load(configPath)
	if cmd.Flags().Changed("fullscreen") {
		prefs.Fullscreen = fullscreen
	}
	if cmd.Flags().Changed("fps") {
		prefs.TargetFPS = targetFPS
	}
	if scenePath == "" {
		scenePath = prefs.ScenePath
	}

	log := logger.New()
	st := stepper.New()
	scn := scene.New(log, st)

	gravity := rl.NewVector3(0, gravityY, 0)
	var def scene.FileDef
	haveDef := false
	if scenePath != "" {
		var err error
		def, err = scene.LoadDef(scenePath)
		if err != nil {
			return err
		}
		gravity = def.GravityVector(gravity)
		haveDef = true
	}

	if err := st.Initialize(gravity); err != nil {
		return err
	}
	if haveDef {
		if err := scn.Apply(def); err != nil {
			return fmt.Errorf("apply %s: %w", scenePath, err)
		}
	} else if err := buildDemoScene(scn); err != nil {
		return err
	}
	log.Logf("sandbox: %d bodies, gravity %.2f", scn.Len(), gravity.Y)

	rend := render.New()
	rend.SetGridVisible(prefs.GridVisible)
	overlay := debug.New()
	overlay.Visible = prefs.ShowDebug
	ctrl := input.NewController(log, scn, playerID, crateID)

	update := func() {
		a := input.Poll()
		if a.ToggleDebug {
			overlay.Toggle()
		}
		if a.ToggleGrid {
			rend.SetGridVisible(!rend.GridVisible)
		}
		ctrl.Apply(a)
		st.Step(rl.GetFrameTime())
		rend.Update()
	}
	draw := func() {
		rend.Draw(scn)
		overlay.Draw(simStats(st))
	}
	teardown := func() {
		rend.Unload()
		scn.Cleanup()
	}

	graphics.Run(graphics.Options{
		Title:      "physics-sandbox",
		Fullscreen: prefs.Fullscreen,
		TargetFPS:  prefs.TargetFPS,
	}, update, draw, teardown)
	return nil
}

// buildDemoScene creates the default playground: a ground slab whose top
// face sits on the grid plane, the two keyboard-driven boxes, and a fixed
// pillar to bump into.
func buildDemoScene(scn *scene.Scene) error {
	if err := scn.CreateGround("floor", rl.NewVector3(20, 0.5, 20), rl.NewVector3(0, -0.25, 0), scene.Options{Color: rl.DarkGreen}); err != nil {
		return err
	}
	if err := scn.CreateBox(playerID, rl.NewVector3(1, 1, 1), rl.NewVector3(0, 4, 0), scene.Options{Color: rl.Orange, Dynamic: true}); err != nil {
		return err
	}
	if err := scn.CreateBox(crateID, rl.NewVector3(1, 1, 1), rl.NewVector3(3, 4, 0), scene.Options{Color: rl.SkyBlue, Dynamic: true, Mass: 2}); err != nil {
		return err
	}
	return scn.CreateBox("pillar", rl.NewVector3(1, 4, 1), rl.NewVector3(-4, 2, 0), scene.Options{Color: rl.Beige})
}

func simStats(st *stepper.Stepper) debug.Stats {
	w := st.World()
	if w == nil {
		return debug.Stats{}
	}
	sleeping := 0
	for _, b := range w.Bodies {
		if b.Kind == physics.Dynamic && b.Asleep() {
			sleeping++
		}
	}
	return debug.Stats{Steps: w.StepCount(), Bodies: len(w.Bodies), Sleeping: sleeping}
}
