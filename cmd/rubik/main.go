package main

import (
	"context"
	"runtime"
	"time"

	"rubik/internal/commands"
	"rubik/internal/compose"
	"rubik/internal/config"
	"rubik/internal/cube"
	"rubik/internal/debug"
	"rubik/internal/graphics"
	"rubik/internal/logger"
	"rubik/internal/scene"
)

// raylib must be driven from the thread that created the window.
func init() {
	runtime.LockOSThread()
}

func main() {
	commands.Execute(run)
}

func run(_ context.Context, cfg config.Config, log *logger.Logger) error {
	start := time.Now()
	opts, err := cfg.ComposeOptions()
	if err != nil {
		return err
	}
	cubies := cube.Generate(opts.Scheme, opts.Spacing)
	graph := compose.Build(cubies, opts)
	log.Since("scene composed", start, "cubies", len(cubies), "nodes", graph.Root.Count())

	scn := scene.New(graph, cfg.SpinRates(), cfg.OrbitOptions(), log.Logger)
	dbg := debug.New()
	dbg.ShowFPS = cfg.Debug.ShowFPS
	dbg.ShowAngles = cfg.Debug.ShowAngles

	graphics.RouteTraceLog(log.Logger)
	draw := func() {
		scn.Draw()
		dbg.Draw(scn.Rotation())
	}
	graphics.Run(cfg.Window, scn.Update, draw, scn.Close)
	log.Info("window closed", "rotation_x", scn.Rotation().X, "rotation_y", scn.Rotation().Y)
	return nil
}
