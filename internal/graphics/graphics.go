package graphics

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rubik/internal/config"
)

// background is the clear colour behind the scene.
var background = rl.NewColor(0x10, 0x10, 0x14, 0xff)

// Run opens the window and runs the main loop until it is closed. Each frame it calls update with
// the frame time in seconds, then clears the screen and calls draw. shutdown, if set, runs before
// the window closes so GPU resources can be released while the context still exists.
// Fullscreen passes a zero size so raylib uses the monitor resolution.
func Run(cfg config.Window, update func(dt float32), draw func(), shutdown func()) {
	var flags uint32 = rl.FlagWindowResizable | rl.FlagVsyncHint
	if cfg.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	w, h := int32(cfg.Width), int32(cfg.Height)
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
		w, h = 0, 0
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(w, h, cfg.Title)
	defer rl.CloseWindow()
	if shutdown != nil {
		defer shutdown()
	}

	rl.SetExitKey(rl.KeyNull) // close via window button; keys are free for the scene
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
}

// RouteTraceLog sends raylib's own log output to log. Call before Run.
func RouteTraceLog(log *slog.Logger) {
	rl.SetTraceLogLevel(rl.LogInfo)
	rl.SetTraceLogCallback(func(level int, msg string) {
		log.Log(context.Background(), traceLevel(rl.TraceLogLevel(level)), msg, "source", "raylib")
	})
}

func traceLevel(level rl.TraceLogLevel) slog.Level {
	switch {
	case level <= rl.LogDebug:
		return slog.LevelDebug
	case level == rl.LogInfo:
		return slog.LevelInfo
	case level == rl.LogWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
