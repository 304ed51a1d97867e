// Package commands builds the rubik command line: the root command opens the scene window and the
// layout and config subcommands print the generated cube and the effective settings as YAML.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rubik/internal/config"
	"rubik/internal/cube"
	"rubik/internal/logger"
)

// RunFunc opens the scene with cfg and blocks until the window closes.
type RunFunc func(ctx context.Context, cfg config.Config, log *logger.Logger) error

// flags are shared by every command.
type flags struct {
	configPath string
	logPath    string
	fullscreen bool
	fps        int
	verbose    bool
}

// NewRoot returns the root command. run is invoked by the bare "rubik" command.
func NewRoot(run RunFunc) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "rubik",
		Short:         "Spinning 3x3x3 cube scene",
		Long:          `rubik opens a window showing a Rubik's cube spinning over a ground plane. Drag to orbit, right-drag to pan, scroll to zoom.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			level := slog.LevelInfo
			if f.verbose {
				level = slog.LevelDebug
			}
			log, err := logger.New(f.logPath, cmd.ErrOrStderr(), level)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer log.Close()
			log.Info("starting", "config", f.configPath, "fullscreen", cfg.Window.Fullscreen, "fps", cfg.Window.TargetFPS)
			return run(cmd.Context(), cfg, log)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", config.DefaultPath, "YAML settings file (missing file uses defaults)")
	pf.StringVar(&f.logPath, "log", logger.LogFilePath, "log file, empty for console only")
	pf.BoolVar(&f.fullscreen, "fullscreen", false, "use the monitor resolution")
	pf.IntVar(&f.fps, "fps", 0, "target frames per second, 0 keeps the configured value")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log debug records")

	root.AddCommand(newLayoutCmd(f), newConfigCmd(f))
	return root
}

// Execute runs the command line and exits 1 on error.
func Execute(run RunFunc) {
	if err := NewRoot(run).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "rubik:", err)
		os.Exit(1)
	}
}

// load reads the settings file and applies command-line overrides.
func (f *flags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("fullscreen") {
		cfg.Window.Fullscreen = f.fullscreen
	}
	if f.fps > 0 {
		cfg.Window.TargetFPS = f.fps
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newConfigCmd(f *flags) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if write {
				if err := config.Save(f.configPath, cfg); err != nil {
					return fmt.Errorf("write config: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", f.configPath)
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "also save the settings to the --config file")
	return cmd
}

// LayoutEntry is one cubie as printed by the layout command.
type LayoutEntry struct {
	Key      string            `yaml:"key"`
	Position [3]float32        `yaml:"position,flow"`
	Stickers map[string]string `yaml:"stickers,omitempty"`
	Body     []string          `yaml:"body,flow,omitempty"`
}

// Layout describes cubies, in generation order, with their sticker colours as hex and the faces left body-coloured.
func Layout(cubies []cube.Cubie) []LayoutEntry {
	out := make([]LayoutEntry, 0, len(cubies))
	for _, c := range cubies {
		e := LayoutEntry{Key: c.Coord.Key(), Position: c.Position}
		for _, face := range cube.Faces {
			st := c.Stickers[face]
			if !st.OK {
				e.Body = append(e.Body, face.String())
				continue
			}
			if e.Stickers == nil {
				e.Stickers = make(map[string]string, cube.FaceCount)
			}
			e.Stickers[face.String()] = config.FormatHexColor(st.Color)
		}
		out = append(out, e)
	}
	return out
}

func newLayoutCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the 27 cubies with positions and sticker colours as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			scheme, err := cfg.Scheme()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(Layout(cube.Generate(scheme, cfg.Cube.Spacing))); err != nil {
				return fmt.Errorf("encode layout: %w", err)
			}
			return enc.Close()
		},
	}
}
