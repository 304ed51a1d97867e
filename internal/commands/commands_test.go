package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rubik/internal/config"
	"rubik/internal/cube"
	"rubik/internal/logger"
)

func execute(t *testing.T, run RunFunc, args ...string) (string, error) {
	t.Helper()
	if run == nil {
		run = func(context.Context, config.Config, *logger.Logger) error {
			t.Fatal("scene should not open")
			return nil
		}
	}
	root := NewRoot(run)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// missingConfig points at a file that does not exist so defaults apply.
func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.yaml")
}

func TestLayoutPrintsAllCubies(t *testing.T) {
	out, err := execute(t, nil, "layout", "--config", missingConfig(t))
	require.NoError(t, err)

	var entries []LayoutEntry
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 27)

	byKey := map[string]LayoutEntry{}
	for _, e := range entries {
		byKey[e.Key] = e
	}
	assert.Len(t, byKey, 27)

	corner := byKey["1,1,1"]
	assert.Equal(t, map[string]string{"+X": "#c41e3a", "+Y": "#ffffff", "+Z": "#009e60"}, corner.Stickers)
	assert.Equal(t, []string{"-X", "-Y", "-Z"}, corner.Body)

	center := byKey["0,0,0"]
	assert.Empty(t, center.Stickers)
	assert.Len(t, center.Body, 6)

	edge := byKey["1,-1,0"]
	assert.InDelta(t, 1.02, edge.Position[0], 1e-6)
	assert.InDelta(t, -1.02, edge.Position[1], 1e-6)
	assert.InDelta(t, 0, edge.Position[2], 1e-6)
}

func TestLayoutUsesConfiguredScheme(t *testing.T) {
	cfg := config.Default()
	cfg.Cube.Scheme.PosX = "#123456"
	cfg.Cube.Spacing = 2
	cfg.Cube.CubieSize = 1.5
	path := filepath.Join(t.TempDir(), "rubik.yaml")
	require.NoError(t, config.Save(path, cfg))

	out, err := execute(t, nil, "layout", "--config", path)
	require.NoError(t, err)
	var entries []LayoutEntry
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	for _, e := range entries {
		if e.Key == "1,0,0" {
			assert.Equal(t, "#123456", e.Stickers["+X"])
			assert.InDelta(t, 2, e.Position[0], 1e-6)
		}
	}
}

func TestLayoutOrderFollowsGenerator(t *testing.T) {
	entries := Layout(cube.Generate(cube.DefaultScheme(), cube.Spacing))
	coords := cube.Lattice()
	require.Len(t, entries, len(coords))
	for i, c := range coords {
		assert.Equal(t, c.Key(), entries[i].Key)
	}
}

func TestConfigCommandAppliesFlags(t *testing.T) {
	out, err := execute(t, nil, "config", "--config", missingConfig(t), "--fps", "30", "--fullscreen")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 30, cfg.Window.TargetFPS)
	assert.True(t, cfg.Window.Fullscreen)
	assert.Equal(t, config.Default().Cube, cfg.Cube)
}

func TestConfigWriteSavesEffectiveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "rubik.yaml")
	out, err := execute(t, nil, "config", "--config", path, "--fps", "75", "--write")
	require.NoError(t, err)

	saved, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75, saved.Window.TargetFPS)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubik.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cube:\n  cubie_size: 5\n"), 0644))

	_, err := execute(t, nil, "config", "--config", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRootRunsScene(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "rubik.log")
	var got config.Config
	called := false
	run := func(ctx context.Context, cfg config.Config, log *logger.Logger) error {
		called = true
		got = cfg
		log.Info("scene closed")
		return nil
	}

	_, err := execute(t, run, "--config", missingConfig(t), "--log", logPath, "--fps", "144")
	require.NoError(t, err)
	require.True(t, called)
	assert.Equal(t, 144, got.Window.TargetFPS)
	assert.False(t, got.Window.Fullscreen)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=starting")
	assert.Contains(t, string(data), `msg="scene closed"`)
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, nil, "--config", missingConfig(t), "extra")
	assert.Error(t, err)
}
