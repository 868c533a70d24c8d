package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 42\nworkloads: [inline, swap]\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 42, cfg.Iterations)
	require.Equal(t, []string{"inline", "swap"}, cfg.Workloads)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.toml")
	body := "iterations = 7\nworkloads = [\"heap\"]\nheap_profile = \"mem.prof\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Iterations)
	require.Equal(t, []string{"heap"}, cfg.Workloads)
	require.Equal(t, "mem.prof", cfg.HeapProfile)
}

func TestLoadConfigDefaultsSurvive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.yml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 3\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, Names(), cfg.Workloads)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("work.json")
	require.ErrorIs(t, err, ErrUnsupportedConfig)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := Config{Iterations: 1, Workloads: []string{"nope"}}
	require.ErrorIs(t, bad.Validate(), ErrUnknownWorkload)

	zero := Config{Workloads: []string{"inline"}}
	require.ErrorIs(t, zero.Validate(), ErrBadIterations)
}

func TestRunWorkloads(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			res, err := Run(name, 50)
			require.NoError(t, err)
			require.Equal(t, name, res.Name)
			require.Equal(t, 50, res.Iterations)
			require.GreaterOrEqual(t, res.NsPerOp(), 0.0)
		})
	}

	_, err := Run("missing", 1)
	require.ErrorIs(t, err, ErrUnknownWorkload)
}

func TestWorkloadResults(t *testing.T) {
	require.Equal(t, int64(9), runHandle(10))
	require.Equal(t, int64(10), runConvert(10))
	require.Equal(t, int64(45), runInline(10))
	require.Equal(t, int64(1), runSwap(2))
}

func TestAppWritesHeapProfile(t *testing.T) {
	prof := filepath.Join(t.TempDir(), "mem.prof")
	err := newApp().Run(context.Background(), []string{
		"boxprof", "-n", "20", "-w", "inline", "-w", "heap",
		"--heap-profile", prof, "--log-level", "error",
	})
	require.NoError(t, err)

	info, err := os.Stat(prof)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}

func TestAppRejectsUnknownWorkload(t *testing.T) {
	err := newApp().Run(context.Background(), []string{"boxprof", "-w", "bogus", "--log-level", "error"})
	require.ErrorIs(t, err, ErrUnknownWorkload)
}
