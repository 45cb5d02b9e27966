package kconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefaultsWhenFileAbsent(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, Defaults().Workers, cfg.Workers)
}

func TestLoadReadsKernelYAML(t *testing.T) {
	dir := t.TempDir()
	content := []byte("workers: 8\nframe-budget-ms: 33\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kernel.yaml"), content, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, 33, cfg.FrameBudgetMS)
}

func TestEnvOverridesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	content := []byte("workers: 8\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kernel.yaml"), content, 0o644))
	t.Setenv("SYX_WORKERS", "2")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Workers)
}

func TestLoadLocalReturnsDefaultsOnMissingFile(t *testing.T) {
	cfg := LoadLocal(t.TempDir())
	require.Equal(t, Defaults().FrameBudgetMS, cfg.FrameBudgetMS)
}
