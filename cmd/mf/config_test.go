package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := loadConfig(dir)
	require.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigReadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := "prompt_color: green\nhistory_size: 42\nsearch_path:\n  - /opt/libs\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mellifera.yaml"), []byte(content), 0o644))

	cfg := loadConfig(dir)
	require.Equal(t, "green", cfg.PromptColor)
	require.Equal(t, 42, cfg.HistorySize)
	require.Equal(t, []string{"/opt/libs"}, cfg.SearchPath)
}

func TestLoadConfigMalformedFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mellifera.yaml"), []byte("not: [valid: yaml"), 0o644))

	cfg := loadConfig(dir)
	require.Equal(t, defaultConfig(), cfg)
}
