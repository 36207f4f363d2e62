package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/workspace")

	assert.Equal(t, "/workspace", cfg.WorkspaceRoot)
	assert.Equal(t, filepath.Join("/workspace", ".greenlight", "plans"), cfg.PlansDir)
	assert.Equal(t, filepath.Join("/workspace", ".greenlight", "backups"), cfg.BackupDir)
	assert.False(t, cfg.AllowExternalPaths)
	assert.NotEmpty(t, cfg.ProtectedFiles)
	assert.NotEmpty(t, cfg.VendorDirs)
	assert.Positive(t, cfg.SizeThresholdBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	workspace := t.TempDir()

	cfg, err := LoadOrDefault(workspace)
	require.NoError(t, err)
	assert.Equal(t, workspace, cfg.WorkspaceRoot)
	assert.Equal(t, filepath.Join(workspace, ".greenlight", "plans"), cfg.PlansDir)
}

func TestLoadOrDefault_PartialFile(t *testing.T) {
	workspace := t.TempDir()

	content := "log_level: debug\nplans_dir: " + filepath.Join(workspace, "custom-plans") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(workspace, DefaultFileName), []byte(content), 0640))

	cfg, err := LoadOrDefault(workspace)
	require.NoError(t, err)

	// Explicit settings win; the rest falls back to defaults.
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(workspace, "custom-plans"), cfg.PlansDir)
	assert.Equal(t, workspace, cfg.WorkspaceRoot)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.NotEmpty(t, cfg.ProtectedFiles)
}

func TestLoad_InvalidYAML(t *testing.T) {
	workspace := t.TempDir()
	path := filepath.Join(workspace, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unterminated"), 0640))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	workspace := t.TempDir()
	path := filepath.Join(workspace, DefaultFileName)

	cfg := Default(workspace)
	cfg.LogLevel = "warn"
	cfg.AllowExternalPaths = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", loaded.LogLevel)
	assert.True(t, loaded.AllowExternalPaths)
	assert.Equal(t, cfg.PlansDir, loaded.PlansDir)
}
