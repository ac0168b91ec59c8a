package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	dir := ConfigDir()
	if dir != filepath.Join("/tmp/xdg-config", appName) {
		t.Errorf("ConfigDir() = %s, want XDG path", dir)
	}
}

func TestDataDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir := DataDir()
	if dir != filepath.Join("/tmp/xdg-data", appName) {
		t.Errorf("DataDir() = %s, want XDG path", dir)
	}
}

func TestPaths(t *testing.T) {
	if !strings.HasSuffix(ConfigPath(), configFile) {
		t.Errorf("ConfigPath() should end with %s", configFile)
	}
	if !strings.HasSuffix(HistoryPath(), historyFile) {
		t.Errorf("HistoryPath() should end with %s", historyFile)
	}
}
