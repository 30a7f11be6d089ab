package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "consetl"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/consetl by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/consetl by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// SourcesCacheDir keeps downloaded copies of remote input tables.
func SourcesCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "sources")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/consetl/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/consetl/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// OutputPath resolves a file name against the output directory.
// Absolute paths are returned unchanged.
func (c *Config) OutputPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.Output.Dir, file)
}
