// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

const (
	// DataDirName is the name of the per-project data directory.
	DataDirName = ".parley"
	// SettingsFileName is the shared settings document inside the data dir.
	SettingsFileName = "parley.yaml"
	// HistoryDBFileName is the sqlite history database inside the data dir.
	HistoryDBFileName = "history.db"
	// LogFileName is the debug log inside the data dir.
	LogFileName = "debug.log"
	// TracesFileName is the JSONL trace output inside the data dir.
	TracesFileName = "traces.jsonl"
)

// ResolveDataDir resolves the .parley data directory from user input.
// It normalizes the input, accepting either a project dir or the data dir
// itself, and falls back from the working directory to the home directory.
//
// Input normalization:
//   - "/path/to/project"         -> "/path/to/project/.parley"
//   - "/path/to/project/.parley" -> "/path/to/project/.parley"
//   - ""                         -> "./.parley" if present, else "~/.parley"
func ResolveDataDir(path string) string {
	if path != "" {
		path = filepath.Clean(path)
		if filepath.Base(path) == DataDirName {
			return path
		}
		return filepath.Join(path, DataDirName)
	}

	local := filepath.Join(".", DataDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return local
	}
	return filepath.Join(home, DataDirName)
}

// SettingsPath returns the settings document path inside dataDir.
func SettingsPath(dataDir string) string {
	return filepath.Join(dataDir, SettingsFileName)
}

// HistoryDBPath returns the history database path inside dataDir.
func HistoryDBPath(dataDir string) string {
	return filepath.Join(dataDir, HistoryDBFileName)
}

// LogPath returns the debug log path inside dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, LogFileName)
}

// TracesPath returns the trace output path inside dataDir.
func TracesPath(dataDir string) string {
	return filepath.Join(dataDir, TracesFileName)
}
