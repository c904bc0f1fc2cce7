package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ViewerSettings holds persistent idef0view preferences.
type ViewerSettings struct {
	Format  string `toml:"format"`   // "svg" or "png"
	LastDir string `toml:"last_dir"` // last used export directory
	Diagram string `toml:"diagram"`  // "context" or "decomposition"
}

// DefaultViewerSettings returns default settings.
func DefaultViewerSettings() ViewerSettings {
	cwd, _ := os.Getwd()
	return ViewerSettings{
		Format:  "svg",
		LastDir: cwd,
		Diagram: "context",
	}
}

// ViewerSettingsPath returns the path to the settings file.
func ViewerSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".idef0view.toml"
	}
	return filepath.Join(home, ".idef0view.toml")
}

// LoadViewerSettings reads settings from path. A missing or unreadable file
// yields the defaults; unknown values fall back field by field.
func LoadViewerSettings(path string) ViewerSettings {
	def := DefaultViewerSettings()

	var s ViewerSettings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return def
	}

	if s.Format != "svg" && s.Format != "png" {
		s.Format = def.Format
	}
	if s.Diagram != "context" && s.Diagram != "decomposition" {
		s.Diagram = def.Diagram
	}
	if s.LastDir == "" {
		s.LastDir = def.LastDir
	}
	return s
}

// SaveViewerSettings writes settings to path.
func SaveViewerSettings(path string, s ViewerSettings) error {
	var buf bytes.Buffer
	buf.WriteString("# idef0view configuration\n")
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
