// Package paths provides centralized path handling for qdeck.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for qdeck
	EnvConfigDir = "QDECK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for qdeck
	EnvStateDir = "QDECK_STATE_DIR"

	// EnvCacheDir overrides the XDG cache directory for qdeck
	EnvCacheDir = "QDECK_CACHE_DIR"
)

// Default directories and files. These define qdeck's on-disk layout and
// are not user-configurable; user-facing options belong in pkg/config.
const (
	// AppDirName is the directory name for qdeck-specific files
	AppDirName = "qdeck"

	// ConfigFileName is the name of the configuration tree document
	ConfigFileName = "config.yaml"

	// SettingsFileName is the name of the runtime settings file
	SettingsFileName = "settings.toml"

	// StateFileName is the name of the persisted navigation pointer
	StateFileName = "state.yaml"

	// IconCacheDirName is the subdirectory for extracted icon data
	IconCacheDirName = "icons"

	// LogFileName is the name of the log file
	LogFileName = "qdeck.log"
)

// Paths resolves every on-disk location qdeck uses. Construct with New;
// the zero value is not usable.
type Paths struct {
	configDir string
	stateDir  string
	cacheDir  string
}

// New resolves the qdeck directory layout. Environment overrides win over
// the XDG base directories.
func New() *Paths {
	p := &Paths{
		configDir: filepath.Join(xdg.ConfigHome, AppDirName),
		stateDir:  filepath.Join(xdg.StateHome, AppDirName),
		cacheDir:  filepath.Join(xdg.CacheHome, AppDirName),
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	}
	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = dir
	}
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = dir
	}

	return p
}

// ConfigDir returns the directory holding the config tree and settings.
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFile returns the path of the whole-tree config document.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// SettingsFile returns the path of the runtime settings file.
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.configDir, SettingsFileName)
}

// StateDir returns the directory holding volatile-but-persisted state.
func (p *Paths) StateDir() string {
	return p.stateDir
}

// StateFile returns the path of the persisted navigation pointer.
func (p *Paths) StateFile() string {
	return filepath.Join(p.stateDir, StateFileName)
}

// LogFile returns the path of the log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// CacheDir returns the qdeck cache directory.
func (p *Paths) CacheDir() string {
	return p.cacheDir
}

// IconCacheDir returns the directory for extracted icon data.
func (p *Paths) IconCacheDir() string {
	return filepath.Join(p.cacheDir, IconCacheDirName)
}
