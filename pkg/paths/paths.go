// Package paths provides centralized path handling for brewsync.
// It follows the XDG Base Directory specification and keeps every
// filesystem location behind one API.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for brewsync
	EnvConfigDir = "BREWSYNC_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for brewsync
	EnvStateDir = "BREWSYNC_STATE_DIR"

	// EnvBrewfile overrides the generated Brewfile location
	EnvBrewfile = "BREWSYNC_BREWFILE"
)

// Default file names. These define brewsync's on-disk layout and are not
// user-configurable; configurable locations belong in pkg/config.
const (
	// AppDirName is the directory name for brewsync-specific files
	AppDirName = "brewsync"

	// DeclarationFile is the name of the package declaration file
	DeclarationFile = "packages.yaml"

	// SettingsFile is the name of the optional app settings file
	SettingsFile = "brewsync.toml"

	// BrewfileName is the name of the generated manifest
	BrewfileName = "Brewfile"

	// LogFileName is the name of the log file
	LogFileName = "brewsync.log"
)

// Paths provides filesystem locations for brewsync
type Paths struct {
	configDir string
	stateDir  string
	brewfile  string
}

// New resolves brewsync's directories from the environment and XDG defaults
func New() *Paths {
	p := &Paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = dir
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	if file := os.Getenv(EnvBrewfile); file != "" {
		p.brewfile = file
	} else if home, err := os.UserHomeDir(); err == nil {
		p.brewfile = filepath.Join(home, BrewfileName)
	} else {
		p.brewfile = BrewfileName
	}

	return p
}

// ConfigDir returns the brewsync config directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the brewsync state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// DeclarationPath returns the path to the package declaration file
func (p *Paths) DeclarationPath() string {
	return filepath.Join(p.configDir, DeclarationFile)
}

// SettingsPath returns the path to the optional settings file
func (p *Paths) SettingsPath() string {
	return filepath.Join(p.configDir, SettingsFile)
}

// BrewfilePath returns the path the generated manifest is written to
func (p *Paths) BrewfilePath() string {
	return p.brewfile
}

// LogFilePath returns the path to the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}
