// Package config loads brewsync's settings file. Settings cover the knobs
// that are about this machine rather than about the package inventory:
// machine name override, generated Brewfile location, default group, and
// output styling. The package inventory itself lives in the declaration
// store, not here.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
)

// Settings is the resolved configuration for one invocation
type Settings struct {
	// Machine overrides the hostname-derived machine name
	Machine string `koanf:"machine" toml:"machine"`

	// Brewfile is where generate writes the manifest; empty means
	// ~/Brewfile
	Brewfile string `koanf:"brewfile" toml:"brewfile"`

	// DefaultGroup is preselected when add prompts for a group
	DefaultGroup string `koanf:"default_group" toml:"default_group"`

	// Color controls styled output: "auto", "always", or "never"
	Color string `koanf:"color" toml:"color"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"machine":       "",
		"brewfile":      "",
		"default_group": "common",
		"color":         "auto",
	}
}

// Load reads settings from the TOML file at path, layered over built-in
// defaults. A missing file is not an error; a malformed one is.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", path)
		}
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to parse settings")
	}

	if err := validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// MachineName resolves the effective machine name: the configured
// override if set, otherwise the short hostname (everything before the
// first dot, lowercased).
func (s *Settings) MachineName() (string, error) {
	if s.Machine != "" {
		return s.Machine, nil
	}
	hostname, err := os.Hostname()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot determine hostname")
	}
	return ShortHostname(hostname), nil
}

// ShortHostname reduces a full hostname to its machine name form
func ShortHostname(hostname string) string {
	if i := strings.IndexByte(hostname, '.'); i >= 0 {
		hostname = hostname[:i]
	}
	return strings.ToLower(hostname)
}

// WriteDefault seeds path with the given settings so users have a file to
// edit. An existing file is left alone.
func WriteDefault(fs filesystem.FS, path string, settings *Settings) error {
	if _, err := fs.Stat(path); err == nil {
		return nil
	}

	data, err := gotoml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "could not serialize default settings")
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "could not create %s", filepath.Dir(path))
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "could not write %s", path)
	}
	return nil
}

func validate(s *Settings) error {
	switch s.Color {
	case "auto", "always", "never":
		return nil
	default:
		return errors.Newf(errors.ErrConfigLoad,
			"invalid color setting %q, want auto, always, or never", s.Color)
	}
}
