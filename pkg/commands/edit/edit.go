// Package edit opens the declaration file in the user's editor and
// reloads it afterwards.
package edit

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/logging"
)

// Options holds the edit command inputs
type Options struct {
	FS   filesystem.FS
	Path string

	// Editor overrides $EDITOR; mostly for tests
	Editor string
}

// Result carries the store reloaded after the editor exits
type Result struct {
	Path  string
	Store *declaration.Store
}

// Edit opens the declaration in the editor, creating an empty declaration
// first when none exists, and reloads the store from disk afterwards
func Edit(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.edit")

	editor := opts.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	if _, err := opts.FS.Stat(opts.Path); err != nil {
		if err := opts.FS.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, errors.Wrap(err, errors.ErrDeclarationSave, "cannot create config directory")
		}
		seed := declaration.NewStore()
		if err := seed.SaveTo(opts.FS, opts.Path); err != nil {
			return nil, err
		}
	}

	logger.Debug().Str("editor", editor).Str("path", opts.Path).Msg("Opening declaration")

	// $EDITOR may carry arguments, e.g. "code --wait"
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	cmd := exec.Command(fields[0], append(fields[1:], opts.Path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrBridgeExec, "editor %s failed", editor)
	}

	return &Result{Path: opts.Path, Store: declaration.Load(opts.FS, opts.Path)}, nil
}
