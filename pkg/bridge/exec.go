package bridge

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/logging"
)

// Binary names of the external package managers
const (
	brewBinary = "brew"
	masBinary  = "mas"
)

// Exec is the real bridge implementation shelling out to brew and mas
type Exec struct{}

// NewExec creates a bridge backed by the brew and mas binaries on PATH
func NewExec() *Exec {
	return &Exec{}
}

// Available verifies brew is on PATH
func (e *Exec) Available() error {
	if _, err := exec.LookPath(brewBinary); err != nil {
		return errors.Wrap(err, errors.ErrBridgeMissing,
			"brew is not installed; install it from https://brew.sh and retry")
	}
	return nil
}

// Install installs one package by name
func (e *Exec) Install(kind brewpkg.Kind, name string) error {
	switch kind {
	case brewpkg.KindTap:
		return e.runBrew("tap", name)
	case brewpkg.KindFormula:
		return e.runBrew("install", name)
	case brewpkg.KindCask:
		return e.runBrew("install", "--cask", name)
	case brewpkg.KindMAS:
		_, id := brewpkg.SplitMAS(name)
		if id == "" {
			return errors.Newf(errors.ErrInvalidInput,
				"mas app %q has no numeric id; declare it as \"Name%s<id>\" (see: mas list)",
				name, brewpkg.MASSeparator)
		}
		return e.runMAS("install", id)
	default:
		return errors.Newf(errors.ErrUnknownKind, "cannot install kind %v", kind)
	}
}

// Uninstall removes one package by name
func (e *Exec) Uninstall(kind brewpkg.Kind, name string) error {
	switch kind {
	case brewpkg.KindTap:
		return e.runBrew("untap", name)
	case brewpkg.KindFormula:
		return e.runBrew("uninstall", name)
	case brewpkg.KindCask:
		return e.runBrew("uninstall", "--cask", name)
	case brewpkg.KindMAS:
		_, id := brewpkg.SplitMAS(name)
		if id == "" {
			return errors.Newf(errors.ErrInvalidInput,
				"mas app %q has no numeric id; cannot uninstall (see: mas list)", name)
		}
		return e.runMAS("uninstall", id)
	default:
		return errors.Newf(errors.ErrUnknownKind, "cannot uninstall kind %v", kind)
	}
}

// Search returns package names matching the query. Taps have no search
// surface; the result is empty.
func (e *Exec) Search(kind brewpkg.Kind, query string) ([]string, error) {
	var cmd *exec.Cmd
	switch kind {
	case brewpkg.KindFormula:
		cmd = exec.Command(brewBinary, "search", "--formula", query)
	case brewpkg.KindCask:
		cmd = exec.Command(brewBinary, "search", "--cask", query)
	case brewpkg.KindMAS:
		cmd = exec.Command(masBinary, "search", query)
	default:
		return nil, nil
	}

	output, err := cmd.Output()
	if err != nil {
		// brew search exits non-zero when nothing matches
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrBridgeExec, "search for %q failed", query)
	}

	return scanLines(output), nil
}

// Autoremove removes orphaned dependencies and clears caches
func (e *Exec) Autoremove() error {
	if err := e.runBrewQuiet("autoremove"); err != nil {
		return err
	}
	return e.runBrewQuiet("cleanup")
}

// Dump writes the installed package set to manifestPath, excluding editor
// extensions which brewsync does not manage
func (e *Exec) Dump(manifestPath string) error {
	return e.runBrew("bundle", "dump", "--file", manifestPath, "--force", "--no-vscode")
}

// ListManifest lists one kind's identifiers from a manifest file
func (e *Exec) ListManifest(manifestPath string, kind brewpkg.Kind) ([]string, error) {
	var flag string
	switch kind {
	case brewpkg.KindTap:
		flag = "--taps"
	case brewpkg.KindFormula:
		flag = "--brews"
	case brewpkg.KindCask:
		flag = "--casks"
	case brewpkg.KindMAS:
		flag = "--mas"
	default:
		return nil, errors.Newf(errors.ErrUnknownKind, "cannot list kind %v", kind)
	}

	cmd := exec.Command(brewBinary, "bundle", "list", "--file", manifestPath, flag)
	output, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBridgeExec,
			"brew bundle list %s failed for %s", flag, manifestPath)
	}

	return scanLines(output), nil
}

// InstallFromManifest installs everything the manifest declares, streaming
// brew's output through so the user sees install progress
func (e *Exec) InstallFromManifest(manifestPath string) error {
	return e.runInteractive(brewBinary, "bundle", "install", "--file", manifestPath)
}

// CleanupAgainstManifest removes everything not declared in the manifest
func (e *Exec) CleanupAgainstManifest(manifestPath string, force bool) error {
	args := []string{"bundle", "cleanup", "--file", manifestPath}
	if force {
		args = append(args, "--force")
	}
	return e.runInteractive(brewBinary, args...)
}

// runBrew runs brew with the given args, attaching combined output to the
// error on failure
func (e *Exec) runBrew(args ...string) error {
	return run(brewBinary, args...)
}

// runBrewQuiet is runBrew without error context noise, for best-effort calls
func (e *Exec) runBrewQuiet(args ...string) error {
	cmd := exec.Command(brewBinary, args...)
	return cmd.Run()
}

// runMAS runs the mas CLI
func (e *Exec) runMAS(args ...string) error {
	if _, err := exec.LookPath(masBinary); err != nil {
		return errors.Wrap(err, errors.ErrBridgeMissing,
			"mas is not installed; run: brew install mas")
	}
	return run(masBinary, args...)
}

// runInteractive streams the subprocess's stdout/stderr to the terminal
func (e *Exec) runInteractive(binary string, args ...string) error {
	logger := logging.GetLogger("bridge")
	logger.Debug().Str("binary", binary).Strs("args", args).Msg("Running bridge command")

	cmd := exec.Command(binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrBridgeExec,
			"%s %s failed", binary, strings.Join(args, " "))
	}
	return nil
}

// run executes a command, capturing output for error context
func run(binary string, args ...string) error {
	logger := logging.GetLogger("bridge")
	logger.Debug().Str("binary", binary).Strs("args", args).Msg("Running bridge command")

	cmd := exec.Command(binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, errors.ErrBridgeExec,
			"%s %s failed: %s", binary, strings.Join(args, " "),
			strings.TrimSpace(string(output)))
	}
	return nil
}

// scanLines splits command output into trimmed, non-empty lines
func scanLines(output []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Verify interface compliance
var _ Bridge = (*Exec)(nil)
