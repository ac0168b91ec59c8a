// Package apk adapts Alpine's apk package manager to the reconciler's
// backend interface.
package apk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"apkstate/internal/executor"
	"apkstate/pkg/reconcile"
)

// DefaultBinary is where Alpine installs apk.
const DefaultBinary = "/sbin/apk"

// Options configures the adapter.
type Options struct {
	// Binary is the path to the apk executable. Empty means DefaultBinary.
	Binary string
	// Purge removes configuration files along with packages.
	Purge bool
	// Verbose echoes every apk invocation.
	Verbose bool
}

// APK drives the apk binary. It implements reconcile.Backend.
type APK struct {
	binary string
	purge  bool
	exec   *executor.Executor
}

// New creates an adapter for the apk binary described by opts.
func New(opts Options) *APK {
	binary := opts.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	return &APK{
		binary: binary,
		purge:  opts.Purge,
		exec:   executor.New(opts.Verbose),
	}
}

// Binary returns the configured apk path.
func (a *APK) Binary() string {
	return a.binary
}

// IsAvailable reports whether the configured apk binary can be found.
// Relative names are resolved through PATH.
func (a *APK) IsAvailable() bool {
	if filepath.IsAbs(a.binary) {
		_, err := os.Stat(a.binary)
		return err == nil
	}
	_, err := exec.LookPath(a.binary)
	return err == nil
}

// IsInstalled reports whether the named package is installed. A
// non-zero exit from the query is the "not installed" answer; anything
// else (binary missing, context cancelled) is a real failure.
func (a *APK) IsInstalled(ctx context.Context, name string) (bool, error) {
	_, err := a.exec.OutputQuiet(ctx, a.binary, "-v", "info", "--installed", name)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}

// HasUpdate reports whether a newer version of an installed package is
// available. Failures and unparseable output both report no update:
// the reconciler must never mutate on a guess.
func (a *APK) HasUpdate(ctx context.Context, name string) (bool, error) {
	output, err := a.exec.Output(ctx, a.binary, "version", name)
	if err != nil {
		return false, nil
	}
	return CompareVersions(output, name) == CompareOlder, nil
}

// RefreshIndex updates the repository indexes. There is no simulated
// form; a refresh always runs for real.
func (a *APK) RefreshIndex(ctx context.Context) error {
	output, err := a.exec.CombinedSudo(ctx, a.binary, "update")
	if err != nil {
		return commandError(err, output)
	}
	return nil
}

// UpgradeAll upgrades every installed package and reports whether
// anything changed, trusting apk's own up-to-date signal.
func (a *APK) UpgradeAll(ctx context.Context, simulate bool) (bool, error) {
	args := []string{"upgrade"}
	if simulate {
		args = append(args, "--simulate")
	}

	output, err := a.exec.OutputSudo(ctx, a.binary, args...)
	if err != nil {
		return false, commandError(err, output)
	}
	if simulate {
		printSimulated(output)
	}
	return !upToDate(output), nil
}

// Apply submits a mutating transaction for the named packages.
func (a *APK) Apply(ctx context.Context, op reconcile.Op, names []string, simulate bool) error {
	var args []string
	switch op {
	case reconcile.OpRemove:
		args = []string{"del"}
		if a.purge {
			args = append(args, "--purge")
		}
	case reconcile.OpInstallOrUpgrade:
		args = []string{"add", "--upgrade"}
	case reconcile.OpInstall:
		args = []string{"add"}
	default:
		return fmt.Errorf("unsupported operation %q", op)
	}

	if simulate {
		args = append(args, "--simulate")
	}
	args = append(args, names...)

	output, err := a.exec.CombinedSudo(ctx, a.binary, args...)
	if err != nil {
		return commandError(err, output)
	}
	if simulate {
		printSimulated(output)
	}
	return nil
}

// commandError attaches the tail of apk's output to a failed command,
// since apk prints its diagnosis last.
func commandError(err error, output string) error {
	output = strings.TrimSpace(output)
	if output == "" {
		return err
	}
	lines := strings.Split(output, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return fmt.Errorf("%w: %s", err, strings.Join(lines, "; "))
}

// printSimulated shows what apk reported it would do.
func printSimulated(output string) {
	if output = strings.TrimSpace(output); output != "" {
		fmt.Println(output)
	}
}
