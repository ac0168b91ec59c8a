// Package executor handles command execution with privilege escalation support.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor runs external commands with optional sudo elevation. The
// output-returning variants capture stdout so callers can parse it;
// mutating package-manager transactions go through the sudo variants.
type Executor struct {
	verbose bool
}

// New creates a new Executor.
func New(verbose bool) *Executor {
	return &Executor{verbose: verbose}
}

// SetVerbose enables or disables command echoing.
func (e *Executor) SetVerbose(verbose bool) {
	e.verbose = verbose
}

// Output runs a command and returns its stdout. Stderr passes through
// to the terminal.
func (e *Executor) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	e.echo(false, name, args)

	err := cmd.Run()
	return stdout.String(), err
}

// OutputQuiet runs a command and returns its stdout, suppressing
// stderr. Used for queries where a non-zero exit is an expected answer
// rather than an error worth printing.
func (e *Executor) OutputQuiet(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	e.echo(false, name, args)

	err := cmd.Run()
	return stdout.String(), err
}

// OutputSudo runs a command with sudo if not already root and returns
// its stdout.
func (e *Executor) OutputSudo(ctx context.Context, name string, args ...string) (string, error) {
	cmd, err := e.sudoCommand(ctx, name, args)
	if err != nil {
		return "", err
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	e.echo(true, name, args)

	err = cmd.Run()
	return stdout.String(), err
}

// CombinedSudo runs a command with sudo if not already root and returns
// stdout and stderr combined, so failed transactions can be reported
// with the package manager's own diagnostics.
func (e *Executor) CombinedSudo(ctx context.Context, name string, args ...string) (string, error) {
	cmd, err := e.sudoCommand(ctx, name, args)
	if err != nil {
		return "", err
	}

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	e.echo(true, name, args)

	err = cmd.Run()
	return combined.String(), err
}

// sudoCommand builds the command, prefixing sudo when the process is
// not running as root.
func (e *Executor) sudoCommand(ctx context.Context, name string, args []string) (*exec.Cmd, error) {
	if IsRoot() {
		return exec.CommandContext(ctx, name, args...), nil
	}
	if HasSudo() {
		sudoArgs := append([]string{name}, args...)
		return exec.CommandContext(ctx, "sudo", sudoArgs...), nil
	}
	return nil, ErrNoPrivileges
}

func (e *Executor) echo(elevated bool, name string, args []string) {
	if !e.verbose {
		return
	}
	if elevated && !IsRoot() {
		fmt.Printf("Executing (with sudo): %s %s\n", name, strings.Join(args, " "))
		return
	}
	fmt.Printf("Executing: %s %s\n", name, strings.Join(args, " "))
}
