/*
Package runner provides a narrow interface for running external tools and
inspecting their exit status and captured output. Component logic depends on
the Runner interface so that it can be tested against scripted results
without invoking real (destructive) tools.
*/
package runner

import (
	"time"

	"github.com/osprey-linux/installer/lib/log"
)

// Runner defines the command-execution boundary. All methods return the
// combined standard output and standard error of the tool. A non-nil error
// is returned if the tool could not be started or exited with a non-zero
// status.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
	RunChroot(chroot, name string, args ...string) ([]byte, error)
	RunChrootInput(chroot, input, name string, args ...string) ([]byte, error)
	RunTimeout(timeout time.Duration, name string,
		args ...string) ([]byte, error)
}

type Options struct {
	DryRun bool
}

type ExecRunner struct {
	logger  log.DebugLogger
	options Options
}

// New will create an ExecRunner which runs real commands, logging each
// invocation. If options.DryRun is true no commands are run: invocations are
// logged and succeed with empty output.
func New(options Options, logger log.DebugLogger) *ExecRunner {
	return &ExecRunner{logger: logger, options: options}
}

// Run will run the named tool with the specified arguments.
func (r *ExecRunner) Run(name string, args ...string) ([]byte, error) {
	return r.run("", "", 0, name, args)
}

// RunChroot is like Run, with the tool confined to the specified root
// directory.
func (r *ExecRunner) RunChroot(chroot, name string,
	args ...string) ([]byte, error) {
	return r.run(chroot, "", 0, name, args)
}

// RunChrootInput is like RunChroot, with input written to the standard input
// of the tool.
func (r *ExecRunner) RunChrootInput(chroot, input, name string,
	args ...string) ([]byte, error) {
	return r.run(chroot, input, 0, name, args)
}

// RunTimeout is like Run, with a hard wall-clock timeout. On timeout the
// tool is killed, not awaited.
func (r *ExecRunner) RunTimeout(timeout time.Duration, name string,
	args ...string) ([]byte, error) {
	return r.run("", "", timeout, name, args)
}
