/*
Package testrunner provides a scripted implementation of the runner.Runner
interface for tests. Every invocation is recorded and, unless a result has
been scripted for the tool, succeeds with empty output.
*/
package testrunner

import (
	"strings"
	"sync"
	"time"
)

// Call records a single invocation made through the Runner.
type Call struct {
	Args    []string
	Chroot  string
	Input   string
	Name    string
	Timeout time.Duration
}

type result struct {
	output []byte
	err    error
}

type Runner struct {
	mutex     sync.Mutex
	calls     []Call
	failAll   map[string]error
	responses map[string][]result
}

// New will create a scripted Runner.
func New() *Runner {
	return &Runner{
		failAll:   make(map[string]error),
		responses: make(map[string][]result),
	}
}

// PushResult will script the result of the next unscripted invocation of the
// named tool. Results for the same tool are consumed in order; once
// exhausted, invocations succeed with empty output again.
func (r *Runner) PushResult(name, output string, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.responses[name] = append(r.responses[name],
		result{output: []byte(output), err: err})
}

// SetError will make every invocation of the named tool fail with err,
// unless a result was scripted with PushResult.
func (r *Runner) SetError(name string, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.failAll[name] = err
}

// Calls returns the recorded invocations, in order.
func (r *Runner) Calls() []Call {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	calls := make([]Call, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// CommandLines returns the recorded invocations as "name arg..." strings,
// in order.
func (r *Runner) CommandLines() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	lines := make([]string, 0, len(r.calls))
	for _, call := range r.calls {
		lines = append(lines,
			strings.TrimSpace(call.Name+" "+strings.Join(call.Args, " ")))
	}
	return lines
}

// NumCalls returns the number of recorded invocations of the named tool.
func (r *Runner) NumCalls(name string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var count int
	for _, call := range r.calls {
		if call.Name == name {
			count++
		}
	}
	return count
}

func (r *Runner) Run(name string, args ...string) ([]byte, error) {
	return r.record(Call{Name: name, Args: args})
}

func (r *Runner) RunChroot(chroot, name string,
	args ...string) ([]byte, error) {
	return r.record(Call{Name: name, Args: args, Chroot: chroot})
}

func (r *Runner) RunChrootInput(chroot, input, name string,
	args ...string) ([]byte, error) {
	return r.record(Call{Name: name, Args: args, Chroot: chroot, Input: input})
}

func (r *Runner) RunTimeout(timeout time.Duration, name string,
	args ...string) ([]byte, error) {
	return r.record(Call{Name: name, Args: args, Timeout: timeout})
}

func (r *Runner) record(call Call) ([]byte, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls = append(r.calls, call)
	if queue := r.responses[call.Name]; len(queue) > 0 {
		r.responses[call.Name] = queue[1:]
		return queue[0].output, queue[0].err
	}
	if err := r.failAll[call.Name]; err != nil {
		return nil, err
	}
	return nil, nil
}
