// Package toolexectest provides a scripted toolexec.Runner for tests.
package toolexectest

import (
	"context"
	"fmt"
	"strings"

	"github.com/nuclearlighters/check-ssd/internal/toolexec"
)

// Script is a Runner that replays canned tool output keyed by command line.
// Unscripted command lines behave like a missing binary.
type Script struct {
	present map[string]bool
	outputs map[string]toolexec.Result

	// Calls records every command line passed to Run, in order.
	Calls []string
}

var _ toolexec.Runner = (*Script)(nil)

// New creates an empty Script.
func New() *Script {
	return &Script{
		present: make(map[string]bool),
		outputs: make(map[string]toolexec.Result),
	}
}

// WithTools marks binaries as installed.
func (s *Script) WithTools(paths ...string) *Script {
	for _, p := range paths {
		s.present[p] = true
	}
	return s
}

// On scripts stdout for a command line such as "/bin/lsblk -d -o name".
func (s *Script) On(cmdline, stdout string) *Script {
	return s.OnResult(cmdline, toolexec.Result{Lines: toolexec.SplitLines(stdout)})
}

// OnResult scripts a full Result for a command line.
func (s *Script) OnResult(cmdline string, res toolexec.Result) *Script {
	s.outputs[cmdline] = res
	return s
}

// Exists implements toolexec.Runner.
func (s *Script) Exists(path string) bool {
	return s.present[path]
}

// Run implements toolexec.Runner.
func (s *Script) Run(_ context.Context, name string, args ...string) toolexec.Result {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	s.Calls = append(s.Calls, cmdline)

	if res, ok := s.outputs[cmdline]; ok {
		return res
	}
	return toolexec.Result{ExitCode: -1, Err: fmt.Errorf("%s: %w", name, toolexec.ErrToolAbsent)}
}

// Count returns how many times cmdline was run.
func (s *Script) Count(cmdline string) int {
	n := 0
	for _, c := range s.Calls {
		if c == cmdline {
			n++
		}
	}
	return n
}
