// Package toolexec runs the external storage tools the check depends on.
//
// A Runner never fails loudly: a missing binary, a non-zero exit or a timeout all come
// back as a Result the caller inspects. Callers treat anything unexpected as "no data".
package toolexec

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nuclearlighters/check-ssd/internal/circuitbreaker"
)

// DefaultTimeout bounds a single tool invocation when none is configured.
const DefaultTimeout = 5 * time.Second

var (
	// ErrToolAbsent is returned when the binary cannot be found or started.
	ErrToolAbsent = errors.New("tool not found")
	// ErrTimeout is returned when the tool did not exit within the timeout.
	ErrTimeout = errors.New("tool timed out")
)

// Result is the captured outcome of one invocation.
type Result struct {
	// Lines is stdout split into lines with trailing whitespace removed.
	Lines []string
	// ExitCode is -1 when the process did not run to completion.
	ExitCode int
	// Err is nil whenever the tool ran, whatever its exit code.
	Err error
}

// Ran reports whether the tool started and exited on its own.
func (r Result) Ran() bool {
	return r.Err == nil
}

// Runner executes external tools.
type Runner interface {
	// Exists reports whether a regular file is present at path.
	Exists(path string) bool
	// Run executes name with args and captures its output.
	Run(ctx context.Context, name string, args ...string) Result
}

// Exec is the Runner backed by os/exec.
type Exec struct {
	timeout    time.Duration
	breakerCfg circuitbreaker.Config
	breakers   map[string]*circuitbreaker.Breaker
}

// NewExec creates an Exec runner. Zero or negative values select defaults.
func NewExec(timeout time.Duration, breakerThreshold int) *Exec {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cfg := circuitbreaker.DefaultConfig()
	if breakerThreshold > 0 {
		cfg.Threshold = breakerThreshold
	}

	return &Exec{
		timeout:    timeout,
		breakerCfg: cfg,
		breakers:   make(map[string]*circuitbreaker.Breaker),
	}
}

// Exists implements Runner.
func (e *Exec) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, name string, args ...string) Result {
	breaker := e.breaker(name)
	if err := breaker.Allow(); err != nil {
		log.Debug().Str("tool", name).Strs("args", args).Msg("Skipping tool, circuit open")
		return Result{ExitCode: -1, Err: err}
	}

	start := time.Now()
	res := e.run(ctx, name, args)
	breaker.Record(res.Err)

	evt := log.Debug()
	if errors.Is(res.Err, ErrTimeout) {
		evt = log.Warn()
	}
	evt.Str("tool", name).
		Strs("args", args).
		Int("exit_code", res.ExitCode).
		Int("lines", len(res.Lines)).
		Dur("duration", time.Since(start)).
		Err(res.Err).
		Msg("Ran tool")

	if trips(res.Err) && breaker.State() == circuitbreaker.StateOpen {
		log.Warn().Str("tool", name).Int("failures", breaker.Failures()).Msg("Tool keeps failing, skipping it for the rest of the run")
	}

	return res
}

func (e *Exec) run(ctx context.Context, name string, args []string) Result {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	// children that inherited stdout must not hold Wait past the timeout
	cmd.WaitDelay = 500 * time.Millisecond

	err := cmd.Run()
	lines := SplitLines(stdout.String())

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return Result{Lines: lines, ExitCode: 0}
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return Result{Lines: lines, ExitCode: -1, Err: fmt.Errorf("%s: %w after %s", name, ErrTimeout, e.timeout)}
	case errors.As(err, &exitErr):
		return Result{Lines: lines, ExitCode: exitErr.ExitCode()}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return Result{ExitCode: -1, Err: fmt.Errorf("%s: %w: %v", name, ErrToolAbsent, err)}
	default:
		return Result{Lines: lines, ExitCode: -1, Err: fmt.Errorf("%s: %w", name, err)}
	}
}

func (e *Exec) breaker(name string) *circuitbreaker.Breaker {
	b, ok := e.breakers[name]
	if !ok {
		b = circuitbreaker.New(name, e.breakerCfg, trips)
		e.breakers[name] = b
	}
	return b
}

// trips reports whether err says the tool itself is unusable, as opposed to a tool
// that ran and had nothing to say about one device.
func trips(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrToolAbsent)
}

// SplitLines splits tool output into lines, strips trailing whitespace from each
// and drops the empty line a final newline would produce.
func SplitLines(output string) []string {
	lines := []string{}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r"))
	}

	return lines
}
