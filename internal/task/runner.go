package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Exit codes owned by the runner itself. Anything else is the wrapped
// tool's own exit status, passed through verbatim.
const (
	ExitOK          = 0
	ExitUsage       = 64  // unknown task name, nothing spawned
	ExitExecFailure = 127 // child could not be started
	ExitInterrupted = 130 // child killed by operator interrupt
)

// ErrUnknownTask is returned when the requested name is not in the
// declared task set. No process is spawned in that case.
var ErrUnknownTask = errors.New("unknown task")

// ExecError reports that the child process could not be started at all
// (missing executable, permission denied). It carries the underlying OS
// error unchanged.
type ExecError struct {
	Task string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("task %q failed to start: %v", e.Task, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Runner executes declared tasks, one child process per invocation.
type Runner struct {
	tasks  *Set
	dir    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithDir sets the working directory for spawned tasks.
// Default is the caller's working directory.
func WithDir(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithIO redirects the child's stdin/stdout/stderr, mainly for tests.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner over a loaded task set.
func NewRunner(tasks *Set, opts ...Option) *Runner {
	r := &Runner{
		tasks:  tasks,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the task bound to name and returns the exit status the
// runner should propagate. name == "" selects the default task.
//
// The child inherits the runner's environment plus the task's env overlay,
// and shares the runner's stdio so the operator sees the wrapped tool's own
// output with no additional wrapping.
//
// A non-zero child exit is not an error: it is returned as the exit code
// with err == nil. Run returns a non-nil error only for ErrUnknownTask and
// for start failures (*ExecError).
func (r *Runner) Run(ctx context.Context, name string) (int, error) {
	if name == "" {
		name = r.tasks.Default()
	}

	t, ok := r.tasks.Get(name)
	if !ok {
		return ExitUsage, fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}

	cmd := exec.CommandContext(ctx, t.Command, t.Args...)
	cmd.Dir = r.dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	// Inherit the caller's environment, then overlay task-specific vars.
	env := os.Environ()
	for k, v := range t.Environment {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = env

	r.logger.Debug("task_start", "task", name, "command", t.Command, "args", t.Args)

	err := cmd.Run()
	if err == nil {
		r.logger.Debug("task_done", "task", name, "exit", ExitOK)
		return ExitOK, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by signal. When it was our own context (operator
			// interrupt), report the conventional 130.
			if ctx.Err() != nil {
				code = ExitInterrupted
			} else {
				code = 1
			}
		}
		r.logger.Debug("task_done", "task", name, "exit", code)
		return code, nil
	}

	// The process never ran: missing executable, permission denied, ...
	return ExitExecFailure, &ExecError{Task: name, Err: err}
}
