package actions

import (
	"os"
	"os/exec"
)

// StartOptions carries the optional spawn parameters of one process.
type StartOptions struct {
	Dir string
	// Env entries in KEY=VALUE form, overlaid on the current environment.
	Env []string
}

// Runner spawns detached processes. Tests substitute a recorder; the
// handlers only care that Start either succeeds or returns an error.
type Runner interface {
	Start(name string, args []string, opts StartOptions) error
}

// execRunner spawns fire-and-forget processes with stdio discarded.
// Success means the process started; its eventual exit status is not
// observed.
type execRunner struct{}

// NewRunner returns the production process runner.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Start(name string, args []string, opts StartOptions) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	// Detach so the child never becomes a zombie waiting on us.
	return cmd.Process.Release()
}
