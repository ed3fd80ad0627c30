package daemon

import (
	"errors"
	"fmt"
	"os"
)

// Options selects what the detach does besides starting a new session.
type Options struct {
	// NoChdir leaves the working directory alone. When false the process
	// moves to the filesystem root.
	NoChdir bool

	// NoClose keeps stdin, stdout and stderr where they are. When false
	// they are pointed at the null device.
	NoClose bool
}

// Outcome is the result of a single Detach call.
type Outcome struct {
	// Succeeded is true when the platform call completed without error.
	Succeeded bool

	// WorkingDirectory is read after the attempt. Empty if it could not be read.
	WorkingDirectory string
}

// StatusLabel renders Succeeded the way reports print it.
func (o Outcome) StatusLabel() string {
	if o.Succeeded {
		return "success"
	}
	return "FAILURE"
}

// ReexecConfig describes the process image that continues after detaching.
//
// Example:
//
//	cfg, err := daemon.NewReexecConfig(
//	    "/usr/local/bin/daemonprobe",
//	    []string{"daemonprobe", "--verbose"},
//	    os.Environ(),
//	    runID,
//	)
type ReexecConfig struct {
	// Executable is the binary to start. Usually os.Executable().
	Executable string

	// Args is the full argv, Args[0] included.
	Args []string

	// Env is the base environment. The rebirth marker is appended to it.
	Env []string

	// RunID travels to the child through the rebirth marker.
	RunID string
}

// NewReexecConfig creates a validated ReexecConfig.
func NewReexecConfig(executable string, args, env []string, runID string) (*ReexecConfig, error) {
	if executable == "" {
		return nil, errors.New("executable is required")
	}
	if len(args) == 0 {
		return nil, errors.New("args must include argv[0]")
	}
	if runID == "" {
		return nil, errors.New("run id is required")
	}

	return &ReexecConfig{
		Executable: executable,
		Args:       args,
		Env:        env,
		RunID:      runID,
	}, nil
}

// DefaultReexecConfig re-executes the running binary with its own argv and
// environment.
func DefaultReexecConfig(runID string) (*ReexecConfig, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	return NewReexecConfig(execPath, os.Args, os.Environ(), runID)
}
