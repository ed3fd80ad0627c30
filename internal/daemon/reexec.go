package daemon

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Primitive performs the platform detach: the caller ends up leading a new
// session, with no controlling terminal. It does not handle Options beyond
// what the platform needs; the Detacher applies chdir and stream redirection.
type Primitive interface {
	Detach(opts Options) error
}

// PrimitiveFunc adapts a function to Primitive.
type PrimitiveFunc func(opts Options) error

// Detach calls f(opts).
func (f PrimitiveFunc) Detach(opts Options) error {
	return f(opts)
}

// Reexec detaches by starting a copy of the current process image in a new
// session and exiting the launching image.
type Reexec struct {
	cfg    *ReexecConfig
	logger logrus.FieldLogger

	exit       func(code int)
	reborn     func() bool
	beforeExit []func()
}

// NewReexec creates the re-exec primitive. A nil logger discards output.
func NewReexec(cfg *ReexecConfig, logger logrus.FieldLogger) *Reexec {
	return &Reexec{
		cfg:    cfg,
		logger: orDiscard(logger),
		exit:   os.Exit,
		reborn: IsReborn,
	}
}

// BeforeExit registers fn to run, in registration order, right before the
// launching image exits. Deferred calls do not run past os.Exit, so
// anything holding buffered or open resources must close here.
func (r *Reexec) BeforeExit(fn func()) {
	r.beforeExit = append(r.beforeExit, fn)
}

// Detach never returns in the launching image when the child starts. In the
// reborn image it checks the session and clears the rebirth marker.
//
// Flow:
//  1. Reborn image: verify session leadership, return
//  2. Launching image: start the child with inherited streams and a new session
//  3. Release the child, run the BeforeExit hooks and exit 0
func (r *Reexec) Detach(opts Options) error {
	if !detachSupported {
		return ErrUnsupported
	}

	if r.reborn() {
		clearRebirthMarker()
		return checkSession()
	}

	cmd := exec.Command(r.cfg.Executable)
	cmd.Args = r.cfg.Args
	cmd.Env = withRebirthMarker(r.cfg.Env, r.cfg.RunID)
	// The child applies opts itself, after its session is set up.
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = getSysProcAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	childPID := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		r.logger.WithError(err).Debug("Failed to release child process handle")
	}

	r.logger.WithFields(logrus.Fields{
		"child_pid": childPID,
		"no_chdir":  opts.NoChdir,
		"no_close":  opts.NoClose,
	}).Debug("Detached image started, launching image exits")

	for _, fn := range r.beforeExit {
		fn()
	}
	r.exit(0)
	return nil
}

func orDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger != nil {
		return logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
