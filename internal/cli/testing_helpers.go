package cli

import (
	"bytes"
	"testing"

	"github.com/mvp-joe/daemonprobe/internal/daemon"
	"github.com/sirupsen/logrus"
)

// probeResult holds what a probe run wrote.
type probeResult struct {
	stdout string
	stderr string
	err    error

	// beforeExit is the hook handed to the primitive.
	beforeExit func()
}

// executeProbe runs a fresh root command with primitive standing in for the
// platform detach. HOME points at an empty directory so no user config leaks in.
func executeProbe(t *testing.T, primitive daemon.Primitive, args ...string) probeResult {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	var beforeExit func()
	orig := newPrimitive
	newPrimitive = func(_ string, _ logrus.FieldLogger, hook func()) (daemon.Primitive, error) {
		beforeExit = hook
		return primitive, nil
	}
	t.Cleanup(func() { newPrimitive = orig })

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return probeResult{stdout: stdout.String(), stderr: stderr.String(), err: err, beforeExit: beforeExit}
}

// forcedPrimitive always reports err.
func forcedPrimitive(err error) daemon.Primitive {
	return daemon.PrimitiveFunc(func(daemon.Options) error { return err })
}
