package daemon

import "errors"

var (
	// ErrSpawnFailed indicates the detached process image could not be started.
	ErrSpawnFailed = errors.New("failed to start detached process")

	// ErrNotSessionLeader indicates the reborn process did not end up leading its own session.
	ErrNotSessionLeader = errors.New("process is not a session leader")

	// ErrUnsupported indicates the platform has no detach primitive.
	ErrUnsupported = errors.New("detaching is not supported on this platform")

	// ErrRedirectFailed indicates the standard streams could not be pointed at the null device.
	ErrRedirectFailed = errors.New("failed to redirect standard streams")
)
