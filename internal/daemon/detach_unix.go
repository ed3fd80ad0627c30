//go:build unix

package daemon

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

const detachSupported = true

// getSysProcAttr returns platform-specific process attributes for the reborn image.
// On Unix systems, Setsid starts a new session with no controlling terminal.
func getSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setsid: true,
	}
}

func checkSession() error {
	pid := unix.Getpid()
	sid, err := unix.Getsid(0)
	if err != nil {
		return fmt.Errorf("%w: getsid: %v", ErrNotSessionLeader, err)
	}
	if sid != pid {
		return fmt.Errorf("%w: session %d, pid %d", ErrNotSessionLeader, sid, pid)
	}
	return nil
}

// redirectStdio points descriptors 0, 1 and 2 at the null device.
func redirectStdio() error {
	f, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedirectFailed, err)
	}
	defer f.Close()

	fd := int(f.Fd())
	for _, target := range []int{0, 1, 2} {
		if err := unix.Dup2(fd, target); err != nil {
			return fmt.Errorf("%w: dup2 onto %d: %v", ErrRedirectFailed, target, err)
		}
	}
	return nil
}

func rootDir() string {
	return "/"
}
