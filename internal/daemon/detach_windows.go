//go:build windows

package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
)

const detachSupported = true

// getSysProcAttr returns platform-specific process attributes for the reborn image.
// On Windows, the child gets no console and its own process group.
func getSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}
}

// Windows has no sessions in the Unix sense; DETACHED_PROCESS is the whole job.
func checkSession() error {
	return nil
}

func redirectStdio() error {
	f, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedirectFailed, err)
	}

	h := windows.Handle(f.Fd())
	for _, std := range []uint32{windows.STD_INPUT_HANDLE, windows.STD_OUTPUT_HANDLE, windows.STD_ERROR_HANDLE} {
		if err := windows.SetStdHandle(std, h); err != nil {
			f.Close()
			return fmt.Errorf("%w: SetStdHandle: %v", ErrRedirectFailed, err)
		}
	}

	os.Stdin = f
	os.Stdout = f
	os.Stderr = f
	return nil
}

func rootDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return `\`
	}
	return filepath.VolumeName(wd) + `\`
}
