//go:build !unix && !windows

package daemon

import "syscall"

const detachSupported = false

func getSysProcAttr() *syscall.SysProcAttr {
	return nil
}

func checkSession() error {
	return ErrUnsupported
}

func redirectStdio() error {
	return ErrUnsupported
}

func rootDir() string {
	return "/"
}
