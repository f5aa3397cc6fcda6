//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// disableCtrlCEcho stops the tty from echoing "^C" into the log when a run or watch is interrupted.
// the returned func puts the previous terminal mode back.
func disableCtrlCEcho() func() {
	noop := func() {}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return noop
	}
	saved, err := unix.IoctlGetTermios(fd, getTermiosReq)
	if err != nil {
		return noop
	}
	quiet := *saved
	quiet.Lflag &^= unix.ECHOCTL
	if err := unix.IoctlSetTermios(fd, setTermiosReq, &quiet); err != nil {
		return noop
	}
	return func() { _ = unix.IoctlSetTermios(fd, setTermiosReq, saved) }
}
