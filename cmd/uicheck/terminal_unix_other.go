//go:build !darwin && !freebsd && !openbsd && !netbsd && !dragonfly && !windows

package main

import "golang.org/x/sys/unix"

// termios ioctl requests on linux and the rest
const (
	getTermiosReq = unix.TCGETS
	setTermiosReq = unix.TCSETS
)
