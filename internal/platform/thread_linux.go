//go:build linux

package platform

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// maxThreadName is the kernel's comm limit, excluding the NUL terminator.
const maxThreadName = 15

func supported() error { return nil }

// NameThread sets the name of the calling OS thread. Only meaningful when the
// goroutine is locked to its thread; names longer than the kernel limit are
// truncated.
func NameThread(name string) error {
	if len(name) > maxThreadName {
		name = name[:maxThreadName]
	}
	p, err := unix.BytePtrFromString(name)
	if err != nil {
		return err
	}
	return unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(p)), 0, 0, 0)
}

// ThreadID returns the kernel id of the calling OS thread.
func ThreadID() int { return unix.Gettid() }
