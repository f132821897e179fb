//go:build !linux && !wasm

package platform

import "errors"

func supported() error { return nil }

// NameThread is unsupported outside Linux.
func NameThread(string) error { return errors.ErrUnsupported }

// ThreadID returns 0 where the kernel thread id is not exposed.
func ThreadID() int { return 0 }
