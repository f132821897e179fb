//go:build wasm

package platform

import "errors"

// Memory faults inside a wasm module trap the whole instance; there is no
// per-goroutine delivery to arm.
func supported() error { return errors.ErrUnsupported }

func NameThread(string) error { return errors.ErrUnsupported }

func ThreadID() int { return 0 }
