// Package platform is the single adapter between xgxfault and the Go
// runtime's fault delivery: goroutine identity, the per-goroutine
// panic-on-fault switch and best-effort thread naming.
package platform

import (
	"context"
	"runtime/debug"
	"runtime/pprof"

	"github.com/petermattis/goid"
)

// LabelKey is the pprof label carrying a goroutine's diagnostic name.
const LabelKey = "thread"

// ID returns the id of the calling goroutine. Ids are never reused.
func ID() int64 { return goid.Get() }

// Register arms fault delivery for the calling goroutine: a memory fault at
// any address now panics with a runtime.Error instead of crashing the
// process.
func Register() error {
	if err := supported(); err != nil {
		return err
	}
	debug.SetPanicOnFault(true)
	return nil
}

// Unregister disarms fault delivery for the calling goroutine.
func Unregister() {
	debug.SetPanicOnFault(false)
}

// Label sets the calling goroutine's pprof labels to those of parent plus
// LabelKey=name; they show up in goroutine profiles and CPU samples. The Go
// runtime cannot report a goroutine's current labels, so parent must carry
// any labels the goroutine should keep.
func Label(parent context.Context, name string) {
	pprof.SetGoroutineLabels(pprof.WithLabels(parent, pprof.Labels(LabelKey, name)))
}

// RestoreLabels sets the calling goroutine's pprof labels to those of ctx.
func RestoreLabels(ctx context.Context) {
	pprof.SetGoroutineLabels(ctx)
}
