// install.go — per-goroutine, idempotent installation of fault translation.
//
// Each goroutine owns one slot in the registry, created on its first
// EnsureInstalled. A slot moves from uninstalled to installed exactly once
// and stays installed until the goroutine calls Release on its way out.
// Goroutines only ever touch their own slot.
package xgxfault

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/xgx-io/xgx-fault/internal/platform"
)

// Translator builds a Fault from a raw record. Classify is the default.
type Translator func(FaultRecord) Fault

// threadState is the per-goroutine translation state.
type threadState struct {
	installed bool
	name      string
	locked    bool
	renamed   bool
	depth     int
	translate Translator
	labels    context.Context
}

// slots maps goroutine id → *threadState.
var slots sync.Map

func lookup(id int64) (*threadState, bool) {
	v, ok := slots.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*threadState), true
}

func currentState() (*threadState, bool) {
	return lookup(platform.ID())
}

var (
	loggerMu sync.RWMutex
	logger   logrus.FieldLogger = logrus.StandardLogger()
)

// SetLogger replaces the logger used for installation diagnostics. A nil
// logger restores logrus.StandardLogger().
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func log() logrus.FieldLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

type installConfig struct {
	lockOSThread bool
	stackDepth   int
	translate    Translator
	labels       context.Context
}

// Option configures EnsureInstalled. Options only take effect on the call
// that actually installs.
type Option func(*installConfig)

// WithLockOSThread wires the goroutine to its current OS thread for the rest
// of its life so the description can also be applied as the OS thread name.
func WithLockOSThread() Option {
	return func(c *installConfig) { c.lockOSThread = true }
}

// WithStackDepth bounds the number of frames captured per fault.
func WithStackDepth(n int) Option {
	return func(c *installConfig) {
		if n > 0 {
			c.stackDepth = n
		}
	}
}

// WithLabels names the goroutine on top of the pprof labels carried by ctx
// (as set with pprof.Do or pprof.WithLabels) and restores them on Release.
// Without it the goroutine is left with no labels after Release.
func WithLabels(ctx context.Context) Option {
	return func(c *installConfig) {
		if ctx != nil {
			c.labels = ctx
		}
	}
}

// WithTranslator replaces Classify as the goroutine's translation callback.
func WithTranslator(fn Translator) Option {
	return func(c *installConfig) {
		if fn != nil {
			c.translate = fn
		}
	}
}

// EnsureInstalled installs fault translation for the calling goroutine.
//
// The first call on a goroutine arms the runtime's per-goroutine fault
// delivery, registers the translator and, when description is non-empty,
// names the goroutine (pprof labels; the OS thread too under
// WithLockOSThread on Linux). Naming is best-effort. Later calls on the
// same goroutine are no-ops: the name and options of the first call stay.
//
// A platform that cannot arm fault delivery is a misconfiguration; the
// goroutine would crash the process on its next fault, so EnsureInstalled
// panics instead of returning.
func EnsureInstalled(description string, opts ...Option) {
	id := platform.ID()
	if st, ok := lookup(id); ok && st.installed {
		return
	}

	cfg := installConfig{stackDepth: defaultMaxDepth, translate: Classify, labels: context.Background()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := platform.Register(); err != nil {
		panic(fmt.Errorf("xgxfault: arm fault delivery for goroutine %d: %w", id, err))
	}

	st := &threadState{
		installed: true,
		depth:     cfg.stackDepth,
		translate: cfg.translate,
		labels:    cfg.labels,
	}
	if cfg.lockOSThread {
		runtime.LockOSThread()
		st.locked = true
	}
	slots.Store(id, st)

	entry := log().WithField("goroutine", id)
	if description != "" {
		st.name = description
		platform.Label(st.labels, description)
		if st.locked {
			if err := platform.NameThread(description); err != nil {
				entry.WithError(err).Debug("thread naming unavailable")
			} else {
				st.renamed = true
			}
		}
		entry = entry.WithField("thread", description)
	}
	entry.Debug("fault translation installed")
}

// Installed reports whether the calling goroutine has fault translation
// installed.
func Installed() bool {
	st, ok := currentState()
	return ok && st.installed
}

// ThreadName returns the description the calling goroutine was installed
// with, or "".
func ThreadName() string {
	if st, ok := currentState(); ok {
		return st.name
	}
	return ""
}

// Release drops the calling goroutine's slot and disarms fault delivery.
// It is meant for goroutine owners (pools, schedulers) as the last act of a
// goroutine; faults after Release are no longer translated.
//
// WithLockOSThread is undone unless the OS thread was renamed, in which case
// the thread stays wired and exits with the goroutine.
func Release() {
	v, ok := slots.LoadAndDelete(platform.ID())
	if !ok {
		return
	}
	st := v.(*threadState)
	platform.Unregister()
	if st.name != "" {
		platform.RestoreLabels(st.labels)
	}
	if st.locked && !st.renamed {
		runtime.UnlockOSThread()
	}
}
