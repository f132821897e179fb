// Package logfault adapts translated faults to logrus.
//
// The core stays free of logging policy; this package only reads what a
// Fault already carries (kind, addresses, thread name, fault id) and the
// calling goroutine's installed thread name.
package logfault

import (
	"fmt"

	"github.com/sirupsen/logrus"

	xgxfault "github.com/xgx-io/xgx-fault"
)

// Field keys written by Fields and Hook.
const (
	KeyKind    = "fault_kind"
	KeyTrap    = "fault_trap"
	KeyPC      = "fault_pc"
	KeyAddr    = "fault_addr"
	KeyAccess  = "fault_access"
	KeyID      = "fault_id"
	KeyThread  = "thread"
	KeyMessage = "fault_msg"
)

// Fields describes the first fault in err's chain. It returns nil when err
// carries no fault.
func Fields(err error) logrus.Fields {
	f, ok := xgxfault.AsFault(err)
	if !ok {
		return nil
	}
	out := logrus.Fields{
		KeyKind:    f.Kind().String(),
		KeyTrap:    f.TrapCode().String(),
		KeyPC:      hex(f.Location()),
		KeyMessage: f.Message(),
	}
	if av, ok := f.(xgxfault.AccessViolation); ok {
		out[KeyAddr] = hex(av.BadAddress())
		out[KeyAccess] = av.Access().String()
	}
	if name := f.ThreadName(); name != "" {
		out[KeyThread] = name
	}
	if id, ok := xgxfault.FaultID.Get(f); ok {
		out[KeyID] = id
	}
	return out
}

func hex(v uintptr) string { return fmt.Sprintf("%#x", v) }

// Hook enriches log entries: entries whose error field carries a fault get
// Fields(err), and every entry logged from a named goroutine gets its
// thread name. Keys already present on the entry are left alone.
type Hook struct {
	levels []logrus.Level
}

// NewHook returns a Hook firing on levels, or on all levels when none are
// given.
func NewHook(levels ...logrus.Level) *Hook {
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}
	return &Hook{levels: levels}
}

func (h *Hook) Levels() []logrus.Level { return h.levels }

func (h *Hook) Fire(e *logrus.Entry) error {
	if err, ok := e.Data[logrus.ErrorKey].(error); ok {
		for k, v := range Fields(err) {
			if _, exists := e.Data[k]; !exists {
				e.Data[k] = v
			}
		}
	}
	if _, exists := e.Data[KeyThread]; !exists {
		if name := xgxfault.ThreadName(); name != "" {
			e.Data[KeyThread] = name
		}
	}
	return nil
}

var _ logrus.Hook = (*Hook)(nil)
