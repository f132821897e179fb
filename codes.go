// codes.go — trap codes and the classification table.
//
// Built-in specialisations are deliberately few: access violations and
// divide-by-zero. Everything else classifies as a generic fault, optionally
// with a message registered through RegisterMessage.
package xgxfault

import (
	"fmt"
	"sync"
)

// Classification codes, one per Kind.
const (
	CodeFault           Code = "fault"
	CodeDivideByZero    Code = "divide_by_zero"
	CodeAccessViolation Code = "access_violation"
)

// Default messages stored on translated faults.
const (
	MsgGeneric         = "generic fault"
	MsgDivideByZero    = "Divide by zero"
	MsgAccessViolation = "Access violation"
)

// TrapCode is the raw platform fault code carried by a FaultRecord.
type TrapCode uint32

const (
	TrapUnknown TrapCode = iota
	TrapAccessViolation
	TrapIntDivideByZero
	TrapFloatDivideByZero
	TrapIntOverflow
	TrapFloatError
)

func (c TrapCode) String() string {
	switch c {
	case TrapUnknown:
		return "unknown"
	case TrapAccessViolation:
		return "access_violation"
	case TrapIntDivideByZero:
		return "int_divide_by_zero"
	case TrapFloatDivideByZero:
		return "float_divide_by_zero"
	case TrapIntOverflow:
		return "int_overflow"
	case TrapFloatError:
		return "float_error"
	default:
		return fmt.Sprintf("trap(%#x)", uint32(c))
	}
}

// builtinTraps have dedicated variants and cannot be re-registered.
var builtinTraps = map[TrapCode]struct{}{
	TrapAccessViolation:   {},
	TrapIntDivideByZero:   {},
	TrapFloatDivideByZero: {},
}

// IsBuiltin reports whether c classifies to a specialised variant.
func (c TrapCode) IsBuiltin() bool {
	_, ok := builtinTraps[c]
	return ok
}

var (
	messagesMu sync.RWMutex
	messages   = map[TrapCode]string{}
)

// RegisterMessage makes Classify use msg instead of MsgGeneric for code.
// The fault stays KindGeneric. It returns false, registering nothing, when
// code is built-in or msg is empty. Later registrations replace earlier ones.
func RegisterMessage(code TrapCode, msg string) bool {
	if msg == "" || code.IsBuiltin() {
		return false
	}
	messagesMu.Lock()
	messages[code] = msg
	messagesMu.Unlock()
	return true
}

func registeredMessage(code TrapCode) (string, bool) {
	messagesMu.RLock()
	msg, ok := messages[code]
	messagesMu.RUnlock()
	return msg, ok
}
