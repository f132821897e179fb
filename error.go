// Package xgxfault translates hardware faults (illegal memory access,
// integer divide-by-zero and similar machine traps) raised on a goroutine
// into typed, catchable error values.
//
// Design tenets (shared with the xgx-error core):
//   - Interop-first: faults are plain errors; errors.Is/As and Join work.
//   - Minimal surface: no logging/HTTP/metrics policy in core; adapters live
//     in sibling packages (logfault, faultmetrics, workpool).
//   - Immutable values: a Fault never changes after translation; With returns
//     a NEW value.
package xgxfault

// Code classifies translated faults into machine-readable categories.
//
// Codes are stringly-typed like the error core so they survive log and
// metrics export unchanged.
type Code string

// Kind is the tag of the fault sum type.
type Kind uint8

const (
	// KindGeneric covers every trap without a specialised variant.
	KindGeneric Kind = iota
	// KindDivideByZero covers integer and floating-point division faults.
	KindDivideByZero
	// KindAccessViolation covers illegal memory accesses. Faults of this
	// kind also implement AccessViolation.
	KindAccessViolation
)

// Code returns the stable classification code for k.
func (k Kind) Code() Code {
	switch k {
	case KindDivideByZero:
		return CodeDivideByZero
	case KindAccessViolation:
		return CodeAccessViolation
	default:
		return CodeFault
	}
}

func (k Kind) String() string { return string(k.Code()) }

// Fault is a translated hardware fault.
//
// Every implementation is immutable after construction. Error() renders the
// diagnostic lazily on each call (see Format); nothing is cached on the value,
// so formatting the same Fault from several goroutines is safe.
type Fault interface {
	// error yields the diagnostic text; identical to Format(f).
	error

	// Kind reports which variant of the sum type this fault is.
	Kind() Kind

	// CodeVal returns Kind().Code(). Named like the error core getter.
	CodeVal() Code

	// TrapCode returns the raw platform fault code the fault was built from.
	TrapCode() TrapCode

	// Location returns the address of the faulting instruction, or 0 when it
	// could not be determined.
	Location() uintptr

	// Message returns the stored message without address detail
	// ("Access violation", "Divide by zero", "generic fault", ...).
	Message() string

	// ThreadName returns the diagnostic name of the goroutine the fault was
	// translated on, or "" when the goroutine was installed without one.
	ThreadName() string

	// Context returns a copy of the fault's structured fields
	// (fault_id, goroutine, ...). Last write wins on duplicate keys.
	Context() map[string]any

	// Stack returns the frames from the faulting function outward.
	Stack() Stack

	// With adds a single key-value field. Returns a NEW Fault.
	With(key string, val any) Fault

	// Unwrap returns the runtime error the fault was translated from, if any.
	Unwrap() error
}

// AccessViolation is the illegal-memory-access variant of Fault.
type AccessViolation interface {
	Fault

	// IsWrite reports whether the faulting access was a write.
	IsWrite() bool

	// Access reports the access kind recorded by the platform.
	Access() AccessKind

	// BadAddress returns the data address whose access faulted.
	BadAddress() uintptr
}
