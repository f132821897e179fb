// translate.go — turning recovered fault panics into Fault values.
//
// Once EnsureInstalled has armed a goroutine, the runtime reports a trap on
// it as a panic carrying a runtime.Error. Translate recognises those values,
// copies them into a FaultRecord, runs the goroutine's translator and
// attaches origin data (faulting address, stack, thread name). Guard and
// Rethrow are the two propagation styles built on top of it.
//
// Values already translated pass through unchanged, so a fault is translated
// exactly once however many Guards it crosses.
package xgxfault

import (
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/xgx-io/xgx-fault/internal/platform"
)

// Runtime messages of the panics the Go runtime raises for machine traps.
const (
	rtMemory   = "invalid memory address or nil pointer dereference"
	rtDivide   = "integer divide by zero"
	rtOverflow = "integer overflow"
	rtFloat    = "floating point error"
)

// recordFromPanic copies a recovered runtime error into a FaultRecord.
// Panics that are not machine traps (bounds checks, nil map writes, user
// panics) are not faults and report ok=false.
func recordFromPanic(v any) (rec FaultRecord, cause error, ok bool) {
	re, isRuntime := v.(runtime.Error)
	if !isRuntime {
		return FaultRecord{}, nil, false
	}
	msg := re.Error()
	switch {
	case strings.Contains(msg, rtMemory):
		var addr uintptr
		if a, ok := re.(interface{ Addr() uintptr }); ok {
			addr = a.Addr()
		}
		rec = FaultRecord{Code: TrapAccessViolation, Info: []uintptr{uintptr(AccessUnknown), addr}}
	case strings.Contains(msg, rtDivide):
		rec = FaultRecord{Code: TrapIntDivideByZero}
	case strings.Contains(msg, rtOverflow):
		rec = FaultRecord{Code: TrapIntOverflow}
	case strings.Contains(msg, rtFloat):
		rec = FaultRecord{Code: TrapFloatError}
	default:
		return FaultRecord{}, nil, false
	}
	return rec, re, true
}

// Translate converts the value returned by recover() into a Fault. Call it
// from a deferred function while the panic is in flight:
//
//	defer func() {
//		if f, ok := xgxfault.Translate(recover()); ok {
//			err = f
//		}
//	}()
//
// It reports ok=false for nil, for panics that are not machine traps and on
// goroutines that never called EnsureInstalled; callers should re-panic with
// the original value in those cases. An already translated Fault is returned
// as-is.
func Translate(recovered any) (Fault, bool) {
	if recovered == nil {
		return nil, false
	}
	if f, ok := recovered.(Fault); ok {
		return f, true
	}

	id := platform.ID()
	st, ok := lookup(id)
	if !ok || !st.installed {
		return nil, false
	}
	rec, cause, ok := recordFromPanic(recovered)
	if !ok {
		return nil, false
	}

	stk, pc := trapStack(st.depth)
	rec.PC = pc
	f := st.translate(rec)
	if f == nil {
		f = Classify(rec)
	}

	o := origin{
		pc:     pc,
		thread: st.name,
		cause:  cause,
		stk:    stk,
		ctx: fields{
			{Key: "fault_id", Val: uuid.NewString()},
			{Key: "goroutine", Val: id},
		},
	}
	if of, ok := f.(originator); ok {
		return of.withOrigin(o), true
	}
	// Foreign translators only get the structured fields.
	for _, fd := range o.ctx {
		f = f.With(fd.Key, fd.Val)
	}
	return f, true
}

// Guard runs fn and returns its error. A fault raised inside fn on an
// installed goroutine is returned as a Fault; every other panic, including
// faults on goroutines without translation, propagates unchanged.
func Guard(fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if f, ok := Translate(r); ok {
			err = f
			return
		}
		panic(r)
	}()
	return fn()
}

// Rethrow re-raises a fault panic with its translated Fault as the panic
// value, so callers up the stack recover a Fault. It must be deferred
// directly:
//
//	defer xgxfault.Rethrow()
func Rethrow() {
	r := recover()
	if r == nil {
		return
	}
	if f, ok := Translate(r); ok {
		panic(f)
	}
	panic(r)
}
