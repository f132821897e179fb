// classify.go — fault records, concrete fault types and the classifier.
//
// Scope:
//   - FaultRecord is the platform's raw, ephemeral description of a trap.
//   - Classify maps a record to exactly one variant of the Fault sum type.
//   - The concrete types stay unexported; callers use Fault/AccessViolation.
//
// Classify is pure and total: it never fails and never retains the record's
// Info slice.
package xgxfault

// AccessKind is the access direction recorded for an access violation.
type AccessKind uintptr

const (
	AccessRead    AccessKind = 0
	AccessWrite   AccessKind = 1
	AccessExecute AccessKind = 8
	// AccessUnknown is reported by platforms that do not expose the
	// direction of the faulting access (the Go runtime is one of them).
	AccessUnknown AccessKind = 0xff
)

func (a AccessKind) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessExecute:
		return "execute"
	default:
		return "access"
	}
}

// FaultRecord is the raw description of a trap as delivered by the platform.
//
// For access violations Info[0] holds the AccessKind and Info[1] the
// faulting data address. A record is only valid while it is being
// translated; anything needed later is copied by Classify.
type FaultRecord struct {
	Code TrapCode
	PC   uintptr
	Info []uintptr
}

// info returns Info[i], or 0 when the platform supplied fewer words.
func (r FaultRecord) info(i int) uintptr {
	if i < len(r.Info) {
		return r.Info[i]
	}
	return 0
}

// Classify builds the fault variant selected by r.Code.
//
//   - TrapAccessViolation → AccessViolation (IsWrite = Info[0] == 1,
//     BadAddress = Info[1]).
//   - TrapIntDivideByZero, TrapFloatDivideByZero → KindDivideByZero with
//     message "Divide by zero".
//   - anything else → KindGeneric with the registered message for the code,
//     or "generic fault".
func Classify(r FaultRecord) Fault {
	base := faultErr{
		kind: KindGeneric,
		msg:  MsgGeneric,
		trap: r.Code,
		pc:   r.PC,
		ctx:  emptyFields,
	}
	switch r.Code {
	case TrapAccessViolation:
		base.kind = KindAccessViolation
		base.msg = MsgAccessViolation
		return &accessViolationErr{
			faultErr: base,
			access:   AccessKind(r.info(0)),
			addr:     r.info(1),
		}
	case TrapIntDivideByZero, TrapFloatDivideByZero:
		base.kind = KindDivideByZero
		base.msg = MsgDivideByZero
	default:
		if msg, ok := registeredMessage(r.Code); ok {
			base.msg = msg
		}
	}
	return &base
}

// -----------------------------------------------------------------------------
// Concrete types
// -----------------------------------------------------------------------------

// faultErr carries the fields shared by every variant. Generic and
// divide-by-zero faults use it directly.
type faultErr struct {
	kind   Kind
	msg    string
	trap   TrapCode
	pc     uintptr
	thread string
	ctx    fields
	cause  error
	stk    Stack
}

func (e *faultErr) Error() string           { return Format(e) }
func (e *faultErr) Kind() Kind              { return e.kind }
func (e *faultErr) CodeVal() Code           { return e.kind.Code() }
func (e *faultErr) TrapCode() TrapCode      { return e.trap }
func (e *faultErr) Location() uintptr       { return e.pc }
func (e *faultErr) Message() string         { return e.msg }
func (e *faultErr) ThreadName() string      { return e.thread }
func (e *faultErr) Context() map[string]any { return ctxToMap(e.ctx) }
func (e *faultErr) Stack() Stack            { return e.stk }
func (e *faultErr) Unwrap() error           { return e.cause }

func (e *faultErr) With(key string, val any) Fault {
	n := *e
	n.ctx = ctxAppend(e.ctx, field{Key: key, Val: val})
	return &n
}

func (e *faultErr) withOrigin(o origin) Fault {
	n := *e
	n.apply(o)
	return &n
}

func (e *faultErr) apply(o origin) {
	e.thread = o.thread
	e.cause = o.cause
	e.stk = o.stk
	if o.pc != 0 {
		e.pc = o.pc
	}
	e.ctx = ctxAppend(e.ctx, o.ctx...)
}

// accessViolationErr is the access-violation variant. Methods that must
// return or render the full variant are redefined; the rest are promoted.
type accessViolationErr struct {
	faultErr
	access AccessKind
	addr   uintptr
}

func (e *accessViolationErr) Error() string       { return Format(e) }
func (e *accessViolationErr) IsWrite() bool       { return e.access == AccessWrite }
func (e *accessViolationErr) Access() AccessKind  { return e.access }
func (e *accessViolationErr) BadAddress() uintptr { return e.addr }

func (e *accessViolationErr) With(key string, val any) Fault {
	n := *e
	n.ctx = ctxAppend(e.ctx, field{Key: key, Val: val})
	return &n
}

func (e *accessViolationErr) withOrigin(o origin) Fault {
	n := *e
	n.apply(o)
	return &n
}

// origin is what translation learns about a fault beyond the raw record.
type origin struct {
	pc     uintptr
	thread string
	cause  error
	stk    Stack
	ctx    fields
}

// originator is implemented by the package's concrete types so translation
// can attach origin data without mutating a published value.
type originator interface {
	withOrigin(o origin) Fault
}

var (
	_ Fault           = (*faultErr)(nil)
	_ AccessViolation = (*accessViolationErr)(nil)
	_ originator      = (*faultErr)(nil)
	_ originator      = (*accessViolationErr)(nil)
)
