// format.go — diagnostic text and fmt.Formatter support.
//
// Behavior:
//
//   %s, %v   → Format(f): the one-line diagnostic.
//   %q       → quoted diagnostic.
//   %+v      → verbose, multi-line:
//                code=<code> trap=<trap> msg="<diagnostic>"
//                thread=<name>
//                ctx: key1=val1 key2=val2 ...
//                cause: <runtime error>
//                stack:
//                  funcA file.go:123
//
// Diagnostics are rendered on demand into a fresh string on every call.
package xgxfault

import (
	"fmt"
	"io"
)

// Format renders the human-readable diagnostic for f.
//
// Access violations render as
//
//	Access violation at <pc>, trying to <read|write> <address>
//
// with both addresses in 0x-prefixed hex. Every other variant renders its
// stored message unchanged.
func Format(f Fault) string {
	switch v := f.(type) {
	case nil:
		return ""
	case AccessViolation:
		return formatAccess(v.Location(), v.Access(), v.BadAddress())
	default:
		return f.Message()
	}
}

func formatAccess(pc uintptr, access AccessKind, addr uintptr) string {
	return fmt.Sprintf("%s at %#x, trying to %s %#x", MsgAccessViolation, pc, access, addr)
}

func formatVerbose(w io.Writer, f Fault, ctx fields) {
	_, _ = fmt.Fprintf(w, "code=%s trap=%s msg=%q", f.CodeVal(), f.TrapCode(), Format(f))

	if name := f.ThreadName(); name != "" {
		_, _ = fmt.Fprintf(w, "\nthread=%s", name)
	}

	if len(ctx) > 0 {
		_, _ = io.WriteString(w, "\nctx:")
		for _, fd := range ctx {
			if fd.Key != "" {
				_, _ = fmt.Fprintf(w, " %s=%v", fd.Key, fd.Val)
			}
		}
	}

	if cause := f.Unwrap(); cause != nil {
		_, _ = fmt.Fprintf(w, "\ncause: %+v", cause)
	}

	if stk := f.Stack(); len(stk) > 0 {
		_, _ = io.WriteString(w, "\nstack:")
		for _, fr := range stk {
			_, _ = fmt.Fprintf(w, "\n  %s %s:%d", fr.Function, fr.File, fr.Line)
		}
	}
}

func formatFault(s fmt.State, verb rune, f Fault, ctx fields) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			formatVerbose(s, f, ctx)
			return
		}
		_, _ = io.WriteString(s, Format(f))
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", Format(f))
	default:
		_, _ = io.WriteString(s, Format(f))
	}
}

func (e *faultErr) Format(s fmt.State, verb rune) { formatFault(s, verb, e, e.ctx) }

func (e *accessViolationErr) Format(s fmt.State, verb rune) { formatFault(s, verb, e, e.ctx) }
