// doc.go — package documentation for xgx-fault
//
// Package xgxfault turns machine traps raised on a goroutine (illegal memory
// access, integer divide-by-zero, ...) into typed error values, translated
// exactly once, on the goroutine that faulted.
//
// # Installing
//
// Translation is per goroutine. A goroutine that will run fault-prone work
// (cgo calls, unsafe pointer arithmetic, mmap'd regions) installs it first:
//
//	xgxfault.EnsureInstalled("decoder-3")
//	defer xgxfault.Release()
//
// EnsureInstalled is idempotent: later calls on the same goroutine do
// nothing, and the first description wins. A fault on a goroutine that never
// installed translation is not translated; the runtime's default applies
// (for most faults, the process dies).
//
// # Propagation
//
//	+---------------------------+-----------------------------------------+
//	| Entry point               | Outcome of a fault inside               |
//	+---------------------------+-----------------------------------------+
//	| Guard(fn)                 | returned as an error (a Fault)          |
//	| defer Rethrow()           | re-panics with the Fault as the value   |
//	| Translate(recover())      | building block for custom defers        |
//	+---------------------------+-----------------------------------------+
//
// Panics that are not machine traps are never swallowed.
//
// # Variants
//
// Faults form a small sum type tagged by Kind:
//   - KindGeneric: any unspecialised trap; message "generic fault" unless a
//     message was registered with RegisterMessage.
//   - KindDivideByZero: message "Divide by zero".
//   - KindAccessViolation: also implements AccessViolation (IsWrite,
//     BadAddress); renders as
//     "Access violation at 0x4a2f10, trying to read 0xc000200000".
//
// The Go runtime does not report the direction of a faulting access, so
// translated access violations carry AccessUnknown and render "access".
//
// # Formatting
//
//   - %v, %s → Format(f), rendered on demand into a fresh string.
//   - %+v    → code, trap, thread, ctx (fault_id, goroutine), cause, stack.
//   - %q     → quoted Format(f).
//
// Use Join to aggregate faults from several goroutines; %+v recurses.
package xgxfault
