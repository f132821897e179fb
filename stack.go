// stack.go — stack capture at the point of translation.
//
// Translation runs in a deferred function while the fault's panic is still
// in flight, so runtime.Callers sees the deferred call, runtime.gopanic, the
// runtime's fault entry (sigpanic/panicmem/panicdivide) and then the
// faulting function. faultStack trims everything up to the faulting
// function so reported stacks start where the trap happened.
package xgxfault

import (
	"runtime"
	"strings"
)

// Frame represents a single call site in a stack trace.
type Frame struct {
	PC       uintptr // program counter of the location in this frame
	File     string  // absolute file path (as provided by runtime)
	Line     int     // line number
	Function string  // fully-qualified function name
}

// Stack is a slice of Frames from the most recent call outward.
type Stack []Frame

// defaultMaxDepth bounds the frames reported per fault.
const defaultMaxDepth = 64

// preludeDepth is captured on top of the reported depth for the frames above
// the faulting function (deferred calls, gopanic, sigpanic), which
// faultStack trims.
const preludeDepth = 16

// captureStack records up to maxDepth frames starting at the caller of
// captureStack, after skipping 'skip' additional frames.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	pc := make([]uintptr, maxDepth)
	// +2: runtime.Callers and captureStack itself.
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// faultStack returns the frames starting at the faulting function and the
// faulting instruction address. When stk was not captured under a panic it
// is returned unchanged with a zero address.
func faultStack(stk Stack) (Stack, uintptr) {
	i := 0
	for ; i < len(stk); i++ {
		if stk[i].Function == "runtime.gopanic" {
			break
		}
	}
	if i == len(stk) {
		return stk, 0
	}
	i++
	for i < len(stk) && isRuntimeFrame(stk[i].Function) {
		i++
	}
	if i == len(stk) {
		return nil, 0
	}
	out := make(Stack, len(stk)-i)
	copy(out, stk[i:])
	return out, out[0].PC
}

// trapStack captures the stack of an in-flight fault panic from the caller
// of trapStack, trims it to the faulting function and keeps at most depth
// frames of it.
func trapStack(depth int) (Stack, uintptr) {
	if depth <= 0 {
		depth = defaultMaxDepth
	}
	stk, pc := faultStack(captureStack(2, depth+preludeDepth))
	if len(stk) > depth {
		stk = stk[:depth:depth]
	}
	return stk, pc
}

func isRuntimeFrame(fn string) bool {
	return strings.HasPrefix(fn, "runtime.")
}
