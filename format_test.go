package xgxfault

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// containsInOrder reports whether all needles appear in haystack in order.
func containsInOrder(haystack string, needles ...string) bool {
	pos := 0
	for _, n := range needles {
		i := strings.Index(haystack[pos:], n)
		if i < 0 {
			return false
		}
		pos += i + len(n)
	}
	return true
}

func TestFormat_AccessViolation(t *testing.T) {
	t.Parallel()

	f := Classify(FaultRecord{Code: TrapAccessViolation, PC: 0x401000, Info: []uintptr{0, 0x1000}})
	got := Format(f)
	want := "Access violation at 0x401000, trying to read 0x1000"
	if got != want {
		t.Fatalf("Format: want=%q got=%q", want, got)
	}
	if !containsInOrder(got, "0x401000", "read", "0x1000") {
		t.Fatalf("diagnostic order wrong: %q", got)
	}
	if f.Error() != want {
		t.Fatalf("Error must equal Format: got=%q", f.Error())
	}
	if f.Message() != MsgAccessViolation {
		t.Fatalf("stored message must stay the default: got=%q", f.Message())
	}
}

func TestFormat_AccessKinds(t *testing.T) {
	t.Parallel()

	cases := map[AccessKind]string{
		AccessRead:    "trying to read 0x8",
		AccessWrite:   "trying to write 0x8",
		AccessExecute: "trying to execute 0x8",
		AccessUnknown: "trying to access 0x8",
	}
	for access, want := range cases {
		f := Classify(FaultRecord{Code: TrapAccessViolation, Info: []uintptr{uintptr(access), 0x8}})
		if got := Format(f); !strings.HasSuffix(got, want) {
			t.Fatalf("access %s: want suffix %q in %q", access, want, got)
		}
	}
}

func TestFormat_BaseVariantsReturnMessage(t *testing.T) {
	t.Parallel()

	if got := Format(Classify(FaultRecord{Code: TrapIntDivideByZero})); got != "Divide by zero" {
		t.Fatalf("divide: got=%q", got)
	}
	if got := Format(Classify(FaultRecord{Code: TrapUnknown})); got != "generic fault" {
		t.Fatalf("generic: got=%q", got)
	}
	if got := Format(nil); got != "" {
		t.Fatalf("nil: got=%q", got)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	for _, rec := range []FaultRecord{
		{Code: TrapAccessViolation, PC: 0x401000, Info: []uintptr{1, 0xdeadbeef}},
		{Code: TrapFloatDivideByZero, PC: 0x2},
		{Code: TrapFloatError},
	} {
		f := Classify(rec)
		first, second := Format(f), Format(f)
		if first != second {
			t.Fatalf("Format not idempotent: %q vs %q", first, second)
		}
	}
}

func TestFormat_ConcurrentSameValue(t *testing.T) {
	t.Parallel()

	f := Classify(FaultRecord{Code: TrapAccessViolation, PC: 0x401000, Info: []uintptr{1, 0xdeadbeef}})
	want := Format(f)

	const N = 32
	var wg sync.WaitGroup
	errs := make(chan string, N)
	for range N {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := fmt.Sprint(f); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent format: want=%q got=%q", want, got)
	}
}

func TestFormatter_Verbs(t *testing.T) {
	t.Parallel()

	cause := errors.New("runtime error: invalid memory address or nil pointer dereference")
	base := Classify(FaultRecord{Code: TrapAccessViolation, PC: 0x401000, Info: []uintptr{1, 0x10}})
	f := base.(originator).withOrigin(origin{
		thread: "worker-1",
		cause:  cause,
		stk:    Stack{{Function: "pkg.decode", File: "/src/decode.go", Line: 42}},
		ctx:    fields{{Key: "fault_id", Val: "abc"}},
	}).With("task", 3)

	concise := fmt.Sprintf("%v", f)
	if concise != "Access violation at 0x401000, trying to write 0x10" {
		t.Fatalf("%%v: got=%q", concise)
	}
	if s := fmt.Sprintf("%s", f); s != concise {
		t.Fatalf("%%s must equal %%v: got=%q", s)
	}
	if q := fmt.Sprintf("%q", f); q != fmt.Sprintf("%q", concise) {
		t.Fatalf("%%q: got=%s", q)
	}

	verbose := fmt.Sprintf("%+v", f)
	wantFrags := []string{
		"code=access_violation",
		"trap=access_violation",
		`msg="Access violation at 0x401000, trying to write 0x10"`,
		"\nthread=worker-1",
		"\nctx: fault_id=abc task=3",
		"\ncause: runtime error: invalid memory address",
		"\nstack:\n  pkg.decode /src/decode.go:42",
	}
	if !containsInOrder(verbose, wantFrags...) {
		t.Fatalf("%%+v missing fragments in order:\n%s", verbose)
	}
}

func TestWith_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := Classify(FaultRecord{Code: TrapIntDivideByZero})
	derived := base.With("attempt", 2)

	if base.Context() != nil {
		t.Fatalf("base mutated: %#v", base.Context())
	}
	if derived.Context()["attempt"] != 2 {
		t.Fatalf("derived missing field: %#v", derived.Context())
	}
	if derived.Kind() != KindDivideByZero {
		t.Fatalf("With changed the variant: %s", derived.Kind())
	}

	av := Classify(FaultRecord{Code: TrapAccessViolation, Info: []uintptr{1, 0x20}}).With("k", "v")
	if _, ok := av.(AccessViolation); !ok {
		t.Fatalf("With on an access violation must keep the variant, got %T", av)
	}
}
