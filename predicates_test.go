package xgxfault

import (
	"errors"
	"fmt"
	"testing"
)

func TestPredicates(t *testing.T) {
	t.Parallel()

	av := Classify(FaultRecord{Code: TrapAccessViolation, Info: []uintptr{1, 0x10}})
	dz := Classify(FaultRecord{Code: TrapIntDivideByZero})
	gen := Classify(FaultRecord{Code: TrapFloatError})
	plain := errors.New("plain")

	cases := []struct {
		name     string
		err      error
		isFault  bool
		isAV     bool
		isDivide bool
		code     Code
	}{
		{"nil", nil, false, false, false, ""},
		{"plain", plain, false, false, false, ""},
		{"access violation", av, true, true, false, CodeAccessViolation},
		{"wrapped access violation", fmt.Errorf("decode: %w", av), true, true, false, CodeAccessViolation},
		{"divide", dz, true, false, true, CodeDivideByZero},
		{"generic", gen, true, false, false, CodeFault},
		{"joined", Join(plain, dz), true, false, true, CodeDivideByZero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsFault(tc.err); got != tc.isFault {
				t.Fatalf("IsFault: want=%v got=%v", tc.isFault, got)
			}
			if got := IsAccessViolation(tc.err); got != tc.isAV {
				t.Fatalf("IsAccessViolation: want=%v got=%v", tc.isAV, got)
			}
			if got := IsDivideByZero(tc.err); got != tc.isDivide {
				t.Fatalf("IsDivideByZero: want=%v got=%v", tc.isDivide, got)
			}
			if got := CodeOf(tc.err); got != tc.code {
				t.Fatalf("CodeOf: want=%q got=%q", tc.code, got)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	if _, ok := KindOf(errors.New("x")); ok {
		t.Fatal("KindOf on a plain error must report false")
	}
	k, ok := KindOf(fmt.Errorf("w: %w", Classify(FaultRecord{Code: TrapAccessViolation})))
	if !ok || k != KindAccessViolation {
		t.Fatalf("KindOf: got %s ok=%v", k, ok)
	}
}

func TestTypedField(t *testing.T) {
	t.Parallel()

	attempt := Field[int]("attempt")
	f := attempt.Set(Classify(FaultRecord{Code: TrapIntOverflow}), 3)

	if got, ok := attempt.Get(fmt.Errorf("w: %w", f)); !ok || got != 3 {
		t.Fatalf("Get: want=3 got=%d ok=%v", got, ok)
	}
	if _, ok := Field[string]("attempt").Get(f); ok {
		t.Fatal("Get with the wrong type must report false")
	}
	if _, ok := attempt.Get(errors.New("plain")); ok {
		t.Fatal("Get on a non-fault must report false")
	}
	if attempt.Key() != "attempt" {
		t.Fatalf("Key: got=%q", attempt.Key())
	}
}
