// predicates.go — classification helpers over arbitrary error chains.
//
// All helpers use errors.As, so they see through fmt.Errorf("%w") wrapping
// and multi-error joins (Unwrap() []error).
package xgxfault

import "errors"

// AsFault returns the first Fault in err's chain.
func AsFault(err error) (Fault, bool) {
	if err == nil {
		return nil, false
	}
	var f Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// AsAccessViolation returns the first AccessViolation in err's chain.
func AsAccessViolation(err error) (AccessViolation, bool) {
	if err == nil {
		return nil, false
	}
	var av AccessViolation
	if errors.As(err, &av) {
		return av, true
	}
	return nil, false
}

// IsFault reports whether err is, or wraps, a translated fault.
func IsFault(err error) bool {
	_, ok := AsFault(err)
	return ok
}

// IsAccessViolation reports whether err is, or wraps, an access violation.
func IsAccessViolation(err error) bool {
	_, ok := AsAccessViolation(err)
	return ok
}

// IsDivideByZero reports whether the first fault in err's chain is a
// division fault.
func IsDivideByZero(err error) bool {
	f, ok := AsFault(err)
	return ok && f.Kind() == KindDivideByZero
}

// KindOf returns the kind of the first fault in err's chain.
func KindOf(err error) (Kind, bool) {
	f, ok := AsFault(err)
	if !ok {
		return KindGeneric, false
	}
	return f.Kind(), true
}

// CodeOf returns the code of the first fault in err's chain, or "" if none.
func CodeOf(err error) Code {
	if f, ok := AsFault(err); ok {
		return f.CodeVal()
	}
	return ""
}
