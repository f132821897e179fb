// typed_field.go — type-safe access to fault context fields.
//
// Translation attaches fault_id (string) and goroutine (int64) to every
// fault; callers may add their own with With. TypedField reads them back
// without ad-hoc type assertions at every call site.
package xgxfault

// TypedField is a typed key into a fault's context.
type TypedField[T any] struct {
	key string
}

// Field constructs a TypedField[T] for key.
func Field[T any](key string) TypedField[T] {
	return TypedField[T]{key: key}
}

// Fields attached by Translate.
var (
	FaultID   = Field[string]("fault_id")
	Goroutine = Field[int64]("goroutine")
)

// Key returns the underlying context key.
func (f TypedField[T]) Key() string { return f.key }

// Set returns a NEW Fault carrying key = val.
func (f TypedField[T]) Set(fault Fault, val T) Fault {
	return fault.With(f.key, val)
}

// Get reads the field from the first fault in err's chain. It reports false
// when there is no fault, the field is absent, or the stored value is not
// exactly a T.
func (f TypedField[T]) Get(err error) (T, bool) {
	var zero T
	fault, ok := AsFault(err)
	if !ok {
		return zero, false
	}
	v, ok := fault.Context()[f.key]
	if !ok {
		return zero, false
	}
	tv, ok := v.(T)
	if !ok {
		return zero, false
	}
	return tv, true
}
