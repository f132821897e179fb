// context.go — ordered, immutable fault context.
//
// Internal representation is an append-only []field so %+v output keeps
// insertion order; callers see a copy-on-read map.
package xgxfault

// field is a single contextual key-value pair attached to a fault.
type field struct {
	Key string
	Val any
}

// fields is never modified in place once published.
type fields []field

var emptyFields = make(fields, 0)

// ctxAppend returns a NEW slice holding dst followed by add.
func ctxAppend(dst fields, add ...field) fields {
	if len(dst)+len(add) == 0 {
		return emptyFields
	}
	out := make(fields, len(dst)+len(add))
	copy(out, dst)
	copy(out[len(dst):], add)
	return out
}

// ctxToMap builds a NEW map; later duplicate keys overwrite earlier ones.
func ctxToMap(fs fields) map[string]any {
	if len(fs) == 0 {
		return nil
	}
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Val
	}
	return m
}
