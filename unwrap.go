// unwrap.go — collecting faults out of error trees.
//
// Pool results are Join trees that may also contain fmt.Errorf("%w")
// wrappers and non-fault task errors. Faults walks the tree (both
// Unwrap() error and Unwrap() []error) and returns the faults in
// depth-first order, stopping descent at the first fault on a path.
package xgxfault

const maxWalkDepth = 1 << 12

// Faults returns the faults found in err's unwrap tree.
func Faults(err error) []Fault {
	var out []Fault
	walk(err, 0, func(f Fault) { out = append(out, f) })
	return out
}

func walk(err error, depth int, visit func(Fault)) {
	if err == nil || depth >= maxWalkDepth {
		return
	}
	if f, ok := err.(Fault); ok {
		visit(f)
		return
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, child := range u.Unwrap() {
			walk(child, depth+1, visit)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), depth+1, visit)
	}
}
