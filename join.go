// join.go — formatting-aware aggregation of several task errors.
//
// Pools run many guarded tasks and need to return every fault, not only the
// first. Join mirrors errors.Join for Error()/Unwrap() []error, and
// implements fmt.Formatter so "%+v" renders each child with its own verbose
// form (thread, ctx, cause, stack).
package xgxfault

import (
	"fmt"
	"io"
	"strings"
)

type multi struct {
	errs []error // non-nil children only
}

// Error joins child messages with newlines, identical to errors.Join.
func (m *multi) Error() string {
	var sb strings.Builder
	for i, e := range m.errs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

func (m *multi) Unwrap() []error { return m.errs }

func (m *multi) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			for i, e := range m.errs {
				if i > 0 {
					_, _ = io.WriteString(s, "\n")
				}
				_, _ = fmt.Fprintf(s, "%+v", e)
			}
			return
		}
		_, _ = io.WriteString(s, m.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", m.Error())
	default:
		_, _ = io.WriteString(s, m.Error())
	}
}

// Join returns an error wrapping the non-nil errs.
//   - all nil → nil
//   - one non-nil → that error (identity preserved)
//   - otherwise → a multi-error whose %+v recurses into the children
func Join(errs ...error) error {
	nz := make([]error, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			nz = append(nz, e)
		}
	}
	switch len(nz) {
	case 0:
		return nil
	case 1:
		return nz[0]
	default:
		return &multi{errs: nz}
	}
}
