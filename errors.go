package sqlexec

import "fmt"

// ExecError reports a statement rejected by the database. The driver error
// is available through Unwrap; drivers that chain a further cause surface it
// the same way, one Unwrap deeper.
type ExecError struct {
	Statement string
	Err       error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to execute statement: %v", e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
