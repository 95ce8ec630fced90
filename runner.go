package sqlexec

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

// Runner executes a SQL script statement by statement against a database
// opened through its ConnectionManager. Statements run strictly in order;
// the first failure aborts the run. Statement and comment lines are echoed
// to the Runner's output as they are processed.
type Runner struct {
	manager *ConnectionManager
	out     io.Writer
}

// NewRunner returns a Runner writing its statement and comment echo to out.
// A nil out defaults to os.Stdout.
func NewRunner(manager *ConnectionManager, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{manager: manager, out: out}
}

// Run validates cfg, opens a connection and executes every statement of the
// script in order. Each statement is echoed before submission. The first
// rejected statement aborts the run: its message and, when the driver
// chains one, the underlying cause are reported and no further statement is
// submitted. A read failure aborts the same way. The connection is closed
// exactly once no matter how the run ends; a close failure is logged and
// never replaces the error that ended the run. Every failure is reported on
// the output and also returned, so callers can choose an exit code.
func (r *Runner) Run(cfg *Config, script io.Reader) error {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(r.out, err)
		return err
	}

	db, err := r.manager.Open(cfg)
	if err != nil {
		fmt.Fprintln(r.out, err)
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Printf("Error closing connection: %v", cerr)
		}
	}()

	return r.executeScript(db, script, cfg.SeparatorByte())
}

// executeScript drives the statement scanner against an open session.
func (r *Runner) executeScript(db Database, script io.Reader, separator byte) error {
	scanner := NewStatementScanner(script, separator)
	scanner.OnComment = func(line string) {
		fmt.Fprintln(r.out, line)
	}

	for scanner.Scan() {
		stmt := scanner.Statement()
		fmt.Fprintln(r.out, stmt)
		if err := db.Execute(stmt); err != nil {
			r.reportExecError(err)
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(r.out, err)
		return fmt.Errorf("failed to read script: %w", err)
	}
	if residual := scanner.Residual(); residual != "" {
		log.Printf("Warning: script ended without separator, dropped unterminated statement %q", residual)
	}
	return nil
}

// reportExecError prints the primary execution error and, when the driver
// attached one, the chained cause below it.
func (r *Runner) reportExecError(err error) {
	fmt.Fprintln(r.out, err)
	if cause := errors.Unwrap(err); cause != nil {
		if next := errors.Unwrap(cause); next != nil {
			fmt.Fprintln(r.out, next)
		}
	}
}
