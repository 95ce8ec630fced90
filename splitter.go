package sqlexec

import (
	"bufio"
	"io"
	"strings"
)

// StatementScanner reads a SQL script line by line and produces one logical
// statement at a time, in the style of bufio.Scanner:
//
//	sc := NewStatementScanner(script, ';')
//	for sc.Scan() {
//		execute(sc.Statement())
//	}
//	if err := sc.Err(); err != nil { ... }
//
// A statement accumulates across lines until a line ends with the separator
// character; the emitted statement has every occurrence of the separator
// replaced by a space. Blank lines are skipped. Lines starting with "--"
// after trimming are comment lines: they go to OnComment when set and never
// become part of a statement. The "--" check applies to every line,
// including continuation lines of a statement still being accumulated, so a
// trailing comment inside a multi-line statement is excluded from it.
type StatementScanner struct {
	// OnComment, when non-nil, receives each comment line as it is read.
	OnComment func(line string)

	scanner   *bufio.Scanner
	separator byte
	buf       strings.Builder
	stmt      string
	done      bool
}

// NewStatementScanner returns a scanner producing the statements of the
// script read from r, terminated by the given separator character.
func NewStatementScanner(r io.Reader, separator byte) *StatementScanner {
	return &StatementScanner{
		scanner:   bufio.NewScanner(r),
		separator: separator,
	}
}

// Scan advances to the next complete statement. It returns false when the
// input is exhausted or a read error occurs; Err reports the error, if any.
func (s *StatementScanner) Scan() bool {
	if s.done {
		return false
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "--") {
			if s.OnComment != nil {
				s.OnComment(line)
			}
			continue
		}
		s.buf.WriteString(line)
		if line[len(line)-1] == s.separator {
			s.stmt = strings.ReplaceAll(s.buf.String(), string(s.separator), " ")
			s.buf.Reset()
			return true
		}
		// Keep the line break so a multi-line statement reaches the
		// database with its original formatting.
		s.buf.WriteByte('\n')
	}
	s.done = true
	return false
}

// Statement returns the statement produced by the last successful Scan.
func (s *StatementScanner) Statement() string {
	return s.stmt
}

// Err returns the first read error encountered, if any.
func (s *StatementScanner) Err() error {
	return s.scanner.Err()
}

// Residual returns text accumulated when the input ended without a final
// separator. A statement missing its terminator is never emitted; Residual
// lets callers report the dropped text.
func (s *StatementScanner) Residual() string {
	return strings.TrimSuffix(s.buf.String(), "\n")
}
