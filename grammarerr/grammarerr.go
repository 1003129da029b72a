// Package grammarerr collects the error types surfaced across cfgc: AST
// validation failures, compiler-side problems, and positions within a
// source grammar file. A SurfaceError carries a position so a CLI can
// report it the way a compiler does, pointing at the line (and, once a
// position-tracking surface parser exists, column) that caused it.
package grammarerr

import (
	"fmt"

	"github.com/nihei9/cfgc/ast"
)

// SurfaceError is an error that originates from a specific position of a
// grammar source file. Row and Col are both 1-based; a value of 0 means
// unknown. The constructors in this package take a row but always leave
// the column 0, and gramfile passes row 0 since it does not track source
// positions.
type SurfaceError interface {
	error
	Position() (row, col int)
}

// ValidationError wraps an ast.ValidationError with the position of the
// grammar file rule that triggered it.
type ValidationError struct {
	Cause  *ast.ValidationError
	Detail string
	RowNum int
	ColNum int
}

func NewValidationError(cause *ast.ValidationError, row int, detail string) *ValidationError {
	return &ValidationError{Cause: cause, RowNum: row, Detail: detail}
}

func (e *ValidationError) Position() (int, int) { return e.RowNum, e.ColNum }

func (e *ValidationError) Error() string {
	if e.RowNum > 0 {
		if e.Detail != "" {
			return fmt.Sprintf("%v: %s (line %d)", e.Cause, e.Detail, e.RowNum)
		}
		return fmt.Sprintf("%v (line %d)", e.Cause, e.RowNum)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s", e.Cause, e.Detail)
	}
	return e.Cause.Error()
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// ConfigError reports a malformed grammar file: bad TOML, a rule with no
// alternatives, an unparsable precedence reference, and the like. Unlike
// ValidationError it has no counterpart in ast.ValidationErrorKind because
// it is caught before an ast.GrammarAST can even be built.
type ConfigError struct {
	Msg    string
	RowNum int
	ColNum int
}

func NewConfigError(row int, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...), RowNum: row}
}

func (e *ConfigError) Position() (int, int) { return e.RowNum, e.ColNum }

func (e *ConfigError) Error() string {
	if e.RowNum > 0 {
		return fmt.Sprintf("%s (line %d)", e.Msg, e.RowNum)
	}
	return e.Msg
}

// Errors is an aggregate of one or more SurfaceErrors. gramfile does not
// produce one: its build step stops at the first malformed entry and
// returns that single ConfigError.
type Errors []SurfaceError

func (es Errors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	return fmt.Sprintf("%d errors, first: %v", len(es), es[0])
}
