// Package types2 implements type checking for the cp language.
package types2

import (
	"fmt"

	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
)

// DiagnosticKind classifies a diagnostic.
type DiagnosticKind uint8

const (
	UndefinedName DiagnosticKind = iota
	Redeclaration
	TypeMismatch
	ArityMismatch
	NotCallable
	NotIndexable
	InvalidBreakContinueDepth
	UnknownField
	NotAssignable
	RecursionLimitExceeded
	NotAType
	NotAValue
	InvalidArraySize
)

var kindNames = [...]string{
	UndefinedName:             "UndefinedName",
	Redeclaration:             "Redeclaration",
	TypeMismatch:              "TypeMismatch",
	ArityMismatch:             "ArityMismatch",
	NotCallable:               "NotCallable",
	NotIndexable:              "NotIndexable",
	InvalidBreakContinueDepth: "InvalidBreakContinueDepth",
	UnknownField:              "UnknownField",
	NotAssignable:             "NotAssignable",
	RecursionLimitExceeded:    "RecursionLimitExceeded",
	NotAType:                  "NotAType",
	NotAValue:                 "NotAValue",
	InvalidArraySize:          "InvalidArraySize",
}

func (k DiagnosticKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("DiagnosticKind(%d)", k)
}

// Diagnostic is a semantic error found by the checker. Diagnostics do not
// stop checking.
type Diagnostic struct {
	Kind DiagnosticKind
	Msg  string
	Pos  syntax.Pos

	// Expected and Found describe the two sides of a TypeMismatch.
	// They are empty for other kinds.
	Expected string
	Found    string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Msg)
}

// InternalError reports a violated checker invariant, such as a node the
// parser can never produce.
type InternalError struct {
	Pos syntax.Pos
	Msg string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: internal error: %s", e.Pos, e.Msg)
}

// ErrorHandler is a function called for each diagnostic as it is reported.
type ErrorHandler func(d *Diagnostic)

// errorf reports a diagnostic at the given position.
func (c *Checker) errorf(kind DiagnosticKind, pos syntax.Pos, format string, args ...interface{}) {
	c.report(&Diagnostic{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// mismatch reports a TypeMismatch between an expected and a found type
// description.
func (c *Checker) mismatch(pos syntax.Pos, expected, found string, format string, args ...interface{}) {
	c.report(&Diagnostic{
		Kind:     TypeMismatch,
		Pos:      pos,
		Msg:      fmt.Sprintf(format, args...),
		Expected: expected,
		Found:    found,
	})
}

func (c *Checker) report(d *Diagnostic) {
	if max := c.conf.MaxDiagnostics; max > 0 && len(c.diags) >= max {
		c.dropped++
		return
	}
	c.diags = append(c.diags, d)
	if c.conf.Error != nil {
		c.conf.Error(d)
	}
}

// redeclared reports a failed scope declaration.
func (c *Checker) redeclared(err *types.RedeclarationError) {
	msg := fmt.Sprintf("%s redeclared in this scope", err.Name)
	if err.Prev != nil && err.Prev.Pos().IsValid() {
		msg += fmt.Sprintf(" (previous declaration at %s)", err.Prev.Pos())
	}
	c.errorf(Redeclaration, err.Pos, "%s", msg)
}

// internalf aborts checking with an *InternalError.
func (c *Checker) internalf(pos syntax.Pos, format string, args ...interface{}) {
	panic(&InternalError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}
