package types2

import (
	"go/constant"

	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
)

// DefaultMaxDepth is the nesting limit used when Config.MaxDepth is not set.
const DefaultMaxDepth = 1000

// Config specifies the configuration for type checking.
type Config struct {
	// Error is called for each diagnostic as it is reported.
	// If nil, diagnostics are only returned.
	Error ErrorHandler

	// MaxDepth bounds statement and expression nesting.
	// If <= 0, DefaultMaxDepth is used.
	MaxDepth int

	// MaxDiagnostics stops reporting after that many diagnostics.
	// If <= 0, every diagnostic is reported.
	MaxDiagnostics int

	// Universe is the root scope of the check.
	// If nil, types.Universe is used.
	Universe *types.Scope

	// Sizes provides type size and alignment information.
	// If nil, DefaultSizes is used.
	Sizes *types.Sizes
}

// Info holds the results of type checking.
type Info struct {
	// Types maps expressions, including type expressions, to their type
	// and value information. Expressions that failed to check map to
	// the unknown type.
	Types map[syntax.Expr]TypeAndValue

	// Defs maps defining identifiers to their declared objects.
	Defs map[*syntax.Name]types.Object

	// Uses maps referencing identifiers to their referenced objects,
	// including the field selected by a member access.
	Uses map[*syntax.Name]types.Object

	// Scopes maps AST nodes to the scopes they open: the file Block,
	// blocks, functions, loops and templates.
	Scopes map[syntax.Node]*types.Scope
}

// TypeOf returns the type of expression e, or nil if none was recorded.
func (info *Info) TypeOf(e syntax.Expr) types.Type {
	if tv, ok := info.Types[e]; ok {
		return tv.Type
	}
	return nil
}

// TypeAndValue holds the type and value information for an expression.
type TypeAndValue struct {
	Type  types.Type     // expression type
	Value constant.Value // constant value (nil if not constant)
	mode  operandMode    // operand mode
}

// IsVoid reports whether the expression has no value (void call or
// valueless block).
func (tv TypeAndValue) IsVoid() bool {
	return tv.mode == novalue
}

// IsType reports whether the expression is a type expression.
func (tv TypeAndValue) IsType() bool {
	return tv.mode == typexpr
}

// IsConstant reports whether the expression is a constant.
func (tv TypeAndValue) IsConstant() bool {
	return tv.mode == constant_
}

// IsAddressable reports whether the expression is an lvalue.
func (tv TypeAndValue) IsAddressable() bool {
	return tv.mode == variable
}

// IsValue reports whether the expression has a value.
func (tv TypeAndValue) IsValue() bool {
	return tv.mode == constant_ || tv.mode == variable || tv.mode == value
}

// Check type-checks a parsed file and returns its diagnostics in the order
// they were found. The error is non-nil only if the checker hit an
// internal invariant violation; it is then an *InternalError and the
// diagnostics found so far are still returned.
func Check(file *syntax.Block, conf *Config, info *Info) (diags []*Diagnostic, err error) {
	if conf == nil {
		conf = &Config{}
	}
	c := newChecker(conf, info)

	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			diags, err = c.diags, ie
		}
	}()

	c.checkFile(file)
	return c.diags, nil
}
