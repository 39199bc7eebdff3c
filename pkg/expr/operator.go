// Package expr defines the expression AST and its tree-walking evaluator.
// Trees are produced by an external parser; this package evaluates them
// against a set of variable bindings, resolving function calls through the
// built-in registry and an optional host-supplied function source.
package expr

// BinOp is a binary operator.
type BinOp int

const (
	// Comparison
	OpEquals    BinOp = iota // ==
	OpNotEquals              // !=

	// Logical (strict: both operands always evaluate)
	OpAnd // &&
	OpOr  // ||

	// Arithmetic
	OpPlus  // + (numeric, falling back to concatenation)
	OpMinus // -
	OpTimes // *
	OpDiv   // /
	OpMod   // %

	// Ordering (numeric)
	OpGreaterThan // >
	OpLessThan    // <

	// Special
	OpElvis      // ?: (right operand if the left is empty)
	OpRegexMatch // =~
)

func (op BinOp) String() string {
	switch op {
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpTimes:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpGreaterThan:
		return ">"
	case OpLessThan:
		return "<"
	case OpElvis:
		return "?:"
	case OpRegexMatch:
		return "=~"
	default:
		return "unknown"
	}
}

// UnaryOp is a unary operator.
type UnaryOp int

const (
	OpNot UnaryOp = iota // !
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	default:
		return "unknown"
	}
}
