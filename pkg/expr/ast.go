package expr

import (
	"fmt"
	"strings"

	"github.com/lemonberrylabs/simplexpr/pkg/types"
)

// Node is the interface for all expression AST nodes. Nodes are immutable
// once constructed and evaluation never modifies a tree, so a tree may be
// shared and evaluated any number of times.
type Node interface {
	nodeType() string

	// Span returns the source range the node was parsed from.
	Span() types.Span

	// String renders a source-like form of the subtree for diagnostics.
	String() string
}

// LiteralNode holds a constant value.
type LiteralNode struct {
	Pos   types.Span
	Value types.Value
}

func (n *LiteralNode) nodeType() string { return "Literal" }
func (n *LiteralNode) Span() types.Span { return n.Pos }
func (n *LiteralNode) String() string   { return fmt.Sprintf("%q", n.Value.String()) }

// VarRefNode references a variable by name.
type VarRefNode struct {
	Pos  types.Span
	Name string
}

func (n *VarRefNode) nodeType() string { return "VarRef" }
func (n *VarRefNode) Span() types.Span { return n.Pos }
func (n *VarRefNode) String() string   { return n.Name }

// BinaryNode applies a binary operator to two operands.
type BinaryNode struct {
	Pos   types.Span
	Op    BinOp
	Left  Node
	Right Node
}

func (n *BinaryNode) nodeType() string { return "Binary" }
func (n *BinaryNode) Span() types.Span { return n.Pos }
func (n *BinaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

// UnaryNode applies a unary operator to a single operand.
type UnaryNode struct {
	Pos     types.Span
	Op      UnaryOp
	Operand Node
}

func (n *UnaryNode) nodeType() string { return "Unary" }
func (n *UnaryNode) Span() types.Span { return n.Pos }
func (n *UnaryNode) String() string   { return fmt.Sprintf("%s%s", n.Op, n.Operand) }

// IfElseNode is a conditional expression. Exactly one branch is evaluated.
type IfElseNode struct {
	Pos  types.Span
	Cond Node
	Then Node
	Else Node
}

func (n *IfElseNode) nodeType() string { return "IfElse" }
func (n *IfElseNode) Span() types.Span { return n.Pos }
func (n *IfElseNode) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", n.Cond, n.Then, n.Else)
}

// IndexNode indexes into a JSON array or object (e.g. doc["users"][0]).
type IndexNode struct {
	Pos    types.Span
	Object Node
	Index  Node
}

func (n *IndexNode) nodeType() string { return "Index" }
func (n *IndexNode) Span() types.Span { return n.Pos }
func (n *IndexNode) String() string   { return fmt.Sprintf("%s[%s]", n.Object, n.Index) }

// CallNode calls a named function with evaluated arguments.
type CallNode struct {
	Pos      types.Span
	Function string
	Args     []Node
}

func (n *CallNode) nodeType() string { return "Call" }
func (n *CallNode) Span() types.Span { return n.Pos }
func (n *CallNode) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Function, strings.Join(args, ", "))
}
