package expr

import "github.com/lemonberrylabs/simplexpr/pkg/types"

// MapTerminals rebuilds the tree one level deep: structural nodes
// (Binary/Unary/IfElse/Index/Call) apply f to each of their immediate
// children, and any other node is passed to f directly. f receives each
// child as-is, structural children included, and controls any deeper
// descent itself. The input tree is not modified.
func MapTerminals(node Node, f func(Node) Node) Node {
	switch n := node.(type) {
	case *BinaryNode:
		return &BinaryNode{Pos: n.Pos, Op: n.Op, Left: f(n.Left), Right: f(n.Right)}
	case *UnaryNode:
		return &UnaryNode{Pos: n.Pos, Op: n.Op, Operand: f(n.Operand)}
	case *IfElseNode:
		return &IfElseNode{Pos: n.Pos, Cond: f(n.Cond), Then: f(n.Then), Else: f(n.Else)}
	case *IndexNode:
		return &IndexNode{Pos: n.Pos, Object: f(n.Object), Index: f(n.Index)}
	case *CallNode:
		args := make([]Node, len(n.Args))
		for i, a := range n.Args {
			args[i] = f(a)
		}
		return &CallNode{Pos: n.Pos, Function: n.Function, Args: args}
	default:
		return f(node)
	}
}

// ResolveRefs returns a tree with every variable reference replaced by a
// literal holding its binding; the literal keeps the reference's span. A
// name with no binding fails with an unknown-variable error tagged at that
// node, and the first failure in depth-first left-to-right order wins.
// Subtrees without references may be shared with the input tree, which is
// safe because nodes are immutable.
func ResolveRefs(node Node, vars map[string]types.Value) (Node, error) {
	switch n := node.(type) {
	case *LiteralNode:
		return n, nil

	case *VarRefNode:
		v, ok := vars[n.Name]
		if !ok {
			return nil, types.At(types.UnknownVariable(n.Name), n.Pos)
		}
		return &LiteralNode{Pos: n.Pos, Value: v}, nil

	case *BinaryNode:
		left, err := ResolveRefs(n.Left, vars)
		if err != nil {
			return nil, err
		}
		right, err := ResolveRefs(n.Right, vars)
		if err != nil {
			return nil, err
		}
		return &BinaryNode{Pos: n.Pos, Op: n.Op, Left: left, Right: right}, nil

	case *UnaryNode:
		operand, err := ResolveRefs(n.Operand, vars)
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Pos: n.Pos, Op: n.Op, Operand: operand}, nil

	case *IfElseNode:
		cond, err := ResolveRefs(n.Cond, vars)
		if err != nil {
			return nil, err
		}
		then, err := ResolveRefs(n.Then, vars)
		if err != nil {
			return nil, err
		}
		els, err := ResolveRefs(n.Else, vars)
		if err != nil {
			return nil, err
		}
		return &IfElseNode{Pos: n.Pos, Cond: cond, Then: then, Else: els}, nil

	case *IndexNode:
		obj, err := ResolveRefs(n.Object, vars)
		if err != nil {
			return nil, err
		}
		index, err := ResolveRefs(n.Index, vars)
		if err != nil {
			return nil, err
		}
		return &IndexNode{Pos: n.Pos, Object: obj, Index: index}, nil

	case *CallNode:
		args := make([]Node, len(n.Args))
		for i, a := range n.Args {
			r, err := ResolveRefs(a, vars)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return &CallNode{Pos: n.Pos, Function: n.Function, Args: args}, nil

	default:
		return node, nil
	}
}

// VarRefs returns every variable name referenced in the tree in depth-first
// left-to-right order. Duplicates are kept, one per reference.
func VarRefs(node Node) []string {
	switch n := node.(type) {
	case *VarRefNode:
		return []string{n.Name}
	case *BinaryNode:
		return append(VarRefs(n.Left), VarRefs(n.Right)...)
	case *UnaryNode:
		return VarRefs(n.Operand)
	case *IfElseNode:
		refs := VarRefs(n.Cond)
		refs = append(refs, VarRefs(n.Then)...)
		refs = append(refs, VarRefs(n.Else)...)
		return refs
	case *IndexNode:
		return append(VarRefs(n.Object), VarRefs(n.Index)...)
	case *CallNode:
		var refs []string
		for _, a := range n.Args {
			refs = append(refs, VarRefs(a)...)
		}
		return refs
	default:
		return nil
	}
}
