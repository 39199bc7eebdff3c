package expr

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/lemonberrylabs/simplexpr/pkg/stdlib"
	"github.com/lemonberrylabs/simplexpr/pkg/types"
)

// FunctionSource supplies host-defined functions to the evaluator. It is
// consulted only after built-in lookup fails, so a host function can never
// shadow a built-in. A source that does not provide the named function must
// return an error matching types.ErrUnknownFunction (*stdlib.Registry
// already behaves this way).
type FunctionSource interface {
	CallFunction(name string, args []types.Value) (types.Value, error)
}

// Evaluator evaluates expression trees against variable bindings. The zero
// configuration resolves only the built-in functions; hosts add their own
// with WithFunctions. An Evaluator holds no per-evaluation state and is safe
// for concurrent use.
type Evaluator struct {
	builtins *stdlib.Registry
	host     FunctionSource
	log      *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithFunctions supplies host functions, consulted after the built-ins.
func WithFunctions(src FunctionSource) Option {
	return func(ev *Evaluator) { ev.host = src }
}

// WithLogger routes debug logging. Evaluation is silent by default.
func WithLogger(log *slog.Logger) Option {
	return func(ev *Evaluator) { ev.log = log }
}

// New returns an Evaluator.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{builtins: stdlib.NewRegistry()}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// defaultEvaluator backs the package-level Eval and EvalNoVars. It is never
// mutated after init.
var defaultEvaluator = New()

// Eval evaluates node against vars using only the built-in functions.
func Eval(node Node, vars map[string]types.Value) (types.Value, error) {
	return defaultEvaluator.Eval(node, vars)
}

// EvalNoVars evaluates node with an empty environment using only the
// built-in functions.
func EvalNoVars(node Node) (types.Value, error) {
	return defaultEvaluator.EvalNoVars(node)
}

// Eval evaluates node against the given variable bindings and returns the
// resulting value tagged with the node's span. Evaluation is depth-first and
// strict except for IfElse branches; the first failure aborts and propagates
// unchanged, picking up a span at the nearest user-visible operation.
func (ev *Evaluator) Eval(node Node, vars map[string]types.Value) (types.Value, error) {
	return ev.eval(node, vars)
}

// EvalNoVars evaluates node with an empty environment, for contexts where
// variable references are categorically disallowed. A failure matching
// types.ErrUnknownVariable is reclassified as types.ErrNoVariablesAllowed
// with the same name and span; every other error passes through unchanged.
func (ev *Evaluator) EvalNoVars(node Node) (types.Value, error) {
	v, err := ev.eval(node, nil)
	if err != nil {
		var verr *types.VariableError
		if errors.As(err, &verr) && errors.Is(err, types.ErrUnknownVariable) {
			repl := types.NoVariablesAllowed(verr.Name)
			if s, ok := types.SpanOf(err); ok {
				repl = types.At(repl, s)
			}
			return types.Value{}, repl
		}
		return types.Value{}, err
	}
	return v, nil
}

// eval runs evalNode and re-tags the result with the node's span, so every
// intermediate value records where it came from. Conversion failures on
// operand values stay locatable because of this tagging.
func (ev *Evaluator) eval(node Node, vars map[string]types.Value) (types.Value, error) {
	v, err := ev.evalNode(node, vars)
	if err != nil {
		return types.Value{}, err
	}
	return v.At(node.Span()), nil
}

func (ev *Evaluator) evalNode(node Node, vars map[string]types.Value) (types.Value, error) {
	switch n := node.(type) {
	case *LiteralNode:
		return n.Value, nil

	case *VarRefNode:
		v, ok := vars[n.Name]
		if !ok {
			return types.Value{}, types.At(types.UnresolvedVariable(n.Name), n.Pos)
		}
		return v.At(n.Pos), nil

	case *BinaryNode:
		return ev.evalBinary(n, vars)

	case *UnaryNode:
		return ev.evalUnary(n, vars)

	case *IfElseNode:
		cond, err := ev.eval(n.Cond, vars)
		if err != nil {
			return types.Value{}, err
		}
		b, err := cond.AsBool()
		if err != nil {
			return types.Value{}, err
		}
		if b {
			return ev.eval(n.Then, vars)
		}
		return ev.eval(n.Else, vars)

	case *IndexNode:
		return ev.evalIndex(n, vars)

	case *CallNode:
		args := make([]types.Value, len(n.Args))
		for i, a := range n.Args {
			v, err := ev.eval(a, vars)
			if err != nil {
				return types.Value{}, err
			}
			args[i] = v
		}
		v, err := ev.callFunction(n.Function, args)
		if err != nil {
			return types.Value{}, types.At(err, n.Pos)
		}
		return v, nil

	default:
		return types.Value{}, errors.Newf("unsupported expression node type: %T", node)
	}
}

func (ev *Evaluator) evalBinary(n *BinaryNode, vars map[string]types.Value) (types.Value, error) {
	a, err := ev.eval(n.Left, vars)
	if err != nil {
		return types.Value{}, err
	}
	b, err := ev.eval(n.Right, vars)
	if err != nil {
		return types.Value{}, err
	}

	switch n.Op {
	case OpEquals:
		return types.NewBool(a.Equal(b)), nil
	case OpNotEquals:
		return types.NewBool(!a.Equal(b)), nil
	case OpAnd, OpOr:
		return evalLogical(n.Op, a, b)
	case OpPlus:
		return evalPlus(a, b)
	case OpMinus, OpTimes, OpDiv, OpMod:
		return evalArith(n.Op, a, b)
	case OpGreaterThan, OpLessThan:
		return evalOrdering(n.Op, a, b)
	case OpElvis:
		if a.IsEmpty() {
			return b, nil
		}
		return a, nil
	case OpRegexMatch:
		return evalRegexMatch(a, b)
	default:
		return types.Value{}, errors.Newf("unsupported binary operator: %s", n.Op)
	}
}

func (ev *Evaluator) evalUnary(n *UnaryNode, vars map[string]types.Value) (types.Value, error) {
	a, err := ev.eval(n.Operand, vars)
	if err != nil {
		return types.Value{}, err
	}
	switch n.Op {
	case OpNot:
		b, err := a.AsBool()
		if err != nil {
			return types.Value{}, err
		}
		return types.NewBool(!b), nil
	default:
		return types.Value{}, errors.Newf("unsupported unary operator: %s", n.Op)
	}
}

// evalLogical combines two booleans. Both operands were already evaluated:
// And/Or are strict, so a failure on the right surfaces even when the left
// alone would decide the result.
func evalLogical(op BinOp, a, b types.Value) (types.Value, error) {
	x, err := a.AsBool()
	if err != nil {
		return types.Value{}, err
	}
	y, err := b.AsBool()
	if err != nil {
		return types.Value{}, err
	}
	if op == OpAnd {
		return types.NewBool(x && y), nil
	}
	return types.NewBool(x || y), nil
}

// evalPlus adds numerically when the left operand parses as a number,
// otherwise concatenates the string forms. A numeric left with a
// non-numeric right is an error, not a concatenation.
func evalPlus(a, b types.Value) (types.Value, error) {
	if x, err := a.AsFloat(); err == nil {
		y, err := b.AsFloat()
		if err != nil {
			return types.Value{}, err
		}
		return types.NewFloat(x + y), nil
	}
	return types.NewString(a.String() + b.String()), nil
}

func evalArith(op BinOp, a, b types.Value) (types.Value, error) {
	x, err := a.AsFloat()
	if err != nil {
		return types.Value{}, err
	}
	y, err := b.AsFloat()
	if err != nil {
		return types.Value{}, err
	}
	switch op {
	case OpMinus:
		return types.NewFloat(x - y), nil
	case OpTimes:
		return types.NewFloat(x * y), nil
	case OpDiv:
		// IEEE semantics: dividing by zero yields Inf or NaN, not an error.
		return types.NewFloat(x / y), nil
	case OpMod:
		return types.NewFloat(math.Mod(x, y)), nil
	default:
		return types.Value{}, errors.Newf("unsupported arithmetic operator: %s", op)
	}
}

func evalOrdering(op BinOp, a, b types.Value) (types.Value, error) {
	x, err := a.AsFloat()
	if err != nil {
		return types.Value{}, err
	}
	y, err := b.AsFloat()
	if err != nil {
		return types.Value{}, err
	}
	if op == OpGreaterThan {
		return types.NewBool(x > y), nil
	}
	return types.NewBool(x < y), nil
}

// evalRegexMatch reports whether a's string form matches the pattern in b.
// The pattern compiles per call and is never cached; matching is a search,
// not anchored.
func evalRegexMatch(a, b types.Value) (types.Value, error) {
	re, err := regexp.Compile(b.String())
	if err != nil {
		return types.Value{}, types.InvalidRegex(err)
	}
	return types.NewBool(re.MatchString(a.String())), nil
}

// evalIndex resolves object[index] against a JSON document. Arrays index by
// integer, with out-of-range (including negative) reads yielding JSON null;
// objects look up the string key first and fall back to the
// integer-normalized key, yielding null on a miss. Indexing into a scalar or
// null fails at this node's span.
func (ev *Evaluator) evalIndex(n *IndexNode, vars map[string]types.Value) (types.Value, error) {
	obj, err := ev.eval(n.Object, vars)
	if err != nil {
		return types.Value{}, err
	}
	index, err := ev.eval(n.Index, vars)
	if err != nil {
		return types.Value{}, err
	}
	doc, err := obj.AsJSON()
	if err != nil {
		return types.Value{}, err
	}

	switch container := doc.(type) {
	case []any:
		i, err := index.AsInt()
		if err != nil {
			return types.Value{}, err
		}
		if i < 0 || i >= int64(len(container)) {
			return types.FromJSON(nil), nil
		}
		return types.FromJSON(container[i]), nil

	case map[string]any:
		if v, ok := container[index.String()]; ok {
			return types.FromJSON(v), nil
		}
		if i, err := index.AsInt(); err == nil {
			if v, ok := container[strconv.FormatInt(i, 10)]; ok {
				return types.FromJSON(v), nil
			}
		}
		return types.FromJSON(nil), nil

	default:
		return types.Value{}, types.At(types.CannotIndex(obj.String()), n.Pos)
	}
}

// callFunction dispatches a call: built-ins first, then the host source,
// then unknown-function.
func (ev *Evaluator) callFunction(name string, args []types.Value) (types.Value, error) {
	if fn, ok := ev.builtins.Lookup(name); ok {
		return fn(args)
	}
	if ev.host != nil {
		if ev.log != nil {
			ev.log.Debug("dispatching to host function", slog.String("function", name))
		}
		return ev.host.CallFunction(name, args)
	}
	return types.Value{}, types.UnknownFunction(name)
}
