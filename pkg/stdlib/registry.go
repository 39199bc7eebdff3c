// Package stdlib implements the built-in expression functions.
package stdlib

import "github.com/lemonberrylabs/simplexpr/pkg/types"

// Func is a built-in function signature.
type Func func(args []types.Value) (types.Value, error)

// Registry holds named functions callable from expressions.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a registry with all built-in functions registered.
func NewRegistry() *Registry {
	r := &Registry{
		funcs: make(map[string]Func),
	}
	r.registerMath()
	r.registerText()
	return r
}

// Register adds a function to the registry, replacing any previous binding
// for the name.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// CallFunction invokes the function registered under name. A miss fails
// with an unknown-function error, which lets a Registry double as a host
// function source behind the evaluator's built-ins.
func (r *Registry) CallFunction(name string, args []types.Value) (types.Value, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return types.Value{}, types.UnknownFunction(name)
	}
	return fn(args)
}
