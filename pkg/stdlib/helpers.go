package stdlib

import "github.com/lemonberrylabs/simplexpr/pkg/types"

// requireArgs checks that a call to name received exactly n arguments.
func requireArgs(name string, args []types.Value, n int) error {
	if len(args) != n {
		return types.WrongArgCount(name)
	}
	return nil
}
