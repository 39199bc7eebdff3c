package stdlib

import (
	"strconv"

	"github.com/lemonberrylabs/simplexpr/pkg/types"
)

// registerMath registers the numeric built-ins.
func (r *Registry) registerMath() {
	r.Register("round", stdRound)
}

// stdRound formats a number with a fixed count of fractional digits. The
// result is the formatted string, not a re-parsed number: round(3.14159, 2)
// is "3.14". Negative digit counts clamp to 0.
func stdRound(args []types.Value) (types.Value, error) {
	if err := requireArgs("round", args, 2); err != nil {
		return types.Value{}, err
	}
	num, err := args[0].AsFloat()
	if err != nil {
		return types.Value{}, err
	}
	digits, err := args[1].AsInt()
	if err != nil {
		return types.Value{}, err
	}
	if digits < 0 {
		digits = 0
	}
	return types.NewString(strconv.FormatFloat(num, 'f', int(digits), 64)), nil
}
