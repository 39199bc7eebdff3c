package stdlib

import (
	"regexp"
	"strings"

	"github.com/lemonberrylabs/simplexpr/pkg/types"
)

// registerText registers the string manipulation functions.
func (r *Registry) registerText() {
	r.Register("replace", stdReplace)
}

// stdReplace implements replace(subject, pattern, replacement). The pattern is
// compiled as a regular expression and every match in subject is replaced.
// The replacement string is inserted literally: '$' does not expand capture
// group references.
func stdReplace(args []types.Value) (types.Value, error) {
	if err := requireArgs("replace", args, 3); err != nil {
		return types.Value{}, err
	}
	subject := args[0].String()
	re, err := regexp.Compile(args[1].String())
	if err != nil {
		return types.Value{}, types.InvalidRegex(err)
	}
	replacement := strings.ReplaceAll(args[2].String(), "$", "$$")
	return types.NewString(re.ReplaceAllString(subject, replacement)), nil
}
