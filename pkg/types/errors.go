package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinels for the closed set of evaluation failures. Every error produced
// by evaluation matches exactly one of these under errors.Is; the
// constructors below attach the offending name, value or cause.
var (
	ErrNoVariablesAllowed = errors.New("variables not allowed in this context")
	ErrInvalidRegex       = errors.New("invalid regex")
	ErrUnresolvedVariable = errors.New("unresolved variable")
	ErrConversion         = errors.New("conversion error")
	ErrWrongArgCount      = errors.New("wrong number of arguments")
	ErrUnknownFunction    = errors.New("unknown function")
	ErrUnknownVariable    = errors.New("unknown variable")
	ErrCannotIndex        = errors.New("cannot index")
)

// VariableError is an evaluation failure referring to a variable by name.
// Kind is one of ErrUnknownVariable, ErrUnresolvedVariable or
// ErrNoVariablesAllowed; the name survives so failures can be reclassified
// without reparsing messages.
type VariableError struct {
	Name string
	Kind error
}

func (e *VariableError) Error() string {
	if errors.Is(e.Kind, ErrNoVariablesAllowed) {
		return fmt.Sprintf("cannot access variable '%s' here", e.Name)
	}
	return fmt.Sprintf("%s '%s'", e.Kind, e.Name)
}

func (e *VariableError) Unwrap() error { return e.Kind }

// UnknownVariable reports a reference to a name with no binding during
// substitution.
func UnknownVariable(name string) error {
	return &VariableError{Name: name, Kind: ErrUnknownVariable}
}

// UnresolvedVariable reports a reference to a name with no binding during
// evaluation.
func UnresolvedVariable(name string) error {
	return &VariableError{Name: name, Kind: ErrUnresolvedVariable}
}

// NoVariablesAllowed reports a variable reference in a context where
// variables are categorically disallowed.
func NoVariablesAllowed(name string) error {
	return &VariableError{Name: name, Kind: ErrNoVariablesAllowed}
}

// UnknownFunction reports a call to a name that is neither a built-in nor
// provided by the host.
func UnknownFunction(name string) error {
	return errors.Wrapf(ErrUnknownFunction, "'%s'", name)
}

// WrongArgCount reports a call to fn with the wrong number of arguments.
func WrongArgCount(fn string) error {
	return errors.Wrapf(ErrWrongArgCount, "function '%s'", fn)
}

// CannotIndex reports an attempt to index into a JSON value that is neither
// an array nor an object.
func CannotIndex(value string) error {
	return errors.Wrapf(ErrCannotIndex, "value '%s'", value)
}

// RegexError is a regexp compilation failure.
type RegexError struct {
	Err error
}

func (e *RegexError) Error() string        { return "invalid regex: " + e.Err.Error() }
func (e *RegexError) Unwrap() error        { return e.Err }
func (e *RegexError) Is(target error) bool { return target == ErrInvalidRegex }

// InvalidRegex wraps the compile error for a malformed pattern.
func InvalidRegex(err error) error {
	return &RegexError{Err: err}
}

// ConversionError is a failed conversion of a value to a richer type. The
// offending value keeps its span, which makes the failure locatable even
// when no explicit span wrapper is added.
type ConversionError struct {
	Value  Value
	Target string
	Cause  error
}

func newConversionError(v Value, target string, cause error) *ConversionError {
	return &ConversionError{Value: v, Target: target, Cause: cause}
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert '%s' to %s", e.Value, e.Target)
}

func (e *ConversionError) Unwrap() error        { return e.Cause }
func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// SpanError carries the source span of a failure. The message is the wrapped
// error's message; the span is metadata for diagnostics.
type SpanError struct {
	Span Span
	Err  error
}

func (e *SpanError) Error() string { return e.Err.Error() }
func (e *SpanError) Unwrap() error { return e.Err }

// At wraps err with a span. Wrapping nests, so an inner span is never
// discarded; SpanOf reports the outermost one.
func At(err error, s Span) error {
	if err == nil {
		return nil
	}
	return &SpanError{Span: s, Err: err}
}

// SpanOf reports the span closest to the failure's user-visible operation:
// the outermost span wrapper if any, otherwise the span of the value a
// conversion failed on.
func SpanOf(err error) (Span, bool) {
	var se *SpanError
	if errors.As(err, &se) {
		return se.Span, true
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Value.Span()
	}
	return Span{}, false
}
