// Package types defines the value, span and error types shared by the
// expression engine. Values are dynamically typed: every value is stored in
// its canonical string form and converted to richer types on demand, so
// "42", 42 and 42.0 are three spellings of the same value.
package types

import (
	"encoding/json"
	"strconv"
	"time"
)

// Value is a dynamically typed scalar. The canonical representation is the
// string form; conversions to bool, float64, int64 or JSON happen on demand
// and may fail with a *ConversionError. A value optionally carries the span
// of the expression it was produced from. Values are immutable.
type Value struct {
	raw  string
	span *Span
}

// NewString returns a value holding s verbatim.
func NewString(s string) Value {
	return Value{raw: s}
}

// NewBool returns "true" or "false".
func NewBool(b bool) Value {
	return Value{raw: strconv.FormatBool(b)}
}

// NewInt returns the base-10 form of i.
func NewInt(i int64) Value {
	return Value{raw: strconv.FormatInt(i, 10)}
}

// NewFloat returns the shortest decimal form of f that parses back exactly:
// 3.0 renders as "3", 1.5 as "1.5". Exponent notation is never used.
func NewFloat(f float64) Value {
	return Value{raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// NewDuration returns the Go duration form of d, e.g. "1m30s".
func NewDuration(d time.Duration) Value {
	return Value{raw: d.String()}
}

// FromJSON converts a decoded JSON value (as produced by encoding/json into
// an any) to its canonical form: strings are taken verbatim without quoting,
// null becomes "null", and every other shape is re-encoded as compact JSON.
func FromJSON(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{raw: "null"}
	case string:
		return Value{raw: x}
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Value{}
		}
		return Value{raw: string(b)}
	}
}

// String returns the canonical string form. It never fails.
func (v Value) String() string {
	return v.raw
}

// IsEmpty reports whether the canonical form is the empty string. Emptiness
// is a meaningful value: it is what the Elvis operator tests.
func (v Value) IsEmpty() bool {
	return v.raw == ""
}

// At returns a copy of v tagged with the given span, replacing any previous
// tag.
func (v Value) At(s Span) Value {
	v.span = &s
	return v
}

// Span returns the span v was tagged with, if any.
func (v Value) Span() (Span, bool) {
	if v.span == nil {
		return Span{}, false
	}
	return *v.span, true
}

// Equal reports whether two values have the same canonical form. Spans are
// ignored.
func (v Value) Equal(other Value) bool {
	return v.raw == other.raw
}

// AsBool converts to a boolean. Only the canonical forms "true" and "false"
// convert; anything else, including "1" or "True", is a conversion error.
func (v Value) AsBool() (bool, error) {
	switch v.raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, newConversionError(v, "bool", nil)
}

// AsFloat converts to a float64, accepting anything strconv.ParseFloat
// accepts.
func (v Value) AsFloat() (float64, error) {
	f, err := strconv.ParseFloat(v.raw, 64)
	if err != nil {
		return 0, newConversionError(v, "float64", err)
	}
	return f, nil
}

// AsInt converts to an int64. The form must be a plain base-10 integer;
// floats do not truncate.
func (v Value) AsInt() (int64, error) {
	i, err := strconv.ParseInt(v.raw, 10, 64)
	if err != nil {
		return 0, newConversionError(v, "int64", err)
	}
	return i, nil
}

// AsDuration converts using Go duration syntax, e.g. "150ms" or "1h30m".
func (v Value) AsDuration() (time.Duration, error) {
	d, err := time.ParseDuration(v.raw)
	if err != nil {
		return 0, newConversionError(v, "duration", err)
	}
	return d, nil
}

// AsJSON parses the value as a JSON document and returns the decoded form:
// nil, bool, float64, string, []any or map[string]any.
func (v Value) AsJSON() (any, error) {
	var out any
	if err := json.Unmarshal([]byte(v.raw), &out); err != nil {
		return nil, newConversionError(v, "json", err)
	}
	return out, nil
}
