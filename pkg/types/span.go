package types

import "fmt"

// Span is a half-open range of byte offsets into the expression source,
// together with the id of the file (or buffer) the offsets refer to. Spans
// originate in whatever parser produced the tree; this package only threads
// them through for diagnostics, and they never participate in comparisons.
type Span struct {
	Start int
	End   int
	File  int
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
