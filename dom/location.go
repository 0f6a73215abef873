package dom

import "fmt"

// SourceLocation is a 1-based line and column position in the source
// file. The zero value means the node was synthesized during the run
// and has no source anchor.
type SourceLocation struct {
	Line   int
	Column int
}

// IsZero reports whether the location carries no source anchor.
func (l SourceLocation) IsZero() bool {
	return l.Line == 0 && l.Column == 0
}

// String renders "line:column", or "-" for synthesized nodes.
func (l SourceLocation) String() string {
	if l.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}
