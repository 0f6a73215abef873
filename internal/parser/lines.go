package parser

import (
	"sort"

	"xamlport/dom"
)

// lineIndex converts byte offsets into 1-based line and column
// positions.
type lineIndex struct {
	// starts holds the byte offset of each line's first byte.
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	idx := &lineIndex{starts: []int{0}}

	for i, b := range src {
		if b == '\n' {
			idx.starts = append(idx.starts, i+1)
		}
	}

	return idx
}

func (idx *lineIndex) locate(offset int64) dom.SourceLocation {
	off := int(offset)

	line := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > off
	})

	return dom.SourceLocation{
		Line:   line,
		Column: off - idx.starts[line-1] + 1,
	}
}
