package engine

import (
	"fmt"
	"sort"
	"strings"

	"xamlport/dom"
)

// Stats accumulates what the rules did during one run.
type Stats struct {
	// ByRule counts effective applications (anything but Unchanged) per
	// rule name.
	ByRule map[string]int
	// ByKind counts effective applications per node category.
	ByKind map[dom.NodeKind]int
	// Records lists every effective application in order.
	Records []Record
}

// Record is one effective rule application.
type Record struct {
	Rule   string
	Kind   dom.NodeKind
	Detail string
}

// NewStats returns an empty statistics accumulator.
func NewStats() *Stats {
	return &Stats{
		ByRule: map[string]int{},
		ByKind: map[dom.NodeKind]int{},
	}
}

func (s *Stats) record(rule string, kind dom.NodeKind, detail string) {
	s.ByRule[rule]++
	s.ByKind[kind]++
	s.Records = append(s.Records, Record{Rule: rule, Kind: kind, Detail: detail})
}

// Total returns the number of effective applications.
func (s *Stats) Total() int {
	return len(s.Records)
}

// Summary renders a stable one-line-per-rule report, rules sorted by
// count descending, ties by name.
func (s *Stats) Summary() string {
	if s.Total() == 0 {
		return "no rules applied"
	}

	names := make([]string, 0, len(s.ByRule))
	for name := range s.ByRule {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if s.ByRule[names[i]] != s.ByRule[names[j]] {
			return s.ByRule[names[i]] > s.ByRule[names[j]]
		}

		return names[i] < names[j]
	})

	var b strings.Builder

	fmt.Fprintf(&b, "%d changes", s.Total())

	for _, name := range names {
		fmt.Fprintf(&b, "\n  %-24s %d", name, s.ByRule[name])
	}

	return b.String()
}
