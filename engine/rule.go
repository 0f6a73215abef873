package engine

import (
	"xamlport/dom"
	"xamlport/internal/common"
)

// Rule is the contract every transformation rule shares. The concrete
// behavior lives in the category interfaces below; a registered rule
// must implement at least one of them.
type Rule interface {
	// Name identifies the rule in statistics and diagnostics.
	Name() string
	// Priority orders rules within a category, higher first. Rules with
	// equal priority keep their registration order.
	Priority() int
}

// ElementRule rewrites whole elements.
type ElementRule interface {
	Rule
	MatchElement(el *dom.Element) bool
	ApplyElement(ctx *Context, el *dom.Element) (Result, error)
}

// PropertyRule rewrites individual properties. Apply may mutate the
// property through the pointer; after adding further properties to the
// element the pointer is stale and must not be written again.
type PropertyRule interface {
	Rule
	MatchProperty(el *dom.Element, prop *dom.Property) bool
	ApplyProperty(ctx *Context, el *dom.Element, prop *dom.Property) (Result, error)
}

// ExtensionRule rewrites markup-extension expressions. The dispatcher
// feeds it every extension of a property value, nested ones included,
// outermost first.
type ExtensionRule interface {
	Rule
	MatchExtension(el *dom.Element, prop *dom.Property, ext *dom.MarkupExtension) bool
	ApplyExtension(ctx *Context, el *dom.Element, prop *dom.Property, ext *dom.MarkupExtension) (Result, error)
}

// RestructureRule synthesizes replacement structure next to a matched
// container during the first restructuring pass. New siblings are
// queued through Context.InsertAfter and never visited by the pass
// that created them.
type RestructureRule interface {
	Rule
	MatchContainer(el *dom.Element) bool
	Restructure(ctx *Context, el *dom.Element) (Result, error)
}

// CleanupRule removes converted leftovers during the second
// restructuring pass.
type CleanupRule interface {
	Rule
	MatchCleanup(el *dom.Element) bool
	Cleanup(ctx *Context, el *dom.Element) (Result, error)
}

// TypedRule is an optional extra interface. A rule returning true is
// skipped entirely under the structural strategy and skipped per
// element for elements without resolved type information under the
// hybrid strategy.
type TypedRule interface {
	NeedsTypedView() bool
}

// Outcome says what a rule application did to its node.
type Outcome int

const (
	// Unchanged means the rule matched but decided not to touch the
	// node. Not counted in statistics.
	Unchanged Outcome = iota
	// Rewritten means the node was modified in place.
	Rewritten
	// Removed means the node was deleted. The dispatcher stops applying
	// further rules to it.
	Removed
	// Replaced means the node gave way to Result.Replacement, which
	// takes over its position and the remaining rule applications.
	Replaced
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Rewritten:
		return "rewritten"
	case Removed:
		return "removed"
	case Replaced:
		return "replaced"
	default:
		return common.UnknownStr
	}
}

// Result reports one rule application.
type Result struct {
	Outcome Outcome
	// Detail is a short human-readable note recorded in statistics, for
	// example "Visibility -> IsVisible".
	Detail string
	// Replacement carries the substitute element for Replaced.
	Replacement *dom.Element
}
