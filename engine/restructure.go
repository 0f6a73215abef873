package engine

import (
	"fmt"

	"xamlport/dom"
	"xamlport/options"
)

// restructurer walks the tree in strict post-order, property-value
// elements included, and runs two ordered passes: the restructure pass
// synthesizes replacement structure next to the originals, the cleanup
// pass removes what has been marked converted. Anything synthesized in
// the first pass therefore exists before its source is deleted, and a
// pass never visits the siblings it creates.
type restructurer struct {
	reg  *Registry
	mode options.Mode
}

func (r *restructurer) run(ctx *Context) error {
	root := ctx.Doc().Root()
	if root == nil {
		return nil
	}

	err := r.visit(ctx, root, r.applyRestructure)
	if err != nil {
		return err
	}

	return r.visit(ctx, root, r.applyCleanup)
}

// visit recurses children first, flushes the sibling inserts queued
// beneath the element, and only then applies the pass to the element
// itself.
func (r *restructurer) visit(ctx *Context, el *dom.Element, apply func(*Context, *dom.Element) error) error {
	for _, child := range el.PropertyElements() {
		if child.Parent != el.ID() {
			continue
		}

		if err := r.visit(ctx, child, apply); err != nil {
			return err
		}
	}

	for _, child := range el.ChildElements() {
		if child.Parent != el.ID() {
			continue
		}

		if err := r.visit(ctx, child, apply); err != nil {
			return err
		}
	}

	ctx.flushInserts(el)

	return apply(ctx, el)
}

func (r *restructurer) applyRestructure(ctx *Context, el *dom.Element) error {
	for _, entry := range r.reg.restructures {
		rule := entry.rule
		if r.skip(rule, el) || !rule.MatchContainer(el) {
			continue
		}

		res, err := rule.Restructure(ctx, el)
		if err != nil {
			return fmt.Errorf("rule %q: %w", rule.Name(), err)
		}

		if res.Outcome != Unchanged {
			ctx.stats.record(rule.Name(), dom.KindElement, res.Detail)
		}
	}

	return nil
}

func (r *restructurer) applyCleanup(ctx *Context, el *dom.Element) error {
	for _, entry := range r.reg.cleanups {
		rule := entry.rule
		if r.skip(rule, el) || !rule.MatchCleanup(el) {
			continue
		}

		res, err := rule.Cleanup(ctx, el)
		if err != nil {
			return fmt.Errorf("rule %q: %w", rule.Name(), err)
		}

		switch res.Outcome {
		case Removed:
			ctx.stats.record(rule.Name(), dom.KindElement, res.Detail)
			el.Detach()

			return nil

		case Rewritten:
			ctx.stats.record(rule.Name(), dom.KindElement, res.Detail)
		}
	}

	return nil
}

func (r *restructurer) skip(rule Rule, el *dom.Element) bool {
	if !needsTypes(rule) {
		return false
	}

	switch r.mode {
	case options.ModeStructural:
		return true
	case options.ModeTyped:
		return false
	default:
		return el.Type == nil
	}
}
