package engine

import (
	"fmt"

	"xamlport/dom"
	"xamlport/options"
)

// dispatcher walks the tree in pre-order and applies every matching
// rule per node. Child lists are snapshotted right before descent, so
// rules may restructure the tree without upsetting the walk; elements
// attached during an iteration are not visited by it.
type dispatcher struct {
	reg  *Registry
	mode options.Mode
}

func (d *dispatcher) run(ctx *Context) error {
	root := ctx.Doc().Root()
	if root == nil {
		return nil
	}

	return d.visit(ctx, root)
}

func (d *dispatcher) visit(ctx *Context, el *dom.Element) error {
	el, removed, err := d.applyElementRules(ctx, el)
	if err != nil || removed {
		return err
	}

	if err := d.applyPropertyRules(ctx, el); err != nil {
		return err
	}

	if err := d.applyExtensionRules(ctx, el); err != nil {
		return err
	}

	for _, child := range el.PropertyElements() {
		if child.Parent != el.ID() {
			continue
		}

		if err := d.visit(ctx, child); err != nil {
			return err
		}
	}

	for _, child := range el.ChildElements() {
		if child.Parent != el.ID() {
			continue
		}

		if err := d.visit(ctx, child); err != nil {
			return err
		}
	}

	return nil
}

// skip says whether the strategy mode keeps a rule away from this
// element.
func (d *dispatcher) skip(rule Rule, el *dom.Element) bool {
	if !needsTypes(rule) {
		return false
	}

	switch d.mode {
	case options.ModeStructural:
		return true
	case options.ModeTyped:
		return false
	default:
		return el.Type == nil
	}
}

// applyElementRules runs the element bucket. A removal stops the
// node's processing; a replacement hands the position, and the
// remaining rules, to the substitute.
func (d *dispatcher) applyElementRules(ctx *Context, el *dom.Element) (*dom.Element, bool, error) {
	for _, entry := range d.reg.elements {
		rule := entry.rule
		if d.skip(rule, el) || !rule.MatchElement(el) {
			continue
		}

		res, err := rule.ApplyElement(ctx, el)
		if err != nil {
			return el, false, fmt.Errorf("rule %q: %w", rule.Name(), err)
		}

		switch res.Outcome {
		case Rewritten:
			ctx.stats.record(rule.Name(), dom.KindElement, res.Detail)

		case Removed:
			ctx.stats.record(rule.Name(), dom.KindElement, res.Detail)
			el.Detach()

			return el, true, nil

		case Replaced:
			if res.Replacement == nil {
				return el, false, fmt.Errorf("rule %q: replaced without a replacement", rule.Name())
			}

			ctx.stats.record(rule.Name(), dom.KindElement, res.Detail)
			d.substitute(ctx, el, res.Replacement)
			el = res.Replacement
		}
	}

	return el, false, nil
}

// substitute puts rep into old's position: document root, property
// value, or child slot.
func (d *dispatcher) substitute(ctx *Context, old, rep *dom.Element) {
	doc := ctx.Doc()

	parent := old.ParentElement()
	if parent == nil {
		rep.Detach()
		doc.SetRoot(rep)

		return
	}

	for i := range parent.Properties {
		if parent.Properties[i].Value.Kind != dom.ValueElement {
			continue
		}

		if parent.Properties[i].Value.Child == old.ID() {
			rep.Detach()
			parent.Properties[i].Value.Child = rep.ID()
			rep.Parent = parent.ID()
			old.Parent = dom.NoNode

			return
		}
	}

	parent.InsertChildAfter(old, rep)
	parent.RemoveChild(old)
}

func (d *dispatcher) applyPropertyRules(ctx *Context, el *dom.Element) error {
	doc := ctx.Doc()

propLoop:
	for i := 0; i < len(el.Properties); i++ {
		for _, entry := range d.reg.properties {
			rule := entry.rule
			if d.skip(rule, el) {
				continue
			}

			prop := &el.Properties[i]
			if !rule.MatchProperty(el, prop) {
				continue
			}

			res, err := rule.ApplyProperty(ctx, el, prop)
			if err != nil {
				return fmt.Errorf("rule %q: %w", rule.Name(), err)
			}

			switch res.Outcome {
			case Rewritten:
				ctx.stats.record(rule.Name(), dom.KindProperty, res.Detail)

			case Removed:
				ctx.stats.record(rule.Name(), dom.KindProperty, res.Detail)

				if el.Properties[i].Value.Kind == dom.ValueElement {
					if child := doc.Element(el.Properties[i].Value.Child); child != nil {
						child.Parent = dom.NoNode
					}
				}

				el.Properties = append(el.Properties[:i], el.Properties[i+1:]...)
				i--

				continue propLoop

			case Replaced:
				return fmt.Errorf("rule %q: properties cannot be replaced, rewrite the value instead", rule.Name())
			}
		}
	}

	return nil
}

func (d *dispatcher) applyExtensionRules(ctx *Context, el *dom.Element) error {
extLoop:
	for i := 0; i < len(el.Properties); i++ {
		if !el.Properties[i].Value.IsExtension() {
			continue
		}

		// Snapshot the expression tree up front; rules may rewrite the
		// property value under us.
		var nested []*dom.MarkupExtension

		el.Properties[i].Value.Ext.Nested(func(m *dom.MarkupExtension) {
			nested = append(nested, m)
		})

		for _, ext := range nested {
			for _, entry := range d.reg.extensions {
				rule := entry.rule
				if d.skip(rule, el) {
					continue
				}

				prop := &el.Properties[i]
				if !rule.MatchExtension(el, prop, ext) {
					continue
				}

				res, err := rule.ApplyExtension(ctx, el, prop, ext)
				if err != nil {
					return fmt.Errorf("rule %q: %w", rule.Name(), err)
				}

				switch res.Outcome {
				case Rewritten:
					ctx.stats.record(rule.Name(), dom.KindExtension, res.Detail)

				case Removed:
					ctx.stats.record(rule.Name(), dom.KindExtension, res.Detail)

					el.Properties = append(el.Properties[:i], el.Properties[i+1:]...)
					i--

					continue extLoop

				case Replaced:
					return fmt.Errorf("rule %q: extensions cannot be replaced, rewrite the arguments instead", rule.Name())
				}
			}
		}
	}

	return nil
}
