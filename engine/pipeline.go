package engine

import (
	"fmt"

	"xamlport/dom"
)

// Pipeline runs stages in order against one context. Stage effects are
// kept even when a later stage fails; there is no rollback.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds a pipeline from the given stages.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes the stages in order, sweeping the tree's link
// invariants after each one. A stage error aborts the remaining
// stages. Integrity problems are reported as diagnostics, not returned
// as errors.
func (p *Pipeline) Run(ctx *Context) error {
	for _, stage := range p.stages {
		if err := stage.Run(ctx); err != nil {
			return fmt.Errorf("stage %q: %w", stage.Name(), err)
		}

		validateTree(ctx)
	}

	// A stageless run still gets one sweep.
	if len(p.stages) == 0 {
		validateTree(ctx)
	}

	for _, ins := range ctx.inserts {
		ctx.Report(dom.Diagnostic{
			Severity: dom.SeverityWarning,
			Code:     "orphaned-insert",
			Message:  fmt.Sprintf("queued sibling %q was never attached", ins.el.Name),
		})
	}

	return nil
}

// validateTree checks the link invariants of the finished tree. A
// cycle is an error and aborts that subtree; mismatched or dangling
// links are warnings.
func validateTree(ctx *Context) {
	doc := ctx.Doc()

	root := doc.Root()
	if root == nil {
		ctx.Report(dom.Diagnostic{
			Severity: dom.SeverityWarning,
			Code:     "missing-root",
			Message:  "document has no root element",
		})

		return
	}

	v := &treeValidator{ctx: ctx, onStack: make([]bool, doc.Len())}
	v.visit(root)
}

type treeValidator struct {
	ctx     *Context
	onStack []bool
}

func (v *treeValidator) visit(el *dom.Element) {
	if v.onStack[el.ID()] {
		v.ctx.ReportNode(el, dom.Diagnostic{
			Severity: dom.SeverityError,
			Code:     "link-cycle",
			Message:  fmt.Sprintf("element %q links back to an ancestor", el.Name),
		})

		return
	}

	v.onStack[el.ID()] = true
	defer func() { v.onStack[el.ID()] = false }()

	doc := v.ctx.Doc()

	for i := range el.Properties {
		prop := &el.Properties[i]

		if prop.Owner != el.ID() {
			v.ctx.ReportNode(el, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "owner-mismatch",
				Message:  fmt.Sprintf("property %q does not point back at its element", prop.Name),
			})
		}

		if prop.Value.Kind != dom.ValueElement {
			continue
		}

		child := doc.Element(prop.Value.Child)
		if child == nil {
			v.ctx.ReportNode(el, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "dangling-link",
				Message:  fmt.Sprintf("property %q links to a missing node", prop.Name),
			})

			continue
		}

		if child.Parent != el.ID() {
			v.ctx.ReportNode(child, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "parent-mismatch",
				Message:  fmt.Sprintf("element %q does not point back at its parent", child.Name),
			})
		}

		v.visit(child)
	}

	for _, id := range el.Children {
		child := doc.Element(id)
		if child == nil {
			v.ctx.ReportNode(el, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "dangling-link",
				Message:  fmt.Sprintf("element %q lists a missing child", el.Name),
			})

			continue
		}

		if child.Parent != el.ID() {
			v.ctx.ReportNode(child, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "parent-mismatch",
				Message:  fmt.Sprintf("element %q does not point back at its parent", child.Name),
			})
		}

		v.visit(child)
	}
}
