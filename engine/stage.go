package engine

import (
	"errors"

	"xamlport/dom"
	"xamlport/options"
)

// ErrMissingLayer reports a document that never went through the
// parser and so carries no structural layer.
var ErrMissingLayer = errors.New("document carries no structural layer")

// ErrTypedViewUnavailable reports a typed-strategy stage run against a
// document whose type layer was never resolved.
var ErrTypedViewUnavailable = errors.New("typed strategy requires the resolved type layer")

// Stage is one step of a pipeline. Stages run in order against a
// shared context; a returned error aborts the pipeline without rolling
// anything back.
type Stage interface {
	Name() string
	Run(ctx *Context) error
}

// StageFunc adapts a plain function into a Stage.
type StageFunc struct {
	Label string
	Fn    func(*Context) error
}

// Name returns the stage label.
func (s StageFunc) Name() string {
	return s.Label
}

// Run calls the wrapped function.
func (s StageFunc) Run(ctx *Context) error {
	return s.Fn(ctx)
}

// DispatchStage runs the rule dispatch walk under a strategy mode.
type DispatchStage struct {
	name string
	reg  *Registry
	mode options.Mode
}

// NewDispatchStage builds a dispatch stage over a registry.
func NewDispatchStage(name string, reg *Registry, mode options.Mode) *DispatchStage {
	return &DispatchStage{name: name, reg: reg, mode: mode}
}

// Name returns the stage name.
func (s *DispatchStage) Name() string {
	return s.name
}

// Run validates the required layers, dispatches the rules, and audits
// the result.
func (s *DispatchStage) Run(ctx *Context) error {
	ctx.setMode(s.mode)

	if err := checkLayers(ctx, s.mode); err != nil {
		return err
	}

	d := &dispatcher{reg: s.reg, mode: s.mode}
	if err := d.run(ctx); err != nil {
		return err
	}

	auditOutput(ctx, s.mode)

	return nil
}

// RestructureStage runs the two-pass post-order restructuring walk.
type RestructureStage struct {
	name string
	reg  *Registry
	mode options.Mode
}

// NewRestructureStage builds a restructuring stage over a registry.
func NewRestructureStage(name string, reg *Registry, mode options.Mode) *RestructureStage {
	return &RestructureStage{name: name, reg: reg, mode: mode}
}

// Name returns the stage name.
func (s *RestructureStage) Name() string {
	return s.name
}

// Run validates the required layers, restructures, cleans up, and
// audits the result.
func (s *RestructureStage) Run(ctx *Context) error {
	ctx.setMode(s.mode)

	if err := checkLayers(ctx, s.mode); err != nil {
		return err
	}

	r := &restructurer{reg: s.reg, mode: s.mode}
	if err := r.run(ctx); err != nil {
		return err
	}

	auditOutput(ctx, s.mode)

	return nil
}

// checkLayers enforces each strategy's layer requirements. A missing
// required layer is fatal for the stage; the hybrid strategy only
// warns about a missing typed layer and falls back to structural
// rewriting.
func checkLayers(ctx *Context, mode options.Mode) error {
	doc := ctx.Doc()

	if !doc.HasLayer(dom.LayerStructural) {
		ctx.Report(dom.Diagnostic{
			Severity: dom.SeverityError,
			Code:     "layer-missing",
			Message:  ErrMissingLayer.Error(),
		})

		return ErrMissingLayer
	}

	if !doc.HasLayer(dom.LayerTyped) && mode.UsesTypes() {
		if mode == options.ModeTyped {
			ctx.Report(dom.Diagnostic{
				Severity: dom.SeverityError,
				Code:     "layer-missing",
				Message:  ErrTypedViewUnavailable.Error(),
			})

			return ErrTypedViewUnavailable
		}

		ctx.Report(dom.Diagnostic{
			Severity: dom.SeverityWarning,
			Code:     "layer-missing",
			Message:  "typed layer not resolved; falling back to structural rewriting",
		})
	}

	return nil
}

// auditOutput sweeps the tree after a type-aware stage. Elements
// without a type name cannot serialize to a tag and elements without a
// source anchor cannot be traced back, so both are flagged.
func auditOutput(ctx *Context, mode options.Mode) {
	if !mode.UsesTypes() {
		return
	}

	ctx.Doc().Elements(func(el *dom.Element) bool {
		if el.Name == "" {
			ctx.ReportNode(el, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "missing-type-name",
				Message:  "element has no type name",
			})
		}

		if mode == options.ModeTyped && el.Loc.IsZero() {
			ctx.ReportNode(el, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "missing-structural-anchor",
				Message:  "element carries no source position",
			})
		}

		return true
	})
}
