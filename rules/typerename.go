package rules

import (
	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
)

// TypeRenameRule renames element types that carry a different name in
// the target dialect.
type TypeRenameRule struct {
	table *mapping.Table
}

func NewTypeRenameRule(table *mapping.Table) *TypeRenameRule {
	return &TypeRenameRule{table: table}
}

func (r *TypeRenameRule) Name() string { return "rename-type" }

func (r *TypeRenameRule) Priority() int { return 90 }

func (r *TypeRenameRule) MatchElement(el *dom.Element) bool {
	if el.Prefix != "" {
		return false
	}

	_, ok := r.table.Type(el.Name)

	return ok
}

func (r *TypeRenameRule) ApplyElement(_ *engine.Context, el *dom.Element) (engine.Result, error) {
	target, _ := r.table.Type(el.Name)
	detail := el.Name + " -> " + target
	el.Name = target

	return engine.Result{Outcome: engine.Rewritten, Detail: detail}, nil
}
