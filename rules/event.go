package rules

import (
	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
)

// EventRenameRule renames event handler attributes to the target
// dialect's pointer-event model. It asks for the typed view: without
// type information an event name on an arbitrary element cannot be
// told apart from a plain property.
type EventRenameRule struct {
	table *mapping.Table
}

func NewEventRenameRule(table *mapping.Table) *EventRenameRule {
	return &EventRenameRule{table: table}
}

func (r *EventRenameRule) Name() string { return "rename-event" }

func (r *EventRenameRule) Priority() int { return 65 }

func (r *EventRenameRule) NeedsTypedView() bool { return true }

func (r *EventRenameRule) MatchProperty(_ *dom.Element, prop *dom.Property) bool {
	if prop.Value.Kind != dom.ValueString {
		return false
	}

	_, ok := r.table.Event(prop.Name)

	return ok
}

func (r *EventRenameRule) ApplyProperty(_ *engine.Context, el *dom.Element, prop *dom.Property) (engine.Result, error) {
	if el.Type != nil {
		if m, ok := el.Type.Member(prop.Name); ok && m.Kind != dom.MemberEvent {
			return engine.Result{}, nil
		}
	}

	target, _ := r.table.Event(prop.Name)
	detail := prop.Name + " -> " + target
	prop.Name = target

	return engine.Result{Outcome: engine.Rewritten, Detail: detail}, nil
}
