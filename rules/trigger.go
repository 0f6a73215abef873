package rules

import (
	"fmt"

	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
)

// TriggerLiftRule converts property triggers into nested selector
// styles during the restructure pass. A recognized trigger yields a
// `<Style Selector="^...">` sibling carrying copies of its setters and
// is marked for the cleanup pass; everything else is reported and
// kept. Conditions with a known pseudo-class come from the mapping
// table, the rest fall back to an attribute test.
type TriggerLiftRule struct {
	table *mapping.Table
}

func NewTriggerLiftRule(table *mapping.Table) *TriggerLiftRule {
	return &TriggerLiftRule{table: table}
}

func (r *TriggerLiftRule) Name() string { return "trigger-lift" }

func (r *TriggerLiftRule) Priority() int { return 50 }

func (r *TriggerLiftRule) MatchContainer(el *dom.Element) bool {
	if el.Name == "Style.Triggers" {
		return true
	}

	if el.Name != "Style" {
		return false
	}

	prop := el.Property("Triggers")

	return prop != nil && prop.Value.Kind == dom.ValueElement
}

func (r *TriggerLiftRule) Restructure(ctx *engine.Context, el *dom.Element) (engine.Result, error) {
	if el.Name == "Style.Triggers" {
		return r.liftContainer(ctx, el)
	}

	return r.liftProperty(ctx, el)
}

// liftContainer converts the triggers of a multi-trigger wrapper. The
// nested styles are queued as siblings of the wrapper inside the
// enclosing style; the walk attaches them once it reaches the style.
func (r *TriggerLiftRule) liftContainer(ctx *engine.Context, wrapper *dom.Element) (engine.Result, error) {
	if wrapper.ParentElement() == nil {
		return engine.Result{}, nil
	}

	converted := 0

	for _, trigger := range wrapper.ChildElements() {
		nested, selector, ok := r.convert(ctx, trigger)
		if !ok {
			continue
		}

		ctx.InsertAfter(wrapper, nested)
		ctx.MarkConverted(trigger, selector)
		converted++
	}

	if converted == 0 {
		return engine.Result{}, nil
	}

	return engine.Result{Outcome: engine.Rewritten, Detail: fmt.Sprintf("%d trigger(s)", converted)}, nil
}

// liftProperty converts the single trigger a style carries in
// property-element form.
func (r *TriggerLiftRule) liftProperty(ctx *engine.Context, style *dom.Element) (engine.Result, error) {
	trigger := ctx.Doc().Element(style.Property("Triggers").Value.Child)
	if trigger == nil {
		return engine.Result{}, nil
	}

	nested, selector, ok := r.convert(ctx, trigger)
	if !ok {
		return engine.Result{}, nil
	}

	style.AppendChild(nested)
	ctx.MarkConverted(trigger, selector)

	return engine.Result{Outcome: engine.Rewritten, Detail: selector}, nil
}

// convert builds the nested style for one trigger. Only plain property
// triggers have a selector form.
func (r *TriggerLiftRule) convert(ctx *engine.Context, trigger *dom.Element) (*dom.Element, string, bool) {
	if trigger.Name != "Trigger" {
		ctx.ReportNode(trigger, dom.Diagnostic{
			Severity: dom.SeverityWarning,
			Code:     "unsupported-condition",
			Message:  fmt.Sprintf("%s has no selector form and was kept as-is", trigger.Name),
		})

		return nil, "", false
	}

	propName, ok := trigger.StringValue("Property")
	if !ok || propName == "" {
		ctx.ReportNode(trigger, dom.Diagnostic{
			Severity: dom.SeverityWarning,
			Code:     "unsupported-condition",
			Message:  "trigger without a property was kept as-is",
		})

		return nil, "", false
	}

	value, ok := trigger.StringValue("Value")
	if !ok {
		value = "True"
	}

	selector, ok := r.table.Selector(propName, value)
	if !ok {
		selector = fmt.Sprintf("[%s=%s]", propName, value)
	}

	selector = "^" + selector

	nested := ctx.Doc().NewElement("Style")
	nested.SetString("Selector", selector)

	for _, setter := range triggerSetters(ctx.Doc(), trigger) {
		nested.AppendChild(setter.Clone())
	}

	return nested, selector, true
}

// triggerSetters collects the trigger's setters across the three
// shapes they parse into: direct children, a Trigger.Setters wrapper,
// or a single property-element value.
func triggerSetters(doc *dom.Document, trigger *dom.Element) []*dom.Element {
	var out []*dom.Element

	for _, child := range trigger.ChildElements() {
		switch child.Name {
		case "Setter":
			out = append(out, child)
		case "Trigger.Setters":
			for _, setter := range child.ChildElements() {
				if setter.Name == "Setter" {
					out = append(out, setter)
				}
			}
		}
	}

	if prop := trigger.Property("Setters"); prop != nil && prop.Value.Kind == dom.ValueElement {
		if setter := doc.Element(prop.Value.Child); setter != nil && setter.Name == "Setter" {
			out = append(out, setter)
		}
	}

	return out
}

// TriggerCleanupRule removes what the lift pass converted: the marked
// triggers, emptied trigger wrappers, and the dangling Triggers
// property left behind on the style.
type TriggerCleanupRule struct{}

func NewTriggerCleanupRule() *TriggerCleanupRule {
	return &TriggerCleanupRule{}
}

func (r *TriggerCleanupRule) Name() string { return "trigger-cleanup" }

func (r *TriggerCleanupRule) Priority() int { return 50 }

func (r *TriggerCleanupRule) MatchCleanup(el *dom.Element) bool {
	switch el.Name {
	case "Trigger", "DataTrigger", "MultiTrigger", "EventTrigger":
		return true
	case "Style.Triggers":
		return true
	case "Style":
		return el.HasProperty("Triggers")
	}

	return false
}

func (r *TriggerCleanupRule) Cleanup(ctx *engine.Context, el *dom.Element) (engine.Result, error) {
	switch el.Name {
	case "Trigger", "DataTrigger", "MultiTrigger", "EventTrigger":
		if !ctx.Converted(el) {
			return engine.Result{}, nil
		}

		return engine.Result{Outcome: engine.Removed, Detail: el.Name}, nil

	case "Style.Triggers":
		// Children are cleaned before their parent; anything left is an
		// unconverted trigger that must stay readable.
		if len(el.ChildElements()) > 0 {
			return engine.Result{}, nil
		}

		return engine.Result{Outcome: engine.Removed, Detail: "emptied wrapper"}, nil

	case "Style":
		prop := el.Property("Triggers")
		if prop == nil || prop.Value != (dom.Value{}) {
			return engine.Result{}, nil
		}

		el.RemoveProperty("Triggers")

		return engine.Result{Outcome: engine.Rewritten, Detail: "dropped empty Triggers"}, nil
	}

	return engine.Result{}, nil
}
