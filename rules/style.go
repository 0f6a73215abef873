package rules

import (
	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
)

// StyleSelectorRule converts TargetType styles into selector styles,
// renaming the target type on the way.
type StyleSelectorRule struct {
	table *mapping.Table
}

func NewStyleSelectorRule(table *mapping.Table) *StyleSelectorRule {
	return &StyleSelectorRule{table: table}
}

func (r *StyleSelectorRule) Name() string { return "style-selector" }

func (r *StyleSelectorRule) Priority() int { return 80 }

func (r *StyleSelectorRule) MatchElement(el *dom.Element) bool {
	return el.Name == "Style" && el.HasProperty("TargetType")
}

func (r *StyleSelectorRule) ApplyElement(_ *engine.Context, el *dom.Element) (engine.Result, error) {
	name := targetTypeName(el.Property("TargetType"))
	if name == "" {
		return engine.Result{}, nil
	}

	if renamed, ok := r.table.Type(name); ok {
		name = renamed
	}

	el.RemoveProperty("TargetType")
	el.SetString("Selector", name)

	return engine.Result{Outcome: engine.Rewritten, Detail: "TargetType -> Selector " + name}, nil
}

// targetTypeName unwraps the two ways a target type is written: a bare
// type name or an {x:Type ...} expression.
func targetTypeName(prop *dom.Property) string {
	if prop == nil {
		return ""
	}

	switch prop.Value.Kind {
	case dom.ValueString:
		return prop.Value.Text
	case dom.ValueExtension:
		if prop.Value.Ext != nil && prop.Value.Ext.Name == "x:Type" {
			return prop.Value.Ext.FirstPositional()
		}
	}

	return ""
}
