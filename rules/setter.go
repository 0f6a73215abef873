package rules

import (
	"strings"

	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
)

// SetterRule renames the property a setter targets and translates its
// value through the same rename table the attribute pass uses. The
// owner scope comes from the enclosing style's selector.
type SetterRule struct {
	table *mapping.Table
}

func NewSetterRule(table *mapping.Table) *SetterRule {
	return &SetterRule{table: table}
}

func (r *SetterRule) Name() string { return "setter" }

func (r *SetterRule) Priority() int { return 55 }

func (r *SetterRule) MatchElement(el *dom.Element) bool {
	return el.Name == "Setter" && el.HasProperty("Property")
}

func (r *SetterRule) ApplyElement(_ *engine.Context, el *dom.Element) (engine.Result, error) {
	propName, ok := el.StringValue("Property")
	if !ok || propName == "" {
		return engine.Result{}, nil
	}

	ren, ok := r.table.Property(propName, setterAncestry(el))
	if !ok {
		return engine.Result{}, nil
	}

	changed := false

	if ren.Target != propName {
		el.SetString("Property", ren.Target)
		changed = true
	}

	if val, has := el.StringValue("Value"); has {
		if translated := ren.Translate(val); translated != val {
			el.SetString("Value", translated)
			changed = true
		}
	}

	if !changed {
		return engine.Result{}, nil
	}

	return engine.Result{Outcome: engine.Rewritten, Detail: propName + " -> " + ren.Target}, nil
}

// setterAncestry walks up to the enclosing style and derives the owner
// scope from its selector, falling back to the unscoped rename when
// there is none.
func setterAncestry(el *dom.Element) []string {
	for p := el.ParentElement(); p != nil; p = p.ParentElement() {
		if p.Name != "Style" {
			continue
		}

		if sel, ok := p.StringValue("Selector"); ok {
			if base := selectorBase(sel); base != "" {
				return []string{base}
			}
		}

		if name := targetTypeName(p.Property("TargetType")); name != "" {
			return []string{name}
		}

		return nil
	}

	return nil
}

// selectorBase strips pseudo-classes, attribute tests, style classes
// and name parts off a selector, leaving the leading type name.
func selectorBase(sel string) string {
	if i := strings.IndexAny(sel, ":[.#"); i >= 0 {
		return sel[:i]
	}

	return sel
}
