package rules

import (
	"strings"

	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
)

// PropertyRenameRule renames properties and translates enumerated
// string values through the mapping table. Owner-scoped renames use the
// resolved ancestor chain when the element carries type information and
// fall back to the literal element name otherwise.
type PropertyRenameRule struct {
	table *mapping.Table
}

func NewPropertyRenameRule(table *mapping.Table) *PropertyRenameRule {
	return &PropertyRenameRule{table: table}
}

func (r *PropertyRenameRule) Name() string { return "rename-property" }

func (r *PropertyRenameRule) Priority() int { return 70 }

func (r *PropertyRenameRule) MatchProperty(el *dom.Element, prop *dom.Property) bool {
	if strings.Contains(prop.Name, ":") || strings.HasPrefix(prop.Name, "xmlns") {
		return false
	}

	_, ok := r.table.Property(prop.Name, ancestry(el))

	return ok
}

func (r *PropertyRenameRule) ApplyProperty(_ *engine.Context, el *dom.Element, prop *dom.Property) (engine.Result, error) {
	ren, _ := r.table.Property(prop.Name, ancestry(el))
	detail := prop.Name + " -> " + ren.Target
	prop.Name = ren.Target

	if prop.Value.Kind == dom.ValueString {
		prop.Value.Text = ren.Translate(prop.Value.Text)
	}

	return engine.Result{Outcome: engine.Rewritten, Detail: detail}, nil
}

// ancestry lists the owner names a scoped rename may bind to, most
// derived first.
func ancestry(el *dom.Element) []string {
	if el.Type != nil {
		return el.Type.AncestorNames()
	}

	if el.Prefix == "" && el.Name != "" {
		return []string{el.Name}
	}

	return nil
}
