package rules

import (
	"strings"

	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
)

// NamespaceRule rewrites namespace declarations and the resolved
// namespace of every element. Root declarations live on the document;
// nested declarations ride along as xmlns attributes. Assembly-scoped
// clr-namespace addresses become using addresses.
type NamespaceRule struct {
	table *mapping.Table
}

func NewNamespaceRule(table *mapping.Table) *NamespaceRule {
	return &NamespaceRule{table: table}
}

func (r *NamespaceRule) Name() string { return "namespace" }

func (r *NamespaceRule) Priority() int { return 100 }

func (r *NamespaceRule) MatchElement(el *dom.Element) bool {
	if el.ParentElement() == nil {
		return true
	}

	_, ok := r.translate(el.Namespace)

	return ok
}

func (r *NamespaceRule) ApplyElement(ctx *engine.Context, el *dom.Element) (engine.Result, error) {
	var detail string

	changed := 0

	if el.ParentElement() == nil {
		doc := ctx.Doc()
		for prefix, uri := range doc.Namespaces {
			target, ok := r.translate(uri)
			if !ok {
				continue
			}

			doc.Namespaces[prefix] = target
			detail = uri + " -> " + target
			changed++
		}
	}

	if target, ok := r.translate(el.Namespace); ok {
		el.Namespace = target
		changed++
	}

	if changed == 0 {
		return engine.Result{}, nil
	}

	return engine.Result{Outcome: engine.Rewritten, Detail: detail}, nil
}

func (r *NamespaceRule) MatchProperty(_ *dom.Element, prop *dom.Property) bool {
	if prop.Value.Kind != dom.ValueString {
		return false
	}

	if prop.Name != "xmlns" && !strings.HasPrefix(prop.Name, "xmlns:") {
		return false
	}

	_, ok := r.translate(prop.Value.Text)

	return ok
}

func (r *NamespaceRule) ApplyProperty(_ *engine.Context, _ *dom.Element, prop *dom.Property) (engine.Result, error) {
	target, _ := r.translate(prop.Value.Text)
	detail := prop.Value.Text + " -> " + target
	prop.Value.Text = target

	return engine.Result{Outcome: engine.Rewritten, Detail: detail}, nil
}

func (r *NamespaceRule) translate(uri string) (string, bool) {
	if uri == "" {
		return "", false
	}

	if target, ok := r.table.Namespace(uri); ok {
		return target, true
	}

	if rest, ok := strings.CutPrefix(uri, "clr-namespace:"); ok {
		ns, _, _ := strings.Cut(rest, ";")
		return "using:" + ns, true
	}

	return "", false
}
