package rules

import (
	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
)

// BindingElementNameRule folds ElementName binding sources into the
// target dialect's #name path form.
type BindingElementNameRule struct{}

func NewBindingElementNameRule() *BindingElementNameRule {
	return &BindingElementNameRule{}
}

func (r *BindingElementNameRule) Name() string { return "binding-element-name" }

func (r *BindingElementNameRule) Priority() int { return 50 }

func (r *BindingElementNameRule) MatchExtension(_ *dom.Element, _ *dom.Property, ext *dom.MarkupExtension) bool {
	return ext.Name == "Binding" && ext.Arg("ElementName") != nil
}

func (r *BindingElementNameRule) ApplyExtension(_ *engine.Context, _ *dom.Element, _ *dom.Property, ext *dom.MarkupExtension) (engine.Result, error) {
	name := ext.Arg("ElementName").Text
	if name == "" {
		return engine.Result{}, nil
	}

	path := foldPath(ext, "#"+name)
	setFirstPositional(ext, path)
	ext.RemoveArg("ElementName")

	return engine.Result{Outcome: engine.Rewritten, Detail: path}, nil
}

// BindingRelativeSourceRule rewrites RelativeSource bindings: Self
// becomes $self, FindAncestor becomes $parent[Type], and
// TemplatedParent becomes a TemplateBinding.
type BindingRelativeSourceRule struct {
	table *mapping.Table
}

func NewBindingRelativeSourceRule(table *mapping.Table) *BindingRelativeSourceRule {
	return &BindingRelativeSourceRule{table: table}
}

func (r *BindingRelativeSourceRule) Name() string { return "binding-relative-source" }

func (r *BindingRelativeSourceRule) Priority() int { return 50 }

func (r *BindingRelativeSourceRule) MatchExtension(_ *dom.Element, _ *dom.Property, ext *dom.MarkupExtension) bool {
	return ext.Name == "Binding" && ext.Arg("RelativeSource") != nil
}

func (r *BindingRelativeSourceRule) ApplyExtension(ctx *engine.Context, el *dom.Element, _ *dom.Property, ext *dom.MarkupExtension) (engine.Result, error) {
	rs := ext.Arg("RelativeSource").Ext
	if rs == nil {
		return engine.Result{}, nil
	}

	mode := rs.FirstPositional()
	if arg := rs.Arg("Mode"); arg != nil {
		mode = arg.Text
	}

	switch mode {
	case "Self":
		r.rewritePath(ext, "$self")

		return engine.Result{Outcome: engine.Rewritten, Detail: "$self"}, nil

	case "TemplatedParent":
		ext.Name = "TemplateBinding"
		ext.RemoveArg("RelativeSource")

		return engine.Result{Outcome: engine.Rewritten, Detail: "TemplateBinding"}, nil

	case "FindAncestor":
		t := ancestorTypeName(rs)
		if t == "" {
			ctx.ReportNode(el, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "unsupported-binding",
				Message:  "FindAncestor binding without an ancestor type",
			})

			return engine.Result{}, nil
		}

		if renamed, ok := r.table.Type(t); ok {
			t = renamed
		}

		if rs.Arg("AncestorLevel") != nil {
			ctx.ReportNode(el, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "unsupported-binding",
				Message:  "AncestorLevel has no selector form and was dropped",
			})
		}

		source := "$parent[" + t + "]"
		r.rewritePath(ext, source)

		return engine.Result{Outcome: engine.Rewritten, Detail: source}, nil
	}

	return engine.Result{}, nil
}

func (r *BindingRelativeSourceRule) rewritePath(ext *dom.MarkupExtension, source string) {
	setFirstPositional(ext, foldPath(ext, source))
	ext.RemoveArg("RelativeSource")
}

// foldPath joins the binding's path, positional or the named Path
// argument, onto a source prefix. A consumed Path argument is removed.
func foldPath(ext *dom.MarkupExtension, source string) string {
	if p := ext.FirstPositional(); p != "" {
		return source + "." + p
	}

	if arg := ext.Arg("Path"); arg != nil && arg.Text != "" {
		path := source + "." + arg.Text
		ext.RemoveArg("Path")

		return path
	}

	return source
}

// ancestorTypeName unwraps AncestorType={x:Type T} or AncestorType=T.
func ancestorTypeName(rs *dom.MarkupExtension) string {
	arg := rs.Arg("AncestorType")
	if arg == nil {
		return ""
	}

	if arg.Ext != nil {
		return arg.Ext.FirstPositional()
	}

	return arg.Text
}

// setFirstPositional replaces the first positional argument or, when
// the expression has none, prepends one.
func setFirstPositional(ext *dom.MarkupExtension, text string) {
	for i := range ext.Args {
		if ext.Args[i].Name == "" && ext.Args[i].Ext == nil {
			ext.Args[i].Text = text
			return
		}
	}

	ext.Args = append([]dom.ExtArg{{Text: text}}, ext.Args...)
}
