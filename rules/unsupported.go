package rules

import (
	"fmt"

	"xamlport/dom"
	"xamlport/engine"
)

// unsupportedElements lists source-dialect controls with no target
// counterpart.
var unsupportedElements = map[string]struct{}{
	"InkCanvas":                {},
	"RichTextBox":              {},
	"FlowDocument":             {},
	"FlowDocumentReader":       {},
	"FlowDocumentScrollViewer": {},
	"FlowDocumentPageViewer":   {},
	"DocumentViewer":           {},
	"MediaElement":             {},
	"WebBrowser":               {},
	"NavigationWindow":         {},
	"Frame":                    {},
	"Viewport3D":               {},
}

// UnsupportedElementRule flags elements that cannot be converted. The
// nodes are kept; the report is the product.
type UnsupportedElementRule struct{}

func NewUnsupportedElementRule() *UnsupportedElementRule {
	return &UnsupportedElementRule{}
}

func (r *UnsupportedElementRule) Name() string { return "unsupported-element" }

func (r *UnsupportedElementRule) Priority() int { return 10 }

func (r *UnsupportedElementRule) MatchElement(el *dom.Element) bool {
	if el.Prefix != "" {
		return false
	}

	_, ok := unsupportedElements[el.Name]

	return ok
}

func (r *UnsupportedElementRule) ApplyElement(ctx *engine.Context, el *dom.Element) (engine.Result, error) {
	ctx.ReportNode(el, dom.Diagnostic{
		Severity: dom.SeverityWarning,
		Code:     "unsupported-element",
		Message:  fmt.Sprintf("%s has no counterpart in the target dialect", el.Name),
	})

	return engine.Result{}, nil
}
