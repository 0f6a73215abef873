package rules

import (
	"strings"

	"xamlport/dom"
	"xamlport/engine"
)

const packPrefix = "pack://application:,,,"

// PackUriRule rewrites pack resource addresses to the avares scheme.
// Component-qualified addresses keep their assembly; same-assembly
// addresses become root-relative paths.
type PackUriRule struct{}

func NewPackUriRule() *PackUriRule {
	return &PackUriRule{}
}

func (r *PackUriRule) Name() string { return "pack-uri" }

func (r *PackUriRule) Priority() int { return 60 }

func (r *PackUriRule) MatchProperty(_ *dom.Element, prop *dom.Property) bool {
	return prop.Value.Kind == dom.ValueString && strings.HasPrefix(prop.Value.Text, packPrefix)
}

func (r *PackUriRule) ApplyProperty(_ *engine.Context, _ *dom.Element, prop *dom.Property) (engine.Result, error) {
	rewritten, ok := rewritePackURI(prop.Value.Text)
	if !ok {
		return engine.Result{}, nil
	}

	prop.Value.Text = rewritten

	return engine.Result{Outcome: engine.Rewritten, Detail: prop.Name}, nil
}

func (r *PackUriRule) MatchExtension(_ *dom.Element, _ *dom.Property, ext *dom.MarkupExtension) bool {
	for i := range ext.Args {
		if strings.HasPrefix(ext.Args[i].Text, packPrefix) {
			return true
		}
	}

	return false
}

func (r *PackUriRule) ApplyExtension(_ *engine.Context, _ *dom.Element, _ *dom.Property, ext *dom.MarkupExtension) (engine.Result, error) {
	changed := 0

	for i := range ext.Args {
		rewritten, ok := rewritePackURI(ext.Args[i].Text)
		if !ok {
			continue
		}

		ext.Args[i].Text = rewritten
		changed++
	}

	if changed == 0 {
		return engine.Result{}, nil
	}

	return engine.Result{Outcome: engine.Rewritten, Detail: ext.Name}, nil
}

func rewritePackURI(s string) (string, bool) {
	rest, ok := strings.CutPrefix(s, packPrefix)
	if !ok {
		return "", false
	}

	trimmed := strings.TrimPrefix(rest, "/")
	if asm, path, found := strings.Cut(trimmed, ";component"); found {
		return "avares://" + asm + path, true
	}

	return rest, true
}
