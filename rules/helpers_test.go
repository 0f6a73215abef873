package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
	"xamlport/options"
)

const (
	wpfNS      = "http://schemas.microsoft.com/winfx/2006/xaml/presentation"
	avaloniaNS = "https://github.com/avaloniaui"
	xamlNS     = "http://schemas.microsoft.com/winfx/2006/xaml"
)

// runRules drives both transformation stages over the stock rule set,
// the way the converter wires them.
func runRules(t *testing.T, doc *dom.Document, mode options.Mode) (*engine.Context, *dom.Diagnostics) {
	t.Helper()

	reg := DefaultRegistry(mapping.DefaultTable())

	var diags dom.Diagnostics

	ctx := engine.NewContext(doc, &diags)

	p := engine.NewPipeline(
		engine.NewDispatchStage("rewrite", reg, mode),
		engine.NewRestructureStage("restructure", reg, mode),
	)
	require.NoError(t, p.Run(ctx))

	return ctx, &diags
}
