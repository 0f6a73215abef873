package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xamlport/dom"
	"xamlport/options"
)

func TestStyleSelectorFromTargetType(t *testing.T) {
	doc := dom.NewDocument("app.xaml")
	root := doc.NewElement("Window")
	doc.SetRoot(root)

	plain := doc.NewElement("Style")
	plain.SetString("TargetType", "Button")
	root.AppendChild(plain)

	typed := doc.NewElement("Style")
	typed.SetProperty(dom.Property{
		Name:  "TargetType",
		Value: dom.ExtensionValue(&dom.MarkupExtension{Name: "x:Type", Args: []dom.ExtArg{{Text: "ListView"}}}),
	})
	root.AppendChild(typed)

	ctx, _ := runRules(t, doc, options.ModeStructural)

	sel, ok := plain.StringValue("Selector")
	require.True(t, ok)
	assert.Equal(t, "Button", sel)
	assert.False(t, plain.HasProperty("TargetType"))

	// The target type is renamed on the way to the selector.
	sel, ok = typed.StringValue("Selector")
	require.True(t, ok)
	assert.Equal(t, "ListBox", sel)

	assert.Equal(t, 2, ctx.Stats().ByRule["style-selector"])
}

func TestSetterRenamesThroughStyleScope(t *testing.T) {
	doc := dom.NewDocument("app.xaml")
	root := doc.NewElement("Window")
	doc.SetRoot(root)

	style := doc.NewElement("Style")
	style.SetString("TargetType", "Button")
	root.AppendChild(style)

	setter := doc.NewElement("Setter")
	setter.SetString("Property", "Visibility")
	setter.SetString("Value", "Hidden")
	style.AppendChild(setter)

	keep := doc.NewElement("Setter")
	keep.SetString("Property", "Background")
	keep.SetString("Value", "Red")
	style.AppendChild(keep)

	ctx, _ := runRules(t, doc, options.ModeStructural)

	prop, _ := setter.StringValue("Property")
	assert.Equal(t, "IsVisible", prop)
	val, _ := setter.StringValue("Value")
	assert.Equal(t, "False", val)

	prop, _ = keep.StringValue("Property")
	assert.Equal(t, "Background", prop)

	assert.Equal(t, 1, ctx.Stats().ByRule["setter"])
}
