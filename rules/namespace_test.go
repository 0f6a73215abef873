package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"xamlport/dom"
	"xamlport/options"
)

func TestNamespaceRuleRewritesDeclarations(t *testing.T) {
	doc := dom.NewDocument("app.xaml")
	root := doc.NewElement("Window")
	root.Namespace = wpfNS
	doc.Namespaces[""] = wpfNS
	doc.Namespaces["x"] = xamlNS
	doc.Namespaces["local"] = "clr-namespace:MyApp.Views;assembly=MyApp"
	doc.SetRoot(root)

	btn := doc.NewElement("Button")
	btn.Namespace = wpfNS
	btn.SetString("xmlns:d", "clr-namespace:MyApp.Design")
	root.AppendChild(btn)

	_, diags := runRules(t, doc, options.ModeStructural)

	assert.Equal(t, avaloniaNS, doc.Namespaces[""])
	assert.Equal(t, "using:MyApp.Views", doc.Namespaces["local"])
	// The directive namespace is shared by both dialects.
	assert.Equal(t, xamlNS, doc.Namespaces["x"])

	assert.Equal(t, avaloniaNS, root.Namespace)
	assert.Equal(t, avaloniaNS, btn.Namespace)

	d, ok := btn.StringValue("xmlns:d")
	assert.True(t, ok)
	assert.Equal(t, "using:MyApp.Design", d)

	assert.False(t, diags.HasErrors())
}

func TestNamespaceRuleLeavesForeignURIs(t *testing.T) {
	doc := dom.NewDocument("app.xaml")
	root := doc.NewElement("Window")
	doc.Namespaces["mc"] = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	doc.SetRoot(root)

	runRules(t, doc, options.ModeStructural)

	assert.Equal(t, "http://schemas.openxmlformats.org/markup-compatibility/2006", doc.Namespaces["mc"])
}
