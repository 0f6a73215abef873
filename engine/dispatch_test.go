package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xamlport/dom"
	"xamlport/options"
)

func runDispatch(t *testing.T, reg *Registry, doc *dom.Document, mode options.Mode) *Context {
	t.Helper()

	ctx := NewContext(doc, nil)
	ctx.setMode(mode)

	d := &dispatcher{reg: reg, mode: mode}
	require.NoError(t, d.run(ctx))

	return ctx
}

func TestDispatchAppliesEveryMatchingRule(t *testing.T) {
	doc, root := windowDoc()
	root.AppendChild(doc.NewElement("Button"))

	var order []string

	visit := func(name string) func(*Context, *dom.Element) (Result, error) {
		return func(_ *Context, el *dom.Element) (Result, error) {
			order = append(order, name+":"+el.Name)
			return Result{Outcome: Rewritten}, nil
		}
	}

	reg := NewRegistry()
	require.NoError(t, reg.Register(
		elementStub{stubRule: stubRule{name: "second", priority: 10}, apply: visit("second")},
		elementStub{stubRule: stubRule{name: "first", priority: 90}, apply: visit("first")},
	))

	ctx := runDispatch(t, reg, doc, options.ModeStructural)

	// Both rules fire on every element, priority order within a node.
	assert.Equal(t, []string{
		"first:Window", "second:Window",
		"first:Button", "second:Button",
	}, order)
	assert.Equal(t, 2, ctx.Stats().ByRule["first"])
	assert.Equal(t, 2, ctx.Stats().ByRule["second"])
}

func TestDispatchRemovalStopsProcessing(t *testing.T) {
	doc, root := windowDoc()
	legacy := doc.NewElement("Legacy")
	legacy.AppendChild(doc.NewElement("Nested"))
	root.AppendChild(legacy)

	var seen []string

	reg := NewRegistry()
	require.NoError(t, reg.Register(
		elementStub{
			stubRule: stubRule{name: "drop", priority: 90},
			match:    func(el *dom.Element) bool { return el.Name == "Legacy" },
			apply: func(*Context, *dom.Element) (Result, error) {
				return Result{Outcome: Removed, Detail: "obsolete"}, nil
			},
		},
		elementStub{
			stubRule: stubRule{name: "witness", priority: 10},
			apply: func(_ *Context, el *dom.Element) (Result, error) {
				seen = append(seen, el.Name)
				return Result{}, nil
			},
		},
	))

	ctx := runDispatch(t, reg, doc, options.ModeStructural)

	// Neither the removed element nor its subtree is processed further.
	assert.Equal(t, []string{"Window"}, seen)
	assert.Empty(t, root.ChildElements())
	assert.Equal(t, dom.NoNode, legacy.Parent)
	assert.Equal(t, 1, ctx.Stats().ByRule["drop"])
}

func TestDispatchReplacementTakesOver(t *testing.T) {
	doc, root := windowDoc()
	root.AppendChild(doc.NewElement("TextBlock"))
	view := doc.NewElement("ListView")
	root.AppendChild(view)

	var seen []string

	reg := NewRegistry()
	require.NoError(t, reg.Register(
		elementStub{
			stubRule: stubRule{name: "swap", priority: 90},
			match:    func(el *dom.Element) bool { return el.Name == "ListView" },
			apply: func(ctx *Context, _ *dom.Element) (Result, error) {
				rep := ctx.Doc().NewElement("ListBox")
				return Result{Outcome: Replaced, Replacement: rep}, nil
			},
		},
		elementStub{
			stubRule: stubRule{name: "witness", priority: 10},
			apply: func(_ *Context, el *dom.Element) (Result, error) {
				seen = append(seen, el.Name)
				return Result{}, nil
			},
		},
	))

	runDispatch(t, reg, doc, options.ModeStructural)

	// The replacement inherits the position and the remaining rules.
	assert.Equal(t, []string{"Window", "TextBlock", "ListBox"}, seen)

	var names []string
	for _, child := range root.ChildElements() {
		names = append(names, child.Name)
	}

	assert.Equal(t, []string{"TextBlock", "ListBox"}, names)
	assert.Equal(t, dom.NoNode, view.Parent)
}

func TestDispatchReplacementRequiresSubstitute(t *testing.T) {
	doc, _ := windowDoc()

	reg := NewRegistry()
	require.NoError(t, reg.Register(elementStub{
		stubRule: stubRule{name: "swap", priority: 50},
		apply: func(*Context, *dom.Element) (Result, error) {
			return Result{Outcome: Replaced}, nil
		},
	}))

	d := &dispatcher{reg: reg, mode: options.ModeStructural}
	err := d.run(NewContext(doc, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rule "swap": replaced without a replacement`)
}

func TestDispatchPropertyRewriteAndRemoval(t *testing.T) {
	doc, root := windowDoc()
	root.SetString("Visibility", "Visible")
	root.SetString("MouseDown", "OnDown")
	root.SetString("MouseUp", "OnUp")
	root.SetString("Width", "100")

	reg := NewRegistry()
	require.NoError(t, reg.Register(
		propertyStub{
			stubRule: stubRule{name: "visibility", priority: 70},
			match: func(_ *dom.Element, prop *dom.Property) bool {
				return prop.Name == "Visibility"
			},
			apply: func(_ *Context, _ *dom.Element, prop *dom.Property) (Result, error) {
				prop.Name = "IsVisible"
				prop.Value = dom.StringValue("True")
				return Result{Outcome: Rewritten, Detail: "Visibility -> IsVisible"}, nil
			},
		},
		propertyStub{
			stubRule: stubRule{name: "strip-mouse", priority: 60},
			match: func(_ *dom.Element, prop *dom.Property) bool {
				return strings.HasPrefix(prop.Name, "Mouse")
			},
			apply: func(*Context, *dom.Element, *dom.Property) (Result, error) {
				return Result{Outcome: Removed}, nil
			},
		},
	))

	ctx := runDispatch(t, reg, doc, options.ModeStructural)

	got, ok := root.StringValue("IsVisible")
	require.True(t, ok)
	assert.Equal(t, "True", got)
	assert.False(t, root.HasProperty("Visibility"))
	assert.False(t, root.HasProperty("MouseDown"))
	assert.False(t, root.HasProperty("MouseUp"))
	assert.True(t, root.HasProperty("Width"))

	assert.Equal(t, 1, ctx.Stats().ByRule["visibility"])
	assert.Equal(t, 2, ctx.Stats().ByRule["strip-mouse"])
	assert.Equal(t, 3, ctx.Stats().ByKind[dom.KindProperty])
}

func TestDispatchExtensionRulesSeeNested(t *testing.T) {
	doc, root := windowDoc()
	root.SetProperty(dom.Property{
		Name: "ItemsSource",
		Value: dom.ExtensionValue(&dom.MarkupExtension{
			Name: "Binding",
			Args: []dom.ExtArg{
				{Text: "Orders"},
				{Name: "RelativeSource", Ext: &dom.MarkupExtension{Name: "RelativeSource"}},
			},
		}),
	})

	var seen []string

	reg := NewRegistry()
	require.NoError(t, reg.Register(extensionStub{
		stubRule: stubRule{name: "witness", priority: 50},
		apply: func(_ *Context, _ *dom.Element, _ *dom.Property, ext *dom.MarkupExtension) (Result, error) {
			seen = append(seen, ext.Name)
			return Result{}, nil
		},
	}))

	runDispatch(t, reg, doc, options.ModeStructural)

	assert.Equal(t, []string{"Binding", "RelativeSource"}, seen)
}

func TestDispatchExtensionRemovalDropsProperty(t *testing.T) {
	doc, root := windowDoc()
	root.SetProperty(dom.Property{
		Name:  "Background",
		Value: dom.ExtensionValue(&dom.MarkupExtension{Name: "DynamicResource", Args: []dom.ExtArg{{Text: "Accent"}}}),
	})
	root.SetString("Width", "100")

	reg := NewRegistry()
	require.NoError(t, reg.Register(extensionStub{
		stubRule: stubRule{name: "strip-dynamic", priority: 50},
		match: func(_ *dom.Element, _ *dom.Property, ext *dom.MarkupExtension) bool {
			return ext.Name == "DynamicResource"
		},
		apply: func(*Context, *dom.Element, *dom.Property, *dom.MarkupExtension) (Result, error) {
			return Result{Outcome: Removed}, nil
		},
	}))

	ctx := runDispatch(t, reg, doc, options.ModeStructural)

	assert.False(t, root.HasProperty("Background"))
	assert.True(t, root.HasProperty("Width"))
	assert.Equal(t, 1, ctx.Stats().ByKind[dom.KindExtension])
}

func TestDispatchModeGating(t *testing.T) {
	cases := []struct {
		mode options.Mode
		want int
	}{
		{options.ModeStructural, 0},
		{options.ModeTyped, 2},
		{options.ModeHybrid, 1},
	}

	for _, tc := range cases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			doc, root := windowDoc()
			root.Type = &dom.TypeInfo{Name: "Window"}

			gauge := doc.NewElement("Gauge")
			gauge.Prefix = "custom"
			root.AppendChild(gauge)

			applied := 0

			reg := NewRegistry()
			require.NoError(t, reg.Register(elementStub{
				stubRule: stubRule{name: "typed-only", priority: 50, typed: true},
				apply: func(*Context, *dom.Element) (Result, error) {
					applied++
					return Result{}, nil
				},
			}))

			runDispatch(t, reg, doc, tc.mode)
			assert.Equal(t, tc.want, applied)
		})
	}
}

func TestDispatchRuleErrorNamesRule(t *testing.T) {
	doc, _ := windowDoc()

	reg := NewRegistry()
	require.NoError(t, reg.Register(elementStub{
		stubRule: stubRule{name: "explode", priority: 50},
		apply: func(*Context, *dom.Element) (Result, error) {
			return Result{}, errors.New("boom")
		},
	}))

	d := &dispatcher{reg: reg, mode: options.ModeStructural}
	err := d.run(NewContext(doc, nil))
	require.EqualError(t, err, `rule "explode": boom`)
}
