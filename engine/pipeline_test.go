package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xamlport/dom"
)

func TestPipelineRunsStagesInOrder(t *testing.T) {
	doc, _ := windowDoc()

	var diags dom.Diagnostics

	var order []string

	p := NewPipeline(
		StageFunc{Label: "resolve", Fn: func(*Context) error {
			order = append(order, "resolve")
			return nil
		}},
		StageFunc{Label: "rewrite", Fn: func(*Context) error {
			order = append(order, "rewrite")
			return nil
		}},
	)

	require.NoError(t, p.Run(NewContext(doc, &diags)))
	assert.Equal(t, []string{"resolve", "rewrite"}, order)
	assert.Zero(t, diags.Len())
}

func TestPipelineStageErrorAbortsRun(t *testing.T) {
	doc, _ := windowDoc()

	ran := false

	p := NewPipeline(
		StageFunc{Label: "rename", Fn: func(ctx *Context) error {
			ctx.Doc().Root().Name = "ListBox"
			return nil
		}},
		StageFunc{Label: "explode", Fn: func(*Context) error {
			return errors.New("boom")
		}},
		StageFunc{Label: "after", Fn: func(*Context) error {
			ran = true
			return nil
		}},
	)

	err := p.Run(NewContext(doc, nil))
	require.EqualError(t, err, `stage "explode": boom`)
	assert.False(t, ran)

	// Completed stages keep their effects.
	assert.Equal(t, "ListBox", doc.Root().Name)
}

func TestPipelineValidatesCleanTree(t *testing.T) {
	doc, root := windowDoc()
	dict := doc.NewElement("ResourceDictionary")
	root.SetProperty(dom.Property{Name: "Resources", Value: dom.ElementValue(dict)})
	root.SetString("Title", "Orders")

	panel := doc.NewElement("StackPanel")
	panel.AppendChild(doc.NewElement("Button"))
	root.AppendChild(panel)

	var diags dom.Diagnostics

	require.NoError(t, NewPipeline().Run(NewContext(doc, &diags)))
	assert.Zero(t, diags.Len())
}

func TestPipelineReportsCycleOnce(t *testing.T) {
	doc := dom.NewDocument("cycle.xaml")
	a := doc.NewElement("A")
	b := doc.NewElement("B")
	doc.SetRoot(a)
	a.AppendChild(b)

	// Close the loop by hand; no tree operation produces this.
	b.Children = append(b.Children, a.ID())
	a.Parent = b.ID()

	var diags dom.Diagnostics

	require.NoError(t, NewPipeline().Run(NewContext(doc, &diags)))

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "link-cycle", diags.Errors[0].Code)
	assert.Empty(t, diags.Warnings)
}

func TestPipelineReportsSelfCycle(t *testing.T) {
	doc, root := windowDoc()
	root.Children = append(root.Children, root.ID())

	var diags dom.Diagnostics

	require.NoError(t, NewPipeline().Run(NewContext(doc, &diags)))

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "link-cycle", diags.Errors[0].Code)

	// The root does not point at itself as parent, which is also flagged.
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "parent-mismatch", diags.Warnings[0].Code)
}

func TestPipelineWarnsOnParentMismatch(t *testing.T) {
	doc, root := windowDoc()

	stray := doc.NewElement("Button")
	root.Children = append(root.Children, stray.ID())

	var diags dom.Diagnostics

	require.NoError(t, NewPipeline().Run(NewContext(doc, &diags)))

	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "parent-mismatch", diags.Warnings[0].Code)
}

func TestPipelineWarnsOnDanglingLinks(t *testing.T) {
	doc, root := windowDoc()
	root.Children = append(root.Children, dom.NodeID(42))
	root.Properties = append(root.Properties, dom.Property{
		Owner: root.ID(),
		Name:  "Resources",
		Value: dom.Value{Kind: dom.ValueElement, Child: dom.NodeID(99)},
	})

	var diags dom.Diagnostics

	require.NoError(t, NewPipeline().Run(NewContext(doc, &diags)))

	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 2)
	assert.Equal(t, "dangling-link", diags.Warnings[0].Code)
	assert.Equal(t, "dangling-link", diags.Warnings[1].Code)
}

func TestPipelineWarnsOnOwnerMismatch(t *testing.T) {
	doc, root := windowDoc()
	root.Properties = append(root.Properties, dom.Property{
		Owner: dom.NoNode,
		Name:  "Width",
		Value: dom.StringValue("100"),
	})

	var diags dom.Diagnostics

	require.NoError(t, NewPipeline().Run(NewContext(doc, &diags)))

	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "owner-mismatch", diags.Warnings[0].Code)
}

func TestPipelineWarnsOnOrphanedInserts(t *testing.T) {
	doc, _ := windowDoc()
	ghost := doc.NewElement("Ghost")
	style := doc.NewElement("Style")

	p := NewPipeline(StageFunc{Label: "queue", Fn: func(ctx *Context) error {
		ctx.InsertAfter(ghost, style)
		return nil
	}})

	var diags dom.Diagnostics

	require.NoError(t, p.Run(NewContext(doc, &diags)))

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "orphaned-insert", diags.Warnings[0].Code)
	assert.Contains(t, diags.Warnings[0].Message, `"Style"`)
}
