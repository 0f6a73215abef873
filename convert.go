// Package xamlport converts WPF-flavored XAML documents into their
// Avalonia equivalents. A conversion parses the source into a unified
// document tree, optionally resolves framework type information onto
// it, runs the rewrite and restructuring stages of the rule engine,
// and renders the result back to markup together with diagnostics
// about every fidelity gap the rules could not close.
//
// The package-level Convert covers the common case; a Converter holds
// the compiled mapping table and type catalog for repeated runs.
package xamlport

import (
	"fmt"

	"xamlport/dom"
	"xamlport/engine"
	"xamlport/internal/parser"
	"xamlport/internal/serialize"
	"xamlport/internal/typesys"
	"xamlport/mapping"
	"xamlport/options"
	"xamlport/rules"
)

// Options configure a Converter. The zero value runs the structural
// strategy over the embedded mapping table and type catalog.
type Options struct {
	// Mode selects the transformation strategy.
	Mode options.Mode
	// Mappings is an overlay merged over the embedded mapping defaults,
	// nil to use the defaults unchanged.
	Mappings *mapping.File
	// CatalogFile points at a YAML type catalog replacing the embedded
	// one, empty to keep the default.
	CatalogFile string
	// SkipComments drops the diagnostic comments from the rendered
	// output.
	SkipComments bool
}

// Converter runs conversions with one compiled configuration. It is
// safe for concurrent use; each Convert call works on its own
// document.
type Converter struct {
	table   *mapping.Table
	catalog *typesys.Catalog
	reg     *engine.Registry
	mode    options.Mode
	writer  serialize.Writer
}

// New compiles the configuration into a Converter.
func New(opts Options) (*Converter, error) {
	file := mapping.Default()
	if opts.Mappings != nil {
		file = mapping.Merge(file, opts.Mappings)
	}

	table, err := mapping.Compile(file)
	if err != nil {
		return nil, err
	}

	catalog := typesys.Default()
	if opts.CatalogFile != "" {
		catalog, err = typesys.LoadFile(opts.CatalogFile)
		if err != nil {
			return nil, err
		}
	}

	return &Converter{
		table:   table,
		catalog: catalog,
		reg:     rules.DefaultRegistry(table),
		mode:    opts.Mode,
		writer:  serialize.Writer{SkipComments: opts.SkipComments},
	}, nil
}

// Result is the outcome of one document conversion.
type Result struct {
	// Output is the rendered target-dialect markup.
	Output []byte
	// Doc is the transformed document, for callers that post-process
	// the tree themselves.
	Doc *dom.Document
	// Stats counts the effective rule applications of the run.
	Stats *engine.Stats
	// Diagnostics lists every finding, parse oddities included.
	Diagnostics dom.Diagnostics
}

// Convert runs the full chain over one document: parse, resolve types
// when the strategy consults them, rewrite, restructure, and render.
// name labels the document in diagnostics. The returned error covers
// unparseable input and stage failures; fidelity gaps surface in
// Result.Diagnostics instead.
func (c *Converter) Convert(src []byte, name string) (*Result, error) {
	res := &Result{}

	doc, err := parser.Parse(src, name, &res.Diagnostics)
	if err != nil {
		return nil, err
	}

	ctx := engine.NewContext(doc, &res.Diagnostics)

	if err := engine.NewPipeline(c.stages()...).Run(ctx); err != nil {
		return nil, fmt.Errorf("convert %s: %w", name, err)
	}

	out, err := c.writer.Write(doc)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", name, err)
	}

	res.Output = out
	res.Doc = doc
	res.Stats = ctx.Stats()

	return res, nil
}

// Check parses the document and runs the transformation stages without
// rendering, for callers that only want the findings.
func (c *Converter) Check(src []byte, name string) (*Result, error) {
	res := &Result{}

	doc, err := parser.Parse(src, name, &res.Diagnostics)
	if err != nil {
		return nil, err
	}

	ctx := engine.NewContext(doc, &res.Diagnostics)

	if err := engine.NewPipeline(c.stages()...).Run(ctx); err != nil {
		return nil, fmt.Errorf("check %s: %w", name, err)
	}

	res.Doc = doc
	res.Stats = ctx.Stats()

	return res, nil
}

// Rules returns the rule registry the converter dispatches, for
// inspection and listing.
func (c *Converter) Rules() *engine.Registry {
	return c.reg
}

func (c *Converter) stages() []engine.Stage {
	var stages []engine.Stage

	if c.mode.UsesTypes() {
		stages = append(stages, engine.StageFunc{
			Label: "resolve-types",
			Fn: func(ctx *engine.Context) error {
				typesys.NewResolver(c.catalog).Annotate(ctx.Doc())
				return nil
			},
		})
	}

	return append(stages,
		engine.NewDispatchStage("rewrite", c.reg, c.mode),
		engine.NewRestructureStage("restructure", c.reg, c.mode),
	)
}

// Convert converts one document under the hybrid strategy with the
// embedded mapping table and type catalog.
func Convert(src []byte, name string) (*Result, error) {
	c, err := New(Options{Mode: options.ModeHybrid})
	if err != nil {
		return nil, err
	}

	return c.Convert(src, name)
}
