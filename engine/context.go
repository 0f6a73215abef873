package engine

import (
	"xamlport/dom"
	"xamlport/options"
)

// Context carries everything rules may touch during a run: the
// document, the diagnostic sink, conversion statistics, the converted
// marks connecting the restructuring passes, and the queue of pending
// sibling inserts. One Context serves a whole pipeline run; stages
// share its state deliberately.
type Context struct {
	doc   *dom.Document
	sink  dom.Sink
	stats *Stats
	mode  options.Mode

	converted map[dom.NodeID]string
	inserts   []siblingInsert
}

type siblingInsert struct {
	ref dom.NodeID
	el  *dom.Element
}

// NewContext builds a fresh context for one document run. A nil sink
// discards diagnostics not attached to elements.
func NewContext(doc *dom.Document, sink dom.Sink) *Context {
	return &Context{
		doc:       doc,
		sink:      sink,
		stats:     NewStats(),
		mode:      options.ModeHybrid,
		converted: map[dom.NodeID]string{},
	}
}

// Doc returns the document under transformation.
func (c *Context) Doc() *dom.Document {
	return c.doc
}

// Mode returns the strategy mode of the currently running stage.
func (c *Context) Mode() options.Mode {
	return c.mode
}

func (c *Context) setMode(m options.Mode) {
	c.mode = m
}

// Stats returns the run's conversion statistics.
func (c *Context) Stats() *Stats {
	return c.stats
}

// Report sends a document-level diagnostic to the sink.
func (c *Context) Report(d dom.Diagnostic) {
	if d.File == "" {
		d.File = c.doc.Source
	}

	if c.sink != nil {
		c.sink.Report(d)
	}
}

// ReportNode attaches a diagnostic to the element and forwards it to
// the sink with the element's source position filled in.
func (c *Context) ReportNode(el *dom.Element, d dom.Diagnostic) {
	d.File = c.doc.Source
	d.Line = el.Loc.Line
	d.Column = el.Loc.Column
	el.AddDiagnostic(d)

	if c.sink != nil {
		c.sink.Report(d)
	}
}

// MarkConverted records that el has been fully represented elsewhere,
// with a note saying by what. The cleanup pass removes only marked
// nodes.
func (c *Context) MarkConverted(el *dom.Element, detail string) {
	c.converted[el.ID()] = detail
}

// Converted reports whether el carries a conversion mark.
func (c *Context) Converted(el *dom.Element) bool {
	_, ok := c.converted[el.ID()]
	return ok
}

// InsertAfter queues el for insertion directly after ref in ref's
// parent. The insert is applied once the walk finishes iterating that
// parent's children, so the current pass never visits el.
func (c *Context) InsertAfter(ref, el *dom.Element) {
	c.inserts = append(c.inserts, siblingInsert{ref: ref.ID(), el: el})
}

// flushInserts applies the queued inserts whose reference element is a
// child of parent, keeping queue order. Several inserts after the same
// reference land in queue order, each one after the previous.
func (c *Context) flushInserts(parent *dom.Element) {
	if len(c.inserts) == 0 {
		return
	}

	var rest []siblingInsert

	last := map[dom.NodeID]*dom.Element{}

	for _, ins := range c.inserts {
		ref := c.doc.Element(ins.ref)
		if ref == nil || ref.Parent != parent.ID() {
			rest = append(rest, ins)
			continue
		}

		target := ref
		if prev := last[ins.ref]; prev != nil {
			target = prev
		}

		parent.InsertChildAfter(target, ins.el)
		last[ins.ref] = ins.el
	}

	c.inserts = rest
}
