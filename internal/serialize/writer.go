// Package serialize renders a converted document back to markup. The
// writer walks the tree from the root and emits attributes in stored
// property order, re-renders markup-extension values into their
// curly-brace form, expands element-valued properties into dotted
// property-element blocks, and self-closes childless tags.
package serialize

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"xamlport/dom"
)

// Writer renders documents. The zero value indents with two spaces and
// emits the diagnostics attached to elements as comments.
type Writer struct {
	// Indent is the per-level indentation, two spaces when empty.
	Indent string
	// SkipComments suppresses the diagnostic comments written above
	// annotated elements.
	SkipComments bool
}

// Write renders the document with the default settings.
func Write(doc *dom.Document) ([]byte, error) {
	var w Writer
	return w.Write(doc)
}

// Write renders the document tree from its root. Detached elements are
// not emitted.
func (w *Writer) Write(doc *dom.Document) ([]byte, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document %s has no root element", doc.Source)
	}

	indent := w.Indent
	if indent == "" {
		indent = "  "
	}

	p := &printer{doc: doc, indent: indent, comments: !w.SkipComments}
	p.element(root, 0, namespaceAttrs(doc))

	return p.buf.Bytes(), nil
}

// attr is one rendered attribute, value already in final text form.
type attr struct {
	name  string
	value string
}

// namespaceAttrs renders the document-level namespace declarations for
// the root tag, default namespace first, the rest by prefix.
func namespaceAttrs(doc *dom.Document) []attr {
	prefixes := make([]string, 0, len(doc.Namespaces))
	for prefix := range doc.Namespaces {
		prefixes = append(prefixes, prefix)
	}

	sort.Strings(prefixes)

	out := make([]attr, 0, len(prefixes))

	for _, prefix := range prefixes {
		name := "xmlns"
		if prefix != "" {
			name = "xmlns:" + prefix
		}

		out = append(out, attr{name: name, value: doc.Namespaces[prefix]})
	}

	return out
}

type printer struct {
	buf      bytes.Buffer
	doc      *dom.Document
	indent   string
	comments bool
}

func (p *printer) element(el *dom.Element, depth int, extra []attr) {
	pad := strings.Repeat(p.indent, depth)

	if p.comments {
		for _, d := range el.Diagnostics {
			if d.Severity == dom.SeverityInfo {
				continue
			}

			fmt.Fprintf(&p.buf, "%s<!-- xamlport: [%s] %s -->\n", pad, d.Code, commentSafe(d.Message))
		}
	}

	name := el.QualifiedName()
	fmt.Fprintf(&p.buf, "%s<%s", pad, name)

	for _, a := range extra {
		fmt.Fprintf(&p.buf, " %s=\"%s\"", a.name, escapeAttr(a.value))
	}

	var blocks []dom.Property

	for i := range el.Properties {
		prop := el.Properties[i]

		switch prop.Value.Kind {
		case dom.ValueString:
			fmt.Fprintf(&p.buf, " %s=\"%s\"", prop.Name, escapeAttr(escapeLiteral(prop.Value.Text)))

		case dom.ValueExtension:
			if prop.Value.Ext != nil {
				fmt.Fprintf(&p.buf, " %s=\"%s\"", prop.Name, escapeAttr(renderExtension(prop.Value.Ext)))
			}

		case dom.ValueElement:
			if p.doc.Element(prop.Value.Child) != nil {
				blocks = append(blocks, prop)
			}
		}
	}

	children := el.ChildElements()

	if len(blocks) == 0 && len(children) == 0 && el.Text == "" {
		p.buf.WriteString("/>\n")
		return
	}

	p.buf.WriteString(">")

	// Text-only elements stay on one line.
	if len(blocks) == 0 && len(children) == 0 {
		fmt.Fprintf(&p.buf, "%s</%s>\n", escapeText(el.Text), name)
		return
	}

	p.buf.WriteString("\n")

	if el.Text != "" {
		fmt.Fprintf(&p.buf, "%s%s%s\n", pad, p.indent, escapeText(el.Text))
	}

	for _, prop := range blocks {
		p.propertyBlock(el, prop, depth+1)
	}

	for _, child := range children {
		p.element(child, depth+1, nil)
	}

	fmt.Fprintf(&p.buf, "%s</%s>\n", pad, name)
}

// propertyBlock writes an element-valued property in its dotted form.
// Attached properties already carry the full owner-qualified name;
// plain ones are qualified with the owning element's tag.
func (p *printer) propertyBlock(owner *dom.Element, prop dom.Property, depth int) {
	pad := strings.Repeat(p.indent, depth)

	tag := prop.Name
	if !strings.Contains(tag, ".") {
		tag = owner.QualifiedName() + "." + tag
	}

	fmt.Fprintf(&p.buf, "%s<%s>\n", pad, tag)
	p.element(p.doc.Element(prop.Value.Child), depth+1, nil)
	fmt.Fprintf(&p.buf, "%s</%s>\n", pad, tag)
}

// renderExtension writes an extension tree back to its curly-brace
// form. Argument values that would not survive a re-parse are
// single-quoted with backslash escapes, mirroring the reader.
func renderExtension(ext *dom.MarkupExtension) string {
	var b strings.Builder

	b.WriteString("{")
	b.WriteString(ext.Name)

	for i, arg := range ext.Args {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}

		if arg.Name != "" {
			b.WriteString(arg.Name)
			b.WriteString("=")
		}

		if arg.Ext != nil {
			b.WriteString(renderExtension(arg.Ext))
		} else {
			b.WriteString(quoteArg(arg.Text))
		}
	}

	b.WriteString("}")

	return b.String()
}

var argEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteArg quotes an argument value when bare text would be cut short
// at a separator or mistaken for a nested expression.
func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, ",{}='") || s != strings.TrimSpace(s) {
		return "'" + argEscaper.Replace(s) + "'"
	}

	return s
}

// escapeLiteral re-applies the {} escape so a literal value starting
// with a brace does not read back as an expression.
func escapeLiteral(s string) string {
	if strings.HasPrefix(s, "{") {
		return "{}" + s
	}

	return s
}

var (
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// commentSafe rewrites the double hyphens XML forbids inside comments.
func commentSafe(s string) string {
	return strings.ReplaceAll(s, "--", "- -")
}
