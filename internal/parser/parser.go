// Package parser turns source markup into the unified document model.
// It keeps the structural layer faithful to the input: property order,
// namespace prefixes, and source positions survive, while dotted
// property-element syntax is classified into properties or container
// elements and curly-brace expressions are parsed into markup
// extensions.
package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"xamlport/dom"
	"xamlport/internal/common"
)

// xamlNS is the directive namespace carrying x:Key, x:Name, and
// friends.
const xamlNS = "http://schemas.microsoft.com/winfx/2006/xaml"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse parses one markup document. Recoverable oddities (an
// expression that does not parse, an undeclared prefix) are reported to
// sink and attached to the nearest element; only malformed XML fails
// the parse. A nil sink discards the reports.
func Parse(src []byte, name string, sink dom.Sink) (*dom.Document, error) {
	src = bytes.TrimPrefix(src, utf8BOM)

	p := &parser{
		doc:   dom.NewDocument(name),
		index: newLineIndex(src),
		sink:  sink,
		scope: []map[string]string{},
	}

	dec := xml.NewDecoder(bytes.NewReader(src))

	err := p.run(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	if p.doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse %s: no root element", name)
	}

	return p.doc, nil
}

type parser struct {
	doc   *dom.Document
	index *lineIndex
	sink  dom.Sink

	stack []*frame
	scope []map[string]string
}

type frame struct {
	el     *dom.Element
	text   strings.Builder
	scoped bool
}

func (p *parser) run(dec *xml.Decoder) error {
	for {
		off := dec.InputOffset()

		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.startElement(t, p.index.locate(off))
		case xml.EndElement:
			p.endElement()
		case xml.CharData:
			if len(p.stack) > 0 {
				p.stack[len(p.stack)-1].text.Write(t)
			}
		default:
			// Comments, directives, and processing instructions carry no
			// structural content.
		}
	}
}

func (p *parser) startElement(tok xml.StartElement, loc dom.SourceLocation) {
	decls := namespaceDecls(tok.Attr)
	if len(decls) > 0 {
		p.scope = append(p.scope, decls)
	}

	prefix, ns := p.resolveElementName(tok.Name)

	el := p.doc.NewElement(tok.Name.Local)
	el.Prefix = prefix
	el.Namespace = ns
	el.Loc = loc

	root := len(p.stack) == 0
	if root {
		p.doc.SetRoot(el)
		for pfx, uri := range decls {
			p.doc.Namespaces[pfx] = uri
		}
	} else {
		p.stack[len(p.stack)-1].el.AppendChild(el)
	}

	for _, attr := range tok.Attr {
		if isNamespaceDecl(attr.Name) {
			// Root declarations live on the document; inner ones are kept
			// as plain properties so they serialize back in place.
			if !root {
				el.SetProperty(dom.Property{Name: declName(attr.Name), Value: dom.StringValue(attr.Value), Loc: loc})
			}

			continue
		}

		p.addProperty(el, attr, loc)
	}

	p.stack = append(p.stack, &frame{el: el, scoped: len(decls) > 0})
}

func (p *parser) endElement() {
	if len(p.stack) == 0 {
		return
	}

	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	f.el.Text = strings.TrimSpace(f.text.String())

	if f.scoped {
		p.scope = p.scope[:len(p.scope)-1]
	}

	p.classifyDotted(f.el)
}

// classifyDotted reshapes a closed `<A.B>` element. With a single
// element child and nothing else it becomes a property of its parent
// (named "B" when A is the parent's own tag, the full dotted form for
// attached properties). Text-only content becomes a string property.
// Anything richer, several children in particular, stays a container
// element for the restructuring stages to work on.
func (p *parser) classifyDotted(el *dom.Element) {
	owner, member, ok := common.SplitDotted(el.Name)
	if !ok {
		return
	}

	parent := el.ParentElement()
	if parent == nil || len(el.Properties) > 0 {
		return
	}

	name := el.Name
	if owner == parent.Name {
		name = member
	}

	switch {
	case common.IsSingle(el.Children) && el.Text == "":
		child := p.doc.Element(el.Children[0])
		parent.RemoveChild(el)
		el.Children = nil
		parent.SetProperty(dom.Property{Name: name, Value: dom.ElementValue(child), Loc: el.Loc})

	case common.IsEmpty(el.Children) && el.Text != "":
		parent.RemoveChild(el)
		parent.SetProperty(dom.Property{Name: name, Value: dom.StringValue(el.Text), Loc: el.Loc})
	}
}

// addProperty installs one attribute, parsing curly-brace expressions
// into extension values.
func (p *parser) addProperty(el *dom.Element, attr xml.Attr, loc dom.SourceLocation) {
	name := p.attrName(attr.Name)

	if attr.Name.Space == xamlNS {
		switch attr.Name.Local {
		case "Key":
			el.Key = attr.Value
		case "Name":
			// x:Key wins when both are present.
			if el.Key == "" {
				el.Key = attr.Value
			}
		}
	}

	value := dom.StringValue(attr.Value)

	switch {
	case IsEscaped(attr.Value):
		value = dom.StringValue(Unescape(attr.Value))

	case IsExpression(attr.Value):
		ext, err := ParseExtension(attr.Value)
		if err != nil {
			p.report(el, dom.Diagnostic{
				Severity: dom.SeverityWarning,
				Code:     "bad-expression",
				Message:  fmt.Sprintf("cannot parse %s=%q: %v; kept as literal text", name, attr.Value, err),
			})
		} else {
			value = dom.ExtensionValue(ext)
		}
	}

	el.Properties = append(el.Properties, dom.Property{
		Owner: el.ID(),
		Name:  name,
		Value: value,
		Loc:   loc,
	})
}

// report attaches a diagnostic to the element and forwards it to the
// sink with the element's position filled in.
func (p *parser) report(el *dom.Element, d dom.Diagnostic) {
	d.File = p.doc.Source
	d.Line = el.Loc.Line
	d.Column = el.Loc.Column
	el.AddDiagnostic(d)

	if p.sink != nil {
		p.sink.Report(d)
	}
}

// resolveElementName recovers the written prefix for an element name.
// The decoder hands back resolved namespace URIs; undeclared prefixes
// come through as the literal prefix text.
func (p *parser) resolveElementName(name xml.Name) (prefix, ns string) {
	if name.Space == "" {
		return "", ""
	}

	if p.defaultNS() == name.Space {
		return "", name.Space
	}

	if pfx, ok := p.prefixFor(name.Space); ok {
		return pfx, name.Space
	}

	// Literal undeclared prefix.
	return name.Space, ""
}

// attrName renders an attribute name back to its written form.
// Unprefixed attributes never take the default namespace.
func (p *parser) attrName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}

	if pfx, ok := p.prefixFor(name.Space); ok {
		return pfx + ":" + name.Local
	}

	return name.Space + ":" + name.Local
}

func (p *parser) defaultNS() string {
	for i := len(p.scope) - 1; i >= 0; i-- {
		if uri, ok := p.scope[i][""]; ok {
			return uri
		}
	}

	return ""
}

// prefixFor finds the innermost declared prefix for a namespace URI,
// preferring the lexicographically smallest when one scope declares
// several.
func (p *parser) prefixFor(uri string) (string, bool) {
	for i := len(p.scope) - 1; i >= 0; i-- {
		best, found := "", false

		for pfx, u := range p.scope[i] {
			if pfx == "" || u != uri {
				continue
			}

			if !found || pfx < best {
				best, found = pfx, true
			}
		}

		if found {
			return best, true
		}
	}

	return "", false
}

func namespaceDecls(attrs []xml.Attr) map[string]string {
	var decls map[string]string

	for _, attr := range attrs {
		if !isNamespaceDecl(attr.Name) {
			continue
		}

		if decls == nil {
			decls = map[string]string{}
		}

		if attr.Name.Space == "xmlns" {
			decls[attr.Name.Local] = attr.Value
		} else {
			decls[""] = attr.Value
		}
	}

	return decls
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

func declName(name xml.Name) string {
	if name.Space == "xmlns" {
		return "xmlns:" + name.Local
	}

	return "xmlns"
}
