package dom

// Element is one node of the structural tree: a tag with ordered
// properties, ordered element children, and optional text content.
// Structural fields are exported and freely mutable by transformation
// rules; identity and arena wiring stay behind accessors.
type Element struct {
	// Name is the local tag name without any namespace prefix.
	Name string
	// Prefix is the namespace prefix as written in the source, empty for
	// the default namespace.
	Prefix string
	// Namespace is the resolved namespace URI, empty when the prefix was
	// not declared.
	Namespace string
	// Key holds the directive key of the element when one was declared,
	// used for resource lookup.
	Key string

	// Text is the concatenated character content of the element, with
	// surrounding whitespace trimmed.
	Text string

	// Properties are the element's properties in source order. Attribute
	// and nested property-element forms land here alike.
	Properties []Property

	// Parent is the owning element, NoNode for the root and for detached
	// elements. An element reachable through a property value also links
	// back to the element owning that property.
	Parent NodeID
	// Children are the regular element children in source order.
	// Property-value elements are not listed here; they are reachable
	// through Properties.
	Children []NodeID

	// Type is the resolved type annotation, nil until the type resolver
	// has run or when the element's type is not in the catalog.
	Type *TypeInfo

	// Diagnostics are the records attached to this element during the
	// run, in report order.
	Diagnostics []Diagnostic

	// Loc is the position of the element's opening tag in the source.
	Loc SourceLocation

	id  NodeID
	doc *Document
}

// ID returns the element's arena id.
func (el *Element) ID() NodeID {
	return el.id
}

// Doc returns the document owning the element.
func (el *Element) Doc() *Document {
	return el.doc
}

// QualifiedName returns the tag name with its prefix, as written in
// the source.
func (el *Element) QualifiedName() string {
	if el.Prefix == "" {
		return el.Name
	}
	return el.Prefix + ":" + el.Name
}

// ParentElement resolves the parent link, nil for roots and detached
// elements.
func (el *Element) ParentElement() *Element {
	return el.doc.Element(el.Parent)
}

// AppendChild attaches child as the last regular child. A child already
// attached elsewhere is detached first.
func (el *Element) AppendChild(child *Element) {
	child.Detach()
	child.Parent = el.id
	el.Children = append(el.Children, child.id)
}

// InsertChildAfter attaches child directly after ref in the child list.
// When ref is not a child of el, child is appended instead.
func (el *Element) InsertChildAfter(ref, child *Element) {
	idx := el.childIndex(ref)
	if idx < 0 {
		el.AppendChild(child)
		return
	}
	child.Detach()
	child.Parent = el.id
	el.Children = append(el.Children, NoNode)
	copy(el.Children[idx+2:], el.Children[idx+1:])
	el.Children[idx+1] = child.id
}

// RemoveChild detaches child from el's child list. It reports whether
// child was attached to el.
func (el *Element) RemoveChild(child *Element) bool {
	idx := el.childIndex(child)
	if idx < 0 {
		return false
	}
	el.Children = append(el.Children[:idx], el.Children[idx+1:]...)
	child.Parent = NoNode
	return true
}

// Detach removes the element from its parent, whether it is attached as
// a regular child or as a property value. Detached elements stay in the
// arena and can be re-attached.
func (el *Element) Detach() {
	parent := el.ParentElement()
	if parent == nil {
		return
	}
	if parent.RemoveChild(el) {
		return
	}
	for i := range parent.Properties {
		if parent.Properties[i].Value.Kind != ValueElement {
			continue
		}
		if parent.Properties[i].Value.Child == el.id {
			parent.Properties[i].Value = Value{}
			el.Parent = NoNode
			return
		}
	}
	el.Parent = NoNode
}

func (el *Element) childIndex(child *Element) int {
	if child == nil {
		return -1
	}
	for i, id := range el.Children {
		if id == child.id {
			return i
		}
	}
	return -1
}

// ChildElements resolves the child id list into elements, skipping
// stale ids.
func (el *Element) ChildElements() []*Element {
	out := make([]*Element, 0, len(el.Children))
	for _, id := range el.Children {
		if child := el.doc.Element(id); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// PropertyElements returns the elements attached as property values, in
// property order.
func (el *Element) PropertyElements() []*Element {
	var out []*Element
	for i := range el.Properties {
		if el.Properties[i].Value.Kind != ValueElement {
			continue
		}
		if child := el.doc.Element(el.Properties[i].Value.Child); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// Property returns the first property with the given name, or nil. The
// pointer aims into the element's property slice and stays valid until
// the list is next grown or shrunk.
func (el *Element) Property(name string) *Property {
	for i := range el.Properties {
		if el.Properties[i].Name == name {
			return &el.Properties[i]
		}
	}
	return nil
}

// HasProperty reports whether a property with the given name exists.
func (el *Element) HasProperty(name string) bool {
	return el.Property(name) != nil
}

// StringValue returns the plain-string value of the named property. The
// second result is false when the property is absent or carries an
// element or extension value.
func (el *Element) StringValue(name string) (string, bool) {
	p := el.Property(name)
	if p == nil || p.Value.Kind != ValueString {
		return "", false
	}
	return p.Value.Text, true
}

// SetString sets the named property to a plain-string value, replacing
// an existing property of that name in place or appending a new one.
func (el *Element) SetString(name, text string) {
	el.SetProperty(Property{Name: name, Value: StringValue(text)})
}

// SetProperty installs p, replacing the first property with the same
// name in place or appending when none exists.
func (el *Element) SetProperty(p Property) {
	p.Owner = el.id
	if p.Value.Kind == ValueElement {
		if child := el.doc.Element(p.Value.Child); child != nil {
			child.Parent = el.id
		}
	}
	for i := range el.Properties {
		if el.Properties[i].Name == p.Name {
			p.Loc = el.Properties[i].Loc
			el.Properties[i] = p
			return
		}
	}
	el.Properties = append(el.Properties, p)
}

// RemoveProperty drops the first property with the given name and
// reports whether one existed. An element value attached to the dropped
// property is detached.
func (el *Element) RemoveProperty(name string) bool {
	for i := range el.Properties {
		if el.Properties[i].Name != name {
			continue
		}
		if el.Properties[i].Value.Kind == ValueElement {
			if child := el.doc.Element(el.Properties[i].Value.Child); child != nil {
				child.Parent = NoNode
			}
		}
		el.Properties = append(el.Properties[:i], el.Properties[i+1:]...)
		return true
	}
	return false
}

// AddDiagnostic attaches a record to the element.
func (el *Element) AddDiagnostic(d Diagnostic) {
	el.Diagnostics = append(el.Diagnostics, d)
}

// Clone deep-copies the element's subtree, property-value elements and
// extension expressions included. The clone is detached and shares no
// mutable state with the original.
func (el *Element) Clone() *Element {
	cp := el.doc.NewElement(el.Name)
	cp.Prefix = el.Prefix
	cp.Namespace = el.Namespace
	cp.Key = el.Key
	cp.Text = el.Text
	cp.Type = el.Type
	cp.Loc = el.Loc

	cp.Properties = make([]Property, len(el.Properties))
	for i, p := range el.Properties {
		p.Owner = cp.id
		if p.Value.Ext != nil {
			p.Value.Ext = p.Value.Ext.Clone()
		}
		if p.Value.Kind == ValueElement {
			if child := el.doc.Element(p.Value.Child); child != nil {
				sub := child.Clone()
				sub.Parent = cp.id
				p.Value.Child = sub.id
			}
		}
		cp.Properties[i] = p
	}
	for _, id := range el.Children {
		if child := el.doc.Element(id); child != nil {
			cp.AppendChild(child.Clone())
		}
	}
	return cp
}
