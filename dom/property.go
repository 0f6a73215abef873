package dom

// ValueKind discriminates the payload of a property value.
type ValueKind int

const (
	// ValueString is a plain attribute-style string.
	ValueString ValueKind = iota
	// ValueElement is a nested element carried in property-element form.
	ValueElement
	// ValueExtension is a parsed markup-extension expression.
	ValueExtension
)

// Property is one named value on an element. Properties keep their
// source order; attribute form and property-element form are not
// distinguished beyond the value kind.
type Property struct {
	// Owner links back to the element carrying the property.
	Owner NodeID
	// Name is the property name. Attached properties keep their dotted
	// owner-qualified form, for example "Grid.Row".
	Name string
	// Value is the property payload.
	Value Value
	// Loc is the position of the property in the source, zero for
	// synthesized properties.
	Loc SourceLocation
}

// Value is the payload of a property. Exactly one branch is populated
// according to Kind.
type Value struct {
	Kind ValueKind
	// Text is the string payload for ValueString.
	Text string
	// Child is the arena id of the nested element. Meaningful only when
	// Kind is ValueElement; check Kind before resolving it.
	Child NodeID
	// Ext is the parsed expression for ValueExtension.
	Ext *MarkupExtension
}

// StringValue builds a plain-string value.
func StringValue(text string) Value {
	return Value{Kind: ValueString, Text: text}
}

// ElementValue builds a nested-element value.
func ElementValue(el *Element) Value {
	if el == nil {
		return Value{Kind: ValueElement, Child: NoNode}
	}
	return Value{Kind: ValueElement, Child: el.ID()}
}

// ExtensionValue builds a markup-extension value.
func ExtensionValue(ext *MarkupExtension) Value {
	return Value{Kind: ValueExtension, Ext: ext}
}

// IsExtension reports whether the value carries a markup-extension
// expression.
func (v Value) IsExtension() bool {
	return v.Kind == ValueExtension && v.Ext != nil
}
