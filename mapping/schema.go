package mapping

// File is the parsed form of one mapping YAML document. Section order
// in the file is preserved; lookup precedence is handled by the
// compiled Table, not by position.
type File struct {
	// Version of the mapping schema. Defaults to "1".
	Version string `yaml:"version"`

	// Namespaces rewrites namespace URIs declared on the root element.
	Namespaces []NamespaceRename `yaml:"namespaces,omitempty" validate:"dive"`

	// Types renames element tag names.
	Types RenameList `yaml:"types,omitempty" validate:"dive"`

	// Properties renames properties, optionally scoped to an owner type
	// and optionally translating the value.
	Properties PropertyRenames `yaml:"properties,omitempty" validate:"dive"`

	// Events renames event handlers attached in markup.
	Events RenameList `yaml:"events,omitempty" validate:"dive"`

	// Conditions maps trigger conditions to selector pseudo-classes.
	Conditions []ConditionRule `yaml:"conditions,omitempty" validate:"dive"`
}

// NamespaceRename rewrites one namespace URI.
type NamespaceRename struct {
	Source string `yaml:"source" validate:"required"`
	Target string `yaml:"target" validate:"required"`
}

// Rename is one plain name substitution.
type Rename struct {
	Source string `yaml:"source" validate:"required"`
	Target string `yaml:"target" validate:"required"`
}

// RenameList holds renames parsed from either the compact map form
//
//	types:
//	  ListView: ListBox
//
// or the explicit list form with source/target keys. The compact form
// keeps file order.
type RenameList []Rename

// PropertyRename renames one property and optionally translates its
// value through a lookup map.
type PropertyRename struct {
	// Source is the property name to match.
	Source string `yaml:"source" validate:"required"`
	// Owner restricts the rename to elements of the given type or its
	// descendants. Empty matches any element.
	Owner string `yaml:"owner,omitempty"`
	// Target is the replacement property name. A dotted target such as
	// "ToolTip.Tip" turns the property into an attached form.
	Target string `yaml:"target" validate:"required"`
	// Values translates the property value. Keys are source values;
	// values not listed pass through unchanged.
	Values map[string]string `yaml:"values,omitempty"`
}

// PropertyRenames holds property renames parsed from either the
// compact map form
//
//	properties:
//	  ToolTip: ToolTip.Tip
//	  Visibility:
//	    target: IsVisible
//	    values: {Visible: "True", Collapsed: "False"}
//
// or the explicit list form.
type PropertyRenames []PropertyRename

// ConditionRule maps one trigger condition, a property compared
// against a value, to a style selector fragment such as ":pointerover"
// or ":disabled".
type ConditionRule struct {
	Property string `yaml:"property" validate:"required"`
	// Value the property is compared against. Defaults to "True".
	Value string `yaml:"value,omitempty"`
	// Selector is the pseudo-class appended to the parent selector.
	Selector string `yaml:"selector" validate:"required"`
}
