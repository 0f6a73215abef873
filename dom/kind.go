package dom

//go:generate go tool stringer -type=NodeKind -linecomment -output=kind_string.go

// NodeKind names the node categories a transformation rule can target.
type NodeKind int

const (
	// KindElement targets whole elements.
	KindElement NodeKind = iota // element
	// KindProperty targets individual properties of an element.
	KindProperty // property
	// KindExtension targets markup-extension expressions, nested ones
	// included.
	KindExtension // extension
)
