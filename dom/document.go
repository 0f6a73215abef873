package dom

// NodeID addresses an element slot inside a Document's arena.
type NodeID int

// NoNode marks an absent link: a detached element's parent, an empty
// replacement, or a value that carries no nested element.
const NoNode NodeID = -1

// LayerSet records which representation layers a document carries.
type LayerSet uint8

const (
	// LayerStructural is the raw tag/attribute view produced by the parser.
	LayerStructural LayerSet = 1 << iota
	// LayerTyped is the resolved type annotation layer produced by the
	// type resolver on top of the structural view.
	LayerTyped
)

// Has reports whether every layer in want is present.
func (s LayerSet) Has(want LayerSet) bool {
	return s&want == want
}

// Document is one parsed markup file. All elements live in a single
// arena; the tree shape is expressed through NodeID links on the
// elements themselves.
type Document struct {
	// Source names the file the document was parsed from. It seeds the
	// File field of every diagnostic reported against the document.
	Source string

	// Namespaces maps declared prefixes to namespace URIs as written on
	// the root element. The empty prefix holds the default namespace.
	Namespaces map[string]string

	nodes  []*Element
	root   NodeID
	layers LayerSet
}

// NewDocument returns an empty document carrying only the structural
// layer and no root.
func NewDocument(source string) *Document {
	return &Document{
		Source:     source,
		Namespaces: map[string]string{},
		root:       NoNode,
		layers:     LayerStructural,
	}
}

// NewElement allocates a fresh detached element in the document arena.
func (d *Document) NewElement(name string) *Element {
	el := &Element{
		id:     NodeID(len(d.nodes)),
		doc:    d,
		Name:   name,
		Parent: NoNode,
	}
	d.nodes = append(d.nodes, el)
	return el
}

// Element resolves an arena id. It returns nil for NoNode and for ids
// outside the arena, so callers can chain lookups without pre-checks.
func (d *Document) Element(id NodeID) *Element {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return d.nodes[id]
}

// Len reports how many element slots the arena holds, detached ones
// included.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Root returns the document root, or nil when none is set.
func (d *Document) Root() *Element {
	return d.Element(d.root)
}

// SetRoot makes el the document root. The previous root, if any, stays
// in the arena detached.
func (d *Document) SetRoot(el *Element) {
	if el == nil {
		d.root = NoNode
		return
	}
	el.Parent = NoNode
	d.root = el.id
}

// Layers returns the set of layers the document carries.
func (d *Document) Layers() LayerSet {
	return d.layers
}

// AddLayer marks an additional layer as present.
func (d *Document) AddLayer(l LayerSet) {
	d.layers |= l
}

// HasLayer reports whether every layer in want is present.
func (d *Document) HasLayer(want LayerSet) bool {
	return d.layers.Has(want)
}

// Elements calls fn for every reachable element in pre-order, root
// first. Property-value elements are visited before regular children,
// matching the order the transformer stages walk the tree. fn returning
// false prunes the subtree below the current element.
func (d *Document) Elements(fn func(*Element) bool) {
	root := d.Root()
	if root == nil {
		return
	}
	d.walk(root, fn)
}

func (d *Document) walk(el *Element, fn func(*Element) bool) {
	if !fn(el) {
		return
	}
	for i := range el.Properties {
		if el.Properties[i].Value.Kind != ValueElement {
			continue
		}
		if child := d.Element(el.Properties[i].Value.Child); child != nil {
			d.walk(child, fn)
		}
	}
	for _, id := range el.Children {
		if child := d.Element(id); child != nil {
			d.walk(child, fn)
		}
	}
}
