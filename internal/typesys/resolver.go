package typesys

import "xamlport/dom"

// Resolver annotates documents with catalog type information.
type Resolver struct {
	catalog *Catalog
}

// NewResolver returns a resolver over the given catalog.
func NewResolver(c *Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Annotate resolves every reachable element against the catalog and
// marks the document as carrying the typed layer. Only unprefixed
// elements are looked up; prefixed ones come from user assemblies or
// directive namespaces the catalog does not describe, and they stay
// untyped. Dotted container elements synthesized from property-element
// syntax never match a catalog entry.
//
// The return value is the number of elements that received a type.
func (r *Resolver) Annotate(doc *dom.Document) int {
	resolved := 0

	doc.Elements(func(el *dom.Element) bool {
		if el.Prefix == "" {
			if t, ok := r.catalog.Lookup(el.Name); ok {
				el.Type = t
				resolved++
			}
		}

		return true
	})

	doc.AddLayer(dom.LayerTyped)

	return resolved
}
