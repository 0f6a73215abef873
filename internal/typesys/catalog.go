// Package typesys resolves source elements against a catalog of known
// control types, producing the typed layer the type-aware strategies
// run on. The catalog is a YAML description of the type hierarchy with
// per-type property and event declarations.
package typesys

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"xamlport/dom"
)

// Catalog is a loaded, base-linked type hierarchy.
type Catalog struct {
	// Namespace is the markup namespace the catalog describes.
	Namespace string

	types map[string]*dom.TypeInfo
}

type catalogFile struct {
	Version   string        `yaml:"version"`
	Namespace string        `yaml:"namespace"`
	Types     []catalogType `yaml:"types"`
}

type catalogType struct {
	Name       string   `yaml:"name"`
	Base       string   `yaml:"base"`
	Properties []string `yaml:"properties"`
	Events     []string `yaml:"events"`
}

// LoadFile loads and parses a catalog from the given path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse parses catalog YAML and links the base chains. Types with an
// undeclared base and inheritance cycles are rejected.
func Parse(data []byte) (*Catalog, error) {
	var cf catalogFile

	err := yaml.Unmarshal(data, &cf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	c := &Catalog{
		Namespace: cf.Namespace,
		types:     make(map[string]*dom.TypeInfo, len(cf.Types)),
	}

	// First pass creates the entries so bases can link in any order.
	for _, ct := range cf.Types {
		if ct.Name == "" {
			return nil, fmt.Errorf("catalog type without a name")
		}

		if _, dup := c.types[ct.Name]; dup {
			return nil, fmt.Errorf("duplicate catalog type %q", ct.Name)
		}

		info := &dom.TypeInfo{Name: ct.Name, Namespace: cf.Namespace}
		for _, p := range ct.Properties {
			info.Members = append(info.Members, dom.Member{Name: p, Kind: dom.MemberProperty})
		}

		for _, e := range ct.Events {
			info.Members = append(info.Members, dom.Member{Name: e, Kind: dom.MemberEvent})
		}

		c.types[ct.Name] = info
	}

	for _, ct := range cf.Types {
		if ct.Base == "" {
			continue
		}

		base, ok := c.types[ct.Base]
		if !ok {
			return nil, fmt.Errorf("type %q: unknown base %q", ct.Name, ct.Base)
		}

		c.types[ct.Name].Base = base
	}

	for name := range c.types {
		if err := checkChain(c.types[name]); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// checkChain rejects inheritance cycles.
func checkChain(t *dom.TypeInfo) error {
	seen := map[string]bool{}
	for cur := t; cur != nil; cur = cur.Base {
		if seen[cur.Name] {
			return fmt.Errorf("type %q: inheritance cycle through %q", t.Name, cur.Name)
		}

		seen[cur.Name] = true
	}

	return nil
}

// Lookup returns the catalog entry for a type name.
func (c *Catalog) Lookup(name string) (*dom.TypeInfo, bool) {
	t, ok := c.types[name]
	return t, ok
}

// Len returns the number of declared types.
func (c *Catalog) Len() int {
	return len(c.types)
}
