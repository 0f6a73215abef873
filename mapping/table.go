package mapping

import (
	"fmt"
	"strings"
)

// Table is the compiled lookup form of a validated mapping File. A
// Table is immutable after Compile and safe for concurrent readers.
type Table struct {
	file       *File
	namespaces map[string]string
	types      map[string]string
	events     map[string]string
	properties map[propKey]PropertyRename
	conditions map[condKey]string
}

type propKey struct{ source, owner string }

type condKey struct{ property, value string }

// Compile validates mf and builds its lookup table. Later entries win
// over earlier ones with the same source key, which only matters for
// files assembled with Merge.
func Compile(mf *File) (*Table, error) {
	err := Validate(mf)
	if err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}

	t := &Table{
		file:       mf,
		namespaces: map[string]string{},
		types:      map[string]string{},
		events:     map[string]string{},
		properties: map[propKey]PropertyRename{},
		conditions: map[condKey]string{},
	}

	for _, ns := range mf.Namespaces {
		t.namespaces[ns.Source] = ns.Target
	}

	for _, m := range mf.Types {
		t.types[m.Source] = m.Target
	}

	for _, m := range mf.Events {
		t.events[m.Source] = m.Target
	}

	for _, m := range mf.Properties {
		t.properties[propKey{m.Source, m.Owner}] = m
	}

	for _, c := range mf.Conditions {
		t.conditions[condKey{c.Property, strings.ToLower(c.Value)}] = c.Selector
	}

	return t, nil
}

// DefaultTable compiles the built-in mapping.
func DefaultTable() *Table {
	t, err := Compile(Default())
	if err != nil {
		panic(fmt.Sprintf("mapping: embedded defaults do not compile: %v", err))
	}

	return t
}

// File returns the mapping file the table was compiled from.
func (t *Table) File() *File {
	return t.file
}

// Namespace returns the replacement for a namespace URI.
func (t *Table) Namespace(uri string) (string, bool) {
	target, ok := t.namespaces[uri]
	return target, ok
}

// Type returns the replacement tag name for a type.
func (t *Table) Type(name string) (string, bool) {
	target, ok := t.types[name]
	return target, ok
}

// Event returns the replacement name for an event.
func (t *Table) Event(name string) (string, bool) {
	target, ok := t.events[name]
	return target, ok
}

// Property resolves the rename entry for a property name on an element
// whose type ancestry is given most derived first. Owner-scoped entries
// win over generic ones, and among scoped entries the most derived
// ancestor wins. Elements without type information pass a nil ancestry
// and only match generic entries.
func (t *Table) Property(name string, ancestry []string) (PropertyRename, bool) {
	for _, owner := range ancestry {
		if m, ok := t.properties[propKey{name, owner}]; ok {
			return m, true
		}
	}

	m, ok := t.properties[propKey{name, ""}]

	return m, ok
}

// Selector returns the selector fragment for a trigger condition.
// Values compare case-insensitively, so Value="true" matches a rule
// declared for "True".
func (t *Table) Selector(property, value string) (string, bool) {
	s, ok := t.conditions[condKey{property, strings.ToLower(value)}]
	return s, ok
}

// Translate runs a property value through the rename's value map.
// Values without an entry pass through unchanged.
func (m PropertyRename) Translate(value string) string {
	if out, ok := m.Values[value]; ok {
		return out
	}

	return value
}
