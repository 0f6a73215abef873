package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	mf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mf, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var mf File

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *File) {
	if mf.Version == "" {
		mf.Version = "1"
	}

	for i := range mf.Conditions {
		if mf.Conditions[i].Value == "" {
			mf.Conditions[i].Value = "True"
		}
	}
}

// Marshal serializes a File to YAML in the compact form.
func Marshal(mf *File) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a File to the given path.
func WriteFile(mf *File, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

// Merge lays overlay over base and returns the combined file. Overlay
// entries replace base entries with the same source key (same source
// and owner for properties, same property and value for conditions) and
// are appended otherwise. Neither input is modified.
func Merge(base, overlay *File) *File {
	out := &File{Version: base.Version}
	if overlay.Version != "" {
		out.Version = overlay.Version
	}

	out.Namespaces = append(out.Namespaces, base.Namespaces...)
	for _, ns := range overlay.Namespaces {
		out.Namespaces = mergeNamespace(out.Namespaces, ns)
	}

	out.Types = append(out.Types, base.Types...)
	for _, m := range overlay.Types {
		out.Types = mergeRename(out.Types, m)
	}

	out.Events = append(out.Events, base.Events...)
	for _, m := range overlay.Events {
		out.Events = mergeRename(out.Events, m)
	}

	out.Properties = append(out.Properties, base.Properties...)
	for _, m := range overlay.Properties {
		out.Properties = mergeProperty(out.Properties, m)
	}

	out.Conditions = append(out.Conditions, base.Conditions...)
	for _, c := range overlay.Conditions {
		out.Conditions = mergeCondition(out.Conditions, c)
	}

	return out
}

func mergeNamespace(list []NamespaceRename, ns NamespaceRename) []NamespaceRename {
	for i := range list {
		if list[i].Source == ns.Source {
			list[i] = ns
			return list
		}
	}

	return append(list, ns)
}

func mergeRename(list RenameList, m Rename) RenameList {
	for i := range list {
		if list[i].Source == m.Source {
			list[i] = m
			return list
		}
	}

	return append(list, m)
}

func mergeProperty(list PropertyRenames, m PropertyRename) PropertyRenames {
	for i := range list {
		if list[i].Source == m.Source && list[i].Owner == m.Owner {
			list[i] = m
			return list
		}
	}

	return append(list, m)
}

func mergeCondition(list []ConditionRule, c ConditionRule) []ConditionRule {
	for i := range list {
		if list[i].Property == c.Property && list[i].Value == c.Value {
			list[i] = c
			return list
		}
	}

	return append(list, c)
}
