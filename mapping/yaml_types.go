package mapping

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// --- RenameList YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for RenameList.
// Accepts either a map of source to target or a list of explicit
// source/target entries. The map form keeps document order.
func (r *RenameList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(RenameList, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			var src, tgt string

			err := node.Content[i].Decode(&src)
			if err != nil {
				return fmt.Errorf("invalid rename source: %w", err)
			}

			err = node.Content[i+1].Decode(&tgt)
			if err != nil {
				return fmt.Errorf("invalid rename target for %s: %w", src, err)
			}

			out = append(out, Rename{Source: src, Target: tgt})
		}

		*r = out

		return nil

	case yaml.SequenceNode:
		var list []Rename

		err := node.Decode(&list)
		if err != nil {
			return err
		}

		*r = list

		return nil

	default:
		return fmt.Errorf("expected map or list of renames, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for RenameList.
// Outputs the compact map form, keeping entry order.
func (r RenameList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, m := range r {
		node.Content = append(node.Content, strNode(m.Source), strNode(m.Target))
	}

	return node, nil
}

// --- PropertyRenames YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for PropertyRenames.
// Accepts:
//   - Map with scalar values: {ToolTip: ToolTip.Tip}
//   - Map with object values: {Visibility: {target: IsVisible, values: {...}}}
//   - List of explicit entries with source/target keys
func (p *PropertyRenames) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(PropertyRenames, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			var src string

			err := node.Content[i].Decode(&src)
			if err != nil {
				return fmt.Errorf("invalid property source: %w", err)
			}

			entry, err := parsePropertyValue(src, node.Content[i+1])
			if err != nil {
				return err
			}

			out = append(out, entry)
		}

		*p = out

		return nil

	case yaml.SequenceNode:
		var list []PropertyRename

		err := node.Decode(&list)
		if err != nil {
			return err
		}

		*p = list

		return nil

	default:
		return fmt.Errorf("expected map or list of property renames, got %v", node.Kind)
	}
}

// parsePropertyValue parses the value side of a compact property entry,
// either a scalar target or an object with target/owner/values keys.
func parsePropertyValue(src string, node *yaml.Node) (PropertyRename, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var tgt string

		err := node.Decode(&tgt)
		if err != nil {
			return PropertyRename{}, fmt.Errorf("invalid property target for %s: %w", src, err)
		}

		return PropertyRename{Source: src, Target: tgt}, nil

	case yaml.MappingNode:
		var aux struct {
			Target string            `yaml:"target"`
			Owner  string            `yaml:"owner"`
			Values map[string]string `yaml:"values"`
		}

		err := node.Decode(&aux)
		if err != nil {
			return PropertyRename{}, fmt.Errorf("invalid property entry for %s: %w", src, err)
		}

		return PropertyRename{Source: src, Owner: aux.Owner, Target: aux.Target, Values: aux.Values}, nil

	default:
		return PropertyRename{}, fmt.Errorf("expected target name or object for %s, got %v", src, node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for PropertyRenames.
// Outputs the compact map form when sources are unique, otherwise the
// explicit list form.
func (p PropertyRenames) MarshalYAML() (any, error) {
	seen := map[string]bool{}
	for _, m := range p {
		if seen[m.Source] {
			return []PropertyRename(p), nil
		}

		seen[m.Source] = true
	}

	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, m := range p {
		node.Content = append(node.Content, strNode(m.Source), propertyValueNode(m))
	}

	return node, nil
}

// propertyValueNode renders the value side of a compact property entry.
func propertyValueNode(m PropertyRename) *yaml.Node {
	if m.Owner == "" && len(m.Values) == 0 {
		return strNode(m.Target)
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, strNode("target"), strNode(m.Target))

	if m.Owner != "" {
		node.Content = append(node.Content, strNode("owner"), strNode(m.Owner))
	}

	if len(m.Values) > 0 {
		keys := make([]string, 0, len(m.Values))
		for k := range m.Values {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		values := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range keys {
			values.Content = append(values.Content, strNode(k), strNode(m.Values[k]))
		}

		node.Content = append(node.Content, strNode("values"), values)
	}

	return node
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
