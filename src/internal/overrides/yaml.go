package overrides

import (
	"context"

	"gopkg.in/yaml.v3"
)

// FromYAML extracts overrides from a YAML document using the same rules as
// FromJSON: bool, int, float and str scalars are kept, anything else is
// skipped.
func FromYAML(ctx context.Context, data []byte) (Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	m := Map{}
	root := resolve(&doc)
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolve(root.Content[0])
	}
	section := lookup(root, Section)
	if section == nil || section.Kind != yaml.MappingNode {
		return m, nil
	}
	for i := 0; i+1 < len(section.Content); i += 2 {
		name := section.Content[i].Value
		value := resolve(section.Content[i+1])
		if v, ok := scalar(value); ok {
			m[name] = v
			continue
		}
		skipped(ctx, name, kindName(value))
	}
	return m, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// lookup returns the value node for key in a mapping; the last duplicate wins.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	var found *yaml.Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			found = resolve(mapping.Content[i+1])
		}
	}
	return found
}

func scalar(n *yaml.Node) (Value, bool) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return Value{}, false
	}
	switch n.ShortTag() {
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, false
		}
		return BoolValue(b), true
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return IntValue(int32(i)), true
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, false
		}
		return floatValue(f)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, false
		}
		return floatValue(f)
	case "!!str":
		return StringValue(n.Value), true
	}
	return Value{}, false
}

func floatValue(f float64) (Value, bool) {
	i, ok := intFromFloat(f)
	if !ok {
		return Value{}, false
	}
	return IntValue(i), true
}

func kindName(n *yaml.Node) string {
	if n == nil {
		return "null"
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return "array"
	case yaml.MappingNode:
		return "object"
	}
	if n.ShortTag() == "!!null" {
		return "null"
	}
	return n.ShortTag()
}
