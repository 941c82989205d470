package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Resolve follows document wrappers and aliases down to the node holding content.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}

	return nil
}

// Mark describes the source position of n.
func Mark(n *yaml.Node) string {
	if n == nil || n.Line == 0 {
		return "unknown position"
	}

	return fmt.Sprintf("line %d, column %d", n.Line, n.Column)
}

// KindName returns a readable name for a node kind.
func KindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}
