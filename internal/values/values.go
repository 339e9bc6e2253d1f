package values

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed values file. It is loaded once per run and read-only
// afterwards, so it can be shared freely between resolver calls.
type Document struct {
	root *yaml.Node
}

// Load reads and parses the values file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading values file %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing values file %s: %w", path, err)
	}
	return doc, nil
}

// Parse builds a Document from raw YAML. An empty input yields a valid
// document in which no path resolves.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &Document{root: &root}, nil
}

// Resolve reports whether the dotted path (e.g. "PG.R1.DBName") exists in the
// document. Only key existence is checked; the terminal value may be of any
// kind, including null.
func (d *Document) Resolve(path string) bool {
	segments := strings.Split(path, ".")
	return d.ResolveSegments(segments)
}

// ResolveSegments walks the document one segment at a time. Descending is
// only possible through mapping nodes; hitting a scalar, sequence, or missing
// key fails immediately. An empty segment list fails.
func (d *Document) ResolveSegments(segments []string) bool {
	if d == nil || d.root == nil || len(segments) == 0 {
		return false
	}
	node := deref(d.root)
	for _, segment := range segments {
		if segment == "" || node == nil || node.Kind != yaml.MappingNode {
			return false
		}
		child := mappingValue(node, segment)
		if child == nil {
			return false
		}
		node = deref(child)
	}
	return true
}

// deref unwraps document wrappers and alias nodes down to the concrete node.
func deref(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

// mappingValue returns the value node for key, or nil if the mapping does not
// contain it. Mapping content alternates key and value nodes.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
