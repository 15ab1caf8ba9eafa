package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Section names of the variables document.
const (
	SectionData       = "data"
	SectionIgnores    = "ignores"
	SectionVariations = "variations"
)

// Document is a parsed variables document.
type Document struct {
	// Path is the file the document was read from (empty for in-memory data).
	Path string
	// Data is the core variables tree.
	Data *Tree
	// Ignores are doublestar globs of source paths to skip when scanning.
	Ignores []string
	// Variations maps a variant name to a tree overriding core values.
	Variations map[string]*Tree
	// VariationOrder lists variant names in document order.
	VariationOrder []string
}

// LoadFile loads and parses a variables document from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variables file %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc.Path = path

	return doc, nil
}

// Parse parses YAML (or JSON) data into a Document.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse variables YAML: %w", err)
	}

	body := DocumentBody(&root)
	if body == nil {
		return nil, errors.New("variables document is empty")
	}

	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("variables document must be a mapping, got %s", kindName(body.Kind))
	}

	doc := &Document{Data: &Tree{}, Variations: map[string]*Tree{}}

	for i := 0; i+1 < len(body.Content); i += 2 {
		key, value := body.Content[i], body.Content[i+1]

		switch key.Value {
		case SectionData:
			tree, err := treeFromNode(value)
			if err != nil {
				return nil, err
			}

			doc.Data = tree

		case SectionIgnores:
			if err := value.Decode(&doc.Ignores); err != nil {
				return nil, fmt.Errorf("line %d: ignores must be a list of globs: %w", value.Line, err)
			}

		case SectionVariations:
			if err := parseVariations(doc, value); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("line %d: unknown section %q", key.Line, key.Value)
		}
	}

	return doc, nil
}

// DocumentBody returns the top-level node of a parsed YAML document.
func DocumentBody(root *yaml.Node) *yaml.Node {
	if root == nil || root.Kind == 0 {
		return nil
	}

	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}

		return root.Content[0]
	}

	return root
}

func parseVariations(doc *Document, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: variations must be a mapping of variant name to data", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if _, dup := doc.Variations[name]; dup {
			return fmt.Errorf("line %d: duplicate variation %q", node.Content[i].Line, name)
		}

		tree, err := treeFromNode(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("variation %q: %w", name, err)
		}

		doc.Variations[name] = tree
		doc.VariationOrder = append(doc.VariationOrder, name)
	}

	return nil
}

// treeFromNode converts a YAML mapping node into a Tree, keeping key order.
func treeFromNode(node *yaml.Node) (*Tree, error) {
	node = deref(node)

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node.Kind))
	}

	t := &Tree{}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], deref(node.Content[i+1])

		entry := Entry{
			Key: key.Value,
			Pos: Pos{Line: key.Line, Column: key.Column},
		}

		switch value.Kind {
		case yaml.MappingNode:
			sub, err := treeFromNode(value)
			if err != nil {
				return nil, err
			}

			entry.Value = sub

		case yaml.ScalarNode:
			if value.Tag == "!!str" {
				entry.Value = value.Value
			} else {
				var v any
				if err := value.Decode(&v); err != nil {
					return nil, fmt.Errorf("line %d: %w", value.Line, err)
				}

				entry.Value = v
			}

		default:
			var v any
			if err := value.Decode(&v); err != nil {
				return nil, fmt.Errorf("line %d: %w", value.Line, err)
			}

			entry.Value = v
		}

		t.Entries = append(t.Entries, entry)
	}

	return t, nil
}

func deref(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func kindName(k yaml.Kind) string {
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
		return "unknown"
	}
}
