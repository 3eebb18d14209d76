package translit

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document rewrites every string scalar of a YAML or JSON document in
// place, mapping keys included. Numbers, booleans and nulls are left alone.
// It returns the number of scalars changed.
func (t *Table) Document(node *yaml.Node) int {
	if node == nil {
		return 0
	}
	changed := 0
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!str" {
			if v := t.String(node.Value); v != node.Value {
				node.Value = v
				changed++
			}
		}
	case yaml.DocumentNode, yaml.SequenceNode, yaml.MappingNode:
		for _, c := range node.Content {
			changed += t.Document(c)
		}
	case yaml.AliasNode:
		// The anchored node is rewritten where it is defined.
	}
	return changed
}

// LoadSymbols reads a YAML sequence of symbol strings.
func LoadSymbols(r io.Reader) ([]string, error) {
	var symbols []string
	if err := yaml.NewDecoder(r).Decode(&symbols); err != nil {
		return nil, fmt.Errorf("translit: load symbols: %w", err)
	}
	return symbols, nil
}

// MarshalYAML writes the table as a mapping from symbol to "U+XXXX" in code
// point order.
func (t *Table) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range t.symbols {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprintf("U+%04X", t.runes[s])},
		)
	}
	return n, nil
}
