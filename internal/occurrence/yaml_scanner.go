package occurrence

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"commentvars/internal/config"
)

// YAMLScanner reports the string scalars of the data section of variables
// documents, each with the span it occupies in its file.
type YAMLScanner struct{}

// NewYAMLScanner creates a YAMLScanner.
func NewYAMLScanner() *YAMLScanner {
	return &YAMLScanner{}
}

// Scan reads every path and returns the occurrences in file order.
func (s *YAMLScanner) Scan(ctx context.Context, paths []string) ([]ValueOccurrence, error) {
	var out []ValueOccurrence

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan canceled: %w", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		occs, err := ScanYAML(path, data)
		if err != nil {
			return nil, err
		}

		out = append(out, occs...)
	}

	return out, nil
}

// ScanYAML returns the string scalars under the data section of one document.
func ScanYAML(path string, data []byte) ([]ValueOccurrence, error) {
	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	body := config.DocumentBody(&root)
	if body == nil || body.Kind != yaml.MappingNode {
		return nil, nil
	}

	lines := strings.Split(string(data), "\n")

	var out []ValueOccurrence

	for i := 0; i+1 < len(body.Content); i += 2 {
		if body.Content[i].Value != config.SectionData {
			continue
		}

		collect(body.Content[i+1], path, lines, &out)
	}

	return out, nil
}

func collect(node *yaml.Node, path string, lines []string, out *[]ValueOccurrence) {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 1; i < len(node.Content); i += 2 {
			collect(node.Content[i], path, lines, out)
		}

	case yaml.AliasNode:
		// The value is declared where its anchor is, possibly outside data.
		if node.Alias != nil {
			collect(node.Alias, path, lines, out)
		}

	case yaml.ScalarNode:
		if node.Tag != "!!str" {
			return
		}

		start := valueStart(node, lines)

		*out = append(*out, ValueOccurrence{
			Value:    node.Value,
			FilePath: path,
			Location: SourceSpan{
				Start: start,
				End:   scalarEnd(node, start, lines),
			},
		})
	}
}

// valueStart returns the position of the scalar text itself, past an
// "&anchor" property written before it.
func valueStart(node *yaml.Node, lines []string) Position {
	start := Position{Line: node.Line, Column: node.Column}
	if node.Anchor == "" || node.Line-1 >= len(lines) {
		return start
	}

	runes := []rune(lines[node.Line-1])
	prop := []rune("&" + node.Anchor)

	i := node.Column - 1
	if i < 0 || i+len(prop) > len(runes) || string(runes[i:i+len(prop)]) != string(prop) {
		return start
	}

	i += len(prop)
	for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t') {
		i++
	}

	if i < len(runes) {
		start.Column = i + 1
	}

	return start
}

// scalarEnd computes the end-exclusive position of a scalar from its source.
func scalarEnd(node *yaml.Node, start Position, lines []string) Position {
	switch node.Style {
	case yaml.LiteralStyle, yaml.FoldedStyle:
		n := strings.Count(strings.TrimRight(node.Value, "\n"), "\n") + 1
		last := node.Line + n

		col := 1
		if last-1 < len(lines) {
			col = utf8.RuneCountInString(lines[last-1]) + 1
		}

		return Position{Line: last, Column: col}

	case yaml.DoubleQuotedStyle, yaml.SingleQuotedStyle:
		if node.Line-1 < len(lines) {
			if end, ok := closingQuote(lines[node.Line-1], start.Column, node.Style); ok {
				return Position{Line: node.Line, Column: end}
			}
		}
	}

	return Position{Line: start.Line, Column: start.Column + utf8.RuneCountInString(node.Value)}
}

// closingQuote finds the column just past the quote closing the scalar that
// opens at column start.
func closingQuote(line string, start int, style yaml.Style) (int, bool) {
	runes := []rune(line)
	if start-1 >= len(runes) {
		return 0, false
	}

	quote := runes[start-1]

	for i := start; i < len(runes); i++ {
		switch {
		case style == yaml.DoubleQuotedStyle && runes[i] == '\\':
			i++
		case runes[i] == quote:
			if style == yaml.SingleQuotedStyle && i+1 < len(runes) && runes[i+1] == '\'' {
				i++
				continue
			}

			return i + 2, true
		}
	}

	return 0, false
}
