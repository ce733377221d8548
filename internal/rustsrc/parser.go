// Package rustsrc parses Rust source into tree-sitter syntax trees for the
// visitor engine.
package rustsrc

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// ParsedFile is one parsed source file.
type ParsedFile struct {
	Path   string
	Source []byte
	Tree   *sitter.Tree
	Root   *sitter.Node
}

// Parse parses source as Rust. tree-sitter is error-tolerant, so a tree
// whose root contains ERROR or MISSING nodes is treated as a parse failure;
// callers record a warning and skip the file.
func Parse(path string, source []byte) (*ParsedFile, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, fmt.Errorf("parse %s: source contains syntax errors", path)
	}

	return &ParsedFile{Path: path, Source: source, Tree: tree, Root: root}, nil
}

// Text returns the source text of node, bounds-checked against source.
func Text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if end > uint32(len(source)) {
		end = uint32(len(source))
	}
	if start >= end {
		return ""
	}
	return string(source[start:end])
}
