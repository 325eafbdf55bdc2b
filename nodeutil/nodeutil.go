// Package nodeutil contains helpers for walking tree-sitter syntax trees
package nodeutil

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// NamedChildrenOf returns every named child of a node, skipping punctuation
// and keywords
func NamedChildrenOf(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}

// UnnamedChildrenOf returns every child of a node that is not named, such as
// the keywords inside a `modifiers` node
func UnnamedChildrenOf(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	var children []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.IsNamed() {
			children = append(children, child)
		}
	}
	return children
}

// AssertTypeIs panics if a node is not of the expected type
func AssertTypeIs(node *sitter.Node, expectedType string) {
	if node == nil {
		panic(fmt.Errorf("expected node of type %s, got nil", expectedType))
	}
	if node.Type() != expectedType {
		panic(fmt.Errorf("expected node of type %s, got %s", expectedType, node.Type()))
	}
}

// FindFirst searches a tree depth-first for the first node of a given type
func FindFirst(node *sitter.Node, typeName string) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == typeName {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := FindFirst(node.Child(i), typeName); found != nil {
			return found
		}
	}
	return nil
}
