package astutil

import (
	"fmt"
	"strings"

	"github.com/NickyBoy89/java2cpp/model"
	sitter "github.com/smacker/go-tree-sitter"
)

// ParseType parses a Java type node into the type it names
func ParseType(node *sitter.Node, source []byte) (model.Type, error) {
	if node == nil {
		return model.Type{}, fmt.Errorf("missing type")
	}

	switch node.Type() {
	case "integral_type", "floating_point_type":
		// Either `int`, `short`, `long`, `char`, `byte`, or `float`, `double`
		return model.Type{Name: node.Child(0).Type()}, nil
	case "boolean_type":
		return model.Type{Name: "boolean"}, nil
	case "void_type":
		return model.Type{Name: "void"}, nil
	case "type_identifier": // Any reference type
		return model.Type{Name: node.Content(source)}, nil
	case "scoped_type_identifier":
		// A qualified name such as java.lang.String, only the last part is kept
		last := node.NamedChild(int(node.NamedChildCount()) - 1)
		return model.Type{Name: last.Content(source)}, nil
	case "array_type":
		element, err := ParseType(node.ChildByFieldName("element"), source)
		if err != nil {
			return model.Type{}, err
		}
		element.Dims += CountDimensions(node.ChildByFieldName("dimensions"), source)
		return element, nil
	case "generic_type":
		return model.Type{}, fmt.Errorf("generic type %s is not supported", node.Content(source))
	}
	return model.Type{}, fmt.Errorf("unknown type %s", node.Type())
}

// CountDimensions counts the pairs of brackets in a `dimensions` node, such
// as the `[][]` of `int[][]`
func CountDimensions(node *sitter.Node, source []byte) int {
	if node == nil {
		return 0
	}
	return strings.Count(node.Content(source), "[")
}
