package parsing

import (
	"github.com/NickyBoy89/java2cpp/astutil"
	"github.com/NickyBoy89/java2cpp/model"
	"github.com/NickyBoy89/java2cpp/nodeutil"
	sitter "github.com/smacker/go-tree-sitter"
)

// Operators that exist in Java but have no C++ equivalent
var unsupportedOperators = map[string]bool{
	">>>":  true,
	">>>=": true,
}

// parseExpr parses an expression. Bare identifiers are kept as names, they
// are only resolved against the members of the class during translation
func (p *classParser) parseExpr(node *sitter.Node) model.Expr {
	switch node.Type() {
	case "identifier":
		return &model.Name{Name: p.content(node), Pos: p.pos(node)}
	case "this":
		return &model.This{}
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		value := p.content(node)
		if last := value[len(value)-1]; last == 'l' || last == 'L' {
			return &model.Literal{Kind: model.LongLit, Value: value}
		}
		return &model.Literal{Kind: model.IntLit, Value: value}
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		value := p.content(node)
		if last := value[len(value)-1]; last == 'f' || last == 'F' {
			return &model.Literal{Kind: model.FloatLit, Value: value}
		}
		return &model.Literal{Kind: model.DoubleLit, Value: value}
	case "character_literal":
		return &model.Literal{Kind: model.CharLit, Value: p.content(node)}
	case "string_literal":
		return &model.Literal{Kind: model.StringLit, Value: p.content(node)}
	case "true", "false":
		return &model.Literal{Kind: model.BoolLit, Value: node.Type()}
	case "null_literal":
		return &model.Literal{Kind: model.NullLit, Value: "null"}
	case "parenthesized_expression":
		return &model.Paren{X: p.parseExpr(node.NamedChild(0))}
	case "binary_expression":
		op := p.operator(node)
		return &model.Binary{
			X:  p.parseExpr(node.ChildByFieldName("left")),
			Op: op,
			Y:  p.parseExpr(node.ChildByFieldName("right")),
		}
	case "unary_expression":
		return &model.Unary{
			Op: p.operator(node),
			X:  p.parseExpr(node.ChildByFieldName("operand")),
		}
	case "update_expression":
		// A post-update has the operand first, ex: `i++`
		if node.Child(0).IsNamed() {
			return &model.Update{Op: node.Child(1).Type(), X: p.parseExpr(node.Child(0)), Postfix: true}
		}
		return &model.Update{Op: node.Child(0).Type(), X: p.parseExpr(node.Child(1))}
	case "assignment_expression":
		return &model.Assign{
			Target: p.parseExpr(node.ChildByFieldName("left")),
			Op:     p.operator(node),
			Value:  p.parseExpr(node.ChildByFieldName("right")),
		}
	case "field_access":
		field := p.content(node.ChildByFieldName("field"))
		object := node.ChildByFieldName("object")
		switch object.Type() {
		case "this":
			return &model.SelfMemberAccess{Member: field, Kind: model.FieldMember, Pos: p.pos(node)}
		case "super":
			p.unsupported(object, "accessing members through super is not supported")
		}
		return &model.FieldAccess{X: p.parseExpr(object), Name: field}
	case "method_invocation":
		name := p.content(node.ChildByFieldName("name"))
		args := p.parseArgs(node.ChildByFieldName("arguments"))

		object := node.ChildByFieldName("object")
		if object == nil {
			return &model.Call{Fun: &model.Name{Name: name, Pos: p.pos(node)}, Args: args}
		}
		switch object.Type() {
		case "this":
			return &model.Call{Fun: &model.SelfMemberAccess{Member: name, Kind: model.MethodMember, Pos: p.pos(node)}, Args: args}
		case "super":
			p.unsupported(object, "calling methods through super is not supported")
		}
		return &model.Call{Fun: &model.FieldAccess{X: p.parseExpr(object), Name: name}, Args: args}
	case "object_creation_expression":
		if node.ChildByFieldName("type_arguments") != nil || nodeutil.FindFirst(node, "class_body") != nil {
			p.unsupported(node, "anonymous and generic object creation is not supported")
		}
		return &model.New{
			Type: p.parseType(node.ChildByFieldName("type")),
			Args: p.parseArgs(node.ChildByFieldName("arguments")),
		}
	case "array_creation_expression":
		return p.parseArrayCreation(node)
	case "array_access":
		return &model.Index{
			X:     p.parseExpr(node.ChildByFieldName("array")),
			Index: p.parseExpr(node.ChildByFieldName("index")),
		}
	case "cast_expression":
		return &model.Cast{
			Type: p.parseType(node.ChildByFieldName("type")),
			X:    p.parseExpr(node.ChildByFieldName("value")),
		}
	case "ternary_expression":
		return &model.Conditional{
			Cond: p.parseExpr(node.ChildByFieldName("condition")),
			Then: p.parseExpr(node.ChildByFieldName("consequence")),
			Else: p.parseExpr(node.ChildByFieldName("alternative")),
		}
	}
	p.unsupported(node, "expression %s is not supported", node.Type())
	return nil
}

// operator returns the operator of a binary, unary or assignment expression
func (p *classParser) operator(node *sitter.Node) string {
	opNode := node.ChildByFieldName("operator")
	if opNode == nil {
		p.unsupported(node, "missing operator in %s", node.Type())
	}
	op := opNode.Type()
	if unsupportedOperators[op] {
		p.unsupported(opNode, "operator %s is not supported", op)
	}
	return op
}

func (p *classParser) parseArgs(node *sitter.Node) []model.Expr {
	args := []model.Expr{}
	for _, arg := range nodeutil.NamedChildrenOf(node) {
		switch arg.Type() {
		case "line_comment", "block_comment", "comment":
			continue
		}
		args = append(args, p.parseExpr(arg))
	}
	return args
}

// parseArrayCreation parses `new T[n]`, with any number of trailing empty
// dimensions. C++ has no single expression for several sized dimensions or
// for an initializer list
func (p *classParser) parseArrayCreation(node *sitter.Node) model.Expr {
	array := &model.NewArray{Elem: p.parseType(node.ChildByFieldName("type"))}
	sized := 0
	for _, child := range nodeutil.NamedChildrenOf(node) {
		switch child.Type() {
		case "dimensions_expr":
			sized++
			if sized > 1 {
				p.unsupported(child, "creating multi-dimensional arrays is not supported")
			}
			array.Len = p.parseExpr(child.NamedChild(0))
		case "dimensions":
			array.Elem.Dims += astutil.CountDimensions(child, p.file.Source)
		case "array_initializer":
			p.unsupported(child, "array initializers are not supported")
		}
	}
	return array
}
