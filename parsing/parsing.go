// Package parsing is the Java front end: it parses Java source with tree-sitter
// and builds the class model from the syntax tree
package parsing

import (
	"context"
	"fmt"

	"github.com/NickyBoy89/java2cpp/astutil"
	"github.com/NickyBoy89/java2cpp/model"
	"github.com/NickyBoy89/java2cpp/nodeutil"
	log "github.com/sirupsen/logrus"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// SourceFile is a single Java source file
type SourceFile struct {
	Name   string
	Source []byte
	// The root of the syntax tree, set by ParseAST
	Ast *sitter.Node
}

// ParseAST parses the file's source into a tree-sitter syntax tree
func (file *SourceFile) ParseAST() error {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, file.Source)
	if err != nil {
		return fmt.Errorf("%s: %w", file.Name, err)
	}
	file.Ast = tree.RootNode()
	return nil
}

// syntaxError is raised while building a class, and recovered from at the
// class level so that the other classes of the file are still parsed
type syntaxError struct {
	err *model.Error
}

// classParser builds the model for a single class declaration
type classParser struct {
	file      *SourceFile
	className string
}

func (p *classParser) pos(node *sitter.Node) model.Position {
	point := node.StartPoint()
	return model.Position{File: p.file.Name, Line: int(point.Row) + 1, Column: int(point.Column) + 1}
}

func (p *classParser) content(node *sitter.Node) string {
	return node.Content(p.file.Source)
}

// unsupported aborts the class being parsed
func (p *classParser) unsupported(node *sitter.Node, format string, args ...any) {
	err := model.Errorf(model.UnsupportedSyntax, p.className, "", format, args...)
	err.Pos = p.pos(node)
	panic(syntaxError{err: err})
}

func (p *classParser) parseType(node *sitter.Node) model.Type {
	t, err := astutil.ParseType(node, p.file.Source)
	if err != nil {
		p.unsupported(node, "%v", err)
	}
	return t
}

// ParseClasses builds the model of every top-level class in the file, in
// source order. A class that cannot be built is skipped and its error is
// reported in the returned list, along with every other failure of the file
func (file *SourceFile) ParseClasses() ([]*model.ClassDecl, model.ErrorList) {
	if file.Ast == nil {
		if err := file.ParseAST(); err != nil {
			return nil, model.ErrorList{{Kind: model.UnsupportedSyntax, Pos: model.Position{File: file.Name}, Msg: err.Error()}}
		}
	}

	var classes []*model.ClassDecl
	var errs model.ErrorList
	for _, node := range nodeutil.NamedChildrenOf(file.Ast) {
		switch node.Type() {
		case "package_declaration", "import_declaration", "line_comment", "block_comment", "comment":
		case "class_declaration":
			class, err := file.parseClass(node)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			classes = append(classes, class)
		default:
			p := &classParser{file: file}
			err := model.Errorf(model.UnsupportedSyntax, "", "", "top-level %s is not supported", node.Type())
			err.Pos = p.pos(node)
			if name := node.ChildByFieldName("name"); name != nil {
				err.Class = p.content(name)
			}
			errs = append(errs, err)
		}
	}
	errs.Sort()
	return classes, errs
}

func (file *SourceFile) parseClass(node *sitter.Node) (class *model.ClassDecl, classErr *model.Error) {
	nodeutil.AssertTypeIs(node.ChildByFieldName("name"), "identifier")

	p := &classParser{file: file, className: node.ChildByFieldName("name").Content(file.Source)}

	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(syntaxError)
			if !ok {
				panic(r)
			}
			class, classErr = nil, se.err
		}
	}()

	if node.HasError() {
		p.unsupported(node, "class %s contains syntax errors", p.className)
	}
	if node.ChildByFieldName("type_parameters") != nil {
		p.unsupported(node, "generic classes are not supported")
	}

	spec := model.ClassSpec{
		Name: p.className,
		Pos:  p.pos(node),
	}

	p.checkModifiers(node, "class")

	if superclass := node.ChildByFieldName("superclass"); superclass != nil {
		// Java has no access levels on inheritance, so a subclass is always a
		// public subtype of its base
		spec.Base = p.parseType(superclass.NamedChild(0)).Name
		spec.BaseAccess = model.Public
	}
	if interfaces := node.ChildByFieldName("interfaces"); interfaces != nil {
		log.WithFields(log.Fields{
			"class":      p.className,
			"interfaces": p.content(interfaces),
		}).Warn("Ignoring implemented interfaces")
	}

	for _, child := range nodeutil.NamedChildrenOf(node.ChildByFieldName("body")) {
		switch child.Type() {
		case "line_comment", "block_comment", "comment":
		case "field_declaration":
			spec.Fields = append(spec.Fields, p.parseField(child)...)
		case "constructor_declaration":
			spec.Constructors = append(spec.Constructors, p.parseConstructor(child))
		case "method_declaration":
			spec.Methods = append(spec.Methods, p.parseMethod(child))
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			p.unsupported(child, "nested %s is not supported", child.Type())
		default:
			p.unsupported(child, "%s in a class body is not supported", child.Type())
		}
	}

	built, err := model.NewClass(spec)
	if err != nil {
		return nil, err.(*model.Error)
	}
	return built, nil
}

// checkModifiers rejects modifiers that change the meaning of a declaration,
// and drops the others
func (p *classParser) checkModifiers(node *sitter.Node, what string) {
	modifiers := node.NamedChild(0)
	if modifiers == nil || modifiers.Type() != "modifiers" {
		return
	}
	for _, modifier := range nodeutil.UnnamedChildrenOf(modifiers) {
		switch modifier.Type() {
		case "static", "abstract", "native", "synchronized":
			p.unsupported(modifier, "%s %s is not supported", modifier.Type(), what)
		}
	}
	for _, annotation := range nodeutil.NamedChildrenOf(modifiers) {
		log.WithFields(log.Fields{
			"class":      p.className,
			"annotation": p.content(annotation),
		}).Debug("Dropping annotation")
	}
}

func (p *classParser) parseField(node *sitter.Node) []*model.FieldDecl {
	p.checkModifiers(node, "field")

	fieldType := p.parseType(node.ChildByFieldName("type"))

	var fields []*model.FieldDecl
	for _, declarator := range nodeutil.NamedChildrenOf(node) {
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		nodeutil.AssertTypeIs(nameNode, "identifier")

		t := fieldType
		t.Dims += astutil.CountDimensions(declarator.ChildByFieldName("dimensions"), p.file.Source)

		field := &model.FieldDecl{
			Name: p.content(nameNode),
			Type: t,
			Pos:  p.pos(declarator),
		}
		if value := declarator.ChildByFieldName("value"); value != nil {
			field.Init = p.parseExpr(value)
		}
		fields = append(fields, field)
	}
	return fields
}

func (p *classParser) parseParams(node *sitter.Node) []model.Param {
	params := []model.Param{}
	for _, param := range nodeutil.NamedChildrenOf(node) {
		switch param.Type() {
		case "formal_parameter":
			t := p.parseType(param.ChildByFieldName("type"))
			t.Dims += astutil.CountDimensions(param.ChildByFieldName("dimensions"), p.file.Source)
			params = append(params, model.Param{
				Name: p.content(param.ChildByFieldName("name")),
				Type: t,
			})
		case "line_comment", "block_comment", "comment":
		default:
			p.unsupported(param, "%s is not supported", param.Type())
		}
	}
	return params
}

func (p *classParser) parseConstructor(node *sitter.Node) *model.ConstructorDecl {
	p.checkModifiers(node, "constructor")
	if node.ChildByFieldName("type_parameters") != nil {
		p.unsupported(node, "generic constructors are not supported")
	}

	constructor := &model.ConstructorDecl{
		Params: p.parseParams(node.ChildByFieldName("parameters")),
		Body:   []model.Stmt{},
		Pos:    p.pos(node),
	}

	for _, child := range nodeutil.NamedChildrenOf(node.ChildByFieldName("body")) {
		if child.Type() != "explicit_constructor_invocation" {
			constructor.Body = p.appendStmt(constructor.Body, child)
			continue
		}

		if len(constructor.Body) > 0 || constructor.SuperCall != nil {
			p.unsupported(child, "the constructor call must be the first statement of a constructor")
		}
		if p.content(child.ChildByFieldName("constructor")) != "super" {
			p.unsupported(child, "delegating to another constructor of the same class is not supported")
		}
		constructor.SuperCall = &model.SuperCall{
			Args: p.parseArgs(child.ChildByFieldName("arguments")),
			Pos:  p.pos(child),
		}
	}
	return constructor
}

func (p *classParser) parseMethod(node *sitter.Node) *model.MethodDecl {
	p.checkModifiers(node, "method")
	if node.ChildByFieldName("type_parameters") != nil {
		p.unsupported(node, "generic methods are not supported")
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		p.unsupported(node, "methods without a body are not supported")
	}

	returnType := p.parseType(node.ChildByFieldName("type"))
	returnType.Dims += astutil.CountDimensions(node.ChildByFieldName("dimensions"), p.file.Source)

	return &model.MethodDecl{
		Name:       p.content(node.ChildByFieldName("name")),
		ReturnType: returnType,
		Params:     p.parseParams(node.ChildByFieldName("parameters")),
		Body:       p.parseBlock(body),
		Pos:        p.pos(node),
	}
}
