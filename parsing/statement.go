package parsing

import (
	"github.com/NickyBoy89/java2cpp/astutil"
	"github.com/NickyBoy89/java2cpp/model"
	"github.com/NickyBoy89/java2cpp/nodeutil"
	sitter "github.com/smacker/go-tree-sitter"
)

// parseBlock parses the statements of a block, skipping comments
func (p *classParser) parseBlock(node *sitter.Node) []model.Stmt {
	stmts := []model.Stmt{}
	for _, child := range nodeutil.NamedChildrenOf(node) {
		stmts = p.appendStmt(stmts, child)
	}
	return stmts
}

// appendStmt parses a statement of a block and appends it to the list
func (p *classParser) appendStmt(stmts []model.Stmt, node *sitter.Node) []model.Stmt {
	// `int a = 1, b = 2;` declares each variable separately
	if node.Type() == "local_variable_declaration" {
		for _, decl := range p.parseLocalVars(node) {
			stmts = append(stmts, decl)
		}
		return stmts
	}
	if stmt := p.parseStmt(node); stmt != nil {
		stmts = append(stmts, stmt)
	}
	return stmts
}

// parseStmt parses a single statement. Comments and empty statements are
// dropped, and parse to nil
func (p *classParser) parseStmt(node *sitter.Node) model.Stmt {
	switch node.Type() {
	case "line_comment", "block_comment", "comment", ";":
		return nil
	case "block":
		return &model.Block{List: p.parseBlock(node)}
	case "expression_statement":
		return &model.ExprStmt{X: p.parseExpr(node.NamedChild(0))}
	case "return_statement":
		if node.NamedChildCount() == 0 {
			return &model.Return{}
		}
		return &model.Return{Value: p.parseExpr(node.NamedChild(0))}
	case "local_variable_declaration":
		decls := p.parseLocalVars(node)
		if len(decls) != 1 {
			p.unsupported(node, "declaring several variables outside of a block is not supported")
		}
		return decls[0]
	case "if_statement":
		stmt := &model.If{
			Cond: p.parseCondition(node.ChildByFieldName("condition")),
			Then: p.parseStmt(node.ChildByFieldName("consequence")),
		}
		if alternative := node.ChildByFieldName("alternative"); alternative != nil {
			stmt.Else = p.parseStmt(alternative)
		}
		return stmt
	case "while_statement":
		return &model.While{
			Cond: p.parseCondition(node.ChildByFieldName("condition")),
			Body: p.parseStmt(node.ChildByFieldName("body")),
		}
	case "do_statement":
		return &model.DoWhile{
			Body: p.parseStmt(node.ChildByFieldName("body")),
			Cond: p.parseCondition(node.ChildByFieldName("condition")),
		}
	case "for_statement":
		return p.parseFor(node)
	case "break_statement", "continue_statement":
		if nodeutil.FindFirst(node, "identifier") != nil {
			p.unsupported(node, "labeled %s is not supported", node.Child(0).Type())
		}
		if node.Type() == "break_statement" {
			return &model.Break{}
		}
		return &model.Continue{}
	}
	p.unsupported(node, "statement %s is not supported", node.Type())
	return nil
}

// parseCondition parses the condition of an if, while or do statement, without
// its surrounding parentheses
func (p *classParser) parseCondition(node *sitter.Node) model.Expr {
	if node.Type() == "parenthesized_expression" {
		return p.parseExpr(node.NamedChild(0))
	}
	return p.parseExpr(node)
}

func (p *classParser) parseLocalVars(node *sitter.Node) []*model.LocalVar {
	typeNode := node.ChildByFieldName("type")
	if typeNode.Type() == "type_identifier" && p.content(typeNode) == "var" {
		p.unsupported(typeNode, "local variable type inference is not supported")
	}
	varType := p.parseType(typeNode)

	var decls []*model.LocalVar
	for _, declarator := range nodeutil.NamedChildrenOf(node) {
		if declarator.Type() != "variable_declarator" {
			continue
		}
		t := varType
		t.Dims += astutil.CountDimensions(declarator.ChildByFieldName("dimensions"), p.file.Source)
		decl := &model.LocalVar{
			Type: t,
			Name: p.content(declarator.ChildByFieldName("name")),
		}
		if value := declarator.ChildByFieldName("value"); value != nil {
			decl.Init = p.parseExpr(value)
		}
		decls = append(decls, decl)
	}
	return decls
}

// parseFor parses a classic for loop. The init and update clauses can hold
// several expressions, which tree-sitter exposes as repeated fields
func (p *classParser) parseFor(node *sitter.Node) model.Stmt {
	stmt := &model.For{}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch node.FieldNameForChild(i) {
		case "init":
			if child.Type() == "local_variable_declaration" {
				for _, decl := range p.parseLocalVars(child) {
					stmt.Init = append(stmt.Init, decl)
				}
			} else {
				stmt.Init = append(stmt.Init, &model.ExprStmt{X: p.parseExpr(child)})
			}
		case "condition":
			stmt.Cond = p.parseExpr(child)
		case "update":
			stmt.Update = append(stmt.Update, p.parseExpr(child))
		case "body":
			stmt.Body = p.parseStmt(child)
		}
	}
	return stmt
}
