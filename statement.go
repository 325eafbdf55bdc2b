package main

import (
	"fmt"
	"strings"

	"github.com/NickyBoy89/java2cpp/model"
)

// RewriteStmts rewrites a list of statements in order. Local variables are
// declared in the context's scope as they are encountered, so a local only
// shadows a member from its declaration onwards
func RewriteStmts(stmts []model.Stmt, ctx Ctx) ([]model.Stmt, error) {
	rewritten := make([]model.Stmt, 0, len(stmts))
	for _, stmt := range stmts {
		r, err := RewriteStmt(stmt, ctx)
		if err != nil {
			return nil, err
		}
		rewritten = append(rewritten, r)
	}
	return rewritten, nil
}

// RewriteStmt rewrites every expression of a single statement with RewriteExpr
func RewriteStmt(stmt model.Stmt, ctx Ctx) (model.Stmt, error) {
	switch s := stmt.(type) {
	case nil:
		return nil, nil
	case *model.ExprStmt:
		x, err := RewriteExpr(s.X, ctx)
		if err != nil {
			return nil, err
		}
		return &model.ExprStmt{X: x}, nil
	case *model.Return:
		value, err := RewriteExpr(s.Value, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Return{Value: value}, nil
	case *model.LocalVar:
		// The initializer is resolved before the variable comes into scope
		init, err := RewriteExpr(s.Init, ctx)
		if err != nil {
			return nil, err
		}
		ctx.localScope.Declare(s.Name, s.Type)
		return &model.LocalVar{Type: s.Type, Name: s.Name, Init: init}, nil
	case *model.If:
		cond, err := RewriteExpr(s.Cond, ctx)
		if err != nil {
			return nil, err
		}
		then, err := RewriteStmt(s.Then, ctx.withChildScope())
		if err != nil {
			return nil, err
		}
		els, err := RewriteStmt(s.Else, ctx.withChildScope())
		if err != nil {
			return nil, err
		}
		return &model.If{Cond: cond, Then: then, Else: els}, nil
	case *model.While:
		cond, err := RewriteExpr(s.Cond, ctx)
		if err != nil {
			return nil, err
		}
		body, err := RewriteStmt(s.Body, ctx.withChildScope())
		if err != nil {
			return nil, err
		}
		return &model.While{Cond: cond, Body: body}, nil
	case *model.DoWhile:
		body, err := RewriteStmt(s.Body, ctx.withChildScope())
		if err != nil {
			return nil, err
		}
		cond, err := RewriteExpr(s.Cond, ctx)
		if err != nil {
			return nil, err
		}
		return &model.DoWhile{Body: body, Cond: cond}, nil
	case *model.Break:
		return &model.Break{}, nil
	case *model.Continue:
		return &model.Continue{}, nil
	case *model.For:
		loopCtx := ctx.withChildScope()
		init, err := RewriteStmts(s.Init, loopCtx)
		if err != nil {
			return nil, err
		}
		cond, err := RewriteExpr(s.Cond, loopCtx)
		if err != nil {
			return nil, err
		}
		update, err := rewriteExprs(s.Update, loopCtx)
		if err != nil {
			return nil, err
		}
		body, err := RewriteStmt(s.Body, loopCtx.withChildScope())
		if err != nil {
			return nil, err
		}
		return &model.For{Init: init, Cond: cond, Update: update, Body: body}, nil
	case *model.Block:
		list, err := RewriteStmts(s.List, ctx.withChildScope())
		if err != nil {
			return nil, err
		}
		return &model.Block{List: list}, nil
	}
	panic(fmt.Errorf("unknown statement type %T", stmt))
}

// WriteStmts writes a list of statements, one per line, at the current indentation
func WriteStmts(w *CodeWriter, stmts []model.Stmt, types TypeMapper) {
	for _, stmt := range stmts {
		WriteStmt(w, stmt, types)
	}
}

// WriteStmt writes a single statement. Bodies of control statements are
// always braced
func WriteStmt(w *CodeWriter, stmt model.Stmt, types TypeMapper) {
	switch s := stmt.(type) {
	case *model.ExprStmt:
		w.Writeln(ExprString(s.X, types) + ";")
	case *model.Return:
		if s.Value == nil {
			w.Writeln("return;")
			return
		}
		w.Writeln("return " + ExprString(s.Value, types) + ";")
	case *model.LocalVar:
		w.Writeln(localVarString(s, types) + ";")
	case *model.If:
		w.Write("if (" + ExprString(s.Cond, types) + ") ")
		writeIfChain(w, s, types)
	case *model.While:
		w.Writeln("while (" + ExprString(s.Cond, types) + ") {")
		writeBody(w, s.Body, types)
		w.Writeln("}")
	case *model.DoWhile:
		w.Writeln("do {")
		writeBody(w, s.Body, types)
		w.Writeln("} while (" + ExprString(s.Cond, types) + ");")
	case *model.Break:
		w.Writeln("break;")
	case *model.Continue:
		w.Writeln("continue;")
	case *model.For:
		w.Writeln("for (" + forInitString(s.Init, types) + "; " + ExprString(s.Cond, types) + "; " + exprList(s.Update, types) + ") {")
		writeBody(w, s.Body, types)
		w.Writeln("}")
	case *model.Block:
		w.Writeln("{")
		writeBody(w, s, types)
		w.Writeln("}")
	default:
		panic(fmt.Errorf("unknown statement type %T", stmt))
	}
}

// writeIfChain writes the branches of an if statement whose condition has
// already been written, folding `else if` chains
func writeIfChain(w *CodeWriter, s *model.If, types TypeMapper) {
	w.Writeln("{")
	writeBody(w, s.Then, types)
	switch els := s.Else.(type) {
	case nil:
		w.Writeln("}")
	case *model.If:
		w.Write("} else if (" + ExprString(els.Cond, types) + ") ")
		writeIfChain(w, els, types)
	default:
		w.Writeln("} else {")
		writeBody(w, els, types)
		w.Writeln("}")
	}
}

// writeBody writes the statements of a block, or a single unbraced statement,
// one level deeper
func writeBody(w *CodeWriter, body model.Stmt, types TypeMapper) {
	w.In()
	if block, ok := body.(*model.Block); ok {
		WriteStmts(w, block.List, types)
	} else if body != nil {
		WriteStmt(w, body, types)
	}
	w.Out()
}

func localVarString(s *model.LocalVar, types TypeMapper) string {
	decl := types.CppType(s.Type) + " " + s.Name
	if s.Init != nil {
		decl += " = " + ExprString(s.Init, types)
	}
	return decl
}

// forInitString renders the initializer clause of a for loop, which is either
// a single declaration or a list of expressions
func forInitString(init []model.Stmt, types TypeMapper) string {
	parts := make([]string, 0, len(init))
	for i, stmt := range init {
		switch s := stmt.(type) {
		case *model.LocalVar:
			// Only the first of several declarators carries the type
			if i == 0 {
				parts = append(parts, localVarString(s, types))
			} else {
				parts = append(parts, strings.TrimPrefix(localVarString(s, types), types.CppType(s.Type)+" "))
			}
		case *model.ExprStmt:
			parts = append(parts, ExprString(s.X, types))
		}
	}
	return strings.Join(parts, ", ")
}
