package main

import (
	"fmt"
	"strings"

	"github.com/NickyBoy89/java2cpp/model"
	"github.com/NickyBoy89/java2cpp/symbol"
	log "github.com/sirupsen/logrus"
)

// Ctx is the enclosing scope that names are resolved against while rewriting
// the body of a single constructor or method
type Ctx struct {
	className string
	// Every member visible through the self-reference, including inherited ones
	currentClass *symbol.ClassScope
	// Parameters and local variables
	localScope *symbol.LocalScope
	// Set while the instance does not exist yet, such as in the arguments of
	// the base constructor call
	noSelf bool
}

// Clone returns a copy of the context, so that it can be modified without
// affecting the original
func (c Ctx) Clone() Ctx {
	return c
}

// withChildScope returns a context with a nested local scope, for blocks
func (c Ctx) withChildScope() Ctx {
	clone := c.Clone()
	clone.localScope = c.localScope.Child()
	return clone
}

func (c Ctx) unresolved(member string, format string, args ...any) error {
	return model.Errorf(model.UnresolvedMember, c.className, member, format, args...)
}

// RewriteExpr resolves every access to the enclosing instance in an expression.
// Bare names that refer to a member become explicit self accesses, and explicit
// self accesses are checked against the members of the class. The expression
// is never modified, a rewritten copy is returned instead
func RewriteExpr(expr model.Expr, ctx Ctx) (model.Expr, error) {
	switch e := expr.(type) {
	case nil:
		return nil, nil
	case *model.Name:
		return rewriteName(e, model.FieldMember, ctx)
	case *model.SelfMemberAccess:
		kind := e.Kind
		if kind == model.UnknownMember {
			kind = model.FieldMember
		}
		return resolveSelfAccess(e, kind, ctx)
	case *model.This:
		return &model.This{}, nil
	case *model.Literal:
		lit := *e
		return &lit, nil
	case *model.Binary:
		x, err := RewriteExpr(e.X, ctx)
		if err != nil {
			return nil, err
		}
		y, err := RewriteExpr(e.Y, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Binary{X: x, Op: e.Op, Y: y}, nil
	case *model.Unary:
		x, err := RewriteExpr(e.X, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Unary{Op: e.Op, X: x}, nil
	case *model.Update:
		x, err := RewriteExpr(e.X, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Update{Op: e.Op, X: x, Postfix: e.Postfix}, nil
	case *model.Paren:
		x, err := RewriteExpr(e.X, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Paren{X: x}, nil
	case *model.Assign:
		target, err := RewriteExpr(e.Target, ctx)
		if err != nil {
			return nil, err
		}
		value, err := RewriteExpr(e.Value, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Assign{Target: target, Op: e.Op, Value: value}, nil
	case *model.Call:
		var fun model.Expr
		var err error
		// The callee of a call without a receiver names a method, not a field
		switch f := e.Fun.(type) {
		case *model.Name:
			fun, err = rewriteName(f, model.MethodMember, ctx)
		case *model.SelfMemberAccess:
			fun, err = resolveSelfAccess(f, model.MethodMember, ctx)
		default:
			fun, err = RewriteExpr(f, ctx)
		}
		if err != nil {
			return nil, err
		}
		args, err := rewriteExprs(e.Args, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Call{Fun: fun, Args: args}, nil
	case *model.FieldAccess:
		x, err := RewriteExpr(e.X, ctx)
		if err != nil {
			return nil, err
		}
		return &model.FieldAccess{X: x, Name: e.Name}, nil
	case *model.Index:
		x, err := RewriteExpr(e.X, ctx)
		if err != nil {
			return nil, err
		}
		index, err := RewriteExpr(e.Index, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Index{X: x, Index: index}, nil
	case *model.New:
		args, err := rewriteExprs(e.Args, ctx)
		if err != nil {
			return nil, err
		}
		return &model.New{Type: e.Type, Args: args}, nil
	case *model.NewArray:
		length, err := RewriteExpr(e.Len, ctx)
		if err != nil {
			return nil, err
		}
		return &model.NewArray{Elem: e.Elem, Len: length}, nil
	case *model.Cast:
		x, err := RewriteExpr(e.X, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Cast{Type: e.Type, X: x}, nil
	case *model.Conditional:
		cond, err := RewriteExpr(e.Cond, ctx)
		if err != nil {
			return nil, err
		}
		then, err := RewriteExpr(e.Then, ctx)
		if err != nil {
			return nil, err
		}
		els, err := RewriteExpr(e.Else, ctx)
		if err != nil {
			return nil, err
		}
		return &model.Conditional{Cond: cond, Then: then, Else: els}, nil
	}
	panic(fmt.Errorf("unknown expression type %T", expr))
}

func rewriteExprs(exprs []model.Expr, ctx Ctx) ([]model.Expr, error) {
	if exprs == nil {
		return nil, nil
	}
	rewritten := make([]model.Expr, len(exprs))
	for i, expr := range exprs {
		r, err := RewriteExpr(expr, ctx)
		if err != nil {
			return nil, err
		}
		rewritten[i] = r
	}
	return rewritten, nil
}

// rewriteName resolves a bare name. Parameters and locals shadow members, and
// a field name that is neither is left alone, since it may refer to a class.
// A bare callee must name a method of the class
func rewriteName(name *model.Name, kind model.MemberKind, ctx Ctx) (model.Expr, error) {
	if kind == model.FieldMember && ctx.localScope != nil && ctx.localScope.FindVariable(name.Name) != nil {
		return &model.Name{Name: name.Name, Pos: name.Pos}, nil
	}

	if ctx.currentClass != nil && ctx.currentClass.HasMember(kind, name.Name) {
		if ctx.noSelf {
			return nil, ctx.unresolved(name.Name, "cannot reference instance %s %s before the base class is initialized", kind, name.Name)
		}
		if def := ctx.currentClass.FindFieldByName(name.Name); kind == model.FieldMember && def.Inherited(ctx.className) {
			log.WithFields(log.Fields{
				"class": ctx.className,
				"field": name.Name,
				"owner": def.Owner,
			}).Debug("Resolved inherited field")
		}
		return &model.SelfMemberAccess{Member: name.Name, Kind: kind, Pos: name.Pos}, nil
	}

	// Without static members, a call with no receiver can only target the instance
	if kind == model.MethodMember {
		return nil, ctx.unresolved(name.Name, "%s has no method named %s", ctx.className, name.Name)
	}

	log.WithFields(log.Fields{
		"class": ctx.className,
		"name":  name.Name,
	}).Debug("Name does not refer to a member, leaving it unqualified")
	return &model.Name{Name: name.Name, Pos: name.Pos}, nil
}

func resolveSelfAccess(access *model.SelfMemberAccess, kind model.MemberKind, ctx Ctx) (model.Expr, error) {
	if ctx.noSelf {
		return nil, ctx.unresolved(access.Member, "cannot access this.%s before the base class is initialized", access.Member)
	}
	if ctx.currentClass == nil || !ctx.currentClass.HasMember(kind, access.Member) {
		return nil, ctx.unresolved(access.Member, "%s has no %s named %s", ctx.className, kind, access.Member)
	}
	return &model.SelfMemberAccess{Member: access.Member, Kind: kind, Pos: access.Pos}, nil
}

// ExprString renders an expression as C++. Self accesses are always rendered
// through the self-reference, ex: this->val
func ExprString(expr model.Expr, types TypeMapper) string {
	switch e := expr.(type) {
	case nil:
		return ""
	case *model.Name:
		return e.Name
	case *model.This:
		return "this"
	case *model.SelfMemberAccess:
		return "this->" + e.Member
	case *model.Literal:
		return literalString(e)
	case *model.Binary:
		return ExprString(e.X, types) + " " + e.Op + " " + ExprString(e.Y, types)
	case *model.Unary:
		operand := ExprString(e.X, types)
		// `- -x` must not turn into `--x`
		if (e.Op == "-" || e.Op == "+") && strings.HasPrefix(operand, e.Op) {
			return e.Op + " " + operand
		}
		return e.Op + operand
	case *model.Update:
		if e.Postfix {
			return ExprString(e.X, types) + e.Op
		}
		return e.Op + ExprString(e.X, types)
	case *model.Paren:
		return "(" + ExprString(e.X, types) + ")"
	case *model.Assign:
		return ExprString(e.Target, types) + " " + e.Op + " " + ExprString(e.Value, types)
	case *model.Call:
		args := exprList(e.Args, types)
		// Static library calls become calls to the matching C function
		if _, ok := libraryCall(e); ok {
			return e.Fun.(*model.FieldAccess).Name + "(" + args + ")"
		}
		return ExprString(e.Fun, types) + "(" + args + ")"
	case *model.FieldAccess:
		// Java references are translated to pointers
		return ExprString(e.X, types) + "->" + e.Name
	case *model.Index:
		return ExprString(e.X, types) + "[" + ExprString(e.Index, types) + "]"
	case *model.New:
		return "new " + types.ClassName(e.Type) + "(" + exprList(e.Args, types) + ")"
	case *model.NewArray:
		return "new " + types.CppType(e.Elem) + "[" + ExprString(e.Len, types) + "]"
	case *model.Cast:
		return "(" + types.CppType(e.Type) + ") " + ExprString(e.X, types)
	case *model.Conditional:
		return ExprString(e.Cond, types) + " ? " + ExprString(e.Then, types) + " : " + ExprString(e.Else, types)
	}
	panic(fmt.Errorf("unknown expression type %T", expr))
}

func exprList(exprs []model.Expr, types TypeMapper) string {
	rendered := make([]string, len(exprs))
	for i, expr := range exprs {
		rendered[i] = ExprString(expr, types)
	}
	return strings.Join(rendered, ", ")
}

func literalString(lit *model.Literal) string {
	switch lit.Kind {
	case model.NullLit:
		return "nullptr"
	case model.IntLit, model.LongLit:
		return strings.ReplaceAll(lit.Value, "_", "")
	case model.FloatLit:
		value := strings.ReplaceAll(lit.Value, "_", "")
		return floatingValue(value[:len(value)-1]) + value[len(value)-1:]
	case model.DoubleLit:
		// C++ has no suffix for doubles
		return floatingValue(strings.TrimRight(strings.ReplaceAll(lit.Value, "_", ""), "dD"))
	}
	return lit.Value
}

// floatingValue keeps a floating literal floating once its suffix is gone,
// ex: the 1 of `1D`, which C++ would read as an int
func floatingValue(value string) string {
	if strings.ContainsAny(value, ".eEpP") {
		return value
	}
	return value + ".0"
}
