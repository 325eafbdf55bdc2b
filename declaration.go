package main

import (
	"strings"

	"github.com/NickyBoy89/java2cpp/model"
	"github.com/NickyBoy89/java2cpp/symbol"
	log "github.com/sirupsen/logrus"
)

// ClassUnit is the complete rendering of a single class
type ClassUnit struct {
	Name string `msgpack:"name"`
	Base string `msgpack:"base,omitempty"`
	// Headers the class needs, sorted
	Includes []string `msgpack:"includes"`
	// The class declaration, from its header to its closing brace
	Text string `msgpack:"text"`
}

// Emitter renders classes into C++. It only reads from the lookup table, so a
// single emitter can be shared between goroutines
type Emitter struct {
	table   *symbol.Table
	types   TypeMapper
	indent  string
	prelude []string
}

func NewEmitter(table *symbol.Table, opts Options) *Emitter {
	indent := opts.Indent
	if indent == "" {
		indent = "\t"
	}
	prelude := opts.Prelude
	if prelude == nil {
		prelude = defaultPrelude
	}
	return &Emitter{
		table:   table,
		types:   TypeMapper{Overrides: opts.Types},
		indent:  indent,
		prelude: prelude,
	}
}

// EmitClass renders a single class. Either the whole class is rendered, or an
// error is returned and nothing is
func (e *Emitter) EmitClass(class *model.ClassDecl) (*ClassUnit, error) {
	unit, err := e.emitClass(class)
	if err != nil {
		if classErr, ok := err.(*model.Error); ok && !classErr.Pos.IsValid() {
			classErr.Pos = class.Pos()
		}
		return nil, err
	}
	return unit, nil
}

func (e *Emitter) emitClass(class *model.ClassDecl) (*ClassUnit, error) {
	scope, err := e.table.Scope(class)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"class": class.Name(),
		"bases": len(scope.Bases),
	}).Debug("Emitting class")

	includes := collectIncludes(class, e.prelude)

	w := NewCodeWriter(e.indent)
	w.Writeln(InheritanceClause(class) + " {")
	// Every member is public, as Java code relies on package access
	w.Writeln("public:")
	w.In()

	var wroteMember bool
	separate := func() {
		if wroteMember {
			w.Writeln("")
		}
		wroteMember = true
	}

	if len(class.Fields()) > 0 {
		separate()
	}
	for _, field := range class.Fields() {
		decl, err := e.fieldDecl(field, scope)
		if err != nil {
			return nil, err
		}
		w.Writeln(decl)
	}

	if len(class.Constructors()) == 0 {
		if err := e.checkImplicitConstructor(class, scope); err != nil {
			return nil, err
		}
	}
	for _, constructor := range class.Constructors() {
		header, body, err := e.TranslateConstructor(class, constructor, scope)
		if err != nil {
			return nil, err
		}
		separate()
		w.Writeln(header + " {")
		w.In()
		WriteStmts(w, body, e.types)
		w.Out()
		w.Writeln("}")
	}

	for _, method := range class.Methods() {
		header, body, err := e.translateMethod(class, method, scope)
		if err != nil {
			return nil, err
		}
		separate()
		w.Writeln(header + " {")
		w.In()
		WriteStmts(w, body, e.types)
		w.Out()
		w.Writeln("}")
	}

	w.Out()
	w.Writeln("};")

	base, _ := class.Base()
	return &ClassUnit{
		Name:     class.Name(),
		Base:     base,
		Includes: includes,
		Text:     w.String(),
	}, nil
}

func (e *Emitter) fieldDecl(field *model.FieldDecl, scope *symbol.ClassScope) (string, error) {
	decl := e.types.CppType(field.Type) + " " + field.Name
	if field.Init != nil {
		ctx := Ctx{
			className:    scope.Class.Name(),
			currentClass: scope,
			localScope:   symbol.NewLocalScope(nil),
		}
		init, err := RewriteExpr(field.Init, ctx)
		if err != nil {
			return "", err
		}
		decl += " = " + ExprString(init, e.types)
	}
	return decl + ";", nil
}

// TranslateConstructor translates a constructor into its C++ header and body.
// The call to the base constructor is placed in the member initializer list,
// so it always runs before the first statement of the body
//
// Ex: DerivedClass(int v) : BaseClass(v)
func (e *Emitter) TranslateConstructor(class *model.ClassDecl, constructor *model.ConstructorDecl, scope *symbol.ClassScope) (string, []model.Stmt, error) {
	header := class.Name() + "(" + e.paramList(constructor.Params) + ")"

	base := scope.Base()
	switch {
	case base == nil && constructor.SuperCall != nil:
		err := model.Errorf(model.InvalidSuperCall, class.Name(), class.Name(), "constructor calls super but the class has no base class")
		err.Pos = constructor.SuperCall.Pos
		return "", nil, err
	case base != nil && constructor.SuperCall != nil:
		// Only the constructor's parameters are visible here, the instance
		// does not exist until the base constructor has returned
		argCtx := Ctx{
			className:    class.Name(),
			currentClass: scope,
			localScope:   symbol.NewLocalScope(constructor.Params),
			noSelf:       true,
		}
		args, err := rewriteExprs(constructor.SuperCall.Args, argCtx)
		if err != nil {
			return "", nil, err
		}
		if !hasConstructorWithArity(base, len(args)) {
			log.WithFields(log.Fields{
				"class":     class.Name(),
				"base":      base.Name(),
				"arguments": len(args),
			}).Warn("No base constructor takes this number of arguments")
		}
		header += " : " + base.Name() + "(" + exprList(args, e.types) + ")"
	case base != nil && !base.HasDefaultConstructor():
		// There is no explicit call, and the base cannot be default constructed
		err := model.Errorf(model.MissingSuperCall, class.Name(), class.Name(), "base class %s has no zero-argument constructor, an explicit super call is required", base.Name())
		err.Pos = constructor.Pos
		return "", nil, err
	}

	ctx := Ctx{
		className:    class.Name(),
		currentClass: scope,
		localScope:   symbol.NewLocalScope(constructor.Params),
	}
	body, err := RewriteStmts(constructor.Body, ctx)
	if err != nil {
		return "", nil, err
	}
	return header, body, nil
}

// checkImplicitConstructor checks that a class that declares no constructor
// can have its base default constructed, as its implicit constructor would
func (e *Emitter) checkImplicitConstructor(class *model.ClassDecl, scope *symbol.ClassScope) error {
	base := scope.Base()
	if base == nil || base.HasDefaultConstructor() {
		return nil
	}
	return model.Errorf(model.MissingSuperCall, class.Name(), class.Name(), "class declares no constructor, but base class %s has no zero-argument constructor", base.Name())
}

func (e *Emitter) translateMethod(class *model.ClassDecl, method *model.MethodDecl, scope *symbol.ClassScope) (string, []model.Stmt, error) {
	header := e.types.CppType(method.ReturnType) + " " + method.Name + "(" + e.paramList(method.Params) + ")"

	ctx := Ctx{
		className:    class.Name(),
		currentClass: scope,
		localScope:   symbol.NewLocalScope(method.Params),
	}
	body, err := RewriteStmts(method.Body, ctx)
	if err != nil {
		return "", nil, err
	}
	return header, body, nil
}

func (e *Emitter) paramList(params []model.Param) string {
	rendered := make([]string, len(params))
	for i, p := range params {
		rendered[i] = e.types.CppType(p.Type) + " " + p.Name
	}
	return strings.Join(rendered, ", ")
}

func hasConstructorWithArity(class *model.ClassDecl, arity int) bool {
	if len(class.Constructors()) == 0 {
		return arity == 0
	}
	for _, constructor := range class.Constructors() {
		if len(constructor.Params) == arity {
			return true
		}
	}
	return false
}
