package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/NickyBoy89/java2cpp/model"
	"github.com/NickyBoy89/java2cpp/symbol"
)

func newTestEmitter(t *testing.T, classes ...*model.ClassDecl) *Emitter {
	t.Helper()
	table, errs := symbol.NewTable(classes)
	if len(errs) > 0 {
		t.Fatalf("Failed to build table: %v", errs)
	}
	return NewEmitter(table, Options{})
}

func intParam(name string) model.Param {
	return model.Param{Name: name, Type: model.Type{Name: "int"}}
}

func TestTranslateConstructorInitializerList(t *testing.T) {
	base := mustClass(t, model.ClassSpec{
		Name:         "BaseClass",
		Constructors: []*model.ConstructorDecl{{Params: []model.Param{intParam("v")}}},
	})
	ctor := &model.ConstructorDecl{
		Params: []model.Param{intParam("v")},
		SuperCall: &model.SuperCall{Args: []model.Expr{
			&model.Binary{X: &model.Name{Name: "v"}, Op: "*", Y: &model.Literal{Kind: model.IntLit, Value: "2"}},
		}},
		Body: []model.Stmt{&model.Return{}},
	}
	derived := mustClass(t, model.ClassSpec{
		Name:         "DerivedClass",
		Base:         "BaseClass",
		Constructors: []*model.ConstructorDecl{ctor},
	})

	emitter := newTestEmitter(t, base, derived)
	scope := scopeFor(t, base, derived)

	header, body, err := emitter.TranslateConstructor(derived, ctor, scope)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if header != "DerivedClass(int v) : BaseClass(v * 2)" {
		t.Errorf("Unexpected header: %s", header)
	}
	if len(body) != 1 {
		t.Errorf("Expected the body to be kept as is, got %d statements", len(body))
	}
}

func TestTranslateConstructorWithoutBase(t *testing.T) {
	ctor := &model.ConstructorDecl{Params: []model.Param{intParam("x")}}
	class := mustClass(t, model.ClassSpec{Name: "Plain", Constructors: []*model.ConstructorDecl{ctor}})

	header, _, err := newTestEmitter(t, class).TranslateConstructor(class, ctor, scopeFor(t, class))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if header != "Plain(int x)" {
		t.Errorf("Expected no initializer list, got %s", header)
	}
}

func TestTranslateConstructorMissingSuperCall(t *testing.T) {
	base := mustClass(t, model.ClassSpec{
		Name:         "Base",
		Constructors: []*model.ConstructorDecl{{Params: []model.Param{intParam("v")}}},
	})
	ctor := &model.ConstructorDecl{Pos: model.Position{File: "Derived.java", Line: 3, Column: 2}}
	derived := mustClass(t, model.ClassSpec{Name: "Derived", Base: "Base", Constructors: []*model.ConstructorDecl{ctor}})

	_, _, err := newTestEmitter(t, base, derived).TranslateConstructor(derived, ctor, scopeFor(t, base, derived))
	if !errors.Is(err, model.MissingSuperCall) {
		t.Fatalf("Expected a MissingSuperCall error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Derived.java:3:2: MissingSuperCall") {
		t.Errorf("Expected the error to point at the constructor, got %v", err)
	}
}

func TestEmitClassLayout(t *testing.T) {
	class := mustClass(t, model.ClassSpec{
		Name: "Point",
		Fields: []*model.FieldDecl{
			{Name: "x", Type: model.Type{Name: "int"}, Init: &model.Literal{Kind: model.IntLit, Value: "0"}},
			{Name: "next", Type: model.Type{Name: "Point"}},
		},
		Methods: []*model.MethodDecl{{
			Name:       "getX",
			ReturnType: model.Type{Name: "int"},
			Body:       []model.Stmt{&model.Return{Value: &model.Name{Name: "x"}}},
		}},
	})

	unit, err := newTestEmitter(t, class).EmitClass(class)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := strings.Join([]string{
		"class Point {",
		"public:",
		"\tint x = 0;",
		"\tPoint* next;",
		"",
		"\tint getX() {",
		"\t\treturn this->x;",
		"\t}",
		"};",
		"",
	}, "\n")
	if unit.Text != expected {
		t.Errorf("Unexpected output:\n%s\nExpected:\n%s", unit.Text, expected)
	}
	if unit.Name != "Point" || unit.Base != "" {
		t.Errorf("Unexpected unit metadata: %+v", unit)
	}
}

func TestEmitClassFillsInPosition(t *testing.T) {
	class := mustClass(t, model.ClassSpec{
		Name: "Broken",
		Methods: []*model.MethodDecl{{
			Name:       "get",
			ReturnType: model.Type{Name: "int"},
			Body:       []model.Stmt{&model.Return{Value: &model.SelfMemberAccess{Member: "missing", Kind: model.FieldMember}}},
		}},
		Pos: model.Position{File: "Broken.java", Line: 1, Column: 1},
	})

	unit, err := newTestEmitter(t, class).EmitClass(class)
	if unit != nil {
		t.Fatalf("Expected no unit for a failed class, got %+v", unit)
	}
	var classErr *model.Error
	if !errors.As(err, &classErr) || classErr.Pos != class.Pos() {
		t.Fatalf("Expected the error to carry the class position, got %v", err)
	}
}
