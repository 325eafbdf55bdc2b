// Package model contains the in-memory representation of the classes being
// translated. Everything in here is built once by the front end and then only
// read by the translator.
package model

import "strings"

// Access is the access level used when inheriting from a base class
type Access int

const (
	Public Access = iota
	Protected
	Private
)

func (a Access) String() string {
	switch a {
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return "public"
}

// Type is a Java type as written in the source
type Type struct {
	// The element type name, such as `int` or `String`
	Name string
	// Array dimensions, so that `int[][]` has two
	Dims int
}

func (t Type) String() string {
	return t.Name + strings.Repeat("[]", t.Dims)
}

// Param is a single parameter of a constructor or method
type Param struct {
	Name string
	Type Type
}

// FieldDecl is an instance field declaration
type FieldDecl struct {
	Name string
	Type Type
	// Optional initializer, nil for a field that is uninitialized at its declaration
	Init Expr
	Pos  Position
}

// SuperCall is a constructor's delegation to the base class constructor
type SuperCall struct {
	Args []Expr
	Pos  Position
}

// ConstructorDecl is a constructor. The call to the base constructor is kept
// out of the body, so that it is always emitted before any statement
type ConstructorDecl struct {
	Params    []Param
	SuperCall *SuperCall
	Body      []Stmt
	Pos       Position
}

// MethodDecl is an instance method declaration
type MethodDecl struct {
	Name       string
	ReturnType Type
	Params     []Param
	Body       []Stmt
	Pos        Position
}

// Signature identifies a method among its overloads, ex: calc(int,double)
func (m *MethodDecl) Signature() string {
	return signature(m.Name, m.Params)
}

func signature(name string, params []Param) string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = p.Type.String()
	}
	return name + "(" + strings.Join(types, ",") + ")"
}

// ClassDecl is a single class declaration. The base class is referenced by
// name only, and is resolved through a lookup table of all the classes
type ClassDecl struct {
	name         string
	base         string
	baseAccess   Access
	fields       []*FieldDecl
	constructors []*ConstructorDecl
	methods      []*MethodDecl
	pos          Position
}

// ClassSpec holds everything needed to construct a ClassDecl
type ClassSpec struct {
	Name string
	// The name of the base class, empty if the class has no base
	Base         string
	BaseAccess   Access
	Fields       []*FieldDecl
	Constructors []*ConstructorDecl
	Methods      []*MethodDecl
	Pos          Position
}

// NewClass validates a ClassSpec and builds the class from it
func NewClass(spec ClassSpec) (*ClassDecl, error) {
	seenFields := make(map[string]bool, len(spec.Fields))
	for _, field := range spec.Fields {
		if seenFields[field.Name] {
			err := Errorf(DuplicateMember, spec.Name, field.Name, "field %s is declared more than once", field.Name)
			err.Pos = field.Pos
			return nil, err
		}
		seenFields[field.Name] = true
	}

	seenMethods := make(map[string]bool, len(spec.Methods))
	for _, method := range spec.Methods {
		sig := method.Signature()
		if seenMethods[sig] {
			err := Errorf(DuplicateMember, spec.Name, method.Name, "method %s is declared more than once", sig)
			err.Pos = method.Pos
			return nil, err
		}
		seenMethods[sig] = true
	}

	seenConstructors := make(map[string]bool, len(spec.Constructors))
	for _, constructor := range spec.Constructors {
		sig := signature(spec.Name, constructor.Params)
		if seenConstructors[sig] {
			err := Errorf(DuplicateMember, spec.Name, spec.Name, "constructor %s is declared more than once", sig)
			err.Pos = constructor.Pos
			return nil, err
		}
		seenConstructors[sig] = true

		if constructor.SuperCall != nil && spec.Base == "" {
			err := Errorf(InvalidSuperCall, spec.Name, spec.Name, "constructor calls super but the class has no base class")
			err.Pos = constructor.SuperCall.Pos
			return nil, err
		}
	}

	return &ClassDecl{
		name:         spec.Name,
		base:         spec.Base,
		baseAccess:   spec.BaseAccess,
		fields:       spec.Fields,
		constructors: spec.Constructors,
		methods:      spec.Methods,
		pos:          spec.Pos,
	}, nil
}

func (c *ClassDecl) Name() string { return c.name }

// Base returns the name of the base class, and whether the class has one
func (c *ClassDecl) Base() (string, bool) { return c.base, c.base != "" }

func (c *ClassDecl) BaseAccess() Access { return c.baseAccess }
func (c *ClassDecl) Fields() []*FieldDecl { return c.fields }
func (c *ClassDecl) Constructors() []*ConstructorDecl { return c.constructors }
func (c *ClassDecl) Methods() []*MethodDecl { return c.methods }
func (c *ClassDecl) Pos() Position { return c.pos }

// HasDefaultConstructor reports whether the class can be constructed without
// arguments. A class that declares no constructors gets an implicit one
func (c *ClassDecl) HasDefaultConstructor() bool {
	if len(c.constructors) == 0 {
		return true
	}
	for _, constructor := range c.constructors {
		if len(constructor.Params) == 0 {
			return true
		}
	}
	return false
}
