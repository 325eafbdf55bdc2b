package symbol

import "github.com/NickyBoy89/java2cpp/model"

// ClassScope represents the members visible through the self-reference of a
// single class: its own fields and methods, and everything inherited along its
// base chain
type ClassScope struct {
	// The class the scope was built for
	Class *model.ClassDecl
	// The resolved base classes, nearest first
	Bases []*model.ClassDecl
	// Fields, in declaration order, with the class's own fields first
	Fields []*Definition
	// Methods, in declaration order, with the class's own methods first
	Methods []*Definition
}

func newClassScope(class *model.ClassDecl, bases []*model.ClassDecl) *ClassScope {
	scope := &ClassScope{Class: class, Bases: bases}
	for _, c := range append([]*model.ClassDecl{class}, bases...) {
		for _, field := range c.Fields() {
			// A field redeclared in a subclass hides the base one
			if scope.FindFieldByName(field.Name) != nil {
				continue
			}
			scope.Fields = append(scope.Fields, &Definition{
				Name:  field.Name,
				Owner: c.Name(),
				Kind:  model.FieldMember,
				Type:  field.Type,
			})
		}
		for _, method := range c.Methods() {
			scope.Methods = append(scope.Methods, &Definition{
				Name:       method.Name,
				Owner:      c.Name(),
				Kind:       model.MethodMember,
				Type:       method.ReturnType,
				Parameters: method.Params,
			})
		}
	}
	return scope
}

// Base returns the direct base class, or nil if the class has none
func (cs *ClassScope) Base() *model.ClassDecl {
	if len(cs.Bases) == 0 {
		return nil
	}
	return cs.Bases[0]
}

// FindMethod searches through the class's methods, including inherited ones
func (cs *ClassScope) FindMethod() Finder {
	cm := classMethodFinder(*cs)
	return &cm
}

// FindField searches through the class's fields, including inherited ones
func (cs *ClassScope) FindField() Finder {
	cf := classFieldFinder(*cs)
	return &cf
}

type classMethodFinder ClassScope

func (cm *classMethodFinder) By(criteria func(d *Definition) bool) []*Definition {
	results := []*Definition{}
	for _, method := range cm.Methods {
		if criteria(method) {
			results = append(results, method)
		}
	}
	return results
}

func (cm *classMethodFinder) ByName(name string) []*Definition {
	return cm.By(func(d *Definition) bool {
		return d.Name == name
	})
}

type classFieldFinder ClassScope

func (cf *classFieldFinder) By(criteria func(d *Definition) bool) []*Definition {
	results := []*Definition{}
	for _, field := range cf.Fields {
		if criteria(field) {
			results = append(results, field)
		}
	}
	return results
}

func (cf *classFieldFinder) ByName(name string) []*Definition {
	return cf.By(func(d *Definition) bool {
		return d.Name == name
	})
}

// FindFieldByName searches for a field by its name, and returns its definition
// or nil if none was found
func (cs *ClassScope) FindFieldByName(name string) *Definition {
	for _, field := range cs.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// HasMember reports whether the scope has a member of the given kind and name.
// UnknownMember matches either kind
func (cs *ClassScope) HasMember(kind model.MemberKind, name string) bool {
	switch kind {
	case model.FieldMember:
		return cs.FindFieldByName(name) != nil
	case model.MethodMember:
		return len(cs.FindMethod().ByName(name)) > 0
	}
	return cs.HasMember(model.FieldMember, name) || cs.HasMember(model.MethodMember, name)
}
