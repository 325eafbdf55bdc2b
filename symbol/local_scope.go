package symbol

import "github.com/NickyBoy89/java2cpp/model"

// LocalScope holds the parameters and local variables visible at a point in a
// constructor or method body. Each block opens a child scope
type LocalScope struct {
	parent    *LocalScope
	variables []*Definition
}

// NewLocalScope creates the outermost scope of a body, holding its parameters
func NewLocalScope(params []model.Param) *LocalScope {
	scope := &LocalScope{}
	for _, param := range params {
		scope.Declare(param.Name, param.Type)
	}
	return scope
}

// Child opens a nested scope, such as the body of a loop
func (ls *LocalScope) Child() *LocalScope {
	return &LocalScope{parent: ls}
}

// Declare adds a variable to the scope
func (ls *LocalScope) Declare(name string, t model.Type) {
	ls.variables = append(ls.variables, &Definition{Name: name, Type: t})
}

// FindVariable searches this scope and then every enclosing one to try and
// find a given variable by its name
func (ls *LocalScope) FindVariable(name string) *Definition {
	for scope := ls; scope != nil; scope = scope.parent {
		for _, v := range scope.variables {
			if v.Name == name {
				return v
			}
		}
	}
	return nil
}
