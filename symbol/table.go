package symbol

import (
	"fmt"
	"slices"
	"strings"

	"github.com/NickyBoy89/java2cpp/model"
	"golang.org/x/exp/maps"
)

// Table is the flat mapping from class name to class declaration, shared by
// every class of a translation run. It is built once before translation starts
// and is never modified afterwards, so it is safe for concurrent use
type Table struct {
	classes map[string]*model.ClassDecl
}

// NewTable builds the lookup table for a set of classes. If a class name is
// declared more than once, the first declaration wins and every other one is
// reported as a DuplicateClass error
func NewTable(classes []*model.ClassDecl) (*Table, model.ErrorList) {
	var errs model.ErrorList
	table := &Table{classes: make(map[string]*model.ClassDecl, len(classes))}
	for _, class := range classes {
		if _, exists := table.classes[class.Name()]; exists {
			err := model.Errorf(model.DuplicateClass, class.Name(), "", "class %s is declared more than once", class.Name())
			err.Pos = class.Pos()
			errs = append(errs, err)
			continue
		}
		table.classes[class.Name()] = class
	}
	return table, errs
}

// FindClass returns the class with the given name, or nil if there is none
func (t *Table) FindClass(name string) *model.ClassDecl {
	return t.classes[name]
}

// Names lists every class in the table in sorted order
func (t *Table) Names() []string {
	names := maps.Keys(t.classes)
	slices.Sort(names)
	return names
}

// ResolveBase returns the direct base class of a class, nil if it does not
// declare one, or an UnresolvedBase error if the base is not in the table
func (t *Table) ResolveBase(class *model.ClassDecl) (*model.ClassDecl, error) {
	baseName, ok := class.Base()
	if !ok {
		return nil, nil
	}
	base := t.FindClass(baseName)
	if base == nil {
		err := model.Errorf(model.UnresolvedBase, class.Name(), "", "base class %s is not declared", baseName)
		err.Pos = class.Pos()
		return nil, err
	}
	return base, nil
}

// BaseChain returns every ancestor of a class, nearest first
func (t *Table) BaseChain(class *model.ClassDecl) ([]*model.ClassDecl, error) {
	var chain []*model.ClassDecl
	visited := map[string]bool{class.Name(): true}
	path := []string{class.Name()}

	current := class
	for {
		base, err := t.ResolveBase(current)
		if err != nil {
			// Report the failure against the class being translated
			if classErr, ok := err.(*model.Error); ok && current != class {
				classErr.Msg = fmt.Sprintf("%s (inherited through %s)", classErr.Msg, current.Name())
				classErr.Class = class.Name()
				classErr.Pos = class.Pos()
			}
			return nil, err
		}
		if base == nil {
			return chain, nil
		}
		path = append(path, base.Name())
		if visited[base.Name()] {
			err := model.Errorf(model.InheritanceCycle, class.Name(), "", "cyclic inheritance: %s", strings.Join(path, " -> "))
			err.Pos = class.Pos()
			return nil, err
		}
		visited[base.Name()] = true
		chain = append(chain, base)
		current = base
	}
}

// Scope builds the member scope for a class, resolving its whole base chain
func (t *Table) Scope(class *model.ClassDecl) (*ClassScope, error) {
	bases, err := t.BaseChain(class)
	if err != nil {
		return nil, err
	}
	return newClassScope(class, bases), nil
}
