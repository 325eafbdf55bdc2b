package symbol

import "github.com/NickyBoy89/java2cpp/model"

// Definition represents the name and type of a single member or variable
type Definition struct {
	Name string
	// The class that declares the member, empty for parameters and locals
	Owner string
	Kind  model.MemberKind
	// Declared type of a field or variable, or the return type of a method
	Type model.Type
	// If the definition is a method, it has parameters
	Parameters []model.Param
}

// Inherited reports whether the member was declared on a class other than the
// one it was looked up from
func (d *Definition) Inherited(from string) bool {
	return d.Owner != "" && d.Owner != from
}

