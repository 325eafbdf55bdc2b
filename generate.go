package main

import (
	"slices"
	"strings"

	"github.com/NickyBoy89/java2cpp/model"
)

// CodeWriter accumulates indented lines of C++ source
type CodeWriter struct {
	indent string
	level  int
	buf    strings.Builder
	// Whether the current line has been indented yet
	midLine bool
}

func NewCodeWriter(indent string) *CodeWriter {
	return &CodeWriter{indent: indent}
}

// Write appends text to the current line
func (w *CodeWriter) Write(text string) {
	if !w.midLine {
		w.buf.WriteString(strings.Repeat(w.indent, w.level))
		w.midLine = true
	}
	w.buf.WriteString(text)
}

// Writeln appends text and ends the line. Empty lines are never indented
func (w *CodeWriter) Writeln(text string) {
	if text != "" {
		w.Write(text)
	}
	w.buf.WriteByte('\n')
	w.midLine = false
}

func (w *CodeWriter) In() {
	w.level++
}

func (w *CodeWriter) Out() {
	if w.level > 0 {
		w.level--
	}
}

func (w *CodeWriter) String() string {
	return w.buf.String()
}

// Headers that every translated file includes, regardless of what it uses
var defaultPrelude = []string{"<math.h>", "<string.h>"}

// Java primitive types, and their C++ spelling
var primitiveTypes = map[string]string{
	"boolean": "bool",
	"byte":    "int8_t",
	"char":    "char",
	"short":   "short",
	"int":     "int",
	"long":    "long",
	"float":   "float",
	"double":  "double",
	"void":    "void",
}

// Library types that are used by value
var libraryTypes = map[string]string{
	"String": "std::string",
}

// Headers implied by the use of a type
var typeHeaders = map[string]string{
	"byte":   "<stdint.h>",
	"String": "<string>",
}

// Classes whose static methods map onto free functions of a C header
var libraryClasses = map[string]string{
	"Math": "<math.h>",
}

// TypeMapper converts Java types into C++ types
type TypeMapper struct {
	// Replaces the C++ spelling of a Java type name, ex: "long" -> "int64_t"
	Overrides map[string]string
}

// CppType returns the C++ spelling of a Java type. Class references and arrays
// become pointers
func (tm TypeMapper) CppType(t model.Type) string {
	name := tm.elementType(t.Name)
	return name + strings.Repeat("*", t.Dims)
}

func (tm TypeMapper) elementType(name string) string {
	if override, ok := tm.Overrides[name]; ok {
		return override
	}
	if cpp, ok := primitiveTypes[name]; ok {
		return cpp
	}
	if lib, ok := libraryTypes[name]; ok {
		return lib
	}
	return name + "*"
}

// ClassName returns the type name used after `new`, which is never a pointer
func (tm TypeMapper) ClassName(t model.Type) string {
	if override, ok := tm.Overrides[t.Name]; ok {
		return override
	}
	if cpp, ok := primitiveTypes[t.Name]; ok {
		return cpp
	}
	if lib, ok := libraryTypes[t.Name]; ok {
		return lib
	}
	return t.Name
}

// includeSet collects the headers required by a class unit
type includeSet map[string]struct{}

func newIncludeSet(prelude []string) includeSet {
	set := includeSet{}
	for _, header := range prelude {
		set.add(header)
	}
	return set
}

func (s includeSet) add(header string) {
	if header != "" {
		s[header] = struct{}{}
	}
}

func (s includeSet) addType(t model.Type) {
	s.add(typeHeaders[t.Name])
}

// sorted returns the headers in a stable order
func (s includeSet) sorted() []string {
	headers := make([]string, 0, len(s))
	for header := range s {
		headers = append(headers, header)
	}
	slices.Sort(headers)
	return headers
}

// collectIncludes walks every type and expression of a class and records the
// headers that they require
func collectIncludes(class *model.ClassDecl, prelude []string) []string {
	set := newIncludeSet(prelude)
	for _, field := range class.Fields() {
		set.addType(field.Type)
		walkExpr(field.Init, set)
	}
	for _, constructor := range class.Constructors() {
		for _, p := range constructor.Params {
			set.addType(p.Type)
		}
		if constructor.SuperCall != nil {
			for _, arg := range constructor.SuperCall.Args {
				walkExpr(arg, set)
			}
		}
		walkStmts(constructor.Body, set)
	}
	for _, method := range class.Methods() {
		set.addType(method.ReturnType)
		for _, p := range method.Params {
			set.addType(p.Type)
		}
		walkStmts(method.Body, set)
	}
	return set.sorted()
}

func walkStmts(stmts []model.Stmt, set includeSet) {
	for _, stmt := range stmts {
		walkStmt(stmt, set)
	}
}

func walkStmt(stmt model.Stmt, set includeSet) {
	switch s := stmt.(type) {
	case *model.ExprStmt:
		walkExpr(s.X, set)
	case *model.Return:
		walkExpr(s.Value, set)
	case *model.LocalVar:
		set.addType(s.Type)
		walkExpr(s.Init, set)
	case *model.If:
		walkExpr(s.Cond, set)
		walkStmt(s.Then, set)
		walkStmt(s.Else, set)
	case *model.While:
		walkExpr(s.Cond, set)
		walkStmt(s.Body, set)
	case *model.DoWhile:
		walkStmt(s.Body, set)
		walkExpr(s.Cond, set)
	case *model.For:
		walkStmts(s.Init, set)
		walkExpr(s.Cond, set)
		for _, u := range s.Update {
			walkExpr(u, set)
		}
		walkStmt(s.Body, set)
	case *model.Block:
		walkStmts(s.List, set)
	}
}

func walkExpr(expr model.Expr, set includeSet) {
	switch e := expr.(type) {
	case *model.Literal:
		if e.Kind == model.StringLit {
			set.add("<string>")
		}
	case *model.Binary:
		walkExpr(e.X, set)
		walkExpr(e.Y, set)
	case *model.Unary:
		walkExpr(e.X, set)
	case *model.Update:
		walkExpr(e.X, set)
	case *model.Paren:
		walkExpr(e.X, set)
	case *model.Assign:
		walkExpr(e.Target, set)
		walkExpr(e.Value, set)
	case *model.Call:
		if lib, ok := libraryCall(e); ok {
			set.add(libraryClasses[lib])
		} else {
			walkExpr(e.Fun, set)
		}
		for _, arg := range e.Args {
			walkExpr(arg, set)
		}
	case *model.FieldAccess:
		walkExpr(e.X, set)
	case *model.Index:
		walkExpr(e.X, set)
		walkExpr(e.Index, set)
	case *model.New:
		set.addType(e.Type)
		for _, arg := range e.Args {
			walkExpr(arg, set)
		}
	case *model.NewArray:
		set.addType(e.Elem)
		walkExpr(e.Len, set)
	case *model.Cast:
		set.addType(e.Type)
		walkExpr(e.X, set)
	case *model.Conditional:
		walkExpr(e.Cond, set)
		walkExpr(e.Then, set)
		walkExpr(e.Else, set)
	}
}

// libraryCall reports whether a call is a static call into a library class,
// such as `Math.sqrt(x)`, and returns the name of that class
func libraryCall(call *model.Call) (string, bool) {
	access, ok := call.Fun.(*model.FieldAccess)
	if !ok {
		return "", false
	}
	recv, ok := access.X.(*model.Name)
	if !ok {
		return "", false
	}
	_, known := libraryClasses[recv.Name]
	return recv.Name, known
}

// InheritanceClause renders the header of a class, along with its base class
//
// Ex: class DerivedClass : public BaseClass
func InheritanceClause(class *model.ClassDecl) string {
	header := "class " + class.Name()
	if base, ok := class.Base(); ok {
		header += " : " + class.BaseAccess().String() + " " + base
	}
	return header
}
