package model

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a translation failure
type Kind string

const (
	DuplicateMember   Kind = "DuplicateMember"
	InvalidSuperCall  Kind = "InvalidSuperCall"
	MissingSuperCall  Kind = "MissingSuperCall"
	UnresolvedMember  Kind = "UnresolvedMember"
	UnresolvedBase    Kind = "UnresolvedBase"
	InheritanceCycle  Kind = "InheritanceCycle"
	DuplicateClass    Kind = "DuplicateClass"
	UnsupportedSyntax Kind = "UnsupportedSyntax"
)

// Error reports a failure that prevents a single class from being emitted
type Error struct {
	Kind Kind
	// The class the error belongs to
	Class string
	// The offending member, if any
	Member string
	Pos    Position
	Msg    string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		fmt.Fprintf(&b, "%s: ", e.Pos)
	}
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Class)
	if e.Member != "" {
		b.WriteString(".")
		b.WriteString(e.Member)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

// Is allows errors.Is(err, model.UnresolvedBase) style checks against a kind
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	return false
}

// Kind implements error so that kinds can be used as errors.Is targets
func (k Kind) Error() string {
	return string(k)
}

// Errorf builds an error of the given kind
func Errorf(kind Kind, class, member string, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Class:  class,
		Member: member,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// ErrorList collects the failures of a whole batch
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors:\n\t%s", len(l), strings.Join(msgs, "\n\t"))
}

// Unwrap exposes the individual errors to errors.Is and errors.As
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Sort orders the list by position, then class, then kind
func (l ErrorList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i], l[j]
		if a.Pos.File != b.Pos.File {
			return a.Pos.File < b.Pos.File
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.Kind < b.Kind
	})
}

// Err returns nil for an empty list, so a list can be returned as an error
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Position is a location in a source file, with a 1-based line and column
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
