package model

// Expr is any expression that can appear in a class body
type Expr interface {
	exprNode()
}

// Stmt is any statement that can appear in a constructor or method body
type Stmt interface {
	stmtNode()
}

// MemberKind tells apart the two kinds of members a self access can name
type MemberKind int

const (
	// The member has not been resolved yet
	UnknownMember MemberKind = iota
	FieldMember
	MethodMember
)

func (k MemberKind) String() string {
	switch k {
	case FieldMember:
		return "field"
	case MethodMember:
		return "method"
	}
	return "member"
}

// LiteralKind is the kind of a literal value
type LiteralKind int

const (
	IntLit LiteralKind = iota
	LongLit
	FloatLit
	DoubleLit
	CharLit
	StringLit
	BoolLit
	NullLit
)

type (
	// Name is a bare identifier. It may refer to a parameter, a local
	// variable, a member of the enclosing instance or a class
	Name struct {
		Name string
		Pos  Position
	}

	// This is the bare self-reference, `this`
	This struct{}

	// SelfMemberAccess is an access to a field or method of the enclosing instance
	SelfMemberAccess struct {
		Member string
		// Set once the access has been resolved against the enclosing class
		Kind MemberKind
		Pos  Position
	}

	// Literal is a literal value, kept in its source spelling
	Literal struct {
		Kind  LiteralKind
		Value string
	}

	Binary struct {
		X  Expr
		Op string
		Y  Expr
	}

	Unary struct {
		Op string
		X  Expr
	}

	// Update is an increment or decrement, such as `i++` or `--i`
	Update struct {
		Op      string
		X       Expr
		Postfix bool
	}

	Paren struct {
		X Expr
	}

	// Assign is an assignment or compound assignment such as `x += 1`
	Assign struct {
		Target Expr
		Op     string
		Value  Expr
	}

	// Call is a function or method call. Fun is a Name or SelfMemberAccess for
	// calls without a receiver, or a FieldAccess for calls on another object
	Call struct {
		Fun  Expr
		Args []Expr
	}

	// FieldAccess is a member access on an object other than the enclosing instance
	FieldAccess struct {
		X    Expr
		Name string
	}

	Index struct {
		X     Expr
		Index Expr
	}

	// New is the creation of an object with `new`
	New struct {
		Type Type
		Args []Expr
	}

	// NewArray allocates a single dimension array, such as `new int[n]`.
	// Elem is the type of the elements, which may itself be an array type
	NewArray struct {
		Elem Type
		Len  Expr
	}

	Cast struct {
		Type Type
		X    Expr
	}

	// Conditional is the ternary `cond ? then : else`
	Conditional struct {
		Cond Expr
		Then Expr
		Else Expr
	}
)

func (*Name) exprNode()             {}
func (*This) exprNode()             {}
func (*SelfMemberAccess) exprNode() {}
func (*Literal) exprNode()          {}
func (*Binary) exprNode()           {}
func (*Unary) exprNode()            {}
func (*Update) exprNode()           {}
func (*Paren) exprNode()            {}
func (*Assign) exprNode()           {}
func (*Call) exprNode()             {}
func (*FieldAccess) exprNode()      {}
func (*Index) exprNode()            {}
func (*New) exprNode()              {}
func (*NewArray) exprNode()         {}
func (*Cast) exprNode()             {}
func (*Conditional) exprNode()      {}

type (
	ExprStmt struct {
		X Expr
	}

	// Return has a nil Value for a bare `return;`
	Return struct {
		Value Expr
	}

	// LocalVar declares a local variable, with an optional initial value
	LocalVar struct {
		Type Type
		Name string
		Init Expr
	}

	If struct {
		Cond Expr
		Then Stmt
		// nil without an else branch
		Else Stmt
	}

	While struct {
		Cond Expr
		Body Stmt
	}

	// DoWhile runs its body once before checking the condition
	DoWhile struct {
		Body Stmt
		Cond Expr
	}

	Break    struct{}
	Continue struct{}

	// For is the classic three-clause for loop. Any of the clauses may be empty
	For struct {
		Init   []Stmt
		Cond   Expr
		Update []Expr
		Body   Stmt
	}

	Block struct {
		List []Stmt
	}
)

func (*ExprStmt) stmtNode() {}
func (*Return) stmtNode()   {}
func (*LocalVar) stmtNode() {}
func (*If) stmtNode()       {}
func (*While) stmtNode()    {}
func (*DoWhile) stmtNode()  {}
func (*Break) stmtNode()    {}
func (*Continue) stmtNode() {}
func (*For) stmtNode()      {}
func (*Block) stmtNode()    {}
