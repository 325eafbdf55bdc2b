package parsing

import (
	"errors"
	"testing"

	"github.com/NickyBoy89/java2cpp/model"
	"github.com/stretchr/testify/require"
)

func parseClasses(t *testing.T, source string) ([]*model.ClassDecl, model.ErrorList) {
	t.Helper()
	file := &SourceFile{Name: "Test.java", Source: []byte(source)}
	require.NoError(t, file.ParseAST())
	return file.ParseClasses()
}

func TestParseInheritance(t *testing.T) {
	classes, errs := parseClasses(t, `
class BaseClass {
	int val;

	public BaseClass(int v) {
		val = v;
	}
}

class DerivedClass extends BaseClass {
	public DerivedClass(int v) {
		super(v);
	}

	public int calc() {
		return val + 5;
	}
}
`)
	require.Empty(t, errs)
	require.Len(t, classes, 2)

	base, derived := classes[0], classes[1]
	require.Equal(t, "BaseClass", base.Name())
	_, hasBase := base.Base()
	require.False(t, hasBase)
	require.Len(t, base.Fields(), 1)
	require.Equal(t, "val", base.Fields()[0].Name)
	require.Equal(t, model.Type{Name: "int"}, base.Fields()[0].Type)

	baseName, hasBase := derived.Base()
	require.True(t, hasBase)
	require.Equal(t, "BaseClass", baseName)
	require.Equal(t, model.Public, derived.BaseAccess())

	require.Len(t, derived.Constructors(), 1)
	ctor := derived.Constructors()[0]
	require.NotNil(t, ctor.SuperCall)
	require.Len(t, ctor.SuperCall.Args, 1)
	require.Equal(t, &model.Name{Name: "v", Pos: ctor.SuperCall.Args[0].(*model.Name).Pos}, ctor.SuperCall.Args[0])
	require.Empty(t, ctor.Body)

	require.Len(t, derived.Methods(), 1)
	calc := derived.Methods()[0]
	require.Equal(t, "calc", calc.Name)
	require.Len(t, calc.Body, 1)
	ret, ok := calc.Body[0].(*model.Return)
	require.True(t, ok)
	sum, ok := ret.Value.(*model.Binary)
	require.True(t, ok)
	require.Equal(t, "+", sum.Op)
	require.Equal(t, &model.Literal{Kind: model.IntLit, Value: "5"}, sum.Y)
}

func TestParseExplicitSelfAccess(t *testing.T) {
	classes, errs := parseClasses(t, `
class Counter {
	int count;

	void add(int n) {
		this.count += n;
		this.reset();
	}

	void reset() {}
}
`)
	require.Empty(t, errs)
	add := classes[0].Methods()[0]
	require.Len(t, add.Body, 2)

	assign := add.Body[0].(*model.ExprStmt).X.(*model.Assign)
	require.Equal(t, "+=", assign.Op)
	target, ok := assign.Target.(*model.SelfMemberAccess)
	require.True(t, ok)
	require.Equal(t, "count", target.Member)
	require.Equal(t, model.FieldMember, target.Kind)

	call := add.Body[1].(*model.ExprStmt).X.(*model.Call)
	fun, ok := call.Fun.(*model.SelfMemberAccess)
	require.True(t, ok)
	require.Equal(t, "reset", fun.Member)
	require.Equal(t, model.MethodMember, fun.Kind)
}

func TestParseStatements(t *testing.T) {
	classes, errs := parseClasses(t, `
class Loops {
	int sum(int[] values) {
		int total = 0, i;
		for (i = 0; i < values.length; i++) {
			total += values[i];
		}
		while (total > 100) total -= 100;
		if (total == 0) {
			return -1;
		} else if (total < 0) {
			return 0;
		}
		return total;
	}
}
`)
	require.Empty(t, errs)
	sum := classes[0].Methods()[0]
	require.Equal(t, model.Type{Name: "int", Dims: 1}, sum.Params[0].Type)

	// Both declarators become separate statements
	require.Len(t, sum.Body, 6)
	first := sum.Body[0].(*model.LocalVar)
	require.Equal(t, "total", first.Name)
	second := sum.Body[1].(*model.LocalVar)
	require.Equal(t, "i", second.Name)
	require.Nil(t, second.Init)

	loop := sum.Body[2].(*model.For)
	require.Len(t, loop.Init, 1)
	require.NotNil(t, loop.Cond)
	require.Len(t, loop.Update, 1)
	update := loop.Update[0].(*model.Update)
	require.True(t, update.Postfix)
	require.Equal(t, "++", update.Op)

	while := sum.Body[3].(*model.While)
	_, ok := while.Cond.(*model.Binary)
	require.True(t, ok, "the parentheses around a condition are dropped")

	ifStmt := sum.Body[4].(*model.If)
	_, ok = ifStmt.Else.(*model.If)
	require.True(t, ok)
}

func TestParseLoopControlAndArrays(t *testing.T) {
	classes, errs := parseClasses(t, `
class Buffer {
	int[][] rows;

	void fill(int n) {
		int[] data = new int[n];
		rows = new int[n][];
		do {
			n--;
			if (n == 2) continue;
			if (n < 0) break;
		} while (n > 0);
	}
}
`)
	require.Empty(t, errs)
	fill := classes[0].Methods()[0]
	require.Len(t, fill.Body, 3)

	data := fill.Body[0].(*model.LocalVar)
	alloc := data.Init.(*model.NewArray)
	require.Equal(t, model.Type{Name: "int"}, alloc.Elem)
	require.Equal(t, "n", alloc.Len.(*model.Name).Name)

	rows := fill.Body[1].(*model.ExprStmt).X.(*model.Assign)
	require.Equal(t, model.Type{Name: "int", Dims: 1}, rows.Value.(*model.NewArray).Elem)

	loop := fill.Body[2].(*model.DoWhile)
	_, ok := loop.Cond.(*model.Binary)
	require.True(t, ok)
	body := loop.Body.(*model.Block).List
	require.Len(t, body, 3)
	require.IsType(t, &model.Continue{}, body[1].(*model.If).Then)
	require.IsType(t, &model.Break{}, body[2].(*model.If).Then)
}

func TestParseSkipsBrokenClasses(t *testing.T) {
	classes, errs := parseClasses(t, `
class Good {
	int x;
}

class Nested {
	class Inner {}
}

interface Shape {}
`)
	require.Len(t, classes, 1)
	require.Equal(t, "Good", classes[0].Name())

	require.Len(t, errs, 2)
	for _, err := range errs {
		require.True(t, errors.Is(err, model.UnsupportedSyntax), "unexpected error %v", err)
		require.True(t, err.Pos.IsValid())
	}
	require.Equal(t, "Nested", errs[0].Class)
	require.Equal(t, "Shape", errs[1].Class)
}

func TestParseRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "static field", source: "class C { static int x; }"},
		{name: "generic class", source: "class C<T> { T value; }"},
		{name: "abstract method", source: "abstract class C { abstract void run(); }"},
		{name: "this constructor call", source: "class C { C() { this(1); } C(int x) {} }"},
		{name: "super method call", source: "class C extends B { void run() { super.run(); } }"},
		{name: "unsigned shift", source: "class C { int f(int x) { return x >>> 1; } }"},
		{name: "lambda", source: "class C { void f() { Runnable r = () -> {}; } }"},
		{name: "late super call", source: "class C extends B { C() { int x = 1; super(x); } }"},
		{name: "labeled break", source: "class C { void f() { outer: while (true) { break outer; } } }"},
		{name: "switch", source: "class C { int f(int x) { switch (x) { case 1: return 2; } return 0; } }"},
		{name: "multi-dimensional array", source: "class C { int[][] f() { return new int[2][3]; } }"},
		{name: "array initializer", source: "class C { int[] f() { return new int[] {1, 2}; } }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classes, errs := parseClasses(t, tt.source)
			require.Empty(t, classes)
			require.Len(t, errs, 1)
			require.ErrorIs(t, errs[0], model.UnsupportedSyntax)
			require.Equal(t, "C", errs[0].Class)
		})
	}
}

func TestParseDuplicateMembers(t *testing.T) {
	_, errs := parseClasses(t, `
class C {
	int x;
	double x;
}
`)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], model.DuplicateMember)
	require.Equal(t, "x", errs[0].Member)
}

func TestParseLiterals(t *testing.T) {
	classes, errs := parseClasses(t, `
class Literals {
	long big = 1_000L;
	double ratio = 2.5;
	float small = 0.5f;
	char letter = 'a';
	String name = "name";
	boolean flag = true;
	Literals next = null;
}
`)
	require.Empty(t, errs)

	want := []model.Literal{
		{Kind: model.LongLit, Value: "1_000L"},
		{Kind: model.DoubleLit, Value: "2.5"},
		{Kind: model.FloatLit, Value: "0.5f"},
		{Kind: model.CharLit, Value: "'a'"},
		{Kind: model.StringLit, Value: `"name"`},
		{Kind: model.BoolLit, Value: "true"},
		{Kind: model.NullLit, Value: "null"},
	}
	fields := classes[0].Fields()
	require.Len(t, fields, len(want))
	for i, field := range fields {
		require.Equal(t, &want[i], field.Init, "field %s", field.Name)
	}
}
