package parser_test

import (
	"strings"
	"testing"

	"octls/internal/ast"
	"octls/internal/parser"
	"octls/internal/source"
)

// statements unwraps the top-level block and drops the trailing
// end-of-input marker.
func statements(t *testing.T, input string) []source.Node[ast.Statement] {
	t.Helper()
	root := parser.Parse(input)
	block, ok := root.Data.(*ast.Block)
	if !ok {
		t.Fatalf("root is %T, want *ast.Block", root.Data)
	}
	if len(block.Stmts) == 0 {
		t.Fatal("block has no statements, want at least the end marker")
	}
	last := block.Stmts[len(block.Stmts)-1]
	if _, ok := last.Data.(*ast.EOI); !ok {
		t.Fatalf("trailing statement is %T, want *ast.EOI", last.Data)
	}
	return block.Stmts[:len(block.Stmts)-1]
}

func parseErrors(input string) []source.Node[string] {
	return ast.Errors(ast.StmtTree(parser.Parse(input)))
}

func singleExpr(t *testing.T, input string) source.Node[ast.Expr] {
	t.Helper()
	stmts := statements(t, input)
	if len(stmts) != 1 {
		t.Fatalf("%q: %d statements, want 1", input, len(stmts))
	}
	es, ok := stmts[0].Data.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("%q: statement is %T, want *ast.ExprStmt", input, stmts[0].Data)
	}
	return es.X
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "  \n % only a comment\n"} {
		if stmts := statements(t, input); len(stmts) != 0 {
			t.Errorf("%q: %d statements, want 0", input, len(stmts))
		}
	}
}

func TestAssignment(t *testing.T) {
	stmts := statements(t, "x = 1 + 2\n")
	if len(stmts) != 1 {
		t.Fatalf("%d statements, want 1", len(stmts))
	}
	assign, ok := stmts[0].Data.(*ast.Assignment)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Assignment", stmts[0].Data)
	}
	if assign.Name != "x" {
		t.Errorf("target = %q, want x", assign.Name)
	}
	if _, ok := assign.Value.Data.(*ast.BinaryOp); !ok {
		t.Errorf("value is %T, want *ast.BinaryOp", assign.Value.Data)
	}
}

func TestAugmentedAssignment(t *testing.T) {
	tests := []struct {
		input string
		op    ast.Op
	}{
		{"x += 1", ast.OpAdd},
		{"x -= 1", ast.OpSub},
		{"x *= 2", ast.OpMul},
		{"x /= 2", ast.OpDiv},
	}
	for _, tt := range tests {
		stmts := statements(t, tt.input)
		aug, ok := stmts[0].Data.(*ast.AugAssignment)
		if !ok {
			t.Fatalf("%q: statement is %T, want *ast.AugAssignment", tt.input, stmts[0].Data)
		}
		if aug.Name != "x" || aug.Op != tt.op {
			t.Errorf("%q: got %s %s=, want x %s=", tt.input, aug.Name, aug.Op, tt.op)
		}
	}
}

func TestIgnoreOutput(t *testing.T) {
	stmts := statements(t, "x = 1;\ny = 2\n")
	if len(stmts) != 2 {
		t.Fatalf("%d statements, want 2", len(stmts))
	}
	ign, ok := stmts[0].Data.(*ast.IgnoreOutput)
	if !ok {
		t.Fatalf("first statement is %T, want *ast.IgnoreOutput", stmts[0].Data)
	}
	if _, ok := ign.Inner.Data.(*ast.Assignment); !ok {
		t.Errorf("wrapped statement is %T, want *ast.Assignment", ign.Inner.Data)
	}
	if _, ok := stmts[1].Data.(*ast.Assignment); !ok {
		t.Errorf("second statement is %T, want a bare *ast.Assignment", stmts[1].Data)
	}
}

func TestPrecedence(t *testing.T) {
	// Multiplication binds tighter than addition.
	expr := singleExpr(t, "1 + 2 * 3\n")
	add, ok := expr.Data.(*ast.BinaryOp)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("root = %T %v, want addition", expr.Data, ok)
	}
	mul, ok := add.RHS.Data.(*ast.BinaryOp)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("right operand = %T, want the multiplication", add.RHS.Data)
	}
}

func TestPowerRightAssociative(t *testing.T) {
	expr := singleExpr(t, "2 ^ 3 ^ 2\n")
	outer, ok := expr.Data.(*ast.BinaryOp)
	if !ok || outer.Op != ast.OpPow {
		t.Fatalf("root = %T, want power", expr.Data)
	}
	if _, ok := outer.LHS.Data.(*ast.LitNumber); !ok {
		t.Errorf("left operand = %T, want the bare literal", outer.LHS.Data)
	}
	inner, ok := outer.RHS.Data.(*ast.BinaryOp)
	if !ok || inner.Op != ast.OpPow {
		t.Errorf("right operand = %T, want the nested power", outer.RHS.Data)
	}
}

func TestPrefixMinusDesugarsToSubtraction(t *testing.T) {
	expr := singleExpr(t, "-x\n")
	sub, ok := expr.Data.(*ast.BinaryOp)
	if !ok || sub.Op != ast.OpSub {
		t.Fatalf("root = %T, want subtraction", expr.Data)
	}
	zero, ok := sub.LHS.Data.(*ast.LitNumber)
	if !ok || zero.Value != 0 {
		t.Fatalf("left operand = %#v, want the zero literal", sub.LHS.Data)
	}
	if _, ok := sub.RHS.Data.(*ast.Identifier); !ok {
		t.Errorf("right operand = %T, want the identifier", sub.RHS.Data)
	}
}

func TestRanges(t *testing.T) {
	expr := singleExpr(t, "1:10\n")
	r, ok := expr.Data.(*ast.RangeExpr)
	if !ok {
		t.Fatalf("root = %T, want *ast.RangeExpr", expr.Data)
	}
	if r.Step != nil {
		t.Error("two-element range must have no step")
	}

	expr = singleExpr(t, "0:0.5:10\n")
	r, ok = expr.Data.(*ast.RangeExpr)
	if !ok {
		t.Fatalf("stepped root = %T, want *ast.RangeExpr", expr.Data)
	}
	if r.Step == nil {
		t.Fatal("three-element range must have a step")
	}
	step, ok := r.Step.Data.(*ast.LitNumber)
	if !ok || step.Value != 0.5 {
		t.Errorf("step = %#v, want 0.5", r.Step.Data)
	}
}

func TestRangeBindsLooserThanBinary(t *testing.T) {
	expr := singleExpr(t, "1+1:4*2\n")
	r, ok := expr.Data.(*ast.RangeExpr)
	if !ok {
		t.Fatalf("root = %T, want *ast.RangeExpr", expr.Data)
	}
	if _, ok := r.Start.Data.(*ast.BinaryOp); !ok {
		t.Errorf("start = %T, want the addition", r.Start.Data)
	}
	if _, ok := r.End.Data.(*ast.BinaryOp); !ok {
		t.Errorf("end = %T, want the multiplication", r.End.Data)
	}
}

func TestCall(t *testing.T) {
	expr := singleExpr(t, "sound(y, 8000)\n")
	call, ok := expr.Data.(*ast.Call)
	if !ok {
		t.Fatalf("root = %T, want *ast.Call", expr.Data)
	}
	callee, ok := call.Callee.Data.(*ast.Identifier)
	if !ok || callee.Name != "sound" {
		t.Fatalf("callee = %#v, want sound", call.Callee.Data)
	}
	if len(call.Args) != 2 {
		t.Fatalf("%d arguments, want 2", len(call.Args))
	}

	expr = singleExpr(t, "f()\n")
	call, ok = expr.Data.(*ast.Call)
	if !ok || len(call.Args) != 0 {
		t.Fatalf("empty call = %T with %d args", expr.Data, len(call.Args))
	}
}

func TestPostfixIncrementDecrement(t *testing.T) {
	expr := singleExpr(t, "x++\n")
	if _, ok := expr.Data.(*ast.Incr); !ok {
		t.Fatalf("root = %T, want *ast.Incr", expr.Data)
	}
	expr = singleExpr(t, "x--\n")
	if _, ok := expr.Data.(*ast.Decr); !ok {
		t.Fatalf("root = %T, want *ast.Decr", expr.Data)
	}
}

func TestMatrixLiteral(t *testing.T) {
	expr := singleExpr(t, "[1 2 3; 4 5 6]\n")
	m, ok := expr.Data.(*ast.MatrixLit)
	if !ok {
		t.Fatalf("root = %T, want *ast.MatrixLit", expr.Data)
	}
	if m.Elems.Width() != 3 || m.Elems.Height() != 2 {
		t.Errorf("shape = %dx%d, want 3 wide, 2 high", m.Elems.Width(), m.Elems.Height())
	}
	if errs := parseErrors("[1 2 3; 4 5 6]\n"); len(errs) != 0 {
		t.Errorf("well-formed matrix produced %d errors", len(errs))
	}
}

func TestMatrixRowsByNewline(t *testing.T) {
	expr := singleExpr(t, "[1 2\n3 4]\n")
	m, ok := expr.Data.(*ast.MatrixLit)
	if !ok {
		t.Fatalf("root = %T, want *ast.MatrixLit", expr.Data)
	}
	if m.Elems.Width() != 2 || m.Elems.Height() != 2 {
		t.Errorf("shape = %dx%d, want 2x2", m.Elems.Width(), m.Elems.Height())
	}
}

func TestMatrixCommaSeparators(t *testing.T) {
	expr := singleExpr(t, "[1, 2, 3]\n")
	m, ok := expr.Data.(*ast.MatrixLit)
	if !ok {
		t.Fatalf("root = %T, want *ast.MatrixLit", expr.Data)
	}
	if m.Elems.Width() != 3 || m.Elems.Height() != 1 {
		t.Errorf("shape = %dx%d, want 3x1", m.Elems.Width(), m.Elems.Height())
	}
}

func TestMatrixSizingError(t *testing.T) {
	errs := parseErrors("[1 2 3; 4 5]\n")
	if len(errs) != 1 {
		t.Fatalf("%d errors, want exactly 1", len(errs))
	}
	want := "Matrix sizing error: found lines of sizes {2, 3}"
	if errs[0].Data != want {
		t.Errorf("message = %q, want %q", errs[0].Data, want)
	}
}

func TestUnterminatedMatrix(t *testing.T) {
	errs := parseErrors("[1 2 3")
	if len(errs) != 1 {
		t.Fatalf("%d errors, want 1", len(errs))
	}
	if errs[0].Data != "Unterminated matrix literal" {
		t.Errorf("message = %q", errs[0].Data)
	}
}

func TestStatementRecovery(t *testing.T) {
	// Garbage on the first line must not poison the second statement.
	root := parser.Parse("x = 1 2\ny = 2\n")
	block := root.Data.(*ast.Block)

	if _, ok := block.Stmts[0].Data.(*ast.StmtError); !ok {
		t.Fatalf("first statement is %T, want *ast.StmtError", block.Stmts[0].Data)
	}
	assign, ok := block.Stmts[1].Data.(*ast.Assignment)
	if !ok || assign.Name != "y" {
		t.Fatalf("second statement is %T, want the y assignment", block.Stmts[1].Data)
	}

	errs := ast.Errors(ast.StmtTree(root))
	if len(errs) != 1 {
		t.Fatalf("%d errors, want 1", len(errs))
	}
	if !strings.Contains(errs[0].Data, "unexpected number") {
		t.Errorf("message = %q, want an unexpected-token report", errs[0].Data)
	}
}

func TestWholeInputRejection(t *testing.T) {
	root := parser.Parse("@garbage line\nsecond line\n")
	serr, ok := root.Data.(*ast.StmtError)
	if !ok {
		t.Fatalf("root is %T, want a single *ast.StmtError", root.Data)
	}
	if !strings.HasPrefix(serr.Message, "Parse error: ") {
		t.Errorf("message = %q, want a Parse error prefix", serr.Message)
	}
	if root.Span.Start != (source.Position{Line: 1, Col: 1}) {
		t.Errorf("span start = %s, want 1:1", root.Span.Start)
	}
	if root.Span.End.Line != 1 {
		t.Errorf("span end = %s, want the first line only", root.Span.End)
	}
}

func TestUnterminatedStringDiagnostic(t *testing.T) {
	root := parser.Parse("\"oops\n")
	serr, ok := root.Data.(*ast.StmtError)
	if !ok {
		t.Fatalf("root is %T, want *ast.StmtError", root.Data)
	}
	if serr.Message != "Parse error: Unterminated string literal" {
		t.Errorf("message = %q", serr.Message)
	}
}

func TestBadNumber(t *testing.T) {
	errs := parseErrors("1e999999\n")
	if len(errs) != 1 {
		t.Fatalf("%d errors, want 1", len(errs))
	}
	if errs[0].Data != "Cannot parse number" {
		t.Errorf("message = %q, want %q", errs[0].Data, "Cannot parse number")
	}
}

func TestParenGrouping(t *testing.T) {
	expr := singleExpr(t, "(1 + 2) * 3\n")
	mul, ok := expr.Data.(*ast.BinaryOp)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("root = %T, want the multiplication", expr.Data)
	}
	if _, ok := mul.LHS.Data.(*ast.BinaryOp); !ok {
		t.Errorf("left operand = %T, want the grouped addition", mul.LHS.Data)
	}
}

func TestStringLiteralUnquoted(t *testing.T) {
	expr := singleExpr(t, "\"a\\\"b\\n\"\n")
	lit, ok := expr.Data.(*ast.LitString)
	if !ok {
		t.Fatalf("root = %T, want *ast.LitString", expr.Data)
	}
	if lit.Value != "a\"b\n" {
		t.Errorf("value = %q, want escapes resolved", lit.Value)
	}
}

func TestSpansCoverStatements(t *testing.T) {
	stmts := statements(t, "x = sin(y)\n")
	span := stmts[0].Span
	if span.Start != (source.Position{Line: 1, Col: 1}) {
		t.Errorf("start = %s, want 1:1", span.Start)
	}
	if span.End != (source.Position{Line: 1, Col: 11}) {
		t.Errorf("end = %s, want 1:11", span.End)
	}
}
