package yarpgen

import (
	"strings"
	"testing"
)

func TestScopeStmtEmitsBracesAndDecls(t *testing.T) {
	b := NewIRBuilder()
	v := NewScalarVar("x", b.Types.Scalar(INT), FromInt64(INT, 7))
	b.Symbols.DeclareScalar(v)
	scope := NewScopeStmt(
		NewDeclStmt(v),
		&ExprStmt{Expr: NewAssignmentExpr(b.UseScalar(v), NewConstant(b.Types, FromInt64(INT, 8)))},
	)

	var w strings.Builder
	scope.emit(&w, 0)
	out := w.String()
	if !strings.HasPrefix(out, "{\n") || !strings.HasSuffix(out, "}\n") {
		t.Fatalf("expected braced block, got %q", out)
	}
	if !strings.Contains(out, "int x = 7;") {
		t.Fatalf("expected declaration to be emitted, got %q", out)
	}
	if !strings.Contains(out, "x = 8;") {
		t.Fatalf("expected assignment to be emitted, got %q", out)
	}
}

func TestLoopNestStmtSweepsIteratorRange(t *testing.T) {
	b := NewIRBuilder()
	itType := b.Types.Scalar(INT)
	start := NewConstant(b.Types, FromInt64(INT, 0))
	end := NewConstant(b.Types, FromInt64(INT, 3))
	step := NewConstant(b.Types, FromInt64(INT, 1))
	it, err := NewIterator("i", itType, start, end, step)
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	b.Symbols.DeclareIterator(it)

	sum := NewScalarVar("sum", b.Types.Scalar(INT), FromInt64(INT, 0))
	b.Symbols.DeclareScalar(sum)

	body := &ExprStmt{Expr: NewAssignmentExpr(
		b.UseScalar(sum),
		NewBinaryExpr(OpAdd, b.UseScalar(sum), b.UseIterator(it)),
	)}
	if _, err := body.Expr.propagateType(b.Types); err != nil {
		t.Fatalf("propagateType: %v", err)
	}

	loop := &LoopNestStmt{Head: &LoopHead{Iter: it}, Body: body}
	ctx := newEvalCtx()
	if err := loop.evaluate(ctx); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if sum.Value().Signed() != 0+1+2+3 {
		t.Fatalf("expected sum 6, got %d", sum.Value().Signed())
	}
}

func TestLoopNestStmtRebuildRepairsUBAcrossIterations(t *testing.T) {
	b := NewIRBuilder()
	policy := NewDefaultPolicy(3)
	itType := b.Types.Scalar(INT)
	start := NewConstant(b.Types, FromInt64(INT, 0))
	end := NewConstant(b.Types, FromInt64(INT, 2))
	step := NewConstant(b.Types, FromInt64(INT, 1))
	it, err := NewIterator("i", itType, start, end, step)
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	b.Symbols.DeclareIterator(it)

	lhs := NewConstant(b.Types, FromInt64(INT, INT.MaxValue().Signed()))
	add := NewBinaryExpr(OpAdd, lhs, b.UseIterator(it))
	if _, err := add.propagateType(b.Types); err != nil {
		t.Fatalf("propagateType: %v", err)
	}
	body := &ExprStmt{Expr: add}
	loop := &LoopNestStmt{Head: &LoopHead{Iter: it}, Body: body}

	ctx := newEvalCtx()
	if err := loop.rebuild(ctx, policy); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	checkErr := loop.Head.sweep(ctx, func(childCtx *EvalCtx) error {
		v, err := add.evaluate(childCtx)
		if err != nil {
			return err
		}
		if v.HasUB() {
			t.Fatalf("expected UB-free result at every iteration after rebuild, got %v", v.UBCode())
		}
		return nil
	})
	if checkErr != nil {
		t.Fatalf("sweep: %v", checkErr)
	}
}

func TestLoopHeadEmitHeaderRendersForLoop(t *testing.T) {
	b := NewIRBuilder()
	itType := b.Types.Scalar(INT)
	start := NewConstant(b.Types, FromInt64(INT, 0))
	end := NewConstant(b.Types, FromInt64(INT, 9))
	step := NewConstant(b.Types, FromInt64(INT, 1))
	it, err := NewIterator("i", itType, start, end, step)
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	head := &LoopHead{Iter: it}
	var w strings.Builder
	head.emitHeader(&w)
	out := w.String()
	if !strings.HasPrefix(out, "for (int i = 0; i <= 9; i += 1)") {
		t.Fatalf("unexpected loop header: %q", out)
	}
}

func TestLoopSeqStmtEmitsSiblingLoops(t *testing.T) {
	b := NewIRBuilder()
	itType := b.Types.Scalar(INT)
	mk := func(name string) *LoopNestStmt {
		start := NewConstant(b.Types, FromInt64(INT, 0))
		end := NewConstant(b.Types, FromInt64(INT, 1))
		step := NewConstant(b.Types, FromInt64(INT, 1))
		it, err := NewIterator(name, itType, start, end, step)
		if err != nil {
			t.Fatalf("NewIterator: %v", err)
		}
		return &LoopNestStmt{Head: &LoopHead{Iter: it}, Body: &ScopeStmt{}}
	}
	seq := &LoopSeqStmt{Loops: []*LoopNestStmt{mk("i"), mk("j")}}
	var w strings.Builder
	seq.emit(&w, 0)
	out := w.String()
	if strings.Count(out, "for (") != 2 {
		t.Fatalf("expected two sibling loop headers, got %q", out)
	}
}

func TestStubStmtEmitsVerbatimText(t *testing.T) {
	s := &StubStmt{Text: "#include <stdint.h>"}
	var w strings.Builder
	s.emit(&w, 0)
	if w.String() != "#include <stdint.h>\n" {
		t.Fatalf("unexpected stub output: %q", w.String())
	}
}
