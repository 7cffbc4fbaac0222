package yarpgen

import "testing"

func TestDefaultPolicyRandRangeStaysInBounds(t *testing.T) {
	p := NewDefaultPolicy(11)
	for i := 0; i < 200; i++ {
		v := p.RandRange(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("RandRange(3,7) produced out-of-range value %d", v)
		}
	}
}

func TestDefaultPolicyRandRangeCollapsedBounds(t *testing.T) {
	p := NewDefaultPolicy(11)
	if v := p.RandRange(5, 5); v != 5 {
		t.Fatalf("RandRange(5,5) = %d, want 5", v)
	}
	if v := p.RandRange(5, 2); v != 5 {
		t.Fatalf("RandRange(5,2) = %d, want lo=5 for an inverted range", v)
	}
}

func TestPickWeightedRespectsZeroWeightEntries(t *testing.T) {
	r := newRNG(1)
	entries := []weightedEntry[string]{
		{"never", 0},
		{"always", 100},
	}
	for i := 0; i < 50; i++ {
		if got := pickWeighted(r, entries); got != "always" {
			t.Fatalf("expected zero-weight entry to never be picked, got %q", got)
		}
	}
}

func TestPopulateCtxBuildExprProducesWellTypedTree(t *testing.T) {
	b := NewIRBuilder()
	policy := NewDefaultPolicy(5)
	v := NewScalarVar("x", b.Types.Scalar(INT), FromInt64(INT, 0))
	b.Symbols.DeclareScalar(v)

	pc := NewPopulateCtx(b, policy)
	expr := pc.BuildExpr(b.Types.Scalar(INT))
	if _, err := expr.propagateType(b.Types); err != nil {
		t.Fatalf("propagateType on a generated tree: %v", err)
	}
}

func TestPopulateCtxRandomOperandFallsBackToConstant(t *testing.T) {
	b := NewIRBuilder()
	policy := NewDefaultPolicy(9)
	pc := NewPopulateCtx(b, policy)

	expr := pc.randomOperand(b.Types.Scalar(INT))
	if _, ok := expr.(*ConstantExpr); !ok {
		t.Fatalf("expected a constant fallback with an empty symbol table, got %T", expr)
	}
}

func TestPopulateCtxBuildAssignmentTargetsScalar(t *testing.T) {
	b := NewIRBuilder()
	policy := NewDefaultPolicy(2)
	v := NewScalarVar("x", b.Types.Scalar(INT), FromInt64(INT, 0))
	b.Symbols.DeclareScalar(v)

	pc := NewPopulateCtx(b, policy)
	assign := pc.BuildAssignment(v)
	if _, err := assign.propagateType(b.Types); err != nil {
		t.Fatalf("propagateType: %v", err)
	}
	ctx := newEvalCtx()
	if _, err := assign.evaluate(ctx); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
}
