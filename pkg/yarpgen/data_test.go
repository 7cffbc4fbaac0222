package yarpgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSymbolTableAllPreservesDeclarationOrder(t *testing.T) {
	b := NewIRBuilder()
	v := NewScalarVar("x", b.Types.Scalar(INT), FromInt64(INT, 0))
	at := b.Types.Array(b.Types.Scalar(INT), []int{2})
	arr := NewArray("arr", at, FromInt64(INT, 0))
	b.Symbols.DeclareScalar(v)
	b.Symbols.DeclareArray(arr)

	names := func(all []Data) []string {
		out := make([]string, len(all))
		for i, d := range all {
			out[i] = d.Name()
		}
		return out
	}

	want := []string{"x", "arr"}
	got := names(b.Symbols.All())
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("declaration order mismatch (-want +got):\n%s", diff)
	}
}

func TestScalarUseExprIsInterned(t *testing.T) {
	b := NewIRBuilder()
	v := NewScalarVar("x", b.Types.Scalar(INT), FromInt64(INT, 0))
	u1 := b.UseScalar(v)
	u2 := b.UseScalar(v)
	if u1 != u2 {
		t.Fatalf("expected exactly one use-expression per Data object")
	}
	if b.scalarUseCount() != 1 {
		t.Fatalf("expected 1 interned scalar use, got %d", b.scalarUseCount())
	}
}

func TestArrayUseExprIsInterned(t *testing.T) {
	b := NewIRBuilder()
	at := b.Types.Array(b.Types.Scalar(INT), []int{4})
	a := NewArray("arr", at, FromInt64(INT, 0))
	u1 := b.UseArray(a)
	u2 := b.UseArray(a)
	if u1 != u2 {
		t.Fatalf("expected exactly one use-expression per Data object")
	}
}

func TestDistinctScalarsGetDistinctUses(t *testing.T) {
	b := NewIRBuilder()
	v1 := NewScalarVar("x", b.Types.Scalar(INT), FromInt64(INT, 0))
	v2 := NewScalarVar("y", b.Types.Scalar(INT), FromInt64(INT, 0))
	if b.UseScalar(v1) == b.UseScalar(v2) {
		t.Fatalf("distinct Data objects must get distinct use-expressions")
	}
}

func TestIteratorRejectsNegativeStep(t *testing.T) {
	b := NewIRBuilder()
	it := b.Types.Scalar(INT)
	start := NewConstant(b.Types, FromInt64(INT, 0))
	end := NewConstant(b.Types, FromInt64(INT, 10))
	step := NewConstant(b.Types, FromInt64(INT, -1))
	if _, err := NewIterator("i", it, start, end, step); err == nil {
		t.Fatalf("expected an error for a non-positive step")
	}
}

func TestIteratorRejectsStartAfterEnd(t *testing.T) {
	b := NewIRBuilder()
	it := b.Types.Scalar(INT)
	start := NewConstant(b.Types, FromInt64(INT, 10))
	end := NewConstant(b.Types, FromInt64(INT, 0))
	step := NewConstant(b.Types, FromInt64(INT, 1))
	if _, err := NewIterator("i", it, start, end, step); err == nil {
		t.Fatalf("expected an error when start exceeds end")
	}
}

func TestArrayElementBoundsPanicOnDirectAccess(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a precondition panic for out-of-bounds direct access")
		}
	}()
	at := newTypePool().Array(newTypePool().Scalar(INT), []int{4})
	a := NewArray("arr", at, FromInt64(INT, 0))
	a.ElemAt(10)
}
