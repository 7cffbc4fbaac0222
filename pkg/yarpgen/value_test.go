package yarpgen

import "testing"

func TestAddSignedOverflow(t *testing.T) {
	a := FromInt64(INT, int64(INT.MaxValue().Signed()))
	b := FromInt64(INT, 1)
	res := a.Add(b)
	if res.UBCode() != SignOvf {
		t.Fatalf("expected SignOvf, got %v", res.UBCode())
	}
}

func TestAddUnsignedWrapsWithoutUB(t *testing.T) {
	a := FromUint64(UINT, UINT.MaxValue().Unsigned())
	b := FromUint64(UINT, 1)
	res := a.Add(b)
	if res.HasUB() {
		t.Fatalf("unsigned overflow must not be UB, got %v", res.UBCode())
	}
	if res.Unsigned() != 0 {
		t.Fatalf("expected wraparound to 0, got %d", res.Unsigned())
	}
}

func TestSubOverflow(t *testing.T) {
	a := FromInt64(INT, INT.MinValue().Signed())
	b := FromInt64(INT, 1)
	res := a.Sub(b)
	if res.UBCode() != SignOvf {
		t.Fatalf("expected SignOvf, got %v", res.UBCode())
	}
}

func TestMulOverflowKinds(t *testing.T) {
	minV := FromInt64(INT, INT.MinValue().Signed())
	negOne := FromInt64(INT, -1)
	res := minV.Mul(negOne)
	if res.UBCode() != SignOvfMin {
		t.Fatalf("expected SignOvfMin for MIN * -1, got %v", res.UBCode())
	}

	big := FromInt64(INT, int64(INT.MaxValue().Signed())/2+100)
	two := FromInt64(INT, 2)
	res2 := big.Mul(two)
	if res2.UBCode() != SignOvf {
		t.Fatalf("expected SignOvf, got %v", res2.UBCode())
	}
}

func TestDivByZero(t *testing.T) {
	a := FromInt64(INT, 10)
	zero := FromInt64(INT, 0)
	res := a.Div(zero)
	if res.UBCode() != ZeroDiv {
		t.Fatalf("expected ZeroDiv, got %v", res.UBCode())
	}
}

func TestDivMinByNegOne(t *testing.T) {
	minV := FromInt64(INT, INT.MinValue().Signed())
	negOne := FromInt64(INT, -1)
	res := minV.Div(negOne)
	if res.UBCode() != SignOvf {
		t.Fatalf("expected SignOvf, got %v", res.UBCode())
	}
}

func TestShiftRhsNegative(t *testing.T) {
	a := FromInt64(INT, 5)
	neg := FromInt64(INT, -1)
	res := a.Shl(neg)
	if res.UBCode() != ShiftRhsNeg {
		t.Fatalf("expected ShiftRhsNeg, got %v", res.UBCode())
	}
}

func TestShiftRhsTooLarge(t *testing.T) {
	a := FromUint64(UINT, 5)
	big := FromInt64(INT, 40)
	res := a.Shr(big)
	if res.UBCode() != ShiftRhsLarge {
		t.Fatalf("expected ShiftRhsLarge, got %v", res.UBCode())
	}
}

func TestShlNegativeLHS(t *testing.T) {
	a := FromInt64(INT, -1)
	three := FromInt64(INT, 3)
	res := a.Shl(three)
	if res.UBCode() != NegShift {
		t.Fatalf("expected NegShift, got %v", res.UBCode())
	}
}

func TestCastTruncatesAndZeroExtendsUnsigned(t *testing.T) {
	wide := FromInt64(INT, -1)
	narrow := wide.CastToType(UCHAR)
	if narrow.Unsigned() != 0xFF {
		t.Fatalf("expected 0xFF, got %#x", narrow.Unsigned())
	}

	back := narrow.CastToType(INT)
	if back.Signed() != 0xFF {
		t.Fatalf("unsigned char should zero-extend, got %d", back.Signed())
	}
}

func TestAbsValueHandlesTypeMin(t *testing.T) {
	minV := FromInt64(INT, INT.MinValue().Signed())
	neg, mag := minV.AbsValue()
	if !neg {
		t.Fatalf("expected negative")
	}
	if mag != uint64(1)<<31 {
		t.Fatalf("expected magnitude 2^31, got %d", mag)
	}
}
