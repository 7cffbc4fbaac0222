package yarpgen

import (
	"fmt"
	"math/big"
)

// IntTypeID is the integral type tag. Order is promotion rank (§3.1).
type IntTypeID int

const (
	BOOL IntTypeID = iota
	SCHAR
	UCHAR
	SHORT
	USHORT
	INT
	UINT
	LONG
	ULONG
	LLONG
	ULLONG
	maxIntTypeID
)

type intTypeInfo struct {
	name    string
	signed  bool
	bits    int
	suffix  string
}

var intTypeTable = [maxIntTypeID]intTypeInfo{
	BOOL:   {"bool", false, 8, ""},
	SCHAR:  {"signed char", true, 8, ""},
	UCHAR:  {"unsigned char", false, 8, ""},
	SHORT:  {"short", true, 16, ""},
	USHORT: {"unsigned short", false, 16, ""},
	INT:    {"int", true, 32, ""},
	UINT:   {"unsigned int", false, 32, "u"},
	LONG:   {"long", true, 64, "l"},
	ULONG:  {"unsigned long", false, 64, "ul"},
	LLONG:  {"long long", true, 64, "ll"},
	ULLONG: {"unsigned long long", false, 64, "ull"},
}

func (id IntTypeID) valid() bool { return id >= BOOL && id < maxIntTypeID }

func (id IntTypeID) Name() string         { return intTypeTable[id].name }
func (id IntTypeID) Signed() bool         { return intTypeTable[id].signed }
func (id IntTypeID) BitWidth() int        { return intTypeTable[id].bits }
func (id IntTypeID) LiteralSuffix() string { return intTypeTable[id].suffix }

// Rank returns the promotion rank; tag order is the rank, per §3.1.
func (id IntTypeID) Rank() int { return int(id) }

func maskWidth(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

func signBitAt(bits uint64, width int) uint64 {
	if width >= 64 {
		return bits >> 63
	}
	return (bits >> uint(width-1)) & 1
}

func signExtend(bits uint64, width int) int64 {
	if width >= 64 {
		return int64(bits)
	}
	if signBitAt(bits, width) == 1 {
		return int64(bits | ^maskWidth(width))
	}
	return int64(bits)
}

func typeMinBits(width int) uint64 {
	if width >= 64 {
		return uint64(1) << 63
	}
	return uint64(1) << uint(width-1)
}

func typeMaxSignedBits(width int) uint64 {
	return maskWidth(width) &^ typeMinBits(width)
}

// MinValue returns the type's minimum representable value.
func (id IntTypeID) MinValue() IRValue {
	info := intTypeTable[id]
	if !info.signed {
		return IRValue{id: id, bits: 0}
	}
	return IRValue{id: id, bits: typeMinBits(info.bits)}
}

// MaxValue returns the type's maximum representable value.
func (id IntTypeID) MaxValue() IRValue {
	info := intTypeTable[id]
	if !info.signed {
		return IRValue{id: id, bits: maskWidth(info.bits)}
	}
	return IRValue{id: id, bits: typeMaxSignedBits(info.bits)}
}

// CanRepresent reports whether the signed type id can hold every value the
// unsigned type other can take. Used by usual-arithmetic-conversions rule 4
// (§4.1), which only ever calls this with id signed and other unsigned: a
// signed type's positive range tops out one bit short of an equal-width
// unsigned type's, so it only qualifies when strictly wider.
func CanRepresent(id, other IntTypeID) bool {
	a, b := intTypeTable[id], intTypeTable[other]
	return a.bits > b.bits
}

// CorrespondingUnsigned returns the unsigned counterpart of a signed type,
// used by usual-arithmetic-conversions rule 5.
func CorrespondingUnsigned(id IntTypeID) IntTypeID {
	switch id {
	case SCHAR:
		return UCHAR
	case SHORT:
		return USHORT
	case INT:
		return UINT
	case LONG:
		return ULONG
	case LLONG:
		return ULLONG
	default:
		return id
	}
}

// UBKind enumerates the undefined-behavior classes the evaluator detects.
type UBKind int

const (
	NoUB UBKind = iota
	SignOvf
	SignOvfMin
	ZeroDiv
	ShiftRhsNeg
	ShiftRhsLarge
	NegShift
	OutOfBounds
)

func (k UBKind) String() string {
	switch k {
	case NoUB:
		return "NoUB"
	case SignOvf:
		return "SignOvf"
	case SignOvfMin:
		return "SignOvfMin"
	case ZeroDiv:
		return "ZeroDiv"
	case ShiftRhsNeg:
		return "ShiftRhsNeg"
	case ShiftRhsLarge:
		return "ShiftRhsLarge"
	case NegShift:
		return "NegShift"
	case OutOfBounds:
		return "OutOfBounds"
	default:
		return "UnknownUB"
	}
}

// IRValue is a fixed-width two's-complement integer value paired with an
// undefined-behavior flag (§6.1). Operations never panic on overflow: the
// result always wraps, and the UB flag records whether a conforming target
// would have invoked undefined behavior computing it.
type IRValue struct {
	id   IntTypeID
	bits uint64
	ub   UBKind
}

// NewIRValue builds a zero-value IRValue of the given type.
func NewIRValue(id IntTypeID) IRValue {
	return IRValue{id: id}
}

// FromUint64 builds an IRValue truncating raw to the type's width.
func FromUint64(id IntTypeID, raw uint64) IRValue {
	return IRValue{id: id, bits: raw & maskWidth(id.BitWidth())}
}

// FromInt64 builds a signed IRValue truncating v to the type's width.
func FromInt64(id IntTypeID, v int64) IRValue {
	return IRValue{id: id, bits: uint64(v) & maskWidth(id.BitWidth())}
}

func (v IRValue) TypeID() IntTypeID  { return v.id }
func (v IRValue) HasUB() bool        { return v.ub != NoUB }
func (v IRValue) UBCode() UBKind     { return v.ub }
func (v *IRValue) SetUBCode(k UBKind) { v.ub = k }

// Signed returns the value reinterpreted as a 64-bit signed integer,
// sign-extended from the type's width.
func (v IRValue) Signed() int64 { return signExtend(v.bits, v.id.BitWidth()) }

// Unsigned returns the value reinterpreted as an unsigned integer truncated
// to the type's width.
func (v IRValue) Unsigned() uint64 { return v.bits }

// AbsValue returns whether the value is negative and its magnitude.
func (v IRValue) AbsValue() (isNegative bool, magnitude uint64) {
	if !v.id.Signed() {
		return false, v.bits
	}
	if signBitAt(v.bits, v.id.BitWidth()) == 0 {
		return false, v.bits
	}
	width := v.id.BitWidth()
	neg := (^v.bits + 1) & maskWidth(width)
	return true, neg
}

func (v IRValue) withBits(bits uint64) IRValue {
	return IRValue{id: v.id, bits: bits & maskWidth(v.id.BitWidth())}
}

func (v IRValue) boolResult(b bool) IRValue {
	r := IRValue{id: v.id}
	if b {
		r.bits = 1 & maskWidth(v.id.BitWidth())
	}
	return r
}

func sameType(a, b IRValue) {
	if a.id != b.id {
		panic(preconditionError{fmt.Sprintf("binary op on mismatched types %s and %s", a.id.Name(), b.id.Name())})
	}
}

// CastToType converts v to the target integral type using two's-complement
// truncation, sign-extension of a signed source, or zero-extension of an
// unsigned source. Never sets UB (§6.1).
func (v IRValue) CastToType(to IntTypeID) IRValue {
	width := to.BitWidth()
	src := v.bits
	if v.id.Signed() {
		src = uint64(v.Signed())
	}
	return IRValue{id: to, bits: src & maskWidth(width)}
}

// Add implements §4.2's ADD evaluation, flagging SignOvf on signed overflow.
func (v IRValue) Add(rhs IRValue) IRValue {
	sameType(v, rhs)
	width := v.id.BitWidth()
	sum := (v.bits + rhs.bits) & maskWidth(width)
	res := v.withBits(sum)
	if v.id.Signed() {
		aS, bS, rS := signBitAt(v.bits, width), signBitAt(rhs.bits, width), signBitAt(sum, width)
		if aS == bS && rS != aS {
			res.ub = SignOvf
		}
	}
	return res
}

// Sub implements §4.2's SUB evaluation, flagging SignOvf on signed overflow.
func (v IRValue) Sub(rhs IRValue) IRValue {
	sameType(v, rhs)
	width := v.id.BitWidth()
	diff := (v.bits - rhs.bits) & maskWidth(width)
	res := v.withBits(diff)
	if v.id.Signed() {
		aS, bS, rS := signBitAt(v.bits, width), signBitAt(rhs.bits, width), signBitAt(diff, width)
		if aS != bS && rS != aS {
			res.ub = SignOvf
		}
	}
	return res
}

// Mul implements §4.2's MUL evaluation, distinguishing SignOvfMin (overflow
// that wraps exactly to TYPE_MIN) from ordinary SignOvf, per the rebuild
// table's differing repair for the two.
func (v IRValue) Mul(rhs IRValue) IRValue {
	sameType(v, rhs)
	width := v.id.BitWidth()
	if !v.id.Signed() {
		product := new(big.Int).Mul(big.NewInt(0).SetUint64(v.bits), big.NewInt(0).SetUint64(rhs.bits))
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
		product.Mod(product, mod)
		return v.withBits(product.Uint64())
	}
	aS, bS := big.NewInt(v.Signed()), big.NewInt(rhs.Signed())
	product := new(big.Int).Mul(aS, bS)
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	wrapped := new(big.Int).Mod(product, mod)
	res := v.withBits(wrapped.Uint64())

	minV := new(big.Int).SetInt64(signExtend(typeMinBits(width), width))
	maxV := new(big.Int).SetInt64(signExtend(typeMaxSignedBits(width), width))
	if product.Cmp(minV) < 0 || product.Cmp(maxV) > 0 {
		if res.bits == typeMinBits(width) {
			res.ub = SignOvfMin
		} else {
			res.ub = SignOvf
		}
	}
	return res
}

// Div implements §4.2's DIV evaluation: ZeroDiv on a zero divisor, SignOvf
// on the single signed overflow case (TYPE_MIN / -1).
func (v IRValue) Div(rhs IRValue) IRValue {
	sameType(v, rhs)
	width := v.id.BitWidth()
	if rhs.bits == 0 {
		res := v.withBits(0)
		res.ub = ZeroDiv
		return res
	}
	if !v.id.Signed() {
		return v.withBits(v.bits / rhs.bits)
	}
	aS, bS := v.Signed(), rhs.Signed()
	if aS == signExtend(typeMinBits(width), width) && bS == -1 {
		res := v.withBits(typeMinBits(width))
		res.ub = SignOvf
		return res
	}
	return v.withBits(uint64(aS / bS))
}

// Mod implements §4.2's MOD evaluation, mirroring Div's UB classification.
func (v IRValue) Mod(rhs IRValue) IRValue {
	sameType(v, rhs)
	width := v.id.BitWidth()
	if rhs.bits == 0 {
		res := v.withBits(0)
		res.ub = ZeroDiv
		return res
	}
	if !v.id.Signed() {
		return v.withBits(v.bits % rhs.bits)
	}
	aS, bS := v.Signed(), rhs.Signed()
	if aS == signExtend(typeMinBits(width), width) && bS == -1 {
		res := v.withBits(0)
		res.ub = SignOvf
		return res
	}
	return v.withBits(uint64(aS % bS))
}

// Negate implements unary NEGATE, flagging SignOvf when negating TYPE_MIN.
func (v IRValue) Negate() IRValue {
	width := v.id.BitWidth()
	res := v.withBits((^v.bits + 1) & maskWidth(width))
	if v.id.Signed() && v.bits == typeMinBits(width) {
		res.ub = SignOvf
	}
	return res
}

// Plus implements unary PLUS: identity, never UB.
func (v IRValue) Plus() IRValue { return v }

// LogNot implements unary LOG_NOT: never UB.
func (v IRValue) LogNot() IRValue { return v.boolResult(v.bits == 0) }

// BitNot implements unary BIT_NOT: never UB.
func (v IRValue) BitNot() IRValue {
	width := v.id.BitWidth()
	return v.withBits(^v.bits & maskWidth(width))
}

// Relational and logical/bitwise operators below never produce UB; per the
// open question in §4.5/DESIGN.md, their result carries the LHS's (already
// promoted) integral type rather than BOOL.

func (v IRValue) cmp(rhs IRValue) int {
	sameType(v, rhs)
	if v.id.Signed() {
		a, b := v.Signed(), rhs.Signed()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	a, b := v.bits, rhs.bits
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (v IRValue) Lt(rhs IRValue) IRValue { return v.boolResult(v.cmp(rhs) < 0) }
func (v IRValue) Gt(rhs IRValue) IRValue { return v.boolResult(v.cmp(rhs) > 0) }
func (v IRValue) Le(rhs IRValue) IRValue { return v.boolResult(v.cmp(rhs) <= 0) }
func (v IRValue) Ge(rhs IRValue) IRValue { return v.boolResult(v.cmp(rhs) >= 0) }
func (v IRValue) Eq(rhs IRValue) IRValue { return v.boolResult(v.cmp(rhs) == 0) }
func (v IRValue) Ne(rhs IRValue) IRValue { return v.boolResult(v.cmp(rhs) != 0) }

func (v IRValue) LogAnd(rhs IRValue) IRValue {
	sameType(v, rhs)
	return v.boolResult(v.bits != 0 && rhs.bits != 0)
}

func (v IRValue) LogOr(rhs IRValue) IRValue {
	sameType(v, rhs)
	return v.boolResult(v.bits != 0 || rhs.bits != 0)
}

func (v IRValue) BitAnd(rhs IRValue) IRValue { sameType(v, rhs); return v.withBits(v.bits & rhs.bits) }
func (v IRValue) BitOr(rhs IRValue) IRValue  { sameType(v, rhs); return v.withBits(v.bits | rhs.bits) }
func (v IRValue) BitXor(rhs IRValue) IRValue { sameType(v, rhs); return v.withBits(v.bits ^ rhs.bits) }

// Shl implements §4.2's SHL evaluation: ShiftRhsNeg, ShiftRhsLarge, and
// NegShift (shifting a negative signed LHS) in that detection order.
func (v IRValue) Shl(rhs IRValue) IRValue {
	width := v.id.BitWidth()
	if rhs.id.Signed() && rhs.Signed() < 0 {
		res := v
		res.ub = ShiftRhsNeg
		return res
	}
	shiftAmt := rhs.Unsigned()
	if rhs.id.Signed() {
		shiftAmt = uint64(rhs.Signed())
	}
	if shiftAmt >= uint64(width) {
		res := v
		res.ub = ShiftRhsLarge
		return res
	}
	if v.id.Signed() && signBitAt(v.bits, width) == 1 {
		res := v.withBits(v.bits << shiftAmt)
		res.ub = NegShift
		return res
	}
	return v.withBits(v.bits << shiftAmt)
}

// Shr implements §4.2's SHR evaluation: arithmetic shift for signed LHS,
// logical shift for unsigned. NegShift is not flagged for SHR (right-shift
// of a negative value is not in the UB set this generator tracks).
func (v IRValue) Shr(rhs IRValue) IRValue {
	width := v.id.BitWidth()
	if rhs.id.Signed() && rhs.Signed() < 0 {
		res := v
		res.ub = ShiftRhsNeg
		return res
	}
	shiftAmt := rhs.Unsigned()
	if rhs.id.Signed() {
		shiftAmt = uint64(rhs.Signed())
	}
	if shiftAmt >= uint64(width) {
		res := v
		res.ub = ShiftRhsLarge
		return res
	}
	if v.id.Signed() {
		return v.withBits(uint64(v.Signed() >> shiftAmt))
	}
	return v.withBits(v.bits >> shiftAmt)
}

// String renders the value as a bare decimal literal (no type suffix); the
// emitter (§4.5) appends the suffix and handles the TYPE_MIN special case.
func (v IRValue) String() string {
	if v.id.Signed() {
		return fmt.Sprintf("%d", v.Signed())
	}
	return fmt.Sprintf("%d", v.bits)
}
