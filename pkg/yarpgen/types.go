package yarpgen

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// IntegralType is the interned representative of a scalar integral type tag
// (§3.1). Equality between two IntegralType values is pointer identity,
// since the pool hands out exactly one instance per tag.
type IntegralType struct {
	id IntTypeID
}

func (t *IntegralType) ID() IntTypeID     { return t.id }
func (t *IntegralType) Name() string      { return t.id.Name() }
func (t *IntegralType) IsArray() bool     { return false }
func (t *IntegralType) BitWidth() int     { return t.id.BitWidth() }
func (t *IntegralType) Signed() bool      { return t.id.Signed() }

// ArrayType is the interned representative of an element type plus an
// ordered, non-empty dimension-extent list (§3.1). Two array types with
// identical element type and dims share one instance.
type ArrayType struct {
	elem *IntegralType
	dims []int
}

func (t *ArrayType) IsArray() bool        { return true }
func (t *ArrayType) Element() *IntegralType { return t.elem }
func (t *ArrayType) Dims() []int          { return slices.Clone(t.dims) }

func (t *ArrayType) Name() string {
	var b strings.Builder
	b.WriteString(t.elem.Name())
	for _, d := range t.dims {
		fmt.Fprintf(&b, "[%d]", d)
	}
	return b.String()
}

// YType is the union of the two type kinds the IR distinguishes (§3.1).
type YType interface {
	Name() string
	IsArray() bool
}

// typePool interns every IntegralType and ArrayType ever requested, so
// identity comparison ("are these the same type") is a pointer compare
// (§3.1's "equality is identity"). Grounded on the teacher's
// pkg/csmith/types.go typePool shape (one pool, pick-by-value lookup).
type typePool struct {
	scalars map[IntTypeID]*IntegralType
	arrays  map[string]*ArrayType
}

func newTypePool() *typePool {
	p := &typePool{
		scalars: make(map[IntTypeID]*IntegralType, int(maxIntTypeID)),
		arrays:  make(map[string]*ArrayType),
	}
	for id := BOOL; id < maxIntTypeID; id++ {
		p.scalars[id] = &IntegralType{id: id}
	}
	return p
}

// Scalar returns the single interned IntegralType for id.
func (p *typePool) Scalar(id IntTypeID) *IntegralType {
	if !id.valid() {
		panic(preconditionError{fmt.Sprintf("invalid IntTypeID %d", id)})
	}
	return p.scalars[id]
}

func arrayKey(elem *IntegralType, dims []int) string {
	var b strings.Builder
	b.WriteString(elem.Name())
	for _, d := range dims {
		fmt.Fprintf(&b, "/%d", d)
	}
	return b.String()
}

// Array returns the interned ArrayType for (elem, dims), creating it on
// first request. dims must be non-empty and all positive (§3.2).
func (p *typePool) Array(elem *IntegralType, dims []int) *ArrayType {
	if len(dims) == 0 {
		panic(preconditionError{"array type requires at least one dimension"})
	}
	for _, d := range dims {
		if d <= 0 {
			panic(preconditionError{fmt.Sprintf("array dimension must be positive, got %d", d)})
		}
	}
	key := arrayKey(elem, dims)
	if existing, ok := p.arrays[key]; ok {
		return existing
	}
	at := &ArrayType{elem: elem, dims: slices.Clone(dims)}
	p.arrays[key] = at
	return at
}

// newGlobalState returns a fresh typePool. Each Generate run gets its own
// pool through NewIRBuilder, so no type state is shared between runs.
func newGlobalState() *typePool { return newTypePool() }

// integralPromotion implements §4.1's integral promotion: any type ranked
// below INT promotes to INT (all pre-INT tags fit in INT's range).
func integralPromotion(pool *typePool, t *IntegralType) *IntegralType {
	if t.id.Rank() < INT.Rank() {
		return pool.Scalar(INT)
	}
	return t
}

// usualArithmeticConversions implements §4.1's 5-rule usual arithmetic
// conversion algorithm, grounded exactly on original_source/src/expr.cpp's
// BinaryExpr::arithConv. a and b are assumed already integrally promoted.
func usualArithmeticConversions(pool *typePool, a, b *IntegralType) *IntegralType {
	// Rule 1: same type -> nothing to convert.
	if a.id == b.id {
		return a
	}
	aSigned, bSigned := a.Signed(), b.Signed()

	// Rule 2: same signedness -> promote to the higher rank.
	if aSigned == bSigned {
		if a.id.Rank() >= b.id.Rank() {
			return a
		}
		return b
	}

	signedT, unsignedT := a, b
	if !aSigned {
		signedT, unsignedT = b, a
	}

	// Rule 3: unsigned operand's rank >= signed operand's rank -> convert
	// the signed operand to the unsigned type.
	if unsignedT.id.Rank() >= signedT.id.Rank() {
		return unsignedT
	}

	// Rule 4: the signed type can represent every value of the unsigned
	// type -> convert the unsigned operand to the signed type.
	if CanRepresent(signedT.id, unsignedT.id) {
		return signedT
	}

	// Rule 5: fall back to the unsigned counterpart of the signed type.
	return pool.Scalar(CorrespondingUnsigned(signedT.id))
}
