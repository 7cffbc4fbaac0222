package yarpgen

import (
	"fmt"
	"math/bits"
	"strings"
)

// Expr is the expression-IR node interface (§3.3). propagateType must run
// over the whole tree before evaluate/rebuild are meaningful; emit assumes
// propagateType has already resolved every node's type.
type Expr interface {
	propagateType(pool *typePool) (YType, error)
	evaluate(ctx *EvalCtx) (IRValue, error)
	rebuild(ctx *EvalCtx, policy RandPolicy) error
	emit(w *strings.Builder)
	Type() YType
}

func wrapCast(e Expr, target *IntegralType) Expr {
	if t, ok := e.Type().(*IntegralType); ok && t == target {
		return e
	}
	return &TypeCastExpr{operand: e, target: target, implicit: true, resolvedType: target}
}

// ConstantExpr is a literal value (§3.3).
type ConstantExpr struct {
	val          IRValue
	resolvedType *IntegralType
}

func NewConstant(pool *typePool, v IRValue) *ConstantExpr {
	return &ConstantExpr{val: v, resolvedType: pool.Scalar(v.TypeID())}
}

func (c *ConstantExpr) Type() YType { return c.resolvedType }

func (c *ConstantExpr) propagateType(pool *typePool) (YType, error) {
	c.resolvedType = pool.Scalar(c.val.TypeID())
	return c.resolvedType, nil
}

func (c *ConstantExpr) evaluate(ctx *EvalCtx) (IRValue, error) { return c.val, nil }

func (c *ConstantExpr) rebuild(ctx *EvalCtx, policy RandPolicy) error { return nil }

// emit special-cases the signed type minimum, grounded on ConstantExpr::emit
// in original_source/src/expr.cpp: emitting TYPE_MIN directly as a literal
// negation (e.g. "-2147483648") trips compilers' "unary minus on unsigned
// result" warnings once the +1/-1 dance is undone, so the minimum is instead
// spelled as one more than itself, minus one.
func (c *ConstantExpr) emit(w *strings.Builder) { emitLiteral(w, c.resolvedType.id, c.val) }

// emitLiteral renders v as a literal of type id, applying the TYPE_MIN
// dodge described above. Shared by ConstantExpr and LoopHead's header emit.
func emitLiteral(w *strings.Builder, id IntTypeID, v IRValue) {
	if id.Signed() && v.Signed() == id.MinValue().Signed() {
		plusOne := FromInt64(id, id.MinValue().Signed()+1)
		fmt.Fprintf(w, "(%s%s - 1)", plusOne.String(), id.LiteralSuffix())
		return
	}
	fmt.Fprintf(w, "%s%s", v.String(), id.LiteralSuffix())
}

// ScalarVarUseExpr is the single interned use-expression for a *ScalarVar
// (invariant I1); obtain one via IRBuilder.UseScalar.
type ScalarVarUseExpr struct {
	data         *ScalarVar
	resolvedType *IntegralType
}

func (u *ScalarVarUseExpr) Type() YType { return u.data.typ }

func (u *ScalarVarUseExpr) propagateType(pool *typePool) (YType, error) {
	u.resolvedType = u.data.typ
	return u.data.typ, nil
}

func (u *ScalarVarUseExpr) evaluate(ctx *EvalCtx) (IRValue, error) { return u.data.Value(), nil }

func (u *ScalarVarUseExpr) rebuild(ctx *EvalCtx, policy RandPolicy) error { return nil }

func (u *ScalarVarUseExpr) emit(w *strings.Builder) { w.WriteString(u.data.Name()) }

// IterUseExpr is the single interned use-expression for an *Iterator
// (invariant I1); obtain one via IRBuilder.UseIterator.
type IterUseExpr struct {
	data *Iterator
}

func (u *IterUseExpr) Type() YType { return u.data.typ }

func (u *IterUseExpr) propagateType(pool *typePool) (YType, error) { return u.data.typ, nil }

// evaluate consults ctx's iterator-value override so an expression built
// once can be re-evaluated across every point of an iteration sweep (§4.4)
// without mutating the Iterator's own stored current value.
func (u *IterUseExpr) evaluate(ctx *EvalCtx) (IRValue, error) { return ctx.iteratorValue(u.data), nil }

func (u *IterUseExpr) rebuild(ctx *EvalCtx, policy RandPolicy) error { return nil }

func (u *IterUseExpr) emit(w *strings.Builder) { w.WriteString(u.data.Name()) }

// ArrayUseExpr is the single interned use-expression naming an *Array
// (invariant I1); it is always the base of a SubscriptExpr chain, never
// evaluated on its own.
type ArrayUseExpr struct {
	data *Array
}

func (u *ArrayUseExpr) Type() YType { return u.data.typ }

func (u *ArrayUseExpr) propagateType(pool *typePool) (YType, error) { return u.data.typ, nil }

func (u *ArrayUseExpr) evaluate(ctx *EvalCtx) (IRValue, error) {
	return IRValue{}, errPreconditionf("ArrayUseExpr %s evaluated without a Subscript", u.data.Name())
}

func (u *ArrayUseExpr) rebuild(ctx *EvalCtx, policy RandPolicy) error { return nil }

func (u *ArrayUseExpr) emit(w *strings.Builder) { w.WriteString(u.data.Name()) }

func errPreconditionf(format string, args ...interface{}) error {
	return preconditionError{fmt.Sprintf(format, args...)}
}

// TypeCastExpr converts an integer operand to another integral type
// (int<->int only, per §3.3); never produces UB since it is pure truncation,
// sign-extension or zero-extension (§4.2).
type TypeCastExpr struct {
	operand      Expr
	target       *IntegralType
	implicit     bool
	resolvedType *IntegralType
}

func (c *TypeCastExpr) Type() YType { return c.resolvedType }

func (c *TypeCastExpr) propagateType(pool *typePool) (YType, error) {
	t, err := c.operand.propagateType(pool)
	if err != nil {
		return nil, err
	}
	if _, ok := t.(*IntegralType); !ok {
		return nil, errPreconditionf("TypeCastExpr: operand must be integral, got %s", t.Name())
	}
	c.resolvedType = c.target
	return c.target, nil
}

func (c *TypeCastExpr) evaluate(ctx *EvalCtx) (IRValue, error) {
	v, err := c.operand.evaluate(ctx)
	if err != nil {
		return IRValue{}, err
	}
	return v.CastToType(c.target.id), nil
}

func (c *TypeCastExpr) rebuild(ctx *EvalCtx, policy RandPolicy) error {
	return c.operand.rebuild(ctx, policy)
}

func (c *TypeCastExpr) emit(w *strings.Builder) {
	w.WriteString("(")
	w.WriteString(c.target.Name())
	w.WriteString(")")
	if c.implicit {
		w.WriteString("/* implicit */")
	}
	w.WriteString("(")
	c.operand.emit(w)
	w.WriteString(")")
}

// UnaryExpr implements PLUS/NEGATE/LOG_NOT/BIT_NOT (§3.3, §4.2).
type UnaryExpr struct {
	op           UnaryOp
	operand      Expr
	resolvedType *IntegralType
}

func NewUnaryExpr(op UnaryOp, operand Expr) *UnaryExpr { return &UnaryExpr{op: op, operand: operand} }

func (u *UnaryExpr) Type() YType { return u.resolvedType }

func (u *UnaryExpr) propagateType(pool *typePool) (YType, error) {
	t, err := u.operand.propagateType(pool)
	if err != nil {
		return nil, err
	}
	it, ok := t.(*IntegralType)
	if !ok {
		return nil, errPreconditionf("UnaryExpr: operand must be integral, got %s", t.Name())
	}
	promoted := integralPromotion(pool, it)
	if promoted != it {
		u.operand = wrapCast(u.operand, promoted)
	}
	u.resolvedType = promoted
	return promoted, nil
}

func (u *UnaryExpr) evaluate(ctx *EvalCtx) (IRValue, error) {
	v, err := u.operand.evaluate(ctx)
	if err != nil {
		return IRValue{}, err
	}
	switch u.op {
	case OpPlus:
		return v.Plus(), nil
	case OpNegate:
		return v.Negate(), nil
	case OpLogNot:
		return v.LogNot(), nil
	case OpBitNot:
		return v.BitNot(), nil
	default:
		return IRValue{}, errPreconditionf("UnaryExpr: unknown op %d", u.op)
	}
}

// rebuild mirrors UnaryExpr::rebuild's bounded retry (SUPPLEMENTED FEATURES
// item 4): NEGATE rewrites to PLUS on SignOvf (negating TYPE_MIN), retried
// once, then trusted.
func (u *UnaryExpr) rebuild(ctx *EvalCtx, policy RandPolicy) error {
	if err := u.operand.rebuild(ctx, policy); err != nil {
		return err
	}
	for attempt := 0; attempt < 2; attempt++ {
		val, err := u.evaluate(ctx)
		if err != nil {
			return err
		}
		if !val.HasUB() {
			return nil
		}
		if u.op == OpNegate && val.UBCode() == SignOvf {
			u.op = OpPlus
			continue
		}
		break
	}
	val, err := u.evaluate(ctx)
	if err != nil {
		return err
	}
	if val.HasUB() {
		return newRebuildDivergenceError(val.UBCode(), "unary "+u.op.String())
	}
	return nil
}

func (u *UnaryExpr) emit(w *strings.Builder) {
	w.WriteString(u.op.String())
	w.WriteString("(")
	u.operand.emit(w)
	w.WriteString(")")
}

// BinaryExpr implements the arithmetic/relational/logical/bitwise/shift
// operator sets (§3.3, §4.1, §4.2, §4.3).
type BinaryExpr struct {
	op           BinaryOp
	lhs, rhs     Expr
	resolvedType *IntegralType
}

func NewBinaryExpr(op BinaryOp, lhs, rhs Expr) *BinaryExpr { return &BinaryExpr{op: op, lhs: lhs, rhs: rhs} }

func (b *BinaryExpr) Type() YType { return b.resolvedType }

// propagateType implements §4.1: shift operators promote each operand
// independently and take the result type from the (promoted) LHS; every
// other operator applies the usual arithmetic conversions to both operands.
func (b *BinaryExpr) propagateType(pool *typePool) (YType, error) {
	lt, err := b.lhs.propagateType(pool)
	if err != nil {
		return nil, err
	}
	rt, err := b.rhs.propagateType(pool)
	if err != nil {
		return nil, err
	}
	li, ok := lt.(*IntegralType)
	if !ok {
		return nil, errPreconditionf("BinaryExpr: lhs must be integral, got %s", lt.Name())
	}
	ri, ok := rt.(*IntegralType)
	if !ok {
		return nil, errPreconditionf("BinaryExpr: rhs must be integral, got %s", rt.Name())
	}
	lp := integralPromotion(pool, li)
	rp := integralPromotion(pool, ri)

	if b.op.isShift() {
		if lp != li {
			b.lhs = wrapCast(b.lhs, lp)
		}
		if rp != ri {
			b.rhs = wrapCast(b.rhs, rp)
		}
		b.resolvedType = lp
		return lp, nil
	}

	common := usualArithmeticConversions(pool, lp, rp)
	if common != lp {
		b.lhs = wrapCast(b.lhs, common)
	} else if lp != li {
		b.lhs = wrapCast(b.lhs, lp)
	}
	if common != rp {
		b.rhs = wrapCast(b.rhs, common)
	} else if rp != ri {
		b.rhs = wrapCast(b.rhs, rp)
	}
	// Per DESIGN.md's Open Question decision, relational/logical results
	// are typed as the (now-common) operand type, not forced to BOOL.
	b.resolvedType = common
	return common, nil
}

func (b *BinaryExpr) evaluate(ctx *EvalCtx) (IRValue, error) {
	lv, err := b.lhs.evaluate(ctx)
	if err != nil {
		return IRValue{}, err
	}
	rv, err := b.rhs.evaluate(ctx)
	if err != nil {
		return IRValue{}, err
	}
	switch b.op {
	case OpAdd:
		return lv.Add(rv), nil
	case OpSub:
		return lv.Sub(rv), nil
	case OpMul:
		return lv.Mul(rv), nil
	case OpDiv:
		return lv.Div(rv), nil
	case OpMod:
		return lv.Mod(rv), nil
	case OpLt:
		return lv.Lt(rv), nil
	case OpGt:
		return lv.Gt(rv), nil
	case OpLe:
		return lv.Le(rv), nil
	case OpGe:
		return lv.Ge(rv), nil
	case OpEq:
		return lv.Eq(rv), nil
	case OpNe:
		return lv.Ne(rv), nil
	case OpLogAnd:
		return lv.LogAnd(rv), nil
	case OpLogOr:
		return lv.LogOr(rv), nil
	case OpBitAnd:
		return lv.BitAnd(rv), nil
	case OpBitOr:
		return lv.BitOr(rv), nil
	case OpBitXor:
		return lv.BitXor(rv), nil
	case OpShl:
		return lv.Shl(rv), nil
	case OpShr:
		return lv.Shr(rv), nil
	default:
		return IRValue{}, errPreconditionf("BinaryExpr: unknown op %d", b.op)
	}
}

// rebuild implements §4.3's exact UB-kind rewrite table, children-first,
// with the bounded one-retry recursion of SUPPLEMENTED FEATURES item 4.
// Relational, logical, and bitwise operators never appear in the table:
// they have no UB to repair.
func (b *BinaryExpr) rebuild(ctx *EvalCtx, policy RandPolicy) error {
	if err := b.lhs.rebuild(ctx, policy); err != nil {
		return err
	}
	if err := b.rhs.rebuild(ctx, policy); err != nil {
		return err
	}
	for attempt := 0; attempt < 2; attempt++ {
		val, err := b.evaluate(ctx)
		if err != nil {
			return err
		}
		if !val.HasUB() {
			return nil
		}
		if err := b.applyRepair(val.UBCode(), ctx, policy); err != nil {
			return err
		}
	}
	val, err := b.evaluate(ctx)
	if err != nil {
		return err
	}
	if val.HasUB() {
		return newRebuildDivergenceError(val.UBCode(), "binary "+b.op.String())
	}
	return nil
}

func (b *BinaryExpr) applyRepair(ub UBKind, ctx *EvalCtx, policy RandPolicy) error {
	switch {
	case b.op == OpAdd && ub == SignOvf:
		b.op = OpSub
	case b.op == OpSub && ub == SignOvf:
		b.op = OpAdd
	case b.op == OpMul && ub == SignOvfMin:
		b.op = OpSub
	case b.op == OpMul && ub == SignOvf:
		b.op = OpDiv
	case (b.op == OpDiv || b.op == OpMod) && ub == ZeroDiv:
		b.op = OpMul
	case (b.op == OpDiv || b.op == OpMod) && ub == SignOvf:
		b.op = OpSub
	case b.op.isShift() && (ub == ShiftRhsLarge || ub == ShiftRhsNeg):
		return b.repairShiftAmount(ctx, policy)
	case b.op.isShift() && ub == NegShift:
		maxConst := &ConstantExpr{val: b.resolvedType.id.MaxValue(), resolvedType: b.resolvedType}
		b.lhs = &BinaryExpr{op: OpAdd, lhs: b.lhs, rhs: maxConst, resolvedType: b.resolvedType}
	}
	return nil
}

// repairShiftAmount replaces rhs with a freshly drawn constant within the
// valid shift range, accounting for the LHS's most-significant set bit when
// the shift is a signed SHL (so the result can't itself overflow on
// re-evaluation). This is a simplification of the original's
// combine-with-current-magnitude repair (DESIGN.md): soundness matters more
// here than preserving the original rhs subexpression's shape.
func (b *BinaryExpr) repairShiftAmount(ctx *EvalCtx, policy RandPolicy) error {
	width := b.resolvedType.BitWidth()
	maxShift := width - 1
	if b.op == OpShl && b.resolvedType.Signed() {
		lv, err := b.lhs.evaluate(ctx)
		if err != nil {
			return err
		}
		_, mag := lv.AbsValue()
		if mag != 0 {
			msb := bits.Len64(mag) - 1
			maxShift = width - 2 - msb
		} else {
			maxShift = width - 2
		}
		if maxShift < 0 {
			maxShift = 0
		}
	}
	rhsType, ok := b.rhs.Type().(*IntegralType)
	if !ok {
		return errPreconditionf("BinaryExpr: shift rhs type resolved to non-integral")
	}
	k := policy.RandRange(0, maxShift)
	b.rhs = &ConstantExpr{val: FromInt64(rhsType.id, int64(k)), resolvedType: rhsType}
	return nil
}

// emit always parenthesizes both operands (§4.5), e.g. "((a) - (b))", rather
// than relying on nested binaries to self-wrap for precedence safety.
func (b *BinaryExpr) emit(w *strings.Builder) {
	w.WriteString("((")
	b.lhs.emit(w)
	w.WriteString(") ")
	w.WriteString(b.op.String())
	w.WriteString(" (")
	b.rhs.emit(w)
	w.WriteString("))")
}

// SubscriptExpr indexes an array, one dimension per nesting level (§3.3).
// base is either an *ArrayUseExpr (dimension 0) or another *SubscriptExpr
// (dimension = parent's + 1).
type SubscriptExpr struct {
	base         Expr
	index        Expr
	resolvedType *IntegralType
}

func NewSubscriptExpr(base, index Expr) *SubscriptExpr { return &SubscriptExpr{base: base, index: index} }

func (s *SubscriptExpr) Type() YType { return s.resolvedType }

func (s *SubscriptExpr) propagateType(pool *typePool) (YType, error) {
	bt, err := s.base.propagateType(pool)
	if err != nil {
		return nil, err
	}
	at, ok := bt.(*ArrayType)
	if _, nested := s.base.(*SubscriptExpr); nested {
		// A nested base resolves to the element type; the array type comes
		// from the ArrayUseExpr at the root of the subscript chain.
		root := s.base
		for sub, more := root.(*SubscriptExpr); more; sub, more = root.(*SubscriptExpr) {
			root = sub.base
		}
		if au, isUse := root.(*ArrayUseExpr); isUse {
			at, ok = au.data.typ, true
		}
	}
	if !ok {
		return nil, errPreconditionf("SubscriptExpr: base must be an array, got %s", bt.Name())
	}
	it, err := s.index.propagateType(pool)
	if err != nil {
		return nil, err
	}
	if _, ok := it.(*IntegralType); !ok {
		return nil, errPreconditionf("SubscriptExpr: index must be integral, got %s", it.Name())
	}
	s.resolvedType = at.elem
	return at.elem, nil
}

// activeInfo walks the base chain, returning the array, this node's
// dimension index (active_dim, §4.4), and the row-major partial index
// accumulated through this dimension.
func (s *SubscriptExpr) activeInfo(ctx *EvalCtx) (arr *Array, activeDim int, partial int, err error) {
	idxVal, err := s.index.evaluate(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	switch b := s.base.(type) {
	case *ArrayUseExpr:
		return b.data, 0, int(idxVal.Signed()), nil
	case *SubscriptExpr:
		baseArr, baseDim, basePartial, err := b.activeInfo(ctx)
		if err != nil {
			return nil, 0, 0, err
		}
		dim := baseDim + 1
		return baseArr, dim, basePartial*baseArr.typ.dims[dim]+int(idxVal.Signed()), nil
	default:
		return nil, 0, 0, errPreconditionf("SubscriptExpr: base must be ArrayUseExpr or SubscriptExpr")
	}
}

// inBounds implements §4.4: a scalar index is checked against its own
// value; an iterator index is checked at both its start and end, since the
// iteration space is assumed monotone (positive step, start<=end).
func (s *SubscriptExpr) inBounds(ctx *EvalCtx, activeSize int) (bool, error) {
	if iu, ok := s.index.(*IterUseExpr); ok {
		sv, ev := iu.data.StartValue(), iu.data.EndValue()
		return sv.Signed() >= 0 && sv.Signed() < int64(activeSize) &&
			ev.Signed() >= 0 && ev.Signed() < int64(activeSize), nil
	}
	v, err := s.index.evaluate(ctx)
	if err != nil {
		return false, err
	}
	return v.Signed() >= 0 && v.Signed() < int64(activeSize), nil
}

func (s *SubscriptExpr) evaluate(ctx *EvalCtx) (IRValue, error) {
	arr, dim, partial, err := s.activeInfo(ctx)
	if err != nil {
		return IRValue{}, err
	}
	activeSize := arr.typ.dims[dim]
	ok, err := s.inBounds(ctx, activeSize)
	if err != nil {
		return IRValue{}, err
	}
	if dim != len(arr.typ.dims)-1 {
		// Intermediate dimension: this node is never a terminal value in
		// this generator's emitted programs, only a structural base for the
		// next SubscriptExpr level.
		v := IRValue{id: arr.typ.elem.id}
		if !ok {
			v.ub = OutOfBounds
		}
		return v, nil
	}
	size := arr.Size()
	safe := ((partial % size) + size) % size
	v := arr.ElemAt(safe)
	if !ok {
		v.ub = OutOfBounds
	}
	return v, nil
}

// rebuild implements §4.3's SubscriptExpr rewrite: an out-of-bounds index is
// wrapped in idx % active_size.
func (s *SubscriptExpr) rebuild(ctx *EvalCtx, policy RandPolicy) error {
	if err := s.base.rebuild(ctx, policy); err != nil {
		return err
	}
	if err := s.index.rebuild(ctx, policy); err != nil {
		return err
	}
	arr, dim, _, err := s.activeInfo(ctx)
	if err != nil {
		return err
	}
	activeSize := arr.typ.dims[dim]
	ok, err := s.inBounds(ctx, activeSize)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	idxType, ok2 := s.index.Type().(*IntegralType)
	if !ok2 {
		return errPreconditionf("SubscriptExpr: index type resolved to non-integral")
	}
	sizeConst := &ConstantExpr{val: FromInt64(idxType.id, int64(activeSize)), resolvedType: idxType}
	s.index = &BinaryExpr{op: OpMod, lhs: s.index, rhs: sizeConst, resolvedType: idxType}
	okAfter, err := s.inBounds(ctx, activeSize)
	if err != nil {
		return err
	}
	if !okAfter {
		return newRebuildDivergenceError(OutOfBounds, "subscript")
	}
	return nil
}

func (s *SubscriptExpr) emit(w *strings.Builder) {
	s.base.emit(w)
	w.WriteString("[")
	s.index.emit(w)
	w.WriteString("]")
}

// writeBack stores val into the array element this subscript addresses,
// used by AssignmentExpr.evaluate's write-back dispatch.
func (s *SubscriptExpr) writeBack(ctx *EvalCtx, val IRValue) error {
	arr, dim, partial, err := s.activeInfo(ctx)
	if err != nil {
		return err
	}
	if dim != len(arr.typ.dims)-1 {
		return errPreconditionf("SubscriptExpr: write-back on a non-terminal dimension")
	}
	size := arr.Size()
	safe := ((partial % size) + size) % size
	arr.SetElemAt(safe, val)
	return nil
}

// AssignmentExpr writes source's value into target (§3.3). target must be a
// ScalarVarUseExpr, IterUseExpr, or (terminal) SubscriptExpr.
type AssignmentExpr struct {
	target       Expr
	source       Expr
	resolvedType YType
}

func NewAssignmentExpr(target, source Expr) *AssignmentExpr {
	return &AssignmentExpr{target: target, source: source}
}

func (a *AssignmentExpr) Type() YType { return a.resolvedType }

func (a *AssignmentExpr) propagateType(pool *typePool) (YType, error) {
	tt, err := a.target.propagateType(pool)
	if err != nil {
		return nil, err
	}
	tit, ok := tt.(*IntegralType)
	if !ok {
		return nil, errPreconditionf("AssignmentExpr: target must be integral, got %s", tt.Name())
	}
	st, err := a.source.propagateType(pool)
	if err != nil {
		return nil, err
	}
	if st != YType(tit) {
		a.source = wrapCast(a.source, tit)
	}
	a.resolvedType = tit
	return tit, nil
}

// evaluate implements §3.3's assignment semantics: the destination is
// evaluated first (so a SubscriptExpr target's bounds are resolved against
// current state), then the (possibly implicitly cast) source, and finally —
// only if ctx.Taken — the result is written back through whichever
// use-expression kind the target is.
func (a *AssignmentExpr) evaluate(ctx *EvalCtx) (IRValue, error) {
	if _, err := a.target.evaluate(ctx); err != nil {
		return IRValue{}, err
	}
	srcVal, err := a.source.evaluate(ctx)
	if err != nil {
		return IRValue{}, err
	}
	if ctx.Taken {
		switch t := a.target.(type) {
		case *ScalarVarUseExpr:
			t.data.SetValue(srcVal)
		case *IterUseExpr:
			t.data.SetCurrent(srcVal)
		case *SubscriptExpr:
			if err := t.writeBack(ctx, srcVal); err != nil {
				return IRValue{}, err
			}
		default:
			return IRValue{}, errPreconditionf("AssignmentExpr: unsupported target kind %T", a.target)
		}
	}
	return srcVal, nil
}

func (a *AssignmentExpr) rebuild(ctx *EvalCtx, policy RandPolicy) error {
	if err := a.target.rebuild(ctx, policy); err != nil {
		return err
	}
	return a.source.rebuild(ctx, policy)
}

func (a *AssignmentExpr) emit(w *strings.Builder) {
	a.target.emit(w)
	w.WriteString(" = ")
	a.source.emit(w)
}
