package yarpgen

// defaultPolicy is the module's one concrete RandPolicy (§6.2), driven by
// the teacher's weighted-table dispatch shape (pkg/csmith/generator.go's
// termFunction/termVariable-style decode tables) instead of Csmith's own
// C-source-text leaf choices.
type defaultPolicy struct {
	rng *rng
}

func NewDefaultPolicy(seed uint64) *defaultPolicy { return &defaultPolicy{rng: newRNG(seed)} }

func (p *defaultPolicy) RandRange(lo, hi int) int {
	return int(p.rng.uptoRange(uint64(lo), uint64(hi)))
}

func (p *defaultPolicy) FlipCoin(pct int) bool { return p.rng.flipcoin(uint32(pct)) }

type weightedEntry[T any] struct {
	value  T
	weight int
}

func pickWeighted[T any](r *rng, entries []weightedEntry[T]) T {
	total := 0
	for _, e := range entries {
		total += e.weight
	}
	draw := int(r.upto(uint32(total)))
	for _, e := range entries {
		if draw < e.weight {
			return e.value
		}
		draw -= e.weight
	}
	return entries[len(entries)-1].value
}

var unaryOpTable = []weightedEntry[UnaryOp]{
	{OpPlus, 10},
	{OpNegate, 40},
	{OpLogNot, 15},
	{OpBitNot, 35},
}

func (p *defaultPolicy) PickUnaryOp() UnaryOp { return pickWeighted(p.rng, unaryOpTable) }

var binaryOpTable = []weightedEntry[BinaryOp]{
	{OpAdd, 16}, {OpSub, 16}, {OpMul, 10}, {OpDiv, 6}, {OpMod, 6},
	{OpLt, 4}, {OpGt, 4}, {OpLe, 4}, {OpGe, 4}, {OpEq, 4}, {OpNe, 4},
	{OpLogAnd, 3}, {OpLogOr, 3},
	{OpBitAnd, 6}, {OpBitOr, 6}, {OpBitXor, 6},
	{OpShl, 4}, {OpShr, 4},
}

func (p *defaultPolicy) PickBinaryOp() BinaryOp { return pickWeighted(p.rng, binaryOpTable) }

var scalarTypeTable = []weightedEntry[IntTypeID]{
	{INT, 26}, {UINT, 20}, {LONG, 8}, {ULONG, 8}, {LLONG, 8}, {ULLONG, 8},
	{SHORT, 6}, {USHORT, 6}, {SCHAR, 5}, {UCHAR, 5},
}

func (p *defaultPolicy) PickScalarType(pool *typePool) *IntegralType {
	return pool.Scalar(pickWeighted(p.rng, scalarTypeTable))
}

// PopulateCtx bundles the collaborators a population pass needs: the
// interning/type state, the symbol table to read operands from, and the
// policy driving random choices. Grounded on original_source/src/expr.cpp's
// ArithmeticExpr::create/AssignmentExpr::create static factories, which
// take the equivalent of this bundle as a PopulateCtx parameter.
type PopulateCtx struct {
	Builder *IRBuilder
	Policy  RandPolicy

	maxDepth int
}

func NewPopulateCtx(builder *IRBuilder, policy RandPolicy) *PopulateCtx {
	return &PopulateCtx{Builder: builder, Policy: policy, maxDepth: 3}
}

// randomOperand picks a random readable scalar or iterator use-expression
// from the symbol table. Arrays are deliberately excluded here: they enter
// expressions only through an explicit SubscriptExpr built by the caller.
func (p *PopulateCtx) randomOperand(typ *IntegralType) Expr {
	scalars := p.Builder.Symbols.Scalars()
	iters := p.Builder.Symbols.IteratorsAll()
	total := len(scalars) + len(iters)
	if total == 0 {
		return NewConstant(p.Builder.Types, FromInt64(typ.id, int64(p.Policy.RandRange(0, 9))))
	}
	choice := p.Policy.RandRange(0, total-1)
	if choice < len(scalars) {
		return p.Builder.UseScalar(scalars[choice])
	}
	return p.Builder.UseIterator(iters[choice-len(scalars)])
}

// buildExpr grows a small expression tree rooted at typ, bottoming out at a
// leaf (constant or variable use) once depth runs out or a coin flip says
// to stop early, mirroring the teacher's snapshot/retry leaf-vs-branch
// weighting without needing the snapshot machinery itself (there is no
// backtracking here: every node this builds is by construction already
// well-typed).
func (p *PopulateCtx) buildExpr(typ *IntegralType, depth int) Expr {
	if depth <= 0 || p.Policy.FlipCoin(35) {
		if p.Policy.FlipCoin(40) {
			return NewConstant(p.Builder.Types, FromInt64(typ.id, int64(p.Policy.RandRange(0, 100))))
		}
		return p.randomOperand(typ)
	}
	if p.Policy.FlipCoin(25) {
		return NewUnaryExpr(p.Policy.PickUnaryOp(), p.buildExpr(typ, depth-1))
	}
	op := p.Policy.PickBinaryOp()
	return NewBinaryExpr(op, p.buildExpr(typ, depth-1), p.buildExpr(typ, depth-1))
}

// BuildExpr is buildExpr's exported entry point, starting at this context's
// configured max depth.
func (p *PopulateCtx) BuildExpr(typ *IntegralType) Expr { return p.buildExpr(typ, p.maxDepth) }

// BuildAssignment constructs one assignment statement writing a freshly
// built expression into target, grounded on AssignmentExpr::create.
func (p *PopulateCtx) BuildAssignment(target *ScalarVar) *AssignmentExpr {
	expr := p.BuildExpr(target.typ)
	return NewAssignmentExpr(p.Builder.UseScalar(target), expr)
}

// BuildArraySubscriptAssignment writes a freshly built expression into one
// element of arr, indexed by idx (typically an iterator use).
func (p *PopulateCtx) BuildArraySubscriptAssignment(arr *Array, idx Expr) *AssignmentExpr {
	expr := p.BuildExpr(arr.typ.elem)
	target := NewSubscriptExpr(p.Builder.UseArray(arr), idx)
	return NewAssignmentExpr(target, expr)
}
