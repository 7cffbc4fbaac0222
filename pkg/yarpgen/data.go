package yarpgen

import (
	"fmt"
)

// DataKind distinguishes the three storage-backed Data variants (§3.2).
type DataKind int

const (
	ScalarData DataKind = iota
	ArrayData
	IterData
)

// Data is anything an expression can read or write through a use-expression
// (§3.2). Each concrete implementation has stable identity: a *ScalarVar,
// *Array, or *Iterator is never copied once constructed, so pointer equality
// is object equality, which is what the use-expression interning tables key
// on to enforce invariant I1.
type Data interface {
	Kind() DataKind
	Name() string
	Type() YType
}

// ScalarVar is a named scalar variable with a current value (§3.2).
type ScalarVar struct {
	name  string
	typ   *IntegralType
	value IRValue
}

func NewScalarVar(name string, typ *IntegralType, init IRValue) *ScalarVar {
	return &ScalarVar{name: name, typ: typ, value: init}
}

func (v *ScalarVar) Kind() DataKind { return ScalarData }
func (v *ScalarVar) Name() string   { return v.name }
func (v *ScalarVar) Type() YType    { return v.typ }
func (v *ScalarVar) Value() IRValue { return v.value }
func (v *ScalarVar) SetValue(val IRValue) {
	if val.TypeID() != v.typ.id {
		panic(preconditionError{fmt.Sprintf("scalar %s: write of type %s into %s", v.name, val.TypeID().Name(), v.typ.Name())})
	}
	v.value = val
}

// Array is a named array with a flattened row-major element-value snapshot
// (§3.2).
type Array struct {
	name   string
	typ    *ArrayType
	values []IRValue
}

func NewArray(name string, typ *ArrayType, init IRValue) *Array {
	size := 1
	for _, d := range typ.dims {
		size *= d
	}
	vals := make([]IRValue, size)
	for i := range vals {
		vals[i] = init
	}
	return &Array{name: name, typ: typ, values: vals}
}

func (a *Array) Kind() DataKind { return ArrayData }
func (a *Array) Name() string   { return a.name }
func (a *Array) Type() YType    { return a.typ }
func (a *Array) Size() int      { return len(a.values) }

func (a *Array) ElemAt(linearIdx int) IRValue {
	if linearIdx < 0 || linearIdx >= len(a.values) {
		panic(preconditionError{fmt.Sprintf("array %s: index %d out of bounds [0,%d)", a.name, linearIdx, len(a.values))})
	}
	return a.values[linearIdx]
}

func (a *Array) SetElemAt(linearIdx int, val IRValue) {
	if linearIdx < 0 || linearIdx >= len(a.values) {
		panic(preconditionError{fmt.Sprintf("array %s: index %d out of bounds [0,%d)", a.name, linearIdx, len(a.values))})
	}
	if val.TypeID() != a.typ.elem.id {
		panic(preconditionError{fmt.Sprintf("array %s: write of type %s into element type %s", a.name, val.TypeID().Name(), a.typ.elem.Name())})
	}
	a.values[linearIdx] = val
}

// Iterator is a loop induction variable with a start/end/step triple and a
// loop-context-supplied current value (§3.2). The Open Question on
// negative-step loops (DESIGN.md) is resolved by requiring step > 0 and
// start <= end at construction.
type Iterator struct {
	name  string
	typ   *IntegralType
	start Expr
	end   Expr
	step  Expr

	startVal IRValue
	endVal   IRValue
	stepVal  IRValue
	current  IRValue
}

// NewIterator validates the positive-step, start<=end precondition that the
// reachable-range analysis (§4.4) relies on, evaluating start/end/step once
// against an empty context (they must be loop-invariant constant
// expressions by construction).
func NewIterator(name string, typ *IntegralType, start, end, step Expr) (*Iterator, error) {
	ctx := newEvalCtx()
	sv, err := start.evaluate(ctx)
	if err != nil {
		return nil, fmt.Errorf("iterator %s: evaluating start: %w", name, err)
	}
	ev, err := end.evaluate(ctx)
	if err != nil {
		return nil, fmt.Errorf("iterator %s: evaluating end: %w", name, err)
	}
	pv, err := step.evaluate(ctx)
	if err != nil {
		return nil, fmt.Errorf("iterator %s: evaluating step: %w", name, err)
	}
	if pv.Signed() <= 0 {
		return nil, fmt.Errorf("iterator %s: step must be positive, got %s", name, pv.String())
	}
	if sv.Signed() > ev.Signed() {
		return nil, fmt.Errorf("iterator %s: start (%s) must not exceed end (%s)", name, sv.String(), ev.String())
	}
	return &Iterator{
		name: name, typ: typ, start: start, end: end, step: step,
		startVal: sv, endVal: ev, stepVal: pv, current: sv,
	}, nil
}

func (it *Iterator) Kind() DataKind { return IterData }
func (it *Iterator) Name() string   { return it.name }
func (it *Iterator) Type() YType    { return it.typ }
func (it *Iterator) Current() IRValue { return it.current }
func (it *Iterator) SetCurrent(v IRValue) {
	if v.TypeID() != it.typ.id {
		panic(preconditionError{fmt.Sprintf("iterator %s: write of type %s into %s", it.name, v.TypeID().Name(), it.typ.Name())})
	}
	it.current = v
}
func (it *Iterator) StartValue() IRValue { return it.startVal }
func (it *Iterator) EndValue() IRValue   { return it.endVal }
func (it *Iterator) StepValue() IRValue  { return it.stepVal }

// SymbolTable holds every declared Data object in declaration order, which
// doubles as emission order for DeclStmt (§3.4).
type SymbolTable struct {
	scalars   map[string]*ScalarVar
	arrays    map[string]*Array
	iterators map[string]*Iterator
	order     []Data
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		scalars:   make(map[string]*ScalarVar),
		arrays:    make(map[string]*Array),
		iterators: make(map[string]*Iterator),
	}
}

func (t *SymbolTable) DeclareScalar(v *ScalarVar) {
	t.scalars[v.name] = v
	t.order = append(t.order, v)
}

func (t *SymbolTable) DeclareArray(a *Array) {
	t.arrays[a.name] = a
	t.order = append(t.order, a)
}

func (t *SymbolTable) DeclareIterator(it *Iterator) {
	t.iterators[it.name] = it
	t.order = append(t.order, it)
}

func (t *SymbolTable) Scalar(name string) (*ScalarVar, bool) { v, ok := t.scalars[name]; return v, ok }
func (t *SymbolTable) ArrayByName(name string) (*Array, bool) { a, ok := t.arrays[name]; return a, ok }
func (t *SymbolTable) IteratorByName(name string) (*Iterator, bool) {
	it, ok := t.iterators[name]
	return it, ok
}

// All returns every declared Data object in declaration order.
func (t *SymbolTable) All() []Data { return append([]Data(nil), t.order...) }

// IRBuilder owns the type pool and the three use-expression interning
// tables, enforcing invariant I1: exactly one use-expression per Data
// object. Grounded on original_source/src/expr.cpp's three
// unordered_map<shared_ptr<Data>, shared_ptr<*UseExpr>> globals, ported as
// per-run maps keyed on *Data pointer identity.
type IRBuilder struct {
	Types   *typePool
	Symbols *SymbolTable

	scalarUses map[*ScalarVar]*ScalarVarUseExpr
	arrayUses  map[*Array]*ArrayUseExpr
	iterUses   map[*Iterator]*IterUseExpr
}

func NewIRBuilder() *IRBuilder {
	return &IRBuilder{
		Types:      newTypePool(),
		Symbols:    NewSymbolTable(),
		scalarUses: make(map[*ScalarVar]*ScalarVarUseExpr),
		arrayUses:  make(map[*Array]*ArrayUseExpr),
		iterUses:   make(map[*Iterator]*IterUseExpr),
	}
}

// UseScalar returns the single interned ScalarVarUseExpr for v.
func (b *IRBuilder) UseScalar(v *ScalarVar) *ScalarVarUseExpr {
	if u, ok := b.scalarUses[v]; ok {
		return u
	}
	u := &ScalarVarUseExpr{data: v}
	b.scalarUses[v] = u
	return u
}

// UseArray returns the single interned ArrayUseExpr for a.
func (b *IRBuilder) UseArray(a *Array) *ArrayUseExpr {
	if u, ok := b.arrayUses[a]; ok {
		return u
	}
	u := &ArrayUseExpr{data: a}
	b.arrayUses[a] = u
	return u
}

// UseIterator returns the single interned IterUseExpr for it.
func (b *IRBuilder) UseIterator(it *Iterator) *IterUseExpr {
	if u, ok := b.iterUses[it]; ok {
		return u
	}
	u := &IterUseExpr{data: it}
	b.iterUses[it] = u
	return u
}

// scalarUseCount and friends exist for test assertions of I1 (exactly one
// use-expression per Data object) without exposing the maps themselves.
func (b *IRBuilder) scalarUseCount() int { return len(b.scalarUses) }
func (b *IRBuilder) arrayUseCount() int  { return len(b.arrayUses) }
func (b *IRBuilder) iterUseCount() int   { return len(b.iterUses) }
