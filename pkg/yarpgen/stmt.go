package yarpgen

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

func writeIndent(w *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(indentUnit)
	}
}

// Stmt is the statement-IR node interface (§3.4). evaluate executes a
// statement's side effects (assignment write-backs) for one point of the
// surrounding iteration space; rebuild repairs any UB its expressions
// produced at that point.
type Stmt interface {
	propagateType(pool *typePool) error
	evaluate(ctx *EvalCtx) error
	rebuild(ctx *EvalCtx, policy RandPolicy) error
	emit(w *strings.Builder, depth int)
}

// ExprStmt wraps a single expression statement, almost always an
// AssignmentExpr (§3.4).
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) propagateType(pool *typePool) error {
	_, err := s.Expr.propagateType(pool)
	return err
}

func (s *ExprStmt) evaluate(ctx *EvalCtx) error {
	_, err := s.Expr.evaluate(ctx)
	return err
}

func (s *ExprStmt) rebuild(ctx *EvalCtx, policy RandPolicy) error {
	return s.Expr.rebuild(ctx, policy)
}

func (s *ExprStmt) emit(w *strings.Builder, depth int) {
	writeIndent(w, depth)
	s.Expr.emit(w)
	w.WriteString(";\n")
}

// DeclStmt declares a Data object with its initial value (§3.4). Iterators
// are declared by their enclosing LoopHead instead, not by a DeclStmt.
type DeclStmt struct {
	data Data
}

func NewDeclStmt(data Data) *DeclStmt { return &DeclStmt{data: data} }

func (s *DeclStmt) propagateType(pool *typePool) error { return nil }

func (s *DeclStmt) evaluate(ctx *EvalCtx) error { return nil }

func (s *DeclStmt) rebuild(ctx *EvalCtx, policy RandPolicy) error { return nil }

func (s *DeclStmt) emit(w *strings.Builder, depth int) {
	writeIndent(w, depth)
	switch d := s.data.(type) {
	case *ScalarVar:
		fmt.Fprintf(w, "%s %s = ", d.typ.Name(), d.name)
		emitLiteral(w, d.typ.id, d.value)
		w.WriteString(";\n")
	case *Array:
		fmt.Fprintf(w, "%s %s", d.typ.elem.Name(), d.name)
		for _, dim := range d.typ.dims {
			fmt.Fprintf(w, "[%d]", dim)
		}
		w.WriteString(" = {")
		for i, v := range d.values {
			if i > 0 {
				w.WriteString(", ")
			}
			emitLiteral(w, d.typ.elem.id, v)
		}
		w.WriteString("};\n")
	default:
		fmt.Fprintf(w, "/* unsupported decl for %s */\n", s.data.Name())
	}
}

// ScopeStmt (aka StmtBlock) is an ordered, braced sequence of statements
// (§3.4).
type ScopeStmt struct {
	Stmts []Stmt
}

func NewScopeStmt(stmts ...Stmt) *ScopeStmt { return &ScopeStmt{Stmts: stmts} }

func (s *ScopeStmt) propagateType(pool *typePool) error {
	for _, st := range s.Stmts {
		if err := st.propagateType(pool); err != nil {
			return err
		}
	}
	return nil
}

func (s *ScopeStmt) evaluate(ctx *EvalCtx) error {
	for _, st := range s.Stmts {
		if err := st.evaluate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *ScopeStmt) rebuild(ctx *EvalCtx, policy RandPolicy) error {
	for _, st := range s.Stmts {
		if err := st.rebuild(ctx, policy); err != nil {
			return err
		}
	}
	return nil
}

func (s *ScopeStmt) emit(w *strings.Builder, depth int) {
	writeIndent(w, depth)
	w.WriteString("{\n")
	for _, st := range s.Stmts {
		st.emit(w, depth+1)
	}
	writeIndent(w, depth)
	w.WriteString("}\n")
}

// StubStmt passes opaque, already-rendered text through the pipeline
// unchanged (§3.4) — used for boilerplate the structure generator emits
// verbatim (includes, pragmas) rather than modeling as IR.
type StubStmt struct {
	Text string
}

func (s *StubStmt) propagateType(pool *typePool) error           { return nil }
func (s *StubStmt) evaluate(ctx *EvalCtx) error                  { return nil }
func (s *StubStmt) rebuild(ctx *EvalCtx, policy RandPolicy) error { return nil }
func (s *StubStmt) emit(w *strings.Builder, depth int) {
	writeIndent(w, depth)
	w.WriteString(s.Text)
	w.WriteString("\n")
}

// LoopHead is the prefix/iterator/suffix triple a loop statement carries
// (§3.4), grounded on original_source/src/stmt.h's LoopHead class.
type LoopHead struct {
	Prefix []Stmt
	Iter   *Iterator
	Suffix []Stmt
}

func (h *LoopHead) emitPrefix(w *strings.Builder, depth int) {
	for _, st := range h.Prefix {
		st.emit(w, depth)
	}
}

func (h *LoopHead) emitHeader(w *strings.Builder) {
	it := h.Iter
	fmt.Fprintf(w, "for (%s %s = ", it.typ.Name(), it.name)
	emitLiteral(w, it.typ.id, it.startVal)
	fmt.Fprintf(w, "; %s <= ", it.name)
	emitLiteral(w, it.typ.id, it.endVal)
	fmt.Fprintf(w, "; %s += ", it.name)
	emitLiteral(w, it.typ.id, it.stepVal)
	w.WriteString(")")
}

func (h *LoopHead) emitSuffix(w *strings.Builder, depth int) {
	for _, st := range h.Suffix {
		st.emit(w, depth)
	}
}

// sweep calls fn once for every value in the iterator's reachable range
// (§4.4), in ascending order, binding it to that value via ctx's
// iterator-override mechanism without mutating the Iterator itself.
func (h *LoopHead) sweep(ctx *EvalCtx, fn func(*EvalCtx) error) error {
	it := h.Iter
	for v := it.StartValue(); v.Signed() <= it.EndValue().Signed(); v = v.Add(it.StepValue()) {
		if err := fn(ctx.withIterator(it, v)); err != nil {
			return err
		}
	}
	return nil
}

// LoopNestStmt is a single for-loop, whose body may itself be (or contain)
// another LoopNestStmt to form a true nest (§3.4).
type LoopNestStmt struct {
	Head *LoopHead
	Body Stmt
}

func (s *LoopNestStmt) propagateType(pool *typePool) error { return s.Body.propagateType(pool) }

func (s *LoopNestStmt) evaluate(ctx *EvalCtx) error {
	return s.Head.sweep(ctx, s.Body.evaluate)
}

// rebuild repairs the body's UB at every point of this loop's iteration
// space, in order. Because the body's expression nodes are shared across
// iterations, a repair made for one iteration value can in principle only
// be undone by a later one in adversarial cases; generate.go runs two
// sweep-and-repair passes rather than asserting single-pass convergence
// here, and does not re-check the iteration space after the second pass
// (see DESIGN.md).
func (s *LoopNestStmt) rebuild(ctx *EvalCtx, policy RandPolicy) error {
	return s.Head.sweep(ctx, func(childCtx *EvalCtx) error {
		return s.Body.rebuild(childCtx, policy)
	})
}

func (s *LoopNestStmt) emit(w *strings.Builder, depth int) {
	s.Head.emitPrefix(w, depth)
	writeIndent(w, depth)
	s.Head.emitHeader(w)
	w.WriteString(" {\n")
	s.Body.emit(w, depth+1)
	writeIndent(w, depth)
	w.WriteString("}\n")
	s.Head.emitSuffix(w, depth)
}

// LoopSeqStmt is a sequence of sibling loops at the same nesting level,
// executed one after another (§3.4), as distinct from LoopNestStmt's
// one-inside-another nesting.
type LoopSeqStmt struct {
	Loops []*LoopNestStmt
}

func (s *LoopSeqStmt) propagateType(pool *typePool) error {
	for _, l := range s.Loops {
		if err := l.propagateType(pool); err != nil {
			return err
		}
	}
	return nil
}

func (s *LoopSeqStmt) evaluate(ctx *EvalCtx) error {
	for _, l := range s.Loops {
		if err := l.evaluate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *LoopSeqStmt) rebuild(ctx *EvalCtx, policy RandPolicy) error {
	for _, l := range s.Loops {
		if err := l.rebuild(ctx, policy); err != nil {
			return err
		}
	}
	return nil
}

func (s *LoopSeqStmt) emit(w *strings.Builder, depth int) {
	for _, l := range s.Loops {
		l.emit(w, depth)
	}
}
