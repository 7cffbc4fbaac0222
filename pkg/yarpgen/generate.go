package yarpgen

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Generate runs the full pipeline: build a small structure, populate it via
// the default policy, propagate types, then sweep-and-repair the iteration
// space before emitting text (§1, §4 of SPEC_FULL.md). Grounded on the
// teacher's pkg/csmith/pipeline.go defaultProgramGenerator staged shape
// (initialize/generate/output), adapted from C-source emission stages to
// this port's propagate/evaluate/rebuild/emit IR stages.
func Generate(opts Options) (out string, err error) {
	defer recoverPrecondition(&err)

	if verr := opts.Validate(); verr != nil {
		return "", errors.Wrap(verr, "invalid options")
	}
	dialect, err := opts.Standard.ToDialect()
	if err != nil {
		return "", errors.Wrap(err, "resolve dialect")
	}

	builder := NewIRBuilder()
	policy := NewDefaultPolicy(opts.Seed)
	pc := NewPopulateCtx(builder, policy)
	pc.maxDepth = opts.MaxExprDepth

	program, err := buildProgram(builder, pc, opts)
	if err != nil {
		return "", errors.Wrap(err, "build program")
	}

	if err := program.propagateType(builder.Types); err != nil {
		return "", errors.Wrap(err, "propagate type")
	}

	ctx := newEvalCtx()
	const maxRebuildPasses = 2
	for pass := 0; pass < maxRebuildPasses; pass++ {
		if err := program.rebuild(ctx, policy); err != nil {
			return "", errors.Wrap(err, "rebuild")
		}
	}

	var w strings.Builder
	emitPreamble(&w, dialect)
	program.emit(&w, 0)
	return w.String(), nil
}

// buildProgram constructs a handful of scalar/array declarations, a single
// loop nest over an Iterator spanning [0, opts.LoopLength), and one
// assignment per declared piece of Data inside the loop body, using the
// default population policy (SUPPLEMENTED FEATURES item 5).
func buildProgram(builder *IRBuilder, pc *PopulateCtx, opts Options) (Stmt, error) {
	const numScalars = 3
	const arrayLen = 16

	decls := make([]Stmt, 0, numScalars+2)
	for i := 0; i < numScalars; i++ {
		typ := pc.Policy.PickScalarType(builder.Types)
		v := NewScalarVar(fmt.Sprintf("v%d", i), typ, FromInt64(typ.id, int64(i+1)))
		builder.Symbols.DeclareScalar(v)
		decls = append(decls, NewDeclStmt(v))
	}

	arrType := builder.Types.Array(builder.Types.Scalar(INT), []int{arrayLen})
	arr := NewArray("a0", arrType, FromInt64(INT, 0))
	builder.Symbols.DeclareArray(arr)
	decls = append(decls, NewDeclStmt(arr))

	iterType := builder.Types.Scalar(INT)
	start := NewConstant(builder.Types, FromInt64(iterType.id, 0))
	end := NewConstant(builder.Types, FromInt64(iterType.id, int64(opts.LoopLength-1)))
	step := NewConstant(builder.Types, FromInt64(iterType.id, 1))
	iter, err := NewIterator("i", iterType, start, end, step)
	if err != nil {
		return nil, err
	}
	builder.Symbols.DeclareIterator(iter)

	bodyStmts := make([]Stmt, 0, numScalars+1)
	for _, sv := range builder.Symbols.Scalars() {
		bodyStmts = append(bodyStmts, &ExprStmt{Expr: pc.BuildAssignment(sv)})
	}
	bodyStmts = append(bodyStmts, &ExprStmt{
		Expr: pc.BuildArraySubscriptAssignment(arr, builder.UseIterator(iter)),
	})

	loop := &LoopNestStmt{
		Head: &LoopHead{Iter: iter},
		Body: NewScopeStmt(bodyStmts...),
	}

	return NewScopeStmt(append(decls, loop)...), nil
}

func emitPreamble(w *strings.Builder, d Dialect) {
	w.WriteString("// generated program, dialect=")
	w.WriteString(d.String())
	w.WriteString("\n")
	switch d {
	case DialectCXX:
		w.WriteString("#include <cstdint>\n\n")
	case DialectISPC:
		w.WriteString("#include <stdint.h>\n\n")
	case DialectSYCL:
		w.WriteString("#include <CL/sycl.hpp>\n#include <cstdint>\n\n")
	}
	w.WriteString("int main()\n")
}
