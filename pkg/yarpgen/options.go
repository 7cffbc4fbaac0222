package yarpgen

import (
	"fmt"

	"go.uber.org/multierr"
)

// Dialect is the emitter's actual output mode (SPEC_FULL.md §5 item 2):
// spec.md scopes the emitter to exactly these three, regardless of how many
// --std values the CLI accepts for compatibility with the original tool's
// flag vocabulary.
type Dialect int

const (
	DialectCXX Dialect = iota
	DialectISPC
	DialectSYCL
)

func (d Dialect) String() string {
	switch d {
	case DialectCXX:
		return "cxx"
	case DialectISPC:
		return "ispc"
	case DialectSYCL:
		return "sycl"
	default:
		return "unknown"
	}
}

// StandardID mirrors original_source/src/options.h's StandardID enum in
// full, even though its thirteen values collapse onto three dialects (the
// C++ values to DialectCXX, C to DialectISPC, OpenCL to DialectSYCL): CLI users of the
// original tool expect the full --std vocabulary to be accepted (SPEC_FULL
// §5 item 2).
type StandardID int

const (
	C99 StandardID = iota
	C11
	CXX98
	CXX03
	CXX11
	CXX14
	CXX17
	OpenCL1_0
	OpenCL1_1
	OpenCL1_2
	OpenCL2_0
	OpenCL2_1
	OpenCL2_2
)

// ToDialect normalizes the full --std vocabulary down to one of the three
// emitter dialects this port actually implements.
func (s StandardID) ToDialect() (Dialect, error) {
	switch {
	case s >= CXX98 && s <= CXX17:
		return DialectCXX, nil
	case s == C99 || s == C11:
		return DialectISPC, nil
	case s >= OpenCL1_0 && s <= OpenCL2_2:
		return DialectSYCL, nil
	default:
		return 0, fmt.Errorf("options: unrecognized standard id %d", s)
	}
}

// Options holds every generation-run parameter (§6.4). Grounded on the
// teacher's pkg/csmith/options.go flat-struct shape, plus the original's
// StandardID vocabulary for CLI-level record. Generate reads Seed, Standard,
// MaxExprDepth and LoopLength; the remaining fields are stored and, for
// AlignSize and OutDir, validated, but do not affect the generated program.
type Options struct {
	Seed uint64

	Standard StandardID

	Asserts        bool
	InpAsArgs      bool
	EmitAlignAttr  bool
	UniqueAlignSize bool
	AlignSize      int
	AllowDeadData  bool
	EmitPragmas    bool

	MaxExprDepth int
	LoopLength   int

	OutDir string
}

// Defaults returns the option set the CLI starts from before flags are
// applied, mirroring the teacher's Defaults().
func Defaults() Options {
	return Options{
		Seed:          1,
		Standard:      CXX14,
		Asserts:       true,
		InpAsArgs:     false,
		EmitAlignAttr: false,
		AlignSize:     8,
		AllowDeadData: false,
		EmitPragmas:   false,
		MaxExprDepth:  3,
		LoopLength:    8,
		OutDir:        ".",
	}
}

// Validate checks every constraint independently and aggregates every
// violation via multierr, rather than stopping at the teacher's
// first-broken-constraint behavior (SPEC_FULL.md §2's Ambient Stack note).
func (o Options) Validate() error {
	var errs error
	if o.AlignSize <= 0 || (o.AlignSize&(o.AlignSize-1)) != 0 {
		errs = multierr.Append(errs, fmt.Errorf("options: align-size must be a positive power of two, got %d", o.AlignSize))
	}
	if o.MaxExprDepth < 1 {
		errs = multierr.Append(errs, fmt.Errorf("options: max expression depth must be >= 1, got %d", o.MaxExprDepth))
	}
	if o.LoopLength < 1 {
		errs = multierr.Append(errs, fmt.Errorf("options: loop length must be >= 1, got %d", o.LoopLength))
	}
	if _, err := o.Standard.ToDialect(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if o.OutDir == "" {
		errs = multierr.Append(errs, fmt.Errorf("options: out-dir must not be empty"))
	}
	return errs
}
