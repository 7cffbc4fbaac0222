package yarpgen

import (
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestDefaultsPassValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults() should validate cleanly, got %v", err)
	}
}

func TestValidateAggregatesAllViolations(t *testing.T) {
	o := Defaults()
	o.AlignSize = 3
	o.MaxExprDepth = 0
	o.LoopLength = 0
	o.OutDir = ""

	err := o.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	errs := multierr.Errors(err)
	if len(errs) != 4 {
		t.Fatalf("expected all 4 violations reported, got %d: %v", len(errs), errs)
	}
}

func TestValidateRejectsUnrecognizedStandard(t *testing.T) {
	o := Defaults()
	o.Standard = StandardID(999)
	if err := o.Validate(); err == nil {
		t.Fatalf("expected error for unrecognized standard")
	}
}

func TestStandardIDToDialectCoversFullRange(t *testing.T) {
	tests := []struct {
		id   StandardID
		want Dialect
	}{
		{C99, DialectISPC},
		{C11, DialectISPC},
		{CXX98, DialectCXX},
		{CXX03, DialectCXX},
		{CXX11, DialectCXX},
		{CXX14, DialectCXX},
		{CXX17, DialectCXX},
		{OpenCL1_0, DialectSYCL},
		{OpenCL1_1, DialectSYCL},
		{OpenCL1_2, DialectSYCL},
		{OpenCL2_0, DialectSYCL},
		{OpenCL2_1, DialectSYCL},
		{OpenCL2_2, DialectSYCL},
	}
	for _, tt := range tests {
		got, err := tt.id.ToDialect()
		if err != nil {
			t.Fatalf("ToDialect(%d): unexpected error %v", tt.id, err)
		}
		if got != tt.want {
			t.Fatalf("ToDialect(%d) = %s, want %s", tt.id, got, tt.want)
		}
	}
}

func TestDialectStringCoversKnownValues(t *testing.T) {
	if DialectCXX.String() != "cxx" || DialectISPC.String() != "ispc" || DialectSYCL.String() != "sycl" {
		t.Fatalf("unexpected Dialect.String() outputs")
	}
}

func TestAlignSizeMustBePowerOfTwo(t *testing.T) {
	o := Defaults()
	o.AlignSize = 6
	err := o.Validate()
	if err == nil || !strings.Contains(err.Error(), "power of two") {
		t.Fatalf("expected power-of-two validation error, got %v", err)
	}
}
