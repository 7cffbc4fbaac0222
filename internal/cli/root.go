package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/01org/yarpgen/pkg/yarpgen"
)

const (
	appName    = "yarpgen"
	appVersion = "0.1.0"
)

type negBoolBinding struct {
	target *bool
	neg    *bool
}

func addBoolPair(cmd *cobra.Command, bindings *[]negBoolBinding, target *bool, name string, usage string) {
	neg := new(bool)
	cmd.Flags().BoolVar(target, name, *target, usage)
	cmd.Flags().BoolVar(neg, "no-"+name, false, "disable "+name)
	*bindings = append(*bindings, negBoolBinding{target: target, neg: neg})
}

func NewRootCmd() *cobra.Command {
	opts := yarpgen.Defaults()
	seedSet := false
	outputPath := ""
	showVersion := false
	stdFlag := "c++14"
	negBindings := make([]negBoolBinding, 0, 8)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Random program generator for stress-testing optimizing compilers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected arguments: %v", args)
			}
			if showVersion {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, appVersion)
				return err
			}

			std, err := parseStandard(stdFlag)
			if err != nil {
				return err
			}
			opts.Standard = std

			if !seedSet {
				opts.Seed = uint64(time.Now().UnixNano())
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			program, err := yarpgen.Generate(opts)
			if err != nil {
				return err
			}

			if outputPath == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), program)
				return err
			}
			return os.WriteFile(outputPath, []byte(program), 0o644)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version")
	cmd.Flags().Uint64VarP(&opts.Seed, "seed", "s", 0, "seed for deterministic generation")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write generated program to file")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", opts.OutDir, "output directory (validated and stored only; the program goes to --output or stdout)")
	cmd.Flags().StringVar(&stdFlag, "std", stdFlag, "target language standard (c99, c11, c++98..c++17, opencl-1.0..opencl-2.2)")
	cmd.Flags().IntVar(&opts.AlignSize, "align-size", opts.AlignSize, "alignment size in bytes (validated and stored only; no effect on the output)")
	cmd.Flags().IntVar(&opts.MaxExprDepth, "max-expr-depth", opts.MaxExprDepth, "maximum expression tree depth")
	cmd.Flags().IntVar(&opts.LoopLength, "loop-length", opts.LoopLength, "number of iterations in the generated loop")

	addBoolPair(cmd, &negBindings, &opts.Asserts, "asserts", "runtime assertions guarding undefined behavior (stored only; no effect on the output)")
	addBoolPair(cmd, &negBindings, &opts.InpAsArgs, "inp-as-args", "inputs as command-line arguments (stored only; no effect on the output)")
	addBoolPair(cmd, &negBindings, &opts.EmitAlignAttr, "emit-align-attr", "alignment attributes on declarations (stored only; no effect on the output)")
	addBoolPair(cmd, &negBindings, &opts.UniqueAlignSize, "unique-align-size", "fresh alignment size per declaration (stored only; no effect on the output)")
	addBoolPair(cmd, &negBindings, &opts.AllowDeadData, "allow-dead-data", "declarations that are never read (stored only; no effect on the output)")
	addBoolPair(cmd, &negBindings, &opts.EmitPragmas, "emit-pragmas", "optimizer pragma hints (stored only; no effect on the output)")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		seedSet = cmd.Flags().Changed("seed")
		for _, b := range negBindings {
			if *b.neg {
				*b.target = false
			}
		}
	}

	return cmd
}

func parseStandard(s string) (yarpgen.StandardID, error) {
	switch s {
	case "c99":
		return yarpgen.C99, nil
	case "c11":
		return yarpgen.C11, nil
	case "c++98":
		return yarpgen.CXX98, nil
	case "c++03":
		return yarpgen.CXX03, nil
	case "c++11":
		return yarpgen.CXX11, nil
	case "c++14":
		return yarpgen.CXX14, nil
	case "c++17":
		return yarpgen.CXX17, nil
	case "opencl-1.0":
		return yarpgen.OpenCL1_0, nil
	case "opencl-1.1":
		return yarpgen.OpenCL1_1, nil
	case "opencl-1.2":
		return yarpgen.OpenCL1_2, nil
	case "opencl-2.0":
		return yarpgen.OpenCL2_0, nil
	case "opencl-2.1":
		return yarpgen.OpenCL2_1, nil
	case "opencl-2.2":
		return yarpgen.OpenCL2_2, nil
	default:
		return 0, fmt.Errorf("cli: unrecognized --std value %q", s)
	}
}
