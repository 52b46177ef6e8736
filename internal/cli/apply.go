package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/colkit"
	"github.com/hupe1980/colkit/codec"
	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/parquetcol"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	Config       string
	Input        string
	Output       string
	Kernel       string
	Column       string
	Alias        string
	Params       string
	ParamsFormat string
}

// ApplyResult summarizes an apply run.
type ApplyResult struct {
	Input  string        `json:"input"`
	Output string        `json:"output"`
	Rows   int           `json:"rows"`
	Steps  []StepSummary `json:"steps"`
}

// StepSummary describes one applied step.
type StepSummary struct {
	Kernel string `json:"kernel"`
	Column string `json:"column"`
	Output string `json:"output"`
	Nulls  int    `json:"nulls"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply kernels to columns of a Parquet file",
		Long: `Apply one kernel to one column of a Parquet file and write the result.

Either pass --input, --output, --kernel, --column and --params, or describe
several steps in a YAML pipeline passed with --config.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "YAML pipeline file")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input Parquet file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output Parquet file")
	cmd.Flags().StringVarP(&opts.Kernel, "kernel", "k", "", "kernel name")
	cmd.Flags().StringVar(&opts.Column, "column", "", "input column")
	cmd.Flags().StringVar(&opts.Alias, "alias", "", "output column name (default replaces the input column)")
	cmd.Flags().StringVarP(&opts.Params, "params", "p", "{}", "kernel parameter record")
	cmd.Flags().StringVar(&opts.ParamsFormat, "params-format", "json", "codec for --params ("+codec.FormatList()+")")

	return cmd
}

type encodedStep struct {
	Step
	raw []byte
}

func runApply(rootOpts *RootOptions, opts *ApplyOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	input, output, steps, c, err := resolveSteps(opts)
	if err != nil {
		return formatter.Fail("invalid arguments", err)
	}

	e, err := newEngine(rootOpts, cmd, c)
	if err != nil {
		return formatter.Fail("create engine", err)
	}

	f, err := parquetcol.Open(input)
	if err != nil {
		return formatter.Fail("open input", err)
	}
	cols, err := f.ReadAll()
	_ = f.Close()
	if err != nil {
		return formatter.Fail("read input", err)
	}
	formatter.VerboseLog("Read %d column(s) from %s", len(cols), input)

	result := ApplyResult{Input: input, Output: output}
	if len(cols) > 0 {
		result.Rows = cols[0].Len()
	}

	for _, s := range steps {
		cols, err = applyStep(cmd, e, cols, s)
		if err != nil {
			return formatter.Fail(fmt.Sprintf("apply %s to %q", s.Kernel, s.Column), err)
		}
		outName := s.Column
		if s.Alias != "" {
			outName = s.Alias
		}
		result.Steps = append(result.Steps, StepSummary{
			Kernel: s.Kernel,
			Column: s.Column,
			Output: outName,
			Nulls:  findColumn(cols, outName).NullCount(),
		})
		formatter.VerboseLog("Applied %s to %q -> %q", s.Kernel, s.Column, outName)
	}

	if err := parquetcol.WriteFile(output, cols...); err != nil {
		return formatter.Fail("write output", err)
	}

	return formatter.Success(result, func(w io.Writer) error {
		for _, s := range result.Steps {
			if _, err := fmt.Fprintf(w, "%s(%s) -> %s\n", s.Kernel, s.Column, s.Output); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "wrote %d rows to %s\n", result.Rows, result.Output)
		return err
	})
}

// resolveSteps turns flags or a pipeline file into encoded steps plus the
// codec that decodes them.
func resolveSteps(opts *ApplyOptions) (string, string, []encodedStep, codec.Codec, error) {
	if opts.Config != "" {
		p, err := LoadPipeline(opts.Config)
		if err != nil {
			return "", "", nil, nil, err
		}
		steps := make([]encodedStep, 0, len(p.Steps))
		for _, s := range p.Steps {
			raw, err := s.EncodedParams()
			if err != nil {
				return "", "", nil, nil, err
			}
			steps = append(steps, encodedStep{Step: s, raw: raw})
		}
		return p.Input, p.Output, steps, codec.YAML{}, nil
	}

	c, ok := codec.ByName(opts.ParamsFormat)
	if !ok {
		return "", "", nil, nil, fmt.Errorf("unknown params format %q (want %s)", opts.ParamsFormat, codec.FormatList())
	}
	p := Pipeline{
		Input:  opts.Input,
		Output: opts.Output,
		Steps:  []Step{{Kernel: opts.Kernel, Column: opts.Column, Alias: opts.Alias}},
	}
	if err := p.Validate(); err != nil {
		return "", "", nil, nil, err
	}
	return p.Input, p.Output, []encodedStep{{Step: p.Steps[0], raw: []byte(opts.Params)}}, c, nil
}

func applyStep(cmd *cobra.Command, e *colkit.Engine, cols []column.Column, s encodedStep) ([]column.Column, error) {
	in := findColumn(cols, s.Column)
	if in == nil {
		return nil, fmt.Errorf("input has no column %q", s.Column)
	}

	out, err := e.CallEncoded(cmd.Context(), s.Kernel, in, s.raw)
	if err != nil {
		return nil, err
	}

	if s.Alias == "" {
		next := make([]column.Column, len(cols))
		for i, c := range cols {
			if c.Name() == s.Column {
				c = out
			}
			next[i] = c
		}
		return next, nil
	}

	if findColumn(cols, s.Alias) != nil {
		return nil, fmt.Errorf("alias %q collides with an existing column", s.Alias)
	}
	return append(append([]column.Column(nil), cols...), column.Rename(out, s.Alias)), nil
}

func findColumn(cols []column.Column, name string) column.Column {
	for _, c := range cols {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
