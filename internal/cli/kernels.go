package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// KernelInfo describes a registered kernel.
type KernelInfo struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Params      []string `json:"params"`
	Output      string   `json:"output"`
}

// NewKernelsCommand creates the kernels command.
func NewKernelsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "kernels",
		Short:         "List registered kernels",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKernels(rootOpts, cmd)
		},
	}
}

func runKernels(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	e, err := newEngine(opts, cmd, nil)
	if err != nil {
		return formatter.Fail("create engine", err)
	}

	var infos []KernelInfo
	for _, doc := range e.Kernels() {
		infos = append(infos, KernelInfo{
			Name:        doc.Name,
			Kind:        doc.Kind.String(),
			Summary:     doc.Summary,
			Description: doc.Description,
			Params:      doc.Params,
			Output:      doc.Output.String(),
		})
	}

	return formatter.Success(infos, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND\tOUTPUT\tSUMMARY")
		for _, info := range infos {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.Kind, info.Output, info.Summary)
		}
		if opts.Verbose {
			for _, info := range infos {
				fmt.Fprintf(tw, "\n%s\n%s\nparams: %v\n", info.Name, info.Description, info.Params)
			}
		}
		return tw.Flush()
	})
}
