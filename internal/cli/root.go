// Package cli implements the colkit command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hupe1980/colkit"
	"github.com/hupe1980/colkit/codec"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	Parallelism int
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the colkit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "colkit",
		Short: "colkit - vectorized column kernels",
		Long:  "Run the discounted_cum_sum and feature_hasher column kernels over values and Parquet files.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().IntVar(&opts.Parallelism, "parallelism", 1, "goroutines per hashing call (<=0 uses all CPUs)")

	cmd.AddCommand(NewKernelsCommand(opts))
	cmd.AddCommand(NewHashCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))

	return cmd
}

// newEngine builds an Engine whose diagnostics go to the command's stderr.
func newEngine(opts *RootOptions, cmd *cobra.Command, c codec.Codec) (*colkit.Engine, error) {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := colkit.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return colkit.New(
		colkit.WithLogger(logger),
		colkit.WithCodec(c),
		colkit.WithParallelism(opts.Parallelism),
	)
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
