package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel/featurehash"
)

// HashOptions holds flags for the hash command.
type HashOptions struct {
	NumBuckets int64
	NullToken  string
}

// HashResult is one hashed value.
type HashResult struct {
	Value  *string `json:"value"`
	Bucket uint64  `json:"bucket"`
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HashOptions{}

	cmd := &cobra.Command{
		Use:   "hash [values...]",
		Short: "Map strings to feature hash buckets",
		Long: `Map strings to bucket ids with the feature_hasher kernel.

Values are taken from the arguments, or read line by line from stdin when
no arguments are given. Values equal to --null are treated as null and map
to bucket 0.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().Int64VarP(&opts.NumBuckets, "num-buckets", "n", 1<<20, "number of buckets (>= 2)")
	cmd.Flags().StringVar(&opts.NullToken, "null", "", "token treated as null (empty disables)")

	return cmd
}

func runHash(rootOpts *RootOptions, opts *HashOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	values := args
	if len(values) == 0 {
		var err error
		values, err = readLines(cmd.InOrStdin())
		if err != nil {
			return formatter.Fail("read stdin", err)
		}
	}
	formatter.VerboseLog("Hashing %d value(s) into %d buckets", len(values), opts.NumBuckets)

	optional := make([]*string, len(values))
	for i := range values {
		if opts.NullToken != "" && values[i] == opts.NullToken {
			continue
		}
		optional[i] = &values[i]
	}

	e, err := newEngine(rootOpts, cmd, nil)
	if err != nil {
		return formatter.Fail("create engine", err)
	}

	in := column.StringsFromOptional("value", optional)
	out, err := e.Call(cmd.Context(), featurehash.Name, in, featurehash.Params{NumBuckets: opts.NumBuckets})
	if err != nil {
		return formatter.Fail("hash", err)
	}

	buckets := out.(*column.Uint64).Values()
	results := make([]HashResult, len(buckets))
	for i, b := range buckets {
		results[i] = HashResult{Value: optional[i], Bucket: b}
	}

	return formatter.Success(results, func(w io.Writer) error {
		for _, r := range results {
			v := "<null>"
			if r.Value != nil {
				v = *r.Value
			}
			if _, err := fmt.Fprintf(w, "%s\t%d\n", v, r.Bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
