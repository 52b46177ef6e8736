package cli

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/parquetcol"
)

func f64(v float64) *float64 { return &v }
func str(s string) *string    { return &s }

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.parquet")
	require.NoError(t, parquetcol.WriteFile(path,
		column.FromOptional("reward", []*float64{f64(1), nil, f64(2)}),
		column.StringsFromOptional("tok", []*string{str("a"), nil, str("a")}),
	))
	return path
}

func readOutput(t *testing.T, path, name string) column.Column {
	t.Helper()
	f, err := parquetcol.Open(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	c, err := f.ReadColumn(name)
	require.NoError(t, err)
	return c
}

func TestApplyFlags(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "out.parquet")

	stdout, _, err := run(t, "apply",
		"--input", in, "--output", out,
		"--kernel", "discounted_cum_sum", "--column", "reward",
		"--params", `{"gamma": 0.5}`,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "discounted_cum_sum(reward) -> reward")
	assert.Contains(t, stdout, "wrote 3 rows")

	got := readOutput(t, out, "reward").(*column.Float64)
	assert.Equal(t, []*float64{f64(1), nil, f64(2.5)}, got.Optional())

	tok := readOutput(t, out, "tok")
	assert.Equal(t, 1, tok.NullCount())
}

func TestApplyAliasYAMLParams(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "out.parquet")

	_, _, err := run(t, "apply",
		"-i", in, "-o", out,
		"-k", "feature_hasher", "--column", "tok", "--alias", "tok_bucket",
		"--params-format", "yaml", "-p", "num_buckets: 10",
	)
	require.NoError(t, err)

	got := readOutput(t, out, "tok_bucket").(*column.Uint64)
	assert.Equal(t, []uint64{3, 0, 3}, got.Values())
	assert.Equal(t, 0, got.NullCount())

	assert.Equal(t, column.TypeString, readOutput(t, out, "tok").DataType())
}

func TestApplyConfig(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t)
	out := filepath.Join(dir, "out.parquet")
	config := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
input: `+in+`
output: `+out+`
steps:
  - kernel: discounted_cum_sum
    column: reward
    alias: reward_return
    params:
      gamma: 1
  - kernel: feature_hasher
    column: tok
    params:
      num_buckets: 1000
`), 0o600))

	stdout, _, err := run(t, "apply", "--config", config, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ApplyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Data.Rows)
	require.Len(t, resp.Data.Steps, 2)
	assert.Equal(t, "reward_return", resp.Data.Steps[0].Output)
	assert.Equal(t, 1, resp.Data.Steps[0].Nulls)
	assert.Equal(t, 0, resp.Data.Steps[1].Nulls)

	ret := readOutput(t, out, "reward_return").(*column.Float64)
	assert.Equal(t, []*float64{f64(1), nil, f64(3)}, ret.Optional())

	tok := readOutput(t, out, "tok").(*column.Uint64)
	assert.Equal(t, []uint64{930, 0, 930}, tok.Values())
}

func TestApplyErrors(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "out.parquet")

	tests := []struct {
		name string
		args []string
		exit int
		msg  string
	}{
		{
			name: "missing flags",
			args: []string{"apply", "--input", in},
			exit: ExitCommandError,
			msg:  "missing output",
		},
		{
			name: "unknown kernel",
			args: []string{"apply", "-i", in, "-o", out, "-k", "nope", "--column", "reward"},
			exit: ExitCommandError,
			msg:  ErrCodeKernelNotFound,
		},
		{
			name: "type mismatch",
			args: []string{"apply", "-i", in, "-o", out, "-k", "discounted_cum_sum", "--column", "tok", "-p", `{"gamma": 0.5}`},
			exit: ExitFailure,
			msg:  ErrCodeTypeMismatch,
		},
		{
			name: "invalid gamma",
			args: []string{"apply", "-i", in, "-o", out, "-k", "discounted_cum_sum", "--column", "reward", "-p", `{"gamma": 1.5}`},
			exit: ExitFailure,
			msg:  "gamma must be in [0, 1]",
		},
		{
			name: "missing column",
			args: []string{"apply", "-i", in, "-o", out, "-k", "discounted_cum_sum", "--column", "nope", "-p", `{"gamma": 0.5}`},
			exit: ExitCommandError,
			msg:  `no column "nope"`,
		},
		{
			name: "unknown params format",
			args: []string{"apply", "-i", in, "-o", out, "-k", "feature_hasher", "--column", "tok", "--params-format", "toml"},
			exit: ExitCommandError,
			msg:  "unknown params format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.exit, GetExitCode(err))
			assert.Contains(t, stderr, tt.msg)

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}
