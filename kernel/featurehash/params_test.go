package featurehash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colkit/codec"
	"github.com/hupe1980/colkit/kernel"
)

func TestDecodeParams(t *testing.T) {
	tests := []struct {
		name    string
		codec   codec.Codec
		data    string
		want    Params
		wantErr bool
	}{
		{name: "json", codec: codec.JSON{}, data: `{"num_buckets": 10}`, want: Params{NumBuckets: 10}},
		{name: "go-json", codec: codec.GoJSON{}, data: `{"num_buckets": 1048576}`, want: Params{NumBuckets: 1 << 20}},
		{name: "yaml", codec: codec.YAML{}, data: "num_buckets: 2\n", want: Params{NumBuckets: 2}},
		{name: "default codec", codec: nil, data: `{"num_buckets": 3}`, want: Params{NumBuckets: 3}},
		{name: "missing", codec: codec.GoJSON{}, data: `{"gamma": 0.5}`, wantErr: true},
		{name: "one bucket", codec: codec.GoJSON{}, data: `{"num_buckets": 1}`, wantErr: true},
		{name: "negative", codec: codec.YAML{}, data: "num_buckets: -4\n", wantErr: true},
		{name: "fractional", codec: codec.JSON{}, data: `{"num_buckets": 2.5}`, wantErr: true},
		{name: "malformed", codec: codec.GoJSON{}, data: `num_buckets`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeParams(tt.codec, []byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, kernel.ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
