package discount

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
		{name: "json", codec: codec.JSON{}, data: `{"gamma": 0.5}`, want: Params{Gamma: 0.5}},
		{name: "go-json", codec: codec.GoJSON{}, data: `{"gamma": 1}`, want: Params{Gamma: 1}},
		{name: "yaml", codec: codec.YAML{}, data: "gamma: 0.25\n", want: Params{Gamma: 0.25}},
		{name: "default codec", codec: nil, data: `{"gamma": 0}`, want: Params{Gamma: 0}},
		{name: "unknown fields ignored", codec: codec.GoJSON{}, data: `{"gamma": 0.1, "extra": true}`, want: Params{Gamma: 0.1}},
		{name: "missing gamma", codec: codec.GoJSON{}, data: `{}`, wantErr: true},
		{name: "out of range", codec: codec.GoJSON{}, data: `{"gamma": 1.5}`, wantErr: true},
		{name: "wrong type", codec: codec.GoJSON{}, data: `{"gamma": "high"}`, wantErr: true},
		{name: "malformed", codec: codec.JSON{}, data: `{"gamma":`, wantErr: true},
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

func TestDecodeParamsMissingMessage(t *testing.T) {
	_, err := DecodeParams(codec.GoJSON{}, []byte(`{"gama": 0.5}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required parameter")
	assert.Contains(t, err.Error(), Name)
}
