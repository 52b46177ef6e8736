// Package codec centralizes decoding of kernel parameter records.
//
// Hosts hand colkit parameters in their own configuration representation.
// A Codec turns those bytes into the kernel's parameter struct; colkit ships
// JSON (standard library and goccy/go-json) and YAML codecs.
package codec

import (
	"fmt"
	"slices"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

var builtin = func() map[string]Codec {
	m := make(map[string]Codec)
	for _, c := range []Codec{JSON{}, GoJSON{}, YAML{}} {
		m[c.Name()] = c
	}
	return m
}()

// ByName looks up a parameter format such as "json" or "yaml".
func ByName(name string) (Codec, bool) {
	c, ok := builtin[name]
	return c, ok
}

// Names lists the parameter formats accepted by ByName, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FormatList renders Names for flag help and error messages, e.g.
// "go-json|json|yaml".
func FormatList() string { return strings.Join(Names(), "|") }

// EncodeParams renders a kernel parameter record in format c, or in Default
// when c is nil. The result is what CallEncoded and the CLI's --params flag
// accept. A record that cannot be encoded is a programming error, so
// EncodeParams panics instead of returning it.
func EncodeParams(c Codec, params any) []byte {
	if c == nil {
		c = Default
	}
	raw, err := c.Marshal(params)
	if err != nil {
		panic(fmt.Sprintf("codec: encode %T as %s: %v", params, c.Name(), err))
	}
	return raw
}
