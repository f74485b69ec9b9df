// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package yaml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rivaas.dev/serde"
)

type config struct {
	Host  string         `serde:"host"`
	Port  uint16         `serde:"port"`
	Debug bool           `serde:"debug"`
	Tags  []string       `serde:"tags,omitempty"`
	Note  *string        `serde:"note,omitempty"`
	Meta  map[string]int `serde:"meta,omitempty"`
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", "hello\n"},
		{"int", -5, "-5\n"},
		{"bool", true, "true\n"},
		{"nil", nil, "null\n"},
		{"slice", []int{1, 2, 3}, "- 1\n- 2\n- 3\n"},
		{
			"struct",
			config{Host: "example.com", Port: 8080},
			"host: example.com\nport: 8080\ndebug: false\n",
		},
		{
			"nested",
			config{Host: "h", Tags: []string{"edge", "tls"}, Meta: map[string]int{"a": 1}},
			"host: h\nport: 0\ndebug: false\ntags:\n    - edge\n    - tls\nmeta:\n    a: 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalNode(t *testing.T) {
	t.Parallel()

	n, err := MarshalNode(config{Host: "h"})
	require.NoError(t, err)

	require.Equal(t, yaml.MappingNode, n.Kind)
	require.GreaterOrEqual(t, len(n.Content), 2)
	assert.Equal(t, "host", n.Content[0].Value)
	assert.Equal(t, "h", n.Content[1].Value)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	note := "keep"
	in := config{
		Host:  "example.com",
		Port:  443,
		Debug: true,
		Tags:  []string{"edge"},
		Note:  &note,
		Meta:  map[string]int{"a": 1, "b": 2},
	}

	body, err := Marshal(in)
	require.NoError(t, err)

	got, err := YAML[config](body)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	in := []byte{0x00, 0xff, 0x10}

	body, err := Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(body), "!!binary")

	got, err := YAML[[]byte](body)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestFloatForms(t *testing.T) {
	t.Parallel()

	body, err := Marshal(math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, ".inf\n", string(body))

	f, err := YAML[float64](body)
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, 1))

	body, err = Marshal(math.NaN())
	require.NoError(t, err)
	assert.Equal(t, ".nan\n", string(body))

	f, err = YAML[float64](body)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f))
}

// Alias nodes resolve to their anchors before decoding.
func TestUnmarshalAliases(t *testing.T) {
	t.Parallel()

	var got map[string]int
	require.NoError(t, Unmarshal([]byte("a: &x 1\nb: *x\n"), &got))
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, got)
}

func TestUnmarshalNull(t *testing.T) {
	t.Parallel()

	note := "stale"
	cfg := config{Note: &note}
	require.NoError(t, Unmarshal([]byte("host: h\nnote: null\n"), &cfg))
	assert.Equal(t, "h", cfg.Host)
	assert.Nil(t, cfg.Note)
}

func TestUnknownFieldPolicy(t *testing.T) {
	t.Parallel()

	body := []byte("host: h\nbogus: 1\n")

	cfg, err := YAML[config](body)
	require.NoError(t, err)
	assert.Equal(t, "h", cfg.Host)

	_, err = YAML[config](body, serde.WithUnknownFieldPolicy(serde.UnknownError))
	var serr *serde.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, serde.KindUnknownField, serr.Kind())
}

func TestDecodeTypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := YAML[int]([]byte("not a number\n"))

	var serr *serde.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, serde.KindInvalidValue, serr.Kind())
}

func TestDecodeGenericAny(t *testing.T) {
	t.Parallel()

	got, err := YAML[map[string]any]([]byte("n: 1\nok: true\ns: hi\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": int64(1), "ok": true, "s": "hi"}, got)
}

type shape struct {
	Kind string
	R    float64
	Pts  []int64
	W, H int64
}

type shapeVisitor struct {
	serde.TypedVisitorBase[shape]
}

func (shapeVisitor) Expecting() string { return "a shape" }

func (shapeVisitor) Enum(a serde.EnumAccess) (shape, error) {
	var name string
	va, err := a.Variant(serde.Visit[string](serde.StringVisitor{}, &name))
	if err != nil {
		return shape{}, err
	}

	switch name {
	case "point":
		return shape{Kind: name}, va.UnitVariant()
	case "circle":
		var r float64
		if err := va.NewtypeVariant(serde.Visit[float64](serde.FloatVisitor[float64]{}, &r)); err != nil {
			return shape{}, err
		}
		return shape{Kind: name, R: r}, nil
	case "segment":
		var pts []int64
		if err := va.TupleVariant(2, serde.Assign(&pts)); err != nil {
			return shape{}, err
		}
		return shape{Kind: name, Pts: pts}, nil
	case "rect":
		var dims map[string]int64
		if err := va.StructVariant([]string{"w", "h"}, serde.Assign(&dims)); err != nil {
			return shape{}, err
		}
		return shape{Kind: name, W: dims["w"], H: dims["h"]}, nil
	default:
		return shape{}, serde.Errorf(serde.KindUnknownVariant, "unknown variant %q", name)
	}
}

func TestEnumRoundTrip(t *testing.T) {
	t.Parallel()

	encode := []func(s serde.Serializer) error{
		func(s serde.Serializer) error {
			return s.UnitVariant("Shape", 0, "point")
		},
		func(s serde.Serializer) error {
			return s.NewtypeVariant("Shape", 1, "circle", serde.Float64(2.5))
		},
		func(s serde.Serializer) error {
			v, err := s.TupleVariant("Shape", 2, "segment", 2)
			if err != nil {
				return err
			}
			if err := v.Element(serde.Int64(1)); err != nil {
				return err
			}
			if err := v.Element(serde.Int64(2)); err != nil {
				return err
			}
			return v.End()
		},
		func(s serde.Serializer) error {
			v, err := s.StructVariant("Shape", 3, "rect", 2)
			if err != nil {
				return err
			}
			if err := v.Field("w", serde.Int64(3)); err != nil {
				return err
			}
			if err := v.Field("h", serde.Int64(4)); err != nil {
				return err
			}
			return v.End()
		},
	}
	want := []shape{
		{Kind: "point"},
		{Kind: "circle", R: 2.5},
		{Kind: "segment", Pts: []int64{1, 2}},
		{Kind: "rect", W: 3, H: 4},
	}

	for i, enc := range encode {
		e := NewEncoder()
		require.NoError(t, enc(serde.NewSerializer[*yaml.Node](e)))

		got, err := NewDecoder[shape](e.Result()).DecodeEnum("Shape", nil, shapeVisitor{})
		require.NoError(t, err)
		assert.Equal(t, want[i], got)
	}
}
