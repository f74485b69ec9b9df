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

package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
		v    any
		want string
	}{
		{"bool", true, `true`},
		{"int", -42, `-42`},
		{"uint", uint8(255), `255`},
		{"float", 1.5, `1.5`},
		{"string", "hello", `"hello"`},
		{"escaped string", "a\"b\n\x01", `"a\"b\n"`},
		{"bytes", []byte{1, 2, 255}, `[1,2,255]`},
		{"nil", nil, `null`},
		{"slice", []int{1, 2}, `[1,2]`},
		{"array", [2]bool{true, false}, `[true,false]`},
		{"map sorted", map[string]int{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{"int keyed map", map[int]string{1: "a"}, `{"1":"a"}`},
		{
			"struct",
			config{Host: "localhost", Port: 8080, Debug: true},
			`{"host":"localhost","port":8080,"debug":true}`,
		},
		{
			"nested",
			config{Host: "h", Tags: []string{"x"}, Meta: map[string]int{"n": 1}},
			`{"host":"h","port":0,"debug":false,"tags":["x"],"meta":{"n":1}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Marshal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalPointer(t *testing.T) {
	t.Parallel()

	note := "hi"
	got, err := Marshal(config{Host: "h", Note: &note})
	require.NoError(t, err)
	assert.Equal(t, `{"host":"h","port":0,"debug":false,"note":"hi"}`, string(got))
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"host": "example.com",
		"port": 443,
		"debug": false,
		"tags": ["edge", "tls"],
		"note": "keep",
		"meta": {"retries": 3}
	}`)

	var got config
	require.NoError(t, Unmarshal(body, &got))

	note := "keep"
	assert.Equal(t, config{
		Host: "example.com",
		Port: 443,
		Tags: []string{"edge", "tls"},
		Note: &note,
		Meta: map[string]int{"retries": 3},
	}, got)
}

func TestUnmarshalNullPointer(t *testing.T) {
	t.Parallel()

	note := "old"
	got := config{Note: &note}
	require.NoError(t, Unmarshal([]byte(`{"note":null}`), &got))
	assert.Nil(t, got.Note)
}

func TestUnmarshalUnknownField(t *testing.T) {
	t.Parallel()

	body := []byte(`{"bogus": [1, {"deep": true}], "host": "h"}`)

	var got config
	require.NoError(t, Unmarshal(body, &got))
	assert.Equal(t, "h", got.Host)

	err := Unmarshal(body, &got, serde.WithUnknownFieldPolicy(serde.UnknownError))
	var serr *serde.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, serde.KindUnknownField, serr.Kind())
}

func TestUnmarshalDuplicateField(t *testing.T) {
	t.Parallel()

	var got config
	err := Unmarshal([]byte(`{"host":"a","host":"b"}`), &got)

	var serr *serde.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, serde.KindDuplicateField, serr.Kind())
}

func TestJSONGeneric(t *testing.T) {
	t.Parallel()

	b, err := JSON[bool]([]byte(`true`))
	require.NoError(t, err)
	assert.True(t, b)

	n, err := JSON[int32]([]byte(`42`))
	require.NoError(t, err)
	assert.Equal(t, int32(42), n)

	cfg, err := JSON[config]([]byte(`{"host":"h","port":1,"debug":true}`))
	require.NoError(t, err)
	assert.Equal(t, config{Host: "h", Port: 1, Debug: true}, cfg)

	v, err := JSON[any]([]byte(`{"k":[1,true,"s",null]}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": []any{int64(1), true, "s", nil}}, v)
}

// The direct generic path and the doubly-erased path must agree.
func TestDecoderMatchesErased(t *testing.T) {
	t.Parallel()

	body := []byte(`42`)

	direct, err := NewDecoder[int32](body).DecodeInt32(serde.IntVisitor[int32]{})
	require.NoError(t, err)

	erased, err := serde.Deserialize[int32](NewDeserializer(body), serde.IntVisitor[int32]{})
	require.NoError(t, err)

	assert.Equal(t, direct, erased)
	assert.Equal(t, int32(42), direct)
}

func TestDecodeTypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := JSON[int]([]byte(`"not a number"`))

	var serr *serde.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, serde.KindInvalidValue, serr.Kind())
}

func TestDecodeEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := JSON[int]([]byte(``))

	var serr *serde.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, serde.KindEOF, serr.Kind())
}

func TestDecodeNumberForms(t *testing.T) {
	t.Parallel()

	// Large unsigned values do not fit int64 and arrive as uint64.
	u, err := JSON[uint64]([]byte(`18446744073709551615`))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<64-1), u)

	f, err := JSON[float64]([]byte(`2.5e3`))
	require.NoError(t, err)
	assert.Equal(t, 2500.0, f)

	// Integers widen into float destinations.
	f2, err := JSON[float32]([]byte(`7`))
	require.NoError(t, err)
	assert.Equal(t, float32(7), f2)
}

func TestDecodeBytesFromArray(t *testing.T) {
	t.Parallel()

	b, err := JSON[[]byte]([]byte(`[104,105]`))
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), b)
}

func TestEncodeRune(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := NewEncoder(&buf).EncodeRune('g')
	require.NoError(t, err)
	assert.Equal(t, `"g"`, buf.String())
}

func TestEncodeUnknownLengthSeq(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := serde.NewSerializer[serde.Unit](NewEncoder(&buf))

	seq, err := s.Seq(-1)
	require.NoError(t, err)
	require.NoError(t, seq.Element(serde.Int64(1)))
	require.NoError(t, seq.Element(serde.Int64(2)))
	require.NoError(t, seq.End())

	assert.Equal(t, `[1,2]`, buf.String())
}

func TestEncodeMapKeyKinds(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := serde.NewSerializer[serde.Unit](NewEncoder(&buf))

	m, err := s.Map(2)
	require.NoError(t, err)
	require.NoError(t, m.Entry(serde.Int64(1), serde.String("a")))
	require.NoError(t, m.Entry(serde.String("k"), serde.Bool(true)))
	require.NoError(t, m.End())

	assert.Equal(t, `{"1":"a","k":true}`, buf.String())
}

func TestEncodeMapKeyRejectsCompound(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := serde.NewSerializer[serde.Unit](NewEncoder(&buf))

	m, err := s.Map(1)
	require.NoError(t, err)
	err = m.Key(serde.Bool(true))

	var serr *serde.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, serde.KindInvalidValue, serr.Kind())
}

func TestEncodeVariants(t *testing.T) {
	t.Parallel()

	t.Run("unit", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		s := serde.NewSerializer[serde.Unit](NewEncoder(&buf))
		require.NoError(t, s.UnitVariant("Shape", 0, "point"))
		assert.Equal(t, `"point"`, buf.String())
	})

	t.Run("newtype", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		s := serde.NewSerializer[serde.Unit](NewEncoder(&buf))
		require.NoError(t, s.NewtypeVariant("Shape", 1, "circle", serde.Float64(2.5)))
		assert.Equal(t, `{"circle":2.5}`, buf.String())
	})

	t.Run("tuple", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		s := serde.NewSerializer[serde.Unit](NewEncoder(&buf))
		v, err := s.TupleVariant("Shape", 2, "segment", 2)
		require.NoError(t, err)
		require.NoError(t, v.Element(serde.Int64(1)))
		require.NoError(t, v.Element(serde.Int64(2)))
		require.NoError(t, v.End())
		assert.Equal(t, `{"segment":[1,2]}`, buf.String())
	})

	t.Run("struct", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		s := serde.NewSerializer[serde.Unit](NewEncoder(&buf))
		v, err := s.StructVariant("Shape", 3, "rect", 2)
		require.NoError(t, err)
		require.NoError(t, v.Field("w", serde.Int64(3)))
		require.NoError(t, v.Field("h", serde.Int64(4)))
		require.NoError(t, v.End())
		assert.Equal(t, `{"rect":{"w":3,"h":4}}`, buf.String())
	})
}

// shape mirrors an enum with one variant of each shape.
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

func TestDecodeEnum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want shape
	}{
		{"unit", `"point"`, shape{Kind: "point"}},
		{"newtype", `{"circle":2.5}`, shape{Kind: "circle", R: 2.5}},
		{"tuple", `{"segment":[1,2]}`, shape{Kind: "segment", Pts: []int64{1, 2}}},
		{"struct", `{"rect":{"w":3,"h":4}}`, shape{Kind: "rect", W: 3, H: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewDecoder[shape]([]byte(tt.body)).DecodeEnum("Shape", nil, shapeVisitor{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		_, err := NewDecoder[shape]([]byte(`"blob"`)).DecodeEnum("Shape", nil, shapeVisitor{})

		var serr *serde.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, serde.KindUnknownVariant, serr.Kind())
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	note := "keep"
	in := config{
		Host: "example.com",
		Port: 443,
		Tags: []string{"edge", "tls"},
		Note: &note,
		Meta: map[string]int{"a": 1, "b": 2},
	}

	body, err := Marshal(in)
	require.NoError(t, err)

	var out config
	require.NoError(t, Unmarshal(body, &out))
	assert.Equal(t, in, out)
}
