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

package serde

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSerializer logs every operation it receives, so tests can assert
// that adapter layers forward calls without reordering or loss.
type recordSerializer struct {
	ops []string
}

func (r *recordSerializer) op(format string, args ...any) error {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
	return nil
}

func (r *recordSerializer) Bool(v bool) error       { return r.op("bool:%v", v) }
func (r *recordSerializer) Int8(v int8) error       { return r.op("i8:%d", v) }
func (r *recordSerializer) Int16(v int16) error     { return r.op("i16:%d", v) }
func (r *recordSerializer) Int32(v int32) error     { return r.op("i32:%d", v) }
func (r *recordSerializer) Int64(v int64) error     { return r.op("i64:%d", v) }
func (r *recordSerializer) Uint8(v uint8) error     { return r.op("u8:%d", v) }
func (r *recordSerializer) Uint16(v uint16) error   { return r.op("u16:%d", v) }
func (r *recordSerializer) Uint32(v uint32) error   { return r.op("u32:%d", v) }
func (r *recordSerializer) Uint64(v uint64) error   { return r.op("u64:%d", v) }
func (r *recordSerializer) Float32(v float32) error { return r.op("f32:%g", v) }
func (r *recordSerializer) Float64(v float64) error { return r.op("f64:%g", v) }
func (r *recordSerializer) Rune(v rune) error       { return r.op("rune:%c", v) }
func (r *recordSerializer) String(v string) error   { return r.op("str:%s", v) }
func (r *recordSerializer) Bytes(v []byte) error    { return r.op("bytes:%x", v) }
func (r *recordSerializer) None() error             { return r.op("none") }
func (r *recordSerializer) Unit() error             { return r.op("unit") }

func (r *recordSerializer) Some(v Value) error {
	if err := r.op("some"); err != nil {
		return err
	}
	return v.SerializeInto(r)
}

func (r *recordSerializer) UnitStruct(name string) error {
	return r.op("unitstruct:%s", name)
}

func (r *recordSerializer) UnitVariant(name string, index uint32, variant string) error {
	return r.op("unitvariant:%s:%d:%s", name, index, variant)
}

func (r *recordSerializer) NewtypeStruct(name string, v Value) error {
	if err := r.op("newtype:%s", name); err != nil {
		return err
	}
	return v.SerializeInto(r)
}

func (r *recordSerializer) NewtypeVariant(name string, index uint32, variant string, v Value) error {
	if err := r.op("newtypevariant:%s:%d:%s", name, index, variant); err != nil {
		return err
	}
	return v.SerializeInto(r)
}

func (r *recordSerializer) Seq(hint int) (SeqSerializer, error) {
	return &recordCompound{r: r}, r.op("seq:%d", hint)
}

func (r *recordSerializer) Tuple(n int) (SeqSerializer, error) {
	return &recordCompound{r: r}, r.op("tuple:%d", n)
}

func (r *recordSerializer) TupleStruct(name string, n int) (SeqSerializer, error) {
	return &recordCompound{r: r}, r.op("tuplestruct:%s:%d", name, n)
}

func (r *recordSerializer) TupleVariant(name string, index uint32, variant string, n int) (VariantSerializer, error) {
	return &recordCompound{r: r}, r.op("tuplevariant:%s:%d:%s:%d", name, index, variant, n)
}

func (r *recordSerializer) Map(hint int) (MapSerializer, error) {
	return &recordCompound{r: r}, r.op("map:%d", hint)
}

func (r *recordSerializer) Struct(name string, n int) (StructSerializer, error) {
	return &recordCompound{r: r}, r.op("struct:%s:%d", name, n)
}

func (r *recordSerializer) StructVariant(name string, index uint32, variant string, n int) (VariantSerializer, error) {
	return &recordCompound{r: r}, r.op("structvariant:%s:%d:%s:%d", name, index, variant, n)
}

// recordCompound serves every compound role for recordSerializer.
type recordCompound struct {
	r *recordSerializer
}

func (c *recordCompound) Element(v Value) error {
	if err := c.r.op("elem"); err != nil {
		return err
	}
	return v.SerializeInto(c.r)
}

func (c *recordCompound) Key(k Value) error {
	if err := c.r.op("mapkey"); err != nil {
		return err
	}
	return k.SerializeInto(c.r)
}

func (c *recordCompound) Value(v Value) error {
	if err := c.r.op("mapvalue"); err != nil {
		return err
	}
	return v.SerializeInto(c.r)
}

func (c *recordCompound) Entry(k, v Value) error {
	if err := c.Key(k); err != nil {
		return err
	}
	return c.Value(v)
}

func (c *recordCompound) Field(name string, v Value) error {
	if err := c.r.op("field:%s", name); err != nil {
		return err
	}
	return v.SerializeInto(c.r)
}

func (c *recordCompound) End() error { return c.r.op("end") }

// driveSerializer exercises every Serializer operation once.
func driveSerializer(t *testing.T, s Serializer) {
	t.Helper()

	require.NoError(t, s.Bool(true))
	require.NoError(t, s.Int8(-8))
	require.NoError(t, s.Int16(-16))
	require.NoError(t, s.Int32(-32))
	require.NoError(t, s.Int64(-64))
	require.NoError(t, s.Uint8(8))
	require.NoError(t, s.Uint16(16))
	require.NoError(t, s.Uint32(32))
	require.NoError(t, s.Uint64(64))
	require.NoError(t, s.Float32(1.5))
	require.NoError(t, s.Float64(2.5))
	require.NoError(t, s.Rune('g'))
	require.NoError(t, s.String("hello"))
	require.NoError(t, s.Bytes([]byte{0xde, 0xad}))
	require.NoError(t, s.None())
	require.NoError(t, s.Some(String("present")))
	require.NoError(t, s.Unit())
	require.NoError(t, s.UnitStruct("Marker"))
	require.NoError(t, s.UnitVariant("Shape", 0, "point"))
	require.NoError(t, s.NewtypeStruct("Meters", Float64(1.8)))
	require.NoError(t, s.NewtypeVariant("Shape", 1, "circle", Float64(2.0)))

	seq, err := s.Seq(2)
	require.NoError(t, err)
	require.NoError(t, seq.Element(Int64(1)))
	require.NoError(t, seq.Element(Int64(2)))
	require.NoError(t, seq.End())

	tup, err := s.Tuple(2)
	require.NoError(t, err)
	require.NoError(t, tup.Element(Bool(false)))
	require.NoError(t, tup.Element(String("pair")))
	require.NoError(t, tup.End())

	ts, err := s.TupleStruct("Point", 2)
	require.NoError(t, err)
	require.NoError(t, ts.Element(Int64(3)))
	require.NoError(t, ts.Element(Int64(4)))
	require.NoError(t, ts.End())

	tv, err := s.TupleVariant("Shape", 2, "segment", 2)
	require.NoError(t, err)
	require.NoError(t, tv.Element(Int64(5)))
	require.NoError(t, tv.Element(Int64(6)))
	require.NoError(t, tv.End())

	m, err := s.Map(1)
	require.NoError(t, err)
	require.NoError(t, m.Key(String("k")))
	require.NoError(t, m.Value(Int64(7)))
	require.NoError(t, m.End())

	st, err := s.Struct("User", 2)
	require.NoError(t, err)
	require.NoError(t, st.Field("name", String("gopher")))
	require.NoError(t, st.Field("age", Int64(14)))
	require.NoError(t, st.End())

	sv, err := s.StructVariant("Shape", 3, "rect", 2)
	require.NoError(t, err)
	require.NoError(t, sv.Field("w", Int64(8)))
	require.NoError(t, sv.Field("h", Int64(9)))
	require.NoError(t, sv.End())
}

// The serializer adapters must be transparent: interposing
// NewSerializer(AsEncoder(s)) between driver and backend preserves the
// exact operation stream.
func TestSerializerAdapterTransparency(t *testing.T) {
	t.Parallel()

	direct := &recordSerializer{}
	driveSerializer(t, direct)

	adapted := &recordSerializer{}
	driveSerializer(t, NewSerializer[Unit](AsEncoder(adapted)))

	assert.Equal(t, direct.ops, adapted.ops)
}

// Stacking the adapter pair repeatedly must stay transparent; each layer
// erases and re-generalizes without touching the calls.
func TestSerializerAdapterStacking(t *testing.T) {
	t.Parallel()

	direct := &recordSerializer{}
	driveSerializer(t, direct)

	rec := &recordSerializer{}
	var s Serializer = rec
	for range 3 {
		s = NewSerializer[Unit](AsEncoder(s))
	}
	driveSerializer(t, s)

	assert.Equal(t, direct.ops, rec.ops)
}

func TestValueConstructors(t *testing.T) {
	t.Parallel()

	rec := &recordSerializer{}
	require.NoError(t, Bool(true).SerializeInto(rec))
	require.NoError(t, Int64(-1).SerializeInto(rec))
	require.NoError(t, Uint64(1).SerializeInto(rec))
	require.NoError(t, Float64(0.5).SerializeInto(rec))
	require.NoError(t, String("v").SerializeInto(rec))
	require.NoError(t, Bytes([]byte{1}).SerializeInto(rec))
	require.NoError(t, Null.SerializeInto(rec))

	assert.Equal(t, []string{
		"bool:true", "i64:-1", "u64:1", "f64:0.5", "str:v", "bytes:01", "unit",
	}, rec.ops)
}

// A failing backend call must surface through the adapters unchanged.
func TestSerializerAdapterErrorPassthrough(t *testing.T) {
	t.Parallel()

	s := NewSerializer[Unit](AsEncoder(&failSerializer{}))
	err := s.Bool(true)

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindCustom, serr.Kind())
}

type failSerializer struct {
	recordSerializer
}

func (*failSerializer) Bool(bool) error {
	return NewError(KindCustom, "rejected by backend")
}
