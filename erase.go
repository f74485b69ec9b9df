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

// wrapErr is wrapErr(nil) == nil wrapping; returning WrapError(nil)
// directly would produce a non-nil error interface holding a nil pointer.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return WrapError(err)
}

// NewSerializer wraps a format-native encoder as an erased [Serializer].
// The wrapper borrows enc for the duration of one encode traversal,
// forwards every operation to the matching generic method, discards the
// backend's output value, and converts failures with [WrapError].
func NewSerializer[O any](enc Encoder[O]) Serializer {
	return &erasedSerializer[O]{enc: enc}
}

type erasedSerializer[O any] struct {
	enc Encoder[O]
}

func (s *erasedSerializer[O]) Bool(v bool) error {
	_, err := s.enc.EncodeBool(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Int8(v int8) error {
	_, err := s.enc.EncodeInt8(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Int16(v int16) error {
	_, err := s.enc.EncodeInt16(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Int32(v int32) error {
	_, err := s.enc.EncodeInt32(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Int64(v int64) error {
	_, err := s.enc.EncodeInt64(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Uint8(v uint8) error {
	_, err := s.enc.EncodeUint8(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Uint16(v uint16) error {
	_, err := s.enc.EncodeUint16(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Uint32(v uint32) error {
	_, err := s.enc.EncodeUint32(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Uint64(v uint64) error {
	_, err := s.enc.EncodeUint64(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Float32(v float32) error {
	_, err := s.enc.EncodeFloat32(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Float64(v float64) error {
	_, err := s.enc.EncodeFloat64(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Rune(v rune) error {
	_, err := s.enc.EncodeRune(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) String(v string) error {
	_, err := s.enc.EncodeString(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Bytes(v []byte) error {
	_, err := s.enc.EncodeBytes(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) None() error {
	_, err := s.enc.EncodeNone()
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Some(v Value) error {
	_, err := s.enc.EncodeSome(v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Unit() error {
	_, err := s.enc.EncodeUnit()
	return wrapErr(err)
}

func (s *erasedSerializer[O]) UnitStruct(name string) error {
	_, err := s.enc.EncodeUnitStruct(name)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) UnitVariant(name string, index uint32, variant string) error {
	_, err := s.enc.EncodeUnitVariant(name, index, variant)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) NewtypeStruct(name string, v Value) error {
	_, err := s.enc.EncodeNewtypeStruct(name, v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) NewtypeVariant(name string, index uint32, variant string, v Value) error {
	_, err := s.enc.EncodeNewtypeVariant(name, index, variant, v)
	return wrapErr(err)
}

func (s *erasedSerializer[O]) Seq(hint int) (SeqSerializer, error) {
	c, err := s.enc.EncodeSeq(hint)
	if err != nil {
		return nil, WrapError(err)
	}
	return &erasedSeq[O]{c: c}, nil
}

func (s *erasedSerializer[O]) Tuple(n int) (SeqSerializer, error) {
	c, err := s.enc.EncodeTuple(n)
	if err != nil {
		return nil, WrapError(err)
	}
	return &erasedSeq[O]{c: c}, nil
}

func (s *erasedSerializer[O]) TupleStruct(name string, n int) (SeqSerializer, error) {
	c, err := s.enc.EncodeTupleStruct(name, n)
	if err != nil {
		return nil, WrapError(err)
	}
	return &erasedSeq[O]{c: c}, nil
}

func (s *erasedSerializer[O]) TupleVariant(name string, index uint32, variant string, n int) (VariantSerializer, error) {
	c, err := s.enc.EncodeTupleVariant(name, index, variant, n)
	if err != nil {
		return nil, WrapError(err)
	}
	return &erasedVariant[O]{c: c}, nil
}

func (s *erasedSerializer[O]) Map(hint int) (MapSerializer, error) {
	c, err := s.enc.EncodeMap(hint)
	if err != nil {
		return nil, WrapError(err)
	}
	return &erasedMap[O]{c: c}, nil
}

func (s *erasedSerializer[O]) Struct(name string, n int) (StructSerializer, error) {
	c, err := s.enc.EncodeStruct(name, n)
	if err != nil {
		return nil, WrapError(err)
	}
	return &erasedStruct[O]{c: c}, nil
}

func (s *erasedSerializer[O]) StructVariant(name string, index uint32, variant string, n int) (VariantSerializer, error) {
	c, err := s.enc.EncodeStructVariant(name, index, variant, n)
	if err != nil {
		return nil, WrapError(err)
	}
	return &erasedVariant[O]{c: c}, nil
}

type erasedSeq[O any] struct {
	c SeqEncoder[O]
}

func (s *erasedSeq[O]) Element(v Value) error {
	return wrapErr(s.c.EncodeElement(v))
}

func (s *erasedSeq[O]) End() error {
	_, err := s.c.Finish()
	return wrapErr(err)
}

type erasedMap[O any] struct {
	c MapEncoder[O]
}

func (m *erasedMap[O]) Key(k Value) error {
	return wrapErr(m.c.EncodeKey(k))
}

func (m *erasedMap[O]) Value(v Value) error {
	return wrapErr(m.c.EncodeValue(v))
}

func (m *erasedMap[O]) Entry(k, v Value) error {
	if err := m.c.EncodeKey(k); err != nil {
		return WrapError(err)
	}
	return wrapErr(m.c.EncodeValue(v))
}

func (m *erasedMap[O]) End() error {
	_, err := m.c.Finish()
	return wrapErr(err)
}

type erasedStruct[O any] struct {
	c StructEncoder[O]
}

func (s *erasedStruct[O]) Field(name string, v Value) error {
	return wrapErr(s.c.EncodeField(name, v))
}

func (s *erasedStruct[O]) End() error {
	_, err := s.c.Finish()
	return wrapErr(err)
}

type erasedVariant[O any] struct {
	c VariantEncoder[O]
}

func (s *erasedVariant[O]) Element(v Value) error {
	return wrapErr(s.c.EncodeElement(v))
}

func (s *erasedVariant[O]) Field(name string, v Value) error {
	return wrapErr(s.c.EncodeField(name, v))
}

func (s *erasedVariant[O]) End() error {
	_, err := s.c.Finish()
	return wrapErr(err)
}

// AsEncoder adapts an erased [Serializer] back into the format-native
// [Encoder] interface, with the output type fixed to [Unit]. Together
// with [NewSerializer] it forms the symmetric adapter pair: an erased
// serializer anywhere in a call tree interoperates with code written
// against the generic interface, and vice versa.
func AsEncoder(s Serializer) Encoder[Unit] {
	return unitEncoder{s: s}
}

type unitEncoder struct {
	s Serializer
}

func (e unitEncoder) EncodeBool(v bool) (Unit, error)       { return Unit{}, e.s.Bool(v) }
func (e unitEncoder) EncodeInt8(v int8) (Unit, error)       { return Unit{}, e.s.Int8(v) }
func (e unitEncoder) EncodeInt16(v int16) (Unit, error)     { return Unit{}, e.s.Int16(v) }
func (e unitEncoder) EncodeInt32(v int32) (Unit, error)     { return Unit{}, e.s.Int32(v) }
func (e unitEncoder) EncodeInt64(v int64) (Unit, error)     { return Unit{}, e.s.Int64(v) }
func (e unitEncoder) EncodeUint8(v uint8) (Unit, error)     { return Unit{}, e.s.Uint8(v) }
func (e unitEncoder) EncodeUint16(v uint16) (Unit, error)   { return Unit{}, e.s.Uint16(v) }
func (e unitEncoder) EncodeUint32(v uint32) (Unit, error)   { return Unit{}, e.s.Uint32(v) }
func (e unitEncoder) EncodeUint64(v uint64) (Unit, error)   { return Unit{}, e.s.Uint64(v) }
func (e unitEncoder) EncodeFloat32(v float32) (Unit, error) { return Unit{}, e.s.Float32(v) }
func (e unitEncoder) EncodeFloat64(v float64) (Unit, error) { return Unit{}, e.s.Float64(v) }
func (e unitEncoder) EncodeRune(v rune) (Unit, error)       { return Unit{}, e.s.Rune(v) }
func (e unitEncoder) EncodeString(v string) (Unit, error)   { return Unit{}, e.s.String(v) }
func (e unitEncoder) EncodeBytes(v []byte) (Unit, error)    { return Unit{}, e.s.Bytes(v) }
func (e unitEncoder) EncodeNone() (Unit, error)             { return Unit{}, e.s.None() }
func (e unitEncoder) EncodeSome(v Value) (Unit, error)      { return Unit{}, e.s.Some(v) }
func (e unitEncoder) EncodeUnit() (Unit, error)             { return Unit{}, e.s.Unit() }

func (e unitEncoder) EncodeUnitStruct(name string) (Unit, error) {
	return Unit{}, e.s.UnitStruct(name)
}

func (e unitEncoder) EncodeUnitVariant(name string, index uint32, variant string) (Unit, error) {
	return Unit{}, e.s.UnitVariant(name, index, variant)
}

func (e unitEncoder) EncodeNewtypeStruct(name string, v Value) (Unit, error) {
	return Unit{}, e.s.NewtypeStruct(name, v)
}

func (e unitEncoder) EncodeNewtypeVariant(name string, index uint32, variant string, v Value) (Unit, error) {
	return Unit{}, e.s.NewtypeVariant(name, index, variant, v)
}

func (e unitEncoder) EncodeSeq(hint int) (SeqEncoder[Unit], error) {
	c, err := e.s.Seq(hint)
	if err != nil {
		return nil, err
	}
	return unitSeq{c: c}, nil
}

func (e unitEncoder) EncodeTuple(n int) (SeqEncoder[Unit], error) {
	c, err := e.s.Tuple(n)
	if err != nil {
		return nil, err
	}
	return unitSeq{c: c}, nil
}

func (e unitEncoder) EncodeTupleStruct(name string, n int) (SeqEncoder[Unit], error) {
	c, err := e.s.TupleStruct(name, n)
	if err != nil {
		return nil, err
	}
	return unitSeq{c: c}, nil
}

func (e unitEncoder) EncodeTupleVariant(name string, index uint32, variant string, n int) (VariantEncoder[Unit], error) {
	c, err := e.s.TupleVariant(name, index, variant, n)
	if err != nil {
		return nil, err
	}
	return unitVariant{c: c}, nil
}

func (e unitEncoder) EncodeMap(hint int) (MapEncoder[Unit], error) {
	c, err := e.s.Map(hint)
	if err != nil {
		return nil, err
	}
	return unitMap{c: c}, nil
}

func (e unitEncoder) EncodeStruct(name string, n int) (StructEncoder[Unit], error) {
	c, err := e.s.Struct(name, n)
	if err != nil {
		return nil, err
	}
	return unitStruct{c: c}, nil
}

func (e unitEncoder) EncodeStructVariant(name string, index uint32, variant string, n int) (VariantEncoder[Unit], error) {
	c, err := e.s.StructVariant(name, index, variant, n)
	if err != nil {
		return nil, err
	}
	return unitVariant{c: c}, nil
}

type unitSeq struct {
	c SeqSerializer
}

func (s unitSeq) EncodeElement(v Value) error { return s.c.Element(v) }
func (s unitSeq) Finish() (Unit, error)       { return Unit{}, s.c.End() }

type unitMap struct {
	c MapSerializer
}

func (m unitMap) EncodeKey(k Value) error   { return m.c.Key(k) }
func (m unitMap) EncodeValue(v Value) error { return m.c.Value(v) }
func (m unitMap) Finish() (Unit, error)     { return Unit{}, m.c.End() }

type unitStruct struct {
	c StructSerializer
}

func (s unitStruct) EncodeField(name string, v Value) error { return s.c.Field(name, v) }
func (s unitStruct) Finish() (Unit, error)                  { return Unit{}, s.c.End() }

type unitVariant struct {
	c VariantSerializer
}

func (s unitVariant) EncodeElement(v Value) error           { return s.c.Element(v) }
func (s unitVariant) EncodeField(name string, v Value) error { return s.c.Field(name, v) }
func (s unitVariant) Finish() (Unit, error)                 { return Unit{}, s.c.End() }
