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

package msgpack

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"rivaas.dev/serde"
)

// Encoder writes MessagePack for one value tree to an io.Writer. It
// implements serde.Encoder with output type [serde.Unit]: the bytes go
// to the writer, there is no in-memory result.
//
// An Encoder encodes exactly one top-level value and is not safe for
// concurrent use.
type Encoder struct {
	enc    *msgpack.Encoder
	erased serde.Serializer // self, pre-erased for nested values
}

var _ serde.Encoder[serde.Unit] = (*Encoder)(nil)

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	e := &Encoder{enc: msgpack.NewEncoder(w)}
	e.erased = serde.NewSerializer[serde.Unit](e)
	return e
}

func done(err error) (serde.Unit, error) {
	if err != nil {
		return serde.Unit{}, serde.WrapError(err)
	}
	return serde.Unit{}, nil
}

func unknownLength(shape string) error {
	return serde.Errorf(serde.KindInvalidLength, "MessagePack requires the %s length up front", shape)
}

// EncodeBool implements serde.Encoder.
func (e *Encoder) EncodeBool(v bool) (serde.Unit, error) { return done(e.enc.EncodeBool(v)) }

// EncodeInt8 implements serde.Encoder.
func (e *Encoder) EncodeInt8(v int8) (serde.Unit, error) { return done(e.enc.EncodeInt64(int64(v))) }

// EncodeInt16 implements serde.Encoder.
func (e *Encoder) EncodeInt16(v int16) (serde.Unit, error) { return done(e.enc.EncodeInt64(int64(v))) }

// EncodeInt32 implements serde.Encoder.
func (e *Encoder) EncodeInt32(v int32) (serde.Unit, error) { return done(e.enc.EncodeInt64(int64(v))) }

// EncodeInt64 implements serde.Encoder.
func (e *Encoder) EncodeInt64(v int64) (serde.Unit, error) { return done(e.enc.EncodeInt64(v)) }

// EncodeUint8 implements serde.Encoder.
func (e *Encoder) EncodeUint8(v uint8) (serde.Unit, error) {
	return done(e.enc.EncodeUint64(uint64(v)))
}

// EncodeUint16 implements serde.Encoder.
func (e *Encoder) EncodeUint16(v uint16) (serde.Unit, error) {
	return done(e.enc.EncodeUint64(uint64(v)))
}

// EncodeUint32 implements serde.Encoder.
func (e *Encoder) EncodeUint32(v uint32) (serde.Unit, error) {
	return done(e.enc.EncodeUint64(uint64(v)))
}

// EncodeUint64 implements serde.Encoder.
func (e *Encoder) EncodeUint64(v uint64) (serde.Unit, error) { return done(e.enc.EncodeUint64(v)) }

// EncodeFloat32 implements serde.Encoder.
func (e *Encoder) EncodeFloat32(v float32) (serde.Unit, error) { return done(e.enc.EncodeFloat32(v)) }

// EncodeFloat64 implements serde.Encoder.
func (e *Encoder) EncodeFloat64(v float64) (serde.Unit, error) { return done(e.enc.EncodeFloat64(v)) }

// EncodeRune implements serde.Encoder.
func (e *Encoder) EncodeRune(v rune) (serde.Unit, error) {
	return done(e.enc.EncodeString(string(v)))
}

// EncodeString implements serde.Encoder.
func (e *Encoder) EncodeString(v string) (serde.Unit, error) { return done(e.enc.EncodeString(v)) }

// EncodeBytes implements serde.Encoder.
func (e *Encoder) EncodeBytes(v []byte) (serde.Unit, error) { return done(e.enc.EncodeBytes(v)) }

// EncodeNone implements serde.Encoder.
func (e *Encoder) EncodeNone() (serde.Unit, error) { return done(e.enc.EncodeNil()) }

// EncodeSome implements serde.Encoder. The inner value encodes bare.
func (e *Encoder) EncodeSome(v serde.Value) (serde.Unit, error) {
	return serde.Unit{}, v.SerializeInto(e.erased)
}

// EncodeUnit implements serde.Encoder.
func (e *Encoder) EncodeUnit() (serde.Unit, error) { return done(e.enc.EncodeNil()) }

// EncodeUnitStruct implements serde.Encoder.
func (e *Encoder) EncodeUnitStruct(string) (serde.Unit, error) { return done(e.enc.EncodeNil()) }

// EncodeUnitVariant implements serde.Encoder.
func (e *Encoder) EncodeUnitVariant(_ string, _ uint32, variant string) (serde.Unit, error) {
	return done(e.enc.EncodeString(variant))
}

// EncodeNewtypeStruct implements serde.Encoder.
func (e *Encoder) EncodeNewtypeStruct(_ string, v serde.Value) (serde.Unit, error) {
	return serde.Unit{}, v.SerializeInto(e.erased)
}

// EncodeNewtypeVariant implements serde.Encoder.
func (e *Encoder) EncodeNewtypeVariant(_ string, _ uint32, variant string, v serde.Value) (serde.Unit, error) {
	if err := e.openVariant(variant); err != nil {
		return serde.Unit{}, err
	}
	return serde.Unit{}, v.SerializeInto(e.erased)
}

// openVariant writes the one-entry wrapper map and its key.
func (e *Encoder) openVariant(variant string) error {
	if err := e.enc.EncodeMapLen(1); err != nil {
		return serde.WrapError(err)
	}
	if err := e.enc.EncodeString(variant); err != nil {
		return serde.WrapError(err)
	}
	return nil
}

// EncodeSeq implements serde.Encoder. MessagePack arrays are
// length-prefixed, so an unknown hint is rejected.
func (e *Encoder) EncodeSeq(hint int) (serde.SeqEncoder[serde.Unit], error) {
	if hint < 0 {
		return nil, unknownLength("sequence")
	}
	if err := e.enc.EncodeArrayLen(hint); err != nil {
		return nil, serde.WrapError(err)
	}
	return &seqEncoder{e: e}, nil
}

// EncodeTuple implements serde.Encoder.
func (e *Encoder) EncodeTuple(n int) (serde.SeqEncoder[serde.Unit], error) {
	return e.EncodeSeq(n)
}

// EncodeTupleStruct implements serde.Encoder.
func (e *Encoder) EncodeTupleStruct(_ string, n int) (serde.SeqEncoder[serde.Unit], error) {
	return e.EncodeSeq(n)
}

// EncodeTupleVariant implements serde.Encoder.
func (e *Encoder) EncodeTupleVariant(_ string, _ uint32, variant string, n int) (serde.VariantEncoder[serde.Unit], error) {
	if err := e.openVariant(variant); err != nil {
		return nil, err
	}
	if err := e.enc.EncodeArrayLen(n); err != nil {
		return nil, serde.WrapError(err)
	}
	return &variantEncoder{e: e}, nil
}

// EncodeMap implements serde.Encoder. MessagePack maps are
// length-prefixed, so an unknown hint is rejected.
func (e *Encoder) EncodeMap(hint int) (serde.MapEncoder[serde.Unit], error) {
	if hint < 0 {
		return nil, unknownLength("map")
	}
	if err := e.enc.EncodeMapLen(hint); err != nil {
		return nil, serde.WrapError(err)
	}
	return &mapEncoder{e: e}, nil
}

// EncodeStruct implements serde.Encoder. Structs encode as maps with
// string keys.
func (e *Encoder) EncodeStruct(_ string, n int) (serde.StructEncoder[serde.Unit], error) {
	if err := e.enc.EncodeMapLen(n); err != nil {
		return nil, serde.WrapError(err)
	}
	return &structEncoder{e: e}, nil
}

// EncodeStructVariant implements serde.Encoder.
func (e *Encoder) EncodeStructVariant(_ string, _ uint32, variant string, n int) (serde.VariantEncoder[serde.Unit], error) {
	if err := e.openVariant(variant); err != nil {
		return nil, err
	}
	if err := e.enc.EncodeMapLen(n); err != nil {
		return nil, serde.WrapError(err)
	}
	return &variantEncoder{e: e}, nil
}

// seqEncoder continues an array whose length prefix is already written.
type seqEncoder struct {
	e *Encoder
}

func (s *seqEncoder) EncodeElement(v serde.Value) error {
	return v.SerializeInto(s.e.erased)
}

func (s *seqEncoder) Finish() (serde.Unit, error) { return serde.Unit{}, nil }

type mapEncoder struct {
	e *Encoder
}

func (m *mapEncoder) EncodeKey(k serde.Value) error {
	return k.SerializeInto(m.e.erased)
}

func (m *mapEncoder) EncodeValue(v serde.Value) error {
	return v.SerializeInto(m.e.erased)
}

func (m *mapEncoder) Finish() (serde.Unit, error) { return serde.Unit{}, nil }

type structEncoder struct {
	e *Encoder
}

func (s *structEncoder) EncodeField(name string, v serde.Value) error {
	if err := s.e.enc.EncodeString(name); err != nil {
		return serde.WrapError(err)
	}
	return v.SerializeInto(s.e.erased)
}

func (s *structEncoder) Finish() (serde.Unit, error) { return serde.Unit{}, nil }

// variantEncoder continues tuple and struct variants; the wrapper map
// and the payload's length prefix are already written.
type variantEncoder struct {
	e *Encoder
}

func (s *variantEncoder) EncodeElement(v serde.Value) error {
	return v.SerializeInto(s.e.erased)
}

func (s *variantEncoder) EncodeField(name string, v serde.Value) error {
	if err := s.e.enc.EncodeString(name); err != nil {
		return serde.WrapError(err)
	}
	return v.SerializeInto(s.e.erased)
}

func (s *variantEncoder) Finish() (serde.Unit, error) { return serde.Unit{}, nil }
