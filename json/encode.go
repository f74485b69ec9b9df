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
	"io"
	"strconv"
	"unicode/utf8"

	"rivaas.dev/serde"
)

// Encoder writes JSON text for one value tree to an io.Writer. It
// implements serde.Encoder with output type [serde.Unit]: the encoder's
// "result" is the bytes written, owned by the writer.
//
// An Encoder encodes exactly one top-level value and is not safe for
// concurrent use.
type Encoder struct {
	w      io.Writer
	erased serde.Serializer // self, pre-erased for nested values
}

var _ serde.Encoder[serde.Unit] = (*Encoder)(nil)

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	e := &Encoder{w: w}
	e.erased = serde.NewSerializer[serde.Unit](e)
	return e
}

func (e *Encoder) write(s string) (serde.Unit, error) {
	_, err := io.WriteString(e.w, s)
	if err != nil {
		return serde.Unit{}, serde.WrapError(err)
	}
	return serde.Unit{}, nil
}

// writeQuoted writes s as a JSON string literal. Control characters are
// escaped as \u00XX; everything else passes through as UTF-8.
func (e *Encoder) writeQuoted(s string) (serde.Unit, error) {
	buf := make([]byte, 0, len(s)+2)
	buf = appendQuoted(buf, s)
	_, err := e.w.Write(buf)
	if err != nil {
		return serde.Unit{}, serde.WrapError(err)
	}
	return serde.Unit{}, nil
}

const hexDigits = "0123456789abcdef"

func appendQuoted(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for _, r := range s {
		switch {
		case r == '"':
			buf = append(buf, '\\', '"')
		case r == '\\':
			buf = append(buf, '\\', '\\')
		case r == '\n':
			buf = append(buf, '\\', 'n')
		case r == '\r':
			buf = append(buf, '\\', 'r')
		case r == '\t':
			buf = append(buf, '\\', 't')
		case r < 0x20:
			buf = append(buf, '\\', 'u', '0', '0', hexDigits[r>>4], hexDigits[r&0xf])
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return append(buf, '"')
}

// EncodeBool implements serde.Encoder.
func (e *Encoder) EncodeBool(v bool) (serde.Unit, error) {
	return e.write(strconv.FormatBool(v))
}

// EncodeInt8 implements serde.Encoder.
func (e *Encoder) EncodeInt8(v int8) (serde.Unit, error) { return e.EncodeInt64(int64(v)) }

// EncodeInt16 implements serde.Encoder.
func (e *Encoder) EncodeInt16(v int16) (serde.Unit, error) { return e.EncodeInt64(int64(v)) }

// EncodeInt32 implements serde.Encoder.
func (e *Encoder) EncodeInt32(v int32) (serde.Unit, error) { return e.EncodeInt64(int64(v)) }

// EncodeInt64 implements serde.Encoder.
func (e *Encoder) EncodeInt64(v int64) (serde.Unit, error) {
	return e.write(strconv.FormatInt(v, 10))
}

// EncodeUint8 implements serde.Encoder.
func (e *Encoder) EncodeUint8(v uint8) (serde.Unit, error) { return e.EncodeUint64(uint64(v)) }

// EncodeUint16 implements serde.Encoder.
func (e *Encoder) EncodeUint16(v uint16) (serde.Unit, error) { return e.EncodeUint64(uint64(v)) }

// EncodeUint32 implements serde.Encoder.
func (e *Encoder) EncodeUint32(v uint32) (serde.Unit, error) { return e.EncodeUint64(uint64(v)) }

// EncodeUint64 implements serde.Encoder.
func (e *Encoder) EncodeUint64(v uint64) (serde.Unit, error) {
	return e.write(strconv.FormatUint(v, 10))
}

// EncodeFloat32 implements serde.Encoder.
func (e *Encoder) EncodeFloat32(v float32) (serde.Unit, error) {
	return e.write(strconv.FormatFloat(float64(v), 'g', -1, 32))
}

// EncodeFloat64 implements serde.Encoder.
func (e *Encoder) EncodeFloat64(v float64) (serde.Unit, error) {
	return e.write(strconv.FormatFloat(v, 'g', -1, 64))
}

// EncodeRune implements serde.Encoder.
func (e *Encoder) EncodeRune(v rune) (serde.Unit, error) {
	return e.writeQuoted(string(v))
}

// EncodeString implements serde.Encoder.
func (e *Encoder) EncodeString(v string) (serde.Unit, error) {
	return e.writeQuoted(v)
}

// EncodeBytes implements serde.Encoder.
func (e *Encoder) EncodeBytes(v []byte) (serde.Unit, error) {
	if _, err := io.WriteString(e.w, "["); err != nil {
		return serde.Unit{}, serde.WrapError(err)
	}
	for i, b := range v {
		if i > 0 {
			if _, err := io.WriteString(e.w, ","); err != nil {
				return serde.Unit{}, serde.WrapError(err)
			}
		}
		if _, err := io.WriteString(e.w, strconv.FormatUint(uint64(b), 10)); err != nil {
			return serde.Unit{}, serde.WrapError(err)
		}
	}
	return e.write("]")
}

// EncodeNone implements serde.Encoder.
func (e *Encoder) EncodeNone() (serde.Unit, error) { return e.write("null") }

// EncodeSome implements serde.Encoder. The inner value encodes bare;
// JSON has no explicit wrapper for present optionals.
func (e *Encoder) EncodeSome(v serde.Value) (serde.Unit, error) {
	return serde.Unit{}, v.SerializeInto(e.erased)
}

// EncodeUnit implements serde.Encoder.
func (e *Encoder) EncodeUnit() (serde.Unit, error) { return e.write("null") }

// EncodeUnitStruct implements serde.Encoder.
func (e *Encoder) EncodeUnitStruct(string) (serde.Unit, error) { return e.write("null") }

// EncodeUnitVariant implements serde.Encoder.
func (e *Encoder) EncodeUnitVariant(_ string, _ uint32, variant string) (serde.Unit, error) {
	return e.writeQuoted(variant)
}

// EncodeNewtypeStruct implements serde.Encoder.
func (e *Encoder) EncodeNewtypeStruct(_ string, v serde.Value) (serde.Unit, error) {
	return serde.Unit{}, v.SerializeInto(e.erased)
}

// EncodeNewtypeVariant implements serde.Encoder.
func (e *Encoder) EncodeNewtypeVariant(_ string, _ uint32, variant string, v serde.Value) (serde.Unit, error) {
	if _, err := e.write("{"); err != nil {
		return serde.Unit{}, err
	}
	if _, err := e.writeQuoted(variant); err != nil {
		return serde.Unit{}, err
	}
	if _, err := e.write(":"); err != nil {
		return serde.Unit{}, err
	}
	if err := v.SerializeInto(e.erased); err != nil {
		return serde.Unit{}, err
	}
	return e.write("}")
}

// EncodeSeq implements serde.Encoder. The length hint is not needed;
// JSON arrays carry no length prefix.
func (e *Encoder) EncodeSeq(int) (serde.SeqEncoder[serde.Unit], error) {
	if _, err := e.write("["); err != nil {
		return nil, err
	}
	return &seqEncoder{e: e, close: "]"}, nil
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
func (e *Encoder) EncodeTupleVariant(_ string, _ uint32, variant string, _ int) (serde.VariantEncoder[serde.Unit], error) {
	if err := e.openVariant(variant, "["); err != nil {
		return nil, err
	}
	return &variantEncoder{e: e, close: "]}"}, nil
}

// EncodeMap implements serde.Encoder.
func (e *Encoder) EncodeMap(int) (serde.MapEncoder[serde.Unit], error) {
	if _, err := e.write("{"); err != nil {
		return nil, err
	}
	return &mapEncoder{e: e}, nil
}

// EncodeStruct implements serde.Encoder.
func (e *Encoder) EncodeStruct(string, int) (serde.StructEncoder[serde.Unit], error) {
	if _, err := e.write("{"); err != nil {
		return nil, err
	}
	return &structEncoder{e: e, close: "}"}, nil
}

// EncodeStructVariant implements serde.Encoder.
func (e *Encoder) EncodeStructVariant(_ string, _ uint32, variant string, _ int) (serde.VariantEncoder[serde.Unit], error) {
	if err := e.openVariant(variant, "{"); err != nil {
		return nil, err
	}
	return &variantEncoder{e: e, close: "}}"}, nil
}

func (e *Encoder) openVariant(variant, bracket string) error {
	if _, err := e.write("{"); err != nil {
		return err
	}
	if _, err := e.writeQuoted(variant); err != nil {
		return err
	}
	_, err := e.write(":" + bracket)
	return err
}

type seqEncoder struct {
	e     *Encoder
	n     int
	close string
}

func (s *seqEncoder) EncodeElement(v serde.Value) error {
	if s.n > 0 {
		if _, err := s.e.write(","); err != nil {
			return err
		}
	}
	s.n++
	return v.SerializeInto(s.e.erased)
}

func (s *seqEncoder) Finish() (serde.Unit, error) {
	return s.e.write(s.close)
}

type mapEncoder struct {
	e *Encoder
	n int
}

func (m *mapEncoder) EncodeKey(k serde.Value) error {
	if m.n > 0 {
		if _, err := m.e.write(","); err != nil {
			return err
		}
	}
	m.n++
	if err := k.SerializeInto(&keySerializer{e: m.e}); err != nil {
		return err
	}
	_, err := m.e.write(":")
	return err
}

func (m *mapEncoder) EncodeValue(v serde.Value) error {
	return v.SerializeInto(m.e.erased)
}

func (m *mapEncoder) Finish() (serde.Unit, error) {
	return m.e.write("}")
}

type structEncoder struct {
	e     *Encoder
	n     int
	close string
}

func (s *structEncoder) EncodeField(name string, v serde.Value) error {
	if s.n > 0 {
		if _, err := s.e.write(","); err != nil {
			return err
		}
	}
	s.n++
	if _, err := s.e.writeQuoted(name); err != nil {
		return err
	}
	if _, err := s.e.write(":"); err != nil {
		return err
	}
	return v.SerializeInto(s.e.erased)
}

func (s *structEncoder) Finish() (serde.Unit, error) {
	return s.e.write(s.close)
}

// variantEncoder continues tuple and struct variants; close carries the
// two brackets that end both the payload and the wrapper object.
type variantEncoder struct {
	e     *Encoder
	n     int
	close string
}

func (s *variantEncoder) EncodeElement(v serde.Value) error {
	if s.n > 0 {
		if _, err := s.e.write(","); err != nil {
			return err
		}
	}
	s.n++
	return v.SerializeInto(s.e.erased)
}

func (s *variantEncoder) EncodeField(name string, v serde.Value) error {
	if s.n > 0 {
		if _, err := s.e.write(","); err != nil {
			return err
		}
	}
	s.n++
	if _, err := s.e.writeQuoted(name); err != nil {
		return err
	}
	if _, err := s.e.write(":"); err != nil {
		return err
	}
	return v.SerializeInto(s.e.erased)
}

func (s *variantEncoder) Finish() (serde.Unit, error) {
	return s.e.write(s.close)
}

// keySerializer renders a map key as a JSON object key. Only strings,
// characters, and integers can be keys; everything else fails with
// KindInvalidValue.
type keySerializer struct {
	e *Encoder
}

func (k *keySerializer) keyErr(shape string) error {
	return serde.Errorf(serde.KindInvalidValue, "cannot use %s as a JSON object key", shape)
}

func (k *keySerializer) Bool(bool) error       { return k.keyErr("a boolean") }
func (k *keySerializer) Float32(float32) error { return k.keyErr("a floating-point number") }
func (k *keySerializer) Float64(float64) error { return k.keyErr("a floating-point number") }
func (k *keySerializer) Bytes([]byte) error    { return k.keyErr("a byte sequence") }
func (k *keySerializer) None() error           { return k.keyErr("an optional") }
func (k *keySerializer) Some(serde.Value) error {
	return k.keyErr("an optional")
}
func (k *keySerializer) Unit() error             { return k.keyErr("unit") }
func (k *keySerializer) UnitStruct(string) error { return k.keyErr("a unit struct") }

func (k *keySerializer) Int8(v int8) error   { return k.intKey(strconv.FormatInt(int64(v), 10)) }
func (k *keySerializer) Int16(v int16) error { return k.intKey(strconv.FormatInt(int64(v), 10)) }
func (k *keySerializer) Int32(v int32) error { return k.intKey(strconv.FormatInt(int64(v), 10)) }
func (k *keySerializer) Int64(v int64) error { return k.intKey(strconv.FormatInt(v, 10)) }

func (k *keySerializer) Uint8(v uint8) error   { return k.intKey(strconv.FormatUint(uint64(v), 10)) }
func (k *keySerializer) Uint16(v uint16) error { return k.intKey(strconv.FormatUint(uint64(v), 10)) }
func (k *keySerializer) Uint32(v uint32) error { return k.intKey(strconv.FormatUint(uint64(v), 10)) }
func (k *keySerializer) Uint64(v uint64) error { return k.intKey(strconv.FormatUint(v, 10)) }

func (k *keySerializer) intKey(s string) error {
	_, err := k.e.writeQuoted(s)
	return err
}

func (k *keySerializer) Rune(v rune) error { _, err := k.e.writeQuoted(string(v)); return err }

func (k *keySerializer) String(v string) error { _, err := k.e.writeQuoted(v); return err }

func (k *keySerializer) UnitVariant(_ string, _ uint32, variant string) error {
	_, err := k.e.writeQuoted(variant)
	return err
}

func (k *keySerializer) NewtypeStruct(_ string, v serde.Value) error {
	return v.SerializeInto(k)
}

func (k *keySerializer) NewtypeVariant(string, uint32, string, serde.Value) error {
	return k.keyErr("a newtype variant")
}

func (k *keySerializer) Seq(int) (serde.SeqSerializer, error) {
	return nil, k.keyErr("a sequence")
}

func (k *keySerializer) Tuple(int) (serde.SeqSerializer, error) {
	return nil, k.keyErr("a tuple")
}

func (k *keySerializer) TupleStruct(string, int) (serde.SeqSerializer, error) {
	return nil, k.keyErr("a tuple struct")
}

func (k *keySerializer) TupleVariant(string, uint32, string, int) (serde.VariantSerializer, error) {
	return nil, k.keyErr("a tuple variant")
}

func (k *keySerializer) Map(int) (serde.MapSerializer, error) {
	return nil, k.keyErr("a map")
}

func (k *keySerializer) Struct(string, int) (serde.StructSerializer, error) {
	return nil, k.keyErr("a struct")
}

func (k *keySerializer) StructVariant(string, uint32, string, int) (serde.VariantSerializer, error) {
	return nil, k.keyErr("a struct variant")
}
